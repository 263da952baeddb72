package runtime

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Runtime is a JavaScript runtime that can report its version.
type Runtime interface {
	// Name is the runtime's display name.
	Name() string
	// Version returns the installed version, or ErrNotInstalled.
	Version(ctx context.Context) (*semver.Version, error)
}

// Supported runtime identifiers.
const (
	RuntimeNode = "node"
	RuntimeBun  = "bun"
)

// Requirements are the version ranges the Vite generator supports.
var Requirements = map[string]string{
	RuntimeNode: "^18.0.0 || >=20.0.0",
	RuntimeBun:  ">=1.0.0",
}

// ErrNotInstalled is returned when the runtime binary is not on PATH.
var ErrNotInstalled = errors.New("runtime not installed")

// UnsupportedError reports an installed runtime outside the supported range.
type UnsupportedError struct {
	Runtime string
	Have    *semver.Version
	Want    string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s %s is not supported, the generator requires %s", e.Runtime, e.Have, e.Want)
}

// DispatchRuntime returns the runtime that runs the generator for the given
// package manager. Bun runs it on itself, everything else on Node.js.
func DispatchRuntime(packageManager string) Runtime {
	if packageManager == RuntimeBun {
		return &BinaryRuntime{Binary: RuntimeBun, Display: "Bun"}
	}
	return &BinaryRuntime{Binary: RuntimeNode, Display: "Node.js"}
}

// Requirement returns the supported version range of the runtime
// DispatchRuntime selects for packageManager.
func Requirement(packageManager string) string {
	if packageManager == RuntimeBun {
		return Requirements[RuntimeBun]
	}
	return Requirements[RuntimeNode]
}

// Check verifies that rt is installed and its version satisfies constraint.
func Check(ctx context.Context, rt Runtime, constraint string) (*semver.Version, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return nil, fmt.Errorf("invalid version constraint %q: %w", constraint, err)
	}
	v, err := rt.Version(ctx)
	if err != nil {
		return nil, err
	}
	if !c.Check(v) {
		return v, &UnsupportedError{Runtime: rt.Name(), Have: v, Want: constraint}
	}
	return v, nil
}
