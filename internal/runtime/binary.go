package runtime

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// BinaryRuntime asks a runtime binary for its version with --version.
type BinaryRuntime struct {
	Binary  string // looked up on PATH
	Display string
}

func (b *BinaryRuntime) Name() string {
	if b.Display != "" {
		return b.Display
	}
	return b.Binary
}

// Version runs `<binary> --version` and parses the first line, which may
// carry a leading "v" (node prints "v20.11.1").
func (b *BinaryRuntime) Version(ctx context.Context) (*semver.Version, error) {
	bin, err := exec.LookPath(b.Binary)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), ErrNotInstalled)
	}

	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "--version")
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("running %s --version: %w", b.Binary, err)
	}

	line, _, _ := strings.Cut(strings.TrimSpace(stdout.String()), "\n")
	v, err := semver.NewVersion(strings.TrimSpace(line))
	if err != nil {
		return nil, fmt.Errorf("parsing %s version %q: %w", b.Binary, line, err)
	}
	return v, nil
}
