package pkgjson

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/frontkit/create-frontend/internal/pkgname"
)

// Fragment is the part of a package.json an overlay contributes.
type Fragment struct {
	Scripts         *OrderedMap `yaml:"scripts" json:"scripts,omitempty"`
	DevDependencies *OrderedMap `yaml:"devDependencies" json:"devDependencies,omitempty"`
}

// IsEmpty reports whether the fragment contributes nothing.
func (f Fragment) IsEmpty() bool {
	return f.Scripts.Len() == 0 && f.DevDependencies.Len() == 0
}

// Clone returns a deep copy whose maps are never nil.
func (f Fragment) Clone() Fragment {
	return Fragment{
		Scripts:         f.Scripts.Clone(),
		DevDependencies: f.DevDependencies.Clone(),
	}
}

// nonRegistryPrefixes are dependency specifiers that are not semver ranges.
var nonRegistryPrefixes = []string{
	"workspace:", "file:", "link:", "npm:", "git+", "git:", "github:", "http:", "https:",
}

// Validate checks that every script has a command and every devDependency has
// a valid package name and a parseable version specifier.
func (f Fragment) Validate() error {
	var errs []error
	for _, name := range f.Scripts.Keys() {
		if cmd, _ := f.Scripts.Get(name); strings.TrimSpace(cmd) == "" {
			errs = append(errs, fmt.Errorf("script %q has an empty command", name))
		}
	}
	for _, name := range f.DevDependencies.Keys() {
		if !pkgname.IsValid(name) {
			errs = append(errs, fmt.Errorf("devDependency %q is not a valid package name", name))
			continue
		}
		spec, _ := f.DevDependencies.Get(name)
		if err := validateSpecifier(spec); err != nil {
			errs = append(errs, fmt.Errorf("devDependency %q: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

func validateSpecifier(spec string) error {
	switch spec {
	case "latest", "next", "*":
		return nil
	}
	for _, p := range nonRegistryPrefixes {
		if strings.HasPrefix(spec, p) {
			return nil
		}
	}
	if _, err := semver.NewConstraint(spec); err != nil {
		return fmt.Errorf("invalid version range %q: %w", spec, err)
	}
	return nil
}
