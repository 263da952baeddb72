// Package pkgname validates and derives package.json names.
package pkgname

import (
	"regexp"
	"strings"
)

var (
	validPattern   = regexp.MustCompile(`^(?:@[a-z\d\-*~][a-z\d\-*._~]*/)?[a-z\d\-~][a-z\d\-._~]*$`)
	whitespaceRun  = regexp.MustCompile(`\s+`)
	leadingDotOrUs = regexp.MustCompile(`^[._]`)
	invalidRun     = regexp.MustCompile(`[^a-z\d\-~]+`)
)

// IsValid reports whether name is an acceptable npm package name, optionally
// scoped as @scope/name.
func IsValid(name string) bool {
	return validPattern.MatchString(name)
}

// ToValid coerces name into something close to a valid package name. The
// result can still be invalid (an empty string, for instance), so callers
// re-check it with IsValid.
func ToValid(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = leadingDotOrUs.ReplaceAllString(s, "")
	return invalidRun.ReplaceAllString(s, "-")
}
