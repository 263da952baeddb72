// Package pkgmanager works out which JavaScript package manager launched the
// CLI, from the npm_config_user_agent variable every package manager sets for
// the processes it spawns.
package pkgmanager

import (
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// UserAgentEnv is the variable carrying the package manager hint.
const UserAgentEnv = "npm_config_user_agent"

// Supported package managers.
const (
	NPM  = "npm"
	Yarn = "yarn"
	PNPM = "pnpm"
	Bun  = "bun"
)

// Info identifies a package manager.
type Info struct {
	Name    string
	Version string
}

// Detect parses a user agent such as "pnpm/8.15.4 npm/? node/v20.11.1 linux x64".
// Unknown or empty agents resolve to npm.
func Detect(userAgent string) Info {
	first, _, _ := strings.Cut(strings.TrimSpace(userAgent), " ")
	name, version, _ := strings.Cut(first, "/")
	switch name {
	case Yarn, PNPM, Bun, NPM:
		return Info{Name: name, Version: version}
	}
	return Info{Name: NPM}
}

// FromEnv detects the package manager from the process environment.
func FromEnv() Info {
	return Detect(os.Getenv(UserAgentEnv))
}

// IsYarnClassic reports whether this is yarn 1.x.
func (i Info) IsYarnClassic() bool {
	if i.Name != Yarn {
		return false
	}
	v, err := semver.NewVersion(i.Version)
	if err != nil {
		return false
	}
	return v.Major() == 1
}

// InstallCommand returns the command that installs dependencies.
func (i Info) InstallCommand() string {
	if i.Name == Yarn {
		return Yarn
	}
	return i.Name + " install"
}

// RunCommand returns the command that runs a package.json script.
func (i Info) RunCommand(script string) string {
	if i.Name == Yarn {
		return Yarn + " " + script
	}
	return i.Name + " run " + script
}

// CreateCommand returns the generator command template for this package
// manager. The template sees .Name and .Template and has a quote function.
func (i Info) CreateCommand() string {
	switch i.Name {
	case Yarn:
		if i.IsYarnClassic() || i.Version == "" {
			return "yarn create vite {{quote .Name}} --template {{quote .Template}}"
		}
		return "yarn dlx create-vite {{quote .Name}} --template {{quote .Template}}"
	case PNPM:
		return "pnpm create vite {{quote .Name}} --template {{quote .Template}}"
	case Bun:
		return "bun create vite {{quote .Name}} --template {{quote .Template}}"
	default:
		return "npm create vite@latest {{quote .Name}} -- --template {{quote .Template}}"
	}
}
