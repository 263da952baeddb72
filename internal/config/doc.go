// Package config manages user-level settings stored at ~/.create-frontend/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the generator command and alternative catalog or overlay locations.
package config
