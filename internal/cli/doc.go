// Package cli defines the Cobra command tree for the create-frontend CLI. The
// root command scaffolds a project; each other file registers one subcommand
// (list, config, version) with the root command. Commands delegate to internal
// packages for business logic and only handle flag parsing, I/O formatting,
// and user interaction.
package cli
