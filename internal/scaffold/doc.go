// Package scaffold drives project creation end to end: it collects the
// project name, package name and template through a Prompter, clears or
// creates the target directory, runs the external generator, copies the
// shared and template-specific overlay trees on top, and merges the overlay
// scripts and devDependencies into the generated package.json.
package scaffold
