// Package runtime checks the JavaScript runtime the generator runs on. It
// defines the Runtime interface, an implementation that asks a runtime binary
// for its version, and the version ranges the generator supports. The
// DispatchRuntime function selects the runtime for a package manager.
package runtime
