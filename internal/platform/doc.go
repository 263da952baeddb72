// Package platform provides cross-platform filesystem operations on an
// afero.Fs. On Unix systems permission changes are applied directly; on
// Windows, which has no Unix permission bits, they are skipped.
package platform
