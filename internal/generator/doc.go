// Package generator runs the external base-template generator (create-vite or
// a configured replacement) as a blocking subprocess with inherited stdio.
package generator
