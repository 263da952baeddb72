// Package pkgjson reads, merges, and writes package.json manifests. Merging
// is limited to the scripts and devDependencies maps: fragments are applied
// in order, later keys replace earlier ones, and every other top-level key of
// the generated manifest is written back untouched and in its original order.
package pkgjson
