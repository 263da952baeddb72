package scaffold

import (
	"embed"
	"io/fs"

	"github.com/spf13/afero"
)

// overlayFS holds the built-in overlay trees: common/ is applied to every
// project, <template-id>/ only to projects created from that template.
//
//go:embed all:overlays
var overlayFS embed.FS

// DefaultOverlays returns the built-in overlay trees as a read-only afero
// filesystem rooted at the overlays directory.
func DefaultOverlays() afero.Fs {
	sub, err := fs.Sub(overlayFS, "overlays")
	if err != nil {
		// fs.Sub only fails on an invalid path literal.
		panic(err)
	}
	return afero.FromIOFS{FS: sub}
}
