package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/frontkit/create-frontend/internal/pkgmanager"
	"github.com/frontkit/create-frontend/internal/scaffold"
)

var (
	cancelledMark = color.New(color.FgRed).Sprint("✖")
	doneMark      = color.New(color.FgGreen).Sprint("✔")
)

// printNextSteps tells the user how to start working on the new project.
func printNextSteps(w io.Writer, cwd string, res *scaffold.Result, pm pkgmanager.Info) error {
	var b strings.Builder

	fmt.Fprintf(&b, "\n%s Scaffolded %s (%s) in %s\n", doneMark, res.Target.PackageName, res.Target.TemplateID, res.Target.Root)
	if len(res.Overlays) > 0 {
		fmt.Fprintf(&b, "  overlays: %s\n", strings.Join(res.Overlays, ", "))
	}

	b.WriteString("\nDone. Now run:\n\n")
	if rel := cdTarget(cwd, res.Target.Root); rel != "" {
		fmt.Fprintf(&b, "  cd %s\n", rel)
	}
	fmt.Fprintf(&b, "  %s\n", pm.InstallCommand())
	fmt.Fprintf(&b, "  %s\n\n", pm.RunCommand("dev"))

	_, err := io.WriteString(w, b.String())
	return err
}

// cdTarget returns the directory to change into, relative to cwd when
// possible and quoted when it contains spaces. It is empty when root is cwd.
func cdTarget(cwd, root string) string {
	rel, err := filepath.Rel(cwd, root)
	if err != nil {
		rel = root
	}
	if rel == "." {
		return ""
	}
	if strings.ContainsAny(rel, " \t") {
		return `"` + rel + `"`
	}
	return rel
}
