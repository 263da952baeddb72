package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/frontkit/create-frontend/internal/branding"
	"github.com/frontkit/create-frontend/internal/catalog"
	"github.com/frontkit/create-frontend/internal/generator"
	"github.com/frontkit/create-frontend/internal/logging"
	"github.com/frontkit/create-frontend/internal/materialize"
	"github.com/frontkit/create-frontend/internal/pkgjson"
	"github.com/frontkit/create-frontend/internal/pkgname"
	"github.com/frontkit/create-frontend/internal/platform"
	"github.com/frontkit/create-frontend/internal/prompt"
)

// ErrCancelled is returned when the user declines the overwrite confirmation
// or interrupts a prompt. Nothing has been written when it is returned.
var ErrCancelled = errors.New("operation cancelled")

// CommonOverlay is the overlay tree applied to every project.
const CommonOverlay = "common"

const dirPerm = 0o755

// hookDirs are overlay directories holding git hooks.
var hookDirs = []string{".husky"}

// Options are the values supplied on the command line. Each one that is set
// skips the corresponding question.
type Options struct {
	TargetDir string // positional project directory
	Template  string // --template; an unknown id falls back to selection
	Overwrite bool   // --overwrite; answers the overwrite question with yes
}

// Target is the fully resolved project location and identity.
type Target struct {
	Dir         string // as typed by the user, trailing slashes removed
	Root        string // absolute project directory
	PackageName string // always a valid npm package name
	TemplateID  string
}

// Result describes a completed scaffold.
type Result struct {
	Target      Target
	Overwritten bool     // the target existed, was non-empty and got cleared
	Overlays    []string // overlay trees copied, in order
}

// Scaffolder runs the scaffold flow. Catalog, Prompter and Generator are
// required; the rest have usable zero values.
type Scaffolder struct {
	Catalog   *catalog.Catalog
	Prompter  prompt.Prompter
	Generator generator.Generator

	// FS is where the project is written. Defaults to the OS filesystem.
	FS afero.Fs
	// Overlays holds the overlay trees, one directory per tree. Nil skips
	// the overlay step.
	Overlays afero.Fs
	// Cwd resolves relative target directories. Defaults to os.Getwd.
	Cwd string
	// DefaultName is the placeholder of the project name question. Defaults
	// to the branded project name.
	DefaultName string

	Log zerolog.Logger
}

// run is the state carried between steps of a single invocation.
type run struct {
	opts      Options
	target    Target
	overwrite bool
	overlays  []string
}

type stepFunc func(ctx context.Context, r *run) (state, error)

// Run executes the flow from name collection to the package.json rewrite.
// Cancellation during any question returns ErrCancelled. A Prompter that is
// an io.Closer is closed once the last question has been answered.
func (s *Scaffolder) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := s.init(); err != nil {
		return nil, err
	}
	defer s.closePrompter()

	steps := map[state]stepFunc{
		stateName:        s.collectName,
		stateOverwrite:   s.checkOverwrite,
		statePackageName: s.collectPackageName,
		stateTemplate:    s.resolveTemplate,
		stateMaterialize: s.materialize,
		stateGenerate:    s.generate,
		stateOverlay:     s.overlay,
		stateManifest:    s.mergeManifest,
	}

	r := &run{opts: opts}
	for st := stateName; st != stateDone; {
		done := logging.Timed(s.Log, st.String())
		next, err := steps[st](ctx, r)
		done()
		if err != nil {
			if st.interactive() && (errors.Is(err, prompt.ErrCancelled) || errors.Is(err, ErrCancelled)) {
				s.Log.Debug().Str("state", st.String()).Msg("cancelled")
				return nil, ErrCancelled
			}
			return nil, err
		}
		s.Log.Trace().Str("from", st.String()).Str("to", next.String()).Msg("transition")
		if st.interactive() && !next.interactive() {
			s.closePrompter()
		}
		st = next
	}

	return &Result{
		Target:      r.target,
		Overwritten: r.overwrite,
		Overlays:    r.overlays,
	}, nil
}

func (s *Scaffolder) init() error {
	switch {
	case s.Catalog == nil:
		return errors.New("scaffold: no catalog")
	case s.Prompter == nil:
		return errors.New("scaffold: no prompter")
	case s.Generator == nil:
		return errors.New("scaffold: no generator")
	}
	if s.FS == nil {
		s.FS = afero.NewOsFs()
	}
	if s.Cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolving working directory: %w", err)
		}
		s.Cwd = wd
	}
	if s.DefaultName == "" {
		s.DefaultName = branding.DefaultProjectName()
	}
	return nil
}

// collectName settles the project directory: the positional argument when
// given, otherwise the answer to the project name question.
func (s *Scaffolder) collectName(ctx context.Context, r *run) (state, error) {
	dir := formatTargetDir(r.opts.TargetDir)
	if dir == "" {
		answer, err := s.Prompter.Input(ctx, prompt.Input{
			Message: "Project name",
			Default: s.DefaultName,
			Validate: func(v string) error {
				if formatTargetDir(v) == "" {
					return errors.New("project name is required")
				}
				return nil
			},
		})
		if err != nil {
			return stateName, err
		}
		dir = formatTargetDir(answer)
	}

	r.target.Dir = dir
	r.target.Root = s.resolve(dir)
	s.Log.Debug().Str("dir", dir).Str("root", r.target.Root).Msg("project directory")
	return stateOverwrite, nil
}

// checkOverwrite asks before reusing a non-empty directory. A missing or
// empty directory needs no question.
func (s *Scaffolder) checkOverwrite(ctx context.Context, r *run) (state, error) {
	root := r.target.Root
	info, err := s.FS.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return statePackageName, nil
		}
		return stateOverwrite, fmt.Errorf("checking %s: %w", root, err)
	}
	if !info.IsDir() {
		return stateOverwrite, fmt.Errorf("%s exists and is not a directory", root)
	}

	empty, err := materialize.IsEmptyDir(s.FS, root)
	if err != nil {
		return stateOverwrite, fmt.Errorf("checking %s: %w", root, err)
	}
	if empty {
		return statePackageName, nil
	}

	if r.opts.Overwrite {
		s.Log.Info().Str("root", root).Msg("overwrite confirmed by flag")
		r.overwrite = true
		return statePackageName, nil
	}

	subject := fmt.Sprintf("Target directory %q", r.target.Dir)
	if r.target.Dir == "." {
		subject = "Current directory"
	}
	ok, err := s.Prompter.Confirm(ctx, subject+" is not empty. Remove existing files and continue?", false)
	if err != nil {
		return stateOverwrite, err
	}
	if !ok {
		return stateOverwrite, ErrCancelled
	}
	r.overwrite = true
	return statePackageName, nil
}

// collectPackageName reuses the project directory's base name as the package
// name when it is valid, and otherwise asks with a sanitized suggestion.
func (s *Scaffolder) collectPackageName(ctx context.Context, r *run) (state, error) {
	candidate := filepath.Base(r.target.Root)
	if pkgname.IsValid(candidate) {
		r.target.PackageName = candidate
		return stateTemplate, nil
	}

	answer, err := s.Prompter.Input(ctx, prompt.Input{
		Message: "Package name",
		Default: pkgname.ToValid(candidate),
		Validate: func(v string) error {
			if !pkgname.IsValid(v) {
				return errors.New("invalid package.json name")
			}
			return nil
		},
	})
	if err != nil {
		return statePackageName, err
	}
	r.target.PackageName = answer
	return stateTemplate, nil
}

// resolveTemplate takes the template flag when it names a catalog entry, and
// otherwise asks for a framework and then, if it has any, a variant.
func (s *Scaffolder) resolveTemplate(ctx context.Context, r *run) (state, error) {
	if id := r.opts.Template; id != "" && s.Catalog.Has(id) {
		r.target.TemplateID = id
		return stateMaterialize, nil
	}

	message := "Select a framework:"
	if r.opts.Template != "" {
		s.Log.Warn().
			Str("template", r.opts.Template).
			Strs("did_you_mean", s.Catalog.Suggest(r.opts.Template)).
			Msg("unknown template")
		message = fmt.Sprintf("%q isn't a valid template. Please choose from below:", r.opts.Template)
	}

	frameworks := s.Catalog.Frameworks()
	options := make([]prompt.Option, 0, len(frameworks))
	for _, fw := range frameworks {
		options = append(options, prompt.Option{
			Label: catalog.Paint(fw.Color, fw.Label()),
			Value: fw.Name,
		})
	}
	name, err := s.Prompter.Select(ctx, message, options)
	if err != nil {
		return stateTemplate, err
	}

	var chosen *catalog.Framework
	for i := range frameworks {
		if frameworks[i].Name == name {
			chosen = &frameworks[i]
			break
		}
	}
	if chosen == nil {
		return stateTemplate, fmt.Errorf("framework %q: %w", name, catalog.ErrNotFound)
	}

	if len(chosen.Variants) == 0 {
		r.target.TemplateID = chosen.Name
		return stateMaterialize, nil
	}

	variants := make([]prompt.Option, 0, len(chosen.Variants))
	for _, v := range chosen.Variants {
		variants = append(variants, prompt.Option{
			Label: catalog.Paint(v.Color, v.Label()),
			Value: v.Name,
		})
	}
	id, err := s.Prompter.Select(ctx, "Select a variant:", variants)
	if err != nil {
		return stateTemplate, err
	}
	if !s.Catalog.Has(id) {
		return stateTemplate, &catalog.NotFoundError{TemplateID: id}
	}
	r.target.TemplateID = id
	return stateMaterialize, nil
}

// materialize empties a confirmed non-empty target, or creates the target.
func (s *Scaffolder) materialize(_ context.Context, r *run) (state, error) {
	root := r.target.Root
	if r.overwrite {
		if err := materialize.ClearDir(s.FS, root); err != nil {
			return stateMaterialize, fmt.Errorf("emptying %s: %w", root, err)
		}
		s.Log.Info().Str("root", root).Msg("emptied target directory")
		return stateGenerate, nil
	}
	if err := s.FS.MkdirAll(root, dirPerm); err != nil {
		return stateMaterialize, fmt.Errorf("creating %s: %w", root, err)
	}
	return stateGenerate, nil
}

// generate hands the base project to the external generator. The generator
// runs in the parent of the project root and is given the root's base name,
// or "." when scaffolding into the working directory. A failure is fatal and
// leaves whatever the generator wrote in place.
func (s *Scaffolder) generate(ctx context.Context, r *run) (state, error) {
	req := generator.Request{
		Dir:      filepath.Dir(r.target.Root),
		Name:     filepath.Base(r.target.Root),
		Template: r.target.TemplateID,
	}
	if r.target.Dir == "." {
		req.Dir, req.Name = r.target.Root, "."
	}
	s.Log.Info().Str("template", req.Template).Str("name", req.Name).Msg("generating base project")
	if err := s.Generator.Generate(ctx, req); err != nil {
		return stateGenerate, fmt.Errorf("generating %s from template %q: %w", r.target.Root, req.Template, err)
	}
	return stateOverlay, nil
}

// overlay copies the common tree and then the template's own tree, when it
// exists, over the generated project.
func (s *Scaffolder) overlay(_ context.Context, r *run) (state, error) {
	if s.Overlays == nil {
		s.Log.Debug().Msg("no overlay trees configured")
		return stateManifest, nil
	}

	copier := materialize.NewCopier(s.Overlays, s.FS)
	for _, tree := range []string{CommonOverlay, r.target.TemplateID} {
		ok, err := afero.DirExists(s.Overlays, tree)
		if err != nil {
			return stateOverlay, fmt.Errorf("checking overlay %s: %w", tree, err)
		}
		if !ok {
			s.Log.Debug().Str("overlay", tree).Msg("overlay tree absent, skipping")
			continue
		}
		if err := copier.CopyTree(tree, r.target.Root); err != nil {
			return stateOverlay, fmt.Errorf("applying overlay %s: %w", tree, err)
		}
		if err := s.markHooks(tree, r.target.Root); err != nil {
			return stateOverlay, err
		}
		r.overlays = append(r.overlays, tree)
		s.Log.Info().Str("overlay", tree).Msg("applied overlay")
	}
	return stateManifest, nil
}

// mergeManifest folds the common and framework fragments into the generated
// package.json and stamps the package name.
func (s *Scaffolder) mergeManifest(_ context.Context, r *run) (state, error) {
	path := filepath.Join(r.target.Root, pkgjson.FileName)
	ok, err := materialize.Exists(s.FS, path)
	if err != nil {
		return stateManifest, fmt.Errorf("checking %s: %w", path, err)
	}
	if !ok {
		return stateManifest, fmt.Errorf("generator did not write %s", path)
	}
	base, err := pkgjson.ReadFile(s.FS, path)
	if err != nil {
		return stateManifest, err
	}

	frameworkOverlay, err := s.Catalog.ResolveOverlay(r.target.TemplateID)
	if err != nil {
		return stateManifest, err
	}
	if frameworkOverlay.IsEmpty() {
		s.Log.Debug().Str("template", r.target.TemplateID).Msg("framework adds nothing to package.json")
	}
	merged, err := pkgjson.Merge(base, s.Catalog.Common(), frameworkOverlay)
	if err != nil {
		return stateManifest, fmt.Errorf("merging %s: %w", path, err)
	}
	if err := merged.SetName(r.target.PackageName); err != nil {
		return stateManifest, fmt.Errorf("setting package name: %w", err)
	}
	if err := pkgjson.WriteFile(s.FS, path, merged); err != nil {
		return stateManifest, err
	}
	s.Log.Debug().Str("path", path).Msg("wrote package.json")
	return stateDone, nil
}

// markHooks makes the git hooks an overlay tree ships executable in the
// project. Embedded files carry no exec bit.
func (s *Scaffolder) markHooks(tree, root string) error {
	for _, dir := range hookDirs {
		ok, err := afero.DirExists(s.Overlays, filepath.Join(tree, dir))
		if err != nil {
			return fmt.Errorf("checking overlay %s: %w", filepath.Join(tree, dir), err)
		}
		if !ok {
			continue
		}
		changed, err := platform.MakeExecutable(s.FS, filepath.Join(root, dir))
		if err != nil {
			return fmt.Errorf("marking hooks executable: %w", err)
		}
		s.Log.Debug().Strs("hooks", changed).Msg("hooks marked executable")
	}
	return nil
}

func (s *Scaffolder) closePrompter() {
	c, ok := s.Prompter.(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		s.Log.Debug().Err(err).Msg("closing prompter")
	}
}

func (s *Scaffolder) resolve(dir string) string {
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(s.Cwd, dir)
}

// formatTargetDir trims surrounding whitespace and trailing slashes.
func formatTargetDir(dir string) string {
	return strings.TrimRight(strings.TrimSpace(dir), `/\`)
}
