package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/frontkit/create-frontend/internal/catalog"
	"github.com/frontkit/create-frontend/internal/config"
	"github.com/frontkit/create-frontend/internal/generator"
	"github.com/frontkit/create-frontend/internal/logging"
	"github.com/frontkit/create-frontend/internal/pkgmanager"
	"github.com/frontkit/create-frontend/internal/prompt"
	"github.com/frontkit/create-frontend/internal/runtime"
	"github.com/frontkit/create-frontend/internal/scaffold"
)

var (
	createTemplate  string
	createOverwrite bool
)

func init() {
	rootCmd.Flags().StringVarP(&createTemplate, "template", "t", "", "Template id (see 'list'); prompts when missing or unknown")
	rootCmd.Flags().BoolVar(&createOverwrite, "overwrite", false, "Empty a non-empty project directory without asking")
}

func runCreate(cmd *cobra.Command, args []string) error {
	config.Load()

	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	overlays, err := loadOverlays()
	if err != nil {
		return err
	}

	pm := pkgmanager.FromEnv()
	command := config.Get(config.KeyGenerator)
	if command == "" {
		command = pm.CreateCommand()
		checkRuntime(cmd.Context(), pm)
	}

	gen := &generator.Exec{
		Command: command,
		Stdin:   cmd.InOrStdin(),
		Stdout:  cmd.OutOrStdout(),
		Stderr:  cmd.ErrOrStderr(),
		Log:     logging.Component("generator"),
	}
	s := &scaffold.Scaffolder{
		Catalog:     cat,
		Prompter:    prompt.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout()),
		Generator:   gen,
		FS:          afero.NewOsFs(),
		Overlays:    overlays,
		DefaultName: config.Get(config.KeyDefaultProjectName),
		Log:         logging.Component("scaffold"),
	}

	opts := scaffold.Options{Template: createTemplate, Overwrite: createOverwrite}
	if len(args) > 0 {
		opts.TargetDir = args[0]
	}

	// An interrupt cancels the pending question, or stops the generator.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	result, err := s.Run(ctx, opts)
	if errors.Is(err, scaffold.ErrCancelled) {
		fmt.Fprintln(cmd.OutOrStdout(), cancelledMark+" Operation cancelled")
		return nil
	}
	if err != nil {
		return err
	}

	return printNextSteps(cmd.OutOrStdout(), s.Cwd, result, pm)
}

// checkRuntime warns when the runtime the default generator needs is missing
// or outside its supported range. It never fails the command.
func checkRuntime(ctx context.Context, pm pkgmanager.Info) {
	logger := logging.Component("runtime")
	rt := runtime.DispatchRuntime(pm.Name)
	v, err := runtime.Check(ctx, rt, runtime.Requirement(pm.Name))
	if err != nil {
		logger.Warn().Err(err).Msg("the generator may fail")
		return
	}
	logger.Debug().Str("runtime", rt.Name()).Str("version", v.String()).Msg("runtime supported")
}

func loadCatalog() (*catalog.Catalog, error) {
	if path := config.Get(config.KeyCatalogFile); path != "" {
		return catalog.LoadFile(path)
	}
	return catalog.Default()
}

// loadOverlays returns the configured overlay directory, read-only, or the
// built-in overlay trees.
func loadOverlays() (afero.Fs, error) {
	dir := config.Get(config.KeyOverlayDir)
	if dir == "" {
		return scaffold.DefaultOverlays(), nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("overlay directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("overlay directory %s is not a directory", dir)
	}
	return afero.NewReadOnlyFs(afero.NewBasePathFs(afero.NewOsFs(), dir)), nil
}
