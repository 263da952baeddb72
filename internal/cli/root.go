package cli

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/frontkit/create-frontend/internal/branding"
	"github.com/frontkit/create-frontend/internal/logging"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var verbosity int

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " [project-directory]",
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds a frontend project: it runs the Vite generator for the
chosen template, then adds shared lint, format and commit-hook configuration
and merges the matching scripts and devDependencies into package.json.

Questions are skipped for every value given on the command line. Use "." as
the project directory to scaffold into the current directory.`,
	Example: `  ` + branding.CLIName() + `
  ` + branding.CLIName() + ` my-app --template react-ts
  ` + branding.CLIName() + ` . -t vue --overwrite`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(cmd.ErrOrStderr(), verbosity)
	},
	RunE: runCreate,
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug, -vvv trace)")
}

// Execute runs the root command with build info injected via ldflags. Errors
// are logged before being returned.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	// Flag parsing errors surface before PersistentPreRun; log them too.
	logging.Setup(os.Stderr, 0)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Error().Err(err).Msg(branding.CLIName() + " failed")
		return err
	}
	return nil
}
