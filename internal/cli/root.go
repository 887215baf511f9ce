package cli

import (
	"context"
	"fmt"

	"github.com/rpggio/sena/internal/clock"
	"github.com/rpggio/sena/internal/domain/user"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	DBPath     string
	ActorID    string

	// Clock overrides the system clock. Not a flag.
	Clock clock.Clock
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the sena CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sena",
		Short: "SENA records core",
		Long: `Manage the records of a training center: R&D projects with their
comments, documents and change history, learners, training programs and users.

Field values are read from a YAML or JSON file (--file) and --set key=value
flags. Mutating commands act as the user named by --actor.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return opts.formatter(cmd).Fail(NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats)))
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default $SENA_CONFIG_PATH)")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "database path (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.ActorID, "actor", "", "ID of the acting user")

	cmd.AddCommand(newMigrateCommand(opts))
	cmd.AddCommand(newUserCommand(opts))
	cmd.AddCommand(newProjectCommand(opts))
	cmd.AddCommand(newCommentCommand(opts))
	cmd.AddCommand(newDocumentCommand(opts))
	cmd.AddCommand(newLearnerCommand(opts))
	cmd.AddCommand(newProgramCommand(opts))
	cmd.AddCommand(newReportCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// run opens the app, runs fn and writes its result or error.
func run(opts *RootOptions, cmd *cobra.Command, fn func(ctx context.Context, app *App) (any, error)) error {
	f := opts.formatter(cmd)

	app, err := Open(opts)
	if err != nil {
		return f.Fail(err)
	}
	defer app.Close()
	f.VerboseLog("using database %s", app.DBPath)

	data, err := fn(cmd.Context(), app)
	if err != nil {
		return f.Fail(err)
	}
	if err := f.Success(data); err != nil {
		return WrapExitError(ExitCommandError, "write output", err)
	}
	return nil
}

// runAs is run for commands that act as the --actor user.
func runAs(opts *RootOptions, cmd *cobra.Command, fn func(ctx context.Context, app *App, actor user.Actor) (any, error)) error {
	return run(opts, cmd, func(ctx context.Context, app *App) (any, error) {
		actor, err := app.Actor(ctx, opts.ActorID)
		if err != nil {
			return nil, err
		}
		return fn(ctx, app, actor)
	})
}
