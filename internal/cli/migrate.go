package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func newMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Long: `Create or update the database schema. Every command migrates the
database on open; this command only does that.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, cmd, func(ctx context.Context, app *App) (any, error) {
				return map[string]string{"database": app.DBPath, "status": "migrated"}, nil
			})
		},
	}
}

// nonNil keeps empty lists from rendering as null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
