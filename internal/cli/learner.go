package cli

import (
	"context"

	"github.com/rpggio/sena/internal/domain/user"
	"github.com/spf13/cobra"
)

func newLearnerCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "learner",
		Short: "Manage learners",
	}

	createInput := &InputOptions{}
	create := &cobra.Command{
		Use:   "create",
		Short: "Register a learner",
		Long: `Register a learner.

Fields: document_number, first_name, last_name, program, phone, email,
birth_date (YYYY-MM-DD), city.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, cmd, func(ctx context.Context, app *App) (any, error) {
				in, err := createInput.Read()
				if err != nil {
					return nil, err
				}
				return app.Learners.Create(ctx, in)
			})
		},
	}
	createInput.bind(create)

	get := &cobra.Command{
		Use:   "get <learner-id>",
		Short: "Show a learner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, cmd, func(ctx context.Context, app *App) (any, error) {
				return app.Learners.Get(ctx, args[0])
			})
		},
	}

	var search string
	list := &cobra.Command{
		Use:   "list",
		Short: "List learners by last name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, cmd, func(ctx context.Context, app *App) (any, error) {
				learners, err := app.Learners.List(ctx, search)
				return nonNil(learners), err
			})
		},
	}
	list.Flags().StringVar(&search, "search", "", "match names, document number or program")

	del := &cobra.Command{
		Use:   "delete <learner-id>",
		Short: "Delete a learner (managers only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAs(opts, cmd, func(ctx context.Context, app *App, actor user.Actor) (any, error) {
				if err := app.Learners.Delete(ctx, actor, args[0]); err != nil {
					return nil, err
				}
				return map[string]string{"id": args[0], "status": "deleted"}, nil
			})
		},
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Count learners and programs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, cmd, func(ctx context.Context, app *App) (any, error) {
				return app.Learners.Stats(ctx)
			})
		},
	}

	cmd.AddCommand(create, get, list, del, stats)
	return cmd
}
