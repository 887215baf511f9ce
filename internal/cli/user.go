package cli

import (
	"context"

	"github.com/rpggio/sena/internal/domain/user"
	"github.com/spf13/cobra"
)

func newUserCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage system users",
	}

	createInput := &InputOptions{}
	create := &cobra.Command{
		Use:   "create",
		Short: "Register a user",
		Long: `Register a user.

Fields: username, full_name, role (admin|coordinator|collaborator|consultant),
area (sennova|training_center|regional_office|general_office), phone.

Example:
  sena user create --set username=mgarcia --set role=coordinator --set area=sennova`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, cmd, func(ctx context.Context, app *App) (any, error) {
				in, err := createInput.Read()
				if err != nil {
					return nil, err
				}
				return app.Users.Create(ctx, in)
			})
		},
	}
	createInput.bind(create)

	get := &cobra.Command{
		Use:   "get <user-id>",
		Short: "Show a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, cmd, func(ctx context.Context, app *App) (any, error) {
				return app.Users.Get(ctx, args[0])
			})
		},
	}

	var limit int
	search := &cobra.Command{
		Use:   "search [query]",
		Short: "Find active users by username",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			return run(opts, cmd, func(ctx context.Context, app *App) (any, error) {
				users, err := app.Users.Search(ctx, query, limit)
				return nonNil(users), err
			})
		},
	}
	search.Flags().IntVar(&limit, "limit", user.DefaultSearchLimit, "maximum number of users")

	deactivate := &cobra.Command{
		Use:   "deactivate <user-id>",
		Short: "Deactivate a user (administrators only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAs(opts, cmd, func(ctx context.Context, app *App, actor user.Actor) (any, error) {
				if err := app.Users.Deactivate(ctx, actor, args[0]); err != nil {
					return nil, err
				}
				return map[string]string{"id": args[0], "status": "deactivated"}, nil
			})
		},
	}

	cmd.AddCommand(create, get, search, deactivate)
	return cmd
}
