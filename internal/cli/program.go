package cli

import (
	"context"

	"github.com/rpggio/sena/internal/domain/program"
	"github.com/spf13/cobra"
)

func newProgramCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "program",
		Short: "Manage training programs",
	}

	createInput := &InputOptions{}
	create := &cobra.Command{
		Use:   "create",
		Short: "Register a training program",
		Long: `Register a training program.

Fields: code, name, level (auxiliary|operator|technician|technologist|specialization),
modality (in_person|virtual|blended), duration_months, duration_hours,
description, competencies, graduate_profile, admission_requirements,
training_center, regional, status (active|inactive), created_on.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, cmd, func(ctx context.Context, app *App) (any, error) {
				in, err := createInput.Read()
				if err != nil {
					return nil, err
				}
				return app.Programs.Create(ctx, in)
			})
		},
	}
	createInput.bind(create)

	get := &cobra.Command{
		Use:   "get <program-id>",
		Short: "Show a training program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, cmd, func(ctx context.Context, app *App) (any, error) {
				return app.Programs.Get(ctx, args[0])
			})
		},
	}

	var search, status, level string
	list := &cobra.Command{
		Use:   "list",
		Short: "List training programs by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, cmd, func(ctx context.Context, app *App) (any, error) {
				programs, err := app.Programs.List(ctx, program.ListOptions{
					Search: search,
					Status: program.Status(status),
					Level:  program.Level(level),
				})
				return nonNil(programs), err
			})
		},
	}
	list.Flags().StringVar(&search, "search", "", "match code or name")
	list.Flags().StringVar(&status, "status", "", "filter by status")
	list.Flags().StringVar(&level, "level", "", "filter by training level")

	cmd.AddCommand(create, get, list)
	return cmd
}
