package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rpggio/sena/internal/domain/user"
	"github.com/rpggio/sena/internal/export"
	"github.com/spf13/cobra"
)

func newReportCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Dashboards and management reports",
	}

	dashboard := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the project overview for the acting user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAs(opts, cmd, func(ctx context.Context, app *App, actor user.Actor) (any, error) {
				return app.Reports.Dashboard(ctx, actor, app.Clock.Now())
			})
		},
	}

	summary := &cobra.Command{
		Use:   "summary",
		Short: "Show the management summary of all active projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, cmd, func(ctx context.Context, app *App) (any, error) {
				return app.Reports.Summary(ctx, app.Clock.Now())
			})
		},
	}

	var output string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the management summary to an Excel workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, cmd, func(ctx context.Context, app *App) (any, error) {
				if output == "" {
					output = fmt.Sprintf("sena-report-%s.xlsx", app.Clock.Now().Format("20060102-150405"))
				}
				s, err := app.Reports.Summary(ctx, app.Clock.Now())
				if err != nil {
					return nil, err
				}
				f, err := os.Create(output)
				if err != nil {
					return nil, WrapExitError(ExitCommandError, "create report file", err)
				}
				defer f.Close()
				if err := export.WriteSummary(f, s); err != nil {
					return nil, WrapExitError(ExitCommandError, "write report", err)
				}
				if err := f.Close(); err != nil {
					return nil, WrapExitError(ExitCommandError, "write report", err)
				}
				return map[string]any{"path": output, "projects": s.Total}, nil
			})
		},
	}
	exportCmd.Flags().StringVarP(&output, "output", "o", "", "workbook path (default sena-report-<timestamp>.xlsx)")

	cmd.AddCommand(dashboard, summary, exportCmd)
	return cmd
}
