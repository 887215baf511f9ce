package cli

import (
	"context"

	"github.com/rpggio/sena/internal/domain/user"
	"github.com/spf13/cobra"
)

func newDocumentCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "document",
		Short: "Record documents attached to projects",
	}

	uploadInput := &InputOptions{}
	upload := &cobra.Command{
		Use:   "upload <project-id>",
		Short: "Record an uploaded document",
		Long: `Record an uploaded document. The file itself is stored elsewhere.

Fields: file_name, type (proposal|budget|schedule|progress_report|deliverable|other),
description, version (default 1.0), size_bytes (at most 50 MB).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAs(opts, cmd, func(ctx context.Context, app *App, actor user.Actor) (any, error) {
				in, err := uploadInput.Read()
				if err != nil {
					return nil, err
				}
				return app.Documents.Upload(ctx, actor, args[0], in)
			})
		},
	}
	uploadInput.bind(upload)

	list := &cobra.Command{
		Use:   "list <project-id>",
		Short: "List the documents of a project, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, cmd, func(ctx context.Context, app *App) (any, error) {
				docs, err := app.Documents.List(ctx, args[0])
				return nonNil(docs), err
			})
		},
	}

	cmd.AddCommand(upload, list)
	return cmd
}
