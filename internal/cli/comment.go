package cli

import (
	"context"

	"github.com/rpggio/sena/internal/domain/comment"
	"github.com/rpggio/sena/internal/domain/user"
	"github.com/spf13/cobra"
)

// Thread is a top-level comment with its replies, oldest reply first.
type Thread struct {
	comment.Comment
	Replies []comment.Comment `json:"replies"`
}

func newCommentCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Discuss projects",
		Long: `Discuss projects.

Fields: text, type (comment|suggestion|evaluation|approval), rating (1-5,
required for evaluations).`,
	}

	addInput := &InputOptions{}
	add := &cobra.Command{
		Use:   "add <project-id>",
		Short: "Comment on a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAs(opts, cmd, func(ctx context.Context, app *App, actor user.Actor) (any, error) {
				in, err := addInput.Read()
				if err != nil {
					return nil, err
				}
				return app.Comments.Add(ctx, actor, args[0], in)
			})
		},
	}
	addInput.bind(add)

	replyInput := &InputOptions{}
	reply := &cobra.Command{
		Use:   "reply <comment-id>",
		Short: "Reply to a comment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAs(opts, cmd, func(ctx context.Context, app *App, actor user.Actor) (any, error) {
				in, err := replyInput.Read()
				if err != nil {
					return nil, err
				}
				return app.Comments.Reply(ctx, actor, args[0], in)
			})
		},
	}
	replyInput.bind(reply)

	editInput := &InputOptions{}
	edit := &cobra.Command{
		Use:   "edit <comment-id>",
		Short: "Edit your own comment within 30 minutes of posting it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAs(opts, cmd, func(ctx context.Context, app *App, actor user.Actor) (any, error) {
				in, err := editInput.Read()
				if err != nil {
					return nil, err
				}
				return app.Comments.Edit(ctx, actor, args[0], in)
			})
		},
	}
	editInput.bind(edit)

	list := &cobra.Command{
		Use:   "list <project-id>",
		Short: "Show the comment threads of a project, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, cmd, func(ctx context.Context, app *App) (any, error) {
				top, err := app.Comments.ListTopLevel(ctx, args[0])
				if err != nil {
					return nil, err
				}
				threads := make([]Thread, 0, len(top))
				for _, c := range top {
					replies, err := app.Comments.Replies(ctx, c.ID)
					if err != nil {
						return nil, err
					}
					threads = append(threads, Thread{Comment: c, Replies: nonNil(replies)})
				}
				return threads, nil
			})
		},
	}

	cmd.AddCommand(add, reply, edit, list)
	return cmd
}
