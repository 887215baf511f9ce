package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rpggio/sena/internal/domain/history"
	"github.com/rpggio/sena/internal/domain/project"
	"github.com/rpggio/sena/internal/domain/user"
	"github.com/rpggio/sena/internal/validate"
	"github.com/spf13/cobra"
)

// ProjectPage is one page of a project listing.
type ProjectPage struct {
	Total    int               `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
	Projects []project.Project `json:"projects"`
}

type projectListFlags struct {
	search       string
	state        string
	area         string
	responsible  string
	collaborator string
	member       string
	from         string
	to           string
	limit        int
	offset       int
}

func (f *projectListFlags) options() (project.ListOptions, error) {
	opts := project.ListOptions{
		Search:         f.search,
		State:          project.State(f.state),
		Area:           user.Area(f.area),
		ResponsibleID:  f.responsible,
		CollaboratorID: f.collaborator,
		MemberID:       f.member,
		Limit:          f.limit,
		Offset:         f.offset,
	}
	states := make([]string, len(project.States))
	for i, st := range project.States {
		states[i] = string(st)
	}
	if err := checkChoiceFlag("state", f.state, states); err != nil {
		return project.ListOptions{}, err
	}
	if err := checkChoiceFlag("area", f.area, user.AreaValues()); err != nil {
		return project.ListOptions{}, err
	}

	var err error
	if opts.CreatedFrom, err = parseDateFlag("from", f.from); err != nil {
		return project.ListOptions{}, err
	}
	if opts.CreatedTo, err = parseDateFlag("to", f.to); err != nil {
		return project.ListOptions{}, err
	}
	return opts, nil
}

// checkChoiceFlag accepts an empty value or one of allowed.
func checkChoiceFlag(name, value string, allowed []string) error {
	if value == "" || slices.Contains(allowed, value) {
		return nil
	}
	return NewExitError(ExitCommandError,
		fmt.Sprintf("invalid --%s %q: must be one of %s", name, value, strings.Join(allowed, ", ")))
}

func parseDateFlag(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(validate.DateLayout, value)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("invalid --%s date (want YYYY-MM-DD)", name), err)
	}
	return &t, nil
}

func newProjectCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Track R&D projects",
	}

	createInput := &InputOptions{}
	create := &cobra.Command{
		Use:   "create",
		Short: "Propose a new project",
		Long: `Propose a new project. It starts in the proposed state.

Fields: title, description, proposing_area, responsible_id, collaborator_ids,
general_objectives, specific_objectives, scope, limitations, budget,
tentative_schedule, required_resources, expected_beneficiaries,
success_indicators, estimated_start, estimated_end.

Example:
  sena project create --actor <user-id> -f project.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAs(opts, cmd, func(ctx context.Context, app *App, actor user.Actor) (any, error) {
				in, err := createInput.Read()
				if err != nil {
					return nil, err
				}
				return app.Projects.Create(ctx, actor, in)
			})
		},
	}
	createInput.bind(create)

	editInput := &InputOptions{}
	edit := &cobra.Command{
		Use:   "edit <project-id>",
		Short: "Edit a project (owner or manager)",
		Long: `Edit a project. Only the given fields change; the rest keep their
current values. Title, proposing area and responsible user cannot be edited.

Example:
  sena project edit <project-id> --actor <user-id> --set state=in_review --set completion_percentage=10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAs(opts, cmd, func(ctx context.Context, app *App, actor user.Actor) (any, error) {
				in, err := editInput.Read()
				if err != nil {
					return nil, err
				}
				return app.Projects.Edit(ctx, actor, args[0], in)
			})
		},
	}
	editInput.bind(edit)

	del := &cobra.Command{
		Use:   "delete <project-id>",
		Short: "Delete a project (managers only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAs(opts, cmd, func(ctx context.Context, app *App, actor user.Actor) (any, error) {
				if err := app.Projects.Delete(ctx, actor, args[0]); err != nil {
					return nil, err
				}
				return map[string]string{"id": args[0], "status": "deleted"}, nil
			})
		},
	}

	get := &cobra.Command{
		Use:   "get <project-id>",
		Short: "Show a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, cmd, func(ctx context.Context, app *App) (any, error) {
				return app.Projects.Get(ctx, args[0])
			})
		},
	}

	lf := &projectListFlags{}
	list := &cobra.Command{
		Use:   "list",
		Short: "List active projects, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, cmd, func(ctx context.Context, app *App) (any, error) {
				listOpts, err := lf.options()
				if err != nil {
					return nil, err
				}
				total, err := app.Projects.Count(ctx, listOpts)
				if err != nil {
					return nil, err
				}
				projects, err := app.Projects.List(ctx, listOpts)
				if err != nil {
					return nil, err
				}
				limit := listOpts.Limit
				if limit <= 0 {
					limit = project.DefaultPageSize
				}
				return ProjectPage{Total: total, Limit: limit, Offset: listOpts.Offset, Projects: nonNil(projects)}, nil
			})
		},
	}
	list.Flags().StringVar(&lf.search, "search", "", "match title, description or general objectives")
	list.Flags().StringVar(&lf.state, "state", "", "filter by state")
	list.Flags().StringVar(&lf.area, "area", "", "filter by proposing area")
	list.Flags().StringVar(&lf.responsible, "responsible", "", "filter by responsible user ID")
	list.Flags().StringVar(&lf.collaborator, "collaborator", "", "filter by collaborator user ID")
	list.Flags().StringVar(&lf.member, "member", "", "projects owned by or shared with a user ID")
	list.Flags().StringVar(&lf.from, "from", "", "created on or after date (YYYY-MM-DD)")
	list.Flags().StringVar(&lf.to, "to", "", "created on or before date (YYYY-MM-DD)")
	list.Flags().IntVar(&lf.limit, "limit", project.DefaultPageSize, "page size")
	list.Flags().IntVar(&lf.offset, "offset", 0, "number of projects to skip")

	stats := &cobra.Command{
		Use:   "stats <project-id>",
		Short: "Summarize a project's activity and schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, cmd, func(ctx context.Context, app *App) (any, error) {
				return app.Projects.Stats(ctx, args[0])
			})
		},
	}

	var historyLimit int
	var historyAction string
	hist := &cobra.Command{
		Use:   "history <project-id>",
		Short: "Show the change history of a project, newest first",
		Long:  "Show the change history of a project, newest first. Deleted projects keep their history.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, cmd, func(ctx context.Context, app *App) (any, error) {
				listOpts := history.ListOptions{Limit: historyLimit}
				if historyAction != "" {
					action := history.Action(historyAction)
					listOpts.Action = &action
				}
				entries, err := app.History.List(ctx, args[0], listOpts)
				return nonNil(entries), err
			})
		},
	}
	hist.Flags().IntVar(&historyLimit, "limit", history.DefaultLimit, "maximum number of entries")
	hist.Flags().StringVar(&historyAction, "action", "", "only entries with this action")

	var overdueLimit int
	overdue := &cobra.Command{
		Use:   "overdue",
		Short: "List running projects past their estimated end",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, cmd, func(ctx context.Context, app *App) (any, error) {
				projects, err := app.Projects.Overdue(ctx, overdueLimit)
				return nonNil(projects), err
			})
		},
	}
	overdue.Flags().IntVar(&overdueLimit, "limit", project.DefaultPageSize, "maximum number of projects")

	transitions := &cobra.Command{
		Use:   "transitions <project-id>",
		Short: "Show the states a project may move to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, cmd, func(ctx context.Context, app *App) (any, error) {
				p, err := app.Projects.Get(ctx, args[0])
				if err != nil {
					return nil, err
				}
				return map[string]any{"state": p.State, "next": nonNil(project.NextStates(p.State))}, nil
			})
		},
	}

	cmd.AddCommand(create, edit, del, get, list, stats, hist, overdue, transitions)
	return cmd
}
