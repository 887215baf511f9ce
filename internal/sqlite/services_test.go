package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/sena/internal/clock"
	"github.com/rpggio/sena/internal/domain/comment"
	"github.com/rpggio/sena/internal/domain/document"
	"github.com/rpggio/sena/internal/domain/history"
	"github.com/rpggio/sena/internal/domain/learner"
	"github.com/rpggio/sena/internal/domain/project"
	"github.com/rpggio/sena/internal/domain/user"
	"github.com/rpggio/sena/internal/validate"
	"github.com/stretchr/testify/require"
)

func projectInput(responsibleID string) validate.Input {
	return validate.Input{
		"title":                  "Solar dryer for coffee",
		"description":            "Low cost dryer built with local materials.",
		"proposing_area":         "sennova",
		"responsible_id":         responsibleID,
		"general_objectives":     "Reduce drying time.",
		"specific_objectives":    "Build and test a prototype.",
		"scope":                  "Two pilot farms.",
		"budget":                 "2500000.00",
		"tentative_schedule":     "Six months.",
		"required_resources":     "Polycarbonate, fans.",
		"expected_beneficiaries": "Small producers.",
		"success_indicators":     "Drying time below 48h.",
		"estimated_start":        "2024-07-01",
		"estimated_end":          "2024-12-20",
	}
}

func newProjectService(db *DB, clk clock.Clock) *project.Service {
	return project.NewService(NewProjectRepository(db), NewHistoryRepository(db), NewUserRepository(db), clk, nil)
}

func TestProjectLifecycle(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	clk := clock.NewManual(testNow)
	owner := seedUser(t, db, "owner", user.RoleCollaborator)
	seedUser(t, db, "helper", user.RoleCollaborator)
	admin := seedUser(t, db, "admin", user.RoleAdmin)
	svc := newProjectService(db, clk)

	p, err := svc.Create(ctx, owner.Actor(), projectInput("owner"))
	require.NoError(t, err)
	require.Equal(t, project.StateProposed, p.State)

	clk.Advance(time.Hour)
	edited, err := svc.Edit(ctx, owner.Actor(), p.ID, validate.Input{
		"state":            "in_review",
		"collaborator_ids": "helper",
	})
	require.NoError(t, err)
	require.Equal(t, 2, edited.Version)

	stored, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, project.StateInReview, stored.State)
	require.Equal(t, []string{"helper"}, stored.CollaboratorIDs)

	// Re-submitting the stored values changes nothing
	again, err := svc.Edit(ctx, owner.Actor(), p.ID, stored.EditFields().Input())
	require.NoError(t, err)
	require.Equal(t, 2, again.Version)

	_, err = svc.Edit(ctx, owner.Actor(), p.ID, validate.Input{"state": "finished"})
	require.ErrorIs(t, err, project.ErrInvalidTransition)

	entries, err := svc.History(ctx, p.ID, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, history.ActionUpdated, entries[0].Action)
	require.Equal(t, "Updated fields: collaborator_ids, state", entries[0].Description)
	require.Equal(t, history.ActionStateChanged, entries[1].Action)
	require.Equal(t, "proposed", entries[1].PreviousState)
	require.Equal(t, "in_review", entries[1].NewState)
	require.Equal(t, history.ActionCreated, entries[2].Action)

	stats, err := svc.Stats(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, 1, stats.Collaborators)
	require.NotNil(t, stats.DaysRemaining)

	require.ErrorIs(t, svc.Delete(ctx, owner.Actor(), p.ID), project.ErrDeleteNotAllowed)
	require.NoError(t, svc.Delete(ctx, admin.Actor(), p.ID))
	_, err = svc.Get(ctx, p.ID)
	require.ErrorIs(t, err, project.ErrProjectNotFound)
}

// racingProjects lets another writer update a project right after it is read.
type racingProjects struct {
	*ProjectRepository
}

func (r racingProjects) Get(ctx context.Context, id string) (*project.Project, error) {
	p, err := r.ProjectRepository.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	other := *p
	other.Scope = "Changed elsewhere."
	other.Version = p.Version + 1
	if err := r.ProjectRepository.Update(ctx, &other, p.Version, nil); err != nil {
		return nil, err
	}
	return p, nil
}

func TestProjectEditConflict(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner", user.RoleCollaborator)
	clk := clock.NewManual(testNow)

	p, err := newProjectService(db, clk).Create(ctx, owner.Actor(), projectInput("owner"))
	require.NoError(t, err)

	racing := project.NewService(racingProjects{NewProjectRepository(db)}, NewHistoryRepository(db), NewUserRepository(db), clk, nil)
	_, err = racing.Edit(ctx, owner.Actor(), p.ID, validate.Input{"scope": "Mine."})
	require.ErrorIs(t, err, project.ErrProjectConflict)

	stored, err := NewProjectRepository(db).Get(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "Changed elsewhere.", stored.Scope)
	require.Equal(t, 2, stored.Version)

	entries, err := NewHistoryRepository(db).List(ctx, p.ID, history.ListOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 1, "only the created entry survives")
}

func TestProjectInactiveResponsible(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner", user.RoleCollaborator)
	seedUser(t, db, "gone", user.RoleCollaborator)
	require.NoError(t, NewUserRepository(db).Deactivate(ctx, "gone"))
	svc := newProjectService(db, clock.NewManual(testNow))

	_, err := svc.Create(ctx, owner.Actor(), projectInput("gone"))
	verrs, ok := validate.AsErrors(err)
	require.True(t, ok)
	require.Equal(t, []string{project.MsgInactiveUser}, verrs.Fields[project.FieldResponsible])
}

func TestProjectEditWithDeactivatedCollaborator(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner", user.RoleCollaborator)
	seedUser(t, db, "helper", user.RoleCollaborator)
	seedUser(t, db, "gone", user.RoleCollaborator)
	svc := newProjectService(db, clock.NewManual(testNow))

	in := projectInput("owner")
	in["collaborator_ids"] = "helper"
	p, err := svc.Create(ctx, owner.Actor(), in)
	require.NoError(t, err)

	require.NoError(t, NewUserRepository(db).Deactivate(ctx, "helper"))
	require.NoError(t, NewUserRepository(db).Deactivate(ctx, "gone"))

	edited, err := svc.Edit(ctx, owner.Actor(), p.ID, validate.Input{"completion_percentage": 40})
	require.NoError(t, err)
	require.Equal(t, 40, edited.CompletionPercentage)
	require.Equal(t, []string{"helper"}, edited.CollaboratorIDs)

	// Adding an inactive user is still rejected.
	_, err = svc.Edit(ctx, owner.Actor(), p.ID, validate.Input{"collaborator_ids": "helper, gone"})
	verrs, ok := validate.AsErrors(err)
	require.True(t, ok)
	require.Equal(t, []string{"User gone is not an active user."}, verrs.Fields[project.FieldCollaborators])
}

func TestCommentsAndDocumentsWriteHistory(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	clk := clock.NewManual(testNow)
	owner := seedUser(t, db, "owner", user.RoleCollaborator)
	projects := newProjectService(db, clk)
	comments := comment.NewService(NewCommentRepository(db), NewProjectRepository(db), clk, nil)
	documents := document.NewService(NewDocumentRepository(db), NewProjectRepository(db), clk, nil)

	p, err := projects.Create(ctx, owner.Actor(), projectInput("owner"))
	require.NoError(t, err)

	clk.Advance(time.Minute)
	top, err := comments.Add(ctx, owner.Actor(), p.ID, validate.Input{"text": "Looks good", "type": "evaluation", "rating": 5})
	require.NoError(t, err)

	clk.Advance(time.Minute)
	reply, err := comments.Reply(ctx, owner.Actor(), top.ID, validate.Input{"text": "Thanks"})
	require.NoError(t, err)
	nested, err := comments.Reply(ctx, owner.Actor(), reply.ID, validate.Input{"text": "Nested"})
	require.NoError(t, err)
	require.Equal(t, top.ID, *nested.ParentID)

	clk.Advance(time.Minute)
	_, err = documents.Upload(ctx, owner.Actor(), p.ID, validate.Input{"file_name": "plan.pdf", "type": "proposal", "size_bytes": 1024})
	require.NoError(t, err)

	replies, err := comments.Replies(ctx, top.ID)
	require.NoError(t, err)
	require.Len(t, replies, 2)

	entries, err := projects.History(ctx, p.ID, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, history.ActionDocumentUploaded, entries[0].Action)
	require.Equal(t, history.ActionCommentAdded, entries[1].Action)
	require.Equal(t, history.ActionCreated, entries[2].Action)

	stats, err := projects.Stats(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, 3, stats.Comments)
	require.Equal(t, 1, stats.Documents)
}

func TestLearnerDuplicateDocument(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	svc := learner.NewService(NewLearnerRepository(db), clock.NewManual(testNow), nil)

	in := validate.Input{
		"document_number": "12345",
		"first_name":      "Ana",
		"last_name":       "Diaz",
		"program":         "ADSI",
		"birth_date":      "2000-01-01",
	}
	_, err := svc.Create(ctx, in)
	require.NoError(t, err)

	_, err = svc.Create(ctx, in)
	verrs, ok := validate.AsErrors(err)
	require.True(t, ok)
	require.Equal(t, []string{learner.MsgDuplicateDocument}, verrs.Fields[learner.FieldDocument])

	in["document_number"] = "67890"
	_, err = svc.Create(ctx, in)
	require.NoError(t, err)
}
