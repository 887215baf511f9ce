package project

import (
	"context"
	"fmt"
	"time"

	"github.com/rpggio/sena/internal/domain/domainerr"
	"github.com/rpggio/sena/internal/domain/user"
	"github.com/rpggio/sena/internal/validate"
	"github.com/shopspring/decimal"
)

// Input field names.
const (
	FieldTitle              = "title"
	FieldDescription        = "description"
	FieldProposingArea      = "proposing_area"
	FieldResponsible        = "responsible_id"
	FieldCollaborators      = "collaborator_ids"
	FieldGeneralObjectives  = "general_objectives"
	FieldSpecificObjectives = "specific_objectives"
	FieldScope              = "scope"
	FieldLimitations        = "limitations"
	FieldBudget             = "budget"
	FieldSchedule           = "tentative_schedule"
	FieldResources          = "required_resources"
	FieldBeneficiaries      = "expected_beneficiaries"
	FieldIndicators         = "success_indicators"
	FieldEstimatedStart     = "estimated_start"
	FieldEstimatedEnd       = "estimated_end"
	FieldActualEnd          = "actual_end"
	FieldState              = "state"
	FieldCompletion         = "completion_percentage"
)

const maxTitleLength = 200

// Messages for rules specific to projects.
const (
	MsgBudgetPositive   = "The estimated budget must be greater than 0."
	MsgDateOrder        = "The estimated end date must be after the estimated start date."
	MsgInactiveUser     = "Select a valid active user."
	MsgFieldNotEditable = "This field cannot be edited."
	MsgFieldNotAllowed  = "This field cannot be set when proposing a project."
)

// creatableFields are the keys accepted by ValidateCreate.
var creatableFields = []string{
	FieldTitle,
	FieldDescription,
	FieldProposingArea,
	FieldResponsible,
	FieldCollaborators,
	FieldGeneralObjectives,
	FieldSpecificObjectives,
	FieldScope,
	FieldLimitations,
	FieldBudget,
	FieldSchedule,
	FieldResources,
	FieldBeneficiaries,
	FieldIndicators,
	FieldEstimatedStart,
	FieldEstimatedEnd,
}

// editableFields are the keys accepted by ValidateEdit, in display order.
var editableFields = []string{
	FieldDescription,
	FieldCollaborators,
	FieldGeneralObjectives,
	FieldSpecificObjectives,
	FieldScope,
	FieldLimitations,
	FieldBudget,
	FieldSchedule,
	FieldResources,
	FieldBeneficiaries,
	FieldIndicators,
	FieldState,
	FieldCompletion,
	FieldEstimatedStart,
	FieldEstimatedEnd,
	FieldActualEnd,
}

// Content holds the descriptive fields shared by the create and edit forms.
type Content struct {
	Description           string
	GeneralObjectives     string
	SpecificObjectives    string
	Scope                 string
	Limitations           string
	EstimatedBudget       decimal.Decimal
	TentativeSchedule     string
	RequiredResources     string
	ExpectedBeneficiaries string
	SuccessIndicators     string
	EstimatedStart        *time.Time
	EstimatedEnd          *time.Time
}

// Fields is a validated creation form.
type Fields struct {
	Content
	Title           string
	ProposingArea   user.Area
	ResponsibleID   string
	CollaboratorIDs []string
}

// EditFields is a validated edit form.
type EditFields struct {
	Content
	CollaboratorIDs      []string
	State                State
	CompletionPercentage int
	ActualEnd            *time.Time
}

// Validator checks project forms. Reference checks against users go through
// the injected ActiveChecker; a nil checker skips them.
type Validator struct {
	users ActiveChecker
}

// NewValidator creates a project validator.
func NewValidator(users ActiveChecker) *Validator {
	return &Validator{users: users}
}

// ValidateCreate checks a creation form. All per-field rules run before any
// cross-field rule, and every failure is reported.
func (v *Validator) ValidateCreate(ctx context.Context, in validate.Input) (*Fields, error) {
	r := validate.NewReader(in)
	for key := range in {
		if !contains(creatableFields, key) {
			r.Errors().Add(key, MsgFieldNotAllowed)
		}
	}

	f := &Fields{
		Title:           r.Text(FieldTitle, true, maxTitleLength),
		ProposingArea:   user.Area(r.Choice(FieldProposingArea, true, user.AreaValues(), "")),
		ResponsibleID:   r.Text(FieldResponsible, true, 0),
		CollaboratorIDs: r.IDs(FieldCollaborators),
	}
	f.Content = readContent(r)

	if err := v.checkUsers(ctx, r, f.ResponsibleID, f.CollaboratorIDs); err != nil {
		return nil, err
	}
	checkDates(r, f.EstimatedStart, f.EstimatedEnd)

	if err := r.Errors().Err(); err != nil {
		return nil, err
	}
	return f, nil
}

// ValidateEdit checks a complete edit form, usually the current values of a
// project merged with the submitted changes. Only collaborators not in
// existing are checked against the active users.
func (v *Validator) ValidateEdit(ctx context.Context, in validate.Input, existing []string) (*EditFields, error) {
	r := validate.NewReader(in)
	for key := range in {
		if !contains(editableFields, key) {
			r.Errors().Add(key, MsgFieldNotEditable)
		}
	}

	f := &EditFields{
		CollaboratorIDs: r.IDs(FieldCollaborators),
		State:           State(r.Choice(FieldState, true, stateValues(), "")),
		ActualEnd:       r.Date(FieldActualEnd, false),
	}
	f.CompletionPercentage, _ = r.IntRange(FieldCompletion, true, 0, 100)
	f.Content = readContent(r)

	var added []string
	for _, id := range f.CollaboratorIDs {
		if !contains(existing, id) {
			added = append(added, id)
		}
	}
	if err := v.checkUsers(ctx, r, "", added); err != nil {
		return nil, err
	}
	checkDates(r, f.EstimatedStart, f.EstimatedEnd)

	if err := r.Errors().Err(); err != nil {
		return nil, err
	}
	return f, nil
}

func readContent(r *validate.Reader) Content {
	c := Content{
		Description:           r.Text(FieldDescription, true, 0),
		GeneralObjectives:     r.Text(FieldGeneralObjectives, true, 0),
		SpecificObjectives:    r.Text(FieldSpecificObjectives, true, 0),
		Scope:                 r.Text(FieldScope, true, 0),
		Limitations:           r.Text(FieldLimitations, false, 0),
		TentativeSchedule:     r.Text(FieldSchedule, true, 0),
		RequiredResources:     r.Text(FieldResources, true, 0),
		ExpectedBeneficiaries: r.Text(FieldBeneficiaries, true, 0),
		SuccessIndicators:     r.Text(FieldIndicators, true, 0),
		EstimatedStart:        r.Date(FieldEstimatedStart, false),
		EstimatedEnd:          r.Date(FieldEstimatedEnd, false),
	}
	budget, ok := r.Currency(FieldBudget, true)
	if ok && !budget.IsPositive() {
		r.Errors().Add(FieldBudget, MsgBudgetPositive)
	}
	c.EstimatedBudget = budget
	return c
}

// checkUsers verifies that the responsible user and the collaborators are
// active. Fields that already failed are skipped.
func (v *Validator) checkUsers(ctx context.Context, r *validate.Reader, responsible string, collaborators []string) error {
	if v.users == nil {
		return nil
	}

	var ids []string
	if responsible != "" && r.Valid(FieldResponsible) {
		ids = append(ids, responsible)
	}
	if r.Valid(FieldCollaborators) {
		ids = append(ids, collaborators...)
	}
	if len(ids) == 0 {
		return nil
	}

	missing, err := v.users.AreActive(ctx, ids)
	if err != nil {
		return domainerr.Persistence("check active users", err)
	}
	for _, id := range missing {
		if id == responsible {
			r.Errors().Add(FieldResponsible, MsgInactiveUser)
			continue
		}
		r.Errors().Add(FieldCollaborators, fmt.Sprintf("User %s is not an active user.", id))
	}
	return nil
}

// checkDates requires the estimated end to fall strictly after the
// estimated start. The failure is record-scoped.
func checkDates(r *validate.Reader, start, end *time.Time) {
	if start == nil || end == nil {
		return
	}
	if !end.After(*start) {
		r.Errors().AddNonField(MsgDateOrder)
	}
}

func contains(list []string, key string) bool {
	for _, f := range list {
		if f == key {
			return true
		}
	}
	return false
}

func (c Content) fill(in validate.Input) {
	in[FieldDescription] = c.Description
	in[FieldGeneralObjectives] = c.GeneralObjectives
	in[FieldSpecificObjectives] = c.SpecificObjectives
	in[FieldScope] = c.Scope
	in[FieldLimitations] = c.Limitations
	in[FieldBudget] = c.EstimatedBudget.StringFixed(2)
	in[FieldSchedule] = c.TentativeSchedule
	in[FieldResources] = c.RequiredResources
	in[FieldBeneficiaries] = c.ExpectedBeneficiaries
	in[FieldIndicators] = c.SuccessIndicators
	in[FieldEstimatedStart] = validate.FormatDate(c.EstimatedStart)
	in[FieldEstimatedEnd] = validate.FormatDate(c.EstimatedEnd)
}

// Input renders f back into a raw form that validates to the same value.
func (f *Fields) Input() validate.Input {
	in := validate.Input{
		FieldTitle:         f.Title,
		FieldProposingArea: string(f.ProposingArea),
		FieldResponsible:   f.ResponsibleID,
	}
	if len(f.CollaboratorIDs) > 0 {
		in[FieldCollaborators] = append([]string(nil), f.CollaboratorIDs...)
	}
	f.Content.fill(in)
	return in
}

// Input renders f back into a raw form that validates to the same value.
func (f *EditFields) Input() validate.Input {
	in := validate.Input{
		FieldState:      string(f.State),
		FieldCompletion: f.CompletionPercentage,
		FieldActualEnd:  validate.FormatDate(f.ActualEnd),
	}
	if len(f.CollaboratorIDs) > 0 {
		in[FieldCollaborators] = append([]string(nil), f.CollaboratorIDs...)
	}
	f.Content.fill(in)
	return in
}

// EditFields returns the editable values of p.
func (p *Project) EditFields() *EditFields {
	return &EditFields{
		Content: Content{
			Description:           p.Description,
			GeneralObjectives:     p.GeneralObjectives,
			SpecificObjectives:    p.SpecificObjectives,
			Scope:                 p.Scope,
			Limitations:           p.Limitations,
			EstimatedBudget:       p.EstimatedBudget,
			TentativeSchedule:     p.TentativeSchedule,
			RequiredResources:     p.RequiredResources,
			ExpectedBeneficiaries: p.ExpectedBeneficiaries,
			SuccessIndicators:     p.SuccessIndicators,
			EstimatedStart:        p.EstimatedStart,
			EstimatedEnd:          p.EstimatedEnd,
		},
		CollaboratorIDs:      p.CollaboratorIDs,
		State:                p.State,
		CompletionPercentage: p.CompletionPercentage,
		ActualEnd:            p.ActualEnd,
	}
}

// apply copies the validated edit values onto p.
func (f *EditFields) apply(p *Project) {
	p.Description = f.Description
	p.GeneralObjectives = f.GeneralObjectives
	p.SpecificObjectives = f.SpecificObjectives
	p.Scope = f.Scope
	p.Limitations = f.Limitations
	p.EstimatedBudget = f.EstimatedBudget
	p.TentativeSchedule = f.TentativeSchedule
	p.RequiredResources = f.RequiredResources
	p.ExpectedBeneficiaries = f.ExpectedBeneficiaries
	p.SuccessIndicators = f.SuccessIndicators
	p.EstimatedStart = f.EstimatedStart
	p.EstimatedEnd = f.EstimatedEnd
	p.CollaboratorIDs = f.CollaboratorIDs
	p.State = f.State
	p.CompletionPercentage = f.CompletionPercentage
	p.ActualEnd = f.ActualEnd
}
