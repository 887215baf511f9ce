package project

import (
	"time"

	"github.com/rpggio/sena/internal/clock"
	"github.com/rpggio/sena/internal/domain/user"
	"github.com/shopspring/decimal"
)

// State represents the lifecycle state of a project.
type State string

const (
	StateProposed    State = "proposed"
	StateInReview    State = "in_review"
	StateApproved    State = "approved"
	StateInExecution State = "in_execution"
	StateFinished    State = "finished"
	StateCancelled   State = "cancelled"
)

// States lists every state in lifecycle order.
var States = []State{
	StateProposed,
	StateInReview,
	StateApproved,
	StateInExecution,
	StateFinished,
	StateCancelled,
}

var stateLabels = map[State]string{
	StateProposed:    "Proposed",
	StateInReview:    "In review",
	StateApproved:    "Approved",
	StateInExecution: "In execution",
	StateFinished:    "Finished",
	StateCancelled:   "Cancelled",
}

// Label returns the display name of the state.
func (s State) Label() string {
	if l, ok := stateLabels[s]; ok {
		return l
	}
	return string(s)
}

// Running reports whether work on a project in this state is under way.
func (s State) Running() bool {
	return s == StateApproved || s == StateInExecution
}

// Project is an R&D project tracked through its lifecycle.
type Project struct {
	ID                    string          `json:"id"`
	Title                 string          `json:"title"`
	Description           string          `json:"description"`
	ProposingArea         user.Area       `json:"proposing_area"`
	ResponsibleID         string          `json:"responsible_id"`
	CollaboratorIDs       []string        `json:"collaborator_ids,omitempty"`
	GeneralObjectives     string          `json:"general_objectives"`
	SpecificObjectives    string          `json:"specific_objectives"`
	Scope                 string          `json:"scope"`
	Limitations           string          `json:"limitations,omitempty"`
	EstimatedBudget       decimal.Decimal `json:"estimated_budget"`
	TentativeSchedule     string          `json:"tentative_schedule"`
	RequiredResources     string          `json:"required_resources"`
	ExpectedBeneficiaries string          `json:"expected_beneficiaries"`
	SuccessIndicators     string          `json:"success_indicators"`
	State                 State           `json:"state"`
	CompletionPercentage  int             `json:"completion_percentage"`
	CreatedAt             time.Time       `json:"created_at"`
	EstimatedStart        *time.Time      `json:"estimated_start,omitempty"`
	EstimatedEnd          *time.Time      `json:"estimated_end,omitempty"`
	ActualEnd             *time.Time      `json:"actual_end,omitempty"`
	Active                bool            `json:"active"`
	Version               int             `json:"version"`
}

// IsOverdue reports whether a running project has passed its estimated end.
func (p *Project) IsOverdue(now time.Time) bool {
	if p.EstimatedEnd == nil || !p.State.Running() {
		return false
	}
	return p.EstimatedEnd.Before(clock.Today(now))
}

// DaysRemaining returns the whole days until the estimated end, never
// negative. It is nil when no estimated end is set.
func (p *Project) DaysRemaining(now time.Time) *int {
	if p.EstimatedEnd == nil {
		return nil
	}
	days := int(clock.Today(*p.EstimatedEnd).Sub(clock.Today(now)).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return &days
}

// HasMember reports whether userID owns or collaborates on the project.
func (p *Project) HasMember(userID string) bool {
	if p.ResponsibleID == userID {
		return true
	}
	for _, id := range p.CollaboratorIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Counts holds the number of related active rows of a project.
type Counts struct {
	Comments      int `json:"comments"`
	Documents     int `json:"documents"`
	Collaborators int `json:"collaborators"`
}

// Stats summarizes a single project.
type Stats struct {
	Counts
	DaysRemaining        *int `json:"days_remaining,omitempty"`
	Overdue              bool `json:"overdue"`
	CompletionPercentage int  `json:"completion_percentage"`
}
