package report

import (
	"time"

	"github.com/rpggio/sena/internal/domain/project"
	"github.com/rpggio/sena/internal/domain/user"
	"github.com/shopspring/decimal"
)

// StateCount is the number of active projects in a state.
type StateCount struct {
	State   project.State `json:"state"`
	Label   string        `json:"label"`
	Count   int           `json:"count"`
	Percent float64       `json:"percent"`
}

// AreaCount is the number and budget of active projects of an area.
type AreaCount struct {
	Area    user.Area       `json:"area"`
	Label   string          `json:"label"`
	Count   int             `json:"count"`
	Percent float64         `json:"percent"`
	Budget  decimal.Decimal `json:"budget"`
}

// AreaTotal is the raw aggregate the store returns per area.
type AreaTotal struct {
	Count  int
	Budget decimal.Decimal
}

// UserActivity counts what an active user owns and wrote.
type UserActivity struct {
	UserID        string `json:"user_id"`
	Username      string `json:"username"`
	FullName      string `json:"full_name,omitempty"`
	OwnedProjects int    `json:"owned_projects"`
	Comments      int    `json:"comments"`
}

// ProjectActivity ranks a project by discussion.
type ProjectActivity struct {
	ProjectID string        `json:"project_id"`
	Title     string        `json:"title"`
	State     project.State `json:"state"`
	Comments  int           `json:"comments"`
	CreatedAt time.Time     `json:"created_at"`
}

// Bucket counts project creations in [Start, End).
type Bucket struct {
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Count int       `json:"count"`
}

// Dashboard is the landing overview for one user.
type Dashboard struct {
	Total         int               `json:"total"`
	Running       int               `json:"running"`
	ByState       []StateCount      `json:"by_state"`
	ByArea        []AreaCount       `json:"by_area"`
	Owned         int               `json:"owned"`
	Collaborating int               `json:"collaborating"`
	Recent        []project.Project `json:"recent"`
	Overdue       []project.Project `json:"overdue"`
}

// Summary is the management report over all active projects.
type Summary struct {
	GeneratedAt   time.Time         `json:"generated_at"`
	Total         int               `json:"total"`
	TotalBudget   decimal.Decimal   `json:"total_budget"`
	ByState       []StateCount      `json:"by_state"`
	ByArea        []AreaCount       `json:"by_area"`
	TopUsers      []UserActivity    `json:"top_users"`
	MostDiscussed []ProjectActivity `json:"most_discussed"`
	Monthly       []Bucket          `json:"monthly"`
}
