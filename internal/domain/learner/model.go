package learner

import "time"

// Learner is a person enrolled in a training program.
type Learner struct {
	ID             string    `json:"id"`
	DocumentNumber string    `json:"document_number"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Program        string    `json:"program"`
	Phone          string    `json:"phone,omitempty"`
	Email          string    `json:"email,omitempty"`
	BirthDate      time.Time `json:"birth_date"`
	City           string    `json:"city,omitempty"`
	RegisteredAt   time.Time `json:"registered_at"`
	Active         bool      `json:"active"`
}

// FullName returns first and last name.
func (l *Learner) FullName() string {
	return l.FirstName + " " + l.LastName
}

// Stats summarizes the active learners.
type Stats struct {
	Total       int `json:"total"`
	WithProgram int `json:"with_program"`
	Programs    int `json:"programs"`
}
