package history

import "time"

// Action labels a change event on a project.
type Action string

const (
	ActionCreated          Action = "created"
	ActionStateChanged     Action = "state_changed"
	ActionUpdated          Action = "updated"
	ActionDeleted          Action = "deleted"
	ActionCommentAdded     Action = "comment_added"
	ActionDocumentUploaded Action = "document_uploaded"
)

// Entry is an immutable audit row describing one change on a project.
type Entry struct {
	ID            int64     `json:"id"`
	ProjectID     string    `json:"project_id"`
	ActorID       string    `json:"actor_id"`
	Action        Action    `json:"action"`
	Description   string    `json:"description"`
	PreviousState string    `json:"previous_state,omitempty"`
	NewState      string    `json:"new_state,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
