package comment

import "time"

// Type classifies a comment.
type Type string

const (
	TypeComment    Type = "comment"
	TypeSuggestion Type = "suggestion"
	TypeEvaluation Type = "evaluation"
	TypeApproval   Type = "approval"
)

// Types lists valid comment types in display order.
var Types = []Type{TypeComment, TypeSuggestion, TypeEvaluation, TypeApproval}

// EditWindow is how long after creation the author may edit a comment.
const EditWindow = 30 * time.Minute

// Comment is a remark on a project. A comment with a ParentID is a reply;
// replies always point at a top-level comment.
type Comment struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"project_id"`
	AuthorID   string    `json:"author_id"`
	Text       string    `json:"text"`
	Type       Type      `json:"type"`
	Rating     *int      `json:"rating,omitempty"`
	ParentID   *string   `json:"parent_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
	Active     bool      `json:"active"`
}

// IsReply reports whether c answers another comment.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}

// CanEdit reports whether userID may edit c at now: the author only, and
// strictly within EditWindow of creation.
func (c *Comment) CanEdit(userID string, now time.Time) bool {
	if userID == "" || c.AuthorID != userID {
		return false
	}
	return now.Sub(c.CreatedAt) < EditWindow
}
