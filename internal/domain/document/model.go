package document

import (
	"math"
	"time"
)

// Type classifies an attached document.
type Type string

const (
	TypeProposal       Type = "proposal"
	TypeBudget         Type = "budget"
	TypeSchedule       Type = "schedule"
	TypeProgressReport Type = "progress_report"
	TypeDeliverable    Type = "deliverable"
	TypeOther          Type = "other"
)

// Types lists valid document types in display order.
var Types = []Type{TypeProposal, TypeBudget, TypeSchedule, TypeProgressReport, TypeDeliverable, TypeOther}

// MaxSize is the largest accepted file, in bytes.
const MaxSize int64 = 50 << 20

// DefaultVersion labels a document uploaded without a version.
const DefaultVersion = "1.0"

// Document describes a file attached to a project. The file content itself
// is stored elsewhere.
type Document struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	AuthorID    string    `json:"author_id"`
	FileName    string    `json:"file_name"`
	Type        Type      `json:"type"`
	Description string    `json:"description,omitempty"`
	Version     string    `json:"version"`
	SizeBytes   int64     `json:"size_bytes"`
	UploadedAt  time.Time `json:"uploaded_at"`
	Active      bool      `json:"active"`
}

// SizeMB returns the size in mebibytes rounded to two decimals.
func (d *Document) SizeMB() float64 {
	return math.Round(float64(d.SizeBytes)/(1<<20)*100) / 100
}
