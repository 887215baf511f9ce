package program

import "time"

// Level is the training level of a program.
type Level string

const (
	LevelAuxiliary      Level = "auxiliary"
	LevelOperator       Level = "operator"
	LevelTechnician     Level = "technician"
	LevelTechnologist   Level = "technologist"
	LevelSpecialization Level = "specialization"
)

// Levels lists valid training levels in display order.
var Levels = []Level{LevelAuxiliary, LevelOperator, LevelTechnician, LevelTechnologist, LevelSpecialization}

// Modality is how a program is delivered.
type Modality string

const (
	ModalityInPerson Modality = "in_person"
	ModalityVirtual  Modality = "virtual"
	ModalityBlended  Modality = "blended"
)

// Modalities lists valid modalities in display order.
var Modalities = []Modality{ModalityInPerson, ModalityVirtual, ModalityBlended}

// Status reports whether a program is offered.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Program is a training program offered by a center.
type Program struct {
	ID                    string    `json:"id"`
	Code                  string    `json:"code"`
	Name                  string    `json:"name"`
	Level                 Level     `json:"level"`
	Modality              Modality  `json:"modality"`
	DurationMonths        int       `json:"duration_months"`
	DurationHours         int       `json:"duration_hours"`
	Description           string    `json:"description"`
	Competencies          string    `json:"competencies"`
	GraduateProfile       string    `json:"graduate_profile"`
	AdmissionRequirements string    `json:"admission_requirements"`
	TrainingCenter        string    `json:"training_center"`
	Regional              string    `json:"regional"`
	Status                Status    `json:"status"`
	CreatedOn             time.Time `json:"created_on"`
}
