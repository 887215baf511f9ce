package program

import (
	"math"
	"time"

	"github.com/rpggio/sena/internal/validate"
)

// Input field names.
const (
	FieldCode                  = "code"
	FieldName                  = "name"
	FieldLevel                 = "level"
	FieldModality              = "modality"
	FieldDurationMonths        = "duration_months"
	FieldDurationHours         = "duration_hours"
	FieldDescription           = "description"
	FieldCompetencies          = "competencies"
	FieldGraduateProfile       = "graduate_profile"
	FieldAdmissionRequirements = "admission_requirements"
	FieldTrainingCenter        = "training_center"
	FieldRegional              = "regional"
	FieldStatus                = "status"
	FieldCreatedOn             = "created_on"
)

// MsgDuplicateCode is reported when the code is taken.
const MsgDuplicateCode = "A program with this code already exists."

// Fields is a validated program form.
type Fields struct {
	Code                  string
	Name                  string
	Level                 Level
	Modality              Modality
	DurationMonths        int
	DurationHours         int
	Description           string
	Competencies          string
	GraduateProfile       string
	AdmissionRequirements string
	TrainingCenter        string
	Regional              string
	Status                Status
	// CreatedOn is nil when the form leaves it to the current date.
	CreatedOn *time.Time
}

// Validate checks a program form.
func Validate(in validate.Input) (*Fields, error) {
	r := validate.NewReader(in)
	f := &Fields{
		Code:                  r.Text(FieldCode, true, 20),
		Name:                  r.Text(FieldName, true, 200),
		Level:                 Level(r.Choice(FieldLevel, true, enumValues(Levels), "")),
		Modality:              Modality(r.Choice(FieldModality, true, enumValues(Modalities), "")),
		Description:           r.Text(FieldDescription, true, 0),
		Competencies:          r.Text(FieldCompetencies, true, 0),
		GraduateProfile:       r.Text(FieldGraduateProfile, true, 0),
		AdmissionRequirements: r.Text(FieldAdmissionRequirements, true, 0),
		TrainingCenter:        r.Text(FieldTrainingCenter, true, 100),
		Regional:              r.Text(FieldRegional, true, 100),
		Status: Status(r.Choice(FieldStatus, false,
			[]string{string(StatusActive), string(StatusInactive)}, string(StatusActive))),
		CreatedOn: r.Date(FieldCreatedOn, false),
	}
	f.DurationMonths, _ = r.IntRange(FieldDurationMonths, true, 1, math.MaxInt32)
	f.DurationHours, _ = r.IntRange(FieldDurationHours, true, 1, math.MaxInt32)

	if err := r.Errors().Err(); err != nil {
		return nil, err
	}
	return f, nil
}

func enumValues[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
