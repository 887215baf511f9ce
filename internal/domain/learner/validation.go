package learner

import (
	"context"
	"time"

	"github.com/rpggio/sena/internal/clock"
	"github.com/rpggio/sena/internal/domain/domainerr"
	"github.com/rpggio/sena/internal/validate"
)

// Input field names.
const (
	FieldDocument  = "document_number"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldProgram   = "program"
	FieldPhone     = "phone"
	FieldEmail     = "email"
	FieldBirthDate = "birth_date"
	FieldCity      = "city"
)

const (
	MsgDuplicateDocument = "A learner with this document number already exists."
	MsgBirthInFuture     = "The birth date cannot be in the future."
)

// Fields is a validated learner form.
type Fields struct {
	DocumentNumber string
	FirstName      string
	LastName       string
	Program        string
	Phone          string
	Email          string
	BirthDate      time.Time
	City           string
}

// Validator checks learner forms.
type Validator struct {
	documents DocumentLookup
	clock     clock.Clock
}

// NewValidator creates a learner validator.
func NewValidator(documents DocumentLookup, clk clock.Clock) *Validator {
	return &Validator{documents: documents, clock: clock.OrSystem(clk)}
}

// Validate checks a learner form, including document uniqueness among
// active learners.
func (v *Validator) Validate(ctx context.Context, in validate.Input) (*Fields, error) {
	r := validate.NewReader(in)
	f := &Fields{
		DocumentNumber: r.Digits(FieldDocument, true, 20),
		FirstName:      r.Text(FieldFirstName, true, 100),
		LastName:       r.Text(FieldLastName, true, 100),
		Program:        r.Text(FieldProgram, true, 100),
		Phone:          r.Digits(FieldPhone, false, 15),
		Email:          r.Email(FieldEmail, false, 254),
		City:           r.Text(FieldCity, false, 100),
	}
	if born := r.Date(FieldBirthDate, true); born != nil {
		if born.After(clock.Today(v.clock.Now())) {
			r.Errors().Add(FieldBirthDate, MsgBirthInFuture)
		} else {
			f.BirthDate = *born
		}
	}

	if f.DocumentNumber != "" && v.documents != nil {
		exists, err := v.documents.ExistsActiveDocument(ctx, f.DocumentNumber)
		if err != nil {
			return nil, domainerr.Persistence("check learner document", err)
		}
		if exists {
			r.Errors().Add(FieldDocument, MsgDuplicateDocument)
		}
	}

	if err := r.Errors().Err(); err != nil {
		return nil, err
	}
	return f, nil
}
