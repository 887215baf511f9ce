package comment

import "github.com/rpggio/sena/internal/validate"

// Input field names.
const (
	FieldText   = "text"
	FieldType   = "type"
	FieldRating = "rating"
)

// MsgRatingRequired is reported when an evaluation has no rating.
const MsgRatingRequired = "Evaluations require a rating from 1 to 5."

// Fields is a validated comment form.
type Fields struct {
	Text   string
	Type   Type
	Rating *int
}

// Validate checks a comment form.
func Validate(in validate.Input) (*Fields, error) {
	r := validate.NewReader(in)
	f := &Fields{
		Text: r.Text(FieldText, true, 0),
		Type: Type(r.Choice(FieldType, false, typeValues(), string(TypeComment))),
	}
	if rating, ok := r.IntRange(FieldRating, false, 1, 5); ok {
		f.Rating = &rating
	}

	if f.Type == TypeEvaluation && f.Rating == nil && r.Valid(FieldRating) {
		r.Errors().Add(FieldRating, MsgRatingRequired)
	}

	if err := r.Errors().Err(); err != nil {
		return nil, err
	}
	return f, nil
}

// Input renders f back into a raw form.
func (f *Fields) Input() validate.Input {
	in := validate.Input{
		FieldText: f.Text,
		FieldType: string(f.Type),
	}
	if f.Rating != nil {
		in[FieldRating] = *f.Rating
	}
	return in
}

func typeValues() []string {
	out := make([]string, len(Types))
	for i, t := range Types {
		out[i] = string(t)
	}
	return out
}
