package document

import (
	"fmt"

	"github.com/rpggio/sena/internal/validate"
)

// Input field names.
const (
	FieldFileName    = "file_name"
	FieldType        = "type"
	FieldDescription = "description"
	FieldVersion     = "version"
	FieldSize        = "size_bytes"
)

// Fields is a validated upload form.
type Fields struct {
	FileName    string
	Type        Type
	Description string
	Version     string
	SizeBytes   int64
}

// Validate checks an upload form. The size is checked here so oversized
// files never reach the store.
func Validate(in validate.Input) (*Fields, error) {
	r := validate.NewReader(in)
	f := &Fields{
		FileName:    r.Text(FieldFileName, true, 255),
		Type:        Type(r.Choice(FieldType, false, typeValues(), string(TypeOther))),
		Description: r.Text(FieldDescription, false, 0),
		Version:     r.Text(FieldVersion, false, 10),
	}
	if f.Version == "" && r.Valid(FieldVersion) {
		f.Version = DefaultVersion
	}

	if size, ok := r.Int(FieldSize, true); ok {
		switch {
		case size <= 0:
			r.Errors().Add(FieldSize, "The file is empty.")
		case int64(size) > MaxSize:
			r.Errors().Add(FieldSize, fmt.Sprintf("The file exceeds the maximum size of %d MB.", MaxSize>>20))
		default:
			f.SizeBytes = int64(size)
		}
	}

	if err := r.Errors().Err(); err != nil {
		return nil, err
	}
	return f, nil
}

func typeValues() []string {
	out := make([]string, len(Types))
	for i, t := range Types {
		out[i] = string(t)
	}
	return out
}
