package user

import "github.com/rpggio/sena/internal/validate"

// Fields is a validated user input.
type Fields struct {
	Username string
	FullName string
	Role     Role
	Area     Area
	Phone    string
}

// Validate checks raw user input.
func Validate(in validate.Input) (*Fields, error) {
	r := validate.NewReader(in)
	f := &Fields{
		Username: r.Text("username", true, 150),
		FullName: r.Text("full_name", false, 150),
		Role:     Role(r.Choice("role", false, roleValues(), string(RoleCollaborator))),
		Area:     Area(r.Choice("area", true, AreaValues(), "")),
		Phone:    r.Digits("phone", false, 15),
	}
	if err := r.Errors().Err(); err != nil {
		return nil, err
	}
	return f, nil
}

// AreaValues returns the valid area identifiers.
func AreaValues() []string {
	out := make([]string, len(Areas))
	for i, a := range Areas {
		out[i] = string(a)
	}
	return out
}

func roleValues() []string {
	out := make([]string, len(Roles))
	for i, r := range Roles {
		out[i] = string(r)
	}
	return out
}
