package user

import "time"

// Role is a user's permission level.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleCoordinator  Role = "coordinator"
	RoleCollaborator Role = "collaborator"
	RoleConsultant   Role = "consultant"
)

// Area is an organizational area. Projects are proposed by an area too.
type Area string

const (
	AreaSennova        Area = "sennova"
	AreaTrainingCenter Area = "training_center"
	AreaRegionalOffice Area = "regional_office"
	AreaGeneralOffice  Area = "general_office"
)

// Roles lists valid roles in display order.
var Roles = []Role{RoleAdmin, RoleCoordinator, RoleCollaborator, RoleConsultant}

// Areas lists valid areas in display order.
var Areas = []Area{AreaSennova, AreaTrainingCenter, AreaRegionalOffice, AreaGeneralOffice}

var areaLabels = map[Area]string{
	AreaSennova:        "SENNOVA",
	AreaTrainingCenter: "Training Center",
	AreaRegionalOffice: "Regional Office",
	AreaGeneralOffice:  "General Office",
}

// Label returns the display name of the area.
func (a Area) Label() string {
	if l, ok := areaLabels[a]; ok {
		return l
	}
	return string(a)
}

// User is a person registered in the system.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	FullName     string    `json:"full_name,omitempty"`
	Role         Role      `json:"role"`
	Area         Area      `json:"area"`
	Phone        string    `json:"phone,omitempty"`
	Active       bool      `json:"active"`
	RegisteredAt time.Time `json:"registered_at"`
}

// DisplayName returns the full name, falling back to the username.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

// Actor returns the acting identity for u.
func (u *User) Actor() Actor {
	return Actor{UserID: u.ID, Role: u.Role}
}

// Actor identifies who performs an operation.
type Actor struct {
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
}

// IsManager reports whether the actor may manage any project.
func (a Actor) IsManager() bool {
	return a.Role == RoleAdmin || a.Role == RoleCoordinator
}
