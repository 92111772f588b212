package models

import "time"

// User roles. ADMIN and ORGANIZER may confirm or reject any pending
// elimination and manage games; PLAYER acts only through its participant.
const (
	RoleAdmin     = "ADMIN"
	RoleOrganizer = "ORGANIZER"
	RolePlayer    = "PLAYER"
)

// User represents the users table in the database.
type User struct {
	ID        string    `json:"id"` // Primary key (uuid)
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsOrganizerRole reports whether role carries organizer privileges.
func IsOrganizerRole(role string) bool {
	return role == RoleAdmin || role == RoleOrganizer
}
