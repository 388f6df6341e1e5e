package models

import "time"

// UserRole разделяет три вида участников платформы.
type UserRole string

const (
	RoleAthlete      UserRole = "athlete"
	RoleOrganization UserRole = "organization"
	RoleDonor        UserRole = "donor"
)

type User struct {
	ID           int       `json:"id" db:"id"`
	FullName     string    `json:"full_name" db:"full_name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         UserRole  `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
