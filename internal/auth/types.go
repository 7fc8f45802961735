package auth

import "time"

// User is an account that can authenticate against the service. A user
// submitting documents belongs to a society; accountants usually do not.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
	SocietyID    string // empty when the user has no society
	Active       bool
	Roles        []Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Society is a tenant organization that owns documents and has
// affiliated users.
type Society struct {
	ID           string
	Name         string
	ICE          string
	Address      string
	Phone        string
	ContactEmail string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
