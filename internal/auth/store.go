package auth

import "context"

// UserStore is the persistence contract the auth subsystem needs.
// Lookups are by exact, case-sensitive email match.
type UserStore interface {
	Create(ctx context.Context, u *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
}

// SocietyStore manages tenant organizations.
type SocietyStore interface {
	Create(ctx context.Context, s *Society) error
	Find(ctx context.Context, id string) (*Society, error)
}
