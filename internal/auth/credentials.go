package auth

import (
	"context"
	"errors"
)

// CredentialVerifier checks submitted email/password pairs against
// stored user records.
type CredentialVerifier struct {
	users UserStore
}

// NewCredentialVerifier constructs a CredentialVerifier backed by the
// given store.
func NewCredentialVerifier(users UserStore) *CredentialVerifier {
	return &CredentialVerifier{users: users}
}

// Verify looks the user up by exact email match and compares the
// password against the stored bcrypt hash. Failure causes are distinct
// here (ErrUnknownUser, ErrInactiveUser, ErrBadCredentials); callers
// must present them uniformly to the client.
func (v *CredentialVerifier) Verify(ctx context.Context, email, password string) (*User, error) {
	if email == "" || password == "" {
		return nil, ErrBadCredentials
	}
	user, err := v.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}
	if !user.Active {
		return nil, ErrInactiveUser
	}
	if err := VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, ErrBadCredentials
	}
	return user, nil
}
