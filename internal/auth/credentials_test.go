package auth

import (
	"context"
	"errors"
	"testing"
)

func TestCredentialVerify(t *testing.T) {
	users := NewMemoryUsers()
	seedUser(t, users, "user1@example.com", []Role{RoleSociete}, true)
	seedUser(t, users, "inactive@example.com", []Role{RoleSociete}, false)

	v := NewCredentialVerifier(users)
	ctx := context.Background()

	user, err := v.Verify(ctx, "user1@example.com", "password123")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if user.Email != "user1@example.com" {
		t.Fatalf("unexpected user: %q", user.Email)
	}

	cases := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{"unknown user", "nobody@example.com", "password123", ErrUnknownUser},
		{"wrong password", "user1@example.com", "wrong", ErrBadCredentials},
		{"inactive user", "inactive@example.com", "password123", ErrInactiveUser},
		{"empty email", "", "password123", ErrBadCredentials},
		{"empty password", "user1@example.com", "", ErrBadCredentials},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := v.Verify(ctx, tc.email, tc.password); !errors.Is(err, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCredentialVerifyExactEmailMatch(t *testing.T) {
	users := NewMemoryUsers()
	seedUser(t, users, "user1@example.com", []Role{RoleSociete}, true)

	v := NewCredentialVerifier(users)
	// Lookup is case sensitive; a differently cased email is a different account.
	if _, err := v.Verify(context.Background(), "User1@Example.com", "password123"); !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("want ErrUnknownUser, got %v", err)
	}
}
