package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/adilaitelhoucine1/gestion-des-documents/internal/ids"
)

// MemoryUsers implements UserStore in process memory. Used in tests and
// when the API runs without a database.
type MemoryUsers struct {
	mu    sync.RWMutex
	users map[string]*User // keyed by email, exact match
}

var _ UserStore = (*MemoryUsers)(nil)

// NewMemoryUsers creates an empty in-memory user store.
func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{users: make(map[string]*User)}
}

func (s *MemoryUsers) Create(ctx context.Context, u *User) error {
	if strings.TrimSpace(u.Email) == "" {
		return errors.New("auth: email is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[u.Email]; exists {
		return ErrAlreadyExists
	}
	if u.ID == "" {
		u.ID = ids.New()
	}
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	stored := *u
	stored.Roles = append([]Role(nil), u.Roles...)
	s.users[u.Email] = &stored
	return nil
}

func (s *MemoryUsers) FindByEmail(ctx context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	out := *stored
	out.Roles = append([]Role(nil), stored.Roles...)
	return &out, nil
}
