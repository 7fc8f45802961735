package document

import (
	"context"
	"sync"
	"time"
)

// InMemory implements Store with in-process locking. Used in tests and
// when the API runs without a database. The mutex gives Validate the
// same atomicity the SQL store gets from its row lock.
type InMemory struct {
	mu    sync.RWMutex
	docs  map[string]*Document
	order []string
}

var _ Store = (*InMemory)(nil)

// NewInMemory creates an empty in-memory document store.
func NewInMemory() *InMemory {
	return &InMemory{docs: make(map[string]*Document)}
}

func (s *InMemory) Create(ctx context.Context, d *Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *d
	s.docs[d.ID] = &stored
	s.order = append(s.order, d.ID)
	return nil
}

func (s *InMemory) Find(ctx context.Context, id string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *stored
	return &out, nil
}

func (s *InMemory) List(ctx context.Context) ([]*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]*Document, 0, len(s.order))
	for _, id := range s.order {
		out := *s.docs[id]
		res = append(res, &out)
	}
	return res, nil
}

func (s *InMemory) ListByStatus(ctx context.Context, status Status) ([]*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var res []*Document
	for _, id := range s.order {
		if s.docs[id].Statut != status {
			continue
		}
		out := *s.docs[id]
		res = append(res, &out)
	}
	return res, nil
}

func (s *InMemory) Validate(ctx context.Context, id, validator, comment string, at time.Time) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	if stored.Statut == StatusValidated {
		return nil, ErrAlreadyValidated
	}
	stored.Statut = StatusValidated
	validatedAt := at
	stored.DateValidation = &validatedAt
	stored.ValidePar = validator
	stored.CommentaireComptable = comment
	stored.DateModification = at
	out := *stored
	return &out, nil
}
