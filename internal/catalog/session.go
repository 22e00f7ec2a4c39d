package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Session owns one draft and one store for the lifetime of a running program.
// Nothing is persisted; a new Session always starts empty.
type Session struct {
	ID    string
	Draft *Draft
	Store *Store
}

// NewSession builds an empty draft and an empty store wired to n.
// An empty id is replaced with a random one.
func NewSession(id string, n Notifier, opts ...StoreOption) *Session {
	if id == "" {
		id = uuid.NewString()
	}
	return &Session{
		ID:    id,
		Draft: NewDraft(),
		Store: NewStore(n, opts...),
	}
}

// Commit hands the current draft to the store and clears the draft on success.
// On error the draft and the store are left exactly as they were.
func (s *Session) Commit(ctx context.Context) error {
	if err := s.Store.TryCommit(ctx, s.Draft.Value()); err != nil {
		return err
	}
	s.Draft.Reset()
	return nil
}
