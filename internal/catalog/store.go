package catalog

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

const (
	// Capacity is the maximum number of committed records.
	Capacity = 5

	// Threshold is the size whose arrival triggers MaxReachedNotification.
	Threshold = Capacity
)

// Store holds the committed records in insertion order.
// It is driven from a single event loop; only notification dispatch runs
// on another goroutine.
type Store struct {
	items    []Record
	notifier Notifier
	log      zerolog.Logger
	inflight sync.WaitGroup
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for commit and dispatch events.
func WithLogger(l zerolog.Logger) StoreOption {
	return func(s *Store) { s.log = l }
}

// NewStore returns an empty store. A nil notifier disables the threshold notification.
func NewStore(n Notifier, opts ...StoreOption) *Store {
	s := &Store{
		items:    make([]Record, 0, Capacity),
		notifier: n,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TryCommit appends candidate when the store has room and the record is complete.
// Capacity is checked before completeness. On failure nothing is mutated.
func (s *Store) TryCommit(ctx context.Context, candidate Record) error {
	if len(s.items) >= Capacity {
		s.log.Info().Int("size", len(s.items)).Msg("commit rejected: capacity exceeded")
		return ErrCapacityExceeded
	}
	if !candidate.Committable() {
		missing := candidate.Missing()
		s.log.Info().Strs("missing", missing).Msg("commit rejected: incomplete record")
		return &IncompleteRecordError{Missing: missing}
	}

	s.items = append(s.items, candidate.Clone())
	size := len(s.items)
	s.log.Debug().Int("size", size).Str("name", candidate.Name).Msg("record committed")

	// edge-triggered: only the commit that lands exactly on the threshold fires
	if size == Threshold {
		s.dispatch(ctx, MaxReachedNotification)
	}
	return nil
}

func (s *Store) dispatch(ctx context.Context, n Notification) {
	if s.notifier == nil {
		return
	}
	s.log.Info().Str("title", n.Title).Msg("dispatching threshold notification")
	ctx = context.WithoutCancel(ctx)
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		if err := s.notifier.Notify(ctx, n); err != nil {
			s.log.Warn().Err(err).Msg("notification dispatch failed")
		}
	}()
}

// Wait blocks until every dispatched notification has returned.
func (s *Store) Wait() { s.inflight.Wait() }

func (s *Store) Size() int { return len(s.items) }

// Remaining is the number of commits left before the store is full.
func (s *Store) Remaining() int { return Capacity - len(s.items) }

func (s *Store) Full() bool { return len(s.items) >= Capacity }

// Items returns a copy of the committed records in insertion order.
func (s *Store) Items() []Record {
	out := make([]Record, len(s.items))
	for i, r := range s.items {
		out[i] = r.Clone()
	}
	return out
}
