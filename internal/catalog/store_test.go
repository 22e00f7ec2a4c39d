package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// recorder is a Notifier that records every call.
type recorder struct {
	mu    sync.Mutex
	calls []Notification
	err   error
}

func (r *recorder) Notify(_ context.Context, n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, n)
	return r.err
}

func (r *recorder) Calls() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.calls...)
}

func product(i int) Record {
	return Record{
		Name:      fmt.Sprintf("E%d", i),
		PhotoRefs: []string{fmt.Sprintf("p%d", i)},
		Price:     fmt.Sprintf("%d", i),
	}
}

func TestStoreFiveCommitsFireOnce(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	s := NewStore(rec)

	want := []Record{
		{Name: "Pen", PhotoRefs: []string{"p1"}, Price: "2"},
		product(2), product(3), product(4), product(5),
	}
	for i, r := range want {
		require.NoError(t, s.TryCommit(ctx, r))
		s.Wait()
		if i < 4 {
			require.Empty(t, rec.Calls(), "fired after commit %d", i+1)
		}
	}

	require.Equal(t, 5, s.Size())
	require.True(t, s.Full())
	require.Zero(t, s.Remaining())
	require.Equal(t, want, s.Items())
	require.Equal(t, []Notification{MaxReachedNotification}, rec.Calls())
	require.Equal(t, "Maximum Products Reached", rec.Calls()[0].Title)
	require.Equal(t, "You have added 5 products, which is the maximum limit.", rec.Calls()[0].Body)
}

func TestStoreRejectsWhenFull(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	s := NewStore(rec)
	for i := 1; i <= Capacity; i++ {
		require.NoError(t, s.TryCommit(ctx, product(i)))
	}
	s.Wait()
	before := s.Items()

	for i := 0; i < 3; i++ {
		err := s.TryCommit(ctx, product(9))
		require.ErrorIs(t, err, ErrCapacityExceeded)
	}
	// capacity wins over completeness
	require.ErrorIs(t, s.TryCommit(ctx, EmptyRecord()), ErrCapacityExceeded)

	s.Wait()
	require.Equal(t, before, s.Items())
	require.Len(t, rec.Calls(), 1)
}

func TestStoreRejectsIncomplete(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)
	require.NoError(t, s.TryCommit(ctx, product(1)))

	err := s.TryCommit(ctx, Record{Name: "", PhotoRefs: []string{"p1"}, Price: "1"})
	require.ErrorIs(t, err, ErrIncompleteRecord)
	var incomplete *IncompleteRecordError
	require.True(t, errors.As(err, &incomplete))
	require.Equal(t, []string{FieldName}, incomplete.Missing)
	require.Equal(t, 1, s.Size())

	require.ErrorIs(t, s.TryCommit(ctx, Record{Name: "x", Price: "1"}), ErrIncompleteRecord)
	require.ErrorIs(t, s.TryCommit(ctx, Record{Name: "x", PhotoRefs: []string{"p"}}), ErrIncompleteRecord)
	require.Equal(t, 1, s.Size())
}

func TestStoreDispatchFailureDoesNotFailCommit(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{err: errors.New("no notification daemon")}
	s := NewStore(rec)
	for i := 1; i <= Capacity; i++ {
		require.NoError(t, s.TryCommit(ctx, product(i)))
	}
	s.Wait()
	require.Equal(t, Capacity, s.Size())
	require.Len(t, rec.Calls(), 1)
}

func TestStoreDispatchIsAsync(t *testing.T) {
	ctx := context.Background()
	release := make(chan struct{})
	done := make(chan struct{})
	n := NotifierFunc(func(context.Context, Notification) error {
		<-release
		close(done)
		return nil
	})
	s := NewStore(n)
	for i := 1; i <= Capacity; i++ {
		require.NoError(t, s.TryCommit(ctx, product(i)))
	}
	// TryCommit returned while the notifier is still blocked
	require.Equal(t, Capacity, s.Size())
	close(release)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("notifier never ran")
	}
	s.Wait()
}

func TestStoreDispatchSurvivesCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var got error
	n := NotifierFunc(func(ctx context.Context, _ Notification) error {
		got = ctx.Err()
		return nil
	})
	s := NewStore(n)
	for i := 1; i < Capacity; i++ {
		require.NoError(t, s.TryCommit(ctx, product(i)))
	}
	cancel()
	require.NoError(t, s.TryCommit(ctx, product(Capacity)))
	s.Wait()
	require.NoError(t, got)
}

func TestStoreItemsIsReadOnlyView(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)
	require.NoError(t, s.TryCommit(ctx, product(1)))

	items := s.Items()
	items[0].Name = "changed"
	items[0].PhotoRefs[0] = "changed"
	require.Equal(t, product(1), s.Items()[0])
}

func TestStoreCommitCopiesCandidate(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)
	r := product(1)
	require.NoError(t, s.TryCommit(ctx, r))
	r.PhotoRefs[0] = "changed"
	require.Equal(t, []string{"p1"}, s.Items()[0].PhotoRefs)
}

func TestAlert(t *testing.T) {
	title, msg, ok := Alert(ErrCapacityExceeded)
	require.True(t, ok)
	require.Equal(t, "Maximum limit reached", title)
	require.Equal(t, "You can only add up to 5 products.", msg)

	title, msg, ok = Alert(&IncompleteRecordError{Missing: []string{FieldPrice}})
	require.True(t, ok)
	require.Equal(t, "Incomplete information", title)
	require.Equal(t, "Please fill in all fields.", msg)

	_, _, ok = Alert(errors.New("other"))
	require.False(t, ok)
}
