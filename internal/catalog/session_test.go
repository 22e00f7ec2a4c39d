package catalog

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func fillDraft(d *Draft, r Record) {
	d.SetName(r.Name)
	d.SetPrice(r.Price)
	if p := r.Photo(); p != "" {
		d.AttachPhoto(p)
	}
}

func TestSessionCommitResetsDraft(t *testing.T) {
	s := NewSession("", nil)
	require.NotEmpty(t, s.ID)

	fillDraft(s.Draft, product(1))
	require.NoError(t, s.Commit(context.Background()))
	require.True(t, s.Draft.IsEmpty())
	require.Equal(t, []Record{product(1)}, s.Store.Items())
}

func TestSessionFailedCommitLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	s := NewSession("fixed", nil)
	require.Equal(t, "fixed", s.ID)

	s.Draft.AttachPhoto("p1")
	s.Draft.SetPrice("1")
	before := s.Draft.Value()

	require.ErrorIs(t, s.Commit(ctx), ErrIncompleteRecord)
	require.True(t, before.Equal(s.Draft.Value()))
	require.Zero(t, s.Store.Size())

	for i := 1; i <= Capacity; i++ {
		fillDraft(s.Draft, product(i))
		require.NoError(t, s.Commit(ctx))
	}
	fillDraft(s.Draft, product(6))
	before = s.Draft.Value()
	items := s.Store.Items()

	require.ErrorIs(t, s.Commit(ctx), ErrCapacityExceeded)
	require.True(t, before.Equal(s.Draft.Value()))
	require.Equal(t, items, s.Store.Items())
}

func TestSessionRandomSequencesHonorInvariants(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))
	values := []string{"", "a", "1", "abc"}

	for run := 0; run < 200; run++ {
		rec := &recorder{}
		s := NewSession("", rec)
		sawFull := false
		for step := 0; step < 40; step++ {
			switch rng.Intn(5) {
			case 0:
				s.Draft.SetName(values[rng.Intn(len(values))])
			case 1:
				s.Draft.SetPrice(values[rng.Intn(len(values))])
			case 2:
				s.Draft.AttachPhoto(values[1+rng.Intn(len(values)-1)])
			case 3:
				s.Draft.Reset()
			case 4:
				sizeBefore := s.Store.Size()
				draftBefore := s.Draft.Value()
				err := s.Commit(ctx)
				if err != nil {
					require.Equal(t, sizeBefore, s.Store.Size())
					require.True(t, draftBefore.Equal(s.Draft.Value()))
				} else {
					require.Equal(t, sizeBefore+1, s.Store.Size())
					require.True(t, s.Draft.IsEmpty())
				}
			}
			require.LessOrEqual(t, s.Store.Size(), Capacity)
			if s.Store.Full() {
				sawFull = true
			}
		}
		s.Store.Wait()
		for _, item := range s.Store.Items() {
			require.True(t, item.Committable())
		}
		if sawFull {
			require.Len(t, rec.Calls(), 1)
		} else {
			require.Empty(t, rec.Calls())
		}
	}
}
