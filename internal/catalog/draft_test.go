package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDraftStartsEmpty(t *testing.T) {
	d := NewDraft()
	require.True(t, d.IsEmpty())
	require.False(t, d.IsCommittable())
	require.True(t, d.Value().Equal(EmptyRecord()))
}

func TestDraftCommittableIndependentOfOrder(t *testing.T) {
	setters := map[string]func(*Draft){
		FieldName:  func(d *Draft) { d.SetName("Pen") },
		FieldPhoto: func(d *Draft) { d.AttachPhoto("p1") },
		FieldPrice: func(d *Draft) { d.SetPrice("2") },
	}
	orders := [][]string{
		{FieldName, FieldPhoto, FieldPrice},
		{FieldName, FieldPrice, FieldPhoto},
		{FieldPhoto, FieldName, FieldPrice},
		{FieldPhoto, FieldPrice, FieldName},
		{FieldPrice, FieldName, FieldPhoto},
		{FieldPrice, FieldPhoto, FieldName},
	}
	for _, order := range orders {
		d := NewDraft()
		for i, field := range order {
			require.False(t, d.IsCommittable(), "order %v committable after %d fields", order, i)
			setters[field](d)
		}
		require.True(t, d.IsCommittable(), "order %v", order)
	}
}

func TestDraftClearingAFieldMakesItUncommittable(t *testing.T) {
	d := NewDraft()
	d.SetName("Pen")
	d.AttachPhoto("p1")
	d.SetPrice("2")
	require.True(t, d.IsCommittable())

	d.SetPrice("")
	require.False(t, d.IsCommittable())
	require.Equal(t, []string{FieldPrice}, d.Value().Missing())

	d.SetPrice("2")
	d.SetName("")
	require.False(t, d.IsCommittable())
	require.Equal(t, []string{FieldName}, d.Value().Missing())
}

func TestDraftAttachPhotoOverwrites(t *testing.T) {
	d := NewDraft()
	d.AttachPhoto("a")
	d.AttachPhoto("b")
	require.Equal(t, []string{"b"}, d.Value().PhotoRefs)
}

func TestDraftAttachPhotoResultNoSelection(t *testing.T) {
	d := NewDraft()
	d.AttachPhotoResult("ignored", false)
	require.True(t, d.IsEmpty())

	d.AttachPhotoResult("a", true)
	d.AttachPhotoResult("", false)
	require.Equal(t, []string{"a"}, d.Value().PhotoRefs)
}

func TestDraftPriceIsNotParsed(t *testing.T) {
	d := NewDraft()
	d.SetName("Pen")
	d.AttachPhoto("p1")
	d.SetPrice("abc")
	require.True(t, d.IsCommittable())
}

func TestDraftReset(t *testing.T) {
	d := NewDraft()
	d.SetName("Pen")
	d.AttachPhoto("p1")
	d.SetPrice("2")
	d.Reset()
	require.True(t, d.IsEmpty())
	require.Empty(t, d.Value().PhotoRefs)
}

func TestDraftValueIsACopy(t *testing.T) {
	d := NewDraft()
	d.AttachPhoto("a")
	v := d.Value()
	v.PhotoRefs[0] = "mutated"
	require.Equal(t, []string{"a"}, d.Value().PhotoRefs)
}

func TestRecordWithDoesNotAlias(t *testing.T) {
	base := Record{Name: "Pen", PhotoRefs: []string{"p1"}, Price: "2"}
	renamed := base.WithName("Pencil")
	renamed.PhotoRefs[0] = "p2"
	require.Equal(t, "Pen", base.Name)
	require.Equal(t, []string{"p1"}, base.PhotoRefs)
}

func TestRecordMissing(t *testing.T) {
	require.Equal(t, []string{FieldName, FieldPhoto, FieldPrice}, EmptyRecord().Missing())
	require.Empty(t, Record{Name: "x", PhotoRefs: []string{"p"}, Price: "1"}.Missing())
}
