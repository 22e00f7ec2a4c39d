package catalog

// Draft is the in-progress record being composed. It is reused across commits.
type Draft struct {
	rec Record
}

// NewDraft returns a draft holding the canonical empty record.
func NewDraft() *Draft {
	return &Draft{rec: EmptyRecord()}
}

func (d *Draft) SetName(name string) { d.rec = d.rec.WithName(name) }

func (d *Draft) SetPrice(price string) { d.rec = d.rec.WithPrice(price) }

// AttachPhoto overwrites any previously attached photo.
func (d *Draft) AttachPhoto(ref string) { d.rec = d.rec.WithPhoto(ref) }

// AttachPhotoResult folds the outcome of a photo request into the draft.
// A request that ended without a selection leaves the draft untouched.
func (d *Draft) AttachPhotoResult(ref string, ok bool) {
	if !ok {
		return
	}
	d.AttachPhoto(ref)
}

func (d *Draft) IsCommittable() bool { return d.rec.Committable() }

// Reset returns the draft to the canonical empty record.
func (d *Draft) Reset() { d.rec = EmptyRecord() }

// Value returns a copy of the current record.
func (d *Draft) Value() Record { return d.rec.Clone() }

// IsEmpty reports whether the draft equals the canonical empty record.
func (d *Draft) IsEmpty() bool { return d.rec.Equal(EmptyRecord()) }
