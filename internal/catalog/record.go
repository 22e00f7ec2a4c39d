package catalog

import "slices"

// Record is a single product entry. Values are replaced whole on every edit;
// callers never share the PhotoRefs backing array with a Record they did not build.
type Record struct {
	Name      string
	PhotoRefs []string
	Price     string
}

// Field names reported by Missing.
const (
	FieldName  = "name"
	FieldPhoto = "photo"
	FieldPrice = "price"
)

// EmptyRecord returns the canonical empty record.
func EmptyRecord() Record {
	return Record{Name: "", PhotoRefs: []string{}, Price: ""}
}

func (r Record) WithName(name string) Record {
	r.PhotoRefs = slices.Clone(r.PhotoRefs)
	r.Name = name
	return r
}

func (r Record) WithPrice(price string) Record {
	r.PhotoRefs = slices.Clone(r.PhotoRefs)
	r.Price = price
	return r
}

// WithPhoto replaces the photo sequence with the single given ref.
func (r Record) WithPhoto(ref string) Record {
	r.PhotoRefs = []string{ref}
	return r
}

// Clone returns a deep copy.
func (r Record) Clone() Record {
	r.PhotoRefs = slices.Clone(r.PhotoRefs)
	if r.PhotoRefs == nil {
		r.PhotoRefs = []string{}
	}
	return r
}

// Committable reports whether name, photo and price are all non-empty.
// Price is never parsed: any non-empty text is accepted.
func (r Record) Committable() bool {
	return r.Name != "" && len(r.PhotoRefs) > 0 && r.Price != ""
}

// Missing lists the required fields that are empty, in display order.
func (r Record) Missing() []string {
	var out []string
	if r.Name == "" {
		out = append(out, FieldName)
	}
	if len(r.PhotoRefs) == 0 {
		out = append(out, FieldPhoto)
	}
	if r.Price == "" {
		out = append(out, FieldPrice)
	}
	return out
}

// Photo returns the first photo ref, or "" when none is attached.
func (r Record) Photo() string {
	if len(r.PhotoRefs) == 0 {
		return ""
	}
	return r.PhotoRefs[0]
}

// Equal compares two records by value. A nil and an empty PhotoRefs are equal.
func (r Record) Equal(o Record) bool {
	return r.Name == o.Name && r.Price == o.Price && slices.Equal(r.PhotoRefs, o.PhotoRefs)
}
