// Package changetracker records which fields of an aggregate were modified so that
// repositories can write only the dirty columns.
package changetracker

import "sort"

// Field names an aggregate attribute.
type Field string

// Tracker tracks which fields have been modified in a domain aggregate.
type Tracker struct {
	dirty map[Field]struct{}
}

// New creates an empty Tracker.
func New() *Tracker {
	return &Tracker{dirty: make(map[Field]struct{})}
}

// MarkDirty marks fields as modified.
func (t *Tracker) MarkDirty(fields ...Field) {
	for _, f := range fields {
		t.dirty[f] = struct{}{}
	}
}

// Dirty reports whether a field has been modified.
func (t *Tracker) Dirty(field Field) bool {
	_, ok := t.dirty[field]
	return ok
}

// HasChanges returns true if any field has been modified.
func (t *Tracker) HasChanges() bool {
	return len(t.dirty) > 0
}

// Fields returns the dirty fields in sorted order.
func (t *Tracker) Fields() []Field {
	fields := make([]Field, 0, len(t.dirty))
	for f := range t.dirty {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	return fields
}

// Clear resets the tracker after a successful write.
func (t *Tracker) Clear() {
	t.dirty = make(map[Field]struct{})
}
