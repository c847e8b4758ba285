package domainevent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type testEvent struct{ id string }

func (e testEvent) EventType() string     { return "test.happened" }
func (e testEvent) AggregateID() string   { return e.id }
func (e testEvent) OccurredAt() time.Time { return time.Time{} }

func TestRecorder(t *testing.T) {
	var r Recorder
	assert.Empty(t, r.DomainEvents())

	r.Record(testEvent{id: "a"})
	r.Record(testEvent{id: "b"})

	events := r.DomainEvents()
	assert.Len(t, events, 2)
	assert.Equal(t, "a", events[0].AggregateID())

	// the returned slice is a copy
	events[0] = testEvent{id: "z"}
	assert.Equal(t, "a", r.DomainEvents()[0].AggregateID())

	r.ClearEvents()
	assert.Empty(t, r.DomainEvents())
}
