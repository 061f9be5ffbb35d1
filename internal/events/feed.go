// Package events keeps a short, in-process history of book mutations.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"book-catalog/internal/domain"
)

// DefaultCapacity is how many mutation events a Feed retains.
const DefaultCapacity = 5

// Feed is a bounded FIFO log of mutation events. Safe for concurrent use.
type Feed struct {
	mu       sync.Mutex
	capacity int
	events   []domain.MutationEvent
	now      func() time.Time
}

func NewFeed(capacity int) *Feed {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Feed{
		capacity: capacity,
		events:   make([]domain.MutationEvent, 0, capacity),
		now:      time.Now,
	}
}

// Record appends an event, evicting the oldest once the feed is full.
func (f *Feed) Record(action domain.EventAction, bookTitle string) domain.MutationEvent {
	event := domain.MutationEvent{
		ID:          uuid.NewString(),
		Action:      action,
		BookTitle:   bookTitle,
		LastUpdated: f.now().UTC(),
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.events) == f.capacity {
		copy(f.events, f.events[1:])
		f.events = f.events[:len(f.events)-1]
	}
	f.events = append(f.events, event)
	return event
}

// Snapshot returns a copy of the retained events, oldest first.
func (f *Feed) Snapshot() []domain.MutationEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.MutationEvent, len(f.events))
	copy(out, f.events)
	return out
}

func (f *Feed) Capacity() int {
	return f.capacity
}
