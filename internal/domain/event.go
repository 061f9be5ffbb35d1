package domain

import "time"

type EventAction string

const (
	EventCreated EventAction = "created"
	EventUpdated EventAction = "updated"
	EventDeleted EventAction = "deleted"
)

// MutationEvent records a single create, update or delete of a book.
type MutationEvent struct {
	ID          string      `json:"id"`
	Action      EventAction `json:"action"`
	BookTitle   string      `json:"book_title"`
	LastUpdated time.Time   `json:"last_updated"`
}
