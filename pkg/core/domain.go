// Package core holds the note domain: the Note entity, the collection-owning
// Service and the contracts its storage must satisfy.
package core

import (
	"fmt"
	"time"
)

// MaxTitleLength is the longest title accepted, in runes.
const MaxTitleLength = 32

// Note is the central entity of the domain.
// ID and Date are assigned at creation and never change.
type Note struct {
	ID      string
	Title   string
	Content string
	Date    time.Time
}

// EventType represents the type of change observed in a store.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to a storage slot made outside the current session.
type Event struct {
	Type      EventType
	Key       string
	Timestamp int64 // Unix timestamp
}

// String implements lifecycle.Event.
func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.Key)
}
