// Package audit records inventory changes to an append-only log.
//
// The store hands every change to a Sink. Sinks are never consulted for
// control flow: a failing sink must not abort the change that produced the event.
package audit

import (
	"fmt"
	"time"
)

// Kind is the type of change an event describes.
type Kind int

const (
	Added Kind = iota + 1
	Removed
	Modified
)

func (k Kind) String() string {
	switch k {
	case Added:
		return "record added"
	case Removed:
		return "record removed"
	case Modified:
		return "record modified"
	default:
		return fmt.Sprintf("audit kind %d", int(k))
	}
}

// Event describes one change to the inventory.
type Event struct {
	Kind     Kind
	At       time.Time
	ID       uint32
	Name     string
	Quantity int
}

// String renders the event without its timestamp.
func (e Event) String() string {
	if e.Kind == Removed {
		return fmt.Sprintf("%s id=%d name=%q", e.Kind, e.ID, e.Name)
	}
	return fmt.Sprintf("%s id=%d name=%q quantity=%d", e.Kind, e.ID, e.Name, e.Quantity)
}
