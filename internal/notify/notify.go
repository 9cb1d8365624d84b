// Package notify tells the outside world about roster changes.
package notify

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventEnrolled   EventType = "enrolled"
	EventUnenrolled EventType = "unenrolled"
)

// Event describes one successful roster change.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	Activity   string    `json:"activity"`
	Schedule   string    `json:"schedule,omitempty"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewEvent stamps a fresh id and time.
func NewEvent(eventType EventType, activity, schedule, email string) Event {
	return Event{
		ID:         uuid.New().String(),
		Type:       eventType,
		Activity:   activity,
		Schedule:   schedule,
		Email:      email,
		OccurredAt: time.Now().UTC(),
	}
}

type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// Noop drops every event.
type Noop struct{}

func (Noop) Notify(context.Context, Event) error { return nil }

// Multi fans an event out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, event Event) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
