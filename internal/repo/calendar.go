package repo

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/gmnfield/opsboard/internal/workflow"
	"github.com/gmnfield/opsboard/pkg/boardstore"
)

// Calendar is the standalone calendar event repository. Events are not
// derived from work order ETAs; the schedule view merges the two at read
// time.
type Calendar struct {
	store *boardstore.Client
	now   func() time.Time
}

// NewCalendar creates a calendar repository over the given store.
func NewCalendar(store *boardstore.Client) *Calendar {
	return &Calendar{store: store, now: time.Now}
}

// List returns all calendar events ordered by their scheduled time.
func (r *Calendar) List(ctx context.Context) []boardstore.CalendarEvent {
	events := r.store.LoadCalendarEvents(ctx)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].DateTime.Before(events[j].DateTime)
	})
	return events
}

// Upsert creates an event (empty id) or edits an existing one. Title and
// scheduled time are required; priority defaults to normal.
func (r *Calendar) Upsert(ctx context.Context, id, title string, at time.Time, priority boardstore.EventPriority, description string) (*boardstore.CalendarEvent, error) {
	title = workflow.SanitizeText(title, 240)
	if title == "" {
		return nil, &ValidationError{Field: "title", Reason: "cannot be empty"}
	}
	if at.IsZero() {
		return nil, &ValidationError{Field: "dateTime", Reason: "cannot be empty"}
	}
	if priority == "" {
		priority = boardstore.PriorityNormal
	}
	if err := priority.Validate(); err != nil {
		return nil, &ValidationError{Field: "priority", Reason: err.Error()}
	}
	description = workflow.SanitizeText(description, 1000)

	events := r.store.LoadCalendarEvents(ctx)
	now := r.now()
	if id == "" {
		ev := boardstore.CalendarEvent{
			ID:          uuid.New().String(),
			Title:       title,
			DateTime:    at,
			Priority:    priority,
			Description: description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		events = append([]boardstore.CalendarEvent{ev}, events...)
		if err := r.store.SaveCalendarEvents(ctx, events); err != nil {
			return nil, err
		}
		return &ev, nil
	}

	for i := range events {
		if events[i].ID != id {
			continue
		}
		events[i].Title = title
		events[i].DateTime = at
		events[i].Priority = priority
		events[i].Description = description
		events[i].UpdatedAt = now
		if err := r.store.SaveCalendarEvents(ctx, events); err != nil {
			return nil, err
		}
		return &events[i], nil
	}
	return nil, &NotFoundError{Kind: "calendar event", ID: id}
}

// Delete removes a calendar event.
func (r *Calendar) Delete(ctx context.Context, id string) error {
	events := r.store.LoadCalendarEvents(ctx)
	for i := range events {
		if events[i].ID != id {
			continue
		}
		events = append(events[:i], events[i+1:]...)
		return r.store.SaveCalendarEvents(ctx, events)
	}
	return &NotFoundError{Kind: "calendar event", ID: id}
}
