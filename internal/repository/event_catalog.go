package repository

import (
	"sort"
	"sync"

	"github.com/univents/campus-events/internal/model"
)

// EventCatalog is the authoritative in-memory store of events and
// their attendance counters. All reads return copies so that callers
// can never mutate catalog state except through the exported
// operations; the attendance counter in particular is only ever
// changed by IncrementAttendance and DecrementAttendance.
//
// The capacity check in IncrementAttendance and the subsequent write
// happen under a single lock acquisition, so no other registration
// attempt can observe the counter between the check and the act.
type EventCatalog struct {
	mu     sync.RWMutex
	events map[string]*model.Event
	order  []string // insertion order, for stable listings
}

// NewEventCatalog returns an empty catalog.
func NewEventCatalog() *EventCatalog {
	return &EventCatalog{events: make(map[string]*model.Event)}
}

// Add inserts an event. Events handed to the catalog come from the
// authoring boundary, which has already validated their shape; Add
// only guards against ID reuse and counter values outside
// [0, MaxAttendees].
func (c *EventCatalog) Add(ev model.Event) (*model.Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.events[ev.ID]; exists {
		return nil, ErrInvalidState
	}
	if ev.CurrentAttendees < 0 || ev.CurrentAttendees > ev.MaxAttendees {
		return nil, ErrInvalidState
	}
	stored := ev
	c.events[ev.ID] = &stored
	c.order = append(c.order, ev.ID)
	cp := stored
	return &cp, nil
}

// Get returns a copy of the event or ErrEventNotFound.
func (c *EventCatalog) Get(id string) (*model.Event, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ev, ok := c.events[id]
	if !ok {
		return nil, ErrEventNotFound
	}
	cp := *ev
	return &cp, nil
}

// List returns copies of all events in insertion order.
func (c *EventCatalog) List() []*model.Event {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*model.Event, 0, len(c.order))
	for _, id := range c.order {
		cp := *c.events[id]
		out = append(out, &cp)
	}
	return out
}

// ListPublished returns copies of published events, optionally
// filtered by category, sorted by date then start time.
func (c *EventCatalog) ListPublished(category string) []*model.Event {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*model.Event, 0, len(c.order))
	for _, id := range c.order {
		ev := c.events[id]
		if ev.Status != model.EventStatusPublished {
			continue
		}
		if category != "" && ev.Category != category {
			continue
		}
		cp := *ev
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out
}

// IncrementAttendance reserves one slot on the event. The check that
// a slot is free and the increment are a single atomic step with
// respect to any other call on this catalog: either the caller gets
// the slot, or ErrEventFull. On success it returns the updated event.
func (c *EventCatalog) IncrementAttendance(id string) (*model.Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ev, ok := c.events[id]
	if !ok {
		return nil, ErrEventNotFound
	}
	if ev.CurrentAttendees >= ev.MaxAttendees {
		return nil, ErrEventFull
	}
	ev.CurrentAttendees++
	cp := *ev
	return &cp, nil
}

// DecrementAttendance releases one reserved slot. The counter never
// goes below zero: a decrement at zero returns ErrAttendanceUnderflow
// and leaves the counter untouched, because it means a slot is being
// released that was never reserved.
func (c *EventCatalog) DecrementAttendance(id string) (*model.Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ev, ok := c.events[id]
	if !ok {
		return nil, ErrEventNotFound
	}
	if ev.CurrentAttendees <= 0 {
		return nil, ErrAttendanceUnderflow
	}
	ev.CurrentAttendees--
	cp := *ev
	return &cp, nil
}
