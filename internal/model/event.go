package model

import "time"

// EventStatus describes the publication state of an event.  Only
// published events are visible to browse and calendar queries and
// only published events accept registrations.
type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusPublished EventStatus = "published"
)

// Event represents a campus event with a fixed attendee capacity.
// The attendance counter is owned exclusively by the registration
// core: a slot is reserved the moment a registration attempt passes
// the capacity check, before any payment resolves, and released when
// the corresponding ticket leaves an active state.
//
// Fields:
//  ID               – stable string identifier, consistent across lookups.
//  Title            – display title.
//  Description      – short description shown in event lists.
//  Date             – calendar day of the event (UTC midnight); this is
//                     the indexing key used by the calendar index.
//  StartTime        – start of the event in "HH:MM" wall-clock form.
//  EndTime          – end of the event in "HH:MM" wall-clock form.
//  Location         – free-form venue name.
//  PriceCents       – ticket price in cents; 0 means free.
//  Category         – classification label (academic, social, sports...).
//  Club             – organizing club or department.
//  MaxAttendees     – fixed upper bound on confirmed attendees.
//  CurrentAttendees – reserved plus confirmed slots; always within
//                     [0, MaxAttendees].
//  ImageURL         – optional cover image.
//  Tags             – free-form labels for search and display.
//  OrganizerID      – user who created the event (attribution only).
//  Status           – draft or published.
//  CreatedAt        – creation timestamp.
type Event struct {
	ID               string      `json:"id"`
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	Date             time.Time   `json:"date"`
	StartTime        string      `json:"start_time"`
	EndTime          string      `json:"end_time"`
	Location         string      `json:"location"`
	PriceCents       int64       `json:"price_cents"`
	Category         string      `json:"category"`
	Club             string      `json:"club,omitempty"`
	MaxAttendees     int         `json:"max_attendees"`
	CurrentAttendees int         `json:"current_attendees"`
	ImageURL         string      `json:"image_url,omitempty"`
	Tags             []string    `json:"tags,omitempty"`
	OrganizerID      int64       `json:"organizer_id"`
	Status           EventStatus `json:"status"`
	CreatedAt        time.Time   `json:"created_at"`
}

// IsFree reports whether registration requires no payment.
func (e *Event) IsFree() bool { return e.PriceCents == 0 }

// Remaining returns the number of unreserved slots.
func (e *Event) Remaining() int { return e.MaxAttendees - e.CurrentAttendees }

// SameDay reports whether the event takes place on the given calendar
// day. Comparison is done on year/month/day in UTC, so callers may
// pass any time within the day.
func (e *Event) SameDay(t time.Time) bool {
	ey, em, ed := e.Date.UTC().Date()
	ty, tm, td := t.UTC().Date()
	return ey == ty && em == tm && ed == td
}
