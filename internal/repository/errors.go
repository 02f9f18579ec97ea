// Package repository holds the in-memory data stores for the event
// registration core and the sentinel errors shared across them. The
// sentinel values allow higher layers such as handlers to map
// failure scenarios onto HTTP responses without string matching.
// Everything in this package is expected, user-facing error state —
// the single exception is ErrAttendanceUnderflow, which indicates a
// broken release invariant and is treated as a defect by callers.
package repository

import "errors"

// ErrEventNotFound is returned when the requested event does not
// exist in the catalog. Handlers should translate this into an
// HTTP 404 response.
var ErrEventNotFound = errors.New("event not found")

// ErrTicketNotFound is returned when a ticket does not exist, or when
// a cancellation targets a ticket that is already cancelled.
var ErrTicketNotFound = errors.New("ticket not found")

// ErrEventFull is returned by the capacity check when every slot of
// an event is reserved or confirmed.
var ErrEventFull = errors.New("event is full")

// ErrDuplicateRegistration is returned when a user who already holds
// an active (pending or confirmed) ticket attempts to register for
// the same event again.
var ErrDuplicateRegistration = errors.New("already registered for this event")

// ErrInvalidState is returned when a ticket transition is requested
// from a state it is not legal in, e.g. confirming a ticket that is
// not pending payment. This signals programmer misuse, not a user
// error, and must not be silently ignored.
var ErrInvalidState = errors.New("invalid ticket state for this transition")

// ErrAttendanceUnderflow is returned when a decrement would drive an
// attendance counter below zero. A correct caller releases each
// reserved slot exactly once, so seeing this error means the release
// bookkeeping is broken.
var ErrAttendanceUnderflow = errors.New("attendance counter underflow")
