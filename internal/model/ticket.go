package model

import "time"

// TicketStatus is the lifecycle state of a ticket.  A ticket is
// "active" while pending_payment or confirmed; at most one active
// ticket may exist per (event, user) pair.  cancelled is terminal —
// registering again after a cancellation creates a new ticket.
type TicketStatus string

const (
	TicketStatusPendingPayment TicketStatus = "pending_payment"
	TicketStatusConfirmed      TicketStatus = "confirmed"
	TicketStatusCancelled      TicketStatus = "cancelled"
)

// Active reports whether the status counts against the duplicate
// registration rule.
func (s TicketStatus) Active() bool {
	return s == TicketStatusPendingPayment || s == TicketStatusConfirmed
}

// Ticket records a user's registration for an event.
//
// Fields:
//  ID            – unique ticket identifier (UUID).
//  EventID       – event the ticket admits to.
//  UserID        – owner of the ticket.
//  Status        – pending_payment, confirmed or cancelled.
//  PriceCents    – amount charged, snapshotted at issuance; later
//                  changes to the event price do not affect it.
//  PaymentMethod – method used for paid registrations; nil for free
//                  events.
//  PaymentRef    – provider reference returned by the charge; nil
//                  until payment succeeds.
//  QRCode        – opaque unique check-in token, generated when the
//                  ticket is confirmed.
//  IssuedAt      – when the registration attempt created the ticket.
//  ConfirmedAt   – when the ticket became confirmed (nil otherwise).
//  CancelledAt   – when the ticket was cancelled (nil otherwise).
type Ticket struct {
	ID            string       `json:"id"`
	EventID       string       `json:"event_id"`
	UserID        int64        `json:"user_id"`
	Status        TicketStatus `json:"status"`
	PriceCents    int64        `json:"price_cents"`
	PaymentMethod *string      `json:"payment_method,omitempty"`
	PaymentRef    *string      `json:"payment_ref,omitempty"`
	QRCode        string       `json:"qr_code,omitempty"`
	IssuedAt      time.Time    `json:"issued_at"`
	ConfirmedAt   *time.Time   `json:"confirmed_at,omitempty"`
	CancelledAt   *time.Time   `json:"cancelled_at,omitempty"`
}
