// Package queue defines the message payloads emitted by the
// registration core and the RabbitMQ plumbing around them.
// Notification delivery itself is someone else's job — this package
// only hands events to the broker (and ships a small file-logging
// consumer that stands in for the delivery service during
// development).
package queue

// TicketConfirmedEvent is published when a registration reaches the
// confirmed state. It carries enough context for downstream
// consumers to notify or aggregate without calling back into the
// service.
type TicketConfirmedEvent struct {
	TicketID      string `json:"ticket_id"`
	EventID       string `json:"event_id"`
	EventTitle    string `json:"event_title"`
	EventDate     string `json:"event_date"`
	UserID        int64  `json:"user_id"`
	PriceCents    int64  `json:"price_cents"`
	PaymentMethod string `json:"payment_method,omitempty"`
	PaymentRef    string `json:"payment_ref,omitempty"`
	ConfirmedAt   string `json:"confirmed_at"`
}

// TicketCancelledEvent is published when an active ticket is
// cancelled, whether by the user or by a payment decline.
type TicketCancelledEvent struct {
	TicketID    string `json:"ticket_id"`
	EventID     string `json:"event_id"`
	EventTitle  string `json:"event_title"`
	UserID      int64  `json:"user_id"`
	Reason      string `json:"reason"`
	CancelledAt string `json:"cancelled_at"`
}
