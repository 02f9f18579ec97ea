package repository

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/univents/campus-events/internal/model"
)

// activeKey identifies the one active ticket a user may hold per
// event. Keeping a dedicated index makes the duplicate-registration
// check O(1) and mirrors how a persistent implementation would key
// tickets by (event_id, user_id).
type activeKey struct {
	eventID string
	userID  int64
}

// TicketLedger is the in-memory store of issued tickets. It owns the
// ticket lifecycle: pending_payment → confirmed on payment success,
// and any active state → cancelled. It does not touch attendance
// counters — the registration service coordinates the two stores and
// uses the previous status reported by Cancel to release each
// reserved slot exactly once.
type TicketLedger struct {
	mu      sync.RWMutex
	tickets map[string]*model.Ticket
	order   []string // issuance order, for stable per-user listings
	active  map[activeKey]string
}

// NewTicketLedger returns an empty ledger.
func NewTicketLedger() *TicketLedger {
	return &TicketLedger{
		tickets: make(map[string]*model.Ticket),
		active:  make(map[activeKey]string),
	}
}

// Issue creates a ticket for (eventID, userID) in the given initial
// status. Free registrations are issued directly as confirmed (with
// their QR token); paid ones start as pending_payment. The price is
// snapshotted on the ticket and never re-read from the event. Returns
// ErrDuplicateRegistration when an active ticket already exists for
// the pair.
func (l *TicketLedger) Issue(eventID string, userID int64, priceCents int64, paymentMethod *string, status model.TicketStatus) (*model.Ticket, error) {
	if !status.Active() {
		return nil, ErrInvalidState
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	key := activeKey{eventID: eventID, userID: userID}
	if _, exists := l.active[key]; exists {
		return nil, ErrDuplicateRegistration
	}
	now := time.Now().UTC()
	t := &model.Ticket{
		ID:            uuid.NewString(),
		EventID:       eventID,
		UserID:        userID,
		Status:        status,
		PriceCents:    priceCents,
		PaymentMethod: paymentMethod,
		IssuedAt:      now,
	}
	if status == model.TicketStatusConfirmed {
		t.QRCode = newQRToken()
		confirmedAt := now
		t.ConfirmedAt = &confirmedAt
	}
	l.tickets[t.ID] = t
	l.order = append(l.order, t.ID)
	l.active[key] = t.ID
	cp := *t
	return &cp, nil
}

// Confirm transitions a pending_payment ticket to confirmed, records
// the payment reference and generates the check-in QR token. Any
// other starting state yields ErrInvalidState.
func (l *TicketLedger) Confirm(id string, paymentRef string) (*model.Ticket, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	t, ok := l.tickets[id]
	if !ok {
		return nil, ErrTicketNotFound
	}
	if t.Status != model.TicketStatusPendingPayment {
		return nil, ErrInvalidState
	}
	now := time.Now().UTC()
	t.Status = model.TicketStatusConfirmed
	t.QRCode = newQRToken()
	t.ConfirmedAt = &now
	if paymentRef != "" {
		ref := paymentRef
		t.PaymentRef = &ref
	}
	cp := *t
	return &cp, nil
}

// Cancel transitions an active ticket to cancelled and reports the
// status it left. On an already-cancelled ticket it is a no-op that
// returns the current state with prev == cancelled, so callers can
// tell whether this call performed the transition — the caller that
// observes an active previous status owns releasing the reserved
// slot, and nobody else does.
func (l *TicketLedger) Cancel(id string) (t *model.Ticket, prev model.TicketStatus, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	stored, ok := l.tickets[id]
	if !ok {
		return nil, "", ErrTicketNotFound
	}
	prev = stored.Status
	if prev.Active() {
		now := time.Now().UTC()
		stored.Status = model.TicketStatusCancelled
		stored.CancelledAt = &now
		delete(l.active, activeKey{eventID: stored.EventID, userID: stored.UserID})
	}
	cp := *stored
	return &cp, prev, nil
}

// Restore inserts a pre-existing ticket as-is. Used when loading
// fixture data at startup; regular registrations go through Issue.
func (l *TicketLedger) Restore(t model.Ticket) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.tickets[t.ID]; exists {
		return ErrInvalidState
	}
	key := activeKey{eventID: t.EventID, userID: t.UserID}
	if t.Status.Active() {
		if _, exists := l.active[key]; exists {
			return ErrDuplicateRegistration
		}
		l.active[key] = t.ID
	}
	stored := t
	l.tickets[t.ID] = &stored
	l.order = append(l.order, t.ID)
	return nil
}

// Get returns a copy of the ticket or ErrTicketNotFound.
func (l *TicketLedger) Get(id string) (*model.Ticket, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	t, ok := l.tickets[id]
	if !ok {
		return nil, ErrTicketNotFound
	}
	cp := *t
	return &cp, nil
}

// FindActive returns the active ticket for (eventID, userID), or nil
// when the user holds none.
func (l *TicketLedger) FindActive(eventID string, userID int64) *model.Ticket {
	l.mu.RLock()
	defer l.mu.RUnlock()
	id, ok := l.active[activeKey{eventID: eventID, userID: userID}]
	if !ok {
		return nil
	}
	cp := *l.tickets[id]
	return &cp
}

// ListByUser returns copies of all of a user's tickets, cancelled
// ones included, in issuance order.
func (l *TicketLedger) ListByUser(userID int64) []*model.Ticket {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*model.Ticket, 0)
	for _, id := range l.order {
		if t := l.tickets[id]; t.UserID == userID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out
}

// CountConfirmed returns the number of confirmed tickets for an
// event. Used by tests to verify that attendance counters converge
// to the confirmed ticket count.
func (l *TicketLedger) CountConfirmed(eventID string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	n := 0
	for _, t := range l.tickets {
		if t.EventID == eventID && t.Status == model.TicketStatusConfirmed {
			n++
		}
	}
	return n
}

// newQRToken builds the opaque check-in token embedded in ticket QR
// codes. UUIDs are unique enough for a mock check-in flow; the
// dashes are stripped to keep the QR payload short.
func newQRToken() string {
	return "QR" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}
