// Package registration implements the event registration core: the
// state machine that reserves capacity, collects payment and issues
// tickets. It is transport-agnostic — HTTP handlers call into it and
// render whatever it returns.
package registration

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/univents/campus-events/internal/model"
	"github.com/univents/campus-events/internal/payment"
	"github.com/univents/campus-events/internal/queue"
	"github.com/univents/campus-events/internal/repository"
)

// ErrPaymentDeclined is returned when the payment provider declines
// a paid registration. The reserved slot has already been released
// and the ticket cancelled by the time callers see it.
var ErrPaymentDeclined = errors.New("payment declined")

// defaultChargeTimeout bounds how long a charge may keep a slot
// reserved before it is treated as declined.
const defaultChargeTimeout = 10 * time.Second

// Notifier receives registration lifecycle events. Implementations
// must be safe for concurrent use; errors are logged and ignored
// because notification delivery is best-effort by contract.
type Notifier interface {
	TicketConfirmed(ctx context.Context, ev queue.TicketConfirmedEvent) error
	TicketCancelled(ctx context.Context, ev queue.TicketCancelledEvent) error
}

// Service orchestrates the catalog, ledger and payment provider. It
// is the only writer of attendance counters and ticket states.
type Service struct {
	catalog       *repository.EventCatalog
	ledger        *repository.TicketLedger
	charger       payment.Charger
	notifier      Notifier // may be nil
	chargeTimeout time.Duration
	log           *logrus.Entry
}

// NewService wires the registration core. notifier may be nil when
// no broker is configured.
func NewService(catalog *repository.EventCatalog, ledger *repository.TicketLedger, charger payment.Charger, notifier Notifier) *Service {
	return &Service{
		catalog:       catalog,
		ledger:        ledger,
		charger:       charger,
		notifier:      notifier,
		chargeTimeout: defaultChargeTimeout,
		log:           logrus.WithField("component", "registration"),
	}
}

// SetChargeTimeout overrides the payment timeout. Mainly for tests.
func (s *Service) SetChargeTimeout(d time.Duration) { s.chargeTimeout = d }

// Register registers userID for eventID, charging paymentMethod when
// the event is paid. The capacity slot is reserved *before* payment
// runs: two concurrent paid attempts can never both pass a
// read-then-check of the counter, because the reservation is the
// check. A declined or timed-out charge releases the slot and
// cancels the ticket before ErrPaymentDeclined is returned.
//
// Returned errors: repository.ErrEventNotFound,
// repository.ErrDuplicateRegistration, repository.ErrEventFull,
// ErrPaymentDeclined.
func (s *Service) Register(ctx context.Context, eventID string, userID int64, paymentMethod string) (*model.Ticket, error) {
	ev, err := s.catalog.Get(eventID)
	if err != nil {
		return nil, err
	}
	// Unpublished events are invisible to registrants.
	if ev.Status != model.EventStatusPublished {
		return nil, repository.ErrEventNotFound
	}
	// Cheap pre-check; the ledger re-checks atomically at issue time.
	if t := s.ledger.FindActive(eventID, userID); t != nil {
		return nil, repository.ErrDuplicateRegistration
	}

	// Reserve the slot first. From here on, every exit path that does
	// not end in an active ticket must release it exactly once.
	if _, err := s.catalog.IncrementAttendance(eventID); err != nil {
		return nil, err
	}

	if ev.IsFree() {
		ticket, err := s.ledger.Issue(eventID, userID, 0, nil, model.TicketStatusConfirmed)
		if err != nil {
			s.release(eventID)
			return nil, err
		}
		s.notifyConfirmed(ev, ticket)
		return ticket, nil
	}

	method := paymentMethod
	ticket, err := s.ledger.Issue(eventID, userID, ev.PriceCents, &method, model.TicketStatusPendingPayment)
	if err != nil {
		s.release(eventID)
		return nil, err
	}

	chargeCtx, cancel := context.WithTimeout(ctx, s.chargeTimeout)
	defer cancel()
	receipt, err := s.charger.Charge(chargeCtx, ev.PriceCents, paymentMethod)
	if err != nil {
		// Whoever moves the ticket out of pending owns the release. If
		// the user cancelled mid-charge, prev is already cancelled and
		// the slot has been released by that path.
		if _, prev, cerr := s.ledger.Cancel(ticket.ID); cerr == nil && prev.Active() {
			s.release(eventID)
		}
		reason := payment.DeclineReason(err)
		if reason == "" {
			reason = err.Error()
		}
		s.log.WithFields(logrus.Fields{
			"event_id": eventID,
			"user_id":  userID,
			"reason":   reason,
		}).Info("registration declined")
		s.notifyCancelled(ev, ticket, reason)
		return nil, ErrPaymentDeclined
	}

	confirmed, err := s.ledger.Confirm(ticket.ID, receipt.Reference)
	if err != nil {
		// The ticket left pending while the charge was in flight: the
		// user cancelled. Their cancel released the slot; all that is
		// left is to report the ticket as cancelled.
		if errors.Is(err, repository.ErrInvalidState) {
			return nil, repository.ErrTicketNotFound
		}
		return nil, err
	}
	s.notifyConfirmed(ev, confirmed)
	return confirmed, nil
}

// CancelRegistration cancels the ticket and releases its capacity
// slot. Both confirmed and pending_payment tickets are cancellable;
// an absent or already-cancelled ticket yields ErrTicketNotFound.
// The release happens exactly once per reserved slot: only the call
// that actually performed the active→cancelled transition decrements
// the counter, so a user cancel racing a payment decline cannot
// double-release.
func (s *Service) CancelRegistration(ctx context.Context, ticketID string) (*model.Ticket, error) {
	ticket, prev, err := s.ledger.Cancel(ticketID)
	if err != nil {
		return nil, err
	}
	if !prev.Active() {
		return nil, repository.ErrTicketNotFound
	}
	s.release(ticket.EventID)

	if ev, gerr := s.catalog.Get(ticket.EventID); gerr == nil {
		s.notifyCancelled(ev, ticket, "cancelled by user")
	}
	return ticket, nil
}

// ListByUser returns all tickets ever issued to the user, in
// issuance order.
func (s *Service) ListByUser(ctx context.Context, userID int64) []*model.Ticket {
	return s.ledger.ListByUser(userID)
}

// GetTicket returns a single ticket by ID.
func (s *Service) GetTicket(ctx context.Context, ticketID string) (*model.Ticket, error) {
	return s.ledger.Get(ticketID)
}

// release returns one reserved slot to the event. An underflow here
// is an invariant violation, not a user error — log it loudly.
func (s *Service) release(eventID string) {
	if _, err := s.catalog.DecrementAttendance(eventID); err != nil {
		s.log.WithError(err).WithField("event_id", eventID).
			Error("slot release failed; attendance bookkeeping is inconsistent")
	}
}

func (s *Service) notifyConfirmed(ev *model.Event, t *model.Ticket) {
	if s.notifier == nil {
		return
	}
	msg := queue.TicketConfirmedEvent{
		TicketID:    t.ID,
		EventID:     ev.ID,
		EventTitle:  ev.Title,
		EventDate:   ev.Date.UTC().Format("2006-01-02"),
		UserID:      t.UserID,
		PriceCents:  t.PriceCents,
		ConfirmedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if t.PaymentMethod != nil {
		msg.PaymentMethod = *t.PaymentMethod
	}
	if t.PaymentRef != nil {
		msg.PaymentRef = *t.PaymentRef
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.notifier.TicketConfirmed(ctx, msg); err != nil {
			s.log.WithError(err).Warn("publish ticket confirmed failed")
		}
	}()
}

func (s *Service) notifyCancelled(ev *model.Event, t *model.Ticket, reason string) {
	if s.notifier == nil {
		return
	}
	msg := queue.TicketCancelledEvent{
		TicketID:    t.ID,
		EventID:     ev.ID,
		EventTitle:  ev.Title,
		UserID:      t.UserID,
		Reason:      reason,
		CancelledAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.notifier.TicketCancelled(ctx, msg); err != nil {
			s.log.WithError(err).Warn("publish ticket cancelled failed")
		}
	}()
}
