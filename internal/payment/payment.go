// Package payment defines the charging contract the registration
// core depends on, plus a simulated provider. The core only ever
// sees two outcomes — a receipt or a decline — so swapping in a real
// provider later touches nothing but the constructor wiring.
package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrDeclined is the sentinel wrapped by every declined charge.
// Use errors.Is to detect it and DeclineReason to recover the cause.
var ErrDeclined = errors.New("payment declined")

// DeclinedError carries the provider's reason for a decline.
type DeclinedError struct {
	Reason string
}

func (e *DeclinedError) Error() string {
	return fmt.Sprintf("payment declined: %s", e.Reason)
}

// Unwrap makes errors.Is(err, ErrDeclined) match.
func (e *DeclinedError) Unwrap() error { return ErrDeclined }

// DeclineReason extracts the decline reason from an error chain, or
// returns the empty string when the error is not a decline.
func DeclineReason(err error) string {
	var de *DeclinedError
	if errors.As(err, &de) {
		return de.Reason
	}
	return ""
}

// Receipt is the provider's proof of a successful charge.
type Receipt struct {
	Reference   string    `json:"reference"`
	Method      string    `json:"method"`
	AmountCents int64     `json:"amount_cents"`
	ChargedAt   time.Time `json:"charged_at"`
}

// Charger resolves a payment attempt to a receipt or a decline after
// a bounded delay. Implementations must honour ctx cancellation and
// must not be called with a zero amount — free registrations never
// reach the payment step.
type Charger interface {
	Charge(ctx context.Context, amountCents int64, method string) (*Receipt, error)
}

// Simulator is the stand-in payment provider. Outcomes are
// deterministic so tests can assert exact behaviour: any method in
// the accepted set succeeds after Delay, anything else is declined.
// Context expiry during the delay also surfaces as a decline, so a
// hung provider can never strand a reserved slot.
type Simulator struct {
	Delay   time.Duration
	methods map[string]struct{}
}

// DefaultMethods are the payment methods the campus app offers at
// checkout.
var DefaultMethods = []string{"mpesa", "paypal", "card"}

// NewSimulator builds a Simulator accepting the given methods (the
// default set when none are given) and resolving after delay.
func NewSimulator(delay time.Duration, methods ...string) *Simulator {
	if len(methods) == 0 {
		methods = DefaultMethods
	}
	set := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		set[m] = struct{}{}
	}
	return &Simulator{Delay: delay, methods: set}
}

// Charge implements Charger.
func (s *Simulator) Charge(ctx context.Context, amountCents int64, method string) (*Receipt, error) {
	if amountCents <= 0 {
		return nil, &DeclinedError{Reason: "invalid amount"}
	}
	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, &DeclinedError{Reason: "payment timed out"}
		case <-timer.C:
		}
	}
	if _, ok := s.methods[method]; !ok {
		return nil, &DeclinedError{Reason: fmt.Sprintf("unsupported payment method %q", method)}
	}
	return &Receipt{
		Reference:   "sim_" + uuid.NewString(),
		Method:      method,
		AmountCents: amountCents,
		ChargedAt:   time.Now().UTC(),
	}, nil
}
