package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/univents/campus-events/internal/model"
)

func strPtr(s string) *string { return &s }

func TestIssueConfirmedCarriesQRCode(t *testing.T) {
	l := NewTicketLedger()

	tk, err := l.Issue("e1", 7, 0, nil, model.TicketStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, model.TicketStatusConfirmed, tk.Status)
	assert.NotEmpty(t, tk.QRCode)
	require.NotNil(t, tk.ConfirmedAt)
	assert.Nil(t, tk.PaymentMethod)
}

func TestIssuePendingHasNoQRCode(t *testing.T) {
	l := NewTicketLedger()

	tk, err := l.Issue("e1", 7, 2500, strPtr("mpesa"), model.TicketStatusPendingPayment)
	require.NoError(t, err)
	assert.Equal(t, model.TicketStatusPendingPayment, tk.Status)
	assert.Empty(t, tk.QRCode)
	assert.Nil(t, tk.ConfirmedAt)
	assert.Equal(t, int64(2500), tk.PriceCents)
}

func TestIssueRejectsSecondActiveTicket(t *testing.T) {
	l := NewTicketLedger()

	_, err := l.Issue("e1", 7, 0, nil, model.TicketStatusConfirmed)
	require.NoError(t, err)

	_, err = l.Issue("e1", 7, 0, nil, model.TicketStatusConfirmed)
	assert.ErrorIs(t, err, ErrDuplicateRegistration)

	// Pending counts as active too.
	_, err = l.Issue("e1", 7, 2500, strPtr("card"), model.TicketStatusPendingPayment)
	assert.ErrorIs(t, err, ErrDuplicateRegistration)

	// A different event or user is fine.
	_, err = l.Issue("e2", 7, 0, nil, model.TicketStatusConfirmed)
	assert.NoError(t, err)
	_, err = l.Issue("e1", 8, 0, nil, model.TicketStatusConfirmed)
	assert.NoError(t, err)
}

func TestIssueRejectsCancelledInitialStatus(t *testing.T) {
	l := NewTicketLedger()
	_, err := l.Issue("e1", 7, 0, nil, model.TicketStatusCancelled)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCancelFreesThePairForReRegistration(t *testing.T) {
	l := NewTicketLedger()

	tk, err := l.Issue("e1", 7, 0, nil, model.TicketStatusConfirmed)
	require.NoError(t, err)

	_, prev, err := l.Cancel(tk.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TicketStatusConfirmed, prev)

	again, err := l.Issue("e1", 7, 0, nil, model.TicketStatusConfirmed)
	require.NoError(t, err)
	assert.NotEqual(t, tk.ID, again.ID)
}

func TestConfirmTransitionsPendingOnly(t *testing.T) {
	l := NewTicketLedger()

	tk, err := l.Issue("e1", 7, 2500, strPtr("mpesa"), model.TicketStatusPendingPayment)
	require.NoError(t, err)

	confirmed, err := l.Confirm(tk.ID, "sim_abc")
	require.NoError(t, err)
	assert.Equal(t, model.TicketStatusConfirmed, confirmed.Status)
	assert.NotEmpty(t, confirmed.QRCode)
	require.NotNil(t, confirmed.PaymentRef)
	assert.Equal(t, "sim_abc", *confirmed.PaymentRef)

	// Confirming twice is an invalid transition.
	_, err = l.Confirm(tk.ID, "sim_def")
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = l.Confirm("missing", "sim_abc")
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestCancelReportsPreviousStatus(t *testing.T) {
	l := NewTicketLedger()

	tk, err := l.Issue("e1", 7, 2500, strPtr("paypal"), model.TicketStatusPendingPayment)
	require.NoError(t, err)

	got, prev, err := l.Cancel(tk.ID)
	require.NoError(t, err)
	assert.True(t, prev.Active())
	assert.Equal(t, model.TicketStatusCancelled, got.Status)
	require.NotNil(t, got.CancelledAt)

	// Second cancel is a no-op that reports prev == cancelled.
	got, prev, err = l.Cancel(tk.ID)
	require.NoError(t, err)
	assert.False(t, prev.Active())
	assert.Equal(t, model.TicketStatusCancelled, got.Status)

	_, _, err = l.Cancel("missing")
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestFindActive(t *testing.T) {
	l := NewTicketLedger()

	assert.Nil(t, l.FindActive("e1", 7))

	tk, err := l.Issue("e1", 7, 0, nil, model.TicketStatusConfirmed)
	require.NoError(t, err)

	found := l.FindActive("e1", 7)
	require.NotNil(t, found)
	assert.Equal(t, tk.ID, found.ID)

	_, _, err = l.Cancel(tk.ID)
	require.NoError(t, err)
	assert.Nil(t, l.FindActive("e1", 7))
}

func TestListByUserKeepsIssuanceOrderAndCancelled(t *testing.T) {
	l := NewTicketLedger()

	first, err := l.Issue("e1", 7, 0, nil, model.TicketStatusConfirmed)
	require.NoError(t, err)
	_, err = l.Issue("e2", 9, 0, nil, model.TicketStatusConfirmed)
	require.NoError(t, err)
	second, err := l.Issue("e2", 7, 2500, strPtr("card"), model.TicketStatusPendingPayment)
	require.NoError(t, err)
	_, _, err = l.Cancel(first.ID)
	require.NoError(t, err)

	got := l.ListByUser(7)
	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, model.TicketStatusCancelled, got[0].Status)
	assert.Equal(t, second.ID, got[1].ID)
}

func TestRestoreRejectsConflicts(t *testing.T) {
	l := NewTicketLedger()

	now := time.Now().UTC()
	seed := model.Ticket{
		ID:          "ticket-1",
		EventID:     "e1",
		UserID:      7,
		Status:      model.TicketStatusConfirmed,
		QRCode:      "QR123456789",
		IssuedAt:    now,
		ConfirmedAt: &now,
	}
	require.NoError(t, l.Restore(seed))

	assert.ErrorIs(t, l.Restore(seed), ErrInvalidState)

	dup := seed
	dup.ID = "ticket-2"
	assert.ErrorIs(t, l.Restore(dup), ErrDuplicateRegistration)
}

func TestCountConfirmed(t *testing.T) {
	l := NewTicketLedger()

	_, err := l.Issue("e1", 1, 0, nil, model.TicketStatusConfirmed)
	require.NoError(t, err)
	_, err = l.Issue("e1", 2, 0, nil, model.TicketStatusConfirmed)
	require.NoError(t, err)
	pending, err := l.Issue("e1", 3, 2500, strPtr("mpesa"), model.TicketStatusPendingPayment)
	require.NoError(t, err)
	_, err = l.Issue("e2", 1, 0, nil, model.TicketStatusConfirmed)
	require.NoError(t, err)

	assert.Equal(t, 2, l.CountConfirmed("e1"))

	_, err = l.Confirm(pending.ID, "sim_x")
	require.NoError(t, err)
	assert.Equal(t, 3, l.CountConfirmed("e1"))
}
