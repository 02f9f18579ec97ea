package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/univents/campus-events/internal/model"
	"github.com/univents/campus-events/internal/repository"
	"github.com/univents/campus-events/internal/utils"
)

func loadedStores(t *testing.T) Stores {
	t.Helper()
	s := Stores{
		Users:   repository.NewUserRepo(),
		Catalog: repository.NewEventCatalog(),
		Ledger:  repository.NewTicketLedger(),
	}
	// Minimum bcrypt cost keeps the test fast.
	require.NoError(t, Load(s, 4))
	return s
}

func TestLoadSeedsAccounts(t *testing.T) {
	s := loadedStores(t)

	for _, tc := range []struct {
		email, password, role string
	}{
		{"student@university.edu", "student123", model.RoleStudent},
		{"faculty@university.edu", "faculty123", model.RoleFaculty},
		{"admin@university.edu", "admin123", model.RoleAdmin},
	} {
		u, err := s.Users.GetByEmail(tc.email)
		require.NoError(t, err, tc.email)
		assert.Equal(t, tc.role, u.Role)
		assert.True(t, utils.VerifyPassword(u.PasswordHash, tc.password))
	}
}

func TestLoadSeedsEvents(t *testing.T) {
	s := loadedStores(t)

	events := s.Catalog.List()
	require.Len(t, events, 5)
	for _, ev := range events {
		assert.Equal(t, model.EventStatusPublished, ev.Status)
		assert.LessOrEqual(t, ev.CurrentAttendees, ev.MaxAttendees)
	}

	fair, err := s.Catalog.Get("4")
	require.NoError(t, err)
	assert.True(t, fair.IsFree())
	assert.Equal(t, "Career Fair", fair.Title)
}

func TestLoadSeedsTickets(t *testing.T) {
	s := loadedStores(t)

	tickets := s.Ledger.ListByUser(1)
	require.Len(t, tickets, 2)
	for _, tk := range tickets {
		assert.Equal(t, model.TicketStatusConfirmed, tk.Status)
		assert.NotEmpty(t, tk.QRCode)
	}

	// Seeded tickets occupy the active slot for their (event, user).
	assert.NotNil(t, s.Ledger.FindActive("1", 1))
	assert.NotNil(t, s.Ledger.FindActive("3", 1))
	assert.Nil(t, s.Ledger.FindActive("2", 1))
}
