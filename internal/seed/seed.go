// Package seed loads the fixture data the app starts with: three
// campus accounts, five published events and two already-confirmed
// tickets. The numbers mirror the product mock data, including
// attendance counters that predate the ledger's history.
package seed

import (
	"fmt"
	"time"

	"github.com/univents/campus-events/internal/model"
	"github.com/univents/campus-events/internal/repository"
	"github.com/univents/campus-events/internal/utils"
)

// Stores groups the repositories the seeder fills.
type Stores struct {
	Users   *repository.UserRepo
	Catalog *repository.EventCatalog
	Ledger  *repository.TicketLedger
}

// Load populates the stores. Passwords are hashed at load time with
// the given bcrypt cost so fixtures never carry precomputed hashes.
func Load(s Stores, bcryptCost int) error {
	if err := loadUsers(s.Users, bcryptCost); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	if err := loadEvents(s.Catalog); err != nil {
		return fmt.Errorf("seed events: %w", err)
	}
	if err := loadTickets(s.Ledger); err != nil {
		return fmt.Errorf("seed tickets: %w", err)
	}
	return nil
}

func loadUsers(users *repository.UserRepo, cost int) error {
	fixtures := []struct {
		user     model.User
		password string
	}{
		{
			user: model.User{
				ID: 1, Email: "student@university.edu", Name: "Alex Johnson",
				Role: model.RoleStudent, Interests: []string{"sports", "social", "academic"},
			},
			password: "student123",
		},
		{
			user: model.User{
				ID: 2, Email: "faculty@university.edu", Name: "Dr. Sarah Wilson",
				Role: model.RoleFaculty,
			},
			password: "faculty123",
		},
		{
			user: model.User{
				ID: 3, Email: "admin@university.edu", Name: "Michael Chen",
				Role: model.RoleAdmin,
			},
			password: "admin123",
		},
	}
	for _, f := range fixtures {
		hash, err := utils.HashPassword(f.password, cost)
		if err != nil {
			return err
		}
		u := f.user
		u.PasswordHash = hash
		u.CreatedAt = time.Now().UTC()
		if err := users.Restore(u); err != nil {
			return err
		}
	}
	return nil
}

func loadEvents(catalog *repository.EventCatalog) error {
	events := []model.Event{
		{
			ID: "1", Title: "Tech Conference 2025",
			Description: "Annual technology conference featuring industry leaders and cutting-edge innovations.",
			Date:        date(2025, time.August, 15), StartTime: "09:00", EndTime: "17:00",
			Location: "Main Auditorium", PriceCents: 2500, Category: "academic",
			Club: "Computer Science Club", MaxAttendees: 200, CurrentAttendees: 67,
			Tags: []string{"technology", "conference", "networking"}, OrganizerID: 2,
			Status: model.EventStatusPublished, CreatedAt: date(2025, time.July, 1),
		},
		{
			ID: "2", Title: "Cultural Night",
			Description: "Celebrate diversity with performances, food, and cultural exhibitions from around the world.",
			Date:        date(2025, time.August, 20), StartTime: "18:00", EndTime: "22:00",
			Location: "Student Center", PriceCents: 1500, Category: "social",
			Club: "International Student Association", MaxAttendees: 300, CurrentAttendees: 156,
			Tags: []string{"culture", "performance", "international"}, OrganizerID: 2,
			Status: model.EventStatusPublished, CreatedAt: date(2025, time.July, 5),
		},
		{
			ID: "3", Title: "Basketball Tournament",
			Description: "Inter-department basketball championship with exciting matches and prizes.",
			Date:        date(2025, time.August, 25), StartTime: "14:00", EndTime: "18:00",
			Location: "Sports Complex", PriceCents: 1000, Category: "sports",
			Club: "Athletic Department", MaxAttendees: 500, CurrentAttendees: 234,
			Tags: []string{"basketball", "tournament", "sports"}, OrganizerID: 3,
			Status: model.EventStatusPublished, CreatedAt: date(2025, time.July, 10),
		},
		{
			ID: "4", Title: "Career Fair",
			Description: "Meet with top employers and explore career opportunities in various fields.",
			Date:        date(2025, time.September, 1), StartTime: "10:00", EndTime: "16:00",
			Location: "Exhibition Hall", PriceCents: 0, Category: "academic",
			Club: "Career Services", MaxAttendees: 400, CurrentAttendees: 89,
			Tags: []string{"career", "networking", "jobs"}, OrganizerID: 2,
			Status: model.EventStatusPublished, CreatedAt: date(2025, time.July, 15),
		},
		{
			ID: "5", Title: "Art Exhibition",
			Description: "Showcasing student artwork and creative projects from various disciplines.",
			Date:        date(2025, time.September, 10), StartTime: "12:00", EndTime: "20:00",
			Location: "Art Gallery", PriceCents: 800, Category: "social",
			Club: "Art Society", MaxAttendees: 150, CurrentAttendees: 45,
			Tags: []string{"art", "exhibition", "creativity"}, OrganizerID: 3,
			Status: model.EventStatusPublished, CreatedAt: date(2025, time.July, 20),
		},
	}
	for _, ev := range events {
		if _, err := catalog.Add(ev); err != nil {
			return err
		}
	}
	return nil
}

func loadTickets(ledger *repository.TicketLedger) error {
	mpesa, paypal := "mpesa", "paypal"
	confirmed1 := date(2025, time.July, 25)
	confirmed2 := date(2025, time.July, 28)
	tickets := []model.Ticket{
		{
			ID: "ticket-1", EventID: "1", UserID: 1,
			Status: model.TicketStatusConfirmed, PriceCents: 2500,
			PaymentMethod: &mpesa, QRCode: "QR123456789",
			IssuedAt: confirmed1, ConfirmedAt: &confirmed1,
		},
		{
			ID: "ticket-3", EventID: "3", UserID: 1,
			Status: model.TicketStatusConfirmed, PriceCents: 1000,
			PaymentMethod: &paypal, QRCode: "QR987654321",
			IssuedAt: confirmed2, ConfirmedAt: &confirmed2,
		},
	}
	for _, t := range tickets {
		if err := ledger.Restore(t); err != nil {
			return err
		}
	}
	return nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
