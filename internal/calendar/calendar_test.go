package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/univents/campus-events/internal/model"
	"github.com/univents/campus-events/internal/repository"
)

func addEvent(t *testing.T, c *repository.EventCatalog, id string, date time.Time, startTime string, status model.EventStatus) {
	t.Helper()
	_, err := c.Add(model.Event{
		ID:           id,
		Title:        id,
		Date:         date,
		StartTime:    startTime,
		MaxAttendees: 100,
		Status:       status,
	})
	require.NoError(t, err)
}

func TestEventsOnMatchesExactDayOnly(t *testing.T) {
	c := repository.NewEventCatalog()
	idx := NewIndex(c)

	day := time.Date(2025, time.September, 12, 0, 0, 0, 0, time.UTC)
	addEvent(t, c, "match", day, "10:00", model.EventStatusPublished)
	addEvent(t, c, "day-before", day.AddDate(0, 0, -1), "10:00", model.EventStatusPublished)
	addEvent(t, c, "day-after", day.AddDate(0, 0, 1), "10:00", model.EventStatusPublished)
	addEvent(t, c, "draft-same-day", day, "12:00", model.EventStatusDraft)

	got := idx.EventsOn(day)
	require.Len(t, got, 1)
	assert.Equal(t, "match", got[0].ID)
}

func TestEventsOnSortsByStartTime(t *testing.T) {
	c := repository.NewEventCatalog()
	idx := NewIndex(c)

	day := time.Date(2025, time.September, 12, 0, 0, 0, 0, time.UTC)
	addEvent(t, c, "evening", day, "19:00", model.EventStatusPublished)
	addEvent(t, c, "morning", day, "09:00", model.EventStatusPublished)
	addEvent(t, c, "noon", day, "12:00", model.EventStatusPublished)

	got := idx.EventsOn(day)
	require.Len(t, got, 3)
	assert.Equal(t, "morning", got[0].ID)
	assert.Equal(t, "noon", got[1].ID)
	assert.Equal(t, "evening", got[2].ID)
}

// Dec 31 and Jan 1 sit in different months and years; neither view
// may leak into the other.
func TestEventsInMonthYearBoundary(t *testing.T) {
	c := repository.NewEventCatalog()
	idx := NewIndex(c)

	addEvent(t, c, "nye", time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), "22:00", model.EventStatusPublished)
	addEvent(t, c, "nyd", time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), "10:00", model.EventStatusPublished)

	dec := idx.EventsInMonth(2025, time.December)
	require.Len(t, dec, 1)
	assert.Equal(t, "nye", dec[0].ID)

	jan := idx.EventsInMonth(2026, time.January)
	require.Len(t, jan, 1)
	assert.Equal(t, "nyd", jan[0].ID)

	assert.Empty(t, idx.EventsInMonth(2025, time.January))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, DaysInMonth(2025, time.January))
	assert.Equal(t, 30, DaysInMonth(2025, time.September))
	assert.Equal(t, 28, DaysInMonth(2025, time.February))
	assert.Equal(t, 29, DaysInMonth(2024, time.February)) // leap year
	assert.Equal(t, 28, DaysInMonth(2100, time.February)) // century, not leap
	assert.Equal(t, 29, DaysInMonth(2000, time.February)) // 400-year rule
	assert.Equal(t, 31, DaysInMonth(2025, time.December))
}

func TestFirstWeekdayOf(t *testing.T) {
	// September 1, 2025 was a Monday.
	assert.Equal(t, time.Monday, FirstWeekdayOf(2025, time.September))
	// June 1, 2025 was a Sunday.
	assert.Equal(t, time.Sunday, FirstWeekdayOf(2025, time.June))
	// January 1, 2026 is a Thursday.
	assert.Equal(t, time.Thursday, FirstWeekdayOf(2026, time.January))
}
