// Package calendar derives date-indexed views of the event catalog
// for rendering month grids and day listings. The index owns no
// state: every query recomputes from a catalog snapshot, so results
// are always consistent with the catalog at call time.
//
// Conventions follow the standard library: months are time.Month
// (January == 1) and weekdays are time.Weekday (Sunday == 0).
package calendar

import (
	"sort"
	"time"

	"github.com/univents/campus-events/internal/model"
	"github.com/univents/campus-events/internal/repository"
)

// Index answers calendar queries against the event catalog. Only
// published events are visible.
type Index struct {
	catalog *repository.EventCatalog
}

// NewIndex returns an Index reading from catalog.
func NewIndex(catalog *repository.EventCatalog) *Index {
	return &Index{catalog: catalog}
}

// EventsOn returns the published events taking place on the calendar
// day of date (compared in UTC), sorted by start time.
func (i *Index) EventsOn(date time.Time) []*model.Event {
	out := make([]*model.Event, 0)
	for _, ev := range i.catalog.List() {
		if ev.Status != model.EventStatusPublished {
			continue
		}
		if ev.SameDay(date) {
			out = append(out, ev)
		}
	}
	sortByStart(out)
	return out
}

// EventsInMonth returns the published events whose date falls in the
// given month, sorted by day then start time.
func (i *Index) EventsInMonth(year int, month time.Month) []*model.Event {
	out := make([]*model.Event, 0)
	for _, ev := range i.catalog.List() {
		if ev.Status != model.EventStatusPublished {
			continue
		}
		y, m, _ := ev.Date.UTC().Date()
		if y == year && m == month {
			out = append(out, ev)
		}
	}
	sortByStart(out)
	return out
}

// DaysInMonth returns the number of days in the month, leap years
// included. Day 0 of the following month normalises to the last day
// of this one.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekdayOf returns the weekday the month starts on
// (Sunday == 0), which is the leading offset of a month grid.
func FirstWeekdayOf(year int, month time.Month) time.Weekday {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()
}

func sortByStart(events []*model.Event) {
	sort.Slice(events, func(a, b int) bool {
		if !events[a].Date.Equal(events[b].Date) {
			return events[a].Date.Before(events[b].Date)
		}
		if events[a].StartTime != events[b].StartTime {
			return events[a].StartTime < events[b].StartTime
		}
		return events[a].ID < events[b].ID
	})
}
