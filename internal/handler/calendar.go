package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/univents/campus-events/internal/calendar"
)

// CalendarHandler serves the calendar views. It reads through the
// calendar index, so responses always reflect the catalog at request
// time.
type CalendarHandler struct {
	Index *calendar.Index
}

func NewCalendarHandler(idx *calendar.Index) *CalendarHandler {
	return &CalendarHandler{Index: idx}
}

// Month handles GET /v1/calendar/:year/:month. Months are 1-12 as in
// time.Month; the response carries the grid metadata the UI needs to
// lay out the month (day count and the weekday of the 1st, with
// Sunday = 0) plus the month's events.
func (h *CalendarHandler) Month(c echo.Context) error {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid year"})
	}
	monthNum, err := strconv.Atoi(c.Param("month"))
	if err != nil || monthNum < 1 || monthNum > 12 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid month (1-12)"})
	}
	month := time.Month(monthNum)
	return c.JSON(http.StatusOK, echo.Map{
		"year":          year,
		"month":         monthNum,
		"days_in_month": calendar.DaysInMonth(year, month),
		"first_weekday": int(calendar.FirstWeekdayOf(year, month)),
		"items":         h.Index.EventsInMonth(year, month),
	})
}

// Day handles GET /v1/calendar/day/:date with date as YYYY-MM-DD and
// returns the events on exactly that calendar day.
func (h *CalendarHandler) Day(c echo.Context) error {
	date, err := time.ParseInLocation("2006-01-02", c.Param("date"), time.UTC)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"date":  date.Format("2006-01-02"),
		"items": h.Index.EventsOn(date),
	})
}
