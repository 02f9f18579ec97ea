package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/univents/campus-events/internal/calendar"
	"github.com/univents/campus-events/internal/model"
	"github.com/univents/campus-events/internal/repository"
)

func calendarEnv(t *testing.T) *CalendarHandler {
	t.Helper()
	catalog := repository.NewEventCatalog()
	_, err := catalog.Add(model.Event{
		ID: "e1", Title: "Homecoming",
		Date:         time.Date(2025, time.September, 12, 0, 0, 0, 0, time.UTC),
		StartTime:    "18:00",
		MaxAttendees: 100,
		Status:       model.EventStatusPublished,
	})
	require.NoError(t, err)
	return NewCalendarHandler(calendar.NewIndex(catalog))
}

func callCalendar(t *testing.T, h echo.HandlerFunc, names, values []string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	require.NoError(t, h(c))
	return rec
}

func TestMonthEndpoint(t *testing.T) {
	h := calendarEnv(t)

	rec := callCalendar(t, h.Month, []string{"year", "month"}, []string{"2025", "9"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Year         int           `json:"year"`
		Month        int           `json:"month"`
		DaysInMonth  int           `json:"days_in_month"`
		FirstWeekday int           `json:"first_weekday"`
		Items        []model.Event `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2025, resp.Year)
	assert.Equal(t, 9, resp.Month)
	assert.Equal(t, 30, resp.DaysInMonth)
	assert.Equal(t, int(time.Monday), resp.FirstWeekday)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "e1", resp.Items[0].ID)
}

func TestMonthEndpointRejectsBadInput(t *testing.T) {
	h := calendarEnv(t)

	rec := callCalendar(t, h.Month, []string{"year", "month"}, []string{"2025", "13"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = callCalendar(t, h.Month, []string{"year", "month"}, []string{"twenty", "9"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDayEndpoint(t *testing.T) {
	h := calendarEnv(t)

	rec := callCalendar(t, h.Day, []string{"date"}, []string{"2025-09-12"})
	require.Equal(t, http.StatusOK, rec.Code)
	var items []model.Event
	require.NoError(t, json.Unmarshal(decode(t, rec)["items"], &items))
	require.Len(t, items, 1)
	assert.Equal(t, "e1", items[0].ID)

	rec = callCalendar(t, h.Day, []string{"date"}, []string{"2025-09-13"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(decode(t, rec)["items"], &items))
	assert.Empty(t, items)

	rec = callCalendar(t, h.Day, []string{"date"}, []string{"12/09/2025"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
