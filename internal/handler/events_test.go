package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/univents/campus-events/internal/model"
	"github.com/univents/campus-events/internal/repository"
)

func TestGetEventHidesDrafts(t *testing.T) {
	catalog := repository.NewEventCatalog()
	_, err := catalog.Add(model.Event{
		ID: "d1", Title: "Unannounced", MaxAttendees: 10,
		Status: model.EventStatusDraft,
	})
	require.NoError(t, err)
	h := NewEventHandler(catalog)

	rec := call(t, 1, http.MethodGet, "/v1/events/d1", "", map[string]string{"id": "d1"}, h.GetEvent)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetEventReportsRemaining(t *testing.T) {
	catalog := repository.NewEventCatalog()
	_, err := catalog.Add(model.Event{
		ID: "e1", Title: "Quiz Night", MaxAttendees: 10, CurrentAttendees: 4,
		Status: model.EventStatusPublished,
	})
	require.NoError(t, err)
	h := NewEventHandler(catalog)

	rec := call(t, 1, http.MethodGet, "/v1/events/e1", "", map[string]string{"id": "e1"}, h.GetEvent)
	require.Equal(t, http.StatusOK, rec.Code)

	var remaining int
	require.NoError(t, json.Unmarshal(decode(t, rec)["remaining"], &remaining))
	assert.Equal(t, 6, remaining)
}

func TestCreateEventPublishedAndDraft(t *testing.T) {
	catalog := repository.NewEventCatalog()
	h := NewEventHandler(catalog)

	body := `{
		"title": "Robotics Workshop",
		"date": "2025-10-03",
		"start_time": "14:00",
		"end_time": "17:00",
		"location": "Lab 2",
		"price_cents": 0,
		"category": "academic",
		"max_attendees": 30,
		"publish": true
	}`
	rec := call(t, 2, http.MethodPost, "/v1/events", body, nil, h.CreateEvent)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created model.Event
	require.NoError(t, json.Unmarshal(decode(t, rec)["item"], &created))
	assert.Equal(t, model.EventStatusPublished, created.Status)
	assert.Equal(t, 0, created.CurrentAttendees)
	assert.Equal(t, int64(2), created.OrganizerID)
	assert.Equal(t, time.Date(2025, time.October, 3, 0, 0, 0, 0, time.UTC), created.Date.UTC())

	// Without publish the event stays a draft and off the public list.
	draftBody := `{
		"title": "Draft Talk",
		"date": "2025-10-04",
		"start_time": "10:00",
		"end_time": "11:00",
		"location": "Room 5",
		"category": "academic",
		"max_attendees": 20
	}`
	rec = call(t, 2, http.MethodPost, "/v1/events", draftBody, nil, h.CreateEvent)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, catalog.ListPublished(""), 1)
}

func TestCreateEventValidation(t *testing.T) {
	h := NewEventHandler(repository.NewEventCatalog())

	for _, tc := range []struct {
		name, body string
	}{
		{"missing title", `{"date":"2025-10-03","start_time":"14:00","end_time":"17:00","location":"Lab","category":"academic","max_attendees":30}`},
		{"zero capacity", `{"title":"X","date":"2025-10-03","start_time":"14:00","end_time":"17:00","location":"Lab","category":"academic","max_attendees":0}`},
		{"bad date", `{"title":"X","date":"03/10/2025","start_time":"14:00","end_time":"17:00","location":"Lab","category":"academic","max_attendees":30}`},
		{"bad time", `{"title":"X","date":"2025-10-03","start_time":"2pm","end_time":"17:00","location":"Lab","category":"academic","max_attendees":30}`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rec := call(t, 2, http.MethodPost, "/v1/events", tc.body, nil, h.CreateEvent)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestValidClock(t *testing.T) {
	assert.True(t, validClock("00:00"))
	assert.True(t, validClock("23:59"))
	assert.False(t, validClock("24:00"))
	assert.False(t, validClock("12:60"))
	assert.False(t, validClock("9:00"))
	assert.False(t, validClock("12-30"))
}
