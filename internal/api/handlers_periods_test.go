package api

import (
	"net/http"
	"testing"

	"github.com/terraincognita07/flare/internal/models"
	"github.com/terraincognita07/flare/internal/services"
)

func TestTogglePeriodStartAndEnd(t *testing.T) {
	app, _ := newTestApp(t)

	response := doRequest(t, app, http.MethodPost, "/api/periods/2024-01-01/start", "")
	expectStatus(t, response, http.StatusOK)
	toggle := periodToggleResponse{}
	decodeJSON(t, response, &toggle)
	if toggle.Action != services.PeriodMarked || !toggle.Status.PeriodStart || toggle.Status.Phase != services.PhaseMenstrual {
		t.Fatalf("unexpected start toggle: %+v", toggle)
	}

	response = doRequest(t, app, http.MethodPost, "/api/periods/2024-01-05/end", "")
	expectStatus(t, response, http.StatusOK)
	decodeJSON(t, response, &toggle)
	if toggle.Action != services.PeriodMarked || !toggle.Status.PeriodEnd {
		t.Fatalf("unexpected end toggle: %+v", toggle)
	}

	response = doRequest(t, app, http.MethodGet, "/api/periods", "")
	expectStatus(t, response, http.StatusOK)
	payload := models.CycleData{}
	decodeJSON(t, response, &payload)
	if len(payload.Periods) != 1 || payload.Periods[0].Start != "2024-01-01" || payload.Periods[0].EndValue() != "2024-01-05" {
		t.Fatalf("unexpected periods: %+v", payload.Periods)
	}

	response = doRequest(t, app, http.MethodPost, "/api/periods/2024-01-01/start", "")
	expectStatus(t, response, http.StatusOK)
	decodeJSON(t, response, &toggle)
	if toggle.Action != services.PeriodRemoved || toggle.Status.HasCycleDay {
		t.Fatalf("unexpected removal toggle: %+v", toggle)
	}
}

func TestTogglePeriodEndWithoutOpenPeriodConflicts(t *testing.T) {
	app, _ := newTestApp(t)

	response := doRequest(t, app, http.MethodPost, "/api/periods/2024-01-05/end", "")
	expectStatus(t, response, http.StatusConflict)
	if message := readAPIError(t, response); message != "no open period" {
		t.Fatalf("expected no open period, got %q", message)
	}
}

func TestTogglePeriodRejectsInvalidDate(t *testing.T) {
	app, _ := newTestApp(t)

	response := doRequest(t, app, http.MethodPost, "/api/periods/2024-13-01/start", "")
	expectStatus(t, response, http.StatusBadRequest)
	if message := readAPIError(t, response); message != "invalid date" {
		t.Fatalf("expected invalid date, got %q", message)
	}
}

func TestGetCycleDay(t *testing.T) {
	app, _ := newTestApp(t)
	expectStatus(t, doRequest(t, app, http.MethodPost, "/api/periods/2024-01-01/start", ""), http.StatusOK)
	expectStatus(t, doRequest(t, app, http.MethodPost, "/api/periods/2024-01-05/end", ""), http.StatusOK)

	response := doRequest(t, app, http.MethodGet, "/api/cycle/2024-01-15", "")
	expectStatus(t, response, http.StatusOK)
	status := services.DayCycleStatus{}
	decodeJSON(t, response, &status)
	if status.CycleDay != 15 || status.Phase != services.PhaseOvulation || status.InPeriod {
		t.Fatalf("unexpected cycle status: %+v", status)
	}
}

func TestGetCalendar(t *testing.T) {
	app, _ := newTestApp(t)
	expectStatus(t, doRequest(t, app, http.MethodPost, "/api/periods/2024-01-01/start", ""), http.StatusOK)
	expectStatus(t, doRequest(t, app, http.MethodPut, "/api/days/2024-01-03", `{"notes":"x"}`), http.StatusOK)

	response := doRequest(t, app, http.MethodGet, "/api/calendar", "")
	expectStatus(t, response, http.StatusOK)
	payload := struct {
		Month string                      `json:"month"`
		Days  []services.CalendarDayState `json:"days"`
	}{}
	decodeJSON(t, response, &payload)
	if payload.Month != "2024-01" {
		t.Fatalf("expected current month, got %q", payload.Month)
	}
	// January 2024 starts on a Monday, so the grid opens on Sunday 2023-12-31.
	if len(payload.Days) != 35 || payload.Days[0].Date != "2023-12-31" {
		t.Fatalf("unexpected grid: %d cells starting %s", len(payload.Days), payload.Days[0].Date)
	}
	third := payload.Days[3]
	if third.Date != "2024-01-03" || !third.HasSymptoms || !third.IsPeriod {
		t.Fatalf("unexpected cell: %+v", third)
	}

	response = doRequest(t, app, http.MethodGet, "/api/calendar?month=2024-13", "")
	expectStatus(t, response, http.StatusBadRequest)
	if message := readAPIError(t, response); message != "invalid month" {
		t.Fatalf("expected invalid month, got %q", message)
	}
}
