package services

import (
	"testing"
	"time"

	"github.com/terraincognita07/flare/internal/models"
)

func TestBuildCalendarMonthCoversFullWeeks(t *testing.T) {
	engine := NewCycleEngine([]models.PeriodInterval{
		{Start: "2024-02-27", End: dayPtr("2024-03-02")},
	})
	log := models.SymptomLog{
		"2024-03-02": {Endo: map[string]int{"cramping": 3}},
	}
	month := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	days := BuildCalendarMonth(month, engine, log, "2024-03-10")

	// March 2024 starts on a Friday and ends on a Sunday.
	if len(days) != 42 {
		t.Fatalf("expected 42 cells, got %d", len(days))
	}
	if days[0].Date != "2024-02-25" || days[0].InMonth {
		t.Fatalf("unexpected first cell: %+v", days[0])
	}
	if days[len(days)-1].Date != "2024-04-06" {
		t.Fatalf("unexpected last cell: %+v", days[len(days)-1])
	}

	byDate := make(map[string]CalendarDayState, len(days))
	for _, day := range days {
		byDate[day.Date] = day
	}

	if start := byDate["2024-02-27"]; !start.PeriodStart || !start.IsPeriod || start.InMonth {
		t.Fatalf("unexpected period start cell: %+v", start)
	}
	end := byDate["2024-03-02"]
	if !end.PeriodEnd || !end.IsPeriod || !end.HasSymptoms || end.Day != 2 {
		t.Fatalf("unexpected period end cell: %+v", end)
	}
	if today := byDate["2024-03-10"]; !today.IsToday || today.Phase != PhaseFollicular {
		t.Fatalf("unexpected today cell: %+v", today)
	}
	if byDate["2024-03-03"].IsPeriod {
		t.Fatal("expected 2024-03-03 outside the period")
	}
}

func TestBuildCalendarMonthExactWeeks(t *testing.T) {
	// February 2015 starts on a Sunday and has 28 days.
	month := time.Date(2015, time.February, 14, 0, 0, 0, 0, time.UTC)
	days := BuildCalendarMonth(month, NewCycleEngine(nil), models.SymptomLog{}, "")

	if len(days) != 28 {
		t.Fatalf("expected 28 cells, got %d", len(days))
	}
	for _, day := range days {
		if !day.InMonth || day.Phase != PhaseUnknown {
			t.Fatalf("unexpected cell: %+v", day)
		}
	}
}
