package services

import (
	"time"

	"github.com/terraincognita07/flare/internal/models"
)

type CalendarDayState struct {
	Date        string     `json:"date"`
	Day         int        `json:"day"`
	InMonth     bool       `json:"in_month"`
	IsToday     bool       `json:"is_today"`
	IsPeriod    bool       `json:"is_period"`
	PeriodStart bool       `json:"period_start"`
	PeriodEnd   bool       `json:"period_end"`
	HasSymptoms bool       `json:"has_symptoms"`
	Phase       CyclePhase `json:"phase"`
}

// BuildCalendarMonth lays out full Sunday-first weeks covering the month that
// contains monthStart.
func BuildCalendarMonth(monthStart time.Time, engine *CycleEngine, log models.SymptomLog, today string) []CalendarDayState {
	year, month, _ := monthStart.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	gridStart := first.AddDate(0, 0, -int(first.Weekday()))
	gridEnd := last.AddDate(0, 0, 6-int(last.Weekday()))

	days := make([]CalendarDayState, 0, 42)
	for day := gridStart; !day.After(gridEnd); day = day.AddDate(0, 0, 1) {
		key := day.Format(DayLayout)
		_, hasRecord := log[key]
		days = append(days, CalendarDayState{
			Date:        key,
			Day:         day.Day(),
			InMonth:     day.Month() == month,
			IsToday:     key == today,
			IsPeriod:    engine.IsInPeriod(key),
			PeriodStart: engine.IsPeriodStart(key),
			PeriodEnd:   engine.IsPeriodEnd(key),
			HasSymptoms: hasRecord,
			Phase:       engine.CyclePhase(key),
		})
	}
	return days
}
