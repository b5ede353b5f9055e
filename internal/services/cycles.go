package services

import (
	"errors"
	"sort"

	"github.com/terraincognita07/flare/internal/models"
)

type CyclePhase string

const (
	PhaseUnknown    CyclePhase = "Unknown"
	PhaseMenstrual  CyclePhase = "Menstrual"
	PhaseFollicular CyclePhase = "Follicular"
	PhaseOvulation  CyclePhase = "Ovulation"
	PhaseLuteal     CyclePhase = "Luteal"
	PhaseLateLuteal CyclePhase = "Late Luteal"
)

// Day-count thresholds of a standard 28-day cycle. They are not personalized.
const (
	follicularLastDay = 14
	ovulationLastDay  = 16
	lutealLastDay     = 28
)

var ErrNoOpenPeriod = errors.New("no open period")

type PeriodToggle string

const (
	PeriodMarked  PeriodToggle = "marked"
	PeriodRemoved PeriodToggle = "removed"
)

type DayCycleStatus struct {
	Date        string     `json:"date"`
	CycleDay    int        `json:"cycle_day"`
	HasCycleDay bool       `json:"has_cycle_day"`
	Phase       CyclePhase `json:"phase"`
	InPeriod    bool       `json:"in_period"`
	PeriodStart bool       `json:"period_start"`
	PeriodEnd   bool       `json:"period_end"`
}

// CycleEngine answers cycle questions over a set of period intervals kept
// sorted by start. It is not safe for concurrent use.
type CycleEngine struct {
	periods []models.PeriodInterval
}

func NewCycleEngine(periods []models.PeriodInterval) *CycleEngine {
	sorted := models.ClonePeriods(periods)
	sortPeriods(sorted)
	return &CycleEngine{periods: sorted}
}

func (engine *CycleEngine) Periods() []models.PeriodInterval {
	return models.ClonePeriods(engine.periods)
}

func (engine *CycleEngine) Clone() *CycleEngine {
	return &CycleEngine{periods: models.ClonePeriods(engine.periods)}
}

// ToggleStart removes the period starting on day, or opens a new one there.
func (engine *CycleEngine) ToggleStart(day string) PeriodToggle {
	for index, period := range engine.periods {
		if period.Start == day {
			engine.periods = append(engine.periods[:index], engine.periods[index+1:]...)
			return PeriodRemoved
		}
	}

	engine.periods = append(engine.periods, models.PeriodInterval{Start: day})
	sortPeriods(engine.periods)
	return PeriodMarked
}

// ToggleEnd closes the most recent open period that started on or before day.
func (engine *CycleEngine) ToggleEnd(day string) (PeriodToggle, error) {
	openIndex := -1
	for index, period := range engine.periods {
		if period.HasEnd() || period.Start > day {
			continue
		}
		if openIndex == -1 || period.Start > engine.periods[openIndex].Start {
			openIndex = index
		}
	}
	if openIndex == -1 {
		return "", ErrNoOpenPeriod
	}

	open := &engine.periods[openIndex]
	if open.EndValue() == day {
		open.End = nil
		return PeriodRemoved, nil
	}
	end := day
	open.End = &end
	return PeriodMarked, nil
}

func (engine *CycleEngine) IsInPeriod(day string) bool {
	for _, period := range engine.periods {
		if period.Start <= day && (!period.HasEnd() || *period.End >= day) {
			return true
		}
	}
	return false
}

func (engine *CycleEngine) IsPeriodStart(day string) bool {
	for _, period := range engine.periods {
		if period.Start == day {
			return true
		}
	}
	return false
}

func (engine *CycleEngine) IsPeriodEnd(day string) bool {
	for _, period := range engine.periods {
		if period.HasEnd() && *period.End == day {
			return true
		}
	}
	return false
}

// CycleDay counts from the latest period start on or before day, which is day
// 1. The count keeps growing after that period ends until a newer start exists.
func (engine *CycleEngine) CycleDay(day string) (int, bool) {
	start, ok := engine.latestStartOnOrBefore(day)
	if !ok {
		return 0, false
	}
	return daysBetween(start, day) + 1, true
}

func (engine *CycleEngine) CyclePhase(day string) CyclePhase {
	cycleDay, ok := engine.CycleDay(day)
	if !ok {
		return PhaseUnknown
	}
	if engine.IsInPeriod(day) {
		return PhaseMenstrual
	}
	return phaseForCycleDay(cycleDay)
}

func (engine *CycleEngine) Status(day string) DayCycleStatus {
	cycleDay, hasCycleDay := engine.CycleDay(day)
	return DayCycleStatus{
		Date:        day,
		CycleDay:    cycleDay,
		HasCycleDay: hasCycleDay,
		Phase:       engine.CyclePhase(day),
		InPeriod:    engine.IsInPeriod(day),
		PeriodStart: engine.IsPeriodStart(day),
		PeriodEnd:   engine.IsPeriodEnd(day),
	}
}

func (engine *CycleEngine) latestStartOnOrBefore(day string) (string, bool) {
	latest := ""
	for _, period := range engine.periods {
		if period.Start <= day && period.Start > latest {
			latest = period.Start
		}
	}
	return latest, latest != ""
}

func phaseForCycleDay(cycleDay int) CyclePhase {
	switch {
	case cycleDay <= follicularLastDay:
		return PhaseFollicular
	case cycleDay <= ovulationLastDay:
		return PhaseOvulation
	case cycleDay <= lutealLastDay:
		return PhaseLuteal
	default:
		return PhaseLateLuteal
	}
}

func sortPeriods(periods []models.PeriodInterval) {
	sort.SliceStable(periods, func(i, j int) bool {
		return periods[i].Start < periods[j].Start
	})
}
