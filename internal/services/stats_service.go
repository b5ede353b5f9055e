package services

import (
	"math"

	"github.com/terraincognita07/flare/internal/models"
)

const (
	DefaultTrendDays = 30
	MaxTrendDays     = 366
)

type CycleSummary struct {
	TotalPeriods        int        `json:"total_periods"`
	CompletedPeriods    int        `json:"completed_periods"`
	AveragePeriodLength int        `json:"average_period_length"`
	AverageCycleLength  int        `json:"average_cycle_length"`
	LastPeriodStart     string     `json:"last_period_start,omitempty"`
	Today               string     `json:"today"`
	CurrentCycleDay     int        `json:"current_cycle_day"`
	HasCurrentCycleDay  bool       `json:"has_current_cycle_day"`
	CurrentPhase        CyclePhase `json:"current_phase"`
}

// BuildCycleSummary reports averages over completed periods only. Cycle
// length is the gap between consecutive completed starts. Zero averages mean
// there was not enough data.
func BuildCycleSummary(engine *CycleEngine, today string) CycleSummary {
	periods := engine.Periods()
	summary := CycleSummary{
		TotalPeriods: len(periods),
		Today:        today,
		CurrentPhase: engine.CyclePhase(today),
	}
	summary.CurrentCycleDay, summary.HasCurrentCycleDay = engine.CycleDay(today)
	if len(periods) > 0 {
		summary.LastPeriodStart = periods[len(periods)-1].Start
	}

	completed := make([]models.PeriodInterval, 0, len(periods))
	for _, period := range periods {
		if period.HasEnd() {
			completed = append(completed, period)
		}
	}
	summary.CompletedPeriods = len(completed)
	if len(completed) == 0 {
		return summary
	}

	periodLengths := make([]int, 0, len(completed))
	for _, period := range completed {
		periodLengths = append(periodLengths, daysBetween(period.Start, *period.End)+1)
	}
	summary.AveragePeriodLength = roundToInt(averageInts(periodLengths))

	if len(completed) > 1 {
		cycleLengths := make([]int, 0, len(completed)-1)
		for index := 1; index < len(completed); index++ {
			cycleLengths = append(cycleLengths, daysBetween(completed[index-1].Start, completed[index].Start))
		}
		summary.AverageCycleLength = roundToInt(averageInts(cycleLengths))
	}

	return summary
}

// NormalizeTrendDays clamps a requested trend window, falling back to the
// default for non-positive values.
func NormalizeTrendDays(days int) int {
	if days <= 0 {
		return DefaultTrendDays
	}
	if days > MaxTrendDays {
		return MaxTrendDays
	}
	return days
}

func roundToInt(value float64) int {
	return int(math.Floor(value + 0.5))
}
