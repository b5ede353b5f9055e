package services

import "github.com/terraincognita07/flare/internal/models"

type DailySeverity struct {
	Date string  `json:"date"`
	Endo float64 `json:"endo"`
	IBS  float64 `json:"ibs"`
}

// PhaseSeverity is the mean of per-day category averages for one phase.
// A zero day count means nothing was logged for that category in the phase.
type PhaseSeverity struct {
	Phase    CyclePhase `json:"phase"`
	Endo     float64    `json:"endo"`
	EndoDays int        `json:"endo_days"`
	IBS      float64    `json:"ibs"`
	IBSDays  int        `json:"ibs_days"`
}

type PhaseClassifier interface {
	CyclePhase(day string) CyclePhase
}

// ReportedPhases are the phase buckets used by PhaseAverages, in display order.
func ReportedPhases() []CyclePhase {
	return []CyclePhase{PhaseMenstrual, PhaseFollicular, PhaseOvulation, PhaseLuteal}
}

func CategoryAverage(record models.SymptomRecord, category models.SymptomCategory) (float64, bool) {
	severities := record.Severities(category)
	if len(severities) == 0 {
		return 0, false
	}
	values := make([]int, 0, len(severities))
	for _, severity := range severities {
		values = append(values, severity)
	}
	return averageInts(values), true
}

// DailyAverages builds one point per requested day; days without a record or
// category report 0.
func DailyAverages(log models.SymptomLog, days []string) []DailySeverity {
	series := make([]DailySeverity, 0, len(days))
	for _, day := range days {
		point := DailySeverity{Date: day}
		if record, ok := log[day]; ok {
			point.Endo, _ = CategoryAverage(record, models.CategoryEndo)
			point.IBS, _ = CategoryAverage(record, models.CategoryIBS)
		}
		series = append(series, point)
	}
	return series
}

// PhaseAverages buckets every logged day by phase. Days classified as Unknown
// or Late Luteal are left out.
func PhaseAverages(log models.SymptomLog, classifier PhaseClassifier) []PhaseSeverity {
	endoByPhase := make(map[CyclePhase][]float64)
	ibsByPhase := make(map[CyclePhase][]float64)
	reported := make(map[CyclePhase]bool)
	for _, phase := range ReportedPhases() {
		reported[phase] = true
	}

	for day, record := range log {
		phase := classifier.CyclePhase(day)
		if !reported[phase] {
			continue
		}
		if average, ok := CategoryAverage(record, models.CategoryEndo); ok {
			endoByPhase[phase] = append(endoByPhase[phase], average)
		}
		if average, ok := CategoryAverage(record, models.CategoryIBS); ok {
			ibsByPhase[phase] = append(ibsByPhase[phase], average)
		}
	}

	result := make([]PhaseSeverity, 0, len(reported))
	for _, phase := range ReportedPhases() {
		result = append(result, PhaseSeverity{
			Phase:    phase,
			Endo:     averageFloats(endoByPhase[phase]),
			EndoDays: len(endoByPhase[phase]),
			IBS:      averageFloats(ibsByPhase[phase]),
			IBSDays:  len(ibsByPhase[phase]),
		})
	}
	return result
}

func averageInts(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	var total int
	for _, value := range values {
		total += value
	}
	return float64(total) / float64(len(values))
}

func averageFloats(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var total float64
	for _, value := range values {
		total += value
	}
	return total / float64(len(values))
}
