package models

// PeriodInterval is one recorded period. End is nil while the period is open.
type PeriodInterval struct {
	Start string  `json:"start" yaml:"start"`
	End   *string `json:"end" yaml:"end"`
}

type CycleData struct {
	Periods []PeriodInterval `json:"periods" yaml:"periods"`
}

func (interval PeriodInterval) HasEnd() bool {
	return interval.End != nil
}

func (interval PeriodInterval) EndValue() string {
	if interval.End == nil {
		return ""
	}
	return *interval.End
}

func ClonePeriods(periods []PeriodInterval) []PeriodInterval {
	cloned := make([]PeriodInterval, 0, len(periods))
	for _, period := range periods {
		copied := PeriodInterval{Start: period.Start}
		if period.End != nil {
			end := *period.End
			copied.End = &end
		}
		cloned = append(cloned, copied)
	}
	return cloned
}
