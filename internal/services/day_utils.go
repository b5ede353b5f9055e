package services

import (
	"errors"
	"strings"
	"time"
)

const (
	DayLayout   = "2006-01-02"
	MonthLayout = "2006-01"
)

var (
	ErrInvalidDay   = errors.New("invalid day")
	ErrInvalidMonth = errors.New("invalid month")
)

// ParseDayKey validates a YYYY-MM-DD string and returns its canonical form.
func ParseDayKey(raw string) (string, error) {
	parsed, err := time.Parse(DayLayout, strings.TrimSpace(raw))
	if err != nil {
		return "", ErrInvalidDay
	}
	return parsed.Format(DayLayout), nil
}

func ParseMonth(raw string) (time.Time, error) {
	parsed, err := time.Parse(MonthLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, ErrInvalidMonth
	}
	return parsed, nil
}

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// DayKeyAtLocation formats the calendar date of value as seen in location.
func DayKeyAtLocation(value time.Time, location *time.Location) string {
	return DateAtLocation(value, location).Format(DayLayout)
}

func ShiftDay(day string, offset int) (string, error) {
	parsed, err := time.Parse(DayLayout, day)
	if err != nil {
		return "", ErrInvalidDay
	}
	return parsed.AddDate(0, 0, offset).Format(DayLayout), nil
}

// TrailingDays returns count consecutive day keys ending with endDay, oldest
// first.
func TrailingDays(endDay string, count int) []string {
	end, err := time.Parse(DayLayout, endDay)
	if err != nil || count <= 0 {
		return []string{}
	}
	days := make([]string, 0, count)
	for offset := count - 1; offset >= 0; offset-- {
		days = append(days, end.AddDate(0, 0, -offset).Format(DayLayout))
	}
	return days
}

// daysBetween returns to-from in whole days. Both keys are expected to be
// valid; unparsable input counts as zero days.
func daysBetween(from string, to string) int {
	fromDay, err := time.Parse(DayLayout, from)
	if err != nil {
		return 0
	}
	toDay, err := time.Parse(DayLayout, to)
	if err != nil {
		return 0
	}
	return int(toDay.Sub(fromDay).Hours() / 24)
}
