package services

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/terraincognita07/flare/internal/models"
)

const (
	MaxDayNotesLength    = 2000
	maxSymptomNameLength = 80
)

var (
	ErrInvalidSeverity    = errors.New("invalid severity")
	ErrInvalidSymptomName = errors.New("invalid symptom name")
	ErrNotesTooLong       = errors.New("notes too long")
)

// DayEntryInput is the full state of the log form for one day. Severity 0
// means the symptom was not reported.
type DayEntryInput struct {
	Endo  map[string]int `json:"endo"`
	IBS   map[string]int `json:"ibs"`
	Notes string         `json:"notes"`
}

// BuildSymptomRecord turns form input into the record that gets stored. An
// empty result means the day should be removed. Notes longer than
// MaxDayNotesLength runes are rejected with ErrNotesTooLong.
func BuildSymptomRecord(input DayEntryInput) (models.SymptomRecord, error) {
	return buildSymptomRecord(input, MaxDayNotesLength)
}

// buildSymptomRecord skips the notes length check when maxNotes is 0.
func buildSymptomRecord(input DayEntryInput, maxNotes int) (models.SymptomRecord, error) {
	notes := strings.TrimSpace(input.Notes)
	if maxNotes > 0 && utf8.RuneCountInString(notes) > maxNotes {
		return models.SymptomRecord{}, ErrNotesTooLong
	}

	endo, err := normalizeSeverities(input.Endo)
	if err != nil {
		return models.SymptomRecord{}, err
	}
	ibs, err := normalizeSeverities(input.IBS)
	if err != nil {
		return models.SymptomRecord{}, err
	}

	return models.SymptomRecord{
		Endo:  endo,
		IBS:   ibs,
		Notes: notes,
	}, nil
}

func normalizeSeverities(raw map[string]int) (map[string]int, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	normalized := make(map[string]int, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for rawName, severity := range raw {
		if severity < 0 || severity > models.MaxSeverity {
			return nil, ErrInvalidSeverity
		}
		name := strings.TrimSpace(rawName)
		if name == "" || utf8.RuneCountInString(name) > maxSymptomNameLength {
			return nil, ErrInvalidSymptomName
		}
		if _, duplicate := seen[name]; duplicate {
			return nil, ErrInvalidSymptomName
		}
		seen[name] = struct{}{}
		if severity == 0 {
			continue
		}
		normalized[name] = severity
	}

	if len(normalized) == 0 {
		return nil, nil
	}
	return normalized, nil
}
