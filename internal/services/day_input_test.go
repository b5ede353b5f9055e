package services

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/terraincognita07/flare/internal/models"
)

func TestBuildSymptomRecordDropsZeroSeverities(t *testing.T) {
	record, err := BuildSymptomRecord(DayEntryInput{
		Endo:  map[string]int{" cramping ": 4, "fatigue": 0},
		IBS:   map[string]int{"bloating": 0},
		Notes: "  heating pad helped  ",
	})
	if err != nil {
		t.Fatalf("BuildSymptomRecord returned error: %v", err)
	}

	want := models.SymptomRecord{
		Endo:  map[string]int{"cramping": 4},
		Notes: "heating pad helped",
	}
	if diff := cmp.Diff(want, record); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildSymptomRecordAllEmptyIsEmpty(t *testing.T) {
	record, err := BuildSymptomRecord(DayEntryInput{
		Endo:  map[string]int{"cramping": 0},
		Notes: "   ",
	})
	if err != nil {
		t.Fatalf("BuildSymptomRecord returned error: %v", err)
	}
	if !record.IsEmpty() {
		t.Fatalf("expected empty record, got %+v", record)
	}
}

func TestBuildSymptomRecordRejectsInvalidInput(t *testing.T) {
	testCases := []struct {
		name  string
		input DayEntryInput
		want  error
	}{
		{name: "severity above max", input: DayEntryInput{Endo: map[string]int{"cramping": 6}}, want: ErrInvalidSeverity},
		{name: "negative severity", input: DayEntryInput{IBS: map[string]int{"gas": -1}}, want: ErrInvalidSeverity},
		{name: "blank name", input: DayEntryInput{Endo: map[string]int{"  ": 2}}, want: ErrInvalidSymptomName},
		{name: "long name", input: DayEntryInput{IBS: map[string]int{strings.Repeat("x", 81): 2}}, want: ErrInvalidSymptomName},
		{name: "duplicate after trim", input: DayEntryInput{Endo: map[string]int{"nausea": 2, " nausea": 0}}, want: ErrInvalidSymptomName},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if _, err := BuildSymptomRecord(testCase.input); !errors.Is(err, testCase.want) {
				t.Fatalf("expected %v, got %v", testCase.want, err)
			}
		})
	}
}

func TestBuildSymptomRecordNotesLengthLimit(t *testing.T) {
	atLimit := strings.Repeat("é", MaxDayNotesLength)
	record, err := BuildSymptomRecord(DayEntryInput{Notes: atLimit})
	if err != nil {
		t.Fatalf("expected notes at the limit to be accepted, got %v", err)
	}
	if utf8.RuneCountInString(record.Notes) != MaxDayNotesLength {
		t.Fatalf("expected %d runes, got %d", MaxDayNotesLength, utf8.RuneCountInString(record.Notes))
	}

	_, err = BuildSymptomRecord(DayEntryInput{Notes: atLimit + "é"})
	if !errors.Is(err, ErrNotesTooLong) {
		t.Fatalf("expected ErrNotesTooLong, got %v", err)
	}
}
