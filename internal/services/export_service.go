package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/flare/internal/models"
	"gopkg.in/yaml.v3"
)

const (
	ExportFormatJSON = "json"
	ExportFormatYAML = "yaml"

	exportFilePrefix = "flare-export-"
)

var (
	ErrInvalidExportFormat = errors.New("invalid export format")
	ErrInvalidImport       = errors.New("invalid import document")
)

// ExportDocument is the downloadable backup. Field names are part of the file
// format and must stay stable.
type ExportDocument struct {
	Symptoms   models.SymptomLog `json:"symptoms" yaml:"symptoms"`
	Cycle      models.CycleData  `json:"cycle" yaml:"cycle"`
	ExportDate time.Time         `json:"exportDate" yaml:"exportDate"`
}

func NormalizeExportFormat(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", ExportFormatJSON:
		return ExportFormatJSON, nil
	case ExportFormatYAML, "yml":
		return ExportFormatYAML, nil
	default:
		return "", ErrInvalidExportFormat
	}
}

func ExportFileName(exportedAt time.Time, format string) string {
	return exportFilePrefix + exportedAt.Format(DayLayout) + "." + format
}

func ExportContentType(format string) string {
	if format == ExportFormatYAML {
		return "application/yaml"
	}
	return "application/json"
}

func EncodeExport(document ExportDocument, format string) ([]byte, error) {
	if document.Symptoms == nil {
		document.Symptoms = models.SymptomLog{}
	}
	if document.Cycle.Periods == nil {
		document.Cycle.Periods = []models.PeriodInterval{}
	}

	switch format {
	case ExportFormatJSON:
		return json.MarshalIndent(document, "", "  ")
	case ExportFormatYAML:
		return yaml.Marshal(document)
	default:
		return nil, ErrInvalidExportFormat
	}
}

// DecodeImport parses a JSON or YAML export document and validates it.
func DecodeImport(payload []byte) (ExportDocument, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return ExportDocument{}, ErrInvalidImport
	}

	document := ExportDocument{}
	var err error
	if trimmed[0] == '{' {
		decoder := json.NewDecoder(bytes.NewReader(trimmed))
		decoder.DisallowUnknownFields()
		err = decoder.Decode(&document)
	} else {
		err = yaml.Unmarshal(trimmed, &document)
	}
	if err != nil {
		return ExportDocument{}, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}

	symptoms, cycle, err := normalizeImportedData(document.Symptoms, document.Cycle)
	if err != nil {
		return ExportDocument{}, err
	}
	document.Symptoms = symptoms
	document.Cycle = cycle
	return document, nil
}

func normalizeImportedData(rawSymptoms models.SymptomLog, rawCycle models.CycleData) (models.SymptomLog, models.CycleData, error) {
	symptoms := make(models.SymptomLog, len(rawSymptoms))
	for rawDay, rawRecord := range rawSymptoms {
		day, err := ParseDayKey(rawDay)
		if err != nil {
			return nil, models.CycleData{}, fmt.Errorf("%w: symptom date %q", ErrInvalidImport, rawDay)
		}
		if _, duplicate := symptoms[day]; duplicate {
			return nil, models.CycleData{}, fmt.Errorf("%w: duplicate symptom date %s", ErrInvalidImport, day)
		}
		for _, category := range models.SymptomCategories() {
			for name, severity := range rawRecord.Severities(category) {
				if severity < models.MinSeverity || severity > models.MaxSeverity {
					return nil, models.CycleData{}, fmt.Errorf("%w: %s %s severity %d on %s", ErrInvalidImport, category, name, severity, day)
				}
			}
		}

		record, err := buildSymptomRecord(DayEntryInput{
			Endo:  rawRecord.Endo,
			IBS:   rawRecord.IBS,
			Notes: rawRecord.Notes,
		}, 0)
		if err != nil {
			return nil, models.CycleData{}, fmt.Errorf("%w: %v on %s", ErrInvalidImport, err, day)
		}
		if record.IsEmpty() {
			continue
		}
		symptoms[day] = record
	}

	periods := make([]models.PeriodInterval, 0, len(rawCycle.Periods))
	starts := make(map[string]struct{}, len(rawCycle.Periods))
	for _, rawPeriod := range rawCycle.Periods {
		start, err := ParseDayKey(rawPeriod.Start)
		if err != nil {
			return nil, models.CycleData{}, fmt.Errorf("%w: period start %q", ErrInvalidImport, rawPeriod.Start)
		}
		if _, duplicate := starts[start]; duplicate {
			return nil, models.CycleData{}, fmt.Errorf("%w: duplicate period start %s", ErrInvalidImport, start)
		}
		starts[start] = struct{}{}

		period := models.PeriodInterval{Start: start}
		if rawPeriod.End != nil {
			end, err := ParseDayKey(*rawPeriod.End)
			if err != nil {
				return nil, models.CycleData{}, fmt.Errorf("%w: period end %q", ErrInvalidImport, *rawPeriod.End)
			}
			period.End = &end
		}
		periods = append(periods, period)
	}
	sortPeriods(periods)

	return symptoms, models.CycleData{Periods: periods}, nil
}
