package models

const (
	CategoryEndo SymptomCategory = "endo"
	CategoryIBS  SymptomCategory = "ibs"
)

const (
	MinSeverity = 1
	MaxSeverity = 5
)

type SymptomCategory string

// SymptomRecord is everything logged for one calendar day. Empty categories
// and empty notes are omitted so a stored record is never blank.
type SymptomRecord struct {
	Endo  map[string]int `json:"endo,omitempty" yaml:"endo,omitempty"`
	IBS   map[string]int `json:"ibs,omitempty" yaml:"ibs,omitempty"`
	Notes string         `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// SymptomLog maps YYYY-MM-DD keys to the record logged that day.
type SymptomLog map[string]SymptomRecord

func SymptomCategories() []SymptomCategory {
	return []SymptomCategory{CategoryEndo, CategoryIBS}
}

func (record SymptomRecord) Severities(category SymptomCategory) map[string]int {
	switch category {
	case CategoryEndo:
		return record.Endo
	case CategoryIBS:
		return record.IBS
	default:
		return nil
	}
}

func (record SymptomRecord) IsEmpty() bool {
	return len(record.Endo) == 0 && len(record.IBS) == 0 && record.Notes == ""
}

func (log SymptomLog) Clone() SymptomLog {
	cloned := make(SymptomLog, len(log))
	for day, record := range log {
		cloned[day] = record.Clone()
	}
	return cloned
}

func (record SymptomRecord) Clone() SymptomRecord {
	return SymptomRecord{
		Endo:  cloneSeverities(record.Endo),
		IBS:   cloneSeverities(record.IBS),
		Notes: record.Notes,
	}
}

func cloneSeverities(values map[string]int) map[string]int {
	if values == nil {
		return nil
	}
	cloned := make(map[string]int, len(values))
	for name, severity := range values {
		cloned[name] = severity
	}
	return cloned
}
