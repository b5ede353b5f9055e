package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/terraincognita07/flare/internal/models"
)

var (
	ErrTrackerLoadFailed    = errors.New("load tracker state failed")
	ErrTrackerPersistFailed = errors.New("persist tracker state failed")
	ErrInvalidDayRange      = errors.New("invalid day range")
)

type KeyValueStore interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	SetMany(values map[string][]byte) error
	Clear() error
}

type DayView struct {
	Date      string                `json:"date"`
	Record    *models.SymptomRecord `json:"record"`
	HasRecord bool                  `json:"has_record"`
	Status    DayCycleStatus        `json:"status"`
}

type SaveDayResult struct {
	Date    string                `json:"date"`
	Record  *models.SymptomRecord `json:"record"`
	Saved   bool                  `json:"saved"`
	Cleared bool                  `json:"cleared"`
}

type DayRecord struct {
	Date   string               `json:"date"`
	Record models.SymptomRecord `json:"record"`
}

// TrackerService owns the symptom log and period intervals of the single
// user session. Every mutation is written through to the store before it
// becomes visible; a failed write leaves the previous state in place.
type TrackerService struct {
	mu       sync.Mutex
	store    KeyValueStore
	clock    Clock
	location *time.Location
	symptoms models.SymptomLog
	cycle    *CycleEngine
}

func NewTrackerService(store KeyValueStore, clock Clock, location *time.Location) (*TrackerService, error) {
	if clock == nil {
		clock = SystemClock{}
	}
	if location == nil {
		location = time.UTC
	}

	service := &TrackerService{
		store:    store,
		clock:    clock,
		location: location,
	}
	if err := service.load(); err != nil {
		return nil, err
	}
	return service, nil
}

func (service *TrackerService) Today() string {
	return DayKeyAtLocation(service.clock.Now(), service.location)
}

func (service *TrackerService) Day(rawDay string) (DayView, error) {
	day, err := ParseDayKey(rawDay)
	if err != nil {
		return DayView{}, err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	view := DayView{Date: day, Status: service.cycle.Status(day)}
	if record, ok := service.symptoms[day]; ok {
		cloned := record.Clone()
		view.Record = &cloned
		view.HasRecord = true
	}
	return view, nil
}

// SaveDay replaces the whole record for a day. Input that normalizes to an
// empty record deletes the day instead.
func (service *TrackerService) SaveDay(rawDay string, input DayEntryInput) (SaveDayResult, error) {
	day, err := ParseDayKey(rawDay)
	if err != nil {
		return SaveDayResult{}, err
	}
	record, err := BuildSymptomRecord(input)
	if err != nil {
		return SaveDayResult{}, err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	next := service.symptoms.Clone()
	result := SaveDayResult{Date: day}
	if record.IsEmpty() {
		delete(next, day)
		result.Cleared = true
	} else {
		next[day] = record
		stored := record.Clone()
		result.Record = &stored
		result.Saved = true
	}

	if err := service.persistSymptoms(next); err != nil {
		return SaveDayResult{}, err
	}
	service.symptoms = next
	return result, nil
}

func (service *TrackerService) DeleteDay(rawDay string) error {
	day, err := ParseDayKey(rawDay)
	if err != nil {
		return err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	if _, ok := service.symptoms[day]; !ok {
		return nil
	}
	next := service.symptoms.Clone()
	delete(next, day)
	if err := service.persistSymptoms(next); err != nil {
		return err
	}
	service.symptoms = next
	return nil
}

// DaysInRange lists stored records between from and to inclusive, oldest first.
func (service *TrackerService) DaysInRange(rawFrom string, rawTo string) ([]DayRecord, error) {
	from, err := ParseDayKey(rawFrom)
	if err != nil {
		return nil, err
	}
	to, err := ParseDayKey(rawTo)
	if err != nil {
		return nil, err
	}
	if to < from {
		return nil, ErrInvalidDayRange
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	records := make([]DayRecord, 0)
	for day, record := range service.symptoms {
		if day < from || day > to {
			continue
		}
		records = append(records, DayRecord{Date: day, Record: record.Clone()})
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date < records[j].Date
	})
	return records, nil
}

func (service *TrackerService) TogglePeriodStart(rawDay string) (PeriodToggle, DayCycleStatus, error) {
	day, err := ParseDayKey(rawDay)
	if err != nil {
		return "", DayCycleStatus{}, err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	next := service.cycle.Clone()
	action := next.ToggleStart(day)
	if err := service.persistCycle(next); err != nil {
		return "", DayCycleStatus{}, err
	}
	service.cycle = next
	return action, next.Status(day), nil
}

// TogglePeriodEnd returns ErrNoOpenPeriod without touching state when no open
// period started on or before the day.
func (service *TrackerService) TogglePeriodEnd(rawDay string) (PeriodToggle, DayCycleStatus, error) {
	day, err := ParseDayKey(rawDay)
	if err != nil {
		return "", DayCycleStatus{}, err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	next := service.cycle.Clone()
	action, err := next.ToggleEnd(day)
	if err != nil {
		return "", service.cycle.Status(day), err
	}
	if err := service.persistCycle(next); err != nil {
		return "", DayCycleStatus{}, err
	}
	service.cycle = next
	return action, next.Status(day), nil
}

func (service *TrackerService) Periods() []models.PeriodInterval {
	service.mu.Lock()
	defer service.mu.Unlock()
	return service.cycle.Periods()
}

func (service *TrackerService) CycleStatus(rawDay string) (DayCycleStatus, error) {
	day, err := ParseDayKey(rawDay)
	if err != nil {
		return DayCycleStatus{}, err
	}

	service.mu.Lock()
	defer service.mu.Unlock()
	return service.cycle.Status(day), nil
}

func (service *TrackerService) Summary() CycleSummary {
	today := service.Today()

	service.mu.Lock()
	defer service.mu.Unlock()
	return BuildCycleSummary(service.cycle, today)
}

// Trend returns daily category averages for the trailing window ending today.
func (service *TrackerService) Trend(days int) []DailySeverity {
	window := TrailingDays(service.Today(), NormalizeTrendDays(days))

	service.mu.Lock()
	defer service.mu.Unlock()
	return DailyAverages(service.symptoms, window)
}

func (service *TrackerService) PhaseBreakdown() []PhaseSeverity {
	service.mu.Lock()
	defer service.mu.Unlock()
	return PhaseAverages(service.symptoms, service.cycle)
}

func (service *TrackerService) CalendarMonth(month time.Time) []CalendarDayState {
	today := service.Today()

	service.mu.Lock()
	defer service.mu.Unlock()
	return BuildCalendarMonth(month, service.cycle, service.symptoms, today)
}

func (service *TrackerService) Export() ExportDocument {
	exportedAt := service.clock.Now().UTC()

	service.mu.Lock()
	defer service.mu.Unlock()
	return ExportDocument{
		Symptoms:   service.symptoms.Clone(),
		Cycle:      models.CycleData{Periods: service.cycle.Periods()},
		ExportDate: exportedAt,
	}
}

// Import replaces all tracked data with a decoded export document.
func (service *TrackerService) Import(document ExportDocument) error {
	symptoms, cycle, err := normalizeImportedData(document.Symptoms, document.Cycle)
	if err != nil {
		return err
	}

	symptomsJSON, err := json.Marshal(symptoms)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTrackerPersistFailed, err)
	}
	cycleJSON, err := json.Marshal(cycle)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTrackerPersistFailed, err)
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	if err := service.store.SetMany(map[string][]byte{
		models.StoreKeySymptoms: symptomsJSON,
		models.StoreKeyCycle:    cycleJSON,
	}); err != nil {
		return fmt.Errorf("%w: %v", ErrTrackerPersistFailed, err)
	}
	service.symptoms = symptoms
	service.cycle = NewCycleEngine(cycle.Periods)
	return nil
}

func (service *TrackerService) ClearAll() error {
	service.mu.Lock()
	defer service.mu.Unlock()

	if err := service.store.Clear(); err != nil {
		return fmt.Errorf("%w: %v", ErrTrackerPersistFailed, err)
	}
	service.symptoms = models.SymptomLog{}
	service.cycle = NewCycleEngine(nil)
	return nil
}

func (service *TrackerService) load() error {
	symptoms := models.SymptomLog{}
	if err := service.loadDocument(models.StoreKeySymptoms, &symptoms); err != nil {
		return err
	}
	if symptoms == nil {
		symptoms = models.SymptomLog{}
	}

	cycle := models.CycleData{}
	if err := service.loadDocument(models.StoreKeyCycle, &cycle); err != nil {
		return err
	}

	service.symptoms = symptoms
	service.cycle = NewCycleEngine(cycle.Periods)
	return nil
}

func (service *TrackerService) loadDocument(key string, target any) error {
	raw, found, err := service.store.Get(key)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrTrackerLoadFailed, key, err)
	}
	if !found {
		return nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrTrackerLoadFailed, key, err)
	}
	return nil
}

func (service *TrackerService) persistSymptoms(symptoms models.SymptomLog) error {
	return service.persistDocument(models.StoreKeySymptoms, symptoms)
}

func (service *TrackerService) persistCycle(engine *CycleEngine) error {
	periods := engine.Periods()
	return service.persistDocument(models.StoreKeyCycle, models.CycleData{Periods: periods})
}

func (service *TrackerService) persistDocument(key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrTrackerPersistFailed, key, err)
	}
	if err := service.store.Set(key, encoded); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrTrackerPersistFailed, key, err)
	}
	return nil
}
