package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/terraincognita07/flare/internal/services"
)

const (
	PeriodActionStart = "start"
	PeriodActionEnd   = "end"
)

var (
	ErrConfirmationRequired = errors.New("refusing to clear data without --yes")
	ErrUnknownPeriodAction  = errors.New("period action must be start or end")
)

// RunExportCommand writes the export document to outPath, or to stdout when
// outPath is empty.
func RunExportCommand(tracker *services.TrackerService, format string, outPath string, stdout io.Writer) error {
	normalizedFormat, err := services.NormalizeExportFormat(format)
	if err != nil {
		return err
	}

	payload, err := services.EncodeExport(tracker.Export(), normalizedFormat)
	if err != nil {
		return fmt.Errorf("encode export: %w", err)
	}

	if strings.TrimSpace(outPath) == "" {
		if _, err := stdout.Write(payload); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		return nil
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
	}
	if err := os.WriteFile(outPath, payload, 0o600); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Fprintf(stdout, "Exported to %s\n", outPath)
	return nil
}

// RunImportCommand replaces all tracked data with the document at path.
func RunImportCommand(tracker *services.TrackerService, path string, stdout io.Writer) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read import file: %w", err)
	}

	document, err := services.DecodeImport(payload)
	if err != nil {
		return err
	}
	if err := tracker.Import(document); err != nil {
		return fmt.Errorf("import: %w", err)
	}

	fmt.Fprintf(stdout, "Imported %d days and %d periods\n", len(document.Symptoms), len(document.Cycle.Periods))
	return nil
}

func RunPeriodCommand(tracker *services.TrackerService, action string, day string, stdout io.Writer) error {
	var (
		result services.PeriodToggle
		status services.DayCycleStatus
		err    error
	)

	action = strings.ToLower(strings.TrimSpace(action))
	switch action {
	case PeriodActionStart:
		result, status, err = tracker.TogglePeriodStart(day)
	case PeriodActionEnd:
		result, status, err = tracker.TogglePeriodEnd(day)
	default:
		return ErrUnknownPeriodAction
	}

	if errors.Is(err, services.ErrNoOpenPeriod) {
		fmt.Fprintf(stdout, "No open period on or before %s; nothing to end.\n", day)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Period %s %s on %s (phase: %s)\n", action, result, status.Date, status.Phase)
	return nil
}

func RunClearCommand(tracker *services.TrackerService, confirmed bool, stdout io.Writer) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	if err := tracker.ClearAll(); err != nil {
		return fmt.Errorf("clear data: %w", err)
	}
	fmt.Fprintln(stdout, "All tracked data cleared.")
	return nil
}
