package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/terraincognita07/flare/internal/models"
	"github.com/terraincognita07/flare/internal/services"
)

var (
	periodColor = lipgloss.Color("#e53935")
	accentColor = lipgloss.Color("#8BC34A")
	mutedColor  = lipgloss.Color("#6b7280")
)

type statusStyles struct {
	title lipgloss.Style
	label lipgloss.Style
	value lipgloss.Style
	flag  lipgloss.Style
	muted lipgloss.Style
}

func newStatusStyles(output io.Writer) statusStyles {
	renderer := lipgloss.NewRenderer(output)
	return statusStyles{
		title: renderer.NewStyle().Bold(true).Foreground(accentColor).MarginBottom(1),
		label: renderer.NewStyle().Foreground(mutedColor).Width(18),
		value: renderer.NewStyle().Bold(true),
		flag:  renderer.NewStyle().Foreground(periodColor).Bold(true),
		muted: renderer.NewStyle().Foreground(mutedColor).Italic(true),
	}
}

// RunStatusCommand prints the cycle position and symptom averages for a day.
// An empty rawDay means today.
func RunStatusCommand(tracker *services.TrackerService, rawDay string, stdout io.Writer) error {
	day := strings.TrimSpace(rawDay)
	if day == "" {
		day = tracker.Today()
	}

	view, err := tracker.Day(day)
	if err != nil {
		return err
	}
	previousDay, err := services.ShiftDay(view.Date, -1)
	if err != nil {
		return err
	}
	previous, err := tracker.Day(previousDay)
	if err != nil {
		return err
	}
	summary := tracker.Summary()

	styles := newStatusStyles(stdout)
	var builder strings.Builder
	builder.WriteString(styles.title.Render("Flare status for " + view.Date))
	builder.WriteString("\n")

	row := func(label string, value string) {
		builder.WriteString(styles.label.Render(label))
		builder.WriteString(styles.value.Render(value))
		builder.WriteString("\n")
	}

	if view.Status.HasCycleDay {
		row("Cycle day", fmt.Sprintf("%d", view.Status.CycleDay))
	} else {
		row("Cycle day", "-")
	}
	row("Phase", string(view.Status.Phase))
	if flags := periodFlags(view.Status); flags != "" {
		builder.WriteString(styles.label.Render("Period"))
		builder.WriteString(styles.flag.Render(flags))
		builder.WriteString("\n")
	}

	for _, category := range models.SymptomCategories() {
		row(categoryLabel(category)+" average", formatDayAverage(view, category, previous))
	}
	if view.Record != nil && view.Record.Notes != "" {
		row("Notes", view.Record.Notes)
	}

	builder.WriteString("\n")
	row("Periods logged", fmt.Sprintf("%d", summary.TotalPeriods))
	if summary.AverageCycleLength > 0 {
		row("Avg cycle length", fmt.Sprintf("%d days", summary.AverageCycleLength))
	}
	if summary.AveragePeriodLength > 0 {
		row("Avg period length", fmt.Sprintf("%d days", summary.AveragePeriodLength))
	}
	if summary.TotalPeriods == 0 {
		builder.WriteString(styles.muted.Render("Mark a period start to see cycle days."))
		builder.WriteString("\n")
	}

	_, err = io.WriteString(stdout, builder.String())
	return err
}

func periodFlags(status services.DayCycleStatus) string {
	flags := make([]string, 0, 3)
	if status.InPeriod {
		flags = append(flags, "in period")
	}
	if status.PeriodStart {
		flags = append(flags, "start")
	}
	if status.PeriodEnd {
		flags = append(flags, "end")
	}
	return strings.Join(flags, ", ")
}

func categoryLabel(category models.SymptomCategory) string {
	if category == models.CategoryIBS {
		return "IBS"
	}
	return "Endo"
}

func formatDayAverage(view services.DayView, category models.SymptomCategory, previous services.DayView) string {
	if view.Record == nil {
		return "not logged"
	}
	average, ok := services.CategoryAverage(*view.Record, category)
	if !ok {
		return "not logged"
	}

	text := fmt.Sprintf("%.1f", average)
	if previous.Record == nil {
		return text
	}
	previousAverage, ok := services.CategoryAverage(*previous.Record, category)
	if !ok {
		return text
	}
	return fmt.Sprintf("%s (previous day %.1f)", text, previousAverage)
}
