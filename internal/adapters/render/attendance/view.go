package attendance

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/attendance-cli/internal/application"
	"github.com/bnema/attendance-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const barWidth = 24

type RenderOptions struct {
	Now time.Time
}

// RenderToday lists every enrolled student with the status recorded for the
// current day. Students without a record are shown as absent.
func RenderToday(entries []application.DayEntry, opts RenderOptions) (string, error) {
	return render(func(s styles) string {
		return todayView(entries, opts, s)
	})
}

func RenderReport(summaries []domain.StudentSummary) (string, error) {
	return render(func(s styles) string {
		return reportView(summaries, s)
	})
}

func RenderRecent(entries []application.RecentEntry) (string, error) {
	return render(func(s styles) string {
		return recentView(entries, s)
	})
}

func RenderSessions(records []domain.SessionRecord, opts RenderOptions) (string, error) {
	return render(func(s styles) string {
		return sessionsView(records, opts, s)
	})
}

func todayView(entries []application.DayEntry, opts RenderOptions, s styles) string {
	title := "Attendance today"
	if !opts.Now.IsZero() {
		title = fmt.Sprintf("Attendance for %s", domain.DateOf(opts.Now))
	}

	present, partial, absent := 0, 0, 0
	for _, entry := range entries {
		switch entry.Status {
		case domain.StatusPresent:
			present++
		case domain.StatusPartial:
			partial++
		default:
			absent++
		}
	}

	lines := []string{
		s.title.Render(title),
		s.header.Render(fmt.Sprintf("students: %d  present: %d  partial: %d  absent: %d", len(entries), present, partial, absent)),
	}

	if len(entries) == 0 {
		lines = append(lines, s.empty.Render("No students enrolled."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	rows := make([]string, 0, len(entries))
	for _, entry := range entries {
		status := s.forStatus(entry.Status).Render(entry.Status.Label())
		if !entry.Recorded {
			status = s.pending.Render(entry.Status.Label() + " (no record)")
		}
		rows = append(rows, lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.student.Render(studentTitle(entry.Student)),
			"  ",
			status,
		))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func reportView(summaries []domain.StudentSummary, s styles) string {
	lines := []string{
		s.title.Render("Attendance report"),
		s.header.Render(fmt.Sprintf("students: %d", len(summaries))),
	}

	if len(summaries) == 0 {
		lines = append(lines, s.empty.Render("No students enrolled."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, summary := range summaries {
		lines = append(lines, s.section.Render(summaryBlock(summary, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func summaryBlock(summary domain.StudentSummary, s styles) string {
	parts := []string{s.student.Render(studentTitle(summary.Student))}

	if summary.Days == 0 {
		parts = append(parts, s.empty.Render("no attendance recorded"))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	meta := lipgloss.NewStyle().Foreground(interpolateColor(summary.Percentage, 0, 100)).
		Render(fmt.Sprintf("%5.1f%%", summary.Percentage))
	parts = append(parts,
		lipgloss.JoinHorizontal(lipgloss.Top, renderProgressBar(summary.Percentage, barWidth, s), " ", meta),
		s.detail.Render(fmt.Sprintf("present %d  partial %d  absent %d  days %d",
			summary.Present, summary.Partial, summary.Absent, summary.Days)),
	)
	if summary.Percentage < 75 {
		parts = append(parts, s.warning.Render("below 75% attendance"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func recentView(entries []application.RecentEntry, s styles) string {
	lines := []string{
		s.title.Render("Recent attendance"),
		s.header.Render(fmt.Sprintf("records: %d", len(entries))),
	}

	if len(entries) == 0 {
		lines = append(lines, s.empty.Render("No attendance recorded yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	rows := make([]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.header.Render(entry.Record.Date),
			"  ",
			s.student.Render(entry.StudentName),
			"  ",
			s.forStatus(entry.Record.Status).Render(entry.Record.Status.Label()),
			"  ",
			s.detail.Render(entry.Record.RecordedAt.Format("15:04:05")),
		))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func sessionsView(records []domain.SessionRecord, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Session history"),
		s.header.Render(fmt.Sprintf("sessions: %d", len(records))),
	}

	if len(records) == 0 {
		lines = append(lines, s.empty.Render("No sessions recorded yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, record := range records {
		parts := []string{
			s.student.Render(fmt.Sprintf("%s / %s", record.ClassID, record.Subject)),
			s.detail.Render(fmt.Sprintf("%s  %s", formatWhen(record.StartedAt, opts.Now), formatSpan(record.StartedAt, record.EndedAt))),
			s.detail.Render(fmt.Sprintf("present %d  absent %d  recognitions %d", record.Present, record.Absent, len(record.Recognitions))),
		}
		if !record.Complete() {
			parts = append(parts, s.warning.Render("commit incomplete: "+record.CommitError))
		}
		lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, parts...)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func studentTitle(student domain.Student) string {
	name := strings.TrimSpace(student.Name)
	if student.RollNumber == "" {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, student.RollNumber)
}

func formatWhen(at, now time.Time) string {
	if at.IsZero() {
		return "unknown"
	}
	if now.IsZero() {
		return at.Format(time.RFC3339)
	}

	yearA, monthA, dayA := now.Date()
	yearB, monthB, dayB := at.Date()
	if yearA == yearB && monthA == monthB && dayA == dayB {
		return at.Format("15:04")
	}

	return at.Format("15:04 on 02 Jan")
}

func formatSpan(start, end time.Time) string {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return ""
	}
	return fmt.Sprintf("(%s)", end.Sub(start).Round(time.Second))
}

func renderProgressBar(percent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(percent) / 100))
	if filled > width {
		filled = width
	}

	fillSegment := s.barFill.Render(strings.Repeat("=", filled))
	emptySegment := s.barEmpty.Render(strings.Repeat("-", width-filled))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		fillSegment,
		emptySegment,
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	// ANSI 256 greyscale ramp, faded at min and bright at max
	interpolated := 240.0 + (255.0-240.0)*normalized

	return lipgloss.Color(fmt.Sprintf("%d", int(interpolated)))
}
