package attendance

import (
	"github.com/bnema/attendance-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	student    lipgloss.Style
	detail     lipgloss.Style
	warning    lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	present    lipgloss.Style
	partial    lipgloss.Style
	absent     lipgloss.Style
	pending    lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		student:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		warning:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		present:    lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		partial:    lipgloss.NewStyle().Foreground(lipgloss.Color("221")),
		absent:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		pending:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}

func (s styles) forStatus(status domain.Status) lipgloss.Style {
	switch status {
	case domain.StatusPresent:
		return s.present
	case domain.StatusPartial:
		return s.partial
	default:
		return s.absent
	}
}
