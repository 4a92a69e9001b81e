package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds lipgloss styles for human-readable output.
type Styles struct {
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Bold    lipgloss.Style
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Key     lipgloss.Style

	// Digit, Wildcard and Subjectless render code segments.
	Digit       lipgloss.Style
	Wildcard    lipgloss.Style
	Subjectless lipgloss.Style
}

func newStyles(color bool) *Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return &Styles{
			Error: plain, Success: plain, Warning: plain, Bold: plain,
			Title: plain, Muted: plain, Key: plain,
			Digit: plain, Wildcard: plain, Subjectless: plain,
		}
	}
	return &Styles{
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Warning:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Bold:        lipgloss.NewStyle().Bold(true),
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Muted:       lipgloss.NewStyle().Faint(true),
		Key:         lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Digit:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4A90E2")),
		Wildcard:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Subjectless: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
	}
}

// Code styles a delimited code for display. A "$" in the first position is
// the subjectless category and gets its own style; elsewhere it is dimmed.
// Strings that are not delimited codes are returned unstyled.
func (p *Printer) Code(c string) string {
	parts := strings.Split(c, "-")
	for i, part := range parts {
		switch {
		case part == "$" && i == 0:
			parts[i] = p.styles.Subjectless.Render(part)
		case part == "$":
			parts[i] = p.styles.Wildcard.Render(part)
		default:
			parts[i] = p.styles.Digit.Render(part)
		}
	}
	return strings.Join(parts, p.styles.Muted.Render("-"))
}

// cellWidth is the display width of s in terminal cells, ignoring ANSI codes.
func cellWidth(s string) int {
	return lipgloss.Width(s)
}
