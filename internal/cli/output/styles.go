package output

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used for terminal output.
type Styles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	Code    lipgloss.Style
}

// NewStyles returns colored styles, or plain ones when color is false.
func NewStyles(color bool) *Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return &Styles{
			Success: plain,
			Error:   plain,
			Warning: plain,
			Muted:   plain,
			Bold:    plain,
			Code:    plain,
		}
	}
	return &Styles{
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Bold:    lipgloss.NewStyle().Bold(true),
		Code:    lipgloss.NewStyle().Foreground(lipgloss.Color("81")),
	}
}

// Mark returns a check or cross styled by outcome.
func (s *Styles) Mark(ok bool) string {
	if ok {
		return s.Success.Render("✓")
	}
	return s.Error.Render("✗")
}
