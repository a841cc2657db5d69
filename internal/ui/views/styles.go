package views

import (
	"github.com/charmbracelet/lipgloss"

	"commitview/internal/config"
	"commitview/internal/domain"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Section       lipgloss.Style
	Highlight     lipgloss.Style
	SelectionBg   lipgloss.Style
	Banner        lipgloss.Style
	Notice        lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
	Added         lipgloss.Style
	Removed       lipgloss.Style
	Modified      lipgloss.Style
	Other         lipgloss.Style
	Badge         lipgloss.Style
	PanelHeader   lipgloss.Style
}

// NewStyles creates a new Styles instance from the theme colors
func NewStyles(theme config.Theme) *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.TitleFg).
			Background(theme.TitleBg).
			Padding(0, 1),
		Subtitle: lipgloss.NewStyle().Foreground(theme.HelpFg),
		Dim:      lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(theme.HelpFg).
			MarginTop(1),
		Help:      lipgloss.NewStyle().Foreground(theme.HelpFg),
		Main:      lipgloss.NewStyle().Padding(0, 1),
		Section:   lipgloss.NewStyle().Bold(true).MarginTop(1),
		Highlight: lipgloss.NewStyle().Bold(true),
		SelectionBg: lipgloss.NewStyle().
			Background(theme.HeaderBg).
			Bold(true),
		Banner: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.ErrorFg).
			Padding(0, 1),
		Notice:        lipgloss.NewStyle().Foreground(theme.OtherFg).Italic(true),
		StatusError:   lipgloss.NewStyle().Foreground(theme.ErrorFg).Bold(true),
		StatusWarning: lipgloss.NewStyle().Foreground(theme.WarningFg),
		StatusLoading: lipgloss.NewStyle().Foreground(theme.HelpFg),
		StatusSuccess: lipgloss.NewStyle().Foreground(theme.AddedFg),
		Added:         lipgloss.NewStyle().Foreground(theme.AddedFg),
		Removed:       lipgloss.NewStyle().Foreground(theme.RemovedFg),
		Modified:      lipgloss.NewStyle().Foreground(theme.ModifiedFg),
		Other:         lipgloss.NewStyle().Foreground(theme.OtherFg),
		Badge:         lipgloss.NewStyle().Bold(true).Padding(0, 1),
		PanelHeader:   lipgloss.NewStyle().Bold(true).Foreground(theme.TitleFg),
	}
}

// StatusStyle returns the color used for a file status: green added, yellow
// modified, red removed, gray anything else.
func (s *Styles) StatusStyle(status domain.FileStatus) lipgloss.Style {
	switch status {
	case domain.StatusAdded:
		return s.Added
	case domain.StatusModified:
		return s.Modified
	case domain.StatusRemoved:
		return s.Removed
	default:
		return s.Other
	}
}
