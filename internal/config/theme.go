package config

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// ThemePreset describes a named theme configuration.
type ThemePreset string

const (
	PresetDefault  ThemePreset = "default"
	PresetSolarize ThemePreset = "solarized"
	PresetDracula  ThemePreset = "dracula"
)

// Theme defines the color scheme for the application
type Theme struct {
	AddedBg      lipgloss.Color
	AddedFg      lipgloss.Color
	RemovedBg    lipgloss.Color
	RemovedFg    lipgloss.Color
	UnchangedFg  lipgloss.Color
	ModifiedFg   lipgloss.Color
	OtherFg      lipgloss.Color
	LineNumberFg lipgloss.Color
	BorderFg     lipgloss.Color
	HeaderBg     lipgloss.Color
	TitleFg      lipgloss.Color
	TitleBg      lipgloss.Color
	ErrorFg      lipgloss.Color
	WarningFg    lipgloss.Color
	HelpFg       lipgloss.Color
}

// ResolveTheme resolves the configured preset
func (s UISettings) ResolveTheme() Theme {
	return ThemeForPreset(ThemePreset(s.Theme), s.HighContrast)
}

// DefaultTheme returns the default color theme
func DefaultTheme() Theme {
	return Theme{
		AddedBg:      lipgloss.Color("#2D4A2B"),
		AddedFg:      lipgloss.Color("#A8E6A3"),
		RemovedBg:    lipgloss.Color("#4A2D2D"),
		RemovedFg:    lipgloss.Color("#E6A3A3"),
		UnchangedFg:  lipgloss.Color("#B0B0B0"),
		ModifiedFg:   lipgloss.Color("#E6D36A"),
		OtherFg:      lipgloss.Color("#808080"),
		LineNumberFg: lipgloss.Color("#666666"),
		BorderFg:     lipgloss.Color("#3A3A3A"),
		HeaderBg:     lipgloss.Color("#2A2A2A"),
		TitleFg:      lipgloss.Color("#FFFFFF"),
		TitleBg:      lipgloss.Color("#5F5FAF"),
		ErrorFg:      lipgloss.Color("#FF5F5F"),
		WarningFg:    lipgloss.Color("#FFAF00"),
		HelpFg:       lipgloss.Color("#888888"),
	}
}

// ThemeForPreset resolves a preset name to a concrete Theme, optionally
// applying a high-contrast variation. Unknown names fall back to the default.
func ThemeForPreset(preset ThemePreset, highContrast bool) Theme {
	switch preset {
	case PresetSolarize:
		return applyContrast(Theme{
			AddedBg:      lipgloss.Color("#073642"),
			AddedFg:      lipgloss.Color("#859900"),
			RemovedBg:    lipgloss.Color("#3C1F1E"),
			RemovedFg:    lipgloss.Color("#DC322F"),
			UnchangedFg:  lipgloss.Color("#93A1A1"),
			ModifiedFg:   lipgloss.Color("#B58900"),
			OtherFg:      lipgloss.Color("#657B83"),
			LineNumberFg: lipgloss.Color("#586E75"),
			BorderFg:     lipgloss.Color("#657B83"),
			HeaderBg:     lipgloss.Color("#073642"),
			TitleFg:      lipgloss.Color("#EEE8D5"),
			TitleBg:      lipgloss.Color("#586E75"),
			ErrorFg:      lipgloss.Color("#DC322F"),
			WarningFg:    lipgloss.Color("#CB4B16"),
			HelpFg:       lipgloss.Color("#93A1A1"),
		}, highContrast)
	case PresetDracula:
		return applyContrast(Theme{
			AddedBg:      lipgloss.Color("#244443"),
			AddedFg:      lipgloss.Color("#50FA7B"),
			RemovedBg:    lipgloss.Color("#402036"),
			RemovedFg:    lipgloss.Color("#FF79C6"),
			UnchangedFg:  lipgloss.Color("#F8F8F2"),
			ModifiedFg:   lipgloss.Color("#F1FA8C"),
			OtherFg:      lipgloss.Color("#6272A4"),
			LineNumberFg: lipgloss.Color("#6272A4"),
			BorderFg:     lipgloss.Color("#44475A"),
			HeaderBg:     lipgloss.Color("#282A36"),
			TitleFg:      lipgloss.Color("#F8F8F2"),
			TitleBg:      lipgloss.Color("#6272A4"),
			ErrorFg:      lipgloss.Color("#FF5555"),
			WarningFg:    lipgloss.Color("#FFB86C"),
			HelpFg:       lipgloss.Color("#BD93F9"),
		}, highContrast)
	default:
		return applyContrast(DefaultTheme(), highContrast)
	}
}

func applyContrast(theme Theme, highContrast bool) Theme {
	if !highContrast {
		return theme
	}

	boost := func(c lipgloss.Color, factor float64) lipgloss.Color {
		return lipgloss.Color(adjustBrightness(string(c), factor))
	}
	return Theme{
		AddedBg:      boost(theme.AddedBg, 0.15),
		AddedFg:      boost(theme.AddedFg, 0.25),
		RemovedBg:    boost(theme.RemovedBg, 0.15),
		RemovedFg:    boost(theme.RemovedFg, 0.25),
		UnchangedFg:  boost(theme.UnchangedFg, 0.2),
		ModifiedFg:   boost(theme.ModifiedFg, 0.2),
		OtherFg:      boost(theme.OtherFg, 0.2),
		LineNumberFg: boost(theme.LineNumberFg, 0.2),
		BorderFg:     boost(theme.BorderFg, 0.2),
		HeaderBg:     boost(theme.HeaderBg, 0.2),
		TitleFg:      boost(theme.TitleFg, 0.2),
		TitleBg:      boost(theme.TitleBg, 0.2),
		ErrorFg:      boost(theme.ErrorFg, 0.2),
		WarningFg:    boost(theme.WarningFg, 0.2),
		HelpFg:       boost(theme.HelpFg, 0.2),
	}
}

func adjustBrightness(hex string, factor float64) string {
	if len(hex) != 7 || hex[0] != '#' {
		return hex
	}

	var r, g, b int
	_, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b)
	if err != nil {
		return hex
	}

	scale := func(value int) int {
		adjusted := float64(value) * (1 + factor)
		if adjusted > 255 {
			adjusted = 255
		}
		return int(adjusted)
	}

	return fmt.Sprintf("#%02x%02x%02x", scale(r), scale(g), scale(b))
}
