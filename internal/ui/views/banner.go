package views

import (
	"strings"
)

// ErrorBanner renders a page-level failure. No partial content is drawn
// alongside it; the way out is back to the named page, or quitting when
// back is empty.
func ErrorBanner(s *Styles, title string, err error, back string, width int) string {
	var b strings.Builder
	b.WriteString(s.StatusError.Render(title))
	if err != nil {
		b.WriteString("\n")
		b.WriteString(err.Error())
	}
	b.WriteString("\n\n")
	hints := []string{"r: Retry"}
	if back != "" {
		hints = append(hints, "esc: Back to "+back)
	} else {
		hints = append(hints, "q: Quit")
	}
	b.WriteString(s.Help.Render(strings.Join(hints, " • ")))

	style := s.Banner
	if width > 4 {
		style = style.Width(width - 2)
	}
	return style.Render(b.String())
}

// Loading renders the placeholder shown while a page is fetched
func Loading(s *Styles, spinner, label string) string {
	return spinner + " " + s.StatusLoading.Render(label)
}

// Notice renders an informational empty-state line
func Notice(s *Styles, text string) string {
	return s.Notice.Render(text)
}
