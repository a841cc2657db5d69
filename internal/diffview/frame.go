package diffview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"commitview/internal/config"
)

const (
	columnSeparator = " │ "
	minColumnWidth  = 12
	// border top/bottom plus the sticky header line
	frameChrome = 3
)

type frameStyles struct {
	border    lipgloss.Style
	header    lipgloss.Style
	gutter    lipgloss.Style
	added     lipgloss.Style
	removed   lipgloss.Style
	unchanged lipgloss.Style
	empty     lipgloss.Style
	separator lipgloss.Style
}

func newFrameStyles(theme config.Theme) frameStyles {
	return frameStyles{
		border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.BorderFg),
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.TitleFg).
			Background(theme.HeaderBg),
		gutter:    lipgloss.NewStyle().Foreground(theme.LineNumberFg),
		added:     lipgloss.NewStyle().Foreground(theme.AddedFg).Background(theme.AddedBg),
		removed:   lipgloss.NewStyle().Foreground(theme.RemovedFg).Background(theme.RemovedBg),
		unchanged: lipgloss.NewStyle().Foreground(theme.UnchangedFg),
		empty:     lipgloss.NewStyle().Foreground(theme.OtherFg).Italic(true),
		separator: lipgloss.NewStyle().Foreground(theme.BorderFg),
	}
}

// Frame draws a SplitView as two columns that scroll together inside one
// bordered viewport, with the column titles pinned above the scroll region.
type Frame struct {
	view        SplitView
	hasView     bool
	styles      frameStyles
	tabSize     int
	heightRatio float64
	width       int
	termHeight  int
	limit       int
	body        string
	bodyLines   int
	vp          viewport.Model
}

// NewFrame creates an empty frame using the ui settings for theme, tab
// expansion and the height cap.
func NewFrame(ui config.UISettings) Frame {
	tabSize := ui.TabSize
	if tabSize <= 0 {
		tabSize = 4
	}
	ratio := ui.DiffHeightRatio
	if ratio <= 0 || ratio > 1 {
		ratio = 0.7
	}

	vp := viewport.New(0, 0)
	vp.KeyMap.Up = key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "scroll diff up"))
	vp.KeyMap.Down = key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "scroll diff down"))
	vp.KeyMap.PageUp = key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup", "page up"))
	vp.KeyMap.PageDown = key.NewBinding(key.WithKeys("pgdown", "f", " "), key.WithHelp("pgdn", "page down"))
	vp.KeyMap.HalfPageUp = key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "½ page up"))
	vp.KeyMap.HalfPageDown = key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "½ page down"))

	return Frame{
		styles:      newFrameStyles(ui.ResolveTheme()),
		tabSize:     tabSize,
		heightRatio: ratio,
		vp:          vp,
	}
}

// SetView replaces the displayed columns and scrolls back to the top
func (f *Frame) SetView(view SplitView) {
	f.view = view
	f.hasView = true
	f.refresh()
	f.vp.GotoTop()
}

// SplitView returns the columns currently shown
func (f Frame) SplitView() SplitView {
	return f.view
}

// SetSize sets the frame width and the terminal height the cap is taken from
func (f *Frame) SetSize(width, termHeight int) {
	if width == f.width && termHeight == f.termHeight {
		return
	}
	f.width = width
	f.termHeight = termHeight
	f.refresh()
}

// LimitHeight caps the frame at rows, border included, on top of the
// terminal share. Zero removes the cap.
func (f *Frame) LimitHeight(rows int) {
	if rows == f.limit {
		return
	}
	f.limit = rows
	f.refresh()
}

// MaxHeight is the most rows the frame may occupy, border included
func (f Frame) MaxHeight() int {
	h := int(float64(f.termHeight) * f.heightRatio)
	if f.limit > 0 && f.limit < h {
		h = f.limit
	}
	if h < frameChrome+1 {
		h = frameChrome + 1
	}
	return h
}

// KeyMap exposes the scroll bindings for help rendering
func (f Frame) KeyMap() viewport.KeyMap {
	return f.vp.KeyMap
}

// ScrollPercent reports how far the shared scroll region has moved
func (f Frame) ScrollPercent() float64 {
	return f.vp.ScrollPercent()
}

// Body returns the rendered columns without the frame chrome
func (f Frame) Body() string {
	return f.body
}

// Update forwards scroll keys and mouse wheel events to the viewport
func (f Frame) Update(msg tea.Msg) (Frame, tea.Cmd) {
	var cmd tea.Cmd
	f.vp, cmd = f.vp.Update(msg)
	return f, cmd
}

// View renders the header, the scroll region and the border
func (f Frame) View() string {
	if !f.hasView || f.width <= 0 {
		return ""
	}
	inner := f.innerWidth()
	colWidth := f.columnWidth()

	header := f.styles.header.Render(
		padRight(" "+f.view.Old.Title, colWidth) + columnSeparator + padRight(" "+f.view.New.Title, colWidth),
	)
	header = lipgloss.NewStyle().Width(inner).Render(header)

	return f.styles.border.Render(lipgloss.JoinVertical(lipgloss.Left, header, f.vp.View()))
}

func (f Frame) innerWidth() int {
	w := f.width - 2
	if w < 2*minColumnWidth+lipgloss.Width(columnSeparator) {
		w = 2*minColumnWidth + lipgloss.Width(columnSeparator)
	}
	return w
}

func (f Frame) columnWidth() int {
	return (f.innerWidth() - lipgloss.Width(columnSeparator)) / 2
}

func (f *Frame) refresh() {
	if !f.hasView {
		return
	}
	colWidth := f.columnWidth()
	f.body, f.bodyLines = f.renderBody(colWidth)

	height := f.bodyLines
	if limit := f.MaxHeight() - frameChrome; height > limit {
		height = limit
	}
	if height < 1 {
		height = 1
	}
	f.vp.Width = f.innerWidth()
	f.vp.Height = height
	f.vp.SetContent(f.body)
}

func (f Frame) renderBody(colWidth int) (string, int) {
	left := f.renderColumn(f.view.Old, colWidth)
	right := f.renderColumn(f.view.New, colWidth)

	n := max(len(left), len(right))
	blank := strings.Repeat(" ", colWidth)
	sep := f.styles.separator.Render(columnSeparator)

	lines := make([]string, n)
	for i := 0; i < n; i++ {
		l, r := blank, blank
		if i < len(left) {
			l = left[i]
		}
		if i < len(right) {
			r = right[i]
		}
		lines[i] = l + sep + r
	}
	return strings.Join(lines, "\n"), n
}

func (f Frame) renderColumn(col Column, width int) []string {
	if col.Placeholder {
		return []string{f.styles.empty.Render(padRight(PlaceholderText, width))}
	}

	gutterWidth := len(strconv.Itoa(len(col.Rows)))
	textWidth := width - gutterWidth - 1
	if textWidth < 1 {
		textWidth = 1
	}

	out := make([]string, len(col.Rows))
	for i, row := range col.Rows {
		text := strings.ReplaceAll(DisplayText(row.Text), "\t", strings.Repeat(" ", f.tabSize))
		text = padRight(ansi.Truncate(text, textWidth, "…"), textWidth)

		style := f.styles.unchanged
		if row.Highlighted {
			if row.Kind == LineAdded {
				style = f.styles.added
			} else {
				style = f.styles.removed
			}
		}
		gutter := f.styles.gutter.Render(fmt.Sprintf("%*d", gutterWidth, row.Number))
		out[i] = gutter + " " + style.Render(text)
	}
	return out
}

func padRight(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return ansi.Truncate(s, width, "")
}
