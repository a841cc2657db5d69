package diffview

import (
	"strconv"
	"strings"

	"commitview/internal/domain"
)

// PlaceholderText is shown in each column when there is no content
const PlaceholderText = "No content available"

// Side identifies a column of the split view
type Side int

const (
	SideOld Side = iota
	SideNew
)

func (s Side) keyPrefix() string {
	if s == SideOld {
		return "old"
	}
	return "new"
}

// Highlight is the only kind a column emphasises. Before shows removals,
// after shows additions.
func (s Side) Highlight() LineKind {
	if s == SideOld {
		return LineRemoved
	}
	return LineAdded
}

// Row is one rendered line of a column
type Row struct {
	Key         string
	Number      int
	Text        string
	Kind        LineKind
	Highlighted bool
}

// Column is one side of the split view
type Column struct {
	Side        Side
	Title       string
	Rows        []Row
	Placeholder bool
}

// Highlight returns the kind this column emphasises
func (c Column) Highlight() LineKind {
	return c.Side.Highlight()
}

// SplitView is the pair of columns for one file
type SplitView struct {
	Old Column
	New Column
}

// Render builds both columns from content. A nil content yields two
// placeholder columns.
func Render(content *domain.FileDiffContent) SplitView {
	if content == nil {
		return SplitView{
			Old: Column{Side: SideOld, Title: "Before", Placeholder: true},
			New: Column{Side: SideNew, Title: "After", Placeholder: true},
		}
	}
	return SplitView{
		Old: buildColumn(SideOld, "Before", content.OldContent),
		New: buildColumn(SideNew, "After", content.NewContent),
	}
}

func buildColumn(side Side, title, text string) Column {
	lines := SplitLines(text)
	col := Column{
		Side:  side,
		Title: title,
		Rows:  make([]Row, len(lines)),
	}
	prefix := side.keyPrefix()
	highlight := side.Highlight()
	for i, line := range lines {
		kind := Classify(line)
		col.Rows[i] = Row{
			Key:         prefix + "-" + strconv.Itoa(i),
			Number:      i + 1,
			Text:        line,
			Kind:        kind,
			Highlighted: kind == highlight,
		}
	}
	return col
}

// SplitLines splits on "\n" only; JoinLines(SplitLines(s)) == s
func SplitLines(s string) []string {
	return strings.Split(s, "\n")
}

// JoinLines is the inverse of SplitLines
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// Texts returns the raw text of every row in order
func (c Column) Texts() []string {
	out := make([]string, len(c.Rows))
	for i, r := range c.Rows {
		out[i] = r.Text
	}
	return out
}
