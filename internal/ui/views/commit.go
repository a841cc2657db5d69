package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"commitview/internal/diffview"
	"commitview/internal/domain"
)

// NoFilesNotice is shown instead of the file list and diff panel
const NoFilesNotice = "No files changed in this commit."

// CommitRenderer handles rendering of the commit detail page
type CommitRenderer struct {
	styles *Styles
}

// NewCommitRenderer creates a new commit renderer
func NewCommitRenderer(styles *Styles) *CommitRenderer {
	return &CommitRenderer{styles: styles}
}

// RenderHeader renders the commit metadata block
func (r *CommitRenderer) RenderHeader(c domain.Commit, width int) string {
	var b strings.Builder

	b.WriteString(r.styles.Highlight.Render(truncate(c.Subject(), width)))
	b.WriteString("\n")

	author := c.AuthorName
	if c.AuthorEmail != "" {
		author = fmt.Sprintf("%s <%s>", c.AuthorName, c.AuthorEmail)
	}
	meta := fmt.Sprintf("%s  %s  %s", c.SHA, author, c.CommitDate.Display())
	b.WriteString(r.styles.Subtitle.Render(truncate(meta, width)))

	if _, body, ok := strings.Cut(c.Message, "\n"); ok {
		if body = strings.TrimSpace(body); body != "" {
			b.WriteString("\n\n")
			lines := diffview.DisplayLines(strings.Split(body, "\n"))
			b.WriteString(r.styles.Dim.Render(strings.Join(lines, "\n")))
		}
	}
	return b.String()
}

// RenderFileList renders "Changed Files (N)" and one line per file with a
// status dot. An empty list renders the notice instead of entries.
func (r *CommitRenderer) RenderFileList(files []domain.ChangedFile, selected, width, maxRows int) string {
	var b strings.Builder
	b.WriteString(r.styles.Section.Render(fmt.Sprintf("Changed Files (%d)", len(files))))
	b.WriteString("\n")

	if len(files) == 0 {
		b.WriteString(Notice(r.styles, NoFilesNotice))
		return b.String()
	}

	start, end := window(len(files), selected, maxRows)
	if start > 0 {
		b.WriteString(r.styles.Dim.Render(fmt.Sprintf("  ↑ %d more", start)))
		b.WriteString("\n")
	}
	for i := start; i < end; i++ {
		b.WriteString(r.RenderFile(files[i], i == selected, width))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	if end < len(files) {
		b.WriteString("\n")
		b.WriteString(r.styles.Dim.Render(fmt.Sprintf("  ↓ %d more", len(files)-end)))
	}
	return b.String()
}

// RenderFile renders one changed file entry
func (r *CommitRenderer) RenderFile(f domain.ChangedFile, isSelected bool, width int) string {
	cursor := "  "
	if isSelected {
		cursor = "> "
	}
	dot := r.styles.StatusStyle(f.Status).Render("●")
	counts := r.renderCounts(f)

	nameWidth := width - ansi.StringWidth(cursor) - 2 - ansi.StringWidth(counts) - 1
	name := truncate(f.FileName, nameWidth)
	if isSelected {
		name = r.styles.SelectionBg.Render(name)
	}
	return cursor + dot + " " + name + " " + counts
}

// RenderDiffHeader renders the file name, its status badge and +A -D
func (r *CommitRenderer) RenderDiffHeader(f domain.ChangedFile, width int) string {
	status := string(f.Status)
	if status == "" {
		status = "unknown"
	}
	badge := r.styles.Badge.Inherit(r.styles.StatusStyle(f.Status)).Render(status)
	counts := r.renderCounts(f)
	nameWidth := width - ansi.StringWidth(badge) - ansi.StringWidth(counts) - 2
	return r.styles.PanelHeader.Render(truncate(f.FileName, nameWidth)) + " " + badge + " " + counts
}

func (r *CommitRenderer) renderCounts(f domain.ChangedFile) string {
	return r.styles.Added.Render(fmt.Sprintf("+%d", f.Additions)) + " " +
		r.styles.Removed.Render(fmt.Sprintf("-%d", f.Deletions))
}

// CommitsFooter renders the page range line under the commits table
func CommitsFooter(page domain.CommitPage) string {
	if len(page.Commits) == 0 {
		return "No commits found"
	}
	return fmt.Sprintf("Showing %d to %d commits", page.First(), page.Last())
}

// window returns the visible [start, end) slice of n rows keeping selected
// in view.
func window(n, selected, maxRows int) (int, int) {
	if maxRows <= 0 || n <= maxRows {
		return 0, n
	}
	start := selected - maxRows/2
	if start < 0 {
		start = 0
	}
	end := start + maxRows
	if end > n {
		end = n
		start = end - maxRows
	}
	return start, end
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(diffview.DisplayText(s), width, "…")
}
