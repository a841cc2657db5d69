package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"commitview/internal/config"
	"commitview/internal/diffview"
	"commitview/internal/domain"
)

const (
	shaColumnWidth    = 9
	authorColumnWidth = 18
	dateColumnWidth   = 19
	minSubjectWidth   = 10
	// each cell is padded by one space on both sides
	cellPadding = 2
)

func newTable(theme config.Theme, columns []table.Column) table.Model {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.BorderFg).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(theme.TitleFg).
		Background(theme.TitleBg).
		Bold(false)

	return table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithStyles(styles),
	)
}

func repoColumns(width int) []table.Column {
	owner := max(12, width/3-cellPadding)
	name := max(12, width-owner-2*cellPadding)
	return []table.Column{
		{Title: "Owner", Width: owner},
		{Title: "Repository", Width: name},
	}
}

func repoRows(repos []domain.Repository) []table.Row {
	rows := make([]table.Row, len(repos))
	for i, r := range repos {
		rows[i] = table.Row{diffview.DisplayText(r.Owner), diffview.DisplayText(r.Name)}
	}
	return rows
}

func commitColumns(width int) []table.Column {
	fixed := shaColumnWidth + authorColumnWidth + dateColumnWidth + 4*cellPadding
	subject := max(minSubjectWidth, width-fixed)
	return []table.Column{
		{Title: "SHA", Width: shaColumnWidth},
		{Title: "Author", Width: authorColumnWidth},
		{Title: "Date", Width: dateColumnWidth},
		{Title: "Message", Width: subject},
	}
}

func commitRows(commits []domain.Commit) []table.Row {
	rows := make([]table.Row, len(commits))
	for i, c := range commits {
		rows[i] = table.Row{
			c.ShortSHA(),
			diffview.DisplayText(c.AuthorName),
			c.CommitDate.Display(),
			diffview.DisplayText(c.Subject()),
		}
	}
	return rows
}
