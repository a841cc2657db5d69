package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	logger "github.com/sirupsen/logrus"

	"commitview/internal/config"
	"commitview/internal/domain"
	"commitview/internal/sequence"
	"commitview/internal/ui/views"
)

type commitsPage struct {
	owner   string
	repo    string
	page    int
	perPage int

	seq     sequence.Sequencer
	loading bool
	loaded  bool
	err     error
	data    domain.CommitPage
	table   table.Model
}

func newCommitsPage(theme config.Theme, owner, repo string, page, perPage int) *commitsPage {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 10
	}
	return &commitsPage{
		owner:   owner,
		repo:    repo,
		page:    page,
		perPage: perPage,
		table:   newTable(theme, commitColumns(80)),
	}
}

// load requests page; the page number moves immediately so repeated
// presses step from the latest request, not the last answer.
func (p *commitsPage) load(ctx context.Context, f Fetcher, page int) tea.Cmd {
	p.page = page
	p.loading = true
	p.loaded = false
	p.err = nil
	return fetchCommits(ctx, f, p.seq.Next(), p.owner, p.repo, page, p.perPage)
}

func (p *commitsPage) apply(msg commitsLoadedMsg) {
	if !p.seq.Current(msg.ticket) {
		logger.Debugf("[ui] discard stale commit page for %s/%s", p.owner, p.repo)
		return
	}
	p.loading = false
	p.loaded = true
	if msg.err != nil {
		logger.Errorf("[ui] failed to load commits for %s/%s page %d: %v", p.owner, p.repo, p.page, msg.err)
		p.err = msg.err
		p.data = domain.CommitPage{}
		p.table.SetRows(nil)
		return
	}
	p.data = msg.page
	p.table.SetRows(commitRows(msg.page.Commits))
	p.table.SetCursor(0)
}

// leave drops any outstanding page request
func (p *commitsPage) leave() {
	if p.loading {
		p.seq.Invalidate()
		p.loading = false
	}
}

func (p *commitsPage) selected() (domain.Commit, bool) {
	i := p.table.Cursor()
	if !p.loaded || p.err != nil || i < 0 || i >= len(p.data.Commits) {
		return domain.Commit{}, false
	}
	return p.data.Commits[i], true
}

func (p *commitsPage) resize(width, height int) {
	p.table.SetColumns(commitColumns(width))
	p.table.SetWidth(width)
	p.table.SetHeight(max(3, height))
}

func (p *commitsPage) view(s *views.Styles, spinner string, width int) string {
	switch {
	case !p.loaded:
		return views.Loading(s, spinner, "Loading commits…")
	case p.err != nil:
		return views.ErrorBanner(s, "Failed to load commits", p.err, "repositories", width)
	}

	var b strings.Builder
	if len(p.data.Commits) > 0 {
		b.WriteString(p.table.View())
		b.WriteString("\n")
	}
	b.WriteString(s.Status.Render(views.CommitsFooter(p.data)))

	var nav []string
	if p.data.HasPrev() {
		nav = append(nav, "p: previous page")
	}
	if p.data.HasNext() {
		nav = append(nav, "n: next page")
	}
	if len(nav) > 0 {
		b.WriteString("  ")
		b.WriteString(s.Help.Render(strings.Join(nav, " • ")))
	}
	return b.String()
}
