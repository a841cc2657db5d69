package ui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	logger "github.com/sirupsen/logrus"

	"commitview/internal/config"
	"commitview/internal/domain"
	"commitview/internal/sequence"
	"commitview/internal/ui/views"
)

// NoReposNotice is shown when the API lists no repositories
const NoReposNotice = "No repositories found."

type reposPage struct {
	seq     sequence.Sequencer
	loading bool
	loaded  bool
	err     error
	repos   []domain.Repository
	table   table.Model
}

func newReposPage(theme config.Theme) *reposPage {
	return &reposPage{table: newTable(theme, repoColumns(80))}
}

func (p *reposPage) load(ctx context.Context, f Fetcher) tea.Cmd {
	p.loading = true
	p.loaded = p.loaded && p.err == nil
	p.err = nil
	return fetchRepos(ctx, f, p.seq.Next())
}

func (p *reposPage) apply(msg reposLoadedMsg) {
	if !p.seq.Current(msg.ticket) {
		logger.Debugf("[ui] discard stale repository list")
		return
	}
	p.loading = false
	p.loaded = true
	if msg.err != nil {
		logger.Errorf("[ui] failed to load repositories: %v", msg.err)
		p.err = msg.err
		p.repos = nil
		p.table.SetRows(nil)
		return
	}
	p.err = nil
	p.repos = msg.repos
	p.table.SetRows(repoRows(msg.repos))
	p.table.SetCursor(0)
}

func (p *reposPage) selected() (domain.Repository, bool) {
	i := p.table.Cursor()
	if p.err != nil || i < 0 || i >= len(p.repos) {
		return domain.Repository{}, false
	}
	return p.repos[i], true
}

func (p *reposPage) resize(width, height int) {
	p.table.SetColumns(repoColumns(width))
	p.table.SetWidth(width)
	p.table.SetHeight(max(3, height))
}

func (p *reposPage) view(s *views.Styles, spinner string, width int) string {
	switch {
	case !p.loaded:
		return views.Loading(s, spinner, "Loading repositories…")
	case p.err != nil:
		return views.ErrorBanner(s, "Failed to load repositories", p.err, "", width)
	case len(p.repos) == 0:
		return views.Notice(s, NoReposNotice)
	}
	var b strings.Builder
	b.WriteString(p.table.View())
	b.WriteString("\n")
	b.WriteString(s.Status.Render(pluralize(len(p.repos), "repository", "repositories")))
	return b.String()
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}
