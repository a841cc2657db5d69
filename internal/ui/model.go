package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	logger "github.com/sirupsen/logrus"

	"commitview/internal/config"
	"commitview/internal/diffview"
	"commitview/internal/domain"
	"commitview/internal/eventbus"
	"commitview/internal/ui/views"
)

type route int

const (
	routeRepos route = iota
	routeCommits
	routeCommit
)

// Start selects the page the UI opens on. An empty Owner opens the
// repository list; a SHA opens that commit directly.
type Start struct {
	Owner   string
	Repo    string
	SHA     string
	Page    int
	PerPage int
}

// Model represents the UI state
type Model struct {
	ctx    context.Context
	client Fetcher
	config *config.Config
	styles *views.Styles
	theme  config.Theme

	width    int
	height   int
	keys     keyMap
	diffKeys viewport.KeyMap
	help     help.Model
	spinner  spinner.Model

	route   route
	repos   *reposPage
	commits *commitsPage
	commit  *commitPage

	user     *domain.User
	inFlight int
	status   string

	inPagerMode bool // tracks if we're currently in pager mode
	pager       *PagerOps

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(ctx context.Context, client Fetcher, cfg *config.Config, start Start) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	theme := cfg.UI.ResolveTheme()
	styles := views.NewStyles(theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.StatusLoading

	m := &Model{
		ctx:      ctx,
		client:   client,
		config:   cfg,
		styles:   styles,
		theme:    theme,
		keys:     newKeyMap(),
		diffKeys: diffview.NewFrame(cfg.UI).KeyMap(),
		help:     help.New(),
		spinner:  sp,
		repos:    newReposPage(theme),
	}

	perPage := start.PerPage
	if perPage <= 0 {
		perPage = cfg.UI.PerPage
	}
	switch {
	case start.Owner != "" && start.SHA != "":
		m.commits = newCommitsPage(theme, start.Owner, start.Repo, start.Page, perPage)
		m.commit = newCommitPage(cfg.UI, styles, start.Owner, start.Repo, start.SHA)
		m.route = routeCommit
	case start.Owner != "":
		m.commits = newCommitsPage(theme, start.Owner, start.Repo, start.Page, perPage)
		m.route = routeCommits
	default:
		m.route = routeRepos
	}
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager = NewPagerOps(p)
}

// Init starts the spinner, the session lookup and the first page load
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, fetchUser(m.ctx, m.client), m.enter())
}

// enter loads the current page if it has not been loaded yet
func (m *Model) enter() tea.Cmd {
	switch m.route {
	case routeCommits:
		if !m.commits.loaded && !m.commits.loading {
			return m.commits.load(m.ctx, m.client, m.commits.page)
		}
	case routeCommit:
		if !m.commit.loaded && !m.commit.loading {
			return m.commit.load(m.ctx, m.client)
		}
	default:
		if !m.repos.loaded && !m.repos.loading {
			return m.repos.load(m.ctx, m.client)
		}
	}
	return nil
}

// Update handles incoming messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.route == routeCommit {
			return m, m.commit.scroll(msg)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case EventMsg:
		m.handleEvent(msg.Event)
		return m, nil

	case userLoadedMsg:
		if msg.err != nil {
			logger.Infof("[ui] session user unavailable: %v", msg.err)
			return m, nil
		}
		m.user = &msg.user
		return m, nil

	case reposLoadedMsg:
		m.repos.apply(msg)
		return m, nil

	case commitsLoadedMsg:
		if m.commits != nil {
			m.commits.apply(msg)
		}
		return m, nil

	case commitDetailLoadedMsg:
		if m.commit != nil {
			return m, m.commit.apply(m.ctx, m.client, msg)
		}
		return m, nil

	case fileDiffLoadedMsg:
		if m.commit != nil {
			m.commit.resolve(msg.result)
		}
		return m, nil

	case pagerMsg:
		if msg.err != nil {
			return m, m.setStatus(fmt.Sprintf("Pager failed: %v", msg.err))
		}
		// Pager succeeded, RestoreTerminal() should have restored the screen
		return m, nil

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, tea.ClearScreen
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil
	case key.Matches(msg, m.keys.Back):
		return m, m.back()
	}

	switch m.route {
	case routeCommits:
		return m, m.handleCommitsKey(msg)
	case routeCommit:
		return m, m.handleCommitKey(msg)
	default:
		return m, m.handleReposKey(msg)
	}
}

func (m *Model) handleReposKey(msg tea.KeyMsg) tea.Cmd {
	p := m.repos
	switch {
	case key.Matches(msg, m.keys.Reload):
		return p.load(m.ctx, m.client)
	case key.Matches(msg, m.keys.Enter):
		repo, ok := p.selected()
		if !ok {
			return nil
		}
		return m.openCommits(repo.Owner, repo.Name)
	}
	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return cmd
}

func (m *Model) handleCommitsKey(msg tea.KeyMsg) tea.Cmd {
	p := m.commits
	switch {
	case key.Matches(msg, m.keys.Reload):
		return p.load(m.ctx, m.client, p.page)
	case key.Matches(msg, m.keys.NextPage):
		if p.loaded && p.err == nil && p.data.HasNext() {
			return p.load(m.ctx, m.client, p.page+1)
		}
		return nil
	case key.Matches(msg, m.keys.PrevPage):
		if p.page > 1 {
			return p.load(m.ctx, m.client, p.page-1)
		}
		return nil
	case key.Matches(msg, m.keys.Enter):
		commit, ok := p.selected()
		if !ok {
			return nil
		}
		return m.openCommit(commit.SHA)
	}
	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return cmd
}

func (m *Model) handleCommitKey(msg tea.KeyMsg) tea.Cmd {
	p := m.commit
	switch {
	case key.Matches(msg, m.keys.Reload):
		return p.reload(m.ctx, m.client)
	case key.Matches(msg, m.keys.Up):
		return p.step(m.ctx, m.client, -1)
	case key.Matches(msg, m.keys.Down):
		return p.step(m.ctx, m.client, 1)
	case key.Matches(msg, m.keys.Pager):
		body, ok := p.pagerContent()
		if !ok {
			return nil
		}
		return m.showInPager(body)
	}
	return p.scroll(msg)
}

func (m *Model) openCommits(owner, repo string) tea.Cmd {
	if m.commits == nil || m.commits.owner != owner || m.commits.repo != repo {
		m.commits = newCommitsPage(m.theme, owner, repo, 1, m.config.UI.PerPage)
	}
	m.route = routeCommits
	m.resize()
	return m.enter()
}

func (m *Model) openCommit(sha string) tea.Cmd {
	m.commit = newCommitPage(m.config.UI, m.styles, m.commits.owner, m.commits.repo, sha)
	m.route = routeCommit
	m.resize()
	return m.enter()
}

// back leaves the current page. Outstanding requests of the page left
// behind are invalidated so their answers are dropped.
func (m *Model) back() tea.Cmd {
	switch m.route {
	case routeCommit:
		m.commit.leave()
		m.route = routeCommits
	case routeCommits:
		m.commits.leave()
		m.route = routeRepos
	default:
		return nil
	}
	m.resize()
	return m.enter()
}

func (m *Model) handleEvent(e eventbus.DomainEvent) {
	switch ev := e.(type) {
	case eventbus.FetchStartedEvent:
		m.inFlight++
	case eventbus.FetchCompletedEvent:
		if !ev.FromCache && m.inFlight > 0 {
			m.inFlight--
		}
	case eventbus.FetchFailedEvent:
		if m.inFlight > 0 {
			m.inFlight--
		}
	}
}

func (m *Model) setStatus(s string) tea.Cmd {
	m.status = s
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

// resize hands the space left after chrome to the current page
func (m *Model) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	contentWidth := m.width - 2
	bodyHeight := m.height - m.chromeHeight()

	m.repos.resize(contentWidth, bodyHeight)
	if m.commits != nil {
		m.commits.resize(contentWidth, bodyHeight)
	}
	if m.commit != nil {
		m.commit.resize(contentWidth, m.height, bodyHeight)
	}
}

func (m *Model) chromeHeight() int {
	// title, blank line, footer/status, help
	return 4 + lipgloss.Height(m.help.View(m.keys.forRoute(m.route, m.diffKeys)))
}

// View renders the current page
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	if m.width == 0 {
		return views.Loading(m.styles, m.spinner.View(), "Starting…")
	}

	var sections []string
	sections = append(sections, m.renderTitle())

	contentWidth := m.width - 2
	switch m.route {
	case routeCommits:
		sections = append(sections, m.commits.view(m.styles, m.spinner.View(), contentWidth))
	case routeCommit:
		sections = append(sections, m.commit.view(m.styles, m.spinner.View(), contentWidth))
	default:
		sections = append(sections, m.repos.view(m.styles, m.spinner.View(), contentWidth))
	}

	if m.status != "" {
		sections = append(sections, m.styles.StatusWarning.Render(m.status))
	}
	sections = append(sections, m.help.View(m.keys.forRoute(m.route, m.diffKeys)))

	return m.styles.Main.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) renderTitle() string {
	crumbs := []string{"commitview"}
	if m.route >= routeCommits && m.commits != nil {
		crumbs = append(crumbs, m.commits.owner+"/"+m.commits.repo)
	}
	if m.route == routeCommit && m.commit != nil {
		crumbs = append(crumbs, shortSHA(m.commit.sha))
	}
	left := m.styles.Title.Render(strings.Join(crumbs, " › "))

	var right []string
	if m.inFlight > 0 {
		right = append(right, m.spinner.View())
	}
	switch {
	case m.user == nil:
	case m.user.Authenticated && m.user.Username != "":
		right = append(right, m.styles.Subtitle.Render("signed in as "+m.user.Username))
	default:
		right = append(right, m.styles.Subtitle.Render("not signed in"))
	}
	rightText := strings.Join(right, " ")

	gap := m.width - 2 - lipgloss.Width(left) - lipgloss.Width(rightText)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + rightText + "\n"
}

func shortSHA(sha string) string {
	return domain.Commit{SHA: sha}.ShortSHA()
}
