package ui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	logger "github.com/sirupsen/logrus"

	"commitview/internal/config"
	"commitview/internal/diffview"
	"commitview/internal/domain"
	"commitview/internal/selection"
	"commitview/internal/sequence"
	"commitview/internal/ui/views"
)

const (
	maxFileRows = 8
	// blank line and file header above the frame, the failure line below it
	// and one row for the file list scroll markers
	diffChrome = 4
)

type commitPage struct {
	owner string
	repo  string
	sha   string

	seq     sequence.Sequencer
	loading bool
	loaded  bool
	err     error
	detail  domain.CommitDetail

	files    *selection.Controller
	frame    diffview.Frame
	renderer *views.CommitRenderer

	width      int
	bodyHeight int
}

func newCommitPage(ui config.UISettings, styles *views.Styles, owner, repo, sha string) *commitPage {
	return &commitPage{
		owner:    owner,
		repo:     repo,
		sha:      sha,
		files:    selection.NewController(),
		frame:    diffview.NewFrame(ui),
		renderer: views.NewCommitRenderer(styles),
	}
}

func (p *commitPage) load(ctx context.Context, f Fetcher) tea.Cmd {
	p.loading = true
	p.loaded = false
	p.err = nil
	p.files.Reset()
	return fetchCommitDetail(ctx, f, p.seq.Next(), p.owner, p.repo, p.sha)
}

// apply installs the commit detail and requests the first file's diff
func (p *commitPage) apply(ctx context.Context, f Fetcher, msg commitDetailLoadedMsg) tea.Cmd {
	if !p.seq.Current(msg.ticket) {
		logger.Debugf("[ui] discard stale detail for %s", p.sha)
		return nil
	}
	p.loading = false
	p.loaded = true
	if msg.err != nil {
		logger.Errorf("[ui] failed to load commit %s/%s@%s: %v", p.owner, p.repo, p.sha, msg.err)
		p.err = msg.err
		p.detail = domain.CommitDetail{}
		return nil
	}
	p.detail = msg.detail
	req, ok := p.files.Load(msg.detail.ChangedFiles)
	p.layout()
	if !ok {
		return nil
	}
	return fetchFileDiff(ctx, f, p.owner, p.repo, p.sha, req)
}

func (p *commitPage) resolve(res selection.Result) {
	if !p.files.Resolve(res) {
		return
	}
	switch st := p.files.State().(type) {
	case selection.DiffReady:
		p.frame.SetView(diffview.Render(&st.Content))
	case selection.DiffLoadFailed:
		logger.Warnf("[ui] failed to load diff of %s: %v", res.Request.FileName, st.Err)
		p.frame.SetView(diffview.Render(nil))
	}
}

func (p *commitPage) step(ctx context.Context, f Fetcher, delta int) tea.Cmd {
	var (
		req selection.Request
		ok  bool
	)
	if delta < 0 {
		req, ok = p.files.Prev()
	} else {
		req, ok = p.files.Next()
	}
	if !ok {
		return nil
	}
	return fetchFileDiff(ctx, f, p.owner, p.repo, p.sha, req)
}

// reload retries whatever failed: the commit itself or the selected diff
func (p *commitPage) reload(ctx context.Context, f Fetcher) tea.Cmd {
	if p.err != nil || !p.loaded {
		return p.load(ctx, f)
	}
	if _, failed := p.files.State().(selection.DiffLoadFailed); !failed {
		return nil
	}
	req, err := p.files.Select(p.files.Selected())
	if err != nil {
		return nil
	}
	return fetchFileDiff(ctx, f, p.owner, p.repo, p.sha, req)
}

// leave drops every outstanding request of the page
func (p *commitPage) leave() {
	p.seq.Invalidate()
	p.loading = false
	p.files.Reset()
}

func (p *commitPage) scroll(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.frame, cmd = p.frame.Update(msg)
	return cmd
}

func (p *commitPage) pagerContent() (string, bool) {
	st, ok := p.files.State().(selection.DiffReady)
	if !ok {
		return "", false
	}
	file, _ := p.files.SelectedFile()
	header := diffview.DisplayText(file.FileName) + "\n\n"
	view := diffview.Render(&st.Content)
	return header + pagerColumns(view), true
}

// pagerColumns lays the columns out one after the other.
func pagerColumns(view diffview.SplitView) string {
	var b strings.Builder
	for _, col := range []diffview.Column{view.Old, view.New} {
		b.WriteString("== " + col.Title + " ==\n")
		b.WriteString(diffview.JoinLines(diffview.DisplayLines(col.Texts())))
		b.WriteString("\n\n")
	}
	return b.String()
}

// resize sizes the diff frame. termHeight drives the configured share of
// the terminal; bodyHeight is what the page may use below the title.
func (p *commitPage) resize(width, termHeight, bodyHeight int) {
	p.width = width
	p.bodyHeight = bodyHeight
	p.frame.SetSize(width, termHeight)
	p.layout()
}

// layout limits the frame to the rows left under the commit header, the
// file list, the diff header and the diff failure line.
func (p *commitPage) layout() {
	if p.bodyHeight <= 0 {
		return
	}
	used := lipgloss.Height(p.renderer.RenderHeader(p.detail.Commit, p.width)) +
		lipgloss.Height(p.renderer.RenderFileList(p.detail.ChangedFiles, p.files.Selected(), p.width, maxFileRows)) +
		diffChrome
	p.frame.LimitHeight(max(1, p.bodyHeight-used))
}

func (p *commitPage) view(s *views.Styles, spinner string, width int) string {
	switch {
	case !p.loaded:
		return views.Loading(s, spinner, "Loading commit…")
	case p.err != nil:
		return views.ErrorBanner(s, "Failed to load commit", p.err, "commits", width)
	}

	sections := []string{
		p.renderer.RenderHeader(p.detail.Commit, width),
		p.renderer.RenderFileList(p.detail.ChangedFiles, p.files.Selected(), width, maxFileRows),
	}

	file, ok := p.files.SelectedFile()
	if !ok {
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}
	sections = append(sections, "", p.renderer.RenderDiffHeader(file, width))

	switch st := p.files.State().(type) {
	case selection.LoadingDiff:
		sections = append(sections, views.Loading(s, spinner, "Loading diff…"))
	case selection.DiffReady:
		sections = append(sections, p.frame.View())
	case selection.DiffLoadFailed:
		sections = append(sections,
			p.frame.View(),
			s.StatusError.Render("Failed to load diff: ")+st.Err.Error()+s.Help.Render("  r: retry"),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
