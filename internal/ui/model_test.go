package ui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commitview/internal/api"
	"commitview/internal/config"
	"commitview/internal/domain"
	"commitview/internal/eventbus"
	"commitview/internal/selection"
	"commitview/internal/ui/views"
)

type fakeFetcher struct {
	repos     []domain.Repository
	reposErr  error
	commits   func(page, perPage int) (domain.CommitPage, error)
	detail    domain.CommitDetail
	detailErr error
	diffs     map[string]domain.FileDiffContent
	diffErr   map[string]error
	diffHits  map[string]int
}

func (f *fakeFetcher) CurrentUser(context.Context) (domain.User, error) {
	return domain.User{Username: "ada", Authenticated: true}, nil
}

func (f *fakeFetcher) ListRepositories(context.Context) ([]domain.Repository, error) {
	return f.repos, f.reposErr
}

func (f *fakeFetcher) ListCommits(_ context.Context, owner, repo string, page, perPage int) (domain.CommitPage, error) {
	if f.commits == nil {
		return domain.CommitPage{Owner: owner, Repo: repo, Page: page, PerPage: perPage, Commits: []domain.Commit{}}, nil
	}
	return f.commits(page, perPage)
}

func (f *fakeFetcher) GetCommitDetail(context.Context, string, string, string) (domain.CommitDetail, error) {
	return f.detail, f.detailErr
}

func (f *fakeFetcher) GetFileDiff(_ context.Context, _, _, _, filePath string) (domain.FileDiffContent, error) {
	if f.diffHits == nil {
		f.diffHits = map[string]int{}
	}
	f.diffHits[filePath]++
	if err := f.diffErr[filePath]; err != nil {
		return domain.FileDiffContent{}, err
	}
	return f.diffs[filePath], nil
}

func pageOf(page, perPage, n int) domain.CommitPage {
	commits := make([]domain.Commit, n)
	for i := range commits {
		commits[i] = domain.Commit{
			SHA:        fmt.Sprintf("p%dc%d000000", page, i),
			AuthorName: "Ada",
			Message:    fmt.Sprintf("page %d commit %d", page, i),
		}
	}
	return domain.CommitPage{Page: page, PerPage: perPage, Commits: commits}
}

func newTestModel(t *testing.T, f Fetcher, start Start) *Model {
	t.Helper()
	m := NewModel(context.Background(), f, config.DefaultConfig(), start)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func send(m *Model, msg tea.Msg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func plainView(m *Model) string {
	return ansi.Strip(m.View())
}

func TestReposPage(t *testing.T) {
	t.Run("should list repositories and open one", func(t *testing.T) {
		// given
		f := &fakeFetcher{repos: []domain.Repository{{Owner: "acme", Name: "app"}, {Owner: "acme", Name: "lib"}}}
		m := newTestModel(t, f, Start{})

		// when
		send(m, m.enter()())
		view := plainView(m)
		send(m, tea.KeyMsg{Type: tea.KeyDown})
		cmd := send(m, tea.KeyMsg{Type: tea.KeyEnter})

		// then
		assert.Contains(t, view, "app")
		assert.Contains(t, view, "lib")
		require.NotNil(t, cmd)
		assert.Equal(t, routeCommits, m.route)
		assert.Equal(t, "lib", m.commits.repo)
		msg, ok := cmd().(commitsLoadedMsg)
		require.True(t, ok)
		assert.Equal(t, 1, msg.page.Page)
	})

	t.Run("should show a banner with retry and quit when the list fails", func(t *testing.T) {
		// given
		m := newTestModel(t, &fakeFetcher{reposErr: errors.New("connection refused")}, Start{})

		// when
		send(m, m.enter()())
		view := plainView(m)

		// then
		assert.Contains(t, view, "Failed to load repositories")
		assert.Contains(t, view, "connection refused")
		assert.Contains(t, view, "r: Retry")
		assert.Contains(t, view, "q: Quit")
	})

	t.Run("should show a notice when there are no repositories", func(t *testing.T) {
		// given
		m := newTestModel(t, &fakeFetcher{repos: []domain.Repository{}}, Start{})

		// when
		send(m, m.enter()())

		// then
		assert.Contains(t, plainView(m), NoReposNotice)
	})
}

func TestCommitsPage(t *testing.T) {
	t.Run("should show a banner and no partial content when the server fails", func(t *testing.T) {
		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"boom"}`))
		}))
		defer server.Close()
		client, err := api.NewClient(server.URL)
		require.NoError(t, err)
		m := newTestModel(t, client, Start{Owner: "acme", Repo: "app"})

		// when
		send(m, m.enter()())
		view := plainView(m)

		// then
		assert.Contains(t, view, "Failed to load commits")
		assert.Contains(t, view, "esc: Back to repositories")
		assert.NotContains(t, view, "Showing")
		assert.NotContains(t, view, "No commits found")
		assert.NotContains(t, view, "SHA")
	})

	t.Run("should report the page range and offer the next page when full", func(t *testing.T) {
		// given
		f := &fakeFetcher{commits: func(page, perPage int) (domain.CommitPage, error) {
			return pageOf(page, perPage, perPage), nil
		}}
		m := newTestModel(t, f, Start{Owner: "acme", Repo: "app", PerPage: 3})

		// when
		send(m, m.enter()())
		first := plainView(m)
		cmd := send(m, runes("n"))
		require.NotNil(t, cmd)
		send(m, cmd())

		// then
		assert.Contains(t, first, "Showing 1 to 3 commits")
		assert.Contains(t, first, "n: next page")
		assert.NotContains(t, first, "p: previous page")
		assert.Contains(t, plainView(m), "Showing 4 to 6 commits")
	})

	t.Run("should not offer a next page after a short page", func(t *testing.T) {
		// given
		f := &fakeFetcher{commits: func(page, perPage int) (domain.CommitPage, error) {
			return pageOf(page, perPage, 2), nil
		}}
		m := newTestModel(t, f, Start{Owner: "acme", Repo: "app", PerPage: 3})
		send(m, m.enter()())

		// when
		cmd := send(m, runes("n"))

		// then
		assert.Nil(t, cmd)
		assert.NotContains(t, plainView(m), "n: next page")
	})

	t.Run("should end on an empty page when the history fills the last page exactly", func(t *testing.T) {
		// given
		f := &fakeFetcher{commits: func(page, perPage int) (domain.CommitPage, error) {
			if page > 1 {
				return pageOf(page, perPage, 0), nil
			}
			return pageOf(page, perPage, perPage), nil
		}}
		m := newTestModel(t, f, Start{Owner: "acme", Repo: "app", PerPage: 3})
		send(m, m.enter()())

		// when
		cmd := send(m, runes("n"))
		require.NotNil(t, cmd)
		send(m, cmd())
		view := plainView(m)

		// then
		assert.Contains(t, view, "No commits found")
		assert.Contains(t, view, "p: previous page")
		assert.NotContains(t, view, "n: next page")
		assert.Nil(t, send(m, runes("n")))
	})

	t.Run("should show an empty notice without a table", func(t *testing.T) {
		// given
		m := newTestModel(t, &fakeFetcher{}, Start{Owner: "acme", Repo: "app"})

		// when
		send(m, m.enter()())

		// then
		assert.Contains(t, plainView(m), "No commits found")
	})

	t.Run("should discard a page that arrives after a newer request", func(t *testing.T) {
		// given
		f := &fakeFetcher{commits: func(page, perPage int) (domain.CommitPage, error) {
			return pageOf(page, perPage, perPage), nil
		}}
		m := newTestModel(t, f, Start{Owner: "acme", Repo: "app", Page: 2, PerPage: 3})
		send(m, m.enter()())
		toPage3 := send(m, runes("n"))
		toPage2 := send(m, runes("p"))
		require.NotNil(t, toPage3)
		require.NotNil(t, toPage2)

		// when
		send(m, toPage2())
		send(m, toPage3())

		// then
		assert.Equal(t, 2, m.commits.data.Page)
		assert.Contains(t, plainView(m), "page 2 commit 0")
		assert.NotContains(t, plainView(m), "page 3 commit 0")
	})
}

func TestCommitPage(t *testing.T) {
	detail := domain.CommitDetail{
		Commit: domain.Commit{SHA: "abc1234def", AuthorName: "Ada", Message: "Rework parser"},
		ChangedFiles: []domain.ChangedFile{
			{FileName: "a.go", Status: domain.StatusModified, Additions: 1, Deletions: 1},
			{FileName: "b.go", Status: domain.StatusAdded, Additions: 3},
		},
	}

	t.Run("should show the notice and no diff panel for a commit without files", func(t *testing.T) {
		// given
		f := &fakeFetcher{detail: domain.CommitDetail{Commit: detail.Commit, ChangedFiles: []domain.ChangedFile{}}}
		m := newTestModel(t, f, Start{Owner: "acme", Repo: "app", SHA: "abc1234def"})

		// when
		cmd := send(m, m.enter()())
		view := plainView(m)

		// then
		assert.Nil(t, cmd, "no diff is requested")
		assert.Contains(t, view, "Changed Files (0)")
		assert.Contains(t, view, views.NoFilesNotice)
		assert.NotContains(t, view, "Before")
		assert.NotContains(t, view, "After")
		assert.Empty(t, f.diffHits)
	})

	t.Run("should show a banner and no partial content when the commit fails", func(t *testing.T) {
		// given
		f := &fakeFetcher{detail: detail, detailErr: errors.New("HTTP 500")}
		m := newTestModel(t, f, Start{Owner: "acme", Repo: "app", SHA: "abc1234def"})

		// when
		cmd := send(m, m.enter()())
		view := plainView(m)

		// then
		assert.Nil(t, cmd, "no diff is requested")
		assert.Empty(t, f.diffHits)
		assert.Contains(t, view, "Failed to load commit")
		assert.Contains(t, view, "HTTP 500")
		assert.Contains(t, view, "esc: Back to commits")
		assert.NotContains(t, view, "Changed Files")
		assert.NotContains(t, view, "Before")
		assert.NotContains(t, view, "After")
		assert.NotContains(t, view, "Rework parser")
	})

	t.Run("should load the first file exactly once", func(t *testing.T) {
		// given
		f := &fakeFetcher{detail: detail, diffs: map[string]domain.FileDiffContent{
			"a.go": {OldContent: "x\n-y\nz", NewContent: "x\n+w\nz"},
		}}
		m := newTestModel(t, f, Start{Owner: "acme", Repo: "app", SHA: "abc1234def"})

		// when
		diffCmd := send(m, m.enter()())
		require.NotNil(t, diffCmd)
		loading := plainView(m)
		send(m, diffCmd())
		view := plainView(m)

		// then
		assert.Contains(t, loading, "Loading diff")
		assert.Equal(t, map[string]int{"a.go": 1}, f.diffHits)
		assert.Contains(t, view, "Changed Files (2)")
		assert.Contains(t, view, "Before")
		assert.Contains(t, view, "After")
		assert.Contains(t, view, "-y")
		assert.Contains(t, view, "+w")
		assert.Contains(t, view, "modified")
	})

	t.Run("should display the latest selection when an earlier diff arrives last", func(t *testing.T) {
		// given
		f := &fakeFetcher{detail: detail, diffs: map[string]domain.FileDiffContent{
			"a.go": {NewContent: "+from-a"},
			"b.go": {NewContent: "+from-b"},
		}}
		m := newTestModel(t, f, Start{Owner: "acme", Repo: "app", SHA: "abc1234def"})
		loadA := send(m, m.enter()())
		loadB := send(m, tea.KeyMsg{Type: tea.KeyDown})
		require.NotNil(t, loadA)
		require.NotNil(t, loadB)

		// when
		send(m, loadB())
		send(m, loadA())

		// then
		view := plainView(m)
		assert.Contains(t, view, "from-b")
		assert.NotContains(t, view, "from-a")
		assert.Equal(t, 1, m.commit.files.Selected())
	})

	t.Run("should show the placeholder when the selected diff fails", func(t *testing.T) {
		// given
		f := &fakeFetcher{detail: detail, diffErr: map[string]error{"a.go": errors.New("gone")}}
		m := newTestModel(t, f, Start{Owner: "acme", Repo: "app", SHA: "abc1234def"})

		// when
		send(m, send(m, m.enter()())())
		view := plainView(m)

		// then
		assert.IsType(t, selection.DiffLoadFailed{}, m.commit.files.State())
		assert.Contains(t, view, "No content available")
		assert.Contains(t, view, "Failed to load diff")
	})

	t.Run("should retry a failed diff on reload", func(t *testing.T) {
		// given
		f := &fakeFetcher{detail: detail, diffErr: map[string]error{"a.go": errors.New("gone")}}
		m := newTestModel(t, f, Start{Owner: "acme", Repo: "app", SHA: "abc1234def"})
		send(m, send(m, m.enter()())())
		delete(f.diffErr, "a.go")

		// when
		cmd := send(m, runes("r"))
		require.NotNil(t, cmd)
		send(m, cmd())

		// then
		assert.IsType(t, selection.DiffReady{}, m.commit.files.State())
		assert.Equal(t, 2, f.diffHits["a.go"])
	})

	t.Run("should fit the page in the terminal with a long file list and diff", func(t *testing.T) {
		// given
		files := make([]domain.ChangedFile, 12)
		for i := range files {
			files[i] = domain.ChangedFile{FileName: fmt.Sprintf("f%02d.go", i), Status: domain.StatusModified}
		}
		lines := make([]string, 300)
		for i := range lines {
			lines[i] = fmt.Sprintf("line %d", i)
		}
		body := strings.Join(lines, "\n")
		f := &fakeFetcher{
			detail: domain.CommitDetail{Commit: detail.Commit, ChangedFiles: files},
			diffs:  map[string]domain.FileDiffContent{"f00.go": {OldContent: body, NewContent: body}},
		}
		m := newTestModel(t, f, Start{Owner: "acme", Repo: "app", SHA: "abc1234def"})

		// when
		send(m, send(m, m.enter()())())
		view := m.View()

		// then
		assert.IsType(t, selection.DiffReady{}, m.commit.files.State())
		assert.Contains(t, ansi.Strip(view), "Before")
		assert.LessOrEqual(t, lipgloss.Height(view), 40)
	})

	t.Run("should hand the pager text without control sequences", func(t *testing.T) {
		// given
		f := &fakeFetcher{detail: detail, diffs: map[string]domain.FileDiffContent{
			"a.go": {OldContent: "x\r\n-y\x1b[2J\r\n", NewContent: "x\r\n+w\r\n"},
		}}
		m := newTestModel(t, f, Start{Owner: "acme", Repo: "app", SHA: "abc1234def"})
		send(m, send(m, m.enter()())())

		// when
		content, ok := m.commit.pagerContent()

		// then
		require.True(t, ok)
		assert.NotContains(t, content, "\r")
		assert.NotContains(t, content, "\x1b")
		assert.Contains(t, content, "-y^[[2J")
		assert.Contains(t, content, "== Before ==")
		assert.Contains(t, content, "== After ==")
	})

	t.Run("should drop answers for a commit that was left", func(t *testing.T) {
		// given
		f := &fakeFetcher{detail: detail}
		m := newTestModel(t, f, Start{Owner: "acme", Repo: "app", SHA: "abc1234def"})
		loadDetail := m.enter()

		// when
		send(m, tea.KeyMsg{Type: tea.KeyEsc})
		cmd := send(m, loadDetail())

		// then
		assert.Nil(t, cmd)
		assert.Equal(t, routeCommits, m.route)
		assert.Empty(t, f.diffHits)
	})
}

func TestBackNavigation(t *testing.T) {
	// given
	f := &fakeFetcher{repos: []domain.Repository{{Owner: "acme", Name: "app"}}}
	m := newTestModel(t, f, Start{Owner: "acme", Repo: "app", SHA: "abc"})

	// when
	toCommits := send(m, tea.KeyMsg{Type: tea.KeyEsc})
	toRepos := send(m, tea.KeyMsg{Type: tea.KeyEsc})
	atRoot := send(m, tea.KeyMsg{Type: tea.KeyEsc})

	// then
	require.NotNil(t, toCommits)
	require.NotNil(t, toRepos)
	assert.Nil(t, atRoot)
	assert.Equal(t, routeRepos, m.route)
	_, ok := toRepos().(reposLoadedMsg)
	assert.True(t, ok)
}

func TestInFlightIndicator(t *testing.T) {
	// given
	m := newTestModel(t, &fakeFetcher{}, Start{})

	// when
	send(m, EventMsg{Event: eventbus.FetchStartedEvent{RequestID: "1"}})
	send(m, EventMsg{Event: eventbus.FetchStartedEvent{RequestID: "2"}})
	send(m, EventMsg{Event: eventbus.FetchCompletedEvent{RequestID: "1"}})
	send(m, EventMsg{Event: eventbus.FetchCompletedEvent{RequestID: "c", FromCache: true}})

	// then
	assert.Equal(t, 1, m.inFlight)

	// when
	send(m, EventMsg{Event: eventbus.FetchFailedEvent{RequestID: "2"}})
	send(m, EventMsg{Event: eventbus.FetchFailedEvent{RequestID: "x"}})

	// then
	assert.Equal(t, 0, m.inFlight)
}

func TestTitleShowsSessionUser(t *testing.T) {
	// given
	m := newTestModel(t, &fakeFetcher{repos: []domain.Repository{}}, Start{})

	// when
	send(m, fetchUser(context.Background(), m.client)())

	// then
	assert.Contains(t, plainView(m), "signed in as ada")
}
