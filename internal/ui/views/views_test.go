package views

import (
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"commitview/internal/config"
	"commitview/internal/domain"
)

func testStyles() *Styles {
	return NewStyles(config.DefaultTheme())
}

func TestCommitsFooter(t *testing.T) {
	tests := []struct {
		name string
		page domain.CommitPage
		want string
	}{
		{
			name: "empty page",
			page: domain.CommitPage{Page: 1, PerPage: 10, Commits: []domain.Commit{}},
			want: "No commits found",
		},
		{
			name: "first full page",
			page: domain.CommitPage{Page: 1, PerPage: 2, Commits: make([]domain.Commit, 2)},
			want: "Showing 1 to 2 commits",
		},
		{
			name: "short third page",
			page: domain.CommitPage{Page: 3, PerPage: 10, Commits: make([]domain.Commit, 4)},
			want: "Showing 21 to 24 commits",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CommitsFooter(tt.page))
		})
	}
}

func TestRenderFileList(t *testing.T) {
	r := NewCommitRenderer(testStyles())

	t.Run("should render the notice for no files", func(t *testing.T) {
		// when
		out := ansi.Strip(r.RenderFileList(nil, -1, 80, 8))

		// then
		assert.Contains(t, out, "Changed Files (0)")
		assert.Contains(t, out, NoFilesNotice)
	})

	t.Run("should mark the selected file and show counts", func(t *testing.T) {
		// given
		files := []domain.ChangedFile{
			{FileName: "a.go", Status: domain.StatusAdded, Additions: 3},
			{FileName: "b.go", Status: domain.StatusRemoved, Deletions: 7},
		}

		// when
		out := ansi.Strip(r.RenderFileList(files, 1, 80, 8))

		// then
		lines := strings.Split(out, "\n")
		assert.Contains(t, out, "Changed Files (2)")
		assert.True(t, strings.HasPrefix(lines[len(lines)-1], "> "))
		assert.Contains(t, lines[len(lines)-1], "b.go")
		assert.Contains(t, lines[len(lines)-1], "+0 -7")
	})

	t.Run("should keep the selection visible in a long list", func(t *testing.T) {
		// given
		files := make([]domain.ChangedFile, 30)
		for i := range files {
			files[i] = domain.ChangedFile{FileName: strings.Repeat("f", i+1), Status: domain.StatusModified}
		}

		// when
		out := ansi.Strip(r.RenderFileList(files, 25, 80, 5))

		// then
		assert.Contains(t, out, "> ● "+strings.Repeat("f", 26)+" ")
		assert.Contains(t, out, "more")
	})
}

func TestStatusStyle(t *testing.T) {
	s := testStyles()
	theme := config.DefaultTheme()

	assert.Equal(t, theme.AddedFg, s.StatusStyle(domain.StatusAdded).GetForeground())
	assert.Equal(t, theme.ModifiedFg, s.StatusStyle(domain.StatusModified).GetForeground())
	assert.Equal(t, theme.RemovedFg, s.StatusStyle(domain.StatusRemoved).GetForeground())
	assert.Equal(t, theme.OtherFg, s.StatusStyle("renamed").GetForeground())
}

func TestErrorBanner(t *testing.T) {
	t.Run("should offer retry and back to the named page", func(t *testing.T) {
		// when
		out := ansi.Strip(ErrorBanner(testStyles(), "Failed to load commit", errors.New("boom"), "commits", 80))

		// then
		assert.Contains(t, out, "Failed to load commit")
		assert.Contains(t, out, "boom")
		assert.Contains(t, out, "r: Retry")
		assert.Contains(t, out, "esc: Back to commits")
		assert.NotContains(t, out, "q: Quit")
	})

	t.Run("should offer quit when there is no page to go back to", func(t *testing.T) {
		// when
		out := ansi.Strip(ErrorBanner(testStyles(), "Failed to load repositories", errors.New("boom"), "", 80))

		// then
		assert.Contains(t, out, "r: Retry")
		assert.Contains(t, out, "q: Quit")
		assert.NotContains(t, out, "esc: Back")
	})
}
