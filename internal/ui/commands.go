package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"commitview/internal/domain"
	"commitview/internal/selection"
	"commitview/internal/sequence"
)

// Fetcher is the read-only API the UI browses
type Fetcher interface {
	CurrentUser(ctx context.Context) (domain.User, error)
	ListRepositories(ctx context.Context) ([]domain.Repository, error)
	ListCommits(ctx context.Context, owner, repo string, page, perPage int) (domain.CommitPage, error)
	GetCommitDetail(ctx context.Context, owner, repo, sha string) (domain.CommitDetail, error)
	GetFileDiff(ctx context.Context, owner, repo, sha, filePath string) (domain.FileDiffContent, error)
}

// Each command runs one request off the event loop. The ticket travels with
// the result so the receiver can drop answers that were superseded.

func fetchUser(ctx context.Context, f Fetcher) tea.Cmd {
	return func() tea.Msg {
		user, err := f.CurrentUser(ctx)
		return userLoadedMsg{user: user, err: err}
	}
}

func fetchRepos(ctx context.Context, f Fetcher, ticket sequence.Ticket) tea.Cmd {
	return func() tea.Msg {
		repos, err := f.ListRepositories(ctx)
		return reposLoadedMsg{ticket: ticket, repos: repos, err: err}
	}
}

func fetchCommits(ctx context.Context, f Fetcher, ticket sequence.Ticket, owner, repo string, page, perPage int) tea.Cmd {
	return func() tea.Msg {
		result, err := f.ListCommits(ctx, owner, repo, page, perPage)
		return commitsLoadedMsg{ticket: ticket, page: result, err: err}
	}
}

func fetchCommitDetail(ctx context.Context, f Fetcher, ticket sequence.Ticket, owner, repo, sha string) tea.Cmd {
	return func() tea.Msg {
		detail, err := f.GetCommitDetail(ctx, owner, repo, sha)
		return commitDetailLoadedMsg{ticket: ticket, detail: detail, err: err}
	}
}

func fetchFileDiff(ctx context.Context, f Fetcher, owner, repo, sha string, req selection.Request) tea.Cmd {
	return func() tea.Msg {
		content, err := f.GetFileDiff(ctx, owner, repo, sha, req.FileName)
		return fileDiffLoadedMsg{result: selection.Result{Request: req, Content: content, Err: err}}
	}
}
