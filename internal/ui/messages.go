package ui

import (
	"commitview/internal/domain"
	"commitview/internal/eventbus"
	"commitview/internal/selection"
	"commitview/internal/sequence"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// userLoadedMsg contains the session identity shown in the title bar
type userLoadedMsg struct {
	user domain.User
	err  error
}

// reposLoadedMsg contains the result of listing repositories
type reposLoadedMsg struct {
	ticket sequence.Ticket
	repos  []domain.Repository
	err    error
}

// commitsLoadedMsg contains one page of commits
type commitsLoadedMsg struct {
	ticket sequence.Ticket
	page   domain.CommitPage
	err    error
}

// commitDetailLoadedMsg contains a commit and its changed files
type commitDetailLoadedMsg struct {
	ticket sequence.Ticket
	detail domain.CommitDetail
	err    error
}

// fileDiffLoadedMsg answers one selection.Request
type fileDiffLoadedMsg struct {
	result selection.Result
}

// pagerMsg is sent after the external pager exits
type pagerMsg struct {
	err error
}

// clearStatusMsg clears a transient status line
type clearStatusMsg struct{}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
