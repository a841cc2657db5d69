package domain

import "time"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventFetchStarted   EventType = "FetchStarted"
	EventFetchCompleted EventType = "FetchCompleted"
	EventFetchFailed    EventType = "FetchFailed"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// FetchStartedEvent is emitted when an API request is sent
type FetchStartedEvent struct {
	RequestID string
	Method    string
	Path      string
}

func (e FetchStartedEvent) Type() EventType { return EventFetchStarted }

// FetchCompletedEvent is emitted when an API request returns a 2xx response
type FetchCompletedEvent struct {
	RequestID  string
	Path       string
	StatusCode int
	Duration   time.Duration
	FromCache  bool
}

func (e FetchCompletedEvent) Type() EventType { return EventFetchCompleted }

// FetchFailedEvent is emitted when an API request fails for any reason
type FetchFailedEvent struct {
	RequestID  string
	Path       string
	StatusCode int
	Duration   time.Duration
	Err        error
}

func (e FetchFailedEvent) Type() EventType { return EventFetchFailed }
