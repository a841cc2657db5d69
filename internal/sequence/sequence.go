// Package sequence issues generation tickets for asynchronous fetches so that a
// completion can be checked against the most recent request before it is applied.
package sequence

import "sync/atomic"

// Ticket identifies one issued request. The zero Ticket is never current.
type Ticket uint64

// issued is shared by every Sequencer so a ticket from one never matches
// another, even after the page that owned it is replaced.
var issued atomic.Uint64

// Sequencer hands out increasing tickets; only the latest one is current.
// It is owned by a single event loop and is not safe for concurrent use.
type Sequencer struct {
	last Ticket
}

// Next supersedes every earlier ticket and returns a new current one
func (s *Sequencer) Next() Ticket {
	s.last = Ticket(issued.Add(1))
	return s.last
}

// Current reports whether t is the most recently issued ticket
func (s *Sequencer) Current(t Ticket) bool {
	return t != 0 && t == s.last
}

// Invalidate supersedes all outstanding tickets without issuing a new one
func (s *Sequencer) Invalidate() {
	s.last = 0
}
