// Package reqseq orders overlapping loads of the same resource so that only
// the most recently issued request may publish its result. A response that
// arrives after a newer request was started is dropped.
package reqseq

import "sync"

// Ticket identifies one issued request.
type Ticket uint64

// Sequencer hands out tickets. The zero value is ready to use.
type Sequencer struct {
	mu   sync.Mutex
	last Ticket
}

// Next issues a ticket that supersedes every earlier one.
func (s *Sequencer) Next() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last++
	return s.last
}

// Current reports whether t is still the latest ticket.
func (s *Sequencer) Current(t Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return t == s.last
}

// Invalidate makes every outstanding ticket stale.
func (s *Sequencer) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last++
}

// Apply runs fn only if t is still current. The check and fn happen under
// the sequencer lock, so no newer ticket can be issued in between.
func (s *Sequencer) Apply(t Ticket, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t != s.last {
		return false
	}
	fn()
	return true
}
