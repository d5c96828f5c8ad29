// Package banner holds the transient success and error messages a view
// shows. Each message lives in a named slot and disappears after its TTL.
// Timers belong to the Board and are stopped by Close, so nothing fires
// after the owning view is gone.
package banner

import (
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/admissions/internal/clock"
)

const (
	DefaultSuccessTTL = 3 * time.Second
	DefaultErrorTTL   = 5 * time.Second
)

type Kind int

const (
	Success Kind = iota
	Error
)

func (k Kind) String() string {
	if k == Error {
		return "error"
	}
	return "success"
}

// Message is one visible banner.
type Message struct {
	Slot string
	Kind Kind
	Text string
}

type entry struct {
	msg   Message
	timer clock.Timer
}

// Board is safe for concurrent use.
type Board struct {
	clock      clock.Clock
	successTTL time.Duration
	errorTTL   time.Duration

	mu     sync.Mutex
	slots  map[string]*entry
	closed bool
}

// New returns a Board. Non-positive TTLs fall back to the defaults.
func New(c clock.Clock, successTTL, errorTTL time.Duration) *Board {
	if c == nil {
		c = clock.Real()
	}
	if successTTL <= 0 {
		successTTL = DefaultSuccessTTL
	}
	if errorTTL <= 0 {
		errorTTL = DefaultErrorTTL
	}
	return &Board{clock: c, successTTL: successTTL, errorTTL: errorTTL, slots: map[string]*entry{}}
}

func (b *Board) Success(slot, text string) { b.post(slot, Success, text, b.successTTL) }

func (b *Board) Error(slot, text string) { b.post(slot, Error, text, b.errorTTL) }

func (b *Board) post(slot string, kind Kind, text string, ttl time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.stopLocked(slot)

	e := &entry{msg: Message{Slot: slot, Kind: kind, Text: text}}
	b.slots[slot] = e
	e.timer = b.clock.AfterFunc(ttl, func() { b.expire(slot, e) })
}

// expire removes e unless it was already replaced.
func (b *Board) expire(slot string, e *entry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.slots[slot] == e {
		delete(b.slots, slot)
	}
}

func (b *Board) stopLocked(slot string) {
	if old, ok := b.slots[slot]; ok {
		if old.timer != nil {
			old.timer.Stop()
		}
		delete(b.slots, slot)
	}
}

// Clear drops the message in slot.
func (b *Board) Clear(slot string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopLocked(slot)
}

// ClearError drops the message in slot if it is an error. A success
// message stays until its TTL.
func (b *Board) ClearError(slot string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if e, ok := b.slots[slot]; ok && e.msg.Kind == Error {
		b.stopLocked(slot)
	}
}

// Get returns the visible message in slot.
func (b *Board) Get(slot string) (Message, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.slots[slot]
	if !ok {
		return Message{}, false
	}
	return e.msg, true
}

// Active returns every visible message ordered by slot.
func (b *Board) Active() []Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Message, 0, len(b.slots))
	for _, e := range b.slots {
		out = append(out, e.msg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out
}

// Close stops every timer and drops all messages. Posts after Close are
// ignored.
func (b *Board) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for slot := range b.slots {
		b.stopLocked(slot)
	}
	b.closed = true
}
