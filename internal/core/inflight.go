package core

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Action names a kind of request that may only have one instance in flight
type Action int

const (
	ActionToggle Action = iota
	ActionCapture
	ActionImages
	ActionAnalyze
	ActionPreview
	ActionChat
)

func (a Action) String() string {
	switch a {
	case ActionToggle:
		return "toggle"
	case ActionCapture:
		return "capture"
	case ActionImages:
		return "images"
	case ActionAnalyze:
		return "analyze"
	case ActionPreview:
		return "preview"
	case ActionChat:
		return "chat"
	default:
		return "unknown"
	}
}

type inflightEntry struct {
	token  string
	cancel context.CancelFunc
}

// Inflight hands out one token per running action. A result is only applied
// when its token is still the current one, so a cancelled or superseded
// request can never write into state.
type Inflight struct {
	mu      sync.Mutex
	entries map[Action]inflightEntry
}

func NewInflight() *Inflight {
	return &Inflight{
		entries: make(map[Action]inflightEntry),
	}
}

// Begin starts an action. It fails with ErrActionInFlight while another
// request of the same kind is outstanding.
func (f *Inflight) Begin(parent context.Context, a Action) (context.Context, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, busy := f.entries[a]; busy {
		return nil, "", ErrActionInFlight
	}

	ctx, cancel := context.WithCancel(parent)
	token := uuid.NewString()
	f.entries[a] = inflightEntry{token: token, cancel: cancel}
	return ctx, token, nil
}

// Restart cancels whatever request of this kind is outstanding and begins a
// new one in its place. The old token stops being current.
func (f *Inflight) Restart(parent context.Context, a Action) (context.Context, string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if entry, ok := f.entries[a]; ok {
		entry.cancel()
	}

	ctx, cancel := context.WithCancel(parent)
	token := uuid.NewString()
	f.entries[a] = inflightEntry{token: token, cancel: cancel}
	return ctx, token
}

// Finish ends the action if token is still current and reports whether it was
func (f *Inflight) Finish(a Action, token string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry, ok := f.entries[a]
	if !ok || entry.token != token {
		return false
	}
	entry.cancel()
	delete(f.entries, a)
	return true
}

// Cancel aborts whatever request of this kind is running and invalidates its token
func (f *Inflight) Cancel(a Action) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if entry, ok := f.entries[a]; ok {
		entry.cancel()
		delete(f.entries, a)
	}
}

func (f *Inflight) Active(a Action) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.entries[a]
	return ok
}

// CancelAll is used on shutdown
func (f *Inflight) CancelAll() {
	f.mu.Lock()
	defer f.mu.Unlock()

	for a, entry := range f.entries {
		entry.cancel()
		delete(f.entries, a)
	}
}
