// Package player manages playback lifecycles for the carousel. Each item
// gets its own Player; the Deck guarantees at most one is audible at a
// time and that switching away pauses and rewinds the previous one.
package player

import (
	"context"
	"fmt"
	"sync"
)

// State is a player's lifecycle position.
type State int

const (
	// StateUninitialized means the backing process is still starting up.
	StateUninitialized State = iota
	// StateReady means the media is loaded and playback can start.
	StateReady
	// StateActive means the player is playing.
	StateActive
	// StatePaused means playback is stopped but resumable.
	StatePaused
	// StateDestroyed is terminal. A destroyed player accepts no commands.
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateActive:
		return "active"
	case StatePaused:
		return "paused"
	case StateDestroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Player is one playback slot. Implementations must be safe for
// concurrent use; the Deck drives them from UI and timer goroutines.
type Player interface {
	// Play starts or resumes playback. Calling it before the player is
	// ready is an error; the Deck defers the call instead.
	Play(ctx context.Context) error
	// Pause stops playback without losing the position.
	Pause(ctx context.Context) error
	// SeekStart rewinds to the beginning.
	SeekStart(ctx context.Context) error
	// State reports the current lifecycle state.
	State() State
	// Ready is closed once the player leaves StateUninitialized.
	Ready() <-chan struct{}
	// Destroy tears the player down. Idempotent.
	Destroy() error
}

// ErrNotReady is returned by Play before the media has loaded.
var ErrNotReady = fmt.Errorf("player not ready")

// ErrDestroyed is returned by any command on a destroyed player.
var ErrDestroyed = fmt.Errorf("player destroyed")

// machine tracks lifecycle state with the transition rules shared by all
// implementations. Zero value starts uninitialized.
type machine struct {
	mu    sync.Mutex
	state State
	ready chan struct{}
}

func newMachine() *machine {
	return &machine{ready: make(chan struct{})}
}

func (m *machine) current() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *machine) readyCh() <-chan struct{} {
	return m.ready
}

// markReady moves uninitialized to ready and unblocks waiters. No-op in
// any other state, so a late load event after Destroy is harmless.
func (m *machine) markReady() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateUninitialized {
		return
	}
	m.state = StateReady
	close(m.ready)
}

// toActive validates and performs the transition into playback.
func (m *machine) toActive() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.state {
	case StateReady, StatePaused, StateActive:
		m.state = StateActive
		return nil
	case StateUninitialized:
		return ErrNotReady
	default:
		return ErrDestroyed
	}
}

// toPaused validates and performs the transition out of playback.
func (m *machine) toPaused() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.state {
	case StateActive, StatePaused, StateReady:
		if m.state == StateActive {
			m.state = StatePaused
		}
		return nil
	case StateUninitialized:
		return ErrNotReady
	default:
		return ErrDestroyed
	}
}

// toDestroyed is terminal and idempotent. Returns false if already there.
func (m *machine) toDestroyed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateDestroyed {
		return false
	}
	if m.state == StateUninitialized {
		close(m.ready)
	}
	m.state = StateDestroyed
	return true
}
