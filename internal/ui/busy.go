package ui

import (
	"sync"

	"golang.org/x/sync/semaphore"
)

// BusyState is the visual state of an action button.
type BusyState int

const (
	Idle BusyState = iota
	Busy
)

func (s BusyState) String() string {
	if s == Busy {
		return "busy"
	}
	return "idle"
}

// BusyButton drives a button through Idle (default label, interactive, opaque) and
// Busy (progress label, disabled, dimmed). It also holds the action's in-flight token:
// while Busy, a second Begin fails even if something clicks the button programmatically.
type BusyButton struct {
	Button    *Button
	IdleLabel string
	BusyLabel string
	// ReadyOnEnd decides whether the button is enabled when it returns to Idle; nil means always.
	ReadyOnEnd func() bool

	token *semaphore.Weighted
	mu    sync.Mutex
	state BusyState
}

func NewBusyButton(b *Button, idleLabel, busyLabel string) *BusyButton {
	b.SetLabel(idleLabel)
	return &BusyButton{
		Button:    b,
		IdleLabel: idleLabel,
		BusyLabel: busyLabel,
		token:     semaphore.NewWeighted(1),
	}
}

// Begin enters Busy. ok is false when the action is already in flight.
// end returns the button to Idle and releases the token; it is safe to call more than once.
func (bb *BusyButton) Begin() (end func(), ok bool) {
	if !bb.token.TryAcquire(1) {
		return nil, false
	}
	bb.mu.Lock()
	bb.state = Busy
	bb.Button.SetLabel(bb.BusyLabel)
	bb.Button.SetEnabled(false)
	bb.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			bb.mu.Lock()
			bb.state = Idle
			bb.Button.SetLabel(bb.IdleLabel)
			bb.Button.SetEnabled(bb.ReadyOnEnd == nil || bb.ReadyOnEnd())
			bb.mu.Unlock()
			bb.token.Release(1)
		})
	}, true
}

// EnableIfIdle enables the button unless an action is in flight, in which case ReadyOnEnd
// decides when it ends. It reports whether the button was enabled now.
func (bb *BusyButton) EnableIfIdle() bool {
	bb.mu.Lock()
	defer bb.mu.Unlock()
	if bb.state == Busy {
		return false
	}
	bb.Button.SetEnabled(true)
	return true
}

func (bb *BusyButton) State() BusyState {
	bb.mu.Lock()
	defer bb.mu.Unlock()
	return bb.state
}
