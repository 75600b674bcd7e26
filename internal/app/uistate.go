package app

import "sync/atomic"

// UIState holds view state that never reaches the store. It is owned by the
// controller and passed to the UI explicitly.
//
// Expanded indices are only touched by the owner goroutine. AlwaysOnTop may
// also be flipped by background event sources such as a tray icon.
type UIState struct {
	expanded map[int]bool

	AlwaysOnTop atomic.Bool
}

// NewUIState creates a UIState with every topic collapsed.
func NewUIState() *UIState {
	return &UIState{expanded: make(map[int]bool)}
}

// ToggleExpanded flips the expanded state of the topic at index.
func (u *UIState) ToggleExpanded(index int) {
	if u.expanded[index] {
		delete(u.expanded, index)
		return
	}
	u.expanded[index] = true
}

// IsExpanded reports whether the topic at index is expanded.
func (u *UIState) IsExpanded(index int) bool {
	return u.expanded[index]
}

// ResetExpanded collapses every topic. Called when topic indices shift.
func (u *UIState) ResetExpanded() {
	clear(u.expanded)
}

// ToggleAlwaysOnTop flips AlwaysOnTop and returns the new value. Concurrent
// toggles are never lost.
func (u *UIState) ToggleAlwaysOnTop() bool {
	for {
		old := u.AlwaysOnTop.Load()
		if u.AlwaysOnTop.CompareAndSwap(old, !old) {
			return !old
		}
	}
}
