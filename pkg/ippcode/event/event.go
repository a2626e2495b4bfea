// File: event.go
// Title: Analyzer Event Channel
// Description: A minimal synchronous publish/subscribe primitive. The source
//              analyzer publishes comment-seen and line-of-code events;
//              listeners such as the statistics collector subscribe to them.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package event

import (
	"reflect"
	"sync"
)

// Event identifies what happened
type Event string

const (
	// Comment fires once per source line that contained a comment marker
	Comment Event = "onComment"
	// LineOfCode fires once per line that yielded a valid opcode
	LineOfCode Event = "onLOC"
)

// Listener receives events from a Trigger
type Listener interface {
	OnEvent(e Event)
}

// ListenerFunc adapts a function to the Listener interface. Function
// listeners cannot be detached.
type ListenerFunc func(e Event)

// OnEvent implements Listener
func (f ListenerFunc) OnEvent(e Event) { f(e) }

// Trigger fans events out to attached listeners in attachment order.
// Listeners must not attach or detach from within OnEvent.
type Trigger struct {
	mu        sync.RWMutex
	listeners []Listener
}

// Attach adds a listener
func (t *Trigger) Attach(l Listener) {
	if l == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, l)
}

// Detach removes the first occurrence of l. Unknown and non-comparable
// listeners are ignored.
func (t *Trigger) Detach(l Listener) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, cur := range t.listeners {
		if same(cur, l) {
			next := make([]Listener, 0, len(t.listeners)-1)
			next = append(next, t.listeners[:i]...)
			t.listeners = append(next, t.listeners[i+1:]...)
			return
		}
	}
}

// Notify calls every attached listener with e
func (t *Trigger) Notify(e Event) {
	t.mu.RLock()
	listeners := t.listeners
	t.mu.RUnlock()

	for _, l := range listeners {
		l.OnEvent(e)
	}
}

// Len returns the number of attached listeners
func (t *Trigger) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.listeners)
}

func same(a, b Listener) bool {
	if a == nil || b == nil {
		return a == b
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() || !va.Comparable() || !vb.Comparable() {
		return false
	}
	return a == b
}
