// Package notify delivers history-change notifications to interested
// components. The host UI subscribes to keep its undo/redo affordances in
// sync without polling the manager.
package notify

import (
	"sync"
)

// Type categorizes a history change.
type Type int

const (
	// Executed indicates a new command was applied.
	Executed Type = iota

	// Undone indicates a command was undone.
	Undone

	// Redone indicates a command was redone.
	Redone

	// Cleared indicates the history log was discarded.
	Cleared
)

// String returns the change type name.
func (t Type) String() string {
	switch t {
	case Executed:
		return "executed"
	case Undone:
		return "undone"
	case Redone:
		return "redone"
	case Cleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Event describes one history change.
type Event struct {
	// Type is the kind of change.
	Type Type

	// Command is the description of the affected command. Empty for Cleared.
	Command string

	// CanUndo and CanRedo report the manager's state after the change.
	CanUndo bool
	CanRedo bool
}

// Observer is called for each history change.
type Observer func(Event)

// Subscription represents an active observer registration.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

// Notifier manages history-change subscriptions. The zero value is not
// usable; create one with New.
type Notifier struct {
	mu        sync.RWMutex
	observers map[uint64]Observer
	nextID    uint64
}

// New creates a Notifier.
func New() *Notifier {
	return &Notifier{
		observers: make(map[uint64]Observer),
	}
}

// Subscribe registers an observer for all history changes.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.observers[id] = observer

	return &Subscription{id: id, notifier: n}
}

// Notify delivers an event to every observer. Observers are called outside
// the notifier's lock, in unspecified order.
func (n *Notifier) Notify(event Event) {
	n.mu.RLock()
	observers := make([]Observer, 0, len(n.observers))
	for _, obs := range n.observers {
		observers = append(observers, obs)
	}
	n.mu.RUnlock()

	for _, obs := range observers {
		obs(event)
	}
}

// Count returns the number of active subscriptions.
func (n *Notifier) Count() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.observers)
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.observers, id)
}
