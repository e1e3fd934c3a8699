package history

import (
	"sync"
	"time"

	"github.com/saulojdsf/WebCDU-sub001/internal/notify"
)

// DefaultMaxEntries bounds the command history unless overridden.
const DefaultMaxEntries = 50

// Info describes one history entry without exposing the command itself.
type Info struct {
	ID          string
	Kind        Kind
	Description string
	Timestamp   time.Time
}

// Manager owns the ordered command list and a cursor, and applies commands to
// the live stores through the injected state access.
//
// The cursor ranges over [-1, len(history)-1]: -1 means nothing is applied,
// len(history)-1 means the tip with nothing to redo. Executing a new command
// after one or more undos discards the now unreachable redo branch.
type Manager struct {
	mu sync.Mutex

	access  *StateAccess
	history []Command
	current int

	maxEntries int
	notifier   *notify.Notifier
}

// Option configures a Manager during creation.
type Option func(*Manager)

// WithMaxEntries bounds the history to n commands. Values below one keep the
// default.
func WithMaxEntries(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.maxEntries = n
		}
	}
}

// WithNotifier publishes history changes to the given notifier.
func WithNotifier(n *notify.Notifier) Option {
	return func(m *Manager) {
		m.notifier = n
	}
}

// NewManager creates a history manager bound to the given state access.
func NewManager(access *StateAccess, opts ...Option) *Manager {
	m := &Manager{
		access:     access,
		current:    -1,
		maxEntries: DefaultMaxEntries,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Execute applies cmd and appends it to the history. Any redo branch beyond
// the cursor is discarded first; if the history then exceeds the configured
// bound, the oldest entries are evicted and the cursor shifts down with them.
//
// Execute must not be re-entered from within a getter or setter; doing so
// would corrupt the cursor and truncation invariants.
func (m *Manager) Execute(cmd Command) {
	m.mu.Lock()
	m.history = append(m.history[:m.current+1], cmd)
	m.current++

	if excess := len(m.history) - m.maxEntries; excess > 0 {
		m.history = m.history[excess:]
		m.current -= excess
		if m.current > m.maxEntries-1 {
			m.current = m.maxEntries - 1
		}
	}
	m.mu.Unlock()

	m.access.Apply(cmd.Execute(m.access))
	m.publish(notify.Executed, cmd.Description())
}

// Undo restores the state captured before the command at the cursor and
// moves the cursor back one step. It reports false, without touching
// anything, when there is nothing to undo.
func (m *Manager) Undo() bool {
	m.mu.Lock()
	if m.current < 0 {
		m.mu.Unlock()
		return false
	}
	cmd := m.history[m.current]
	m.current--
	m.mu.Unlock()

	m.access.Apply(cmd.Undo())
	m.publish(notify.Undone, cmd.Description())
	return true
}

// Redo advances the cursor one step and re-executes that command against the
// restored live state, reproducing the identical forward transition. It
// reports false when there is nothing to redo.
func (m *Manager) Redo() bool {
	m.mu.Lock()
	if m.current >= len(m.history)-1 {
		m.mu.Unlock()
		return false
	}
	m.current++
	cmd := m.history[m.current]
	m.mu.Unlock()

	m.access.Apply(cmd.Execute(m.access))
	m.publish(notify.Redone, cmd.Description())
	return true
}

// CanUndo reports whether an undo is available.
func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current >= 0
}

// CanRedo reports whether a redo is available.
func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current < len(m.history)-1
}

// Clear discards the history log. Live state is untouched.
func (m *Manager) Clear() {
	m.mu.Lock()
	m.history = nil
	m.current = -1
	m.mu.Unlock()

	m.publish(notify.Cleared, "")
}

// Len returns the number of commands in the history.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.history)
}

// Cursor returns the current cursor position, -1 when nothing is applied.
func (m *Manager) Cursor() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// MaxEntries returns the configured history bound.
func (m *Manager) MaxEntries() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxEntries
}

// SetMaxEntries changes the history bound. If the current history is larger,
// the oldest entries are evicted immediately. Values below one are ignored.
func (m *Manager) SetMaxEntries(n int) {
	if n <= 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.maxEntries = n
	if excess := len(m.history) - n; excess > 0 {
		m.history = m.history[excess:]
		m.current -= excess
		if m.current < -1 {
			m.current = -1
		}
	}
}

// UndoList returns info for every command at or before the cursor, oldest
// first. These are the edits an undo sequence would walk back through.
func (m *Manager) UndoList() []Info {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]Info, 0, m.current+1)
	for _, cmd := range m.history[:m.current+1] {
		result = append(result, infoOf(cmd))
	}
	return result
}

// RedoList returns info for every command beyond the cursor, oldest first.
func (m *Manager) RedoList() []Info {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]Info, 0, len(m.history)-m.current-1)
	for _, cmd := range m.history[m.current+1:] {
		result = append(result, infoOf(cmd))
	}
	return result
}

// PeekUndo returns info about the command the next undo would revert.
func (m *Manager) PeekUndo() (Info, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current < 0 {
		return Info{}, false
	}
	return infoOf(m.history[m.current]), true
}

// PeekRedo returns info about the command the next redo would re-apply.
func (m *Manager) PeekRedo() (Info, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current >= len(m.history)-1 {
		return Info{}, false
	}
	return infoOf(m.history[m.current+1]), true
}

func infoOf(cmd Command) Info {
	return Info{
		ID:          cmd.ID(),
		Kind:        cmd.Kind(),
		Description: cmd.Description(),
		Timestamp:   cmd.Timestamp(),
	}
}

func (m *Manager) publish(t notify.Type, description string) {
	if m.notifier == nil {
		return
	}
	m.notifier.Notify(notify.Event{
		Type:    t,
		Command: description,
		CanUndo: m.CanUndo(),
		CanRedo: m.CanRedo(),
	})
}
