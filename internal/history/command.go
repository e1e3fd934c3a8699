package history

import (
	"time"

	"github.com/google/uuid"

	"github.com/saulojdsf/WebCDU-sub001/internal/diagram"
)

// Kind identifies a command variant.
type Kind int

const (
	KindAddNode Kind = iota
	KindDeleteNodes
	KindMoveNodes
	KindAddEdge
	KindDeleteEdges
	KindUpdateNodeData
	KindPasteNodes
	KindClearAll
	KindCreateGroup
	KindDeleteGroup
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindAddNode:
		return "add-node"
	case KindDeleteNodes:
		return "delete-nodes"
	case KindMoveNodes:
		return "move-nodes"
	case KindAddEdge:
		return "add-edge"
	case KindDeleteEdges:
		return "delete-edges"
	case KindUpdateNodeData:
		return "update-node-data"
	case KindPasteNodes:
		return "paste-nodes"
	case KindClearAll:
		return "clear-all"
	case KindCreateGroup:
		return "create-group"
	case KindDeleteGroup:
		return "delete-group"
	default:
		return "unknown"
	}
}

// Command is a reversible, self-contained description of one user edit.
type Command interface {
	// Execute produces the post-edit bundle from whatever is currently live.
	// It never mutates state in place; the manager applies the result.
	Execute(a *StateAccess) diagram.StateBundle

	// Undo returns the bundle captured before the edit was first applied.
	Undo() diagram.StateBundle

	// ID uniquely identifies the command in generation order.
	ID() string

	// Timestamp is the command's creation time.
	Timestamp() time.Time

	// Kind reports the command variant.
	Kind() Kind

	// Description returns a human-readable description of the edit.
	Description() string
}

// meta carries the identity, description, and captured pre-edit bundle shared
// by every command variant. All fields are immutable after creation.
type meta struct {
	id          string
	timestamp   time.Time
	kind        Kind
	description string
	prev        diagram.StateBundle
}

func newMeta(kind Kind, description string, prev diagram.StateBundle) meta {
	return meta{
		id:          uuid.NewString(),
		timestamp:   time.Now(),
		kind:        kind,
		description: description,
		prev:        prev,
	}
}

// ID returns the command's unique identifier.
func (m *meta) ID() string { return m.id }

// Timestamp returns the command's creation time.
func (m *meta) Timestamp() time.Time { return m.timestamp }

// Kind returns the command variant.
func (m *meta) Kind() Kind { return m.kind }

// Description returns a human-readable description of the edit.
func (m *meta) Description() string { return m.description }

// Undo returns the captured pre-edit bundle. The same value comes back no
// matter how many times the cursor revisits this command.
func (m *meta) Undo() diagram.StateBundle { return m.prev }
