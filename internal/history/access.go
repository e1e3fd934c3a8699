package history

import (
	"github.com/saulojdsf/WebCDU-sub001/internal/diagram"
)

// StateAccess is the narrow read/write contract through which the history
// engine observes and mutates the live stores. The host injects one function
// per domain and direction; all ten must be non-nil before the engine is
// used.
//
// Getters return values the engine may keep; a store must hand out copies or
// otherwise never mutate what it returned. Setters take ownership the same
// way: a store must copy what it receives or treat it as immutable, because
// applied bundles are retained in history and restored again later. Passing
// nil to a blob setter means "reset this subsystem to its empty state".
type StateAccess struct {
	GetNodes      func() []diagram.Node
	GetEdges      func() []diagram.Edge
	GetDrawing    func() diagram.Blob
	GetGroups     func() diagram.Blob
	GetParameters func() diagram.Blob

	SetNodes      func([]diagram.Node)
	SetEdges      func([]diagram.Edge)
	SetDrawing    func(diagram.Blob)
	SetGroups     func(diagram.Blob)
	SetParameters func(diagram.Blob)
}

// Capture reads all five domains and returns a complete deep copy.
// Subsequent live mutation never alters the returned bundle.
func (a *StateAccess) Capture() diagram.StateBundle {
	bundle := diagram.StateBundle{
		Nodes:      a.GetNodes(),
		Edges:      a.GetEdges(),
		Drawing:    diagram.CapturedBlob(a.GetDrawing()),
		Groups:     diagram.CapturedBlob(a.GetGroups()),
		Parameters: diagram.CapturedBlob(a.GetParameters()),
	}
	return bundle.Clone()
}

// Apply writes the bundle to the live stores. This is the only place the
// engine mutates host state. Node and edge lists are always written; a blob
// setter is invoked only when the bundle includes that domain, so commands
// that never touched drawing, group, or parameter data skip the subsystem
// entirely.
//
// The five setter calls are not transactional as a group. A setter that
// panics mid-apply leaves the remaining domains unwritten; the engine offers
// no partial-rollback guarantee.
func (a *StateAccess) Apply(b diagram.StateBundle) {
	a.SetNodes(b.Nodes)
	a.SetEdges(b.Edges)
	if b.Drawing.Present {
		a.SetDrawing(b.Drawing.Data)
	}
	if b.Groups.Present {
		a.SetGroups(b.Groups.Data)
	}
	if b.Parameters.Present {
		a.SetParameters(b.Parameters.Data)
	}
}
