package store

import (
	"github.com/saulojdsf/WebCDU-sub001/internal/history"
)

// Stores aggregates the live stores for all five domains and produces the
// state access bindings the history engine works through.
type Stores struct {
	Graph      *GraphStore
	Drawing    *DrawingStore
	Groups     *GroupStore
	Parameters *ParameterStore
}

// New creates an empty set of stores.
func New() *Stores {
	return &Stores{
		Graph:      NewGraphStore(),
		Drawing:    NewDrawingStore(),
		Groups:     NewGroupStore(),
		Parameters: NewParameterStore(),
	}
}

// Access returns the getter/setter bindings over these stores. The bindings
// remain valid for the life of the stores.
func (s *Stores) Access() *history.StateAccess {
	return &history.StateAccess{
		GetNodes:      s.Graph.Nodes,
		GetEdges:      s.Graph.Edges,
		GetDrawing:    s.Drawing.Data,
		GetGroups:     s.Groups.Data,
		GetParameters: s.Parameters.Data,

		SetNodes:      s.Graph.SetNodes,
		SetEdges:      s.Graph.SetEdges,
		SetDrawing:    s.Drawing.SetData,
		SetGroups:     s.Groups.SetData,
		SetParameters: s.Parameters.SetData,
	}
}
