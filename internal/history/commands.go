package history

import (
	"github.com/saulojdsf/WebCDU-sub001/internal/diagram"
)

// AddNodeCommand appends one node to the live node list.
type AddNodeCommand struct {
	meta
	Node diagram.Node
}

// Execute appends the node to whatever node list is currently live.
func (c *AddNodeCommand) Execute(a *StateAccess) diagram.StateBundle {
	return diagram.StateBundle{
		Nodes: append(a.GetNodes(), c.Node),
		Edges: a.GetEdges(),
	}
}

// DeleteNodesCommand removes the listed nodes and every edge whose source or
// target is among them.
type DeleteNodesCommand struct {
	meta
	NodeIDs []string

	// What the last Execute removed, recorded for inspection. Undo
	// correctness relies only on the captured bundle, never on these.
	DeletedNodes []diagram.Node
	DeletedEdges []diagram.Edge
}

// Execute filters the doomed nodes and their incident edges out of the live
// lists.
func (c *DeleteNodesCommand) Execute(a *StateAccess) diagram.StateBundle {
	doomed := make(map[string]bool, len(c.NodeIDs))
	for _, id := range c.NodeIDs {
		doomed[id] = true
	}

	c.DeletedNodes = nil
	c.DeletedEdges = nil

	var keptNodes []diagram.Node
	for _, n := range a.GetNodes() {
		if doomed[n.ID] {
			c.DeletedNodes = append(c.DeletedNodes, n)
			continue
		}
		keptNodes = append(keptNodes, n)
	}

	var keptEdges []diagram.Edge
	for _, e := range a.GetEdges() {
		if doomed[e.Source] || doomed[e.Target] {
			c.DeletedEdges = append(c.DeletedEdges, e)
			continue
		}
		keptEdges = append(keptEdges, e)
	}

	return diagram.StateBundle{Nodes: keptNodes, Edges: keptEdges}
}

// MoveNodesCommand sets the position of each listed node to its entry in
// NewPositions.
type MoveNodesCommand struct {
	meta
	NodeIDs           []string
	PreviousPositions map[string]diagram.Position
	NewPositions      map[string]diagram.Position
}

// Execute repositions the listed nodes in the live node list.
func (c *MoveNodesCommand) Execute(a *StateAccess) diagram.StateBundle {
	nodes := a.GetNodes()
	for i := range nodes {
		if pos, ok := c.NewPositions[nodes[i].ID]; ok {
			nodes[i].Position = pos
		}
	}
	return diagram.StateBundle{Nodes: nodes, Edges: a.GetEdges()}
}

// AddEdgeCommand appends one edge to the live edge list.
type AddEdgeCommand struct {
	meta
	Edge diagram.Edge
}

// Execute appends the edge to whatever edge list is currently live.
func (c *AddEdgeCommand) Execute(a *StateAccess) diagram.StateBundle {
	return diagram.StateBundle{
		Nodes: a.GetNodes(),
		Edges: append(a.GetEdges(), c.Edge),
	}
}

// DeleteEdgesCommand removes the listed edges.
type DeleteEdgesCommand struct {
	meta
	EdgeIDs []string
}

// Execute filters the listed edges out of the live edge list.
func (c *DeleteEdgesCommand) Execute(a *StateAccess) diagram.StateBundle {
	doomed := make(map[string]bool, len(c.EdgeIDs))
	for _, id := range c.EdgeIDs {
		doomed[id] = true
	}

	var kept []diagram.Edge
	for _, e := range a.GetEdges() {
		if doomed[e.ID] {
			continue
		}
		kept = append(kept, e)
	}

	return diagram.StateBundle{Nodes: a.GetNodes(), Edges: kept}
}

// UpdateNodeDataCommand merges NewData into the named node's data map.
type UpdateNodeDataCommand struct {
	meta
	NodeID       string
	PreviousData map[string]any
	NewData      map[string]any
}

// Execute replaces the node's data with a fresh map holding the old entries
// overlaid by NewData. The live node's existing map is never mutated.
func (c *UpdateNodeDataCommand) Execute(a *StateAccess) diagram.StateBundle {
	nodes := a.GetNodes()
	for i := range nodes {
		if nodes[i].ID != c.NodeID {
			continue
		}
		merged := make(map[string]any, len(nodes[i].Data)+len(c.NewData))
		for k, v := range nodes[i].Data {
			merged[k] = v
		}
		for k, v := range c.NewData {
			merged[k] = v
		}
		nodes[i].Data = merged
		break
	}
	return diagram.StateBundle{Nodes: nodes, Edges: a.GetEdges()}
}

// PasteNodesCommand appends a batch of pasted nodes and edges.
type PasteNodesCommand struct {
	meta
	Nodes []diagram.Node
	Edges []diagram.Edge
}

// Execute appends the pasted nodes and edges to the live lists.
func (c *PasteNodesCommand) Execute(a *StateAccess) diagram.StateBundle {
	return diagram.StateBundle{
		Nodes: append(a.GetNodes(), c.Nodes...),
		Edges: append(a.GetEdges(), c.Edges...),
	}
}

// ClearAllCommand resets all five domains to empty.
type ClearAllCommand struct {
	meta
}

// Execute returns an empty bundle with every blob domain present and nil,
// which signals "reset to empty" rather than "leave untouched".
func (c *ClearAllCommand) Execute(a *StateAccess) diagram.StateBundle {
	return diagram.StateBundle{
		Drawing:    diagram.CapturedBlob(nil),
		Groups:     diagram.CapturedBlob(nil),
		Parameters: diagram.CapturedBlob(nil),
	}
}

// CreateGroupCommand records a group creation performed by the grouping
// subsystem. The visible mutation happens through that subsystem's own API;
// Execute only echoes the current live state back, so applying it changes
// nothing.
type CreateGroupCommand struct {
	meta
	GroupID string
	NodeIDs []string
}

// Execute returns the current live state unchanged.
func (c *CreateGroupCommand) Execute(a *StateAccess) diagram.StateBundle {
	return a.Capture()
}

// DeleteGroupCommand records a group deletion performed by the grouping
// subsystem. DeletedGroup holds the removed group's payload for inspection.
type DeleteGroupCommand struct {
	meta
	GroupID      string
	DeletedGroup diagram.Blob
}

// Execute returns the current live state unchanged.
func (c *DeleteGroupCommand) Execute(a *StateAccess) diagram.StateBundle {
	return a.Capture()
}
