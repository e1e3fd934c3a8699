package history

import (
	"fmt"

	"github.com/saulojdsf/WebCDU-sub001/internal/diagram"
)

// Factory builds commands of each variant from the current live state plus
// caller-supplied parameters. Every constructor captures the complete
// pre-edit bundle at call time; from that moment the command is self
// contained.
type Factory struct {
	access *StateAccess
}

// NewFactory creates a factory bound to the given state access.
func NewFactory(access *StateAccess) *Factory {
	return &Factory{access: access}
}

// AddNode builds a command that appends node to the diagram.
func (f *Factory) AddNode(node diagram.Node) *AddNodeCommand {
	desc := fmt.Sprintf("Add node %s", node.ID)
	return &AddNodeCommand{
		meta: newMeta(KindAddNode, desc, f.access.Capture()),
		Node: node,
	}
}

// DeleteNodes builds a command that removes the listed nodes and their
// incident edges.
func (f *Factory) DeleteNodes(nodeIDs []string) *DeleteNodesCommand {
	desc := fmt.Sprintf("Delete %d nodes", len(nodeIDs))
	if len(nodeIDs) == 1 {
		desc = fmt.Sprintf("Delete node %s", nodeIDs[0])
	}
	return &DeleteNodesCommand{
		meta:    newMeta(KindDeleteNodes, desc, f.access.Capture()),
		NodeIDs: cloneStrings(nodeIDs),
	}
}

// MoveNodes builds a command that repositions the listed nodes.
func (f *Factory) MoveNodes(nodeIDs []string, previous, next map[string]diagram.Position) *MoveNodesCommand {
	desc := fmt.Sprintf("Move %d nodes", len(nodeIDs))
	if len(nodeIDs) == 1 {
		desc = fmt.Sprintf("Move node %s", nodeIDs[0])
	}
	return &MoveNodesCommand{
		meta:              newMeta(KindMoveNodes, desc, f.access.Capture()),
		NodeIDs:           cloneStrings(nodeIDs),
		PreviousPositions: clonePositions(previous),
		NewPositions:      clonePositions(next),
	}
}

// AddEdge builds a command that appends edge to the diagram.
func (f *Factory) AddEdge(edge diagram.Edge) *AddEdgeCommand {
	desc := fmt.Sprintf("Connect %s to %s", edge.Source, edge.Target)
	return &AddEdgeCommand{
		meta: newMeta(KindAddEdge, desc, f.access.Capture()),
		Edge: edge,
	}
}

// DeleteEdges builds a command that removes the listed edges.
func (f *Factory) DeleteEdges(edgeIDs []string) *DeleteEdgesCommand {
	desc := fmt.Sprintf("Delete %d edges", len(edgeIDs))
	if len(edgeIDs) == 1 {
		desc = "Delete edge"
	}
	return &DeleteEdgesCommand{
		meta:    newMeta(KindDeleteEdges, desc, f.access.Capture()),
		EdgeIDs: cloneStrings(edgeIDs),
	}
}

// UpdateNodeData builds a command that merges newData into the named node's
// data map.
func (f *Factory) UpdateNodeData(nodeID string, previousData, newData map[string]any) *UpdateNodeDataCommand {
	return &UpdateNodeDataCommand{
		meta:         newMeta(KindUpdateNodeData, fmt.Sprintf("Update node %s", nodeID), f.access.Capture()),
		NodeID:       nodeID,
		PreviousData: cloneData(previousData),
		NewData:      cloneData(newData),
	}
}

// PasteNodes builds a command that appends a batch of pasted nodes and edges.
func (f *Factory) PasteNodes(nodes []diagram.Node, edges []diagram.Edge) *PasteNodesCommand {
	desc := fmt.Sprintf("Paste %d nodes", len(nodes))
	if len(nodes) == 1 {
		desc = "Paste 1 node"
	}
	return &PasteNodesCommand{
		meta:  newMeta(KindPasteNodes, desc, f.access.Capture()),
		Nodes: append([]diagram.Node(nil), nodes...),
		Edges: append([]diagram.Edge(nil), edges...),
	}
}

// ClearAll builds a command that resets every domain to empty.
func (f *Factory) ClearAll() *ClearAllCommand {
	return &ClearAllCommand{
		meta: newMeta(KindClearAll, "Clear diagram", f.access.Capture()),
	}
}

// CreateGroup builds a command recording a group creation. Capture the
// command before invoking the grouping subsystem so that undo restores the
// pre-group state.
func (f *Factory) CreateGroup(groupID string, nodeIDs []string) *CreateGroupCommand {
	desc := fmt.Sprintf("Group %d nodes", len(nodeIDs))
	return &CreateGroupCommand{
		meta:    newMeta(KindCreateGroup, desc, f.access.Capture()),
		GroupID: groupID,
		NodeIDs: cloneStrings(nodeIDs),
	}
}

// DeleteGroup builds a command recording a group deletion. As with
// CreateGroup, build the command before invoking the grouping subsystem.
func (f *Factory) DeleteGroup(groupID string, deletedGroup diagram.Blob) *DeleteGroupCommand {
	return &DeleteGroupCommand{
		meta:         newMeta(KindDeleteGroup, fmt.Sprintf("Ungroup %s", groupID), f.access.Capture()),
		GroupID:      groupID,
		DeletedGroup: deletedGroup.Clone(),
	}
}

func cloneStrings(src []string) []string {
	if src == nil {
		return nil
	}
	return append([]string(nil), src...)
}

func clonePositions(src map[string]diagram.Position) map[string]diagram.Position {
	if src == nil {
		return nil
	}
	dst := make(map[string]diagram.Position, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func cloneData(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
