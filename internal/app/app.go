package app

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/saulojdsf/WebCDU-sub001/internal/config"
	"github.com/saulojdsf/WebCDU-sub001/internal/diagram"
	"github.com/saulojdsf/WebCDU-sub001/internal/history"
	"github.com/saulojdsf/WebCDU-sub001/internal/notify"
	"github.com/saulojdsf/WebCDU-sub001/internal/store"
)

// Errors returned by editor operations.
var (
	// ErrNodeNotFound indicates a referenced node does not exist.
	ErrNodeNotFound = errors.New("node not found")

	// ErrEmptyGroup indicates a group operation was given no nodes.
	ErrEmptyGroup = errors.New("group needs at least one node")
)

// pasteOffset displaces pasted nodes so they do not land exactly on their
// originals.
const pasteOffset = 20

// Editor ties the live stores, the command factory, and the history manager
// together behind one edit-operation API. Every mutating method builds a
// command, so every edit is undoable — except the drawing and parameter
// helpers, which write their subsystems directly and ride along in whatever
// bundle the next command captures.
//
// The editor is synchronous and expects a single caller; edits must not
// overlap.
type Editor struct {
	log      *Logger
	stores   *store.Stores
	access   *history.StateAccess
	factory  *history.Factory
	manager  *history.Manager
	notifier *notify.Notifier
}

// Option configures an Editor during creation.
type Option func(*Editor)

// WithLogger sets the editor's logger.
func WithLogger(log *Logger) Option {
	return func(e *Editor) {
		if log != nil {
			e.log = log
		}
	}
}

// New creates an editor with empty stores, configured per cfg.
func New(cfg config.Config, opts ...Option) *Editor {
	e := &Editor{
		log:      nopLogger(),
		stores:   store.New(),
		notifier: notify.New(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.access = e.stores.Access()
	e.factory = history.NewFactory(e.access)
	e.manager = history.NewManager(e.access,
		history.WithMaxEntries(cfg.History.MaxEntries),
		history.WithNotifier(e.notifier),
	)

	return e
}

// Stores exposes the live stores for read access.
func (e *Editor) Stores() *store.Stores { return e.stores }

// Subscribe registers an observer for history-change events.
func (e *Editor) Subscribe(obs notify.Observer) *notify.Subscription {
	return e.notifier.Subscribe(obs)
}

// ApplyConfig applies a (re)loaded configuration to the running editor.
func (e *Editor) ApplyConfig(cfg config.Config) {
	e.manager.SetMaxEntries(cfg.History.MaxEntries)
	e.log.SetLevel(ParseLevel(cfg.Log.Level))
	e.log.Info("configuration applied: history bound %d, log level %s",
		cfg.History.MaxEntries, cfg.Log.Level)
}

// AddNode places a node on the canvas. An empty id is replaced with a fresh
// one. The node as placed is returned.
func (e *Editor) AddNode(node diagram.Node) diagram.Node {
	if node.ID == "" {
		node.ID = uuid.NewString()
	}
	e.manager.Execute(e.factory.AddNode(node))
	e.log.Debug("added node %s (%s)", node.ID, node.Type)
	return node
}

// DeleteNodes removes the listed nodes and their incident edges. Unknown ids
// are ignored.
func (e *Editor) DeleteNodes(nodeIDs []string) {
	if len(nodeIDs) == 0 {
		return
	}
	e.manager.Execute(e.factory.DeleteNodes(nodeIDs))
	e.log.Debug("deleted %d nodes", len(nodeIDs))
}

// MoveNodes repositions the listed nodes. Previous positions are read from
// the live graph; every id must exist.
func (e *Editor) MoveNodes(to map[string]diagram.Position) error {
	if len(to) == 0 {
		return nil
	}

	ids := make([]string, 0, len(to))
	previous := make(map[string]diagram.Position, len(to))
	for id := range to {
		node, ok := e.stores.Graph.NodeByID(id)
		if !ok {
			return fmt.Errorf("moving node %s: %w", id, ErrNodeNotFound)
		}
		ids = append(ids, id)
		previous[id] = node.Position
	}

	e.manager.Execute(e.factory.MoveNodes(ids, previous, to))
	return nil
}

// Connect wires two nodes together. Both endpoints must exist. An empty edge
// id is replaced with a fresh one. The edge as added is returned.
func (e *Editor) Connect(edge diagram.Edge) (diagram.Edge, error) {
	if _, ok := e.stores.Graph.NodeByID(edge.Source); !ok {
		return diagram.Edge{}, fmt.Errorf("connecting from %s: %w", edge.Source, ErrNodeNotFound)
	}
	if _, ok := e.stores.Graph.NodeByID(edge.Target); !ok {
		return diagram.Edge{}, fmt.Errorf("connecting to %s: %w", edge.Target, ErrNodeNotFound)
	}
	if edge.ID == "" {
		edge.ID = uuid.NewString()
	}

	e.manager.Execute(e.factory.AddEdge(edge))
	e.log.Debug("connected %s -> %s", edge.Source, edge.Target)
	return edge, nil
}

// DeleteEdges removes the listed edges. Unknown ids are ignored.
func (e *Editor) DeleteEdges(edgeIDs []string) {
	if len(edgeIDs) == 0 {
		return
	}
	e.manager.Execute(e.factory.DeleteEdges(edgeIDs))
}

// UpdateNodeData merges data into the named node's data map.
func (e *Editor) UpdateNodeData(nodeID string, data map[string]any) error {
	node, ok := e.stores.Graph.NodeByID(nodeID)
	if !ok {
		return fmt.Errorf("updating node %s: %w", nodeID, ErrNodeNotFound)
	}

	e.manager.Execute(e.factory.UpdateNodeData(nodeID, node.Data, data))
	return nil
}

// Paste appends copies of the given nodes and edges. Node ids are remapped
// to fresh ones (edges follow the remapping) and positions are offset so the
// copies do not cover their originals. The pasted nodes are returned.
func (e *Editor) Paste(nodes []diagram.Node, edges []diagram.Edge) []diagram.Node {
	if len(nodes) == 0 {
		return nil
	}

	remap := make(map[string]string, len(nodes))
	pastedNodes := make([]diagram.Node, len(nodes))
	for i, n := range nodes {
		fresh := uuid.NewString()
		remap[n.ID] = fresh
		n.ID = fresh
		n.Position.X += pasteOffset
		n.Position.Y += pasteOffset
		pastedNodes[i] = n
	}

	var pastedEdges []diagram.Edge
	for _, ed := range edges {
		src, okSrc := remap[ed.Source]
		dst, okDst := remap[ed.Target]
		if !okSrc || !okDst {
			// Edges reaching outside the pasted selection are dropped.
			continue
		}
		ed.ID = uuid.NewString()
		ed.Source = src
		ed.Target = dst
		pastedEdges = append(pastedEdges, ed)
	}

	e.manager.Execute(e.factory.PasteNodes(pastedNodes, pastedEdges))
	e.log.Debug("pasted %d nodes, %d edges", len(pastedNodes), len(pastedEdges))
	return pastedNodes
}

// ClearAll resets every domain to empty. The clear itself is undoable.
func (e *Editor) ClearAll() {
	e.manager.Execute(e.factory.ClearAll())
	e.log.Info("cleared diagram")
}

// CreateGroup groups the listed nodes under a fresh group id. The command is
// built before the grouping layer is touched, so undo restores the pre-group
// state.
func (e *Editor) CreateGroup(label string, nodeIDs []string) (store.Group, error) {
	if len(nodeIDs) == 0 {
		return store.Group{}, ErrEmptyGroup
	}
	for _, id := range nodeIDs {
		if _, ok := e.stores.Graph.NodeByID(id); !ok {
			return store.Group{}, fmt.Errorf("grouping node %s: %w", id, ErrNodeNotFound)
		}
	}

	group := store.Group{ID: uuid.NewString(), Label: label, NodeIDs: nodeIDs}
	cmd := e.factory.CreateGroup(group.ID, nodeIDs)
	e.stores.Groups.CreateGroup(group)
	e.manager.Execute(cmd)

	e.log.Debug("created group %s with %d nodes", group.ID, len(nodeIDs))
	return group, nil
}

// DeleteGroup dissolves the named group. The removed group's payload is
// recorded on the command.
func (e *Editor) DeleteGroup(groupID string) error {
	group, ok := e.stores.Groups.GroupByID(groupID)
	if !ok {
		return fmt.Errorf("deleting group %s: %w", groupID, store.ErrGroupNotFound)
	}

	payload, err := json.Marshal(group)
	if err != nil {
		return fmt.Errorf("encoding group %s: %w", groupID, err)
	}

	cmd := e.factory.DeleteGroup(groupID, payload)
	if _, err := e.stores.Groups.DeleteGroup(groupID); err != nil {
		return fmt.Errorf("deleting group %s: %w", groupID, err)
	}
	e.manager.Execute(cmd)

	return nil
}

// AddStroke draws a freehand stroke. Strokes are not individually undoable;
// they are captured into the next command's bundle and revert with it.
func (e *Editor) AddStroke(stroke store.Stroke) store.Stroke {
	if stroke.ID == "" {
		stroke.ID = uuid.NewString()
	}
	e.stores.Drawing.AddStroke(stroke)
	return stroke
}

// SetParameter inserts or updates a named parameter. Like strokes, parameter
// edits ride along in the next command's bundle.
func (e *Editor) SetParameter(p store.Parameter) {
	e.stores.Parameters.Set(p)
}

// DeleteParameter removes a named parameter.
func (e *Editor) DeleteParameter(name string) bool {
	return e.stores.Parameters.Delete(name)
}

// Undo reverts the most recent command. It reports whether anything was
// undone.
func (e *Editor) Undo() bool {
	ok := e.manager.Undo()
	if ok {
		e.log.Debug("undo")
	}
	return ok
}

// Redo re-applies the most recently undone command.
func (e *Editor) Redo() bool {
	ok := e.manager.Redo()
	if ok {
		e.log.Debug("redo")
	}
	return ok
}

// CanUndo reports whether an undo is available.
func (e *Editor) CanUndo() bool { return e.manager.CanUndo() }

// CanRedo reports whether a redo is available.
func (e *Editor) CanRedo() bool { return e.manager.CanRedo() }

// ClearHistory discards the history log without touching live state.
func (e *Editor) ClearHistory() { e.manager.Clear() }

// UndoList lists the undoable commands, oldest first.
func (e *Editor) UndoList() []history.Info { return e.manager.UndoList() }

// RedoList lists the redoable commands, oldest first.
func (e *Editor) RedoList() []history.Info { return e.manager.RedoList() }
