package history

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/saulojdsf/WebCDU-sub001/internal/diagram"
	"github.com/saulojdsf/WebCDU-sub001/internal/notify"
)

// liveState is a minimal in-test stand-in for the host's five stores. Getters
// hand out copies and setters store copies, matching the StateAccess
// contract.
type liveState struct {
	nodes      []diagram.Node
	edges      []diagram.Edge
	drawing    diagram.Blob
	groups     diagram.Blob
	parameters diagram.Blob
}

func (s *liveState) access() *StateAccess {
	return &StateAccess{
		GetNodes:      func() []diagram.Node { return append([]diagram.Node(nil), s.nodes...) },
		GetEdges:      func() []diagram.Edge { return append([]diagram.Edge(nil), s.edges...) },
		GetDrawing:    func() diagram.Blob { return s.drawing.Clone() },
		GetGroups:     func() diagram.Blob { return s.groups.Clone() },
		GetParameters: func() diagram.Blob { return s.parameters.Clone() },
		SetNodes:      func(nodes []diagram.Node) { s.nodes = append([]diagram.Node(nil), nodes...) },
		SetEdges:      func(edges []diagram.Edge) { s.edges = append([]diagram.Edge(nil), edges...) },
		SetDrawing:    func(b diagram.Blob) { s.drawing = b.Clone() },
		SetGroups:     func(b diagram.Blob) { s.groups = b.Clone() },
		SetParameters: func(b diagram.Blob) { s.parameters = b.Clone() },
	}
}

func node(id string, x, y float64) diagram.Node {
	return diagram.Node{ID: id, Type: "GANHO", Position: diagram.Position{X: x, Y: y}}
}

func edge(id, source, target string) diagram.Edge {
	return diagram.Edge{ID: id, Source: source, Target: target}
}

func nodeIDs(nodes []diagram.Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}

func TestManagerInitialState(t *testing.T) {
	live := &liveState{}
	m := NewManager(live.access())

	if m.CanUndo() {
		t.Error("fresh manager should not allow undo")
	}
	if m.CanRedo() {
		t.Error("fresh manager should not allow redo")
	}
	if m.Cursor() != -1 {
		t.Errorf("cursor = %d, want -1", m.Cursor())
	}
}

func TestExecuteAdvancesCursor(t *testing.T) {
	live := &liveState{}
	access := live.access()
	m := NewManager(access)
	fac := NewFactory(access)

	m.Execute(fac.AddNode(node("n1", 0, 0)))

	if !m.CanUndo() {
		t.Error("should allow undo after execute")
	}
	if m.CanRedo() {
		t.Error("should not allow redo after execute")
	}
}

func TestAddNodeUndoRedo(t *testing.T) {
	live := &liveState{}
	access := live.access()
	m := NewManager(access)
	fac := NewFactory(access)

	m.Execute(fac.AddNode(node("n1", 0, 0)))
	if len(live.nodes) != 1 || live.nodes[0].ID != "n1" {
		t.Fatalf("after execute: nodes = %v", nodeIDs(live.nodes))
	}

	if !m.Undo() {
		t.Fatal("undo returned false")
	}
	if len(live.nodes) != 0 {
		t.Fatalf("after undo: nodes = %v", nodeIDs(live.nodes))
	}

	if !m.Redo() {
		t.Fatal("redo returned false")
	}
	if len(live.nodes) != 1 || live.nodes[0].ID != "n1" {
		t.Fatalf("after redo: nodes = %v", nodeIDs(live.nodes))
	}
}

func TestDeleteNodesRemovesIncidentEdges(t *testing.T) {
	live := &liveState{
		nodes: []diagram.Node{node("n1", 0, 0), node("n2", 100, 0)},
		edges: []diagram.Edge{edge("e1", "n1", "n2")},
	}
	access := live.access()
	m := NewManager(access)
	fac := NewFactory(access)

	m.Execute(fac.DeleteNodes([]string{"n1"}))

	if got := nodeIDs(live.nodes); !reflect.DeepEqual(got, []string{"n2"}) {
		t.Errorf("nodes after delete = %v, want [n2]", got)
	}
	if len(live.edges) != 0 {
		t.Errorf("edge touching n1 should be removed, got %v", live.edges)
	}

	m.Undo()

	if got := nodeIDs(live.nodes); !reflect.DeepEqual(got, []string{"n1", "n2"}) {
		t.Errorf("nodes after undo = %v, want [n1 n2]", got)
	}
	if len(live.edges) != 1 || live.edges[0].ID != "e1" {
		t.Errorf("edges after undo = %v, want [e1]", live.edges)
	}
}

func TestMoveNodesRoundTrip(t *testing.T) {
	live := &liveState{nodes: []diagram.Node{node("n1", 0, 0)}}
	access := live.access()
	m := NewManager(access)
	fac := NewFactory(access)

	m.Execute(fac.MoveNodes(
		[]string{"n1"},
		map[string]diagram.Position{"n1": {X: 0, Y: 0}},
		map[string]diagram.Position{"n1": {X: 50, Y: 50}},
	))

	if live.nodes[0].Position != (diagram.Position{X: 50, Y: 50}) {
		t.Errorf("after move: position = %v", live.nodes[0].Position)
	}

	m.Undo()
	if live.nodes[0].Position != (diagram.Position{X: 0, Y: 0}) {
		t.Errorf("after undo: position = %v", live.nodes[0].Position)
	}

	m.Redo()
	if live.nodes[0].Position != (diagram.Position{X: 50, Y: 50}) {
		t.Errorf("after redo: position = %v", live.nodes[0].Position)
	}
}

func TestUndoRedoRestoresExactState(t *testing.T) {
	live := &liveState{
		nodes:      []diagram.Node{node("n1", 1, 2)},
		edges:      []diagram.Edge{edge("e1", "n1", "n1")},
		drawing:    diagram.Blob(`[{"id":"s1"}]`),
		parameters: diagram.Blob(`[{"name":"K","value":"1"}]`),
	}
	access := live.access()
	m := NewManager(access)
	fac := NewFactory(access)

	m.Execute(fac.AddNode(node("n2", 3, 4)))

	before := liveState{
		nodes:      append([]diagram.Node(nil), live.nodes...),
		edges:      append([]diagram.Edge(nil), live.edges...),
		drawing:    live.drawing.Clone(),
		parameters: live.parameters.Clone(),
	}

	m.Undo()
	m.Redo()

	if !reflect.DeepEqual(live.nodes, before.nodes) {
		t.Errorf("nodes diverged after undo+redo: %v vs %v", live.nodes, before.nodes)
	}
	if !reflect.DeepEqual(live.edges, before.edges) {
		t.Errorf("edges diverged after undo+redo: %v vs %v", live.edges, before.edges)
	}
	if string(live.drawing) != string(before.drawing) {
		t.Errorf("drawing diverged after undo+redo")
	}
	if string(live.parameters) != string(before.parameters) {
		t.Errorf("parameters diverged after undo+redo")
	}
}

func TestRedoBranchDiscard(t *testing.T) {
	live := &liveState{}
	access := live.access()
	m := NewManager(access)
	fac := NewFactory(access)

	m.Execute(fac.AddNode(node("n1", 0, 0)))
	m.Undo()

	if !m.CanRedo() {
		t.Fatal("should be able to redo after undo")
	}

	m.Execute(fac.AddNode(node("n2", 10, 10)))

	if m.CanRedo() {
		t.Error("redo branch should be discarded after new command")
	}
	if got := nodeIDs(live.nodes); !reflect.DeepEqual(got, []string{"n2"}) {
		t.Errorf("nodes = %v, want [n2]", got)
	}
	if m.Len() != 1 {
		t.Errorf("history length = %d, want 1", m.Len())
	}
}

func TestBoundedHistory(t *testing.T) {
	live := &liveState{}
	access := live.access()
	m := NewManager(access)
	fac := NewFactory(access)

	for i := 0; i < 60; i++ {
		m.Execute(fac.AddNode(node(fmt.Sprintf("n%d", i), 0, 0)))
	}

	if m.Len() != 50 {
		t.Fatalf("history length = %d, want 50", m.Len())
	}
	if len(live.nodes) != 60 {
		t.Fatalf("live nodes = %d, want 60", len(live.nodes))
	}

	undos := 0
	for m.Undo() {
		undos++
	}

	if undos != 50 {
		t.Errorf("performed %d undos, want 50", undos)
	}
	if m.CanUndo() {
		t.Error("undo should be exhausted")
	}
	// Only the retained 50 additions are reversible; the first 10 survive.
	if len(live.nodes) != 10 {
		t.Errorf("live nodes after exhausting undo = %d, want 10", len(live.nodes))
	}
}

func TestEvictionClampsCursor(t *testing.T) {
	live := &liveState{}
	access := live.access()
	m := NewManager(access, WithMaxEntries(3))
	fac := NewFactory(access)

	for i := 0; i < 5; i++ {
		m.Execute(fac.AddNode(node(fmt.Sprintf("n%d", i), 0, 0)))
	}

	if m.Len() != 3 {
		t.Errorf("history length = %d, want 3", m.Len())
	}
	if m.Cursor() != 2 {
		t.Errorf("cursor = %d, want 2", m.Cursor())
	}
}

func TestIdempotentUndoTarget(t *testing.T) {
	live := &liveState{nodes: []diagram.Node{node("n1", 5, 5)}}
	access := live.access()
	m := NewManager(access)
	fac := NewFactory(access)

	cmd := fac.AddNode(node("n2", 0, 0))
	first := cmd.Undo()
	m.Execute(cmd)

	// Walk the cursor back and forth over the same command repeatedly.
	for i := 0; i < 3; i++ {
		m.Undo()
		m.Redo()
	}
	m.Undo()

	again := cmd.Undo()
	if !reflect.DeepEqual(first.Nodes, again.Nodes) {
		t.Error("repeated Undo returned a different bundle")
	}
	if got := nodeIDs(live.nodes); !reflect.DeepEqual(got, []string{"n1"}) {
		t.Errorf("live nodes = %v, want [n1]", got)
	}
}

func TestUndoRedoNoOps(t *testing.T) {
	live := &liveState{}
	access := live.access()
	m := NewManager(access)

	if m.Undo() {
		t.Error("undo on empty history should report false")
	}
	if m.Redo() {
		t.Error("redo on empty history should report false")
	}
}

func TestClearKeepsLiveState(t *testing.T) {
	live := &liveState{}
	access := live.access()
	m := NewManager(access)
	fac := NewFactory(access)

	m.Execute(fac.AddNode(node("n1", 0, 0)))
	m.Clear()

	if m.CanUndo() || m.CanRedo() {
		t.Error("history should be empty after clear")
	}
	if len(live.nodes) != 1 {
		t.Error("clear must not touch live state")
	}
}

func TestClearAllResetsEveryDomain(t *testing.T) {
	live := &liveState{
		nodes:      []diagram.Node{node("n1", 0, 0)},
		edges:      []diagram.Edge{edge("e1", "n1", "n1")},
		drawing:    diagram.Blob(`[{"id":"s1"}]`),
		groups:     diagram.Blob(`[{"id":"g1"}]`),
		parameters: diagram.Blob(`[{"name":"K"}]`),
	}
	access := live.access()
	m := NewManager(access)
	fac := NewFactory(access)

	m.Execute(fac.ClearAll())

	if len(live.nodes) != 0 || len(live.edges) != 0 {
		t.Error("clear-all should empty the graph")
	}
	if live.drawing != nil || live.groups != nil || live.parameters != nil {
		t.Error("clear-all should reset every blob domain")
	}

	m.Undo()

	if len(live.nodes) != 1 || len(live.edges) != 1 {
		t.Error("undo of clear-all should restore the graph")
	}
	if string(live.drawing) != `[{"id":"s1"}]` {
		t.Errorf("drawing not restored: %s", live.drawing)
	}
	if string(live.groups) != `[{"id":"g1"}]` {
		t.Errorf("groups not restored: %s", live.groups)
	}
	if string(live.parameters) != `[{"name":"K"}]` {
		t.Errorf("parameters not restored: %s", live.parameters)
	}
}

func TestUndoRevertsNewerEditsInOtherDomains(t *testing.T) {
	// Restoring a full bundle also rewinds blob domains edited after the
	// command was captured. This mirrors the host application's behavior.
	live := &liveState{}
	access := live.access()
	m := NewManager(access)
	fac := NewFactory(access)

	m.Execute(fac.AddNode(node("n1", 0, 0)))
	live.drawing = diagram.Blob(`[{"id":"later"}]`)

	m.Undo()

	if live.drawing != nil {
		t.Errorf("drawing = %s, want nil (captured before the stroke)", live.drawing)
	}
}

func TestSetMaxEntriesEvicts(t *testing.T) {
	live := &liveState{}
	access := live.access()
	m := NewManager(access)
	fac := NewFactory(access)

	for i := 0; i < 10; i++ {
		m.Execute(fac.AddNode(node(fmt.Sprintf("n%d", i), 0, 0)))
	}

	m.SetMaxEntries(4)

	if m.Len() != 4 {
		t.Errorf("history length = %d, want 4", m.Len())
	}
	if m.Cursor() != 3 {
		t.Errorf("cursor = %d, want 3", m.Cursor())
	}

	m.SetMaxEntries(0) // Ignored.
	if m.MaxEntries() != 4 {
		t.Errorf("max entries = %d, want 4", m.MaxEntries())
	}
}

func TestUndoListRedoList(t *testing.T) {
	live := &liveState{}
	access := live.access()
	m := NewManager(access)
	fac := NewFactory(access)

	m.Execute(fac.AddNode(node("n1", 0, 0)))
	m.Execute(fac.AddNode(node("n2", 0, 0)))
	m.Undo()

	undoList := m.UndoList()
	if len(undoList) != 1 || undoList[0].Description != "Add node n1" {
		t.Errorf("undo list = %+v", undoList)
	}

	redoList := m.RedoList()
	if len(redoList) != 1 || redoList[0].Description != "Add node n2" {
		t.Errorf("redo list = %+v", redoList)
	}

	if undoList[0].ID == "" || undoList[0].Timestamp.IsZero() {
		t.Error("info should carry id and timestamp")
	}
	if undoList[0].Kind != KindAddNode {
		t.Errorf("kind = %v, want %v", undoList[0].Kind, KindAddNode)
	}
}

func TestPeekUndoRedo(t *testing.T) {
	live := &liveState{}
	access := live.access()
	m := NewManager(access)
	fac := NewFactory(access)

	if _, ok := m.PeekUndo(); ok {
		t.Error("peek undo on empty history should report false")
	}
	if _, ok := m.PeekRedo(); ok {
		t.Error("peek redo on empty history should report false")
	}

	m.Execute(fac.AddNode(node("n1", 0, 0)))

	info, ok := m.PeekUndo()
	if !ok || info.Description != "Add node n1" {
		t.Errorf("peek undo = %+v, %v", info, ok)
	}

	m.Undo()

	info, ok = m.PeekRedo()
	if !ok || info.Description != "Add node n1" {
		t.Errorf("peek redo = %+v, %v", info, ok)
	}
}

func TestManagerPublishesEvents(t *testing.T) {
	live := &liveState{}
	access := live.access()
	notifier := notify.New()
	m := NewManager(access, WithNotifier(notifier))
	fac := NewFactory(access)

	var events []notify.Event
	notifier.Subscribe(func(e notify.Event) { events = append(events, e) })

	m.Execute(fac.AddNode(node("n1", 0, 0)))
	m.Undo()
	m.Redo()
	m.Clear()

	types := make([]notify.Type, len(events))
	for i, e := range events {
		types[i] = e.Type
	}
	want := []notify.Type{notify.Executed, notify.Undone, notify.Redone, notify.Cleared}
	if !reflect.DeepEqual(types, want) {
		t.Fatalf("event types = %v, want %v", types, want)
	}

	if !events[0].CanUndo || events[0].CanRedo {
		t.Errorf("executed event state wrong: %+v", events[0])
	}
	if events[1].CanUndo || !events[1].CanRedo {
		t.Errorf("undone event state wrong: %+v", events[1])
	}
	if events[3].CanUndo || events[3].CanRedo {
		t.Errorf("cleared event state wrong: %+v", events[3])
	}
}
