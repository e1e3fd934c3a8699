// Package script embeds a Lua interpreter for diagram automation. Scripts
// drive the editor through a `cdu` module, so bulk edits and test fixtures
// can be expressed as plain Lua files.
package script

import (
	"errors"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/saulojdsf/WebCDU-sub001/internal/app"
	"github.com/saulojdsf/WebCDU-sub001/internal/diagram"
	"github.com/saulojdsf/WebCDU-sub001/internal/store"
)

// ErrEngineClosed is returned when a closed engine is used.
var ErrEngineClosed = errors.New("script engine closed")

// Engine runs Lua scripts against an editor.
//
// gopher-lua's LState is not goroutine-safe; the mutex serializes all entry
// points, and scripts themselves run single-threaded.
type Engine struct {
	mu     sync.Mutex
	L      *lua.LState
	editor *app.Editor
	closed bool
}

// New creates an engine bound to the given editor. Only the base, table,
// string, and math libraries are opened; io, os, and debug stay out of reach
// of scripts.
func New(editor *app.Editor) *Engine {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	e := &Engine{L: L, editor: editor}
	e.registerModule()
	return e
}

// RunFile executes a Lua script from disk.
func (e *Engine) RunFile(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEngineClosed
	}
	return e.runWithRecovery(func() error { return e.L.DoFile(path) })
}

// RunString executes Lua source held in a string.
func (e *Engine) RunString(code string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEngineClosed
	}
	return e.runWithRecovery(func() error { return e.L.DoString(code) })
}

func (e *Engine) runWithRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// Close releases the Lua state. Safe to call more than once.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.L.Close()
	e.closed = true
}

// registerModule installs the `cdu` module into the Lua state.
func (e *Engine) registerModule() {
	funcs := map[string]lua.LGFunction{
		"add_node":     e.luaAddNode,
		"delete_nodes": e.luaDeleteNodes,
		"move_node":    e.luaMoveNode,
		"connect":      e.luaConnect,
		"delete_edges": e.luaDeleteEdges,
		"update_node":  e.luaUpdateNode,
		"clear":        e.luaClear,
		"group":        e.luaGroup,
		"ungroup":      e.luaUngroup,
		"stroke":       e.luaStroke,
		"set_param":    e.luaSetParam,
		"delete_param": e.luaDeleteParam,
		"undo":         e.luaUndo,
		"redo":         e.luaRedo,
		"can_undo":     e.luaCanUndo,
		"can_redo":     e.luaCanRedo,
		"node_count":   e.luaNodeCount,
		"edge_count":   e.luaEdgeCount,
		"save":         e.luaSave,
		"load":         e.luaLoad,
	}
	mod := e.L.SetFuncs(e.L.NewTable(), funcs)
	e.L.SetGlobal("cdu", mod)
}

// cdu.add_node(type, x, y [, data]) -> id
func (e *Engine) luaAddNode(L *lua.LState) int {
	node := diagram.Node{
		Type: L.CheckString(1),
		Position: diagram.Position{
			X: float64(L.CheckNumber(2)),
			Y: float64(L.CheckNumber(3)),
		},
	}
	if L.GetTop() >= 4 {
		node.Data = tableToData(L.CheckTable(4))
	}

	node = e.editor.AddNode(node)
	L.Push(lua.LString(node.ID))
	return 1
}

// cdu.delete_nodes(ids)
func (e *Engine) luaDeleteNodes(L *lua.LState) int {
	e.editor.DeleteNodes(tableToStrings(L.CheckTable(1)))
	return 0
}

// cdu.move_node(id, x, y)
func (e *Engine) luaMoveNode(L *lua.LState) int {
	id := L.CheckString(1)
	to := map[string]diagram.Position{
		id: {X: float64(L.CheckNumber(2)), Y: float64(L.CheckNumber(3))},
	}
	if err := e.editor.MoveNodes(to); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

// cdu.connect(source, target [, sourceHandle, targetHandle]) -> id
func (e *Engine) luaConnect(L *lua.LState) int {
	edge := diagram.Edge{
		Source: L.CheckString(1),
		Target: L.CheckString(2),
	}
	if L.GetTop() >= 3 {
		edge.SourceHandle = L.CheckString(3)
	}
	if L.GetTop() >= 4 {
		edge.TargetHandle = L.CheckString(4)
	}

	edge, err := e.editor.Connect(edge)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(lua.LString(edge.ID))
	return 1
}

// cdu.delete_edges(ids)
func (e *Engine) luaDeleteEdges(L *lua.LState) int {
	e.editor.DeleteEdges(tableToStrings(L.CheckTable(1)))
	return 0
}

// cdu.update_node(id, data)
func (e *Engine) luaUpdateNode(L *lua.LState) int {
	id := L.CheckString(1)
	data := tableToData(L.CheckTable(2))
	if err := e.editor.UpdateNodeData(id, data); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

// cdu.clear()
func (e *Engine) luaClear(L *lua.LState) int {
	e.editor.ClearAll()
	return 0
}

// cdu.group(label, ids) -> id
func (e *Engine) luaGroup(L *lua.LState) int {
	label := L.CheckString(1)
	ids := tableToStrings(L.CheckTable(2))

	group, err := e.editor.CreateGroup(label, ids)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(lua.LString(group.ID))
	return 1
}

// cdu.ungroup(id)
func (e *Engine) luaUngroup(L *lua.LState) int {
	if err := e.editor.DeleteGroup(L.CheckString(1)); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

// cdu.stroke(color, width, points) -> id
// points is a flat array of alternating x and y coordinates.
func (e *Engine) luaStroke(L *lua.LState) int {
	stroke := store.Stroke{
		Color: L.CheckString(1),
		Width: float64(L.CheckNumber(2)),
	}

	coords := L.CheckTable(3)
	n := coords.Len()
	if n%2 != 0 {
		L.RaiseError("stroke points must pair up: got %d coordinates", n)
		return 0
	}
	for i := 1; i <= n; i += 2 {
		stroke.Points = append(stroke.Points, diagram.Position{
			X: float64(lua.LVAsNumber(coords.RawGetInt(i))),
			Y: float64(lua.LVAsNumber(coords.RawGetInt(i + 1))),
		})
	}

	stroke = e.editor.AddStroke(stroke)
	L.Push(lua.LString(stroke.ID))
	return 1
}

// cdu.set_param(name, value [, description])
func (e *Engine) luaSetParam(L *lua.LState) int {
	p := store.Parameter{
		Name:  L.CheckString(1),
		Value: L.CheckString(2),
	}
	if L.GetTop() >= 3 {
		p.Description = L.CheckString(3)
	}
	e.editor.SetParameter(p)
	return 0
}

// cdu.delete_param(name) -> bool
func (e *Engine) luaDeleteParam(L *lua.LState) int {
	L.Push(lua.LBool(e.editor.DeleteParameter(L.CheckString(1))))
	return 1
}

// cdu.undo() -> bool
func (e *Engine) luaUndo(L *lua.LState) int {
	L.Push(lua.LBool(e.editor.Undo()))
	return 1
}

// cdu.redo() -> bool
func (e *Engine) luaRedo(L *lua.LState) int {
	L.Push(lua.LBool(e.editor.Redo()))
	return 1
}

// cdu.can_undo() -> bool
func (e *Engine) luaCanUndo(L *lua.LState) int {
	L.Push(lua.LBool(e.editor.CanUndo()))
	return 1
}

// cdu.can_redo() -> bool
func (e *Engine) luaCanRedo(L *lua.LState) int {
	L.Push(lua.LBool(e.editor.CanRedo()))
	return 1
}

// cdu.node_count() -> number
func (e *Engine) luaNodeCount(L *lua.LState) int {
	L.Push(lua.LNumber(e.editor.Stores().Graph.NodeCount()))
	return 1
}

// cdu.edge_count() -> number
func (e *Engine) luaEdgeCount(L *lua.LState) int {
	L.Push(lua.LNumber(e.editor.Stores().Graph.EdgeCount()))
	return 1
}

// cdu.save(path)
func (e *Engine) luaSave(L *lua.LState) int {
	if err := e.editor.SaveDocument(L.CheckString(1)); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

// cdu.load(path)
func (e *Engine) luaLoad(L *lua.LState) int {
	if err := e.editor.LoadDocument(L.CheckString(1)); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}
