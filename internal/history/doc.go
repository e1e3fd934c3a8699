// Package history provides the command-based undo/redo engine for the
// diagram editor.
//
// Every user edit is expressed as a Command: a reversible, self-contained
// description of one change with a forward transform (Execute) and a backward
// transform (Undo). Commands capture a complete StateBundle of all five
// editor domains (nodes, edges, drawing, groups, parameters) before the edit
// is applied, so Undo is a single unconditional restore rather than a reverse
// computation.
//
// # State access
//
// The engine never touches host state directly. It reads and writes the live
// stores through a StateAccess value: ten injected functions, five getters
// and five setters. This keeps the engine free of dependencies on the graph,
// drawing, grouping, and parameter implementations.
//
// # Commands
//
// The Factory builds one command per edit kind:
//
//	fac := history.NewFactory(access)
//	cmd := fac.AddNode(node)
//
// Execute is defined against whatever is live at the moment it runs, so redo
// reproduces the identical forward transition after an undo has restored the
// captured state. Undo always returns the one captured pre-edit bundle, no
// matter how many times the cursor revisits the command.
//
// # Manager
//
// The Manager owns the ordered command list and a cursor:
//
//	mgr := history.NewManager(access)
//	mgr.Execute(cmd)
//	mgr.Undo()
//	mgr.Redo()
//
// Executing a new command after one or more undos discards the redo branch.
// History is bounded; the oldest commands are evicted once the limit is
// exceeded.
//
// All operations are synchronous and run to completion within one caller.
// The manager must not be re-entered from within a getter or setter.
package history
