// Package store holds the live, in-memory stores for the five editor
// domains. Each store exposes the narrow getter/setter surface the history
// engine binds to, plus the domain operations the host uses directly.
//
// Stores copy on both read and write: values handed out are caller-owned,
// and values handed in are never aliased afterwards. Captured history
// bundles stay pristine no matter how the live state evolves.
package store

import (
	"sync"

	"github.com/saulojdsf/WebCDU-sub001/internal/diagram"
)

// GraphStore owns the ordered node and edge lists. Order is paint order.
type GraphStore struct {
	mu    sync.RWMutex
	nodes []diagram.Node
	edges []diagram.Edge
}

// NewGraphStore creates an empty graph store.
func NewGraphStore() *GraphStore {
	return &GraphStore{}
}

// Nodes returns a copy of the node list.
func (s *GraphStore) Nodes() []diagram.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]diagram.Node(nil), s.nodes...)
}

// SetNodes replaces the node list.
func (s *GraphStore) SetNodes(nodes []diagram.Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = append([]diagram.Node(nil), nodes...)
}

// Edges returns a copy of the edge list.
func (s *GraphStore) Edges() []diagram.Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]diagram.Edge(nil), s.edges...)
}

// SetEdges replaces the edge list.
func (s *GraphStore) SetEdges(edges []diagram.Edge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edges = append([]diagram.Edge(nil), edges...)
}

// NodeByID returns the node with the given id.
func (s *GraphStore) NodeByID(id string) (diagram.Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range s.nodes {
		if n.ID == id {
			return n, true
		}
	}
	return diagram.Node{}, false
}

// EdgeByID returns the edge with the given id.
func (s *GraphStore) EdgeByID(id string) (diagram.Edge, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.edges {
		if e.ID == id {
			return e, true
		}
	}
	return diagram.Edge{}, false
}

// NodeCount returns the number of nodes.
func (s *GraphStore) NodeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}

// EdgeCount returns the number of edges.
func (s *GraphStore) EdgeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.edges)
}
