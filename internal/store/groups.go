package store

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/saulojdsf/WebCDU-sub001/internal/diagram"
)

// ErrGroupNotFound indicates the named group does not exist.
var ErrGroupNotFound = errors.New("group not found")

// Group is a named collection of node ids.
type Group struct {
	ID      string   `json:"id"`
	Label   string   `json:"label,omitempty"`
	NodeIDs []string `json:"nodeIds"`
}

// GroupStore owns the node-grouping layer. The history engine sees its
// contents only as an opaque blob; the host mutates groups through
// CreateGroup and DeleteGroup before recording the corresponding command.
type GroupStore struct {
	mu     sync.RWMutex
	groups []Group
}

// NewGroupStore creates an empty group store.
func NewGroupStore() *GroupStore {
	return &GroupStore{}
}

// CreateGroup adds a group. Node membership is taken as given; validating
// that the ids exist is the caller's concern.
func (s *GroupStore) CreateGroup(g Group) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g.NodeIDs = append([]string(nil), g.NodeIDs...)
	s.groups = append(s.groups, g)
}

// DeleteGroup removes the named group and returns its payload.
func (s *GroupStore) DeleteGroup(id string) (Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, g := range s.groups {
		if g.ID == id {
			s.groups = append(s.groups[:i], s.groups[i+1:]...)
			return g, nil
		}
	}
	return Group{}, ErrGroupNotFound
}

// GroupByID returns the named group.
func (s *GroupStore) GroupByID(id string) (Group, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, g := range s.groups {
		if g.ID == id {
			g.NodeIDs = append([]string(nil), g.NodeIDs...)
			return g, true
		}
	}
	return Group{}, false
}

// Groups returns a copy of the group list.
func (s *GroupStore) Groups() []Group {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Group, len(s.groups))
	for i, g := range s.groups {
		g.NodeIDs = append([]string(nil), g.NodeIDs...)
		out[i] = g
	}
	return out
}

// Data serializes the grouping layer to an opaque blob. An empty layer
// serializes to nil.
func (s *GroupStore) Data() diagram.Blob {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.groups) == 0 {
		return nil
	}
	data, err := json.Marshal(s.groups)
	if err != nil {
		return nil
	}
	return data
}

// SetData restores the grouping layer from a blob previously produced by
// Data. A nil blob resets the layer to empty.
func (s *GroupStore) SetData(b diagram.Blob) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(b) == 0 {
		s.groups = nil
		return
	}

	var groups []Group
	if err := json.Unmarshal(b, &groups); err != nil {
		s.groups = nil
		return
	}
	s.groups = groups
}
