package store

import (
	"encoding/json"
	"sync"

	"github.com/saulojdsf/WebCDU-sub001/internal/diagram"
)

// Parameter is one named value in the parameter table, e.g. a block gain
// referenced by name from node data.
type Parameter struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

// ParameterStore owns the named-parameter table. The history engine sees its
// contents only as an opaque blob.
type ParameterStore struct {
	mu     sync.RWMutex
	params []Parameter
}

// NewParameterStore creates an empty parameter store.
func NewParameterStore() *ParameterStore {
	return &ParameterStore{}
}

// Set inserts or updates a parameter by name.
func (s *ParameterStore) Set(p Parameter) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.params {
		if s.params[i].Name == p.Name {
			s.params[i] = p
			return
		}
	}
	s.params = append(s.params, p)
}

// Delete removes the named parameter. It reports whether the parameter
// existed.
func (s *ParameterStore) Delete(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.params {
		if s.params[i].Name == name {
			s.params = append(s.params[:i], s.params[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the named parameter.
func (s *ParameterStore) Get(name string) (Parameter, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.params {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}

// Parameters returns a copy of the parameter table.
func (s *ParameterStore) Parameters() []Parameter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Parameter(nil), s.params...)
}

// Data serializes the parameter table to an opaque blob. An empty table
// serializes to nil.
func (s *ParameterStore) Data() diagram.Blob {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.params) == 0 {
		return nil
	}
	data, err := json.Marshal(s.params)
	if err != nil {
		return nil
	}
	return data
}

// SetData restores the parameter table from a blob previously produced by
// Data. A nil blob resets the table to empty.
func (s *ParameterStore) SetData(b diagram.Blob) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(b) == 0 {
		s.params = nil
		return
	}

	var params []Parameter
	if err := json.Unmarshal(b, &params); err != nil {
		s.params = nil
		return
	}
	s.params = params
}
