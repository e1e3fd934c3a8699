package store

import (
	"encoding/json"
	"sync"

	"github.com/saulojdsf/WebCDU-sub001/internal/diagram"
)

// Stroke is one freehand mark on the drawing layer.
type Stroke struct {
	ID     string             `json:"id"`
	Color  string             `json:"color"`
	Width  float64            `json:"width"`
	Points []diagram.Position `json:"points"`
}

// DrawingStore owns the freehand drawing layer. The history engine sees its
// contents only as an opaque blob through Data and SetData.
type DrawingStore struct {
	mu      sync.RWMutex
	strokes []Stroke
}

// NewDrawingStore creates an empty drawing store.
func NewDrawingStore() *DrawingStore {
	return &DrawingStore{}
}

// AddStroke appends a stroke to the drawing layer.
func (s *DrawingStore) AddStroke(stroke Stroke) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strokes = append(s.strokes, stroke)
}

// Strokes returns a copy of the stroke list.
func (s *DrawingStore) Strokes() []Stroke {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Stroke, len(s.strokes))
	for i, st := range s.strokes {
		st.Points = append([]diagram.Position(nil), st.Points...)
		out[i] = st
	}
	return out
}

// StrokeCount returns the number of strokes.
func (s *DrawingStore) StrokeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.strokes)
}

// Data serializes the drawing layer to an opaque blob. An empty layer
// serializes to nil.
func (s *DrawingStore) Data() diagram.Blob {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.strokes) == 0 {
		return nil
	}
	data, err := json.Marshal(s.strokes)
	if err != nil {
		return nil
	}
	return data
}

// SetData restores the drawing layer from a blob previously produced by
// Data. A nil blob resets the layer to empty. A blob that does not parse is
// treated as empty; blobs produced by Data always round-trip.
func (s *DrawingStore) SetData(b diagram.Blob) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(b) == 0 {
		s.strokes = nil
		return
	}

	var strokes []Stroke
	if err := json.Unmarshal(b, &strokes); err != nil {
		s.strokes = nil
		return
	}
	s.strokes = strokes
}
