// Package diagram defines the leaf data types shared across the editor core:
// nodes, edges, opaque subsystem blobs, and the StateBundle snapshot that the
// history engine captures and restores.
package diagram

// Position is a point on the canvas.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is one typed block on the canvas. Insertion order in the node list is
// the paint order as seen by the host.
type Node struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Position Position       `json:"position"`
	Data     map[string]any `json:"data,omitempty"`
}

// Edge connects two nodes. Source and Target reference node IDs; referential
// integrity is the graph store's responsibility, not enforced here.
type Edge struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle string `json:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty"`
}

// Blob is an opaque payload owned and interpreted by a collaborating
// subsystem (drawing layer, grouping layer, parameter table). The history
// engine copies and restores blobs verbatim. A nil blob is the subsystem's
// empty state.
type Blob []byte

// Clone returns an independent copy of the blob.
func (b Blob) Clone() Blob {
	if b == nil {
		return nil
	}
	out := make(Blob, len(b))
	copy(out, b)
	return out
}
