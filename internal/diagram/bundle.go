package diagram

import (
	"fmt"

	"github.com/tiendc/go-deepcopy"
)

// BlobState carries an opaque subsystem payload together with whether the
// bundle includes that domain at all. A bundle synthesized without a domain
// (Present == false) leaves the live store untouched when applied; a present
// but nil payload resets the subsystem to its empty state.
type BlobState struct {
	Present bool
	Data    Blob
}

// CapturedBlob marks a blob as present in a bundle.
func CapturedBlob(data Blob) BlobState {
	return BlobState{Present: true, Data: data}
}

// StateBundle is a complete picture of all five editor domains at a point in
// time, never a partial diff. This is what makes undo a single unconditional
// assignment rather than a reverse computation.
type StateBundle struct {
	Nodes      []Node
	Edges      []Edge
	Drawing    BlobState
	Groups     BlobState
	Parameters BlobState
}

// Clone returns a deep copy of the bundle. Subsequent mutation of live state
// must never retroactively alter a captured bundle, so every capture goes
// through here.
func (b StateBundle) Clone() StateBundle {
	var out StateBundle
	if err := deepcopy.Copy(&out, &b); err != nil {
		// Only reachable with mismatched types, which cannot happen when
		// copying a value onto its own type.
		panic(fmt.Sprintf("diagram: clone state bundle: %v", err))
	}
	return out
}
