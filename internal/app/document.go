package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/saulojdsf/WebCDU-sub001/internal/diagram"
)

// Document is the on-disk form of a diagram: the graph plus the three opaque
// subsystem payloads.
type Document struct {
	Version    int             `json:"version"`
	Nodes      []diagram.Node  `json:"nodes"`
	Edges      []diagram.Edge  `json:"edges"`
	Drawing    json.RawMessage `json:"drawing,omitempty"`
	Groups     json.RawMessage `json:"groups,omitempty"`
	Parameters json.RawMessage `json:"parameters,omitempty"`
}

// documentVersion is the current document format version.
const documentVersion = 1

// Snapshot captures the live state as a document.
func (e *Editor) Snapshot() Document {
	return Document{
		Version:    documentVersion,
		Nodes:      e.stores.Graph.Nodes(),
		Edges:      e.stores.Graph.Edges(),
		Drawing:    json.RawMessage(e.stores.Drawing.Data()),
		Groups:     json.RawMessage(e.stores.Groups.Data()),
		Parameters: json.RawMessage(e.stores.Parameters.Data()),
	}
}

// Restore replaces the live state with the document's contents and discards
// the history log; a loaded document starts with a clean slate.
func (e *Editor) Restore(doc Document) {
	e.stores.Graph.SetNodes(doc.Nodes)
	e.stores.Graph.SetEdges(doc.Edges)
	e.stores.Drawing.SetData(diagram.Blob(doc.Drawing))
	e.stores.Groups.SetData(diagram.Blob(doc.Groups))
	e.stores.Parameters.SetData(diagram.Blob(doc.Parameters))
	e.manager.Clear()
}

// SaveDocument writes the live state to path as JSON.
func (e *Editor) SaveDocument(path string) error {
	data, err := json.MarshalIndent(e.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	e.log.Info("saved document to %s", path)
	return nil
}

// LoadDocument reads a document from path and restores it.
func (e *Editor) LoadDocument(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading document: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decoding document %s: %w", path, err)
	}
	e.Restore(doc)
	e.log.Info("loaded document from %s", path)
	return nil
}
