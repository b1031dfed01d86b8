package entities

import (
	"errors"

	"pipeline-backend/domain/core/valueobjects"
)

// Raw node and edge records arrive from the transport layer as loosely-typed
// JSON values. Parsing into typed records happens here, in one place, so the
// rest of the domain never probes dynamic fields.

// Record field names expected on incoming payloads.
const (
	FieldID     = "id"
	FieldSource = "source"
	FieldTarget = "target"
)

// Sentinel errors returned by record parsing. The pipeline validator maps
// these onto the request-level error taxonomy with the offending index.
var (
	ErrNotRecord     = errors.New("entry is not a structured record")
	ErrMissingID     = errors.New("record has no usable id field")
	ErrMissingSource = errors.New("edge has no usable source field")
	ErrMissingTarget = errors.New("edge has no usable target field")
)

// NodeRecord is a parsed node entry: an identifier plus whatever payload the
// client attached. The payload is carried but never interpreted.
type NodeRecord struct {
	id    valueobjects.NodeID
	attrs map[string]interface{}
}

// EdgeRecord is a parsed edge entry: source and target identifiers plus
// optional metadata.
type EdgeRecord struct {
	source valueobjects.NodeID
	target valueobjects.NodeID
	attrs  map[string]interface{}
}

// ParseNodeRecord parses one raw node entry.
func ParseNodeRecord(raw interface{}) (NodeRecord, error) {
	attrs, ok := raw.(map[string]interface{})
	if !ok {
		return NodeRecord{}, ErrNotRecord
	}

	id, err := valueobjects.CoerceNodeID(attrs[FieldID])
	if err != nil {
		return NodeRecord{}, ErrMissingID
	}

	return NodeRecord{id: id, attrs: attrs}, nil
}

// ParseEdgeRecord parses one raw edge entry. Source and target are checked
// independently so the caller can report which endpoint was missing.
func ParseEdgeRecord(raw interface{}) (EdgeRecord, error) {
	attrs, ok := raw.(map[string]interface{})
	if !ok {
		return EdgeRecord{}, ErrNotRecord
	}

	source, err := valueobjects.CoerceNodeID(attrs[FieldSource])
	if err != nil {
		return EdgeRecord{}, ErrMissingSource
	}

	target, err := valueobjects.CoerceNodeID(attrs[FieldTarget])
	if err != nil {
		return EdgeRecord{}, ErrMissingTarget
	}

	return EdgeRecord{source: source, target: target, attrs: attrs}, nil
}

// ID returns the node identifier
func (n NodeRecord) ID() valueobjects.NodeID {
	return n.id
}

// Attrs returns the raw payload carried by the node entry
func (n NodeRecord) Attrs() map[string]interface{} {
	return n.attrs
}

// Source returns the edge source identifier
func (e EdgeRecord) Source() valueobjects.NodeID {
	return e.source
}

// Target returns the edge target identifier
func (e EdgeRecord) Target() valueobjects.NodeID {
	return e.target
}

// Attrs returns the raw metadata carried by the edge entry
func (e EdgeRecord) Attrs() map[string]interface{} {
	return e.attrs
}
