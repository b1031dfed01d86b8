package errors

import (
	"fmt"
)

// ValidationKind categorizes pipeline validation failures. Every kind is
// terminal for the request: no partial graph or partial counts survive a
// failed build.
type ValidationKind string

const (
	// KindMalformedNode indicates a node entry that is not a structured record
	KindMalformedNode ValidationKind = "MALFORMED_NODE"

	// KindMissingNodeID indicates a node with no or empty identifier
	KindMissingNodeID ValidationKind = "MISSING_NODE_ID"

	// KindDuplicateNodeID indicates an identifier reused across nodes
	KindDuplicateNodeID ValidationKind = "DUPLICATE_NODE_ID"

	// KindMalformedEdge indicates an edge entry that is not a structured record
	KindMalformedEdge ValidationKind = "MALFORMED_EDGE"

	// KindMissingEndpoint indicates an edge lacking its source or target field
	KindMissingEndpoint ValidationKind = "MISSING_ENDPOINT"

	// KindUnknownEndpoint indicates an edge referencing a non-existent node ID
	KindUnknownEndpoint ValidationKind = "UNKNOWN_ENDPOINT"
)

// Endpoint names used by MissingEndpoint errors.
const (
	EndpointSource = "source"
	EndpointTarget = "target"
)

// PipelineValidationError is a domain error describing why a pipeline payload
// could not be built into a graph. Index is the position of the offending
// entry in the input list.
type PipelineValidationError struct {
	Kind     ValidationKind `json:"kind"`
	Index    int            `json:"index"`
	NodeID   string         `json:"node_id,omitempty"`
	Endpoint string         `json:"endpoint,omitempty"`
	Which    string         `json:"which,omitempty"`
}

// Error implements the error interface
func (e *PipelineValidationError) Error() string {
	switch e.Kind {
	case KindMalformedNode:
		return fmt.Sprintf("node at index %d is not a structured record", e.Index)
	case KindMissingNodeID:
		return fmt.Sprintf("node at index %d has no non-empty id", e.Index)
	case KindDuplicateNodeID:
		return fmt.Sprintf("node at index %d reuses id %q", e.Index, e.NodeID)
	case KindMalformedEdge:
		return fmt.Sprintf("edge at index %d is not a structured record", e.Index)
	case KindMissingEndpoint:
		return fmt.Sprintf("edge at index %d has no non-empty %s", e.Index, e.Which)
	case KindUnknownEndpoint:
		return fmt.Sprintf("edge at index %d references unknown node %q", e.Index, e.Endpoint)
	default:
		return fmt.Sprintf("pipeline validation failed at index %d", e.Index)
	}
}

// Is matches validation errors by kind
func (e *PipelineValidationError) Is(target error) bool {
	t, ok := target.(*PipelineValidationError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Details returns the caller-visible error context
func (e *PipelineValidationError) Details() map[string]interface{} {
	details := map[string]interface{}{
		"kind":  string(e.Kind),
		"index": e.Index,
	}
	if e.NodeID != "" {
		details["node_id"] = e.NodeID
	}
	if e.Endpoint != "" {
		details["endpoint"] = e.Endpoint
	}
	if e.Which != "" {
		details["which"] = e.Which
	}
	return details
}

// NewMalformedNodeError creates a MalformedNode validation error
func NewMalformedNodeError(index int) *PipelineValidationError {
	return &PipelineValidationError{Kind: KindMalformedNode, Index: index}
}

// NewMissingNodeIDError creates a MissingNodeID validation error
func NewMissingNodeIDError(index int) *PipelineValidationError {
	return &PipelineValidationError{Kind: KindMissingNodeID, Index: index}
}

// NewDuplicateNodeIDError creates a DuplicateNodeID validation error
func NewDuplicateNodeIDError(index int, nodeID string) *PipelineValidationError {
	return &PipelineValidationError{Kind: KindDuplicateNodeID, Index: index, NodeID: nodeID}
}

// NewMalformedEdgeError creates a MalformedEdge validation error
func NewMalformedEdgeError(index int) *PipelineValidationError {
	return &PipelineValidationError{Kind: KindMalformedEdge, Index: index}
}

// NewMissingEndpointError creates a MissingEndpoint validation error for the
// named endpoint field (source or target)
func NewMissingEndpointError(index int, which string) *PipelineValidationError {
	return &PipelineValidationError{Kind: KindMissingEndpoint, Index: index, Which: which}
}

// NewUnknownEndpointError creates an UnknownEndpoint validation error carrying
// the unresolved endpoint value
func NewUnknownEndpointError(index int, endpoint string) *PipelineValidationError {
	return &PipelineValidationError{Kind: KindUnknownEndpoint, Index: index, Endpoint: endpoint}
}

// GetValidationError extracts a PipelineValidationError from an error chain
func GetValidationError(err error) *PipelineValidationError {
	var vErr *PipelineValidationError
	if As(err, &vErr) {
		return vErr
	}
	return nil
}
