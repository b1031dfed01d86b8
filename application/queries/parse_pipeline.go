package queries

import (
	"errors"
)

// ParsePipelineQuery asks for the metrics of one pipeline payload. Nodes and
// Edges are the raw, already-deserialized collections from the request body;
// PayloadHash is a digest of the raw body computed by the transport layer and
// used as the cache key.
type ParsePipelineQuery struct {
	Nodes       []interface{}
	Edges       []interface{}
	PayloadHash string
}

// Validate validates the query
func (q ParsePipelineQuery) Validate() error {
	if q.Nodes == nil {
		return errors.New("nodes collection is required")
	}
	if q.Edges == nil {
		return errors.New("edges collection is required")
	}
	return nil
}

// CacheKey returns the cache key for this query
func (q ParsePipelineQuery) CacheKey() string {
	return "pipeline:parse:" + q.PayloadHash
}

// PipelineMetrics is the result of parsing a pipeline: raw input sizes plus
// the DAG verdict. NumNodes and NumEdges are the lengths of the input lists,
// not counts of what survived validation.
type PipelineMetrics struct {
	NumNodes int  `json:"num_nodes"`
	NumEdges int  `json:"num_edges"`
	IsDAG    bool `json:"is_dag"`
}
