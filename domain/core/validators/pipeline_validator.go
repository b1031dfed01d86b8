package validators

import (
	"pipeline-backend/domain/core/aggregates"
	"pipeline-backend/domain/core/entities"
	"pipeline-backend/pkg/errors"
)

// PipelineValidator builds a graph aggregate from raw node and edge records,
// enforcing the pipeline validation rules. It is the only producer of Graph
// values, so downstream consumers never see a malformed graph.
//
// Edges must reference declared nodes: an edge whose source or target does
// not resolve fails the whole request rather than being silently dropped.
type PipelineValidator struct{}

// NewPipelineValidator creates a new pipeline validator
func NewPipelineValidator() *PipelineValidator {
	return &PipelineValidator{}
}

// Build validates the raw records in input order and assembles the graph.
// The first violation aborts the build; no partial graph is returned.
func (v *PipelineValidator) Build(nodes, edges []interface{}) (*aggregates.Graph, error) {
	graph := aggregates.NewGraph()

	for i, raw := range nodes {
		record, err := entities.ParseNodeRecord(raw)
		if err != nil {
			return nil, v.nodeError(i, err)
		}

		if err := graph.AddNode(record.ID()); err != nil {
			if errors.Is(err, aggregates.ErrDuplicateNode) {
				return nil, errors.NewDuplicateNodeIDError(i, record.ID().String())
			}
			return nil, errors.Wrapf(err, "registering node %d", i)
		}
	}

	for i, raw := range edges {
		record, err := entities.ParseEdgeRecord(raw)
		if err != nil {
			return nil, v.edgeError(i, err)
		}

		if !graph.HasNode(record.Source()) {
			return nil, errors.NewUnknownEndpointError(i, record.Source().String())
		}
		if !graph.HasNode(record.Target()) {
			return nil, errors.NewUnknownEndpointError(i, record.Target().String())
		}

		if err := graph.AddEdge(record.Source(), record.Target()); err != nil {
			return nil, errors.Wrapf(err, "registering edge %d", i)
		}
	}

	return graph, nil
}

func (v *PipelineValidator) nodeError(index int, err error) error {
	switch {
	case errors.Is(err, entities.ErrNotRecord):
		return errors.NewMalformedNodeError(index)
	case errors.Is(err, entities.ErrMissingID):
		return errors.NewMissingNodeIDError(index)
	default:
		return errors.Wrapf(err, "parsing node %d", index)
	}
}

func (v *PipelineValidator) edgeError(index int, err error) error {
	switch {
	case errors.Is(err, entities.ErrNotRecord):
		return errors.NewMalformedEdgeError(index)
	case errors.Is(err, entities.ErrMissingSource):
		return errors.NewMissingEndpointError(index, errors.EndpointSource)
	case errors.Is(err, entities.ErrMissingTarget):
		return errors.NewMissingEndpointError(index, errors.EndpointTarget)
	default:
		return errors.Wrapf(err, "parsing edge %d", index)
	}
}
