package handlers

import (
	"context"
	"fmt"
	"time"

	"pipeline-backend/application/queries"
	"pipeline-backend/application/queries/bus"
	"pipeline-backend/domain/core/validators"
	"pipeline-backend/domain/services"
	"pipeline-backend/pkg/errors"
	"pipeline-backend/pkg/observability"

	"go.uber.org/zap"
)

// ParsePipelineHandler handles ParsePipelineQuery: it builds the graph from
// the raw records and runs cycle detection over it. The whole computation is
// request-scoped; nothing is shared between invocations.
type ParsePipelineHandler struct {
	validator *validators.PipelineValidator
	detector  *services.CycleDetector
	metrics   *observability.Collector
	logger    *zap.Logger
}

// NewParsePipelineHandler creates a new parse pipeline handler
func NewParsePipelineHandler(
	validator *validators.PipelineValidator,
	detector *services.CycleDetector,
	metrics *observability.Collector,
	logger *zap.Logger,
) *ParsePipelineHandler {
	return &ParsePipelineHandler{
		validator: validator,
		detector:  detector,
		metrics:   metrics,
		logger:    logger,
	}
}

// Handle implements bus.QueryHandler
func (h *ParsePipelineHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.ParsePipelineQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	start := time.Now()

	graph, err := h.validator.Build(q.Nodes, q.Edges)
	if err != nil {
		result := observability.ResultInvalid
		if errors.GetValidationError(err) == nil {
			// Not part of the validation taxonomy: an implementation bug,
			// not a client error
			result = observability.ResultError
		}
		h.metrics.ObserveParse(time.Since(start), result, false)
		return nil, err
	}

	isDAG := h.detector.IsAcyclic(graph)
	h.metrics.ObserveParse(time.Since(start), observability.ResultOK, isDAG)

	h.logger.Debug("Pipeline parsed",
		zap.Int("num_nodes", len(q.Nodes)),
		zap.Int("num_edges", len(q.Edges)),
		zap.Bool("is_dag", isDAG),
		zap.Duration("duration", time.Since(start)),
	)

	// Counts reflect the raw input sizes, not what the graph retained.
	return queries.PipelineMetrics{
		NumNodes: len(q.Nodes),
		NumEdges: len(q.Edges),
		IsDAG:    isDAG,
	}, nil
}
