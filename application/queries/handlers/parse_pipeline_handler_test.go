package handlers

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pipeline-backend/application/queries"
	"pipeline-backend/domain/core/validators"
	"pipeline-backend/domain/services"
	"pipeline-backend/pkg/errors"
	"pipeline-backend/pkg/observability"
)

func newHandler() *ParsePipelineHandler {
	h, _ := newHandlerWithMetrics()
	return h
}

func newHandlerWithMetrics() (*ParsePipelineHandler, *observability.Collector) {
	collector := observability.NewCollector("test")
	return NewParsePipelineHandler(
		validators.NewPipelineValidator(),
		services.NewCycleDetector(),
		collector,
		zap.NewNop(),
	), collector
}

func rawNode(id string) interface{} {
	return map[string]interface{}{"id": id}
}

func rawEdge(source, target string) interface{} {
	return map[string]interface{}{"source": source, "target": target}
}

func TestHandleEmptyPipeline(t *testing.T) {
	h := newHandler()

	result, err := h.Handle(context.Background(), queries.ParsePipelineQuery{
		Nodes: []interface{}{},
		Edges: []interface{}{},
	})
	require.NoError(t, err)

	metrics, ok := result.(queries.PipelineMetrics)
	require.True(t, ok)
	assert.Equal(t, 0, metrics.NumNodes)
	assert.Equal(t, 0, metrics.NumEdges)
	assert.True(t, metrics.IsDAG)
}

func TestHandleCountsReflectRawInput(t *testing.T) {
	h := newHandler()

	result, err := h.Handle(context.Background(), queries.ParsePipelineQuery{
		Nodes: []interface{}{rawNode("a"), rawNode("b"), rawNode("c"), rawNode("d")},
		Edges: []interface{}{rawEdge("a", "b"), rawEdge("a", "c"), rawEdge("b", "d"), rawEdge("c", "d")},
	})
	require.NoError(t, err)

	metrics := result.(queries.PipelineMetrics)
	assert.Equal(t, 4, metrics.NumNodes)
	assert.Equal(t, 4, metrics.NumEdges)
	assert.True(t, metrics.IsDAG)
}

func TestHandleCyclicPipeline(t *testing.T) {
	h := newHandler()

	result, err := h.Handle(context.Background(), queries.ParsePipelineQuery{
		Nodes: []interface{}{rawNode("a"), rawNode("b"), rawNode("c")},
		Edges: []interface{}{rawEdge("a", "b"), rawEdge("b", "c"), rawEdge("c", "a")},
	})
	require.NoError(t, err)

	metrics := result.(queries.PipelineMetrics)
	assert.Equal(t, 3, metrics.NumNodes)
	assert.Equal(t, 3, metrics.NumEdges)
	assert.False(t, metrics.IsDAG)
}

func TestHandleValidationFailureIsTerminal(t *testing.T) {
	h := newHandler()

	result, err := h.Handle(context.Background(), queries.ParsePipelineQuery{
		Nodes: []interface{}{rawNode("a"), rawNode("a")},
		Edges: []interface{}{},
	})
	assert.Nil(t, result)

	vErr := errors.GetValidationError(err)
	require.NotNil(t, vErr)
	assert.Equal(t, errors.KindDuplicateNodeID, vErr.Kind)
}

func TestHandleRecordsOutcomeMetrics(t *testing.T) {
	h, collector := newHandlerWithMetrics()
	ctx := context.Background()

	_, err := h.Handle(ctx, queries.ParsePipelineQuery{
		Nodes: []interface{}{rawNode("a")},
		Edges: []interface{}{},
	})
	require.NoError(t, err)

	_, err = h.Handle(ctx, queries.ParsePipelineQuery{
		Nodes: []interface{}{rawNode("a"), rawNode("a")},
		Edges: []interface{}{},
	})
	require.Error(t, err)

	// Validation failures count as invalid, never as internal errors
	assert.Equal(t, float64(1), testutil.ToFloat64(collector.ParseRequests.WithLabelValues(observability.ResultOK)))
	assert.Equal(t, float64(1), testutil.ToFloat64(collector.ParseRequests.WithLabelValues(observability.ResultInvalid)))
	assert.Equal(t, float64(0), testutil.ToFloat64(collector.ParseRequests.WithLabelValues(observability.ResultError)))
}

func TestHandleRejectsWrongQueryType(t *testing.T) {
	h := newHandler()

	_, err := h.Handle(context.Background(), fakeQuery{})
	assert.Error(t, err)
}

type fakeQuery struct{}

func (fakeQuery) Validate() error { return nil }
