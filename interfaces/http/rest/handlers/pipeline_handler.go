package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"

	"pipeline-backend/application/queries"
	"pipeline-backend/application/queries/bus"
	"pipeline-backend/pkg/common"
	"pipeline-backend/pkg/errors"
	"pipeline-backend/pkg/utils"

	"go.uber.org/zap"
)

// PipelineHandler handles pipeline-related HTTP requests
type PipelineHandler struct {
	queryBus     *bus.QueryBus
	errorHandler *errors.ErrorHandler
	maxBodyBytes int64
	maxNodes     int
	maxEdges     int
	logger       *zap.Logger
}

// NewPipelineHandler creates a new pipeline handler
func NewPipelineHandler(
	queryBus *bus.QueryBus,
	errorHandler *errors.ErrorHandler,
	maxBodyBytes int64,
	maxNodes int,
	maxEdges int,
	logger *zap.Logger,
) *PipelineHandler {
	return &PipelineHandler{
		queryBus:     queryBus,
		errorHandler: errorHandler,
		maxBodyBytes: maxBodyBytes,
		maxNodes:     maxNodes,
		maxEdges:     maxEdges,
		logger:       logger,
	}
}

// parseRequest is the raw request body. Nodes and edges stay undecoded here
// so the top-level shape can be checked before any record is touched, and so
// the cache key can be derived from the exact bytes the client sent.
type parseRequest struct {
	Nodes json.RawMessage `json:"nodes"`
	Edges json.RawMessage `json:"edges"`
}

// parsePayload holds the decoded collections
type parsePayload struct {
	Nodes []interface{}
	Edges []interface{}
}

// ParsePipeline handles POST /pipelines/parse
func (h *PipelineHandler) ParsePipeline(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := common.ParseJSONBody(w, r, &req, h.maxBodyBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.errorHandler.Handle(w, r, errors.NewPayloadTooLargeError(h.maxBodyBytes))
			return
		}
		h.errorHandler.HandleStatus(w, r, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	// Both collections must be present as arrays before the core sees anything
	if len(req.Nodes) == 0 {
		h.errorHandler.HandleStatus(w, r, http.StatusBadRequest, "nodes collection is required")
		return
	}
	if len(req.Edges) == 0 {
		h.errorHandler.HandleStatus(w, r, http.StatusBadRequest, "edges collection is required")
		return
	}

	// JSON null unmarshals into a nil slice without error; it is not an
	// array and is rejected like any other wrong shape.
	var payload parsePayload
	if err := json.Unmarshal(req.Nodes, &payload.Nodes); err != nil || payload.Nodes == nil {
		h.errorHandler.HandleStatus(w, r, http.StatusBadRequest, "nodes must be an array")
		return
	}
	if err := json.Unmarshal(req.Edges, &payload.Edges); err != nil || payload.Edges == nil {
		h.errorHandler.HandleStatus(w, r, http.StatusBadRequest, "edges must be an array")
		return
	}

	// Configured size guardrails against abusive payloads, not domain rules
	if err := utils.ValidateVar("nodes", payload.Nodes, fmt.Sprintf("max=%d", h.maxNodes)); err != nil {
		h.errorHandler.HandleStatus(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	if err := utils.ValidateVar("edges", payload.Edges, fmt.Sprintf("max=%d", h.maxEdges)); err != nil {
		h.errorHandler.HandleStatus(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	query := queries.ParsePipelineQuery{
		Nodes:       payload.Nodes,
		Edges:       payload.Edges,
		PayloadHash: payloadHash(req.Nodes, req.Edges),
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := common.RespondJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// payloadHash digests the raw nodes and edges bytes for the cache key
func payloadHash(nodes, edges json.RawMessage) string {
	digest := sha256.New()
	digest.Write(nodes)
	digest.Write([]byte{0})
	digest.Write(edges)
	return hex.EncodeToString(digest.Sum(nil))
}
