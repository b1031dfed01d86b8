package rest

import (
	"net/http"

	"pipeline-backend/application/queries/bus"
	"pipeline-backend/infrastructure/config"
	"pipeline-backend/interfaces/http/rest/handlers"
	"pipeline-backend/interfaces/http/rest/middleware"
	"pipeline-backend/pkg/common"
	"pipeline-backend/pkg/errors"
	"pipeline-backend/pkg/observability"
	"pipeline-backend/pkg/ratelimit"
	"pipeline-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	cfg        *config.Config
	queryBus   *bus.QueryBus
	metrics    *observability.Collector
	limiter    *ratelimit.TokenBucketLimiter
	logger     *zap.Logger
	instanceID string
}

// NewRouter creates a new router instance
func NewRouter(
	cfg *config.Config,
	queryBus *bus.QueryBus,
	metrics *observability.Collector,
	limiter *ratelimit.TokenBucketLimiter,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:        cfg,
		queryBus:   queryBus,
		metrics:    metrics,
		limiter:    limiter,
		logger:     logger,
		instanceID: uuid.New().String(),
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	// CORS configuration
	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   rt.cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	// Ping and health endpoints
	router.Get("/", rt.ping)
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	// Prometheus metrics
	if rt.cfg.EnableMetrics {
		router.Handle("/metrics", rt.metrics.Handler())
	}

	// Pipeline endpoints
	router.Route("/pipelines", func(r chi.Router) {
		if rt.cfg.EnableRateLimit {
			r.Use(middleware.RateLimit(rt.limiter, rt.logger))
		}

		errorHandler := errors.NewErrorHandler(rt.logger, rt.cfg.IsDevelopment())
		pipelineHandler := handlers.NewPipelineHandler(
			rt.queryBus, errorHandler,
			rt.cfg.MaxBodyBytes, rt.cfg.MaxNodes, rt.cfg.MaxEdges,
			rt.logger,
		)
		r.Post("/parse", pipelineHandler.ParsePipeline)
	})

	return router
}

// ping handles GET / requests
func (rt *Router) ping(w http.ResponseWriter, req *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]string{"Ping": "Pong"})
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]string{
		"status":      "healthy",
		"instance_id": rt.instanceID,
		"timestamp":   utils.NowRFC3339(),
	})
}

// readinessCheck handles readiness check requests. The service holds no
// external dependencies, so ready tracks healthy.
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
