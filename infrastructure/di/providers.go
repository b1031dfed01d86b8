package di

import (
	"time"

	"pipeline-backend/application/queries"
	"pipeline-backend/application/queries/bus"
	apphandlers "pipeline-backend/application/queries/handlers"
	"pipeline-backend/domain/core/validators"
	"pipeline-backend/domain/services"
	"pipeline-backend/infrastructure/config"
	"pipeline-backend/pkg/observability"
	"pipeline-backend/pkg/ratelimit"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Container holds all application dependencies
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	QueryBus *bus.QueryBus
	Cache    *InMemoryCache
	Metrics  *observability.Collector
	Limiter  *ratelimit.TokenBucketLimiter
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	if level, err := zapcore.ParseLevel(cfg.LogLevel); err == nil {
		zapCfg.Level = zap.NewAtomicLevelAt(level)
	}

	return zapCfg.Build()
}

// ProvidePipelineValidator creates the graph builder
func ProvidePipelineValidator() *validators.PipelineValidator {
	return validators.NewPipelineValidator()
}

// ProvideCycleDetector creates the cycle detector
func ProvideCycleDetector() *services.CycleDetector {
	return services.NewCycleDetector()
}

// ProvideMetrics creates the Prometheus collector
func ProvideMetrics() *observability.Collector {
	return observability.NewCollector("pipeline")
}

// ProvideCache creates the in-memory result cache
func ProvideCache() *InMemoryCache {
	return NewInMemoryCache()
}

// ProvideRateLimiter creates the per-client token bucket limiter
func ProvideRateLimiter(cfg *config.Config) *ratelimit.TokenBucketLimiter {
	refill := time.Minute / time.Duration(cfg.RateLimitPerMinute)
	return ratelimit.NewTokenBucketLimiter(cfg.RateLimitPerMinute, refill)
}

// ProvideQueryBus creates the query bus with all handlers registered. Parse
// results are cached behind the payload-hash key.
func ProvideQueryBus(
	cfg *config.Config,
	validator *validators.PipelineValidator,
	detector *services.CycleDetector,
	metrics *observability.Collector,
	cache *InMemoryCache,
	logger *zap.Logger,
) (*bus.QueryBus, error) {
	queryBus := bus.NewQueryBus()

	parseHandler := apphandlers.NewParsePipelineHandler(validator, detector, metrics, logger)
	caching := bus.NewCachingMiddleware(cache, cfg.CacheTTLSeconds)
	caching.Observe(metrics.CacheHits.Inc, metrics.CacheMisses.Inc)

	if err := queryBus.Register(queries.ParsePipelineQuery{}, caching.Wrap(parseHandler)); err != nil {
		return nil, err
	}

	return queryBus, nil
}
