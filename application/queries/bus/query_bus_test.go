package bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubQuery struct {
	Key  string
	fail bool
}

func (q stubQuery) Validate() error {
	if q.fail {
		return errors.New("invalid query")
	}
	return nil
}

func (q stubQuery) CacheKey() string {
	return "stub:" + q.Key
}

type uncachedQuery struct{}

func (uncachedQuery) Validate() error { return nil }

type mapCache struct {
	items map[string]interface{}
	sets  int
}

func newMapCache() *mapCache {
	return &mapCache{items: make(map[string]interface{})}
}

func (c *mapCache) Get(ctx context.Context, key string) (interface{}, bool) {
	v, ok := c.items[key]
	return v, ok
}

func (c *mapCache) Set(ctx context.Context, key string, value interface{}, ttl int) error {
	c.items[key] = value
	c.sets++
	return nil
}

func TestQueryBusRegisterAndAsk(t *testing.T) {
	queryBus := NewQueryBus()

	err := queryBus.Register(stubQuery{}, QueryHandlerFunc(func(ctx context.Context, q Query) (interface{}, error) {
		return "result", nil
	}))
	require.NoError(t, err)

	result, err := queryBus.Ask(context.Background(), stubQuery{Key: "a"})
	require.NoError(t, err)
	assert.Equal(t, "result", result)
}

func TestQueryBusDuplicateRegistration(t *testing.T) {
	queryBus := NewQueryBus()
	handler := QueryHandlerFunc(func(ctx context.Context, q Query) (interface{}, error) {
		return nil, nil
	})

	require.NoError(t, queryBus.Register(stubQuery{}, handler))
	assert.Error(t, queryBus.Register(stubQuery{}, handler))
}

func TestQueryBusUnknownQuery(t *testing.T) {
	queryBus := NewQueryBus()

	_, err := queryBus.Ask(context.Background(), stubQuery{})
	assert.Error(t, err)
}

func TestQueryBusValidatesBeforeDispatch(t *testing.T) {
	queryBus := NewQueryBus()
	called := false

	require.NoError(t, queryBus.Register(stubQuery{}, QueryHandlerFunc(func(ctx context.Context, q Query) (interface{}, error) {
		called = true
		return nil, nil
	})))

	_, err := queryBus.Ask(context.Background(), stubQuery{fail: true})
	assert.Error(t, err)
	assert.False(t, called)
}

func TestCachingMiddlewareHit(t *testing.T) {
	cache := newMapCache()
	calls := 0

	handler := NewCachingMiddleware(cache, 60).Wrap(QueryHandlerFunc(func(ctx context.Context, q Query) (interface{}, error) {
		calls++
		return "computed", nil
	}))

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		result, err := handler.Handle(ctx, stubQuery{Key: "same"})
		require.NoError(t, err)
		assert.Equal(t, "computed", result)
	}

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, cache.sets)
}

func TestCachingMiddlewareObserver(t *testing.T) {
	cache := newMapCache()
	hits, misses := 0, 0

	middleware := NewCachingMiddleware(cache, 60)
	middleware.Observe(func() { hits++ }, func() { misses++ })
	handler := middleware.Wrap(QueryHandlerFunc(func(ctx context.Context, q Query) (interface{}, error) {
		return "computed", nil
	}))

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := handler.Handle(ctx, stubQuery{Key: "same"})
		require.NoError(t, err)
	}

	assert.Equal(t, 1, misses)
	assert.Equal(t, 2, hits)
}

func TestCachingMiddlewareSkipsErrors(t *testing.T) {
	cache := newMapCache()

	handler := NewCachingMiddleware(cache, 60).Wrap(QueryHandlerFunc(func(ctx context.Context, q Query) (interface{}, error) {
		return nil, errors.New("boom")
	}))

	_, err := handler.Handle(context.Background(), stubQuery{Key: "x"})
	assert.Error(t, err)
	assert.Zero(t, cache.sets)
}

func TestCachingMiddlewarePassesThroughUncacheable(t *testing.T) {
	cache := newMapCache()
	calls := 0

	handler := NewCachingMiddleware(cache, 60).Wrap(QueryHandlerFunc(func(ctx context.Context, q Query) (interface{}, error) {
		calls++
		return "fresh", nil
	}))

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		_, err := handler.Handle(ctx, uncachedQuery{})
		require.NoError(t, err)
	}

	assert.Equal(t, 2, calls)
	assert.Zero(t, cache.sets)
}
