package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"movie-quiz-service/internal/domain"
)

const catalogKey = "quiz:catalog:movies"

// MovieLoader fetches the movie corpus from a backing store.
type MovieLoader interface {
	LoadMovies(ctx context.Context) ([]domain.Movie, error)
}

// CatalogSource caches the whole movie list in Redis as one JSON
// document and falls back to a loader on cache miss. Sampling needs the
// full list anyway, so a single document beats per-movie keys.
type CatalogSource struct {
	client *redis.Client
	loader MovieLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewCatalogSource(client *redis.Client, loader MovieLoader, ttl time.Duration) *CatalogSource {
	return &CatalogSource{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *CatalogSource) LoadMovies(ctx context.Context) ([]domain.Movie, error) {
	if movies, ok := c.cached(ctx); ok {
		return movies, nil
	}

	result, err, _ := c.sf.Do(catalogKey, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if movies, ok := c.cached(ctx); ok {
			return movies, nil
		}

		movies, err := c.loader.LoadMovies(ctx)
		if err != nil {
			return nil, err
		}

		raw, err := json.Marshal(movies)
		if err != nil {
			return nil, fmt.Errorf("marshal catalog: %w", err)
		}
		// Best-effort cache fill; a write failure still serves the load.
		_ = c.client.Set(ctx, catalogKey, raw, c.ttlWithJitter()).Err()

		return movies, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Movie), nil
}

func (c *CatalogSource) cached(ctx context.Context) ([]domain.Movie, bool) {
	raw, err := c.client.Get(ctx, catalogKey).Bytes()
	if err != nil || len(raw) == 0 {
		return nil, false
	}
	var movies []domain.Movie
	if err := json.Unmarshal(raw, &movies); err != nil || len(movies) == 0 {
		return nil, false
	}
	return movies, true
}

func (c *CatalogSource) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
