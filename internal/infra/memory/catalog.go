package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"movie-quiz-service/internal/domain"
)

// MovieLoader fetches the movie list from a backing store (CSV file,
// Postgres, a Redis-cached source, ...).
type MovieLoader interface {
	LoadMovies(ctx context.Context) ([]domain.Movie, error)
}

// Catalog serves uniform random draws over an immutable movie list,
// excluding identifiers a session has already seen. The movie list is
// loaded once on first use.
type Catalog struct {
	loader MovieLoader

	mu     sync.Mutex
	rnd    *rand.Rand
	movies []domain.Movie
}

func NewCatalog(loader MovieLoader) *Catalog {
	return NewCatalogWithSeed(loader, time.Now().UnixNano())
}

// NewCatalogWithSeed fixes the random source for deterministic tests.
func NewCatalogWithSeed(loader MovieLoader, seed int64) *Catalog {
	return &Catalog{
		loader: loader,
		rnd:    rand.New(rand.NewSource(seed)),
	}
}

// Sample draws one movie uniformly from the catalog minus the exclusion
// set, or domain.ErrCatalogExhausted when nothing unseen remains.
func (c *Catalog) Sample(ctx context.Context, exclude map[int]struct{}) (domain.Movie, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.movies == nil {
		movies, err := c.loader.LoadMovies(ctx)
		if err != nil {
			return domain.Movie{}, err
		}
		c.movies = movies
	}

	candidates := make([]int, 0, len(c.movies))
	for i, m := range c.movies {
		if _, seen := exclude[m.ID]; !seen {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return domain.Movie{}, domain.ErrCatalogExhausted
	}

	return c.movies[candidates[c.rnd.Intn(len(candidates))]], nil
}

// StaticMovieLoader is a simple loader backed by an in-memory slice
// (useful for tests/demos).
type StaticMovieLoader struct {
	movies []domain.Movie
}

func NewStaticMovieLoader(movies []domain.Movie) *StaticMovieLoader {
	return &StaticMovieLoader{movies: movies}
}

func (l *StaticMovieLoader) LoadMovies(_ context.Context) ([]domain.Movie, error) {
	if len(l.movies) == 0 {
		return nil, domain.ErrMovieNotFound
	}
	return l.movies, nil
}
