package memory

import (
	"context"
	"testing"

	"movie-quiz-service/internal/domain"
)

func TestCatalogSamplesWithoutRepeats(t *testing.T) {
	ctx := context.Background()
	catalog := NewCatalogWithSeed(NewStaticMovieLoader(testMovies(4)), 42)

	seen := make(map[int]struct{})
	for i := 0; i < 4; i++ {
		movie, err := catalog.Sample(ctx, seen)
		if err != nil {
			t.Fatalf("sample %d failed: %v", i, err)
		}
		if _, dup := seen[movie.ID]; dup {
			t.Fatalf("movie %d sampled twice", movie.ID)
		}
		seen[movie.ID] = struct{}{}
	}

	if _, err := catalog.Sample(ctx, seen); err != domain.ErrCatalogExhausted {
		t.Fatalf("expected ErrCatalogExhausted, got %v", err)
	}
}

func TestCatalogIsDeterministicUnderSeed(t *testing.T) {
	ctx := context.Background()

	draw := func() []int {
		catalog := NewCatalogWithSeed(NewStaticMovieLoader(testMovies(10)), 7)
		seen := make(map[int]struct{})
		var order []int
		for i := 0; i < 10; i++ {
			movie, err := catalog.Sample(ctx, seen)
			if err != nil {
				t.Fatalf("sample failed: %v", err)
			}
			seen[movie.ID] = struct{}{}
			order = append(order, movie.ID)
		}
		return order
	}

	first, second := draw(), draw()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("same seed produced different orders: %v vs %v", first, second)
		}
	}
}

func TestCatalogLoadsOnce(t *testing.T) {
	ctx := context.Background()
	loader := &countingLoader{MovieLoader: NewStaticMovieLoader(testMovies(2))}
	catalog := NewCatalogWithSeed(loader, 1)

	if _, err := catalog.Sample(ctx, nil); err != nil {
		t.Fatalf("sample failed: %v", err)
	}
	if _, err := catalog.Sample(ctx, nil); err != nil {
		t.Fatalf("sample failed: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
}

func TestStaticLoaderRejectsEmptyCorpus(t *testing.T) {
	loader := NewStaticMovieLoader(nil)
	if _, err := loader.LoadMovies(context.Background()); err != domain.ErrMovieNotFound {
		t.Fatalf("expected ErrMovieNotFound, got %v", err)
	}
}

type countingLoader struct {
	MovieLoader
	calls int
}

func (l *countingLoader) LoadMovies(ctx context.Context) ([]domain.Movie, error) {
	l.calls++
	return l.MovieLoader.LoadMovies(ctx)
}

func testMovies(n int) []domain.Movie {
	movies := make([]domain.Movie, 0, n)
	for i := 1; i <= n; i++ {
		movies = append(movies, domain.Movie{
			ID:        i,
			Category:  "Hollywood",
			Director:  "Director",
			Genre:     "Drama",
			LeadActor: "Actor",
			Title:     "Movie",
		})
	}
	return movies
}
