package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"movie-quiz-service/internal/domain"
)

// MovieLoader loads the movie corpus from Postgres.
type MovieLoader struct {
	pool *pgxpool.Pool
}

func NewMovieLoader(pool *pgxpool.Pool) *MovieLoader {
	return &MovieLoader{pool: pool}
}

func (l *MovieLoader) LoadMovies(ctx context.Context) ([]domain.Movie, error) {
	rows, err := l.pool.Query(ctx, `
SELECT id, category, director_name, genre, lead_actor, original_title, scrambled_hint
FROM movies
ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load movies: %w", err)
	}
	defer rows.Close()

	var movies []domain.Movie
	for rows.Next() {
		var m domain.Movie
		if err := rows.Scan(&m.ID, &m.Category, &m.Director, &m.Genre, &m.LeadActor, &m.Title, &m.ScrambledHint); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load movies: %w", err)
	}
	if len(movies) == 0 {
		return nil, domain.ErrMovieNotFound
	}
	return movies, nil
}
