package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"movie-quiz-service/internal/domain"
)

// MovieLoader reads the movie corpus from a CSV file with columns:
// id, category, director_name, genre, lead_actor, original_title,
// scrambled_hint.
type MovieLoader struct {
	path string
}

func NewMovieLoader(path string) *MovieLoader {
	return &MovieLoader{path: path}
}

func (l *MovieLoader) LoadMovies(_ context.Context) ([]domain.Movie, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open movies file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read movies file: %w", err)
	}
	if len(records) < 2 {
		return nil, domain.ErrMovieNotFound
	}

	col := columnIndex(records[0])
	for _, name := range []string{"id", "category", "director_name", "genre", "lead_actor", "original_title", "scrambled_hint"} {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("movies file missing column %q", name)
		}
	}

	movies := make([]domain.Movie, 0, len(records)-1)
	for i, rec := range records[1:] {
		id, err := strconv.Atoi(rec[col["id"]])
		if err != nil {
			return nil, fmt.Errorf("movies row %d: id: %w", i+1, err)
		}
		movies = append(movies, domain.Movie{
			ID:            id,
			Category:      rec[col["category"]],
			Director:      rec[col["director_name"]],
			Genre:         rec[col["genre"]],
			LeadActor:     rec[col["lead_actor"]],
			Title:         rec[col["original_title"]],
			ScrambledHint: rec[col["scrambled_hint"]],
		})
	}
	return movies, nil
}

func columnIndex(header []string) map[string]int {
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	return col
}
