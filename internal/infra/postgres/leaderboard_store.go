package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"movie-quiz-service/internal/domain"
)

// LeaderboardStore persists finalized sessions in the leaderboard table.
// Rows are append-only; ranking happens in the service layer.
type LeaderboardStore struct {
	pool *pgxpool.Pool
}

func NewLeaderboardStore(pool *pgxpool.Pool) *LeaderboardStore {
	return &LeaderboardStore{pool: pool}
}

func (s *LeaderboardStore) Append(ctx context.Context, entry domain.LeaderboardEntry) error {
	_, err := s.pool.Exec(ctx, `
INSERT INTO leaderboard (username, final_score, hints_used, wrong_attempts, time_taken)
VALUES ($1, $2, $3, $4, $5)`,
		entry.Username, entry.FinalScore, entry.HintsUsed, entry.WrongAttempts, entry.TimeTakenMs)
	if err != nil {
		return fmt.Errorf("append leaderboard entry: %w", err)
	}
	return nil
}

func (s *LeaderboardStore) ReadAll(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	rows, err := s.pool.Query(ctx, `
SELECT username, final_score, hints_used, wrong_attempts, time_taken
FROM leaderboard`)
	if err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.LeaderboardEntry, 0)
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.Username, &e.FinalScore, &e.HintsUsed, &e.WrongAttempts, &e.TimeTakenMs); err != nil {
			return nil, fmt.Errorf("scan leaderboard entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}
	return entries, nil
}
