// Package csvfile keeps the quiz data in flat CSV files, the format the
// deployed system already uses for its movie corpus and leaderboard.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"

	"movie-quiz-service/internal/domain"
)

var leaderboardHeader = []string{"username", "final_score", "hints_used", "wrong_attempts", "time_taken"}

// LeaderboardStore appends finalized sessions to a CSV file and reads
// them all back on query. The file is created with its header when
// missing. A single mutex serializes appends against reads, so
// concurrent finalizations never interleave rows.
type LeaderboardStore struct {
	path string
	mu   sync.Mutex
}

// NewLeaderboardStore ensures the backing file exists with the expected
// schema before the store is used.
func NewLeaderboardStore(path string) (*LeaderboardStore, error) {
	s := &LeaderboardStore{path: path}
	if err := s.ensureFile(); err != nil {
		return nil, fmt.Errorf("init leaderboard file: %w", err)
	}
	return s, nil
}

func (s *LeaderboardStore) ensureFile() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}

	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(leaderboardHeader); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func (s *LeaderboardStore) Append(_ context.Context, entry domain.LeaderboardEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open leaderboard file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	err = w.Write([]string{
		entry.Username,
		strconv.Itoa(entry.FinalScore),
		strconv.Itoa(entry.HintsUsed),
		strconv.Itoa(entry.WrongAttempts),
		strconv.FormatInt(entry.TimeTakenMs, 10),
	})
	if err != nil {
		return fmt.Errorf("append leaderboard entry: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush leaderboard entry: %w", err)
	}
	return nil
}

func (s *LeaderboardStore) ReadAll(_ context.Context) ([]domain.LeaderboardEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open leaderboard file: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read leaderboard file: %w", err)
	}

	entries := make([]domain.LeaderboardEntry, 0, len(records))
	for i, rec := range records {
		if i == 0 {
			continue // header
		}
		if len(rec) != len(leaderboardHeader) {
			return nil, fmt.Errorf("leaderboard row %d: expected %d fields, got %d", i, len(leaderboardHeader), len(rec))
		}
		entry, err := parseEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("leaderboard row %d: %w", i, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func parseEntry(rec []string) (domain.LeaderboardEntry, error) {
	score, err := strconv.Atoi(rec[1])
	if err != nil {
		return domain.LeaderboardEntry{}, fmt.Errorf("final_score: %w", err)
	}
	hints, err := strconv.Atoi(rec[2])
	if err != nil {
		return domain.LeaderboardEntry{}, fmt.Errorf("hints_used: %w", err)
	}
	wrong, err := strconv.Atoi(rec[3])
	if err != nil {
		return domain.LeaderboardEntry{}, fmt.Errorf("wrong_attempts: %w", err)
	}
	taken, err := strconv.ParseInt(rec[4], 10, 64)
	if err != nil {
		return domain.LeaderboardEntry{}, fmt.Errorf("time_taken: %w", err)
	}
	return domain.LeaderboardEntry{
		Username:      rec[0],
		FinalScore:    score,
		HintsUsed:     hints,
		WrongAttempts: wrong,
		TimeTakenMs:   taken,
	}, nil
}
