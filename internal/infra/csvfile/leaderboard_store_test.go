package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"movie-quiz-service/internal/domain"
)

func TestLeaderboardStoreCreatesFileWithHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leaderboard.csv")

	if _, err := NewLeaderboardStore(path); err != nil {
		t.Fatalf("new store: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if got := strings.TrimSpace(string(data)); got != "username,final_score,hints_used,wrong_attempts,time_taken" {
		t.Fatalf("unexpected header %q", got)
	}
}

func TestLeaderboardStoreAppendAndReadBack(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "leaderboard.csv")

	store, err := NewLeaderboardStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	want := domain.LeaderboardEntry{
		Username:      "alice",
		FinalScore:    42,
		HintsUsed:     3,
		WrongAttempts: 2,
		TimeTakenMs:   123456,
	}
	if err := store.Append(ctx, want); err != nil {
		t.Fatalf("append: %v", err)
	}

	entries, err := store.ReadAll(ctx)
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if len(entries) != 1 || entries[0] != want {
		t.Fatalf("expected %+v, got %+v", want, entries)
	}
}

func TestLeaderboardStoreKeepsExistingRows(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "leaderboard.csv")

	store, err := NewLeaderboardStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.Append(ctx, domain.LeaderboardEntry{Username: "alice", FinalScore: 10}); err != nil {
		t.Fatalf("append: %v", err)
	}

	// Reopening the store must not truncate the file.
	store, err = NewLeaderboardStore(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	if err := store.Append(ctx, domain.LeaderboardEntry{Username: "bob", FinalScore: 20}); err != nil {
		t.Fatalf("append: %v", err)
	}

	entries, err := store.ReadAll(ctx)
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
}

func TestLeaderboardStoreConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "leaderboard.csv")

	store, err := NewLeaderboardStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Append(ctx, domain.LeaderboardEntry{Username: "player", FinalScore: n})
		}(i)
	}
	wg.Wait()

	entries, err := store.ReadAll(ctx)
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if len(entries) != writers {
		t.Fatalf("expected %d rows, got %d", writers, len(entries))
	}
}
