package redis

import (
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"

	"movie-quiz-service/internal/app"
)

func TestSessionStoreSetsAndClearsKeys(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewSessionStore(newClient(mr), time.Minute)

	store.Add(app.NewSession("sess-1", "alice"))
	if !mr.Exists("quiz:session:sess-1") {
		t.Fatalf("expected redis liveness key to be set")
	}
	if session, ok := store.Get("sess-1"); !ok || session.Username() != "alice" {
		t.Fatalf("expected session readable, ok=%v", ok)
	}

	store.Delete("sess-1")
	if mr.Exists("quiz:session:sess-1") {
		t.Fatalf("expected redis liveness key to be removed")
	}
	if _, ok := store.Get("sess-1"); ok {
		t.Fatalf("expected session removed")
	}
}
