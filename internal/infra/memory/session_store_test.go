package memory

import (
	"testing"

	"movie-quiz-service/internal/app"
)

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewSessionStore()

	session := app.NewSession("sess-1", "alice")
	store.Add(session)

	got, ok := store.Get("sess-1")
	if !ok || got.Username() != "alice" {
		t.Fatalf("expected stored session, got ok=%v", ok)
	}

	store.Delete("sess-1")
	if _, ok := store.Get("sess-1"); ok {
		t.Fatalf("expected session removed")
	}
}

func TestSessionStoreUnknownID(t *testing.T) {
	store := NewSessionStore()
	if _, ok := store.Get("never-issued"); ok {
		t.Fatalf("expected miss for unknown id")
	}
}
