package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestWebSocketStreamsLeaderboard(t *testing.T) {
	server := newTestServer(t, sampleCatalog())
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws/leaderboard"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Initial snapshot arrives on connect, empty board.
	msg := readLeaderboard(t, conn)
	if len(msg.Entries) != 0 {
		t.Fatalf("expected empty initial leaderboard, got %+v", msg.Entries)
	}

	// Finish a session over REST and expect a push.
	var started struct {
		SessionID string `json:"session_id"`
	}
	postJSON(t, server, "/start_quiz", map[string]any{"username": "bob"}, http.StatusOK, &started)
	postJSON(t, server, "/end_quiz/"+started.SessionID, nil, http.StatusOK, nil)

	msg = readLeaderboard(t, conn)
	if len(msg.Entries) != 1 || msg.Entries[0].Username != "bob" {
		t.Fatalf("expected bob in the pushed leaderboard, got %+v", msg.Entries)
	}
}

func readLeaderboard(t *testing.T, conn *websocket.Conn) leaderboardMessage {
	t.Helper()
	var msg leaderboardMessage
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if msg.Type != "leaderboard" {
		t.Fatalf("expected leaderboard message, got %s", msg.Type)
	}
	return msg
}
