package http

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"movie-quiz-service/internal/app"
	"movie-quiz-service/internal/domain"
)

// WSHandler streams leaderboard updates to websocket clients. Each
// client gets the current ranking on connect and a fresh snapshot every
// time a session finalizes.
type WSHandler struct {
	service  *app.QuizService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type leaderboardMessage struct {
	Type    string                    `json:"type"`
	Entries []domain.LeaderboardEntry `json:"entries"`
}

// ServeWS upgrades the request and pushes ranked leaderboards until the
// client goes away.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	updates, cancel, err := h.service.Subscribe(r.Context())
	if err != nil {
		http.Error(w, "leaderboard unavailable", http.StatusInternalServerError)
		return
	}
	defer cancel()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		// Clients send nothing meaningful; the read loop only notices
		// disconnects.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case lb, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(leaderboardMessage{Type: "leaderboard", Entries: lb.Entries}); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		case <-readerDone:
			return
		}
	}
}
