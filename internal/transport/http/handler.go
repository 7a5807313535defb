// Package http wires the quiz use cases to a JSON REST surface plus a
// websocket leaderboard stream.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"movie-quiz-service/internal/app"
	"movie-quiz-service/internal/domain"
)

// Handler exposes the quiz operations over HTTP. Routes mirror the
// classic surface: /start_quiz, /get_question, /get_hint, /validate,
// /end_quiz, /get_leaderboard.
type Handler struct {
	service *app.QuizService
}

func NewHandler(service *app.QuizService) *Handler {
	return &Handler{service: service}
}

// Register attaches all quiz routes to the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /start_quiz", h.StartQuiz)
	mux.HandleFunc("GET /get_question/{session_id}", h.GetQuestion)
	mux.HandleFunc("GET /get_hint/{session_id}", h.GetHint)
	mux.HandleFunc("POST /validate/{session_id}", h.Validate)
	mux.HandleFunc("POST /end_quiz/{session_id}", h.EndQuiz)
	mux.HandleFunc("GET /get_leaderboard", h.GetLeaderboard)
}

type startQuizRequest struct {
	Username string `json:"username"`
}

type startQuizResponse struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

func (h *Handler) StartQuiz(w http.ResponseWriter, r *http.Request) {
	var req startQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sessionID, err := h.service.StartSession(r.Context(), req.Username)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, startQuizResponse{
		Message:   "Quiz started!",
		SessionID: sessionID,
	})
}

type questionResponse struct {
	Status             string `json:"status"`
	Message            string `json:"message,omitempty"`
	ScrambledHint      string `json:"scrambled_hint,omitempty"`
	ID                 int    `json:"id,omitempty"`
	QuestionsRemaining int    `json:"questions_remaining,omitempty"`
}

func (h *Handler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	prompt, err := h.service.NextQuestion(r.Context(), r.PathValue("session_id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	if prompt.Done {
		msg := "Quiz completed!"
		if prompt.Exhausted {
			msg = "No more unique questions available!"
		}
		writeJSON(w, http.StatusOK, questionResponse{Status: "end", Message: msg})
		return
	}

	writeJSON(w, http.StatusOK, questionResponse{
		Status:             "question",
		ScrambledHint:      prompt.ScrambledHint,
		ID:                 prompt.QuestionID,
		QuestionsRemaining: prompt.QuestionsRemaining,
	})
}

type hintResponse struct {
	Status    string `json:"status"`
	Hint      string `json:"hint"`
	HintsLeft int    `json:"hints_left"`
}

func (h *Handler) GetHint(w http.ResponseWriter, r *http.Request) {
	hint, err := h.service.RevealHint(r.Context(), r.PathValue("session_id"))
	if errors.Is(err, domain.ErrNoHintsLeft) {
		// Soft failure: the client shows the message and keeps playing.
		writeJSON(w, http.StatusOK, errorResponse{Status: "error", Message: "No hints left!"})
		return
	}
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, hintResponse{
		Status:    "success",
		Hint:      hint.Text,
		HintsLeft: hint.HintsLeft,
	})
}

type validateRequest struct {
	ID     int    `json:"id"`
	Answer string `json:"answer"`
}

type validateResponse struct {
	Status          string `json:"status"`
	Message         string `json:"message"`
	TotalScore      int    `json:"total_score"`
	ShowLeaderboard bool   `json:"show_leaderboard,omitempty"`
}

func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.SubmitAnswer(r.Context(), r.PathValue("session_id"), req.ID, req.Answer)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, validateResult(result))
}

func validateResult(result domain.AnswerResult) validateResponse {
	switch result.Verdict {
	case domain.VerdictCorrect:
		msg := fmt.Sprintf("Correct! You earned %d points.", result.QuestionScore)
		if result.Completed {
			return validateResponse{
				Status:          "end",
				Message:         msg + " Quiz completed!",
				TotalScore:      result.TotalScore,
				ShowLeaderboard: true,
			}
		}
		return validateResponse{Status: "correct", Message: msg, TotalScore: result.TotalScore}

	case domain.VerdictFailed:
		msg := fmt.Sprintf("Too many wrong attempts! The correct answer was %q.", result.CorrectAnswer)
		if result.Completed {
			return validateResponse{
				Status:          "end",
				Message:         msg + " Quiz completed!",
				TotalScore:      result.TotalScore,
				ShowLeaderboard: true,
			}
		}
		return validateResponse{
			Status:     "failed",
			Message:    msg + " Moving to the next question.",
			TotalScore: result.TotalScore,
		}

	default:
		return validateResponse{
			Status:     "incorrect",
			Message:    "Wrong guess! Try again.",
			TotalScore: result.TotalScore,
		}
	}
}

type endQuizResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	TimeTaken int64  `json:"time_taken"`
}

func (h *Handler) EndQuiz(w http.ResponseWriter, r *http.Request) {
	entry, err := h.service.EndSession(r.Context(), r.PathValue("session_id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, endQuizResponse{
		Status:    "success",
		Message:   "Leaderboard updated!",
		TimeTaken: entry.TimeTakenMs,
	})
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	lb, err := h.service.Leaderboard(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lb.Entries)
}

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidUsername):
		writeError(w, http.StatusBadRequest, "Username is required")
	case errors.Is(err, domain.ErrSessionNotFound):
		writeError(w, http.StatusBadRequest, "Invalid session ID!")
	case errors.Is(err, domain.ErrNoActiveQuestion):
		writeError(w, http.StatusBadRequest, "No active question!")
	case errors.Is(err, domain.ErrQuestionMismatch):
		writeError(w, http.StatusBadRequest, "Invalid question ID!")
	default:
		log.Printf("quiz handler error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, errorResponse{Status: "error", Message: message})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}
