package app

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"movie-quiz-service/internal/domain"
)

// SessionRepository abstracts how quiz sessions are stored (in-memory, Redis, etc).
type SessionRepository interface {
	Add(session *Session)
	Get(sessionID string) (*Session, bool)
	Delete(sessionID string)
}

// MovieCatalog is the read-only question corpus. Sample draws one movie
// uniformly at random from the catalog minus the exclusion set.
type MovieCatalog interface {
	Sample(ctx context.Context, exclude map[int]struct{}) (domain.Movie, error)
}

// LeaderboardStore is the durable, append-only record of finalized
// sessions. ReadAll returns entries in storage order; ranking happens
// in the service.
type LeaderboardStore interface {
	Append(ctx context.Context, entry domain.LeaderboardEntry) error
	ReadAll(ctx context.Context) ([]domain.LeaderboardEntry, error)
}

// QuizService contains the movie-quiz use cases.
type QuizService struct {
	sessions SessionRepository
	catalog  MovieCatalog
	board    LeaderboardStore

	mu          sync.Mutex
	subscribers map[chan domain.Leaderboard]struct{}
}

func NewQuizService(sessions SessionRepository, catalog MovieCatalog, board LeaderboardStore) *QuizService {
	return &QuizService{
		sessions:    sessions,
		catalog:     catalog,
		board:       board,
		subscribers: make(map[chan domain.Leaderboard]struct{}),
	}
}

// StartSession creates a session for the given display name and returns
// its identifier. The ID doubles as the access credential, so it is a
// random 128-bit UUID.
func (s *QuizService) StartSession(_ context.Context, username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", domain.ErrInvalidUsername
	}

	session := NewSession(uuid.NewString(), username)
	s.sessions.Add(session)
	return session.ID(), nil
}

// NextQuestion draws an unseen question for the session. A finished
// session (ten questions answered, or catalog exhausted) gets a Done
// prompt rather than an error.
func (s *QuizService) NextQuestion(ctx context.Context, sessionID string) (domain.QuestionPrompt, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.QuestionPrompt{}, domain.ErrSessionNotFound
	}
	return session.nextQuestion(ctx, s.catalog)
}

// RevealHint returns the next hint for the session's active question.
func (s *QuizService) RevealHint(_ context.Context, sessionID string) (domain.Hint, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.Hint{}, domain.ErrSessionNotFound
	}
	return session.revealHint()
}

// SubmitAnswer validates a guess for the session's active question.
func (s *QuizService) SubmitAnswer(_ context.Context, sessionID string, questionID int, answer string) (domain.AnswerResult, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.AnswerResult{}, domain.ErrSessionNotFound
	}
	return session.submitAnswer(questionID, answer)
}

// EndSession finalizes the session, appends its entry to the durable
// leaderboard and broadcasts the new ranking to subscribers. The session
// is removed afterwards; ending it twice yields ErrSessionNotFound.
func (s *QuizService) EndSession(ctx context.Context, sessionID string) (domain.LeaderboardEntry, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.LeaderboardEntry{}, domain.ErrSessionNotFound
	}

	entry, err := session.finalize()
	if err != nil {
		return domain.LeaderboardEntry{}, err
	}

	if err := s.board.Append(ctx, entry); err != nil {
		// Leave the session intact so the caller can retry finalization.
		session.reopen()
		return domain.LeaderboardEntry{}, err
	}

	s.sessions.Delete(sessionID)
	s.broadcast(ctx)
	return entry, nil
}

// Leaderboard reads the full durable set and returns it ranked: score
// descending, faster time winning ties.
func (s *QuizService) Leaderboard(ctx context.Context) (domain.Leaderboard, error) {
	entries, err := s.board.ReadAll(ctx)
	if err != nil {
		return domain.Leaderboard{}, err
	}
	rankEntries(entries)
	return domain.Leaderboard{Entries: entries}, nil
}

// Subscribe returns a channel that receives the ranked leaderboard after
// every finalization, primed with the current standing. The caller must
// invoke the returned cancel function to avoid leaks.
func (s *QuizService) Subscribe(ctx context.Context) (<-chan domain.Leaderboard, func(), error) {
	initial, err := s.Leaderboard(ctx)
	if err != nil {
		return nil, nil, err
	}

	ch := make(chan domain.Leaderboard, 8)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()

	ch <- initial

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel, nil
}

func (s *QuizService) broadcast(ctx context.Context) {
	lb, err := s.Leaderboard(ctx)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subscribers {
		select {
		case ch <- lb:
		default:
			// Drop the stale snapshot so slow clients never block finalization.
			select {
			case <-ch:
			default:
			}
			ch <- lb
		}
	}
}

func rankEntries(entries []domain.LeaderboardEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].FinalScore != entries[j].FinalScore {
			return entries[i].FinalScore > entries[j].FinalScore
		}
		return entries[i].TimeTakenMs < entries[j].TimeTakenMs
	})
}
