package app

import (
	"context"
	"strings"
	"sync"
	"time"

	"movie-quiz-service/internal/domain"
)

// Session holds one player's quiz progress. All mutation happens under
// the session mutex, so concurrent hint reveals and submissions on the
// same session cannot interleave.
type Session struct {
	id        string
	username  string
	now       func() time.Time
	startedAt time.Time

	mu                sync.Mutex
	totalScore        int
	questionsAnswered int
	seenIDs           map[int]struct{}
	current           *domain.Movie
	hints             [domain.HintLadderSize]string
	hintCursor        int
	hintsUsed         int
	wrongAttempts     int
	sessionHints      int
	sessionWrong      int
	finalized         bool
}

// NewSession is exported for infrastructure layers that need to seed sessions.
func NewSession(id, username string) *Session {
	return newSessionWithClock(id, username, time.Now)
}

// NewSessionWithClock is test-only for deterministic timestamps.
func NewSessionWithClock(id, username string, now func() time.Time) *Session {
	return newSessionWithClock(id, username, now)
}

func newSessionWithClock(id, username string, now func() time.Time) *Session {
	return &Session{
		id:        id,
		username:  username,
		now:       now,
		startedAt: now(),
		seenIDs:   make(map[int]struct{}),
	}
}

// ID returns the opaque session identifier.
func (s *Session) ID() string { return s.id }

// Username returns the display name the session was created with.
func (s *Session) Username() string { return s.username }

// nextQuestion draws an unseen movie from the catalog and arms it as the
// active question. The session lock is held across the catalog call so
// the exclusion set cannot go stale mid-draw.
func (s *Session) nextQuestion(ctx context.Context, catalog MovieCatalog) (domain.QuestionPrompt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finalized {
		return domain.QuestionPrompt{}, domain.ErrSessionNotFound
	}
	if s.questionsAnswered >= domain.QuestionsPerSession {
		return domain.QuestionPrompt{Done: true}, nil
	}

	movie, err := catalog.Sample(ctx, s.seenIDs)
	if err == domain.ErrCatalogExhausted {
		return domain.QuestionPrompt{Done: true, Exhausted: true}, nil
	}
	if err != nil {
		return domain.QuestionPrompt{}, err
	}

	s.seenIDs[movie.ID] = struct{}{}
	s.current = &movie
	s.hints = domain.HintLadder(movie)
	s.hintCursor = 0
	s.hintsUsed = 0
	s.wrongAttempts = 0

	return domain.QuestionPrompt{
		QuestionID:         movie.ID,
		ScrambledHint:      movie.ScrambledHint,
		QuestionsRemaining: domain.QuestionsPerSession - s.questionsAnswered,
	}, nil
}

// revealHint returns the next rung of the ladder and consumes one unit
// of the hint budget. Reveals are strictly sequential.
func (s *Session) revealHint() (domain.Hint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finalized {
		return domain.Hint{}, domain.ErrSessionNotFound
	}
	if s.current == nil {
		return domain.Hint{}, domain.ErrNoActiveQuestion
	}
	if s.hintsUsed >= domain.HintLadderSize {
		return domain.Hint{}, domain.ErrNoHintsLeft
	}

	hint := s.hints[s.hintCursor]
	s.hintCursor++
	s.hintsUsed++
	s.sessionHints++

	return domain.Hint{
		Text:      hint,
		HintsLeft: domain.HintLadderSize - s.hintsUsed,
	}, nil
}

// submitAnswer validates a guess against the active question. Correct
// answers score max(0, 10 - 2*hintsUsed); wrong answers are free to
// retry until the attempt budget forfeits the question.
func (s *Session) submitAnswer(questionID int, answer string) (domain.AnswerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finalized {
		return domain.AnswerResult{}, domain.ErrSessionNotFound
	}
	if s.current == nil || s.current.ID != questionID {
		return domain.AnswerResult{}, domain.ErrQuestionMismatch
	}

	if normalizeAnswer(answer) == normalizeAnswer(s.current.Title) {
		score := 10 - 2*s.hintsUsed
		if score < 0 {
			score = 0
		}
		s.totalScore += score
		s.questionsAnswered++
		s.current = nil

		return domain.AnswerResult{
			Verdict:       domain.VerdictCorrect,
			QuestionScore: score,
			TotalScore:    s.totalScore,
			Completed:     s.questionsAnswered >= domain.QuestionsPerSession,
		}, nil
	}

	s.wrongAttempts++
	s.sessionWrong++
	if s.wrongAttempts >= domain.MaxWrongAttempts {
		// Forfeit: the question counts toward the ten-question limit and
		// the canonical answer is revealed.
		title := s.current.Title
		s.questionsAnswered++
		s.current = nil

		return domain.AnswerResult{
			Verdict:       domain.VerdictFailed,
			TotalScore:    s.totalScore,
			CorrectAnswer: title,
			Completed:     s.questionsAnswered >= domain.QuestionsPerSession,
		}, nil
	}

	return domain.AnswerResult{
		Verdict:    domain.VerdictIncorrect,
		TotalScore: s.totalScore,
	}, nil
}

// finalize seals the session and produces its leaderboard entry. A
// sealed session rejects every further operation.
func (s *Session) finalize() (domain.LeaderboardEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finalized {
		return domain.LeaderboardEntry{}, domain.ErrSessionNotFound
	}
	s.finalized = true

	return domain.LeaderboardEntry{
		Username:      s.username,
		FinalScore:    s.totalScore,
		HintsUsed:     s.sessionHints,
		WrongAttempts: s.sessionWrong,
		TimeTakenMs:   s.now().Sub(s.startedAt).Milliseconds(),
	}, nil
}

// reopen undoes finalize after a failed leaderboard append so the caller
// can retry without losing the session.
func (s *Session) reopen() {
	s.mu.Lock()
	s.finalized = false
	s.mu.Unlock()
}

func normalizeAnswer(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
