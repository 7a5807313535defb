package domain

// Movie is one record of the read-only question catalog.
type Movie struct {
	ID            int    `json:"id"`
	Category      string `json:"category"`
	Director      string `json:"director_name"`
	Genre         string `json:"genre"`
	LeadActor     string `json:"lead_actor"`
	Title         string `json:"original_title"`
	ScrambledHint string `json:"scrambled_hint"`
}

// HintLadderSize is the number of hints derivable from one movie. The
// canonical title is always the last rung.
const HintLadderSize = 5

// QuestionsPerSession is the fixed session length.
const QuestionsPerSession = 10

// MaxWrongAttempts is the per-question wrong-guess budget; hitting it
// forfeits the question.
const MaxWrongAttempts = 5

// HintLadder builds the fixed disclosure sequence for a movie:
// category, director, genre, lead actor, then the answer itself.
func HintLadder(m Movie) [HintLadderSize]string {
	return [HintLadderSize]string{
		"Category: " + m.Category,
		"Director: " + m.Director,
		"Genre: " + m.Genre,
		"Lead Actor: " + m.LeadActor,
		"Answer: " + m.Title,
	}
}

// QuestionPrompt is what a player sees when a new question is drawn.
type QuestionPrompt struct {
	// Done is set when no question can be drawn: either the session hit
	// the ten-question limit or the catalog ran out of unseen movies.
	Done               bool   `json:"done,omitempty"`
	Exhausted          bool   `json:"exhausted,omitempty"`
	QuestionID         int    `json:"id"`
	ScrambledHint      string `json:"scrambled_hint"`
	QuestionsRemaining int    `json:"questions_remaining"`
}

// Hint is one revealed rung of the ladder.
type Hint struct {
	Text      string `json:"hint"`
	HintsLeft int    `json:"hints_left"`
}

// Verdict classifies the outcome of a single answer submission.
type Verdict string

const (
	// VerdictCorrect means the answer matched and points were awarded.
	VerdictCorrect Verdict = "correct"
	// VerdictIncorrect means the answer did not match; the player may
	// retry without score penalty.
	VerdictIncorrect Verdict = "incorrect"
	// VerdictFailed means the wrong-attempt budget is spent; the
	// question is forfeited and the canonical answer revealed.
	VerdictFailed Verdict = "failed"
)

// AnswerResult is the outcome of one SubmitAnswer call.
type AnswerResult struct {
	Verdict       Verdict `json:"verdict"`
	QuestionScore int     `json:"question_score"`
	TotalScore    int     `json:"total_score"`
	// CorrectAnswer is revealed only on forfeiture.
	CorrectAnswer string `json:"correct_answer,omitempty"`
	// Completed is set when this submission resolved the tenth question.
	Completed bool `json:"completed,omitempty"`
}

// LeaderboardEntry is one finalized session outcome. Immutable once
// written; counters are cumulative across the whole session.
type LeaderboardEntry struct {
	Username      string `json:"username"`
	FinalScore    int    `json:"final_score"`
	HintsUsed     int    `json:"hints_used"`
	WrongAttempts int    `json:"wrong_attempts"`
	TimeTakenMs   int64  `json:"time_taken"`
}

// Leaderboard is the ranked view of all finalized sessions, sorted by
// score descending with faster times winning ties.
type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
}
