package entities

import "time"

// PracticeResult is a finished question set as stored in history.
type PracticeResult struct {
	ID          int64     // unique result ID
	SessionID   string    // question set ID (uuid)
	UserID      int64     // user who practiced
	Tables      []int     // selected tables, ascending
	Correct     int       // number of correct answers
	Incorrect   int       // number of incorrect answers
	Accuracy    float64   // accuracy percent, two decimals
	Outcome     Outcome   // qualitative band
	CompletedAt time.Time // when the last answer was validated
}

// NewPracticeResult creates a history record from a summary.
func NewPracticeResult(sessionID string, userID int64, tables []int, s Summary) *PracticeResult {
	return &PracticeResult{
		SessionID:   sessionID,
		UserID:      userID,
		Tables:      tables,
		Correct:     s.Correct,
		Incorrect:   s.Incorrect,
		Accuracy:    s.AccuracyPercent,
		Outcome:     s.Outcome,
		CompletedAt: time.Now(),
	}
}

// UserStats is the per-user aggregate over all stored results.
type UserStats struct {
	UserID         int64
	Sessions       int
	TotalCorrect   int
	TotalIncorrect int
	BestAccuracy   float64
	LastPracticed  *time.Time // nullable
}

// Accuracy returns overall accuracy percent across all sessions.
func (s UserStats) Accuracy() float64 {
	total := s.TotalCorrect + s.TotalIncorrect
	if total == 0 {
		return 0
	}
	return float64(s.TotalCorrect) * 100 / float64(total)
}
