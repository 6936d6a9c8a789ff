package entities

import (
	"fmt"
	"math"
)

// Outcome is the qualitative result band of a finished question set.
type Outcome string

const (
	OutcomeExcellent      Outcome = "excellent"
	OutcomeKeepPracticing Outcome = "keep_practicing"
)

// Mood is a finer band used only to choose summary imagery.
type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodNeutral Mood = "neutral"
	MoodSad     Mood = "sad"
)

const (
	excellentThresholdPercent = 75
	neutralThresholdPercent   = 50
)

// Summary aggregates the score of a fully validated question set.
type Summary struct {
	Correct         int
	Incorrect       int
	Total           int
	AccuracyPercent float64 // rounded to two decimals
	Outcome         Outcome
	Mood            Mood
}

// NewSummary builds a summary from final counts.
// Both bands use the same inclusive threshold rule: correct/total >= threshold.
func NewSummary(correct, incorrect int) Summary {
	total := correct + incorrect
	s := Summary{
		Correct:   correct,
		Incorrect: incorrect,
		Total:     total,
		Outcome:   OutcomeKeepPracticing,
		Mood:      MoodSad,
	}
	if total == 0 {
		return s
	}

	s.AccuracyPercent = math.Round(float64(correct)*10000/float64(total)) / 100

	// Integer comparison avoids float edge cases at the boundaries.
	switch {
	case correct*100 >= excellentThresholdPercent*total:
		s.Outcome = OutcomeExcellent
		s.Mood = MoodHappy
	case correct*100 >= neutralThresholdPercent*total:
		s.Mood = MoodNeutral
	}

	return s
}

// AccuracyString formats the accuracy as "90.00%".
func (s Summary) AccuracyString() string {
	return fmt.Sprintf("%.2f%%", s.AccuracyPercent)
}
