package practice

import (
	"errors"
	"math/rand"
)

var ErrInvalidCategory = errors.New("invalid feedback category")

// FeedbackCategory selects the pool a feedback message is drawn from.
type FeedbackCategory int

const (
	CategoryCorrect FeedbackCategory = iota + 1
	CategoryIncorrect
)

func (c FeedbackCategory) String() string {
	switch c {
	case CategoryCorrect:
		return "correct"
	case CategoryIncorrect:
		return "incorrect"
	default:
		return "unknown"
	}
}

var defaultMessages = map[FeedbackCategory][]string{
	CategoryCorrect: {
		"Отлично!",
		"Превосходно!",
		"Молодец!",
		"Так держать!",
	},
	CategoryIncorrect: {
		"Нет, попробуй ещё раз.",
		"Ошибка, попробуй снова.",
		"Не сдавайся!",
		"Продолжай тренироваться.",
	},
}

// MessagePicker returns random feedback messages.
type MessagePicker struct {
	pools map[FeedbackCategory][]string
	intn  func(n int) int
}

// NewMessagePicker creates a picker over the default pools.
// A nil intn falls back to the package-level random source.
func NewMessagePicker(intn func(n int) int) *MessagePicker {
	if intn == nil {
		intn = rand.Intn
	}
	return &MessagePicker{
		pools: defaultMessages,
		intn:  intn,
	}
}

// Pick returns a message for the category, chosen uniformly at random.
func (p *MessagePicker) Pick(category FeedbackCategory) (string, error) {
	pool := p.pools[category]
	if len(pool) == 0 {
		return "", ErrInvalidCategory
	}
	return pool[p.intn(len(pool))], nil
}

// Messages returns a copy of the pool for the category.
func Messages(category FeedbackCategory) []string {
	pool := defaultMessages[category]
	out := make([]string, len(pool))
	copy(out, pool)
	return out
}
