package practice

import (
	"math/rand"

	"github.com/aliskhannn/tables-trainer-bot/internal/domain/entities"
)

const (
	MinTable = 1
	MaxTable = 10

	multipliersPerTable = 10
)

// Generator builds shuffled question sets.
type Generator struct {
	rnd *rand.Rand
}

// NewGenerator creates a generator. A nil rnd uses the package-level
// source, which is safe for concurrent use.
func NewGenerator(rnd *rand.Rand) *Generator {
	return &Generator{rnd: rnd}
}

// Generate returns 10 questions per table: every (table, 1..10) pair exactly once.
// Multipliers are shuffled per table, then the whole set is shuffled again.
func (g *Generator) Generate(tables []int) []entities.Question {
	questions := make([]entities.Question, 0, len(tables)*multipliersPerTable)

	for _, table := range tables {
		multipliers := make([]int, multipliersPerTable)
		for i := range multipliers {
			multipliers[i] = i + 1
		}

		g.shuffle(len(multipliers), func(i, j int) {
			multipliers[i], multipliers[j] = multipliers[j], multipliers[i]
		})

		for _, m := range multipliers {
			questions = append(questions, entities.Question{Num1: table, Num2: m})
		}
	}

	g.shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})

	return questions
}

func (g *Generator) shuffle(n int, swap func(i, j int)) {
	if g.rnd != nil {
		g.rnd.Shuffle(n, swap)
		return
	}
	rand.Shuffle(n, swap)
}
