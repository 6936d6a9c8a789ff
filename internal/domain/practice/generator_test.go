package practice_test

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/aliskhannn/tables-trainer-bot/internal/domain/entities"
	"github.com/aliskhannn/tables-trainer-bot/internal/domain/practice"
)

func TestGenerate_CoversEveryPairOnce(t *testing.T) {
	tests := []struct {
		name   string
		tables []int
	}{
		{name: "single table", tables: []int{5}},
		{name: "two tables", tables: []int{2, 3}},
		{name: "all tables", tables: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := practice.NewGenerator(rand.New(rand.NewSource(1)))
			questions := g.Generate(tt.tables)

			if len(questions) != 10*len(tt.tables) {
				t.Fatalf("expected %d questions, got %d", 10*len(tt.tables), len(questions))
			}

			seen := make(map[entities.Question]int)
			for _, q := range questions {
				if !slices.Contains(tt.tables, q.Num1) {
					t.Errorf("num1 %d not in selected tables %v", q.Num1, tt.tables)
				}
				if q.Num2 < 1 || q.Num2 > 10 {
					t.Errorf("num2 %d out of range", q.Num2)
				}
				seen[q]++
			}

			for _, table := range tt.tables {
				for m := 1; m <= 10; m++ {
					q := entities.Question{Num1: table, Num2: m}
					if seen[q] != 1 {
						t.Errorf("pair %v appears %d times, want 1", q, seen[q])
					}
				}
			}
		})
	}
}

func TestGenerate_EmptySelection(t *testing.T) {
	g := practice.NewGenerator(nil)
	if got := g.Generate(nil); len(got) != 0 {
		t.Errorf("expected no questions, got %d", len(got))
	}
}

func TestGenerate_RandomizesOrder(t *testing.T) {
	g := practice.NewGenerator(nil)
	first := g.Generate([]int{4, 7})

	// With 20 questions an identical order ten times in a row is practically impossible.
	for i := 0; i < 10; i++ {
		if !slices.Equal(first, g.Generate([]int{4, 7})) {
			return
		}
	}
	t.Error("expected questions to be randomized across generations")
}

func TestGenerate_NoPositionalBias(t *testing.T) {
	const runs = 20000

	g := practice.NewGenerator(rand.New(rand.NewSource(42)))

	// firstSlot[m] counts how often multiplier m lands in position 0,
	// lastSlot[m] how often it lands in position 9.
	firstSlot := make(map[int]int)
	lastSlot := make(map[int]int)
	for i := 0; i < runs; i++ {
		questions := g.Generate([]int{6})
		firstSlot[questions[0].Num2]++
		lastSlot[questions[9].Num2]++
	}

	expected := runs / 10
	tolerance := expected / 5
	for m := 1; m <= 10; m++ {
		if d := firstSlot[m] - expected; d > tolerance || d < -tolerance {
			t.Errorf("multiplier %d in first position %d times, expected about %d", m, firstSlot[m], expected)
		}
		if d := lastSlot[m] - expected; d > tolerance || d < -tolerance {
			t.Errorf("multiplier %d in last position %d times, expected about %d", m, lastSlot[m], expected)
		}
	}
}

func TestGenerate_TablesInterleaveUniformly(t *testing.T) {
	const runs = 10000

	g := practice.NewGenerator(rand.New(rand.NewSource(7)))

	lastIsFirstTable := 0
	for i := 0; i < runs; i++ {
		questions := g.Generate([]int{2, 9})
		if questions[len(questions)-1].Num1 == 2 {
			lastIsFirstTable++
		}
	}

	// A comparator-based sort shuffle keeps early tables near the front;
	// a uniform shuffle puts either table last about half the time.
	if lastIsFirstTable < runs*45/100 || lastIsFirstTable > runs*55/100 {
		t.Errorf("table 2 ended the set %d of %d times, expected about half", lastIsFirstTable, runs)
	}
}
