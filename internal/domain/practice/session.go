package practice

import (
	"errors"
	"maps"
	"slices"

	"github.com/google/uuid"

	"github.com/aliskhannn/tables-trainer-bot/internal/domain/entities"
)

var (
	ErrInvalidTransition = errors.New("invalid phase transition")
	ErrTableOutOfRange   = errors.New("table must be between 1 and 10")
)

// Phase tells whether the user is choosing tables or answering questions.
type Phase int

const (
	PhaseSelecting Phase = iota
	PhasePracticing
)

func (p Phase) String() string {
	if p == PhasePracticing {
		return "practicing"
	}
	return "selecting"
}

// Session is the state of one user's practice.
//
// All operations run to completion and leave the session consistent:
// the score always equals the number of validated questions.
// Session is not safe for concurrent use; callers serialize access.
type Session struct {
	id        string
	phase     Phase
	tables    map[int]struct{}
	questions []entities.Question
	answers   map[int]string
	feedback  map[int]entities.Feedback
	validated map[int]bool
	score     entities.Score

	generator *Generator
	picker    *MessagePicker
	newID     func() string
}

// Option configures a Session.
type Option func(*Session)

// WithGenerator sets the question set generator.
func WithGenerator(g *Generator) Option {
	return func(s *Session) { s.generator = g }
}

// WithPicker sets the feedback message picker.
func WithPicker(p *MessagePicker) Option {
	return func(s *Session) { s.picker = p }
}

// WithIDFunc sets the function used to name each generated question set.
func WithIDFunc(fn func() string) Option {
	return func(s *Session) { s.newID = fn }
}

// NewSession creates a session in the selecting phase with nothing selected.
func NewSession(opts ...Option) *Session {
	s := &Session{
		phase:     PhaseSelecting,
		tables:    make(map[int]struct{}),
		answers:   make(map[int]string),
		feedback:  make(map[int]entities.Feedback),
		validated: make(map[int]bool),
		generator: NewGenerator(nil),
		picker:    NewMessagePicker(nil),
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ToggleTable flips membership of n in the selection.
// Every toggle that leaves the selection non-empty regenerates the whole
// question set and drops all answers, feedback and score.
func (s *Session) ToggleTable(n int) error {
	if n < MinTable || n > MaxTable {
		return ErrTableOutOfRange
	}

	if _, ok := s.tables[n]; ok {
		delete(s.tables, n)
	} else {
		s.tables[n] = struct{}{}
	}

	if len(s.tables) > 0 {
		s.regenerate()
	}

	return nil
}

func (s *Session) regenerate() {
	s.id = s.newID()
	s.questions = s.generator.Generate(s.Tables())
	s.answers = make(map[int]string)
	s.feedback = make(map[int]entities.Feedback)
	s.validated = make(map[int]bool)
	s.score = entities.Score{}
}

// ConfirmAdvance moves from selecting to practicing.
func (s *Session) ConfirmAdvance() error {
	if s.phase != PhaseSelecting || len(s.tables) == 0 {
		return ErrInvalidTransition
	}
	s.phase = PhasePracticing
	return nil
}

// Restart returns to the selecting phase. The selection and the current
// question set are kept.
func (s *Session) Restart() error {
	if s.phase != PhasePracticing {
		return ErrInvalidTransition
	}
	s.phase = PhaseSelecting
	return nil
}

// SetAnswer stores raw input for an open question. It reports whether the
// write was applied; out-of-range and validated indices are ignored.
func (s *Session) SetAnswer(index int, raw string) bool {
	if !s.isOpen(index) {
		return false
	}
	s.answers[index] = raw
	return true
}

// Validate checks the stored answer for an open question and locks it.
// It reports false, changing nothing, when the index is not open or the
// stored answer is not a number.
func (s *Session) Validate(index int) (entities.ValidationResult, bool) {
	if !s.isOpen(index) {
		return entities.ValidationResult{}, false
	}

	answer, ok := parseAnswer(s.answers[index])
	if !ok {
		return entities.ValidationResult{}, false
	}

	q := s.questions[index]
	correctAnswer := q.Product()
	isCorrect := answer == correctAnswer

	category := CategoryIncorrect
	if isCorrect {
		category = CategoryCorrect
	}
	message, err := s.picker.Pick(category)
	if err != nil {
		return entities.ValidationResult{}, false
	}

	s.feedback[index] = entities.Feedback{Message: message, Correct: isCorrect}
	s.validated[index] = true
	if isCorrect {
		s.score.Correct++
	} else {
		s.score.Incorrect++
	}

	return entities.ValidationResult{
		Index:         index,
		Question:      q,
		Answer:        answer,
		CorrectAnswer: correctAnswer,
		IsCorrect:     isCorrect,
		Message:       message,
	}, true
}

// Summary is available once every question of a non-empty set is validated.
func (s *Session) Summary() (entities.Summary, bool) {
	if len(s.questions) == 0 || len(s.validated) != len(s.questions) {
		return entities.Summary{}, false
	}
	return entities.NewSummary(s.score.Correct, s.score.Incorrect), true
}

func (s *Session) isOpen(index int) bool {
	return index >= 0 && index < len(s.questions) && !s.validated[index]
}

// ID returns the identifier of the current question set, empty before the
// first generation.
func (s *Session) ID() string { return s.id }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Score returns the running score.
func (s *Session) Score() entities.Score { return s.score }

// Tables returns the selected tables in ascending order.
func (s *Session) Tables() []int {
	var keys []int
	for k := range s.tables {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// View returns a read-only snapshot for rendering.
func (s *Session) View() View {
	return View{
		ID:        s.id,
		Phase:     s.phase,
		Tables:    s.Tables(),
		Questions: slices.Clone(s.questions),
		Answers:   maps.Clone(s.answers),
		Feedback:  maps.Clone(s.feedback),
		Validated: maps.Clone(s.validated),
		Score:     s.score,
	}
}

// View is a snapshot of a session. Mutating it does not affect the session.
type View struct {
	ID        string
	Phase     Phase
	Tables    []int
	Questions []entities.Question
	Answers   map[int]string
	Feedback  map[int]entities.Feedback
	Validated map[int]bool
	Score     entities.Score
}

// IsSelected reports whether table n is selected.
func (v View) IsSelected(n int) bool {
	return slices.Contains(v.Tables, n)
}

// Open returns indices of questions that are not validated yet, in order.
func (v View) Open() []int {
	var open []int
	for i := range v.Questions {
		if !v.Validated[i] {
			open = append(open, i)
		}
	}
	return open
}

// NextOpen returns the first open index after from, wrapping around.
// It returns -1 when every question is validated.
func (v View) NextOpen(from int) int {
	n := len(v.Questions)
	for step := 1; step <= n; step++ {
		i := ((from+step)%n + n) % n
		if !v.Validated[i] {
			return i
		}
	}
	return -1
}

// Completed reports whether every question of a non-empty set is validated.
func (v View) Completed() bool {
	return len(v.Questions) > 0 && len(v.Validated) == len(v.Questions)
}
