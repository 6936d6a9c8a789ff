package service

import (
	"context"
	"errors"
	"math/rand"
	"strconv"
	"testing"

	"go.uber.org/zap"

	"github.com/aliskhannn/tables-trainer-bot/internal/domain/entities"
	"github.com/aliskhannn/tables-trainer-bot/internal/domain/practice"
	"github.com/aliskhannn/tables-trainer-bot/internal/storage"
)

type fakeRecorder struct {
	results []*entities.PracticeResult
	err     error
}

func (f *fakeRecorder) Record(_ context.Context, res *entities.PracticeResult) error {
	f.results = append(f.results, res)
	return f.err
}

func newTestPracticeService(rec ResultRecorder) *PracticeService {
	st := storage.NewPracticeStorage(func() *practice.Session {
		return practice.NewSession(
			practice.WithGenerator(practice.NewGenerator(rand.New(rand.NewSource(5)))),
		)
	})
	return NewPracticeService(st, rec, zap.NewNop())
}

const testChat, testUser = int64(100), int64(200)

func startPractice(t *testing.T, s *PracticeService, tables ...int) Screen {
	t.Helper()
	for _, n := range tables {
		if _, err := s.ToggleTable(testChat, n); err != nil {
			t.Fatalf("ToggleTable(%d): %v", n, err)
		}
	}
	scr, err := s.Advance(testChat)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	return scr
}

func TestPracticeService_AdvanceRequiresSelection(t *testing.T) {
	s := newTestPracticeService(nil)

	if _, err := s.Advance(testChat); !errors.Is(err, practice.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if s.Current(testChat).View.Phase != practice.PhaseSelecting {
		t.Error("expected to stay in selecting phase")
	}
}

func TestPracticeService_AdvanceFocusesFirstQuestion(t *testing.T) {
	s := newTestPracticeService(nil)
	scr := startPractice(t, s, 3)

	if scr.View.Phase != practice.PhasePracticing {
		t.Fatalf("expected practicing phase, got %s", scr.View.Phase)
	}
	if scr.Focus != 0 {
		t.Errorf("Focus = %d, want 0", scr.Focus)
	}
	if len(scr.View.Questions) != 10 {
		t.Errorf("expected 10 questions, got %d", len(scr.View.Questions))
	}
}

func TestPracticeService_SubmitAnswerBeforeStart(t *testing.T) {
	s := newTestPracticeService(nil)

	if _, err := s.SubmitAnswer(context.Background(), testChat, testUser, "4"); !errors.Is(err, ErrNotPracticing) {
		t.Errorf("expected ErrNotPracticing, got %v", err)
	}
}

func TestPracticeService_SubmitAnswerMovesFocus(t *testing.T) {
	s := newTestPracticeService(nil)
	scr := startPractice(t, s, 4)
	q := scr.View.Questions[0]

	out, err := s.SubmitAnswer(context.Background(), testChat, testUser, strconv.Itoa(q.Product()))
	if err != nil {
		t.Fatal(err)
	}
	if !out.Applied || !out.Result.IsCorrect {
		t.Fatalf("expected a correct applied answer, got %+v", out)
	}
	if out.Screen.Focus != 1 {
		t.Errorf("Focus = %d, want 1", out.Screen.Focus)
	}
	if out.Screen.View.Score.Correct != 1 {
		t.Errorf("score = %+v, want one correct", out.Screen.View.Score)
	}
	if out.Summary != nil {
		t.Error("expected no summary yet")
	}
}

func TestPracticeService_SubmitNonNumeric(t *testing.T) {
	s := newTestPracticeService(nil)
	startPractice(t, s, 5)

	out, err := s.SubmitAnswer(context.Background(), testChat, testUser, "abc")
	if err != nil {
		t.Fatal(err)
	}
	if out.Applied {
		t.Error("expected non-numeric input to be ignored")
	}
	if len(out.Screen.View.Validated) != 0 || out.Screen.View.Score.Total() != 0 {
		t.Errorf("expected no state change, got %+v", out.Screen.View.Score)
	}
	if out.Screen.Focus != 0 {
		t.Errorf("expected focus to stay at 0, got %d", out.Screen.Focus)
	}
}

func TestPracticeService_CompletionRecordsOnce(t *testing.T) {
	rec := &fakeRecorder{}
	s := newTestPracticeService(rec)
	scr := startPractice(t, s, 2, 3)

	var last AnswerOutcome
	for i := 0; i < len(scr.View.Questions); i++ {
		focus := s.Current(testChat).Focus
		q := scr.View.Questions[focus]

		value := q.Product()
		if i < 2 {
			value++
		}

		out, err := s.SubmitAnswer(context.Background(), testChat, testUser, strconv.Itoa(value))
		if err != nil {
			t.Fatal(err)
		}
		if !out.Applied {
			t.Fatalf("answer %d was ignored", i)
		}
		last = out
	}

	if last.Summary == nil {
		t.Fatal("expected summary after the last answer")
	}
	if last.Summary.AccuracyString() != "90.00%" || last.Summary.Outcome != entities.OutcomeExcellent {
		t.Errorf("unexpected summary %+v", last.Summary)
	}
	if last.Screen.Focus != -1 {
		t.Errorf("Focus = %d, want -1 when complete", last.Screen.Focus)
	}

	if len(rec.results) != 1 {
		t.Fatalf("expected one recorded result, got %d", len(rec.results))
	}
	res := rec.results[0]
	if res.UserID != testUser || res.Correct != 18 || res.Incorrect != 2 {
		t.Errorf("unexpected result %+v", res)
	}
	if len(res.Tables) != 2 || res.Tables[0] != 2 || res.Tables[1] != 3 {
		t.Errorf("Tables = %v, want [2 3]", res.Tables)
	}
	if res.SessionID == "" || res.SessionID != last.Screen.View.ID {
		t.Errorf("SessionID = %q, want %q", res.SessionID, last.Screen.View.ID)
	}

	// Further input after completion is ignored and not recorded again.
	out, err := s.SubmitAnswer(context.Background(), testChat, testUser, "1")
	if err != nil {
		t.Fatal(err)
	}
	if out.Applied || len(rec.results) != 1 {
		t.Error("expected no more recording after completion")
	}
}

func TestPracticeService_RecorderErrorIsNotFatal(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("db down")}
	s := newTestPracticeService(rec)
	scr := startPractice(t, s, 1)

	for range scr.View.Questions {
		focus := s.Current(testChat).Focus
		answer := strconv.Itoa(scr.View.Questions[focus].Product())
		if _, err := s.SubmitAnswer(context.Background(), testChat, testUser, answer); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if len(rec.results) != 1 {
		t.Errorf("expected one record attempt, got %d", len(rec.results))
	}
}

func TestPracticeService_FocusAndSkip(t *testing.T) {
	s := newTestPracticeService(nil)
	scr := startPractice(t, s, 6)

	scr, err := s.Focus(testChat, 5)
	if err != nil {
		t.Fatal(err)
	}
	if scr.Focus != 5 {
		t.Fatalf("Focus = %d, want 5", scr.Focus)
	}

	answer := strconv.Itoa(scr.View.Questions[5].Product())
	if _, err := s.SubmitAnswer(context.Background(), testChat, testUser, answer); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Focus(testChat, 5); !errors.Is(err, ErrQuestionNotOpen) {
		t.Errorf("expected ErrQuestionNotOpen for answered question, got %v", err)
	}
	if _, err := s.Focus(testChat, 10); !errors.Is(err, ErrQuestionNotOpen) {
		t.Errorf("expected ErrQuestionNotOpen out of range, got %v", err)
	}

	scr, err = s.Focus(testChat, 9)
	if err != nil {
		t.Fatal(err)
	}
	scr, err = s.Skip(testChat)
	if err != nil {
		t.Fatal(err)
	}
	if scr.Focus != 0 {
		t.Errorf("Skip from 9 = %d, want 0", scr.Focus)
	}
}

func TestPracticeService_FocusWhileSelecting(t *testing.T) {
	s := newTestPracticeService(nil)
	if _, err := s.ToggleTable(testChat, 2); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Focus(testChat, 0); !errors.Is(err, ErrNotPracticing) {
		t.Errorf("Focus: expected ErrNotPracticing, got %v", err)
	}
	if _, err := s.Skip(testChat); !errors.Is(err, ErrNotPracticing) {
		t.Errorf("Skip: expected ErrNotPracticing, got %v", err)
	}
}

func TestPracticeService_RestartKeepsSelection(t *testing.T) {
	s := newTestPracticeService(nil)
	startPractice(t, s, 7, 8)

	scr, err := s.Restart(testChat)
	if err != nil {
		t.Fatal(err)
	}
	if scr.View.Phase != practice.PhaseSelecting {
		t.Errorf("expected selecting phase, got %s", scr.View.Phase)
	}
	if !scr.View.IsSelected(7) || !scr.View.IsSelected(8) {
		t.Errorf("expected selection to persist, got %v", scr.View.Tables)
	}

	if _, err := s.Restart(testChat); !errors.Is(err, practice.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition on second restart, got %v", err)
	}
}

func TestPracticeService_SetMessageID(t *testing.T) {
	s := newTestPracticeService(nil)
	s.SetMessageID(testChat, 77)

	if got := s.Current(testChat).MessageID; got != 77 {
		t.Errorf("MessageID = %d, want 77", got)
	}
}
