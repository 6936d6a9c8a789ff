package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/tables-trainer-bot/internal/domain/entities"
	"github.com/aliskhannn/tables-trainer-bot/internal/domain/practice"
	"github.com/aliskhannn/tables-trainer-bot/internal/storage"
)

var (
	ErrNotPracticing   = errors.New("practice has not started")
	ErrQuestionNotOpen = errors.New("question is already answered or does not exist")
)

// Screen is what the presentation layer renders for a chat.
type Screen struct {
	View      practice.View
	Focus     int // question the next typed answer goes to, -1 if none
	MessageID int // message showing the screen, 0 if none
}

// AnswerOutcome describes one submitted answer.
type AnswerOutcome struct {
	Applied bool                      // false when the input was ignored
	Result  entities.ValidationResult // set when Applied
	Summary *entities.Summary         // set when this answer completed the set
	Screen  Screen
}

// PracticeService drives per-chat practice sessions.
type PracticeService struct {
	storage  *storage.PracticeStorage
	recorder ResultRecorder
	logger   *zap.Logger
}

// NewPracticeService creates the service. recorder may be nil when history is disabled.
func NewPracticeService(storage *storage.PracticeStorage, recorder ResultRecorder, logger *zap.Logger) *PracticeService {
	return &PracticeService{
		storage:  storage,
		recorder: recorder,
		logger:   logger,
	}
}

// Current returns the chat's screen, creating a fresh session if needed.
func (s *PracticeService) Current(chatID int64) Screen {
	var scr Screen
	_ = s.storage.Update(chatID, func(e *storage.PracticeEntry) error {
		scr = screenOf(e)
		return nil
	})
	return scr
}

// ToggleTable flips a table in the chat's selection.
func (s *PracticeService) ToggleTable(chatID int64, table int) (Screen, error) {
	return s.update(chatID, func(e *storage.PracticeEntry) error {
		if err := e.Session.ToggleTable(table); err != nil {
			return err
		}
		e.Focus = 0
		return nil
	})
}

// Advance starts answering questions.
func (s *PracticeService) Advance(chatID int64) (Screen, error) {
	return s.update(chatID, func(e *storage.PracticeEntry) error {
		if err := e.Session.ConfirmAdvance(); err != nil {
			return err
		}
		e.Focus = e.Session.View().NextOpen(-1)
		return nil
	})
}

// Restart goes back to table selection. Callers confirm with the user first.
func (s *PracticeService) Restart(chatID int64) (Screen, error) {
	return s.update(chatID, func(e *storage.PracticeEntry) error {
		return e.Session.Restart()
	})
}

// Focus points typed answers at question index.
func (s *PracticeService) Focus(chatID int64, index int) (Screen, error) {
	return s.update(chatID, func(e *storage.PracticeEntry) error {
		if e.Session.Phase() != practice.PhasePracticing {
			return ErrNotPracticing
		}
		v := e.Session.View()
		if index < 0 || index >= len(v.Questions) || v.Validated[index] {
			return ErrQuestionNotOpen
		}
		e.Focus = index
		return nil
	})
}

// Skip moves focus to the next open question.
func (s *PracticeService) Skip(chatID int64) (Screen, error) {
	return s.update(chatID, func(e *storage.PracticeEntry) error {
		if e.Session.Phase() != practice.PhasePracticing {
			return ErrNotPracticing
		}
		e.Focus = e.Session.View().NextOpen(e.Focus)
		return nil
	})
}

// SetMessageID remembers which message shows the chat's screen.
func (s *PracticeService) SetMessageID(chatID int64, messageID int) {
	_ = s.storage.Update(chatID, func(e *storage.PracticeEntry) error {
		e.MessageID = messageID
		return nil
	})
}

// SubmitAnswer stores raw input for the focused question and validates it.
// Input that is not a number leaves the session unchanged.
func (s *PracticeService) SubmitAnswer(ctx context.Context, chatID, userID int64, raw string) (AnswerOutcome, error) {
	var (
		out    AnswerOutcome
		result *entities.PracticeResult
	)

	err := s.storage.Update(chatID, func(e *storage.PracticeEntry) error {
		if e.Session.Phase() != practice.PhasePracticing {
			return ErrNotPracticing
		}

		if e.Session.SetAnswer(e.Focus, raw) {
			out.Result, out.Applied = e.Session.Validate(e.Focus)
		}

		if out.Applied {
			e.Focus = e.Session.View().NextOpen(e.Focus)

			if sum, ok := e.Session.Summary(); ok {
				out.Summary = &sum
				result = entities.NewPracticeResult(e.Session.ID(), userID, e.Session.Tables(), sum)
			}
		}

		out.Screen = screenOf(e)
		return nil
	})
	if err != nil {
		return AnswerOutcome{}, err
	}

	if result != nil {
		s.record(ctx, result)
	}

	return out, nil
}

func (s *PracticeService) record(ctx context.Context, res *entities.PracticeResult) {
	s.logger.Info("practice completed",
		zap.Int64("user_id", res.UserID),
		zap.String("session_id", res.SessionID),
		zap.Ints("tables", res.Tables),
		zap.Int("correct", res.Correct),
		zap.Int("incorrect", res.Incorrect),
	)

	if s.recorder == nil {
		return
	}
	if err := s.recorder.Record(ctx, res); err != nil {
		s.logger.Error("failed to record practice result",
			zap.String("session_id", res.SessionID),
			zap.Error(err),
		)
	}
}

func (s *PracticeService) update(chatID int64, fn func(e *storage.PracticeEntry) error) (Screen, error) {
	var scr Screen
	err := s.storage.Update(chatID, func(e *storage.PracticeEntry) error {
		if err := fn(e); err != nil {
			return err
		}
		scr = screenOf(e)
		return nil
	})
	return scr, err
}

func screenOf(e *storage.PracticeEntry) Screen {
	return Screen{
		View:      e.Session.View(),
		Focus:     e.Focus,
		MessageID: e.MessageID,
	}
}
