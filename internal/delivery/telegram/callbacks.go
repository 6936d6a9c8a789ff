package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/tables-trainer-bot/internal/domain/practice"
	"github.com/aliskhannn/tables-trainer-bot/internal/service"
)

const (
	restartTitle = "Начать заново?"
	restartBody  = "Текущий прогресс будет потерян. Выбранные таблицы сохранятся."
)

// handleCallback routes inline button presses. The returned notice, if any,
// is shown to the user as a toast.
func (h *Handler) handleCallback(_ context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID
	cd := decodeCallback(cb.Data)

	var notice string
	switch cd.Action {
	case actionTables:
		notice = h.handleTablesCallback(chatID, messageID, cd)
	case actionPractice:
		notice = h.handlePracticeCallback(chatID, messageID, cd)
	case actionRestart:
		notice = h.handleRestartCallback(chatID, messageID, cd)
	default:
		h.logger.Debug("unknown callback", zap.String("data", cd.Raw))
	}

	h.answerCallback(cb.ID, notice)
}

func (h *Handler) handleTablesCallback(chatID int64, messageID int, cd callbackData) string {
	// Table buttons stay on old messages; ignore them once practice started.
	if h.practice.Current(chatID).View.Phase != practice.PhaseSelecting {
		return msgFinishSelection
	}

	var (
		scr service.Screen
		err error
	)

	switch cd.sub() {
	case tablesToggle:
		table, ok := cd.intParam(1)
		if !ok {
			h.logger.Debug("invalid table callback", zap.String("data", cd.Raw))
			return ""
		}
		scr, err = h.practice.ToggleTable(chatID, table)

	case tablesNext:
		scr, err = h.practice.Advance(chatID)
		if errors.Is(err, practice.ErrInvalidTransition) {
			return msgSelectTableFirst
		}

	default:
		return ""
	}

	if err != nil {
		h.logger.Warn("tables callback failed",
			zap.Int64("chat_id", chatID),
			zap.String("data", cd.Raw),
			zap.Error(err),
		)
		return ""
	}

	text, kb := renderScreen(scr)
	h.editScreen(chatID, messageID, text, kb)
	return ""
}

func (h *Handler) handlePracticeCallback(chatID int64, messageID int, cd callbackData) string {
	var (
		scr service.Screen
		err error
	)

	switch cd.sub() {
	case practiceQuestion:
		scr = h.practice.Current(chatID)
		if scr.View.Phase != practice.PhasePracticing {
			err = service.ErrNotPracticing
		}

	case practiceSkip:
		scr, err = h.practice.Skip(chatID)

	case practiceFocus:
		index, ok := cd.intParam(1)
		if !ok {
			h.logger.Debug("invalid focus callback", zap.String("data", cd.Raw))
			return ""
		}
		scr, err = h.practice.Focus(chatID, index)

	case practiceBoard:
		page, ok := cd.intParam(1)
		if !ok {
			h.logger.Debug("invalid board callback", zap.String("data", cd.Raw))
			return ""
		}
		scr = h.practice.Current(chatID)
		if scr.View.Phase != practice.PhasePracticing {
			return msgFinishSelection
		}
		text, kb := renderBoard(scr, page)
		h.editScreen(chatID, messageID, text, kb)
		return ""

	default:
		return ""
	}

	switch {
	case errors.Is(err, service.ErrNotPracticing):
		return msgFinishSelection
	case errors.Is(err, service.ErrQuestionNotOpen):
		return msgQuestionNotOpen
	case err != nil:
		h.logger.Warn("practice callback failed",
			zap.Int64("chat_id", chatID),
			zap.String("data", cd.Raw),
			zap.Error(err),
		)
		return ""
	}

	text, kb := renderScreen(scr)
	h.editScreen(chatID, messageID, text, kb)
	return ""
}

// handleRestartCallback gates Restart behind a confirmation dialog.
func (h *Handler) handleRestartCallback(chatID int64, messageID int, cd callbackData) string {
	switch cd.sub() {
	case restartAsk:
		if h.practice.Current(chatID).View.Phase != practice.PhasePracticing {
			return msgFinishSelection
		}
		h.dialog.Confirm(chatID, restartTitle, restartBody,
			buildRestartConfirmCallback(), buildRestartCancelCallback())
		return ""

	case restartConfirm:
		scr, err := h.practice.Restart(chatID)
		if err != nil {
			h.deleteMessage(chatID, messageID)
			if errors.Is(err, practice.ErrInvalidTransition) {
				return msgFinishSelection
			}
			h.logger.Warn("restart failed", zap.Int64("chat_id", chatID), zap.Error(err))
			return ""
		}

		// The confirmation message becomes the new selection screen.
		if scr.MessageID != 0 && scr.MessageID != messageID {
			h.deleteMessage(chatID, scr.MessageID)
		}
		text, kb := renderScreen(scr)
		h.editScreen(chatID, messageID, text, kb)
		return ""

	case restartCancel:
		h.deleteMessage(chatID, messageID)
		return msgRestartCancelled

	default:
		return ""
	}
}
