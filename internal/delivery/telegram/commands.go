package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/tables-trainer-bot/internal/service"
)

// handleStart greets the user and shows the current screen.
func (h *Handler) handleStart() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := h.send(newMessage(chatID, welcomeMarkdownV2())); err != nil {
			return err
		}
		return h.handlePractice()(ctx, chatID)
	}
}

// handlePractice re-sends the current screen at the bottom of the chat.
func (h *Handler) handlePractice() HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		scr := h.practice.Current(chatID)
		text, kb := renderScreen(scr)
		return h.sendScreen(chatID, scr.MessageID, text, kb)
	}
}

func (h *Handler) handleHelp() HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		return h.send(newMessage(chatID, helpMarkdownV2()))
	}
}

// handleStats displays the user's practice history.
func (h *Handler) handleStats(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if h.history == nil {
			return h.send(newPlainMessage(chatID, msgHistoryUnavailable))
		}

		report, err := h.history.Report(ctx, userID)
		if err != nil {
			h.logger.Error("failed to get practice report",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			return h.send(newPlainMessage(chatID, msgStatsUnavailable))
		}

		return h.send(newMessage(chatID, renderStats(report)))
	}
}

// handleAnswer treats any plain text as the answer to the focused question.
// Text that is not a number just shows the question again.
func (h *Handler) handleAnswer(userID int64, text string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		out, err := h.practice.SubmitAnswer(ctx, chatID, userID, text)
		if errors.Is(err, service.ErrNotPracticing) {
			return h.handlePractice()(ctx, chatID)
		}
		if err != nil {
			return err
		}

		if out.Applied {
			kind, title, body := validationNotice(out.Result)
			h.dialog.Notify(chatID, kind, title, body)

			h.logger.Debug("answer validated",
				zap.Int64("chat_id", chatID),
				zap.Int("index", out.Result.Index),
				zap.Bool("correct", out.Result.IsCorrect),
			)
		}

		screenText, kb := renderScreen(out.Screen)
		return h.sendScreen(chatID, out.Screen.MessageID, screenText, kb)
	}
}
