package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Handler struct {
	bot      Bot
	logger   *zap.Logger
	practice PracticeService
	users    UserService    // nil when history is disabled
	history  HistoryService // nil when history is disabled
	dialog   *Dialog
}

func NewHandler(
	bot Bot,
	logger *zap.Logger,
	practice PracticeService,
	users UserService,
	history HistoryService,
) *Handler {
	return &Handler{
		bot:      bot,
		logger:   logger,
		practice: practice,
		users:    users,
		history:  history,
		dialog:   NewDialog(bot, logger),
	}
}

// Run processes updates one at a time until ctx is done.
func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if cb := update.CallbackQuery; cb != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", cb.From.ID),
			zap.String("data", cb.Data),
		)
		if cb.Message != nil {
			h.ensureUser(ctx, cb.From, cb.Message.Chat.ID)
		}
		h.handleCallback(ctx, cb)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	from := update.Message.From
	chatID := update.Message.Chat.ID
	h.ensureUser(ctx, from, chatID)

	if update.Message.IsCommand() {
		switch update.Message.Command() {
		case "start":
			_ = h.withErrorHandling(h.handleStart())(ctx, chatID)
		case "practice":
			_ = h.withErrorHandling(h.handlePractice())(ctx, chatID)
		case "stats":
			_ = h.withErrorHandling(h.handleStats(from.ID))(ctx, chatID)
		case "help":
			_ = h.withErrorHandling(h.handleHelp())(ctx, chatID)
		default:
			_ = h.send(newPlainMessage(chatID, msgUnknownCommand))
		}
		return
	}

	_ = h.withErrorHandling(h.handleAnswer(from.ID, update.Message.Text))(ctx, chatID)
}

func (h *Handler) ensureUser(ctx context.Context, from *tgbotapi.User, chatID int64) {
	if h.users == nil || from == nil {
		return
	}
	if err := h.users.EnsureUser(ctx, from.ID, chatID, from.UserName); err != nil {
		h.logger.Error("failed to ensure user",
			zap.Int64("user_id", from.ID),
			zap.Error(err),
		)
	}
}

// sendScreen replaces the chat's screen message with a fresh one at the bottom of the chat.
func (h *Handler) sendScreen(chatID int64, oldMessageID int, text string, kb tgbotapi.InlineKeyboardMarkup) error {
	if oldMessageID != 0 {
		h.deleteMessage(chatID, oldMessageID)
	}

	msg := newMessage(chatID, text)
	msg.ReplyMarkup = kb

	sent, err := h.bot.Send(msg)
	if err != nil {
		return err
	}
	h.practice.SetMessageID(chatID, sent.MessageID)
	return nil
}

// editScreen redraws the screen in an existing message.
func (h *Handler) editScreen(chatID int64, messageID int, text string, kb tgbotapi.InlineKeyboardMarkup) {
	edit := newEdit(chatID, messageID, text)
	edit.ReplyMarkup = &kb

	_ = h.send(edit)
	h.practice.SetMessageID(chatID, messageID)
}

func (h *Handler) deleteMessage(chatID int64, messageID int) {
	if _, err := h.bot.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		h.logger.Debug("failed to delete message",
			zap.Int64("chat_id", chatID),
			zap.Int("message_id", messageID),
			zap.Error(err),
		)
	}
}

func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.Debug("callback answer error", zap.Error(err))
	}
}

func (h *Handler) sendError(chatID int64, text string) {
	_ = h.send(newPlainMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}
