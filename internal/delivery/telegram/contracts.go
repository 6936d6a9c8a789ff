package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/tables-trainer-bot/internal/service"
)

// Bot is the part of the Telegram API the handler uses.
type Bot interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type PracticeService interface {
	Current(chatID int64) service.Screen
	ToggleTable(chatID int64, table int) (service.Screen, error)
	Advance(chatID int64) (service.Screen, error)
	Restart(chatID int64) (service.Screen, error)
	Focus(chatID int64, index int) (service.Screen, error)
	Skip(chatID int64) (service.Screen, error)
	SetMessageID(chatID int64, messageID int)
	SubmitAnswer(ctx context.Context, chatID, userID int64, raw string) (service.AnswerOutcome, error)
}

type UserService interface {
	EnsureUser(ctx context.Context, userID, chatID int64, username string) error
}

type HistoryService interface {
	Report(ctx context.Context, userID int64) (*service.Report, error)
}
