package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// NoticeKind selects the icon of a notification.
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeSuccess
	NoticeError
	NoticeWarning
)

func (k NoticeKind) icon() string {
	switch k {
	case NoticeSuccess:
		return "✅"
	case NoticeError:
		return "❌"
	case NoticeWarning:
		return "⚠️"
	default:
		return "ℹ️"
	}
}

// Dialog shows notifications and confirmation prompts in a chat.
// Both are fire-and-forget: a confirmation's answer arrives later as a callback.
type Dialog struct {
	bot    Bot
	logger *zap.Logger
}

func NewDialog(bot Bot, logger *zap.Logger) *Dialog {
	return &Dialog{bot: bot, logger: logger}
}

// Notify sends a short titled message.
func (d *Dialog) Notify(chatID int64, kind NoticeKind, title, body string) {
	d.send(newMessage(chatID, noticeText(kind, title, body)))
}

// Confirm asks a yes/no question. yesData and noData are the callbacks
// delivered for each answer.
func (d *Dialog) Confirm(chatID int64, title, body, yesData, noData string) {
	msg := newMessage(chatID, noticeText(NoticeWarning, title, body))
	msg.ReplyMarkup = buildConfirmKeyboard(yesData, noData)
	d.send(msg)
}

func (d *Dialog) send(c tgbotapi.Chattable) {
	if _, err := d.bot.Send(c); err != nil {
		d.logger.Error("failed to send dialog message", zap.Error(err))
	}
}

func noticeText(kind NoticeKind, title, body string) string {
	text := md(kind.icon()+" ") + bold(title)
	if body != "" {
		text += "\n" + md(body)
	}
	return text
}
