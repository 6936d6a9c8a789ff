// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/tables-trainer-bot/internal/domain/entities"
	"github.com/aliskhannn/tables-trainer-bot/internal/domain/practice"
	"github.com/aliskhannn/tables-trainer-bot/internal/service"
)

// Plain messages.
const (
	msgInternalError      = "Что‑то пошло не так. Попробуйте позже."
	msgUnknownCommand     = "Неизвестная команда. Список доступных команд:\n\n/start — начать тренировку\n/practice — вернуться к тренировке\n/stats — статистика\n/help — помощь"
	msgSelectTableFirst   = "Сначала выберите хотя бы одну таблицу."
	msgFinishSelection    = "Эта кнопка устарела. Используйте /practice."
	msgQuestionNotOpen    = "На этот вопрос уже есть ответ."
	msgHistoryUnavailable = "Статистика недоступна: история тренировок не ведётся."
	msgStatsUnavailable   = "Не удалось получить статистику. Попробуйте позже."
	msgRestartCancelled   = "Продолжаем тренировку."
	msgAnswerNumber       = "Ответ отправляйте числом."
)

const boardPageSize = 10

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

func welcomeMarkdownV2() string {
	var sb strings.Builder

	sb.WriteString(bold("🧮 Тренажёр таблицы умножения"))
	sb.WriteString("\n\n")
	sb.WriteString(md("Выберите таблицы от 1 до 10, а затем отвечайте на вопросы в случайном порядке. "))
	sb.WriteString(md("Ответ отправляйте обычным сообщением с числом."))
	sb.WriteString("\n\n")
	sb.WriteString(md("В конце вы увидите итог: сколько ответов верных и какая точность."))

	return sb.String()
}

func helpMarkdownV2() string {
	var sb strings.Builder

	sb.WriteString(bold("Как пользоваться"))
	sb.WriteString("\n\n")
	sb.WriteString(md("1. Нажмите на номера таблиц, которые хотите повторить."))
	sb.WriteString("\n")
	sb.WriteString(md("2. Нажмите «Далее ▶️»."))
	sb.WriteString("\n")
	sb.WriteString(md("3. Отправляйте ответы числом. «⏭ Пропустить» переходит к следующему вопросу, «📋 Все вопросы» показывает список."))
	sb.WriteString("\n\n")
	sb.WriteString(italic("Если изменить выбор таблиц, вопросы перемешаются заново и прогресс сбросится."))
	sb.WriteString("\n\n")
	sb.WriteString(md("/start — начать\n/practice — вернуться к тренировке\n/stats — статистика"))

	return sb.String()
}

// renderScreen picks the screen for the current phase.
func renderScreen(scr service.Screen) (string, tgbotapi.InlineKeyboardMarkup) {
	if scr.View.Phase == practice.PhaseSelecting {
		return renderSelection(scr.View)
	}
	if sum, ok := summaryOf(scr.View); ok {
		return renderSummary(sum)
	}
	if scr.Focus < 0 || scr.Focus >= len(scr.View.Questions) || scr.View.Validated[scr.Focus] {
		scr.Focus = scr.View.NextOpen(-1)
	}
	return renderQuestion(scr)
}

func renderSelection(v practice.View) (string, tgbotapi.InlineKeyboardMarkup) {
	var sb strings.Builder

	sb.WriteString(bold("🧮 Выберите таблицы"))
	sb.WriteString("\n\n")

	if len(v.Tables) == 0 {
		sb.WriteString(md("Нажмите на числа, чтобы выбрать таблицы для тренировки."))
	} else {
		sb.WriteString(md(fmt.Sprintf("Выбрано: %s", joinInts(v.Tables))))
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("Вопросов: %d", len(v.Questions))))
	}

	return sb.String(), buildSelectionKeyboard(v)
}

func renderQuestion(scr service.Screen) (string, tgbotapi.InlineKeyboardMarkup) {
	v := scr.View
	q := v.Questions[scr.Focus]

	var sb strings.Builder

	sb.WriteString(md(fmt.Sprintf("📝 Вопрос %d из %d", scr.Focus+1, len(v.Questions))))
	sb.WriteString("\n\n")
	sb.WriteString(bold(q.String() + " = ?"))
	sb.WriteString("\n\n")
	sb.WriteString(md(scoreLine(v)))
	sb.WriteString("\n\n")
	sb.WriteString(italic(msgAnswerNumber))

	return sb.String(), buildQuestionKeyboard()
}

func renderBoard(scr service.Screen, page int) (string, tgbotapi.InlineKeyboardMarkup) {
	v := scr.View
	totalPages := boardPages(len(v.Questions))
	page = min(max(page, 0), totalPages-1)

	from := page * boardPageSize
	to := min(from+boardPageSize, len(v.Questions))

	var sb strings.Builder

	sb.WriteString(bold(fmt.Sprintf("📋 Вопросы (страница %d из %d)", page+1, totalPages)))
	sb.WriteString("\n\n")

	for i := from; i < to; i++ {
		sb.WriteString(md(boardLine(v, i)))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(md(scoreLine(v)))

	return sb.String(), buildBoardKeyboard(v, page, totalPages, from, to)
}

func boardLine(v practice.View, i int) string {
	q := v.Questions[i]

	if !v.Validated[i] {
		return fmt.Sprintf("⏳ %d. %s = ?", i+1, q)
	}

	answer := strings.TrimSpace(v.Answers[i])
	if v.Feedback[i].Correct {
		return fmt.Sprintf("✅ %d. %s = %s", i+1, q, answer)
	}
	return fmt.Sprintf("❌ %d. %s = %s (верно: %d)", i+1, q, answer, q.Product())
}

func boardPages(n int) int {
	if n == 0 {
		return 1
	}
	return (n + boardPageSize - 1) / boardPageSize
}

func scoreLine(v practice.View) string {
	return fmt.Sprintf("✅ Верно: %d   ❌ Неверно: %d   ⏳ Осталось: %d",
		v.Score.Correct, v.Score.Incorrect, len(v.Questions)-len(v.Validated))
}

func summaryOf(v practice.View) (entities.Summary, bool) {
	if !v.Completed() {
		return entities.Summary{}, false
	}
	return entities.NewSummary(v.Score.Correct, v.Score.Incorrect), true
}

func renderSummary(s entities.Summary) (string, tgbotapi.InlineKeyboardMarkup) {
	var sb strings.Builder

	sb.WriteString(md(moodEmoji(s.Mood)))
	sb.WriteString("\n\n")
	sb.WriteString(bold("Итоги тренировки"))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("✅ Верных: %d", s.Correct)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("❌ Неверных: %d", s.Incorrect)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("📊 Точность: %s", s.AccuracyString())))
	sb.WriteString("\n\n")
	sb.WriteString(bold(outcomeText(s.Outcome)))

	return sb.String(), buildSummaryKeyboard()
}

func moodEmoji(m entities.Mood) string {
	switch m {
	case entities.MoodHappy:
		return "😃"
	case entities.MoodNeutral:
		return "😐"
	default:
		return "😢"
	}
}

func outcomeText(o entities.Outcome) string {
	if o == entities.OutcomeExcellent {
		return "🎉 Отличная работа!"
	}
	return "📖 Продолжай тренироваться."
}

// validationNotice returns dialog kind, title and body for a validated answer.
func validationNotice(res entities.ValidationResult) (NoticeKind, string, string) {
	if res.IsCorrect {
		return NoticeSuccess, res.Message, fmt.Sprintf("%s = %d", res.Question, res.CorrectAnswer)
	}
	return NoticeError, res.Message,
		fmt.Sprintf("Ваш ответ: %d. Правильно: %s = %d", res.Answer, res.Question, res.CorrectAnswer)
}

func renderStats(r *service.Report) string {
	var sb strings.Builder

	sb.WriteString(bold("📊 Ваша статистика"))
	sb.WriteString("\n\n")

	st := r.Stats
	if st.Sessions == 0 {
		sb.WriteString(md("Пока нет завершённых тренировок. Начните с /start!"))
		return sb.String()
	}

	sb.WriteString(md(fmt.Sprintf("🏁 Тренировок: %d", st.Sessions)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("✅ Верных ответов: %d", st.TotalCorrect)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("❌ Неверных ответов: %d", st.TotalIncorrect)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("🎯 Общая точность: %.2f%%", st.Accuracy())))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("🏆 Лучший результат: %.2f%%", st.BestAccuracy)))

	if len(r.Recent) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(bold("Последние тренировки"))
		for _, res := range r.Recent {
			sb.WriteString("\n")
			sb.WriteString(md(fmt.Sprintf("%s · таблицы %s · %d/%d · %.2f%%",
				res.CompletedAt.Format("02.01.2006"),
				joinInts(res.Tables),
				res.Correct,
				res.Correct+res.Incorrect,
				res.Accuracy,
			)))
		}
	}

	return sb.String()
}

func joinInts(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
