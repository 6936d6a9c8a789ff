package telegram

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/tables-trainer-bot/internal/domain/practice"
)

const tablesPerRow = 5

// buildSelectionKeyboard builds the table picker. The next button appears
// only when something is selected.
func buildSelectionKeyboard(v practice.View) tgbotapi.InlineKeyboardMarkup {
	var (
		rows [][]tgbotapi.InlineKeyboardButton
		row  []tgbotapi.InlineKeyboardButton
	)

	for n := practice.MinTable; n <= practice.MaxTable; n++ {
		label := strconv.Itoa(n)
		if v.IsSelected(n) {
			label = "✅ " + label
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, buildTableToggleCallback(n)))

		if len(row) == tablesPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	if len(v.Tables) > 0 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Далее ▶️", buildTablesNextCallback()),
		))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildQuestionKeyboard builds keyboard for the focused question.
func buildQuestionKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏭ Пропустить", buildSkipCallback()),
			tgbotapi.NewInlineKeyboardButtonData("📋 Все вопросы", buildBoardCallback(0)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Начать заново", buildRestartAskCallback()),
		),
	)
}

// buildBoardKeyboard builds buttons for unanswered questions on the page plus pagination.
func buildBoardKeyboard(v practice.View, page, totalPages, from, to int) tgbotapi.InlineKeyboardMarkup {
	var (
		rows [][]tgbotapi.InlineKeyboardButton
		row  []tgbotapi.InlineKeyboardButton
	)

	for i := from; i < to; i++ {
		if v.Validated[i] {
			continue
		}
		label := strconv.Itoa(i+1) + ". " + v.Questions[i].String()
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, buildFocusCallback(i)))

		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	var nav []tgbotapi.InlineKeyboardButton
	if page > 0 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("◀️ Назад", buildBoardCallback(page-1)))
	}
	if page < totalPages-1 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("Вперёд ▶️", buildBoardCallback(page+1)))
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("↩️ К вопросу", buildQuestionCallback()),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildSummaryKeyboard builds keyboard for the results screen.
func buildSummaryKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Начать заново", buildRestartAskCallback()),
		),
	)
}

// buildConfirmKeyboard builds yes/no buttons for a confirmation dialog.
func buildConfirmKeyboard(yesData, noData string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Да", yesData),
			tgbotapi.NewInlineKeyboardButtonData("❌ Нет", noData),
		),
	)
}
