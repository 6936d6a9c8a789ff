package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionTables   = "tables"
	actionPractice = "practice"
	actionRestart  = "restart"
)

// Tables sub-actions.
const (
	tablesToggle = "toggle"
	tablesNext   = "next"
)

// Practice sub-actions.
const (
	practiceQuestion = "question"
	practiceSkip     = "skip"
	practiceBoard    = "board"
	practiceFocus    = "focus"
)

// Restart sub-actions.
const (
	restartAsk     = "ask"
	restartConfirm = "confirm"
	restartCancel  = "cancel"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// sub returns the first parameter, empty if there is none.
func (cd callbackData) sub() string {
	if len(cd.Params) == 0 {
		return ""
	}
	return cd.Params[0]
}

// intParam parses the i-th parameter as an integer.
func (cd callbackData) intParam(i int) (int, bool) {
	if i >= len(cd.Params) {
		return 0, false
	}
	n, err := strconv.Atoi(cd.Params[i])
	if err != nil {
		return 0, false
	}
	return n, true
}

func buildTableToggleCallback(table int) string {
	return callbackData{
		Action: actionTables,
		Params: []string{tablesToggle, strconv.Itoa(table)},
	}.encode()
}

func buildTablesNextCallback() string {
	return callbackData{Action: actionTables, Params: []string{tablesNext}}.encode()
}

func buildQuestionCallback() string {
	return callbackData{Action: actionPractice, Params: []string{practiceQuestion}}.encode()
}

func buildSkipCallback() string {
	return callbackData{Action: actionPractice, Params: []string{practiceSkip}}.encode()
}

// buildBoardCallback builds callback data for a page of the question board.
func buildBoardCallback(page int) string {
	return callbackData{
		Action: actionPractice,
		Params: []string{practiceBoard, strconv.Itoa(page)},
	}.encode()
}

// buildFocusCallback builds callback data for answering a specific question.
func buildFocusCallback(index int) string {
	return callbackData{
		Action: actionPractice,
		Params: []string{practiceFocus, strconv.Itoa(index)},
	}.encode()
}

func buildRestartAskCallback() string {
	return callbackData{Action: actionRestart, Params: []string{restartAsk}}.encode()
}

func buildRestartConfirmCallback() string {
	return callbackData{Action: actionRestart, Params: []string{restartConfirm}}.encode()
}

func buildRestartCancelCallback() string {
	return callbackData{Action: actionRestart, Params: []string{restartCancel}}.encode()
}
