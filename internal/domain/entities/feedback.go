package entities

// Feedback is written for a question once its answer has been validated.
type Feedback struct {
	Message string
	Correct bool
}

// Score holds running counts of validated answers.
type Score struct {
	Correct   int
	Incorrect int
}

// Total returns the number of validated answers.
func (s Score) Total() int {
	return s.Correct + s.Incorrect
}

// ValidationResult describes the outcome of validating one answer.
// It carries everything the presentation layer needs to announce the result.
type ValidationResult struct {
	Index         int      // question index in the current set
	Question      Question // validated question
	Answer        int      // parsed user answer
	CorrectAnswer int      // num1 × num2
	IsCorrect     bool     // whether Answer == CorrectAnswer
	Message       string   // random feedback message for the category
}
