package entities

import "fmt"

// Question is a single multiplication exercise.
type Question struct {
	Num1 int // multiplicand, one of the selected tables
	Num2 int // multiplier, 1..10
}

// Product returns the correct answer for the question.
func (q Question) Product() int {
	return q.Num1 * q.Num2
}

func (q Question) String() string {
	return fmt.Sprintf("%d × %d", q.Num1, q.Num2)
}
