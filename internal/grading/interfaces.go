package grading

type Grader interface {
	Grade(input string, correct Answer) bool
}
