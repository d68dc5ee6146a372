package scoring

import "context"

// Result is the grading outcome for one submission.
type Result struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// Scorer turns free-text submission content into a numeric score plus
// feedback.
type Scorer interface {
	Score(ctx context.Context, assignmentTitle, assignmentDesc, content string, maxPoints int) (*Result, error)
	Close()
}
