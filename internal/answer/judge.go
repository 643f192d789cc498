package answer

import "context"

// JudgeRequest is the free-text answer a Judge is asked about.
type JudgeRequest struct {
	Question      string `json:"question"`
	CorrectAnswer string `json:"correctAnswer"`
	Answer        string `json:"answer"`
}

// Verdict is a judge's opinion on a JudgeRequest.
type Verdict struct {
	Correct    bool    `json:"correct"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning,omitempty"`
}

// Judge decides whether a free-text answer means the same as the expected
// one when literal comparison fails, e.g. a paraphrased definition.
type Judge interface {
	Judge(ctx context.Context, req JudgeRequest) (Verdict, error)
}

// JudgeFunc adapts a function to the Judge interface.
type JudgeFunc func(ctx context.Context, req JudgeRequest) (Verdict, error)

func (f JudgeFunc) Judge(ctx context.Context, req JudgeRequest) (Verdict, error) {
	return f(ctx, req)
}
