// Package judge implements answer.Judge over a language model, with an
// optional verdict cache in front of it.
package judge

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/gradekit/internal/answer"
	"github.com/abhisek/gradekit/internal/llm"
)

// Purpose labels the LLM requests made by the judge.
const Purpose = "answer-judge"

// VerdictSchema constrains the model reply.
var VerdictSchema = &llm.Schema{
	Name:        "answer-verdict",
	Description: "Whether a learner's free-text answer means the same as the expected answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"correct": map[string]any{
				"type":        "boolean",
				"description": "true when the learner's answer is acceptable",
			},
			"confidence": map[string]any{
				"type":        "number",
				"minimum":     0.0,
				"maximum":     1.0,
				"description": "how sure the grader is, from 0 to 1",
			},
			"reasoning": map[string]any{
				"type":        "string",
				"description": "one sentence explaining the decision",
			},
		},
		"required":             []any{"correct", "confidence", "reasoning"},
		"additionalProperties": false,
	},
}

const systemPrompt = `You grade short free-text answers to quiz questions.
Decide whether the learner's answer means the same thing as the expected answer.
Accept paraphrases, synonyms and minor spelling mistakes.
Reject answers that are vague, partially correct or that contradict the expected answer.
Reply only with the requested JSON.`

// LLMJudge asks a language model whether an answer is acceptable.
type LLMJudge struct {
	provider llm.Provider
}

func NewLLMJudge(p llm.Provider) *LLMJudge {
	return &LLMJudge{provider: p}
}

func (j *LLMJudge) Judge(ctx context.Context, req answer.JudgeRequest) (answer.Verdict, error) {
	resp, err := j.provider.Generate(llm.WithPurpose(ctx, Purpose), llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt(req)}},
		Schema:      VerdictSchema,
		MaxTokens:   256,
		Temperature: 0,
	})
	if err != nil {
		return answer.Verdict{}, fmt.Errorf("judge answer: %w", err)
	}

	var v answer.Verdict
	if err := json.Unmarshal(resp.Content, &v); err != nil {
		return answer.Verdict{}, fmt.Errorf("decode verdict: %w", err)
	}
	return v, nil
}

func prompt(req answer.JudgeRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n", req.Question)
	fmt.Fprintf(&b, "Expected answer: %s\n", req.CorrectAnswer)
	fmt.Fprintf(&b, "Learner's answer: %s\n", req.Answer)
	return b.String()
}
