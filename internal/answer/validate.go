package answer

import (
	"context"
	"fmt"
	"strings"
)

// Engine dispatches a question to its per-type validator. An Engine is
// immutable after construction and safe for concurrent use.
type Engine struct {
	vocab         Vocabulary
	judge         Judge
	minConfidence float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithVocabulary replaces the English word lists. Lists left empty in v
// keep their English defaults.
func WithVocabulary(v Vocabulary) Option {
	return func(e *Engine) {
		e.vocab = v.Merge(English())
	}
}

// WithJudge installs a judge that ValidateContext may consult for free-text
// answers the deterministic rules reject. Verdicts below minConfidence are
// ignored.
func WithJudge(j Judge, minConfidence float64) Option {
	return func(e *Engine) {
		e.judge = j
		e.minConfidence = minConfidence
	}
}

// NewEngine returns an Engine using the English vocabulary unless
// overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{vocab: English()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Check grades a against q. It returns an *Error when the question breaks
// its own invariants or the answer has the wrong shape; a wrong answer is
// an Incorrect result, not an error.
func (e *Engine) Check(q Question, a Answer) (Result, error) {
	res, _, err := e.check(q, a)
	return res, err
}

func (e *Engine) check(q Question, a Answer) (Result, Classification, error) {
	if err := q.Validate(); err != nil {
		return Result{}, Classification{}, err
	}
	if q.Type == TypeMultipleAnswer && !a.IsList() {
		return Result{}, Classification{}, malformed("multiple-answer question needs a list answer")
	}
	if q.Type != TypeMultipleAnswer && a.IsList() {
		return Result{}, Classification{}, malformed("%s question needs a single answer, got a list", q.Type)
	}

	c := e.vocab.Classify(q.Text)
	switch q.Type {
	case TypeText:
		return e.vocab.validateText(a.Value(), q.CorrectAnswer, q.Text, c), c, nil
	case TypeMultipleChoice, TypeDropdown:
		return e.vocab.validateChoice(a.Value(), q.CorrectAnswer, c), c, nil
	case TypeTrueFalse:
		return e.vocab.validateTrueFalse(a.Value(), q.CorrectAnswer, q.Text, c), c, nil
	case TypeMultipleAnswer:
		return e.vocab.validateMultiple(a.Values(), q.CorrectAnswers, q.Options, q.Text, c), c, nil
	}
	return Result{}, c, &Error{Kind: KindUnsupportedQuestionType, Msg: string(q.Type)}
}

// Validate is Check with every error folded into an Ungradable result, so
// one bad question never aborts a batch.
func (e *Engine) Validate(q Question, a Answer) Result {
	res, err := e.Check(q, a)
	if err != nil {
		return ungradable()
	}
	return res
}

// ValidateContext is Validate plus the optional judge. The judge is asked
// only about text questions that are neither math nor notation questions,
// and only when the deterministic rules said Incorrect. A judge error or a
// low-confidence verdict leaves the deterministic result in place.
func (e *Engine) ValidateContext(ctx context.Context, q Question, a Answer) Result {
	res, c, err := e.check(q, a)
	if err != nil {
		return ungradable()
	}
	if e.judge == nil || q.Type != TypeText || res.Outcome != Incorrect || c.Math || c.Symbol {
		return res
	}
	if Normalize(a.Value()) == "" {
		return res
	}

	v, err := e.judge.Judge(ctx, JudgeRequest{
		Question:      q.Text,
		CorrectAnswer: q.CorrectAnswer,
		Answer:        a.Value(),
	})
	if err != nil || v.Confidence < e.minConfidence {
		return res
	}
	if v.Correct {
		return correct()
	}
	return res
}

var defaultEngine = NewEngine()

// Validate grades with the default English engine.
func Validate(q Question, a Answer) Result {
	return defaultEngine.Validate(q, a)
}

// Validate checks the structural invariants of a question: a known type,
// the correct-answer field that matches the type, and option membership
// for choice questions.
func (q Question) Validate() error {
	if !q.Type.Known() {
		return &Error{Kind: KindUnsupportedQuestionType, Msg: fmt.Sprintf("unsupported question type %q", q.Type)}
	}

	if q.Type == TypeMultipleAnswer {
		if strings.TrimSpace(q.CorrectAnswer) != "" {
			return malformed("multiple-answer question must use correctAnswers")
		}
		if len(newSet(q.CorrectAnswers)) == 0 {
			return malformed("multiple-answer question has no correct answers")
		}
		if len(q.Options) > 0 {
			opts := newSet(q.Options)
			for _, c := range q.CorrectAnswers {
				if _, ok := opts[Normalize(c)]; !ok {
					return malformed("correct answer %q is not one of the options", c)
				}
			}
		}
		return nil
	}

	if len(q.CorrectAnswers) > 0 {
		return malformed("%s question must use correctAnswer", q.Type)
	}
	if strings.TrimSpace(q.CorrectAnswer) == "" {
		return malformed("%s question is missing its correct answer", q.Type)
	}
	if q.Type == TypeMultipleChoice || q.Type == TypeDropdown {
		if len(newSet(q.Options)) == 0 {
			return malformed("%s question has no options", q.Type)
		}
		if _, ok := newSet(q.Options)[Normalize(q.CorrectAnswer)]; !ok {
			return malformed("correct answer %q is not one of the options", q.CorrectAnswer)
		}
	}
	return nil
}
