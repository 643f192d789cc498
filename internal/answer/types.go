package answer

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// QuestionType is the closed set of question categories the engine grades.
type QuestionType string

const (
	TypeText           QuestionType = "text"
	TypeMultipleChoice QuestionType = "multiple-choice"
	TypeMultipleAnswer QuestionType = "multiple-answer"
	TypeTrueFalse      QuestionType = "true-false"
	TypeDropdown       QuestionType = "dropdown"
)

// Known reports whether t is one of the supported question types.
func (t QuestionType) Known() bool {
	switch t {
	case TypeText, TypeMultipleChoice, TypeMultipleAnswer, TypeTrueFalse, TypeDropdown:
		return true
	}
	return false
}

// Question is a generated question as supplied by the question source.
type Question struct {
	// Text is the prompt shown to the learner.
	Text string `json:"text" yaml:"text"`

	// Type selects the validator.
	Type QuestionType `json:"type" yaml:"type"`

	// Options is populated for multiple-choice, dropdown and multiple-answer.
	Options []string `json:"options,omitempty" yaml:"options,omitempty"`

	// CorrectAnswer is populated for text, multiple-choice, dropdown and
	// true-false questions.
	CorrectAnswer string `json:"correctAnswer,omitempty" yaml:"correctAnswer,omitempty"`

	// CorrectAnswers is populated for multiple-answer questions only.
	CorrectAnswers []string `json:"correctAnswers,omitempty" yaml:"correctAnswers,omitempty"`
}

// Answer is what the learner submitted: a single string for every type
// except multiple-answer, which takes a list.
type Answer struct {
	value  string
	values []string
	list   bool
}

// Text builds a scalar answer.
func Text(s string) Answer {
	return Answer{value: s}
}

// List builds a multi-select answer.
func List(items ...string) Answer {
	return Answer{values: append([]string(nil), items...), list: true}
}

// IsList reports whether the answer was submitted as a list.
func (a Answer) IsList() bool { return a.list }

// Value returns the scalar value (empty for list answers).
func (a Answer) Value() string { return a.value }

// Values returns a copy of the list items (nil for scalar answers).
func (a Answer) Values() []string {
	if !a.list {
		return nil
	}
	return append([]string(nil), a.values...)
}

// String renders the answer for logs and persistence.
func (a Answer) String() string {
	if a.list {
		return strings.Join(a.values, ", ")
	}
	return a.value
}

// MarshalJSON encodes a scalar as a JSON string and a list as an array.
func (a Answer) MarshalJSON() ([]byte, error) {
	if a.list {
		if a.values == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(a.values)
	}
	return json.Marshal(a.value)
}

// UnmarshalJSON accepts either a JSON string or an array of strings.
func (a *Answer) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Text(s)
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("answer must be a string or an array of strings: %w", err)
	}
	*a = List(items...)
	return nil
}

// UnmarshalYAML accepts either a scalar or a sequence of scalars.
func (a *Answer) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*a = Text(node.Value)
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return fmt.Errorf("decode answer list: %w", err)
		}
		*a = List(items...)
		return nil
	default:
		return fmt.Errorf("answer must be a string or a list of strings (line %d)", node.Line)
	}
}

// Outcome is the tri-state grading verdict.
type Outcome int

const (
	// Ungradable means the engine could not judge the answer with confidence.
	// It is deliberately the zero value so an unset result is never "wrong".
	Ungradable Outcome = iota
	Correct
	Incorrect
)

func (o Outcome) String() string {
	switch o {
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	default:
		return "ungradable"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Outcome) UnmarshalText(b []byte) error {
	switch string(b) {
	case "correct":
		*o = Correct
	case "incorrect":
		*o = Incorrect
	case "ungradable":
		*o = Ungradable
	default:
		return fmt.Errorf("unknown outcome %q", string(b))
	}
	return nil
}

// Result is the verdict for one question.
type Result struct {
	Outcome     Outcome `json:"outcome"`
	IsCorrect   bool    `json:"isCorrect"`
	Explanation string  `json:"explanation,omitempty"`
}

func correct() Result {
	return Result{Outcome: Correct, IsCorrect: true}
}

func incorrect(explanation string) Result {
	return Result{Outcome: Incorrect, Explanation: explanation}
}

// UngradableMessage is shown to learners when grading could not complete.
const UngradableMessage = "We could not verify this answer automatically."

func ungradable() Result {
	return Result{Outcome: Ungradable, Explanation: UngradableMessage}
}

// ComparisonOperator is the relation named by a comparison question.
type ComparisonOperator int

const (
	EqualTo ComparisonOperator = iota
	LessThan
	GreaterThan
	LessOrEqual
	GreaterOrEqual
)

func (op ComparisonOperator) String() string {
	switch op {
	case LessThan:
		return "less than"
	case GreaterThan:
		return "greater than"
	case LessOrEqual:
		return "less than or equal to"
	case GreaterOrEqual:
		return "greater than or equal to"
	default:
		return "equal to"
	}
}

// Apply evaluates left <op> right.
func (op ComparisonOperator) Apply(left, right float64) bool {
	switch op {
	case LessThan:
		return left < right
	case GreaterThan:
		return left > right
	case LessOrEqual:
		return left <= right
	case GreaterOrEqual:
		return left >= right
	default:
		return left == right
	}
}

// ComparisonPredicate is a relation extracted from question text.
type ComparisonPredicate struct {
	Operator ComparisonOperator
	Left     float64
	Right    float64
}

// Holds reports whether the predicate is true.
func (p ComparisonPredicate) Holds() bool {
	return p.Operator.Apply(p.Left, p.Right)
}
