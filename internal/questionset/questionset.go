// Package questionset loads question sets, submissions and vocabulary
// overrides from YAML or JSON files.
package questionset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/gradekit/internal/answer"
	"github.com/abhisek/gradekit/internal/grading"
)

// Set is a lesson's questions.
type Set struct {
	Title     string            `json:"title" yaml:"title" validate:"required"`
	Subject   string            `json:"subject,omitempty" yaml:"subject,omitempty"`
	Questions []answer.Question `json:"questions" yaml:"questions" validate:"required,min=1,dive"`
}

// Submission is a learner's answers to a Set, by question index.
type Submission struct {
	ID        string     `json:"id,omitempty" yaml:"id,omitempty"`
	LearnerID string     `json:"learnerId" yaml:"learnerId" validate:"required"`
	Answers   []Response `json:"answers" yaml:"answers" validate:"required,min=1,dive"`
}

type Response struct {
	Index               int           `json:"index" yaml:"index" validate:"gte=0"`
	Answer              answer.Answer `json:"answer" yaml:"answer"`
	ResponseTimeSeconds float64       `json:"responseTimeSeconds,omitempty" yaml:"responseTimeSeconds,omitempty" validate:"gte=0"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(questionLevel, answer.Question{})
	return v
}

// questionLevel applies the engine's own construction checks, so a set
// that loads is a set the engine can grade.
func questionLevel(sl validator.StructLevel) {
	q := sl.Current().Interface().(answer.Question)
	if strings.TrimSpace(q.Text) == "" {
		sl.ReportError(q.Text, "Text", "text", "required", "")
	}
	if err := q.Validate(); err != nil {
		sl.ReportError(q.Type, "Type", "type", "question", err.Error())
	}
}

// LoadSet reads and validates a question set.
func LoadSet(path string) (*Set, error) {
	var s Set
	if err := load(path, &s); err != nil {
		return nil, fmt.Errorf("load question set: %w", err)
	}
	return &s, nil
}

// LoadSubmission reads and validates a submission file.
func LoadSubmission(path string) (*Submission, error) {
	var s Submission
	if err := load(path, &s); err != nil {
		return nil, fmt.Errorf("load submission: %w", err)
	}
	return &s, nil
}

// LoadVocabulary reads a YAML vocabulary override. Lists it leaves out
// keep their English defaults once handed to answer.WithVocabulary.
func LoadVocabulary(path string) (answer.Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return answer.Vocabulary{}, fmt.Errorf("read vocabulary: %w", err)
	}
	var v answer.Vocabulary
	if err := decodeYAML(data, &v); err != nil {
		return answer.Vocabulary{}, fmt.Errorf("load vocabulary: %w", err)
	}
	return v, nil
}

// Bind pairs each response with its question.
func (s *Set) Bind(sub *Submission) (grading.Submission, error) {
	out := grading.Submission{ID: sub.ID, LearnerID: sub.LearnerID}
	for _, r := range sub.Answers {
		if r.Index >= len(s.Questions) {
			return grading.Submission{}, fmt.Errorf("answer for question %d, but the set has %d questions", r.Index, len(s.Questions))
		}
		out.Items = append(out.Items, grading.Item{
			Question:            s.Questions[r.Index],
			Answer:              r.Answer,
			ResponseTimeSeconds: r.ResponseTimeSeconds,
		})
	}
	return out, nil
}

func load(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		err = decodeJSON(data, dst)
	} else {
		err = decodeYAML(data, dst)
	}
	if err != nil {
		return err
	}
	return Validate(dst)
}

// Validate runs the struct-tag checks on a Set, Submission or Question and
// flattens the failures into one error.
func Validate(v any) error {
	err := validate.Struct(v)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		msg := fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag())
		if fe.Param() != "" {
			msg = fmt.Sprintf("%s: %s", fe.Namespace(), fe.Param())
		}
		msgs = append(msgs, errors.New(msg))
	}
	return errors.Join(msgs...)
}

func decodeJSON(data []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("parse json: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("parse json: multiple documents are not supported")
	}
	return nil
}

func decodeYAML(data []byte, dst any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("parse yaml: multiple documents are not supported")
	}
	return nil
}
