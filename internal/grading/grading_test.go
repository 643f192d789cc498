package grading

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/gradekit/internal/answer"
	"github.com/abhisek/gradekit/internal/metrics"
	"github.com/abhisek/gradekit/internal/store"
)

func lesson() Submission {
	return Submission{
		LearnerID: "kim",
		Items: []Item{
			{
				Question:            answer.Question{Type: answer.TypeText, Text: "What is 7 × 8?", CorrectAnswer: "56"},
				Answer:              answer.Text("56"),
				ResponseTimeSeconds: 4.2,
			},
			{
				Question: answer.Question{
					Type:          answer.TypeMultipleChoice,
					Text:          "Which planet is closest to the sun?",
					Options:       []string{"Mercury", "Venus", "Mars"},
					CorrectAnswer: "Mercury",
				},
				Answer:              answer.Text("Venus"),
				ResponseTimeSeconds: 3,
			},
			{
				Question:            answer.Question{Type: "essay", Text: "Describe the water cycle.", CorrectAnswer: "..."},
				Answer:              answer.Text("Rain falls."),
				ResponseTimeSeconds: 30,
			},
			{
				Question: answer.Question{
					Type:           answer.TypeMultipleAnswer,
					Text:           "Select the even numbers.",
					Options:        []string{"2", "3", "4"},
					CorrectAnswers: []string{"2", "4"},
				},
				Answer:              answer.List("4", "2"),
				ResponseTimeSeconds: 6,
			},
		},
	}
}

func openStore(t *testing.T) store.EventRepo {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "grading.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s.EventRepo()
}

func TestGrade(t *testing.T) {
	repo := openStore(t)
	m := metrics.New()
	svc := NewService(answer.NewEngine(), WithRecorder(repo), WithMetrics(m), WithConcurrency(2))

	report, err := svc.Grade(context.Background(), lesson())
	require.NoError(t, err)

	assert.NotEmpty(t, report.SubmissionID)
	require.Len(t, report.Results, 4)
	for i, r := range report.Results {
		assert.Equal(t, i, r.Index)
	}
	assert.Equal(t, answer.Correct, report.Results[0].Outcome)
	assert.Equal(t, answer.Incorrect, report.Results[1].Outcome)
	assert.Equal(t, answer.Ungradable, report.Results[2].Outcome)
	assert.Equal(t, answer.Correct, report.Results[3].Outcome)

	sum := report.Summary
	assert.Equal(t, [4]int{4, 2, 1, 1}, [4]int{sum.Total, sum.Correct, sum.Incorrect, sum.Ungradable})
	assert.InDelta(t, 66.667, sum.Percentage, 0.001)

	events, err := svc.Responses(context.Background(), report.SubmissionID)
	require.NoError(t, err)
	require.Len(t, events, 4)
	for i, e := range events {
		assert.Equal(t, i, e.QuestionIndex)
		assert.Equal(t, "kim", e.LearnerID)
		assert.Equal(t, report.Results[i].Outcome.String(), e.Outcome)
		assert.Equal(t, report.Results[i].IsCorrect, e.IsCorrect)
	}
	assert.InDelta(t, 4.2, events[0].ResponseTimeSeconds, 1e-9)
	assert.Equal(t, "essay", events[2].QuestionType)

	expected := `
# HELP gradekit_grading_answers_total Validated answers by question type and outcome
# TYPE gradekit_grading_answers_total counter
gradekit_grading_answers_total{outcome="correct",type="multiple-answer"} 1
gradekit_grading_answers_total{outcome="correct",type="text"} 1
gradekit_grading_answers_total{outcome="incorrect",type="multiple-choice"} 1
gradekit_grading_answers_total{outcome="ungradable",type="essay"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry, strings.NewReader(expected), "gradekit_grading_answers_total"))
}

func TestGrade_KeepsGivenID(t *testing.T) {
	sub := lesson()
	sub.ID = "lesson-42"
	report, err := NewService(answer.NewEngine()).Grade(context.Background(), sub)
	require.NoError(t, err)
	assert.Equal(t, "lesson-42", report.SubmissionID)
}

func TestGrade_Empty(t *testing.T) {
	_, err := NewService(answer.NewEngine()).Grade(context.Background(), Submission{})
	assert.ErrorIs(t, err, ErrEmptySubmission)
}

func TestGrade_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewService(answer.NewEngine()).Grade(ctx, lesson())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGrade_OrderMatchesSequentialValidation(t *testing.T) {
	sub := lesson()
	for range 5 {
		sub.Items = append(sub.Items, sub.Items...)
	}
	engine := answer.NewEngine()
	report, err := NewService(engine, WithConcurrency(8)).Grade(context.Background(), sub)
	require.NoError(t, err)

	for i, item := range sub.Items {
		assert.Equal(t, engine.Validate(item.Question, item.Answer), report.Results[i].Result, "item %d", i)
	}
}

type failingRepo struct {
	store.EventRepo
	calls atomic.Int32
}

func (f *failingRepo) AppendResponse(context.Context, store.ResponseEventData) error {
	f.calls.Add(1)
	return errors.New("database is locked")
}

func TestGrade_RecordFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	repo := &failingRepo{}
	svc := NewService(answer.NewEngine(),
		WithRecorder(repo),
		WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
	)

	report, err := svc.Grade(context.Background(), lesson())
	require.NoError(t, err)
	assert.Len(t, report.Results, 4)
	assert.Equal(t, int32(4), repo.calls.Load())
	assert.Contains(t, buf.String(), "failed to record response")
	assert.Contains(t, buf.String(), "database is locked")
}

func TestGrade_UsesJudge(t *testing.T) {
	judge := answer.JudgeFunc(func(_ context.Context, req answer.JudgeRequest) (answer.Verdict, error) {
		return answer.Verdict{Correct: req.Answer == "the mitochondria", Confidence: 1}, nil
	})
	engine := answer.NewEngine(answer.WithJudge(judge, 0.5))
	sub := Submission{Items: []Item{{
		Question: answer.Question{Type: answer.TypeText, Text: "Which organelle produces energy for the cell?", CorrectAnswer: "mitochondria"},
		Answer:   answer.Text("the mitochondria"),
	}}}

	report, err := NewService(engine).Grade(context.Background(), sub)
	require.NoError(t, err)
	assert.Equal(t, answer.Correct, report.Results[0].Outcome)
	assert.WithinDuration(t, time.Now(), report.GradedAt, time.Minute)
}
