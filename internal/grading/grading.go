// Package grading grades whole submissions: every item is validated, the
// results are summarized and one response event per item is recorded.
package grading

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/gradekit/internal/answer"
	"github.com/abhisek/gradekit/internal/metrics"
	"github.com/abhisek/gradekit/internal/store"
)

// ErrEmptySubmission is returned by Grade for a submission without items.
var ErrEmptySubmission = errors.New("submission has no items")

// Item is one answered question.
type Item struct {
	Question            answer.Question `json:"question"`
	Answer              answer.Answer   `json:"answer"`
	ResponseTimeSeconds float64         `json:"responseTimeSeconds"`
}

// Submission is a learner's answers to a lesson. ID is generated when empty.
type Submission struct {
	ID        string `json:"id,omitempty"`
	LearnerID string `json:"learnerId,omitempty"`
	Items     []Item `json:"items"`
}

// ItemResult is the grade for the item at Index.
type ItemResult struct {
	Index               int                 `json:"index"`
	QuestionType        answer.QuestionType `json:"questionType"`
	ResponseTimeSeconds float64             `json:"responseTimeSeconds"`
	answer.Result
}

type Report struct {
	SubmissionID string         `json:"submissionId"`
	LearnerID    string         `json:"learnerId,omitempty"`
	Results      []ItemResult   `json:"results"`
	Summary      answer.Summary `json:"summary"`
	GradedAt     time.Time      `json:"gradedAt"`
}

// Service grades submissions. It is safe for concurrent use.
type Service struct {
	engine      *answer.Engine
	repo        store.EventRepo
	metrics     *metrics.Metrics
	logger      *slog.Logger
	concurrency int
}

type Option func(*Service)

// WithRecorder stores one response event per graded item.
func WithRecorder(repo store.EventRepo) Option {
	return func(s *Service) { s.repo = repo }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithConcurrency bounds how many items of one submission are validated
// at once. Values below 1 mean 1.
func WithConcurrency(n int) Option {
	return func(s *Service) { s.concurrency = max(n, 1) }
}

func NewService(engine *answer.Engine, opts ...Option) *Service {
	s := &Service{engine: engine, logger: slog.Default(), concurrency: 4}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Grade validates every item of sub. Bad questions become Ungradable
// results; only an empty submission or a cancelled context is an error.
func (s *Service) Grade(ctx context.Context, sub Submission) (*Report, error) {
	if len(sub.Items) == 0 {
		return nil, ErrEmptySubmission
	}
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	start := time.Now()

	results := make([]ItemResult, len(sub.Items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, item := range sub.Items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = ItemResult{
				Index:               i,
				QuestionType:        item.Question.Type,
				ResponseTimeSeconds: item.ResponseTimeSeconds,
				Result:              s.engine.ValidateContext(gctx, item.Question, item.Answer),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("grade submission %s: %w", sub.ID, err)
	}

	plain := make([]answer.Result, len(results))
	for i, r := range results {
		plain[i] = r.Result
	}
	report := &Report{
		SubmissionID: sub.ID,
		LearnerID:    sub.LearnerID,
		Results:      results,
		Summary:      answer.Summarize(plain),
		GradedAt:     time.Now().UTC(),
	}

	s.record(ctx, report)
	if s.metrics != nil {
		s.metrics.ObserveSubmission(time.Since(start), report.Summary.Percentage)
	}
	s.logger.Info("graded submission",
		"submission", report.SubmissionID,
		"learner", report.LearnerID,
		"total", report.Summary.Total,
		"correct", report.Summary.Correct,
		"ungradable", report.Summary.Ungradable,
		"duration", time.Since(start),
	)
	return report, nil
}

// record writes the response events in item order.
func (s *Service) record(ctx context.Context, r *Report) {
	for _, res := range r.Results {
		if s.metrics != nil {
			s.metrics.ObserveAnswer(string(res.QuestionType), res.Outcome.String())
		}
		if s.repo == nil {
			continue
		}
		err := s.repo.AppendResponse(ctx, store.ResponseEventData{
			SubmissionID:        r.SubmissionID,
			LearnerID:           r.LearnerID,
			QuestionIndex:       res.Index,
			QuestionType:        string(res.QuestionType),
			Outcome:             res.Outcome.String(),
			IsCorrect:           res.IsCorrect,
			ResponseTimeSeconds: res.ResponseTimeSeconds,
		})
		if err != nil {
			s.logger.Warn("failed to record response",
				"submission", r.SubmissionID, "index", res.Index, "error", err)
			if s.metrics != nil {
				s.metrics.RecordFailed()
			}
		}
	}
}

// Responses returns the stored events of one submission.
func (s *Service) Responses(ctx context.Context, submissionID string) ([]store.ResponseEvent, error) {
	if s.repo == nil {
		return nil, nil
	}
	return s.repo.QueryResponses(ctx, store.QueryOpts{SubmissionID: submissionID})
}
