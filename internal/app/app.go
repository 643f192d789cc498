// Package app is the interactive practice mode: a Bubble Tea program that
// walks a question set, grades each answer as it is given and ends with
// a summary.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/abhisek/gradekit/internal/answer"
	"github.com/abhisek/gradekit/internal/questionset"
	"github.com/abhisek/gradekit/internal/store"
	"github.com/abhisek/gradekit/internal/ui/components"
	"github.com/abhisek/gradekit/internal/ui/layout"
	"github.com/abhisek/gradekit/internal/ui/theme"
)

type phase int

const (
	asking phase = iota
	grading
	feedback
	finished
)

// gradedMsg carries the result for the question at index.
type gradedMsg struct {
	index  int
	result answer.Result
}

// Model is the root Bubble Tea model for a practice run.
type Model struct {
	ctx       context.Context
	set       *questionset.Set
	engine    *answer.Engine
	repo      store.EventRepo
	logger    *slog.Logger
	now       func() time.Time
	learnerID string
	runID     string

	index   int
	phase   phase
	started time.Time
	input   components.TextInput
	choices components.ChoiceList
	last    answer.Result
	results []answer.Result

	width  int
	height int
}

type Option func(*Model)

// WithRecorder stores a response event for every answered question.
func WithRecorder(repo store.EventRepo) Option {
	return func(m *Model) { m.repo = repo }
}

func WithLearner(id string) Option {
	return func(m *Model) { m.learnerID = id }
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// WithClock replaces time.Now for response timing.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// New creates a practice model over set. The set must contain at least
// one question.
func New(ctx context.Context, set *questionset.Set, engine *answer.Engine, opts ...Option) Model {
	m := Model{
		ctx:    ctx,
		set:    set,
		engine: engine,
		logger: slog.Default(),
		now:    time.Now,
		runID:  uuid.NewString(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.startQuestion()
	return m
}

// RunID is the submission ID response events are recorded under.
func (m Model) RunID() string { return m.runID }

// Results returns the results graded so far, in question order.
func (m Model) Results() []answer.Result {
	return append([]answer.Result(nil), m.results...)
}

func (m Model) Done() bool { return m.phase == finished }

func (m *Model) startQuestion() {
	q := m.question()
	m.phase = asking
	m.started = m.now()
	switch q.Type {
	case answer.TypeText:
		m.input = components.NewTextInput("Type your answer", 256)
	case answer.TypeTrueFalse:
		m.choices = components.NewChoiceList([]string{"True", "False"}, false)
	default:
		m.choices = components.NewChoiceList(q.Options, q.Type == answer.TypeMultipleAnswer)
	}
}

func (m Model) question() answer.Question {
	return m.set.Questions[m.index]
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case gradedMsg:
		if m.phase != grading || msg.index != m.index {
			return m, nil
		}
		m.last = msg.result
		m.results = append(m.results, msg.result)
		m.phase = feedback
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.phase {
		case asking:
			return m.handleAnswerKey(msg)
		case feedback:
			if key == "enter" {
				if m.index+1 < len(m.set.Questions) {
					m.index++
					m.startQuestion()
					return m, nil
				}
				m.phase = finished
			}
			return m, nil
		case finished:
			if key == "enter" || key == "q" || key == "esc" {
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m Model) handleAnswerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	q := m.question()
	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "enter":
		a, ok := m.currentAnswer(q)
		if !ok {
			return m, nil
		}
		m.phase = grading
		return m, m.grade(m.index, q, a, m.now().Sub(m.started))
	}

	var cmd tea.Cmd
	if q.Type == answer.TypeText {
		m.input, cmd = m.input.Update(msg)
	} else {
		m.choices, cmd = m.choices.Update(msg)
	}
	return m, cmd
}

// currentAnswer reads the learner's input. Blank text is not submitted
// but an empty multi-select is.
func (m Model) currentAnswer(q answer.Question) (answer.Answer, bool) {
	switch q.Type {
	case answer.TypeText:
		v := m.input.Value()
		if strings.TrimSpace(v) == "" {
			return answer.Answer{}, false
		}
		return answer.Text(v), true
	case answer.TypeMultipleAnswer:
		return answer.List(m.choices.Selected()...), true
	default:
		sel := m.choices.Selected()
		if len(sel) == 0 {
			return answer.Answer{}, false
		}
		return answer.Text(sel[0]), true
	}
}

// grade validates and records off the UI goroutine.
func (m Model) grade(index int, q answer.Question, a answer.Answer, elapsed time.Duration) tea.Cmd {
	ctx, engine, repo, logger := m.ctx, m.engine, m.repo, m.logger
	runID, learnerID := m.runID, m.learnerID
	return func() tea.Msg {
		r := engine.ValidateContext(ctx, q, a)
		if repo != nil {
			err := repo.AppendResponse(ctx, store.ResponseEventData{
				SubmissionID:        runID,
				LearnerID:           learnerID,
				QuestionIndex:       index,
				QuestionType:        string(q.Type),
				Outcome:             r.Outcome.String(),
				IsCorrect:           r.IsCorrect,
				ResponseTimeSeconds: elapsed.Seconds(),
			})
			if err != nil {
				logger.Warn("failed to record response", "submission", runID, "index", index, "error", err)
			}
		}
		return gradedMsg{index: index, result: r}
	}
}

func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m Model) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	status := fmt.Sprintf("%d/%d", min(m.index+1, len(m.set.Questions)), len(m.set.Questions))
	header := layout.RenderHeader(m.set.Title, status, m.width)
	footer := layout.RenderFooter(m.hints(), m.width)
	return layout.RenderFrame(header, m.content(), footer, m.width, m.height)
}

func (m Model) hints() []layout.KeyHint {
	switch m.phase {
	case feedback:
		return []layout.KeyHint{{Key: "Enter", Description: "Continue"}, {Key: "Ctrl+C", Description: "Quit"}}
	case finished:
		return []layout.KeyHint{{Key: "Enter", Description: "Exit"}}
	}
	hints := []layout.KeyHint{{Key: "Enter", Description: "Submit"}, {Key: "Esc", Description: "Quit"}}
	if m.question().Type != answer.TypeText {
		hints = append([]layout.KeyHint{{Key: "↑↓", Description: "Move"}}, hints...)
	}
	if m.question().Type == answer.TypeMultipleAnswer {
		hints = append([]layout.KeyHint{{Key: "Space", Description: "Toggle"}}, hints...)
	}
	return hints
}

func (m Model) content() string {
	if m.phase == finished {
		return m.summaryView()
	}

	q := m.question()
	var b strings.Builder
	b.WriteString(components.NewProgressBar(len(m.results), len(m.set.Questions), min(m.width-4, 60)).View())
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Bold(true).Render(q.Text))
	b.WriteString("\n\n")
	if q.Type == answer.TypeText {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	} else {
		b.WriteString(m.choices.View())
	}

	switch m.phase {
	case grading:
		b.WriteString("\n" + theme.Hint.Render("Checking..."))
	case feedback:
		b.WriteString("\n" + feedbackView(m.last))
	}
	return theme.Card.Width(min(m.width-2, 80)).Render(b.String())
}

func feedbackView(r answer.Result) string {
	var line string
	switch r.Outcome {
	case answer.Correct:
		line = theme.Correct.Render("✓ Correct")
	case answer.Incorrect:
		line = theme.Incorrect.Render("✗ Not quite")
	default:
		line = theme.Pending.Render("? Needs review")
	}
	if r.Explanation != "" {
		line += "\n" + theme.Hint.Render(r.Explanation)
	}
	return line
}

func (m Model) summaryView() string {
	s := answer.Summarize(m.results)
	rows := []string{
		theme.Title.Render("Practice complete"),
		"",
		theme.Correct.Render(fmt.Sprintf("Correct     %d", s.Correct)),
		theme.Incorrect.Render(fmt.Sprintf("Incorrect   %d", s.Incorrect)),
		theme.Pending.Render(fmt.Sprintf("Ungradable  %d", s.Ungradable)),
		"",
		theme.Body.Render(fmt.Sprintf("Score %.0f%%", s.Percentage)),
	}
	return theme.Card.Width(min(m.width-2, 60)).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// Run starts the practice program and returns the final model.
func Run(ctx context.Context, m Model) (Model, error) {
	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil {
		return m, fmt.Errorf("run practice: %w", err)
	}
	return final.(Model), nil
}
