// Package app runs a quiz session over a line-based terminal: one question
// per prompt, answers read from the input, a report card at the end.
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/mathhelper/internal/coach"
	"github.com/abhisek/mathhelper/internal/problemgen"
	"github.com/abhisek/mathhelper/internal/progress"
	"github.com/abhisek/mathhelper/internal/session"
	"github.com/abhisek/mathhelper/internal/store"
)

// QuitCommand abandons the run when typed instead of an answer.
const QuitCommand = "quit"

// EventLog records session start and end events.
type EventLog interface {
	AppendSessionEvent(ctx context.Context, data store.SessionEventData) error
}

// Options wires a Runner. Progress is required; Events, Coach and Logger
// are optional.
type Options struct {
	Student  string
	Progress *progress.Service
	Events   EventLog
	Coach    *coach.Coach
	Logger   *zap.Logger
	In       io.Reader
	Out      io.Writer
}

// Report is everything the student sees after a run.
type Report struct {
	Summary *session.Summary
	Outcome *progress.Outcome
	Note    *coach.Note
}

// Runner plays sessions.
type Runner struct {
	opts   Options
	in     *bufio.Scanner
	out    io.Writer
	logger *zap.Logger
}

func New(opts Options) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		opts:   opts,
		in:     bufio.NewScanner(opts.In),
		out:    opts.Out,
		logger: logger,
	}
}

// Run asks every question of state, records the result and returns the
// report. An abandoned run returns a report with only the summary set.
func (r *Runner) Run(ctx context.Context, state *session.SessionState) (*Report, error) {
	r.event(ctx, state, store.ActionStart, nil)
	r.printf("%s\n", heading(state))
	r.printf("Type %q to stop.\n\n", QuitCommand)

	if err := r.play(state); err != nil {
		return nil, err
	}

	sum := session.BuildSummary(state)
	report := &Report{Summary: sum}
	if sum.Abandoned {
		r.event(ctx, state, store.ActionAbandoned, sum)
		r.printf("\nStopped. This run was not recorded.\n")
		return report, nil
	}
	r.event(ctx, state, store.ActionEnd, sum)

	out, err := r.opts.Progress.Complete(ctx, r.opts.Student, sum)
	if err != nil {
		return nil, err
	}
	report.Outcome = out

	if r.opts.Coach != nil && len(sum.WrongAnswers) > 0 {
		note, err := r.opts.Coach.Review(ctx, sum)
		if err != nil && !errors.Is(err, coach.ErrNothingToReview) {
			r.logger.Warn("review note", zap.Error(err))
		}
		report.Note = note
	}

	WriteReport(r.out, report)
	return report, nil
}

func (r *Runner) play(state *session.SessionState) error {
	for !state.Done() {
		q, err := session.NextQuestion(state)
		if errors.Is(err, session.ErrSessionComplete) {
			break
		}
		if err != nil {
			return err
		}
		r.ask(state, q)

		for {
			line, ok := r.readLine()
			if !ok || strings.EqualFold(line, QuitCommand) {
				session.Abandon(state)
				return nil
			}
			streaks := len(state.StreakMilestones)
			correct, err := session.HandleAnswer(state, line)
			if errors.Is(err, problemgen.ErrNoAnswer) {
				r.printf("Please type an answer: ")
				continue
			}
			if err != nil {
				return err
			}
			if correct {
				r.printf("Correct!\n")
			} else {
				r.printf("Not quite. The answer was %s.\n", q.Answer)
			}
			if len(state.StreakMilestones) > streaks {
				r.printf("Streak of %d in a row!\n", state.StreakMilestones[len(state.StreakMilestones)-1])
			}
			r.printf("\n")
			break
		}
	}
	if state.EndedEarly {
		r.printf("No new questions left for this skill, finishing after %d.\n", state.MaxQuestions)
	}
	return nil
}

func (r *Runner) ask(state *session.SessionState, q *problemgen.Question) {
	r.printf("Question %d of %d\n", state.CurrentIndex, state.MaxQuestions)
	if q.Picture != "" {
		r.printf("  %s\n", q.Picture)
	}
	r.printf("%s\n", q.Text)
	for i, c := range q.Choices {
		r.printf("  %s) %s\n", problemgen.PanelLabel(i), c)
	}
	r.printf("> ")
}

func (r *Runner) readLine() (string, bool) {
	if !r.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(r.in.Text()), true
}

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

func (r *Runner) event(ctx context.Context, state *session.SessionState, action string, sum *session.Summary) {
	if r.opts.Events == nil {
		return
	}
	data := store.SessionEventData{
		Student:   r.opts.Student,
		SessionID: state.ID,
		Action:    action,
		Mode:      string(state.Plan.Mode),
		SkillID:   string(state.SkillID),
		Tier:      state.Tier.String(),
	}
	if sum != nil {
		data.QuestionsServed = state.CurrentIndex - 1
		data.CorrectAnswers = sum.NumCorrect
		data.Grade = sum.Grade
		data.DurationSecs = int(sum.Duration.Seconds())
	}
	if err := r.opts.Events.AppendSessionEvent(ctx, data); err != nil {
		r.logger.Warn("record session event", zap.String("action", action), zap.Error(err))
	}
}

func heading(state *session.SessionState) string {
	name := state.Plan.Mode.Title(state.SkillID)
	return fmt.Sprintf("%s (%s), %d questions", name, state.Tier.DisplayName(), state.MaxQuestions)
}
