package session

import (
	"errors"

	"go.uber.org/zap"

	"github.com/abhisek/mathhelper/internal/problemgen"
	"github.com/abhisek/mathhelper/internal/rewards"
)

var (
	// ErrSessionComplete is returned by NextQuestion once the run has no
	// more questions to ask.
	ErrSessionComplete = errors.New("session complete")

	// ErrNoQuestion is returned by HandleAnswer when no question is
	// waiting for an answer.
	ErrNoQuestion = errors.New("no question is awaiting an answer")
)

// NextQuestion draws the next question and marks it displayed. Calling it
// again before the question is answered returns the same question.
//
// A standalone run whose skill runs out of questions ends early: the budget
// shrinks to the number of questions already asked and ErrSessionComplete is
// returned. A final exam instead picks another skill.
func NextQuestion(state *SessionState) (*problemgen.Question, error) {
	if state.Done() {
		return nil, ErrSessionComplete
	}
	if state.Phase == PhaseQuestionDisplayed && state.CurrentQuestion != nil {
		return state.CurrentQuestion, nil
	}
	if state.CurrentIndex > state.MaxQuestions {
		state.Phase = PhaseComplete
		return nil, ErrSessionComplete
	}

	q, err := drawQuestion(state)
	if errors.Is(err, ErrAllSkillsExhausted) {
		state.MaxQuestions = state.CurrentIndex - 1
		state.EndedEarly = true
		state.Phase = PhaseComplete
		state.logger.Info("session ended early, no questions left",
			zap.Int("asked", state.MaxQuestions))
		return nil, ErrSessionComplete
	}
	if err != nil {
		return nil, err
	}

	state.CurrentQuestion = q
	state.Phase = PhaseQuestionDisplayed
	state.logger.Debug("question issued",
		zap.Int("index", state.CurrentIndex),
		zapSkill(q.SkillID),
		zap.String("text", q.Text))
	return q, nil
}

// HandleAnswer scores the student's answer to the current question. A correct
// answer increments NumCorrect; a wrong one appends a line to the
// wrong-answer log. Either way the question index advances and the session
// completes once the budget is used.
//
// An empty answer returns problemgen.ErrNoAnswer and leaves the session
// unchanged so the same question can be answered again.
func HandleAnswer(state *SessionState, answer string) (bool, error) {
	q := state.CurrentQuestion
	if q == nil || state.Phase != PhaseQuestionDisplayed {
		return false, ErrNoQuestion
	}

	correct, err := problemgen.CheckAnswer(answer, q)
	if err != nil {
		return false, err
	}

	if sr := state.PerSkill[q.SkillID]; sr != nil {
		sr.Attempted++
		if correct {
			sr.Correct++
		}
	}

	if correct {
		state.NumCorrect++
		recordStreak(state)
	} else {
		state.ConsecutiveCorrect = 0
		state.NextStreakThreshold = rewards.BaseStreakThreshold

		resolved, _ := problemgen.ResolveAnswer(answer, q)
		line := describeMiss(q, resolved)
		state.WrongAnswers = append(state.WrongAnswers, line)
		state.logger.Debug("wrong answer", zap.String("entry", line))
	}

	state.CurrentQuestion = nil
	state.CurrentIndex++
	state.Phase = PhaseEvaluated
	if state.CurrentIndex > state.MaxQuestions {
		state.Phase = PhaseComplete
		state.logger.Debug("session complete",
			zap.Int("correct", state.NumCorrect),
			zap.Int("max_questions", state.MaxQuestions))
	}
	return correct, nil
}

// Abandon discards the run. Nothing about an abandoned session is graded or
// recorded.
func Abandon(state *SessionState) {
	if state.Done() {
		return
	}
	state.Phase = PhaseAbandoned
	state.CurrentQuestion = nil
	state.trackers = nil
	state.logger.Debug("session abandoned", zap.Int("index", state.CurrentIndex))
}

func recordStreak(state *SessionState) {
	state.ConsecutiveCorrect++
	if state.ConsecutiveCorrect > state.BestStreak {
		state.BestStreak = state.ConsecutiveCorrect
	}
	if state.ConsecutiveCorrect >= state.NextStreakThreshold {
		state.StreakMilestones = append(state.StreakMilestones, state.ConsecutiveCorrect)
		state.NextStreakThreshold = rewards.NextStreakThreshold(state.ConsecutiveCorrect)
	}
}

// describeMiss formats the wrong-answer log line with the question's own
// strategy.
func describeMiss(q *problemgen.Question, submitted string) string {
	strategy, err := problemgen.ForSkill(q.SkillID)
	if err != nil {
		return problemgen.DescribeMiss(q, submitted)
	}
	return strategy.Describe(q, submitted)
}
