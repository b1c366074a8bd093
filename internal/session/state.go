package session

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/mathhelper/internal/problemgen"
	"github.com/abhisek/mathhelper/internal/rewards"
	"github.com/abhisek/mathhelper/internal/skill"
)

// SessionPhase represents the current phase of the session.
type SessionPhase int

const (
	PhaseAwaitingQuestion  SessionPhase = iota // Ready to draw the next question
	PhaseQuestionDisplayed                     // A question is waiting for an answer
	PhaseEvaluated                             // The last answer has been scored
	PhaseComplete                              // Budget used up or pool exhausted
	PhaseAbandoned                             // Discarded by the student
)

// String returns the phase name used in logs.
func (p SessionPhase) String() string {
	switch p {
	case PhaseAwaitingQuestion:
		return "awaiting-question"
	case PhaseQuestionDisplayed:
		return "question-displayed"
	case PhaseEvaluated:
		return "evaluated"
	case PhaseComplete:
		return "complete"
	case PhaseAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// SessionState tracks the runtime state of one test, practice run or final
// exam. It is owned by a single caller and is not safe for concurrent use.
type SessionState struct {
	// ID is the UUID for this session.
	ID string

	// Plan is the session plan built at start.
	Plan *Plan

	// SkillID is the tested skill, or skill.Final for the cumulative exam.
	SkillID skill.ID

	// Tier is the difficulty tier of the run.
	Tier skill.Tier

	// MaxQuestions is the number of questions the run asks. It only
	// shrinks when a standalone skill runs out of questions early.
	MaxQuestions int

	// CurrentIndex is the 1-based number of the question being asked. It
	// reaches MaxQuestions+1 when the run is complete.
	CurrentIndex int

	// NumCorrect is the count of correct answers so far.
	NumCorrect int

	// WrongAnswers is the wrong-answer log, in the order the misses happened.
	WrongAnswers []string

	// Practice is true for ungraded runs.
	Practice bool

	// Phase is the current session phase.
	Phase SessionPhase

	// CurrentQuestion is the active question (nil between questions).
	CurrentQuestion *problemgen.Question

	// PerSkill tracks per-skill stats for the summary.
	PerSkill map[skill.ID]*SkillResult

	// ConsecutiveCorrect is the current run of correct answers.
	ConsecutiveCorrect int

	// BestStreak is the longest run of correct answers in this session.
	BestStreak int

	// NextStreakThreshold is the next streak length that earns an award.
	NextStreakThreshold int

	// StreakMilestones are the streak thresholds reached, in order.
	StreakMilestones []int

	// StartTime is when the session began.
	StartTime time.Time

	// EndedEarly is set when a standalone skill ran out of questions before
	// its budget was used.
	EndedEarly bool

	trackers  map[skill.ID]*problemgen.Tracker
	exhausted map[skill.ID]bool
	rng       problemgen.Source
	logger    *zap.Logger
}

// SkillResult tracks per-skill performance within a single session.
type SkillResult struct {
	SkillID   skill.ID
	SkillName string
	Attempted int
	Correct   int
}

// Options configures a new session.
type Options struct {
	// SkillID is the skill to test. Ignored by NewFinalExam.
	SkillID skill.ID

	// Tier is the difficulty tier. Out-of-range values mean Easy.
	Tier skill.Tier

	// Practice marks the run as ungraded. Ignored by NewFinalExam.
	Practice bool

	// Rand is the random source. Defaults to a wall-clock seeded source.
	Rand problemgen.Source

	// SessionID overrides the generated session ID.
	SessionID string

	// Logger receives debug events. Defaults to a no-op logger.
	Logger *zap.Logger
}

// New starts a standalone skill test or practice run.
func New(opts Options) (*SessionState, error) {
	plan, err := NewPlan(opts.SkillID, opts.Tier, opts.Practice)
	if err != nil {
		return nil, err
	}
	return newSessionState(plan, opts), nil
}

// NewFinalExam starts the cumulative exam. It is always graded.
func NewFinalExam(opts Options) *SessionState {
	return newSessionState(NewFinalPlan(opts.Tier), opts)
}

func newSessionState(plan *Plan, opts Options) *SessionState {
	id := opts.SessionID
	if id == "" {
		id = uuid.New().String()
	}
	rng := opts.Rand
	if rng == nil {
		rng = problemgen.NewTimeSource()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	perSkill := make(map[skill.ID]*SkillResult, len(plan.Skills))
	for _, sid := range plan.Skills {
		perSkill[sid] = &SkillResult{SkillID: sid, SkillName: skill.Name(sid)}
	}

	state := &SessionState{
		ID:                  id,
		Plan:                plan,
		SkillID:             plan.SkillID,
		Tier:                plan.Tier,
		MaxQuestions:        plan.MaxQuestions,
		CurrentIndex:        1,
		Practice:            plan.Mode == ModePractice,
		Phase:               PhaseAwaitingQuestion,
		PerSkill:            perSkill,
		NextStreakThreshold: rewards.BaseStreakThreshold,
		StartTime:           time.Now(),
		trackers:            make(map[skill.ID]*problemgen.Tracker),
		exhausted:           make(map[skill.ID]bool),
		rng:                 rng,
		logger:              logger.With(zap.String("session_id", id)),
	}
	state.logger.Debug("session started",
		zap.String("mode", string(plan.Mode)),
		zapSkill(plan.SkillID),
		zap.String("tier", plan.Tier.String()),
		zap.Int("max_questions", plan.MaxQuestions))
	return state
}

// tracker returns the used-question tracker for id, creating it on first use.
func (s *SessionState) tracker(id skill.ID) *problemgen.Tracker {
	t, ok := s.trackers[id]
	if !ok {
		t = problemgen.NewTracker()
		s.trackers[id] = t
	}
	return t
}

// Tracker returns the used-question tracker for id, or nil if no question
// of that skill has been drawn yet.
func (s *SessionState) Tracker(id skill.ID) *problemgen.Tracker {
	return s.trackers[id]
}

// Done reports whether the session has finished, either complete or
// abandoned.
func (s *SessionState) Done() bool {
	return s.Phase == PhaseComplete || s.Phase == PhaseAbandoned
}

func zapSkill(id skill.ID) zap.Field {
	return zap.String("skill", string(id))
}
