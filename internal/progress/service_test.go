package progress

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathhelper/internal/grading"
	"github.com/abhisek/mathhelper/internal/rewards"
	"github.com/abhisek/mathhelper/internal/session"
	"github.com/abhisek/mathhelper/internal/skill"
)

type gradeKey struct {
	student string
	id      skill.ID
	tier    skill.Tier
}

// memStore is an in-memory Store for tests.
type memStore struct {
	grades    map[gradeKey]GradeRecord
	gates     map[string]int
	wrong     []WrongAnswerBatch
	failSet   error
	failWrong error
}

func newMemStore() *memStore {
	return &memStore{
		grades: make(map[gradeKey]GradeRecord),
		gates:  make(map[string]int),
	}
}

func (m *memStore) PreviousBestCorrect(_ context.Context, student string, id skill.ID, tier skill.Tier) (int, error) {
	r, ok := m.grades[gradeKey{student, id, tier}]
	if !ok {
		return grading.NeverAttempted, nil
	}
	return r.NumCorrect, nil
}

func (m *memStore) RecordGrade(_ context.Context, student string, r GradeRecord) error {
	m.grades[gradeKey{student, r.SkillID, r.Tier}] = r
	return nil
}

func (m *memStore) LastActiveTest(_ context.Context, student string) (int, error) {
	if g, ok := m.gates[student]; ok {
		return g, nil
	}
	return FirstTest, nil
}

func (m *memStore) SetLastActiveTest(_ context.Context, student string, ordinal int) error {
	if m.failSet != nil {
		return m.failSet
	}
	m.gates[student] = ordinal
	return nil
}

func (m *memStore) AppendWrongAnswers(_ context.Context, _ string, batch WrongAnswerBatch) error {
	if m.failWrong != nil {
		return m.failWrong
	}
	m.wrong = append(m.wrong, batch)
	return nil
}

func summary(id skill.ID, correct, max int) *session.Summary {
	grade := grading.Percentage(correct, max)
	return &session.Summary{
		SessionID:    "s1",
		Mode:         session.ModeTest,
		SkillID:      id,
		Tier:         skill.TierEasy,
		MaxQuestions: max,
		NumCorrect:   correct,
		Grade:        grade,
		Passed:       grading.Passed(grade),
	}
}

func TestComplete_UnlocksNextTestOnPass(t *testing.T) {
	store := newMemStore()
	store.gates["sam"] = skill.Ordinal(skill.Comparison)
	svc := NewService(store, nil, nil)

	out, err := svc.Complete(context.Background(), "sam", summary(skill.Comparison, 6, 10))
	require.NoError(t, err)

	assert.Equal(t, 60, out.Grade)
	assert.True(t, out.Unlocked)
	assert.Equal(t, skill.Ordinal(skill.Comparison)+1, store.gates["sam"])
	assert.Equal(t, store.gates["sam"], out.LastActiveTest)
}

func TestComplete_FailKeepsGate(t *testing.T) {
	store := newMemStore()
	store.gates["sam"] = 2
	svc := NewService(store, nil, nil)

	// 59%: 59 of 100 is not a real budget, so use 13 of 22.
	sum := summary(skill.Comparison, 13, 22)
	require.Equal(t, 59, sum.Grade)

	out, err := svc.Complete(context.Background(), "sam", sum)
	require.NoError(t, err)
	assert.False(t, out.Unlocked)
	assert.Equal(t, 2, store.gates["sam"])
}

func TestComplete_OlderSkillDoesNotMoveGate(t *testing.T) {
	store := newMemStore()
	store.gates["sam"] = 6
	svc := NewService(store, nil, nil)

	out, err := svc.Complete(context.Background(), "sam", summary(skill.Counting, 10, 10))
	require.NoError(t, err)
	assert.False(t, out.Unlocked)
	assert.Equal(t, 6, store.gates["sam"])
}

func TestComplete_GradeReplacement(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, nil, nil)
	ctx := context.Background()
	key := gradeKey{"sam", skill.Arithmetic, skill.TierEasy}

	out, err := svc.Complete(ctx, "sam", summary(skill.Arithmetic, 7, 10))
	require.NoError(t, err)
	assert.True(t, out.NewBest)
	assert.Equal(t, grading.NeverAttempted, out.PreviousBest)
	assert.Equal(t, 7, store.grades[key].NumCorrect)

	out, err = svc.Complete(ctx, "sam", summary(skill.Arithmetic, 5, 10))
	require.NoError(t, err)
	assert.False(t, out.NewBest)
	assert.Equal(t, 7, store.grades[key].NumCorrect)

	out, err = svc.Complete(ctx, "sam", summary(skill.Arithmetic, 7, 10))
	require.NoError(t, err)
	assert.True(t, out.NewBest, "a tie replaces the stored best")

	out, err = svc.Complete(ctx, "sam", summary(skill.Arithmetic, 8, 10))
	require.NoError(t, err)
	assert.True(t, out.NewBest)
	assert.Equal(t, 8, store.grades[key].NumCorrect)
	assert.Equal(t, 80, store.grades[key].Grade)
}

func TestComplete_TiersAreSeparate(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, nil, nil)
	ctx := context.Background()

	_, err := svc.Complete(ctx, "sam", summary(skill.Coins, 8, 8))
	require.NoError(t, err)

	hard := summary(skill.Coins, 3, 12)
	hard.Tier = skill.TierHard
	out, err := svc.Complete(ctx, "sam", hard)
	require.NoError(t, err)
	assert.True(t, out.NewBest)
	assert.Len(t, store.grades, 2)
}

func TestComplete_ExportsWrongAnswers(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, nil, nil)

	sum := summary(skill.Estimate, 6, 8)
	sum.WrongAnswers = []string{"miss one", "miss two"}
	_, err := svc.Complete(context.Background(), "sam", sum)
	require.NoError(t, err)

	require.Len(t, store.wrong, 1)
	assert.Equal(t, sum.WrongAnswers, store.wrong[0].Entries)
	assert.Equal(t, "s1", store.wrong[0].SessionID)
}

func TestComplete_PracticeRecordsNothingButWrongAnswers(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, nil, nil)

	sum := summary(skill.Counting, 8, 8)
	sum.Practice = true
	sum.Mode = session.ModePractice
	sum.WrongAnswers = []string{"miss"}

	out, err := svc.Complete(context.Background(), "sam", sum)
	require.NoError(t, err)
	assert.False(t, out.NewBest)
	assert.False(t, out.Unlocked)
	assert.Empty(t, store.grades)
	assert.Empty(t, store.gates)
	require.Len(t, store.wrong, 1)
	assert.True(t, store.wrong[0].Practice)
}

func TestComplete_AbandonedIsRefused(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, nil, nil)

	sum := summary(skill.Counting, 8, 8)
	sum.Abandoned = true
	_, err := svc.Complete(context.Background(), "sam", sum)
	assert.ErrorIs(t, err, ErrSessionAbandoned)
	assert.Empty(t, store.grades)
}

func TestComplete_StoreErrorIsWrapped(t *testing.T) {
	store := newMemStore()
	store.failSet = errors.New("locked")
	svc := NewService(store, nil, nil)

	_, err := svc.Complete(context.Background(), "sam", summary(skill.Counting, 8, 8))
	require.Error(t, err)
	assert.ErrorIs(t, err, store.failSet)
	assert.Contains(t, err.Error(), "unlock next test")
}

func TestComplete_GateFailureExportsNothing(t *testing.T) {
	store := newMemStore()
	store.failSet = errors.New("locked")
	svc := NewService(store, nil, nil)

	sum := summary(skill.Counting, 7, 8)
	sum.WrongAnswers = []string{"miss"}
	_, err := svc.Complete(context.Background(), "sam", sum)
	require.ErrorIs(t, err, store.failSet)
	assert.Empty(t, store.wrong)

	store.failSet = nil
	_, err = svc.Complete(context.Background(), "sam", sum)
	require.NoError(t, err)
	assert.Len(t, store.wrong, 1, "log stored once after the retry")
	assert.Equal(t, 2, store.gates["sam"])
}

func TestComplete_ExportFailureAfterProgress(t *testing.T) {
	store := newMemStore()
	store.failWrong = errors.New("disk full")
	svc := NewService(store, nil, nil)

	sum := summary(skill.Counting, 7, 8)
	sum.WrongAnswers = []string{"miss"}
	_, err := svc.Complete(context.Background(), "sam", sum)
	require.ErrorIs(t, err, store.failWrong)
	assert.Contains(t, err.Error(), "export wrong answers")
	assert.Len(t, store.grades, 1)
	assert.Equal(t, 2, store.gates["sam"])
}

func TestComplete_Awards(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, nil, nil)

	out, err := svc.Complete(context.Background(), "sam", summary(skill.Counting, 8, 8))
	require.NoError(t, err)

	var kinds []rewards.Kind
	for _, a := range out.Awards {
		kinds = append(kinds, a.Kind)
	}
	assert.ElementsMatch(t, []rewards.Kind{rewards.KindTrophy, rewards.KindPerfect, rewards.KindUnlock}, kinds)
}

func TestUnlockedAndAvailable(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, nil, nil)
	ctx := context.Background()

	ok, err := svc.Unlocked(ctx, "new", skill.Counting)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Unlocked(ctx, "new", skill.Final)
	require.NoError(t, err)
	assert.False(t, ok)

	store.gates["sam"] = 3
	avail, err := svc.Available(ctx, "sam")
	require.NoError(t, err)
	require.Len(t, avail, 3)
	assert.Equal(t, skill.Matching, avail[2].ID)
}
