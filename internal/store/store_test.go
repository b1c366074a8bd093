package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathhelper/internal/grading"
	"github.com/abhisek/mathhelper/internal/progress"
	"github.com/abhisek/mathhelper/internal/rewards"
	"github.com/abhisek/mathhelper/internal/skill"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "x")
	assert.Error(t, err)
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reopen.db")

	s, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.SetLastActiveTest(ctx, "sam", 4))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	last, err := s.LastActiveTest(ctx, "sam")
	require.NoError(t, err)
	assert.Equal(t, 4, last)
}

func TestSequenceCounter_Monotonic(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var prev int64
	for i := range 5 {
		seq, err := s.seq.Next(ctx)
		require.NoError(t, err)
		if i > 0 {
			assert.Equal(t, prev+1, seq)
		}
		prev = seq
	}
}

func TestLastActiveTest(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	last, err := s.LastActiveTest(ctx, "new")
	require.NoError(t, err)
	assert.Equal(t, progress.FirstTest, last)

	require.NoError(t, s.SetLastActiveTest(ctx, "sam", 3))
	require.NoError(t, s.SetLastActiveTest(ctx, "sam", 5))
	last, err = s.LastActiveTest(ctx, "sam")
	require.NoError(t, err)
	assert.Equal(t, 5, last)
}

func TestEnsureStudent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.EnsureStudent(ctx, "ada"))
	require.NoError(t, s.SetLastActiveTest(ctx, "ada", 3))
	require.NoError(t, s.EnsureStudent(ctx, "ada"), "existing students are left alone")
	require.NoError(t, s.EnsureStudent(ctx, "bo"))

	students, err := s.Students(ctx)
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, StudentRecord{Name: "ada", LastActiveTest: 3}, students[0])
	assert.Equal(t, StudentRecord{Name: "bo", LastActiveTest: 1}, students[1])
}

func TestGrades_ReplaceAndList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	prev, err := s.PreviousBestCorrect(ctx, "sam", skill.Arithmetic, skill.TierEasy)
	require.NoError(t, err)
	assert.Equal(t, grading.NeverAttempted, prev)

	rec := progress.GradeRecord{SkillID: skill.Arithmetic, Tier: skill.TierEasy, NumCorrect: 7, MaxQuestions: 10, Grade: 70}
	require.NoError(t, s.RecordGrade(ctx, "sam", rec))
	rec.NumCorrect, rec.Grade = 9, 90
	require.NoError(t, s.RecordGrade(ctx, "sam", rec))

	prev, err = s.PreviousBestCorrect(ctx, "sam", skill.Arithmetic, skill.TierEasy)
	require.NoError(t, err)
	assert.Equal(t, 9, prev)

	require.NoError(t, s.RecordGrade(ctx, "sam", progress.GradeRecord{
		SkillID: skill.Counting, Tier: skill.TierHard, NumCorrect: 12, MaxQuestions: 12, Grade: 100,
	}))
	require.NoError(t, s.RecordGrade(ctx, "other", rec))

	rows, err := s.Grades(ctx, "sam")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, skill.Counting, rows[0].SkillID, "grades come back in unlock order")
	assert.Equal(t, skill.TierHard, rows[0].Tier)
	assert.Equal(t, 90, rows[1].Grade)
	assert.WithinDuration(t, time.Now(), rows[1].UpdatedAt, time.Minute)
}

func TestWrongAnswers_AppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AppendWrongAnswers(ctx, "sam", progress.WrongAnswerBatch{
		SessionID: "s1", SkillID: skill.Coins, Tier: skill.TierEasy,
		Entries: []string{"first miss", "second miss"},
	}))
	require.NoError(t, s.AppendWrongAnswers(ctx, "sam", progress.WrongAnswerBatch{
		SessionID: "s2", SkillID: skill.Estimate, Tier: skill.TierNormal, Practice: true,
		Entries: []string{"practice miss"},
	}))
	require.NoError(t, s.AppendWrongAnswers(ctx, "sam", progress.WrongAnswerBatch{SessionID: "s3"}))

	all, err := s.QueryWrongAnswers(ctx, "sam", "", QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "practice miss", all[0].Entry, "newest run first")
	assert.True(t, all[0].Practice)
	assert.Equal(t, "first miss", all[1].Entry)
	assert.Equal(t, "second miss", all[2].Entry)
	assert.Equal(t, skill.TierNormal, all[0].Tier)

	coins, err := s.QueryWrongAnswers(ctx, "sam", skill.Coins, QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, coins, 2)

	none, err := s.QueryWrongAnswers(ctx, "nobody", "", QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSessionEventsAndRewards(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	start := SessionEventData{Student: "sam", SessionID: "s1", Action: ActionStart, Mode: "test", SkillID: "coins", Tier: "easy"}
	require.NoError(t, s.AppendSessionEvent(ctx, start))

	end := start
	end.Action = ActionEnd
	end.QuestionsServed, end.CorrectAnswers, end.Grade, end.DurationSecs = 8, 6, 75, 90
	require.NoError(t, s.AppendSessionEvent(ctx, end))

	require.NoError(t, s.AppendReward(ctx, "sam", rewards.Award{
		Kind: rewards.KindTrophy, Rarity: rewards.RarityEpic, SkillID: skill.Coins, SessionID: "s1", Reason: "Passed Coins with 75%",
	}))
	require.NoError(t, s.AppendReward(ctx, "sam", rewards.Award{
		Kind: rewards.KindStreak, Rarity: rewards.RarityCommon, SkillID: skill.Coins, SessionID: "s1", Reason: "5 correct in a row!",
	}))

	sums, err := s.QuerySessionSummaries(ctx, "sam", QueryOpts{})
	require.NoError(t, err)
	require.Len(t, sums, 1, "only end events are summaries")
	assert.Equal(t, 75, sums[0].Grade)
	assert.Equal(t, 2, sums[0].RewardCount)

	counts, total, err := s.RewardCounts(ctx, "sam")
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, 1, counts[rewards.KindTrophy])

	recs, err := s.QueryRewards(ctx, "sam", QueryOpts{Limit: 1})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, rewards.KindStreak, recs[0].Kind)
}

func TestQueryOpts_SequenceWindow(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := range 4 {
		require.NoError(t, s.AppendWrongAnswers(ctx, "sam", progress.WrongAnswerBatch{
			SessionID: "s", SkillID: skill.Coins, Entries: []string{string(rune('a' + i))},
		}))
	}
	all, err := s.QueryWrongAnswers(ctx, "sam", "", QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 4)

	window, err := s.QueryWrongAnswers(ctx, "sam", "", QueryOpts{After: all[3].Sequence, Before: all[0].Sequence})
	require.NoError(t, err)
	require.Len(t, window, 2)
	assert.Equal(t, "c", window[0].Entry)
	assert.Equal(t, "b", window[1].Entry)
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "mock-model", Purpose: "review-note", InputTokens: 10, OutputTokens: 5, Success: true,
	}))
	require.NoError(t, s.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "mock-model", Purpose: "review-note", InputTokens: 7, ErrorMessage: "boom",
	}))

	events, err := s.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.False(t, events[0].Success)

	usage, err := s.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, usage, 1)
	assert.Equal(t, LLMUsageStats{Purpose: "review-note", Requests: 2, Failures: 1, InputTokens: 17, OutputTokens: 5}, usage[0])
}

func TestDefaultDBPath_Env(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "x.db")
	t.Setenv("MATHHELPER_DB", p)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, p, got)
	assert.DirExists(t, filepath.Dir(p))
}

func TestDefaultDBPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MATHHELPER_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "mathhelper", "mathhelper.db"), got)
}
