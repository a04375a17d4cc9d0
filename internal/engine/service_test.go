package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrboora04/focuspoint/internal/engine"
	"github.com/mrboora04/focuspoint/internal/storage/memory"
	"github.com/mrboora04/focuspoint/internal/types"
)

var svcLoc = time.FixedZone("CET", 60*60)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func newTestService(t *testing.T, now time.Time) (*engine.Service, *memory.Store, *fakeClock) {
	t.Helper()
	store := memory.NewStore()
	clock := &fakeClock{now: now}
	svc := engine.NewService(store, engine.WithClock(clock.Now), engine.WithLocation(svcLoc))
	t.Cleanup(func() { _ = store.Close() })
	return svc, store, clock
}

func TestServiceCreateCompleteAndTarget(t *testing.T) {
	ctx := context.Background()
	today := types.NewDate(2024, 9, 2)
	svc, store, _ := newTestService(t, time.Date(2024, 9, 2, 9, 0, 0, 0, svcLoc))

	m, err := svc.CreateMission(ctx, engine.CreateMissionInput{
		Name:             "Focus",
		DurationDays:     14,
		DailyPointTarget: 20,
		DailyHabits:      []string{"Read", "Run"},
	})
	require.NoError(t, err)

	active, err := svc.ActiveMission(ctx)
	require.NoError(t, err)
	assert.Equal(t, m.ID, active.ID)
	assert.Equal(t, today, active.Config.StartDate)

	res, err := svc.CompleteTask(ctx, "", "1", 10)
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, "Read", res.Task.Title)
	assert.False(t, res.TargetReached)

	res, err = svc.CompleteTask(ctx, "", "1", 10)
	require.NoError(t, err)
	assert.False(t, res.Applied)
	assert.Equal(t, engine.SkipAlreadyDone, res.Skipped)

	res, err = svc.CompleteTask(ctx, "", "2", 10)
	require.NoError(t, err)
	assert.True(t, res.TargetReached)
	assert.Equal(t, 20, res.ScoreAfter)

	stored, err := store.GetMission(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, types.DayCompleted, stored.History[today])
	assert.Len(t, stored.DailyLog[today], 2)
	assert.Equal(t, today, stored.ScoreDate)
}

func TestServiceBreachFlow(t *testing.T) {
	ctx := context.Background()
	today := types.NewDate(2024, 9, 5)
	start := today.AddDays(-3)
	svc, store, _ := newTestService(t, time.Date(2024, 9, 5, 20, 0, 0, 0, svcLoc))

	m, err := svc.CreateMission(ctx, engine.CreateMissionInput{
		Name:             "Backdated",
		DurationDays:     30,
		DailyPointTarget: 10,
		StartDate:        start,
		DailyHabits:      []string{"Write"},
		BufferDays:       1,
	})
	require.NoError(t, err)

	rec, err := svc.ReconcileActive(ctx)
	require.NoError(t, err)
	require.NotNil(t, rec.Pending)
	assert.True(t, rec.Pending.MercyApplied)
	assert.Equal(t, start, rec.Pending.Date)

	ok, err := svc.AcknowledgeMercy(ctx, "")
	require.NoError(t, err)
	assert.True(t, ok)

	rec, err = svc.ReconcileActive(ctx)
	require.NoError(t, err)
	require.NotNil(t, rec.Pending)
	assert.False(t, rec.Pending.MercyApplied)
	assert.Equal(t, start.AddDays(1), rec.Pending.Date)

	// Input is locked while the breach is open.
	done, err := svc.CompleteTask(ctx, "", "1", 10)
	require.NoError(t, err)
	assert.Equal(t, engine.SkipBreachPending, done.Skipped)

	ok, err = svc.AcknowledgeMercy(ctx, "")
	require.NoError(t, err)
	assert.False(t, ok, "a real breach cannot be acknowledged away")

	b, err := svc.AcceptPenalty(ctx, "")
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, start.AddDays(1), b.Date)

	stored, err := store.GetMission(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, types.DayFailed, stored.History[start.AddDays(1)])
	assert.Nil(t, stored.Pending)

	rec, err = svc.ReconcileActive(ctx)
	require.NoError(t, err)
	require.NotNil(t, rec.Pending)
	assert.Equal(t, start.AddDays(2), rec.Pending.Date)

	restarted, err := svc.Restart(ctx, "")
	require.NoError(t, err)
	assert.True(t, restarted)

	stored, err = store.GetMission(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, today, stored.Config.StartDate)
	assert.Empty(t, stored.History)
	assert.Equal(t, 0, stored.Config.BufferDays)

	rec, err = svc.ReconcileActive(ctx)
	require.NoError(t, err)
	assert.Nil(t, rec.Pending)
	assert.True(t, rec.RolledOver)
	assert.Len(t, rec.Mission.Tasks, 1)

	// Nothing left to resolve.
	b, err = svc.AcceptPenalty(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, b)
}

func TestServiceNewDayAtLocalMidnight(t *testing.T) {
	ctx := context.Background()
	svc, _, clock := newTestService(t, time.Date(2024, 9, 2, 23, 50, 0, 0, svcLoc))

	_, err := svc.CreateMission(ctx, engine.CreateMissionInput{
		Name: "Night owl", DurationDays: 7, DailyPointTarget: 10, DailyHabits: []string{"Sleep"},
	})
	require.NoError(t, err)
	_, err = svc.CompleteTask(ctx, "", "1", 10)
	require.NoError(t, err)

	// 00:05 CET is still the previous day in UTC.
	clock.now = time.Date(2024, 9, 2, 23, 5, 0, 0, time.UTC)
	rec, err := svc.ReconcileActive(ctx)
	require.NoError(t, err)
	assert.True(t, rec.RolledOver)
	assert.Equal(t, types.NewDate(2024, 9, 3), rec.Mission.ScoreDate)
	assert.Equal(t, 0, rec.Mission.TodayScore)
	require.Len(t, rec.Mission.Tasks, 1)
	assert.Equal(t, types.TaskPending, rec.Mission.Tasks[0].Status)
}

func TestServiceMissionLookup(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t, time.Date(2024, 9, 2, 9, 0, 0, 0, svcLoc))

	_, err := svc.ActiveMission(ctx)
	assert.ErrorIs(t, err, engine.ErrNoActiveMission)

	first, err := svc.CreateMission(ctx, engine.CreateMissionInput{Name: "One", DurationDays: 5, DailyPointTarget: 5})
	require.NoError(t, err)
	second, err := svc.CreateFromTemplate(ctx, "monk-mode", types.Date{})
	require.NoError(t, err)
	assert.Equal(t, "Monk Mode", second.Config.Name)

	active, err := svc.ActiveMission(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID, "the newest mission becomes active")

	byPrefix, err := svc.SetActive(ctx, first.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, first.ID, byPrefix.ID)

	_, err = svc.Mission(ctx, "does-not-exist")
	assert.ErrorIs(t, err, engine.ErrMissionNotFound)

	all, err := svc.Missions(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, svc.DeleteMission(ctx, first.ID))
	_, err = svc.ActiveMission(ctx)
	assert.ErrorIs(t, err, engine.ErrNoActiveMission)

	all, err = svc.Missions(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestServiceAddTaskAndEdit(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t, time.Date(2024, 9, 2, 9, 0, 0, 0, svcLoc))

	_, err := svc.CreateMission(ctx, engine.CreateMissionInput{Name: "Edit me", DurationDays: 5, DailyPointTarget: 5})
	require.NoError(t, err)

	task, err := svc.AddTask(ctx, "", engine.AddTaskInput{Title: "Stretch", Priority: types.PriorityLow})
	require.NoError(t, err)
	assert.Equal(t, types.PriorityLow, task.Priority)

	_, err = svc.AddTask(ctx, "", engine.AddTaskInput{Title: ""})
	var ve engine.ValidationError
	assert.ErrorAs(t, err, &ve)

	target := 40
	m, err := svc.UpdateConfig(ctx, "", engine.ConfigPatch{DailyPointTarget: &target})
	require.NoError(t, err)
	assert.Equal(t, 40, m.Config.DailyPointTarget)
	assert.Equal(t, []string{"Stretch"}, m.Config.DailyHabits)
	require.Len(t, m.Tasks, 1)
	assert.Equal(t, task.ID, m.Tasks[0].ID)
}

func TestServiceTapTargets(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t, time.Date(2024, 9, 2, 9, 0, 0, 0, svcLoc))

	tap, err := svc.CreateTapTarget(ctx, "Push-ups", 10)
	require.NoError(t, err)
	def, err := svc.CreateTapTarget(ctx, "Breaths", 0)
	require.NoError(t, err)
	assert.Equal(t, engine.DefaultTapTarget, def.Target)

	got, err := svc.RecordTaps(ctx, "push-ups", 4, 2*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Count)
	assert.False(t, got.Done())

	got, err = svc.RecordTaps(ctx, tap.ID[:6], 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Count, "count is capped at the target")
	assert.True(t, got.Done())
	assert.Equal(t, 2*time.Second, got.TotalTime)

	_, err = svc.RecordTaps(ctx, "sit-ups", 1, 0)
	assert.ErrorIs(t, err, engine.ErrTapNotFound)
	_, err = svc.RecordTaps(ctx, "push-ups", -1, 0)
	assert.Error(t, err)

	list, err := svc.TapTargets(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Breaths", list[0].Title)

	sum, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.TapTargets)
	assert.Equal(t, 1, sum.TapTargetsDone)
}
