package memory_test

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

var _ engine.Store = (*memory.Store)(nil)

func TestSaveDoesNotAlias(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	day := types.NewDate(2024, time.January, 1)
	m := types.Mission{
		ID:      "m",
		Tasks:   []types.Task{{ID: "t", Title: "Read", Status: types.TaskPending}},
		History: map[types.Date]types.DayStatus{},
	}
	require.NoError(t, s.SaveMission(ctx, &m))

	m.Tasks[0].Status = types.TaskCompleted
	m.History[day] = types.DayFailed

	got, err := s.GetMission(ctx, "m")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, types.TaskPending, got.Tasks[0].Status)
	assert.Empty(t, got.History)

	got.Tasks[0].Title = "changed"
	again, err := s.GetMission(ctx, "m")
	require.NoError(t, err)
	assert.Equal(t, "Read", again.Tasks[0].Title)
}

func TestMissingAndDelete(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	got, err := s.GetMission(ctx, "x")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.SaveMission(ctx, &types.Mission{ID: "x"}))
	require.NoError(t, s.DeleteMission(ctx, "x"))
	all, err := s.ListMissions(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	assert.Error(t, s.SaveMission(ctx, &types.Mission{}))
}
