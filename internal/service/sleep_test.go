package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourname/wellnesstracker/internal"
	"github.com/yourname/wellnesstracker/internal/dateutil"
	"github.com/yourname/wellnesstracker/internal/grade"
	"github.com/yourname/wellnesstracker/internal/storage"
)

func setupRepos(t *testing.T) storage.Repositories {
	t.Helper()
	dir := t.TempDir()
	repos, closer, err := storage.NewFileRepositories(
		filepath.Join(dir, "cycles.json"),
		filepath.Join(dir, "goals.json"),
		filepath.Join(dir, "exercises.json"),
		internal.NopLogger{},
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closer.Close() })
	return repos
}

func testUser() *internal.User {
	return &internal.User{ID: "u1", Token: "MOCK-TOKEN", Name: "Test User"}
}

func TestStartThenEnd(t *testing.T) {
	store := NewSleepCycleStore(setupRepos(t).Cycles)
	ctx := context.Background()
	user := testUser()

	start := time.Date(2025, 1, 1, 23, 0, 0, 0, time.Local)
	cycle, err := store.Start(ctx, user, start)
	require.NoError(t, err)
	assert.True(t, cycle.Open())
	assert.Equal(t, 0, cycle.Quality)

	end := time.Date(2025, 1, 2, 6, 30, 0, 0, time.Local)
	closed, err := store.End(ctx, user, end, 8)
	require.NoError(t, err)
	assert.False(t, closed.Open())
	assert.Equal(t, 8, closed.Quality)
	assert.Equal(t, "7h 30min", dateutil.FormatDuration(closed.Duration()))
	assert.Equal(t, "good", grade.New(closed.Quality).Description)

	history, err := store.History(ctx, user, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.False(t, history[0].Open())
}

func TestStartFailsWhileActive(t *testing.T) {
	store := NewSleepCycleStore(setupRepos(t).Cycles)
	ctx := context.Background()
	user := testUser()

	_, err := store.Start(ctx, user, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	// Timestamps are irrelevant: any start during an open cycle fails.
	_, err = store.Start(ctx, user, time.Now().Add(24*time.Hour))
	assert.ErrorIs(t, err, internal.ErrActiveCycleExists)
	_, err = store.Start(ctx, user, time.Now().Add(-48*time.Hour))
	assert.ErrorIs(t, err, internal.ErrActiveCycleExists)
}

func TestEndWithoutActiveCycle(t *testing.T) {
	store := NewSleepCycleStore(setupRepos(t).Cycles)
	_, err := store.End(context.Background(), testUser(), time.Now(), 5)
	assert.ErrorIs(t, err, internal.ErrCycleNotFound)
}

func TestEndRequiresStrictlyLaterTime(t *testing.T) {
	store := NewSleepCycleStore(setupRepos(t).Cycles)
	ctx := context.Background()
	user := testUser()

	start := time.Date(2025, 1, 1, 23, 0, 0, 0, time.Local)
	_, err := store.Start(ctx, user, start)
	require.NoError(t, err)

	_, err = store.End(ctx, user, start.Add(-time.Minute), 5)
	assert.ErrorIs(t, err, internal.ErrInvalidInterval)

	// Equal timestamps must fail too: the boundary is exclusive.
	_, err = store.End(ctx, user, start, 5)
	assert.ErrorIs(t, err, internal.ErrInvalidInterval)

	// The cycle stays open and can still be ended correctly.
	closed, err := store.End(ctx, user, start.Add(time.Minute), 5)
	require.NoError(t, err)
	assert.False(t, closed.Open())
}

func TestAtMostOneOpenCycle(t *testing.T) {
	store := NewSleepCycleStore(setupRepos(t).Cycles)
	ctx := context.Background()
	user := testUser()

	base := time.Date(2025, 1, 1, 22, 0, 0, 0, time.Local)
	for i := 0; i < 5; i++ {
		night := base.AddDate(0, 0, i)
		_, err := store.Start(ctx, user, night)
		require.NoError(t, err)
		_, err = store.End(ctx, user, night.Add(8*time.Hour), 7)
		require.NoError(t, err)
	}
	_, err := store.Start(ctx, user, base.AddDate(0, 0, 5))
	require.NoError(t, err)

	history, err := store.History(ctx, user, 0)
	require.NoError(t, err)
	open := 0
	for _, c := range history {
		if c.Open() {
			open++
		}
	}
	assert.Equal(t, 1, open)
}

func TestHistoryOrderAndLimit(t *testing.T) {
	store := NewSleepCycleStore(setupRepos(t).Cycles)
	ctx := context.Background()
	user := testUser()

	base := time.Date(2025, 2, 1, 22, 30, 0, 0, time.Local)
	for i := 0; i < 4; i++ {
		night := base.AddDate(0, 0, i)
		_, err := store.Start(ctx, user, night)
		require.NoError(t, err)
		_, err = store.End(ctx, user, night.Add(7*time.Hour), 6)
		require.NoError(t, err)
	}

	history, err := store.History(ctx, user, 0)
	require.NoError(t, err)
	require.Len(t, history, 4)
	for i := 1; i < len(history); i++ {
		assert.True(t, history[i-1].Start.After(history[i].Start))
	}

	limited, err := store.History(ctx, user, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
	assert.Equal(t, history[0].ID, limited[0].ID)
}

func TestStateTransitions(t *testing.T) {
	store := NewSleepCycleStore(setupRepos(t).Cycles)
	ctx := context.Background()
	user := testUser()

	state, err := store.State(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, internal.PhaseNone, state.Phase)
	assert.Nil(t, state.Cycle)

	start := time.Date(2025, 1, 1, 23, 0, 0, 0, time.Local)
	_, err = store.Start(ctx, user, start)
	require.NoError(t, err)

	state, err = store.State(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, internal.PhaseActive, state.Phase)
	require.NotNil(t, state.Cycle)
	assert.True(t, state.Cycle.Open())

	_, err = store.End(ctx, user, start.Add(8*time.Hour), 9)
	require.NoError(t, err)

	state, err = store.State(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, internal.PhaseCompleted, state.Phase)
	require.NotNil(t, state.Cycle)
	assert.False(t, state.Cycle.Open())
}

func TestUpdateRewritesFields(t *testing.T) {
	store := NewSleepCycleStore(setupRepos(t).Cycles)
	ctx := context.Background()
	user := testUser()

	start := time.Date(2025, 1, 1, 23, 0, 0, 0, time.Local)
	_, err := store.Start(ctx, user, start)
	require.NoError(t, err)
	cycle, err := store.End(ctx, user, start.Add(7*time.Hour), 6)
	require.NoError(t, err)

	newStart := start.Add(-30 * time.Minute)
	newQuality := 9
	updated, err := store.Update(ctx, cycle.ID, UpdateCycleRequest{
		Start:   &newStart,
		Quality: &newQuality,
	})
	require.NoError(t, err)
	assert.Equal(t, newStart, updated.Start)
	assert.Equal(t, 9, updated.Quality)
	require.NotNil(t, updated.End)

	// A completed cycle can be re-edited any number of times.
	again, err := store.Update(ctx, cycle.ID, UpdateCycleRequest{Quality: &newQuality})
	require.NoError(t, err)
	assert.Equal(t, 9, again.Quality)
}

func TestUpdateValidatesUpFront(t *testing.T) {
	store := NewSleepCycleStore(setupRepos(t).Cycles)
	ctx := context.Background()
	user := testUser()

	start := time.Date(2025, 1, 1, 23, 0, 0, 0, time.Local)
	_, err := store.Start(ctx, user, start)
	require.NoError(t, err)
	cycle, err := store.End(ctx, user, start.Add(7*time.Hour), 6)
	require.NoError(t, err)

	badQuality := 11
	_, err = store.Update(ctx, cycle.ID, UpdateCycleRequest{Quality: &badQuality})
	assert.Error(t, err)

	badEnd := start.Add(-time.Hour)
	_, err = store.Update(ctx, cycle.ID, UpdateCycleRequest{End: &badEnd})
	assert.ErrorIs(t, err, internal.ErrInvalidInterval)

	// Nothing was written by the failed updates.
	unchanged, err := store.History(ctx, user, 1)
	require.NoError(t, err)
	assert.Equal(t, 6, unchanged[0].Quality)
	assert.Equal(t, start, unchanged[0].Start)
}

func TestUpdateUnknownCycle(t *testing.T) {
	store := NewSleepCycleStore(setupRepos(t).Cycles)
	_, err := store.Update(context.Background(), "nope", UpdateCycleRequest{})
	assert.ErrorIs(t, err, internal.ErrCycleNotFound)
}

func TestDeleteCycle(t *testing.T) {
	store := NewSleepCycleStore(setupRepos(t).Cycles)
	ctx := context.Background()
	user := testUser()

	start := time.Date(2025, 1, 1, 23, 0, 0, 0, time.Local)
	_, err := store.Start(ctx, user, start)
	require.NoError(t, err)
	cycle, err := store.End(ctx, user, start.Add(6*time.Hour), 4)
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, cycle.ID))

	history, err := store.History(ctx, user, 0)
	require.NoError(t, err)
	assert.Empty(t, history)

	assert.ErrorIs(t, store.Delete(ctx, cycle.ID), internal.ErrCycleNotFound)
}
