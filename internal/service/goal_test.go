package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourname/wellnesstracker/internal"
)

func TestSetWaterIsIdempotent(t *testing.T) {
	store := NewGoalStore(setupRepos(t).Goals)
	ctx := context.Background()
	user := testUser()
	day := time.Date(2025, 1, 10, 9, 0, 0, 0, time.Local)

	_, err := store.SetWater(ctx, user, day, 500)
	require.NoError(t, err)
	goal, err := store.SetWater(ctx, user, day, 500)
	require.NoError(t, err)

	// Absolute-set semantics: the second call overwrites, never adds.
	assert.Equal(t, 500, goal.Water)

	fetched, err := store.Fetch(ctx, user, day)
	require.NoError(t, err)
	assert.Equal(t, 500, fetched.Water)
}

func TestGoalLazilyCreatedAndShared(t *testing.T) {
	store := NewGoalStore(setupRepos(t).Goals)
	ctx := context.Background()
	user := testUser()
	day := time.Date(2025, 1, 10, 9, 0, 0, 0, time.Local)

	_, err := store.Fetch(ctx, user, day)
	assert.ErrorIs(t, err, internal.ErrGoalNotFound)

	water, err := store.SetWater(ctx, user, day, 750)
	require.NoError(t, err)
	steps, err := store.SetSteps(ctx, user, day.Add(8*time.Hour), 4000)
	require.NoError(t, err)

	// Same calendar day, same record: one goal per (user, day).
	assert.Equal(t, water.ID, steps.ID)
	assert.Equal(t, 750, steps.Water)
	assert.Equal(t, 4000, steps.Steps)
}

func TestFetchMatchesCalendarDay(t *testing.T) {
	store := NewGoalStore(setupRepos(t).Goals)
	ctx := context.Background()
	user := testUser()

	morning := time.Date(2025, 1, 10, 7, 0, 0, 0, time.Local)
	_, err := store.SetSteps(ctx, user, morning, 2000)
	require.NoError(t, err)

	// Any time of the same day matches; the next day does not.
	night := time.Date(2025, 1, 10, 23, 45, 0, 0, time.Local)
	goal, err := store.Fetch(ctx, user, night)
	require.NoError(t, err)
	assert.Equal(t, 2000, goal.Steps)

	_, err = store.Fetch(ctx, user, morning.AddDate(0, 0, 1))
	assert.ErrorIs(t, err, internal.ErrGoalNotFound)
}

func TestFetchRecentWindow(t *testing.T) {
	store := NewGoalStore(setupRepos(t).Goals)
	ctx := context.Background()
	user := testUser()

	now := time.Now()
	for _, daysBack := range []int{0, 2, 5, 12} {
		_, err := store.SetWater(ctx, user, now.AddDate(0, 0, -daysBack), 100*(daysBack+1))
		require.NoError(t, err)
	}

	recent, err := store.FetchRecent(ctx, user, 7)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	for i := 1; i < len(recent); i++ {
		assert.True(t, recent[i-1].Day.After(recent[i].Day))
	}
}

func TestDeleteGoal(t *testing.T) {
	store := NewGoalStore(setupRepos(t).Goals)
	ctx := context.Background()
	user := testUser()
	day := time.Date(2025, 1, 10, 12, 0, 0, 0, time.Local)

	goal, err := store.SetWater(ctx, user, day, 300)
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, goal.ID))
	_, err = store.Fetch(ctx, user, day)
	assert.ErrorIs(t, err, internal.ErrGoalNotFound)

	assert.ErrorIs(t, store.Delete(ctx, goal.ID), internal.ErrGoalNotFound)
}
