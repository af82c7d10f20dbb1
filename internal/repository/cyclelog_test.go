package repository

import (
	"sync"
	"testing"
	"time"

	"github.com/fieldopskit/fieldops-go/internal/domain/cyclelog"
	"github.com/fieldopskit/fieldops-go/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var month = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func newLog() *cyclelog.CycleLog {
	return &cyclelog.CycleLog{
		FormID:                 1,
		AgentID:                7,
		TrackingMonth:          month,
		MaxCyclesAllowed:       2,
		SnapshotCyclesPerMonth: 2,
	}
}

func TestGetOrCreate_ConcurrentFirstTouchYieldsOneRow(t *testing.T) {
	db := testutils.SetupTestDB(t)
	repo := NewCycleLogRepo(db)

	const workers = 10
	var wg sync.WaitGroup
	ids := make([]uint, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			log, err := repo.GetOrCreate(newLog())
			require.NoError(t, err)
			ids[i] = log.ID
		}(i)
	}
	wg.Wait()

	// Everyone observes the same row regardless of who won the insert.
	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}

	count, err := repo.CountByMonth(month)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGetOrCreate_DistinctMonthsAreDistinctRows(t *testing.T) {
	db := testutils.SetupTestDB(t)
	repo := NewCycleLogRepo(db)

	march, err := repo.GetOrCreate(newLog())
	require.NoError(t, err)

	aprilLog := newLog()
	aprilLog.TrackingMonth = month.AddDate(0, 1, 0)
	april, err := repo.GetOrCreate(aprilLog)
	require.NoError(t, err)

	assert.NotEqual(t, march.ID, april.ID)
}

func TestConsumeCycle_GuardsOnObservedPreImage(t *testing.T) {
	db := testutils.SetupTestDB(t)
	repo := NewCycleLogRepo(db)

	log, err := repo.GetOrCreate(newLog())
	require.NoError(t, err)
	now := month.Add(9 * 24 * time.Hour)

	require.NoError(t, repo.ConsumeCycle(log.ID, 0, now, nil))

	// A second consume against the stale pre-image loses.
	err = repo.ConsumeCycle(log.ID, 0, now, nil)
	assert.ErrorIs(t, err, ErrCycleConflict)

	// Against the fresh pre-image it wins, reaching the cap.
	require.NoError(t, repo.ConsumeCycle(log.ID, 1, now, nil))

	// At the cap even the correct pre-image is refused.
	err = repo.ConsumeCycle(log.ID, 2, now, nil)
	assert.ErrorIs(t, err, ErrCycleConflict)

	stored, err := repo.FindByID(log.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.CurrentCycle)
	assert.Equal(t, 2, stored.SubmissionsCount)
	assert.NotNil(t, stored.LastSubmissionAt)
}

func TestConsumeCycle_SetsFreezeWhenRequested(t *testing.T) {
	db := testutils.SetupTestDB(t)
	repo := NewCycleLogRepo(db)

	log, err := repo.GetOrCreate(newLog())
	require.NoError(t, err)

	now := month.Add(24 * time.Hour)
	until := now.Add(time.Hour)
	require.NoError(t, repo.ConsumeCycle(log.ID, 0, now, &until))

	stored, err := repo.FindByID(log.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsFrozen)
	require.NotNil(t, stored.FreezeExpiresAt)
	assert.True(t, stored.FreezeExpiresAt.Equal(until))
}

func TestClearExpiredFreeze_OnlyLiftsPastExpiry(t *testing.T) {
	db := testutils.SetupTestDB(t)
	repo := NewCycleLogRepo(db)

	log, err := repo.GetOrCreate(newLog())
	require.NoError(t, err)

	now := month.Add(24 * time.Hour)
	until := now.Add(time.Hour)
	require.NoError(t, repo.ConsumeCycle(log.ID, 0, now, &until))

	// Before expiry the freeze stays.
	require.NoError(t, repo.ClearExpiredFreeze(log.ID, now.Add(30*time.Minute)))
	stored, err := repo.FindByID(log.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsFrozen)

	// After expiry it is lifted.
	require.NoError(t, repo.ClearExpiredFreeze(log.ID, until.Add(time.Second)))
	stored, err = repo.FindByID(log.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsFrozen)
	assert.Nil(t, stored.FreezeExpiresAt)
}
