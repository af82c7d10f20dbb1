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

// Exercises the insert-or-fetch and conditional-update paths against a real
// Postgres, where ON CONFLICT and row locking behave differently than in the
// SQLite used by the fast tests.
func TestCycleLogConcurrency_Postgres(t *testing.T) {
	db := testutils.SetupPostgresForIntegration(t)
	repo := NewCycleLogRepo(db)

	month := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	const workers = 16

	var wg sync.WaitGroup
	ids := make([]uint, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			log, err := repo.GetOrCreate(&cyclelog.CycleLog{
				FormID:           1,
				AgentID:          7,
				TrackingMonth:    month,
				MaxCyclesAllowed: 3,
			})
			require.NoError(t, err)
			ids[i] = log.ID
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}

	// Hammer the consume path: exactly MaxCyclesAllowed wins.
	now := month.Add(48 * time.Hour)
	var wins int64
	var mu sync.Mutex
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for cycle := 0; cycle < 3; cycle++ {
				if err := repo.ConsumeCycle(ids[0], cycle, now, nil); err == nil {
					mu.Lock()
					wins++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(3), wins)

	stored, err := repo.FindByID(ids[0])
	require.NoError(t, err)
	assert.Equal(t, 3, stored.CurrentCycle)
	assert.Equal(t, 3, stored.SubmissionsCount)
}
