package application

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fieldopskit/fieldops-go/internal/domain/agent"
	"github.com/fieldopskit/fieldops-go/internal/domain/form"
	"github.com/fieldopskit/fieldops-go/internal/domain/submission"
	"github.com/fieldopskit/fieldops-go/internal/repository"
	"github.com/fieldopskit/fieldops-go/internal/testutils"
	"github.com/fieldopskit/fieldops-go/pkg/clock"
	"github.com/fieldopskit/fieldops-go/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

// --------------------- Setup ---------------------
var engineStart = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func setupEngine(t *testing.T) (*Services, *repository.Repos, *clock.Mock) {
	t.Helper()

	db := testutils.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	clk := clock.NewMock(engineStart)

	// Audit writes run on background goroutines; silence them so a test's
	// database teardown cannot race with a late insert.
	oldLog := utils.LogAudit
	utils.LogAudit = func(userID uint, ip, ua, action, resourceType, resourceID string, before, after any, description string, auditRepos repository.AuditRepo) error {
		return nil
	}
	t.Cleanup(func() { utils.LogAudit = oldLog })

	return NewWithClock(repos, clk), repos, clk
}

func seedForm(t *testing.T, repos *repository.Repos, cycles int, freezeSeconds *int64) *form.Form {
	t.Helper()

	f := &form.Form{
		Title:                 "Monthly Site Inspection",
		CyclesPerMonth:        cycles,
		FreezeEnabled:         freezeSeconds != nil,
		FreezeDurationSeconds: freezeSeconds,
		Active:                true,
	}
	require.NoError(t, repos.Form.Create(f))
	return f
}

func seedAgent(t *testing.T, repos *repository.Repos) *agent.Agent {
	t.Helper()

	a := &agent.Agent{
		Name:         "Alice",
		Email:        "alice@example.com",
		Status:       agent.AgentStatusActive,
		ExternalCode: "AG-NORTH-011",
	}
	require.NoError(t, repos.Agent.Create(a))
	return a
}

func payload() submission.CreateSubmissionDTO {
	return submission.CreateSubmissionDTO{
		Payload: datatypes.JSON([]byte(`{"checklist":"complete"}`)),
	}
}

// --------------------- Submit ---------------------
func TestSubmit_FirstSubmissionOpensTheMonth(t *testing.T) {
	svc, repos, clk := setupEngine(t)
	f := seedForm(t, repos, 2, nil)
	a := seedAgent(t, repos)

	input := payload()
	input.AgentID = a.ID

	result, err := svc.Submission.Submit(f.ID, 1, input)
	require.NoError(t, err)
	assert.Equal(t, 1, result.CycleNumber)
	assert.Equal(t, submission.StatusPending, result.Submission.Status)
	assert.NotEmpty(t, result.Submission.Reference)
	assert.Nil(t, result.FreezeExpiresAt)

	vis, err := svc.Visibility.CheckVisibility(f.ID, a.ID, clk.Now())
	require.NoError(t, err)
	assert.Equal(t, VisibilityVisible, vis.Status)
	assert.Equal(t, 1, vis.CurrentCycle)
	assert.Equal(t, 1, vis.Remaining)
}

func TestSubmit_BlockedWhenNotAttached(t *testing.T) {
	svc, repos, _ := setupEngine(t)
	a := seedAgent(t, repos)

	f := &form.Form{
		Title:                  "Restricted Checklist",
		AttachToSpecificAgents: true,
		CyclesPerMonth:         1,
		Active:                 true,
	}
	require.NoError(t, repos.Form.Create(f))

	input := payload()
	input.AgentID = a.ID

	_, err := svc.Submission.Submit(f.ID, 1, input)
	var notVisible *NotVisibleError
	require.True(t, errors.As(err, &notVisible))
	assert.Equal(t, VisibilityNotAttached, notVisible.Result.Status)
}

func TestSubmit_FreezeLifecycle(t *testing.T) {
	freezeSecs := int64(3600)
	svc, repos, clk := setupEngine(t)
	f := seedForm(t, repos, 2, &freezeSecs)
	a := seedAgent(t, repos)

	input := payload()
	input.AgentID = a.ID

	result, err := svc.Submission.Submit(f.ID, 1, input)
	require.NoError(t, err)
	require.NotNil(t, result.FreezeExpiresAt)
	assert.Equal(t, engineStart.Add(time.Hour), result.FreezeExpiresAt.UTC())

	// Inside the freeze window the form is hidden, not exhausted.
	_, err = svc.Submission.Submit(f.ID, 1, input)
	var notVisible *NotVisibleError
	require.True(t, errors.As(err, &notVisible))
	assert.Equal(t, VisibilityFrozen, notVisible.Result.Status)

	// One second before expiry: still frozen.
	clk.Advance(time.Hour - time.Second)
	vis, err := svc.Visibility.CheckVisibility(f.ID, a.ID, clk.Now())
	require.NoError(t, err)
	assert.Equal(t, VisibilityFrozen, vis.Status)
	assert.Equal(t, int64(1), vis.FrozenForSecond)

	// Past expiry the freeze lifts lazily and the next cycle opens.
	clk.Advance(2 * time.Second)
	result, err = svc.Submission.Submit(f.ID, 1, input)
	require.NoError(t, err)
	assert.Equal(t, 2, result.CycleNumber)

	// Both cycles consumed: exhausted beats frozen from here on.
	clk.Advance(2 * time.Hour)
	vis, err = svc.Visibility.CheckVisibility(f.ID, a.ID, clk.Now())
	require.NoError(t, err)
	assert.Equal(t, VisibilityMaxCyclesReached, vis.Status)
}

func TestSubmit_ConcurrentSubmissionsNeverExceedMax(t *testing.T) {
	svc, repos, _ := setupEngine(t)
	f := seedForm(t, repos, 2, nil)
	a := seedAgent(t, repos)

	const workers = 8
	var wg sync.WaitGroup
	results := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			input := payload()
			input.AgentID = a.ID
			_, err := svc.Submission.Submit(f.ID, uint(i+1), input)
			results[i] = err
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
			continue
		}
		var notVisible *NotVisibleError
		require.True(t, errors.As(err, &notVisible), "unexpected error: %v", err)
	}
	assert.Equal(t, 2, successes)

	stored, err := repos.Submission.List(repository.SubmissionQueryParams{Limit: 100})
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestSubmit_ConfigEditDoesNotTouchMonthInProgress(t *testing.T) {
	svc, repos, clk := setupEngine(t)
	f := seedForm(t, repos, 1, nil)
	a := seedAgent(t, repos)

	input := payload()
	input.AgentID = a.ID

	_, err := svc.Submission.Submit(f.ID, 1, input)
	require.NoError(t, err)

	// Raising the limit mid-month changes the form, not the open month.
	_, err = svc.Form.UpdateForm(f.ID, form.UpdateFormDTO{CyclesPerMonth: ptrInt(3)})
	require.NoError(t, err)

	_, err = svc.Submission.Submit(f.ID, 1, input)
	var notVisible *NotVisibleError
	require.True(t, errors.As(err, &notVisible))
	assert.Equal(t, VisibilityMaxCyclesReached, notVisible.Result.Status)

	// The next month's log snapshots the new settings.
	clk.Set(time.Date(2026, 4, 1, 0, 0, 1, 0, time.UTC))
	vis, err := svc.Visibility.CheckVisibility(f.ID, a.ID, clk.Now())
	require.NoError(t, err)
	assert.Equal(t, VisibilityVisible, vis.Status)
	assert.Equal(t, 3, vis.MaxCycles)
}

func TestSubmit_MonthRolloverIsImplicit(t *testing.T) {
	svc, repos, clk := setupEngine(t)
	f := seedForm(t, repos, 1, nil)
	a := seedAgent(t, repos)

	input := payload()
	input.AgentID = a.ID

	marchResult, err := svc.Submission.Submit(f.ID, 1, input)
	require.NoError(t, err)

	_, err = svc.Submission.Submit(f.ID, 1, input)
	var notVisible *NotVisibleError
	require.True(t, errors.As(err, &notVisible))
	assert.Equal(t, VisibilityMaxCyclesReached, notVisible.Result.Status)

	// No sweep, no reset: April just has its own counter.
	clk.Set(time.Date(2026, 4, 2, 8, 0, 0, 0, time.UTC))
	aprilResult, err := svc.Submission.Submit(f.ID, 1, input)
	require.NoError(t, err)
	assert.Equal(t, 1, aprilResult.CycleNumber)
	assert.NotEqual(t, marchResult.Submission.CycleLogID, aprilResult.Submission.CycleLogID)

	// March's log is untouched history.
	marchLog, err := repos.CycleLog.FindByID(marchResult.Submission.CycleLogID)
	require.NoError(t, err)
	assert.Equal(t, 1, marchLog.CurrentCycle)
	assert.True(t, marchLog.TrackingMonth.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
}
