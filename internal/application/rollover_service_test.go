package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSweep_CountsPreviousMonth(t *testing.T) {
	svc, repos, clk := setupEngine(t)
	f := seedForm(t, repos, 1, nil)
	a := seedAgent(t, repos)

	// One submission in March creates one March log.
	input := payload()
	input.AgentID = a.ID
	_, err := svc.Submission.Submit(f.ID, 1, input)
	require.NoError(t, err)

	clk.Set(time.Date(2026, 4, 1, 6, 0, 0, 0, time.UTC))
	ev, err := svc.Rollover.RecordSweep(9)
	require.NoError(t, err)

	assert.NotEmpty(t, ev.Reference)
	assert.Equal(t, uint(9), ev.TriggeredBy)
	assert.Equal(t, int64(1), ev.LogsLastMonth)
	assert.True(t, ev.Month.Equal(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)))
}

func TestRecordSweep_EmptyPreviousMonth(t *testing.T) {
	svc, _, _ := setupEngine(t)

	ev, err := svc.Rollover.RecordSweep(9)
	require.NoError(t, err)
	assert.Equal(t, int64(0), ev.LogsLastMonth)
}
