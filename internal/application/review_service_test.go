package application

import (
	"sync"
	"testing"

	"github.com/fieldopskit/fieldops-go/internal/domain/submission"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submitPending(t *testing.T, svc *Services, formID, agentID, submitterID uint) *submission.Submission {
	t.Helper()

	input := payload()
	input.AgentID = agentID
	result, err := svc.Submission.Submit(formID, submitterID, input)
	require.NoError(t, err)
	return result.Submission
}

func TestApprove_HappyPath(t *testing.T) {
	svc, repos, _ := setupEngine(t)
	f := seedForm(t, repos, 2, nil)
	a := seedAgent(t, repos)
	sub := submitPending(t, svc, f.ID, a.ID, 1)

	reviewed, err := svc.Review.Approve(sub.ID, 2, "looks complete")
	require.NoError(t, err)
	assert.Equal(t, submission.StatusApproved, reviewed.Status)
	require.NotNil(t, reviewed.ApprovedBy)
	assert.Equal(t, uint(2), *reviewed.ApprovedBy)
	assert.NotNil(t, reviewed.ReviewedAt)
	assert.Equal(t, "looks complete", reviewed.ReviewNotes)
}

func TestReject_RequiresReason(t *testing.T) {
	svc, repos, _ := setupEngine(t)
	f := seedForm(t, repos, 2, nil)
	a := seedAgent(t, repos)
	sub := submitPending(t, svc, f.ID, a.ID, 1)

	_, err := svc.Review.Reject(sub.ID, 2, "")
	assert.Equal(t, ErrReasonRequired, err)

	reviewed, err := svc.Review.Reject(sub.ID, 2, "photo missing")
	require.NoError(t, err)
	assert.Equal(t, submission.StatusRejected, reviewed.Status)
	assert.Equal(t, "photo missing", reviewed.RejectionReason)
}

func TestReview_SubmitterCannotReviewOwnWork(t *testing.T) {
	svc, repos, _ := setupEngine(t)
	f := seedForm(t, repos, 2, nil)
	a := seedAgent(t, repos)
	sub := submitPending(t, svc, f.ID, a.ID, 1)

	_, err := svc.Review.Approve(sub.ID, 1, "")
	assert.Equal(t, ErrSelfReviewForbidden, err)

	_, err = svc.Review.Reject(sub.ID, 1, "nope")
	assert.Equal(t, ErrSelfReviewForbidden, err)
}

func TestReview_TerminalStateIsOneShot(t *testing.T) {
	svc, repos, _ := setupEngine(t)
	f := seedForm(t, repos, 2, nil)
	a := seedAgent(t, repos)
	sub := submitPending(t, svc, f.ID, a.ID, 1)

	_, err := svc.Review.Approve(sub.ID, 2, "")
	require.NoError(t, err)

	_, err = svc.Review.Approve(sub.ID, 3, "")
	assert.Equal(t, ErrAlreadyReviewed, err)

	_, err = svc.Review.Reject(sub.ID, 3, "changed my mind")
	assert.Equal(t, ErrAlreadyReviewed, err)
}

func TestReview_NotFound(t *testing.T) {
	svc, _, _ := setupEngine(t)

	_, err := svc.Review.Approve(9999, 2, "")
	assert.Equal(t, ErrSubmissionNotFound, err)
}

func TestReview_RejectionDoesNotRefundTheCycle(t *testing.T) {
	svc, repos, clk := setupEngine(t)
	f := seedForm(t, repos, 1, nil)
	a := seedAgent(t, repos)
	sub := submitPending(t, svc, f.ID, a.ID, 1)

	_, err := svc.Review.Reject(sub.ID, 2, "incomplete")
	require.NoError(t, err)

	// The consumed cycle stays consumed; the agent waits for next month.
	vis, err := svc.Visibility.CheckVisibility(f.ID, a.ID, clk.Now())
	require.NoError(t, err)
	assert.Equal(t, VisibilityMaxCyclesReached, vis.Status)
}

func TestReview_ConcurrentReviewersOnlyOneWins(t *testing.T) {
	svc, repos, _ := setupEngine(t)
	f := seedForm(t, repos, 2, nil)
	a := seedAgent(t, repos)
	sub := submitPending(t, svc, f.ID, a.ID, 1)

	const reviewers = 6
	var wg sync.WaitGroup
	results := make([]error, reviewers)

	for i := 0; i < reviewers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			reviewerID := uint(i + 2)
			if i%2 == 0 {
				_, results[i] = svc.Review.Approve(sub.ID, reviewerID, "ok")
			} else {
				_, results[i] = svc.Review.Reject(sub.ID, reviewerID, "not ok")
			}
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range results {
		if err == nil {
			wins++
		} else {
			assert.Equal(t, ErrAlreadyReviewed, err)
		}
	}
	assert.Equal(t, 1, wins)

	final, err := repos.Submission.FindByID(sub.ID)
	require.NoError(t, err)
	assert.NotEqual(t, submission.StatusPending, final.Status)
	// Exactly one terminal marker is set.
	assert.NotEqual(t, final.ApprovedBy != nil, final.RejectedBy != nil,
		"approved_by and rejected_by must be mutually exclusive")
}
