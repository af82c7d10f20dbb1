package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/fieldopskit/fieldops-go/internal/application"
	"github.com/fieldopskit/fieldops-go/internal/domain/agent"
	"github.com/fieldopskit/fieldops-go/internal/domain/form"
	"github.com/fieldopskit/fieldops-go/internal/repository"
	"github.com/fieldopskit/fieldops-go/internal/testutils"
	"github.com/fieldopskit/fieldops-go/pkg/clock"
	"github.com/fieldopskit/fieldops-go/pkg/types"
	"github.com/fieldopskit/fieldops-go/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSubmissionHandler(t *testing.T) (*SubmissionHandler, *application.Services, *repository.Repos) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutils.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	clk := clock.NewMock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	svc := application.NewWithClock(repos, clk)

	oldLog := utils.LogAudit
	utils.LogAudit = func(userID uint, ip, ua, action, resourceType, resourceID string, before, after any, description string, auditRepos repository.AuditRepo) error {
		return nil
	}
	t.Cleanup(func() { utils.LogAudit = oldLog })

	return NewSubmissionHandler(svc.Submission, svc.Review, repos), svc, repos
}

func testContext(t *testing.T, userID uint, method, target string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	c.Request = httptest.NewRequest(method, target, &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("claims", &types.Claims{UserID: userID, Username: "tester"})
	return c, w
}

func seedVisibleForm(t *testing.T, repos *repository.Repos) (*form.Form, *agent.Agent) {
	t.Helper()

	f := &form.Form{Title: "Site Inspection", CyclesPerMonth: 1, Active: true}
	require.NoError(t, repos.Form.Create(f))
	a := &agent.Agent{Name: "Alice", Status: agent.AgentStatusActive}
	require.NoError(t, repos.Agent.Create(a))
	return f, a
}

func TestSubmitHandler_CreatedThenConflict(t *testing.T) {
	h, _, repos := setupSubmissionHandler(t)
	_, a := seedVisibleForm(t, repos)

	body := gin.H{"agent_id": a.ID, "payload": gin.H{"ok": true}}

	c, w := testContext(t, 1, http.MethodPost, "/forms/1/submissions", body)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	h.Submit(c)
	assert.Equal(t, http.StatusCreated, w.Code)

	// The single monthly cycle is spent; the retry surfaces the reason.
	c, w = testContext(t, 1, http.MethodPost, "/forms/1/submissions", body)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	h.Submit(c)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "max_cycles_reached")
}

func TestApproveHandler_ErrorMapping(t *testing.T) {
	h, _, repos := setupSubmissionHandler(t)
	_, a := seedVisibleForm(t, repos)

	input := gin.H{"agent_id": a.ID, "payload": gin.H{"ok": true}}
	c, w := testContext(t, 1, http.MethodPost, "/forms/1/submissions", input)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	h.Submit(c)
	require.Equal(t, http.StatusCreated, w.Code)

	// Missing submission.
	c, w = testContext(t, 2, http.MethodPut, "/submissions/999/approve", gin.H{})
	c.Params = gin.Params{{Key: "id", Value: "999"}}
	h.Approve(c)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Submitter reviewing their own work.
	c, w = testContext(t, 1, http.MethodPut, "/submissions/1/approve", gin.H{})
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	h.Approve(c)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// A proper second pair of eyes.
	c, w = testContext(t, 2, http.MethodPut, "/submissions/1/approve", gin.H{"notes": "good"})
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	h.Approve(c)
	assert.Equal(t, http.StatusOK, w.Code)

	// One-shot: the decision cannot be re-made.
	c, w = testContext(t, 3, http.MethodPut, "/submissions/1/reject", gin.H{"reason": "late"})
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	h.Reject(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRejectHandler_ReasonRequired(t *testing.T) {
	h, _, repos := setupSubmissionHandler(t)
	_, a := seedVisibleForm(t, repos)

	input := gin.H{"agent_id": a.ID, "payload": gin.H{"ok": true}}
	c, w := testContext(t, 1, http.MethodPost, "/forms/1/submissions", input)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	h.Submit(c)
	require.Equal(t, http.StatusCreated, w.Code)

	// Binding rejects an empty reason before the service is reached.
	c, w = testContext(t, 2, http.MethodPut, "/submissions/1/reject", gin.H{})
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	h.Reject(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
