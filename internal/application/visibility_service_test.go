package application

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/fieldopskit/fieldops-go/internal/domain/agent"
	"github.com/fieldopskit/fieldops-go/internal/domain/cyclelog"
	"github.com/fieldopskit/fieldops-go/internal/domain/form"
	"github.com/fieldopskit/fieldops-go/internal/repository"
	"github.com/fieldopskit/fieldops-go/internal/repository/mock"
	"github.com/fieldopskit/fieldops-go/pkg/criteria"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// --------------------- Setup ---------------------
type visibilityMocks struct {
	form       *mock.MockFormRepo
	attachment *mock.MockAttachmentRepo
	agent      *mock.MockAgentRepo
	cycleLog   *mock.MockCycleLogRepo
}

func setupVisibilityMocks(t *testing.T) (*VisibilityService, visibilityMocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	m := visibilityMocks{
		form:       mock.NewMockFormRepo(ctrl),
		attachment: mock.NewMockAttachmentRepo(ctrl),
		agent:      mock.NewMockAgentRepo(ctrl),
		cycleLog:   mock.NewMockCycleLogRepo(ctrl),
	}
	repos := &repository.Repos{
		Form:       m.form,
		Attachment: m.attachment,
		Agent:      m.agent,
		CycleLog:   m.cycleLog,
	}
	return NewVisibilityService(repos), m
}

func mustCriteria(t *testing.T, rules []criteria.Rule) []byte {
	raw, err := json.Marshal(rules)
	assert.NoError(t, err)
	return raw
}

var testNow = time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

func openForm(id uint, attached bool) *form.Form {
	f := &form.Form{
		Title:                  "Monthly Site Inspection",
		AttachToSpecificAgents: attached,
		CyclesPerMonth:         2,
		Active:                 true,
	}
	f.ID = id
	return f
}

// --------------------- CheckVisibility ---------------------
func TestCheckVisibility_FormNotFound(t *testing.T) {
	svc, m := setupVisibilityMocks(t)

	m.form.EXPECT().FindByID(uint(99)).Return(nil, gorm.ErrRecordNotFound)

	res, err := svc.CheckVisibility(99, 1, testNow)
	assert.NoError(t, err)
	assert.Equal(t, VisibilityNotFound, res.Status)
}

func TestCheckVisibility_InactiveFormReportedAsNotFound(t *testing.T) {
	svc, m := setupVisibilityMocks(t)

	f := openForm(1, false)
	f.Active = false
	m.form.EXPECT().FindByID(uint(1)).Return(f, nil)

	res, err := svc.CheckVisibility(1, 1, testNow)
	assert.NoError(t, err)
	assert.Equal(t, VisibilityNotFound, res.Status)
}

func TestCheckVisibility_NotAttached(t *testing.T) {
	svc, m := setupVisibilityMocks(t)

	m.form.EXPECT().FindByID(uint(1)).Return(openForm(1, true), nil)
	m.attachment.EXPECT().Find(uint(1), uint(7)).Return(nil, gorm.ErrRecordNotFound)

	res, err := svc.CheckVisibility(1, 7, testNow)
	assert.NoError(t, err)
	assert.Equal(t, VisibilityNotAttached, res.Status)
}

func TestCheckVisibility_DeactivatedAttachmentIsNotAttached(t *testing.T) {
	svc, m := setupVisibilityMocks(t)

	m.form.EXPECT().FindByID(uint(1)).Return(openForm(1, true), nil)
	m.attachment.EXPECT().Find(uint(1), uint(7)).Return(&form.FormAttachment{
		FormID:  1,
		AgentID: 7,
		Active:  false,
	}, nil)

	res, err := svc.CheckVisibility(1, 7, testNow)
	assert.NoError(t, err)
	assert.Equal(t, VisibilityNotAttached, res.Status)
}

func TestCheckVisibility_CriteriaNotMet(t *testing.T) {
	svc, m := setupVisibilityMocks(t)

	rules := []criteria.Rule{
		{Field: "status", Operator: criteria.OpEquals, Value: "active"},
	}
	m.form.EXPECT().FindByID(uint(1)).Return(openForm(1, true), nil)
	m.attachment.EXPECT().Find(uint(1), uint(7)).Return(&form.FormAttachment{
		FormID:   1,
		AgentID:  7,
		Criteria: mustCriteria(t, rules),
		Active:   true,
	}, nil)
	m.agent.EXPECT().FindByID(uint(7)).Return(&agent.Agent{
		Name:   "Bob",
		Status: agent.AgentStatusInactive,
	}, nil)

	res, err := svc.CheckVisibility(1, 7, testNow)
	assert.NoError(t, err)
	assert.Equal(t, VisibilityCriteriaNotMet, res.Status)
}

func TestCheckVisibility_InvalidCriteriaIsNotCriteriaNotMet(t *testing.T) {
	svc, m := setupVisibilityMocks(t)

	rules := []criteria.Rule{
		{Field: "favourite_color", Operator: criteria.OpEquals, Value: "blue"},
	}
	m.form.EXPECT().FindByID(uint(1)).Return(openForm(1, true), nil)
	m.attachment.EXPECT().Find(uint(1), uint(7)).Return(&form.FormAttachment{
		FormID:   1,
		AgentID:  7,
		Criteria: mustCriteria(t, rules),
		Active:   true,
	}, nil)
	m.agent.EXPECT().FindByID(uint(7)).Return(&agent.Agent{
		Name:   "Bob",
		Status: agent.AgentStatusActive,
	}, nil)

	res, err := svc.CheckVisibility(1, 7, testNow)
	assert.NoError(t, err)
	assert.Equal(t, VisibilityInvalidCriteria, res.Status)
}

func TestCheckVisibility_LazyCreatesLogWithSnapshot(t *testing.T) {
	svc, m := setupVisibilityMocks(t)

	freezeSecs := int64(3600)
	f := openForm(1, false)
	f.FreezeEnabled = true
	f.FreezeDurationSeconds = &freezeSecs
	month := cyclelog.MonthOf(testNow)

	m.form.EXPECT().FindByID(uint(1)).Return(f, nil)
	m.cycleLog.EXPECT().Find(uint(1), uint(7), month).Return(nil, gorm.ErrRecordNotFound)
	m.cycleLog.EXPECT().GetOrCreate(gomock.Any()).DoAndReturn(func(log *cyclelog.CycleLog) (*cyclelog.CycleLog, error) {
		assert.Equal(t, month, log.TrackingMonth)
		assert.Equal(t, 0, log.CurrentCycle)
		assert.Equal(t, 2, log.MaxCyclesAllowed)
		assert.Equal(t, 2, log.SnapshotCyclesPerMonth)
		assert.True(t, log.SnapshotFreezeEnabled)
		assert.Equal(t, &freezeSecs, log.SnapshotFreezeSeconds)
		log.ID = 42
		return log, nil
	})

	res, err := svc.CheckVisibility(1, 7, testNow)
	assert.NoError(t, err)
	assert.Equal(t, VisibilityVisible, res.Status)
	assert.Equal(t, 0, res.CurrentCycle)
	assert.Equal(t, 2, res.MaxCycles)
	assert.Equal(t, 2, res.Remaining)
	assert.Equal(t, uint(42), res.CycleLogID)
}

func TestCheckVisibility_Frozen(t *testing.T) {
	svc, m := setupVisibilityMocks(t)

	expires := testNow.Add(90 * time.Second)
	m.form.EXPECT().FindByID(uint(1)).Return(openForm(1, false), nil)
	m.cycleLog.EXPECT().Find(uint(1), uint(7), cyclelog.MonthOf(testNow)).Return(&cyclelog.CycleLog{
		ID:               42,
		CurrentCycle:     1,
		MaxCyclesAllowed: 2,
		IsFrozen:         true,
		FreezeExpiresAt:  &expires,
	}, nil)

	res, err := svc.CheckVisibility(1, 7, testNow)
	assert.NoError(t, err)
	assert.Equal(t, VisibilityFrozen, res.Status)
	assert.Equal(t, int64(90), res.FrozenForSecond)
}

func TestCheckVisibility_ExpiredFreezeIsClearedLazily(t *testing.T) {
	svc, m := setupVisibilityMocks(t)

	expires := testNow.Add(-1 * time.Second)
	m.form.EXPECT().FindByID(uint(1)).Return(openForm(1, false), nil)
	m.cycleLog.EXPECT().Find(uint(1), uint(7), cyclelog.MonthOf(testNow)).Return(&cyclelog.CycleLog{
		ID:               42,
		CurrentCycle:     1,
		MaxCyclesAllowed: 2,
		IsFrozen:         true,
		FreezeExpiresAt:  &expires,
	}, nil)
	m.cycleLog.EXPECT().ClearExpiredFreeze(uint(42), testNow).Return(nil)

	res, err := svc.CheckVisibility(1, 7, testNow)
	assert.NoError(t, err)
	assert.Equal(t, VisibilityVisible, res.Status)
	assert.Equal(t, 1, res.Remaining)
}

func TestCheckVisibility_MaxCyclesReached(t *testing.T) {
	svc, m := setupVisibilityMocks(t)

	m.form.EXPECT().FindByID(uint(1)).Return(openForm(1, false), nil)
	m.cycleLog.EXPECT().Find(uint(1), uint(7), cyclelog.MonthOf(testNow)).Return(&cyclelog.CycleLog{
		ID:               42,
		CurrentCycle:     2,
		MaxCyclesAllowed: 2,
	}, nil)

	res, err := svc.CheckVisibility(1, 7, testNow)
	assert.NoError(t, err)
	assert.Equal(t, VisibilityMaxCyclesReached, res.Status)
	assert.Equal(t, 2, res.CurrentCycle)
}

func TestCheckVisibility_AttachedAgentPassesAllGates(t *testing.T) {
	svc, m := setupVisibilityMocks(t)

	rules := []criteria.Rule{
		{Field: "status", Operator: criteria.OpEquals, Value: "active"},
		{Field: "external_code", Operator: criteria.OpStartsWith, Value: "AG-"},
	}
	m.form.EXPECT().FindByID(uint(1)).Return(openForm(1, true), nil)
	m.attachment.EXPECT().Find(uint(1), uint(7)).Return(&form.FormAttachment{
		FormID:   1,
		AgentID:  7,
		Criteria: mustCriteria(t, rules),
		Active:   true,
	}, nil)
	m.agent.EXPECT().FindByID(uint(7)).Return(&agent.Agent{
		Name:         "Alice",
		Status:       agent.AgentStatusActive,
		ExternalCode: "AG-NORTH-011",
	}, nil)
	m.cycleLog.EXPECT().Find(uint(1), uint(7), cyclelog.MonthOf(testNow)).Return(&cyclelog.CycleLog{
		ID:               42,
		CurrentCycle:     1,
		MaxCyclesAllowed: 2,
	}, nil)

	res, err := svc.CheckVisibility(1, 7, testNow)
	assert.NoError(t, err)
	assert.Equal(t, VisibilityVisible, res.Status)
	assert.Equal(t, 1, res.Remaining)
}
