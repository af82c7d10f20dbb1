package application

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/fieldopskit/fieldops-go/internal/domain/cyclelog"
	"github.com/fieldopskit/fieldops-go/internal/domain/form"
	"github.com/fieldopskit/fieldops-go/internal/repository"
	"github.com/fieldopskit/fieldops-go/pkg/criteria"
	"gorm.io/gorm"
)

type VisibilityStatus string

const (
	VisibilityNotFound         VisibilityStatus = "not_found"
	VisibilityNotAttached      VisibilityStatus = "not_attached"
	VisibilityCriteriaNotMet   VisibilityStatus = "criteria_not_met"
	VisibilityInvalidCriteria  VisibilityStatus = "invalid_criteria"
	VisibilityFrozen           VisibilityStatus = "frozen"
	VisibilityMaxCyclesReached VisibilityStatus = "max_cycles_reached"
	VisibilityVisible          VisibilityStatus = "visible"
)

// VisibilityResult is a tagged outcome, not a boolean: the UI and the
// submission path both branch on the reason.
type VisibilityResult struct {
	Status          VisibilityStatus `json:"status"`
	CurrentCycle    int              `json:"current_cycle,omitempty"`
	MaxCycles       int              `json:"max_cycles,omitempty"`
	Remaining       int              `json:"remaining,omitempty"`
	FrozenForSecond int64            `json:"frozen_for_seconds,omitempty"`
	CycleLogID      uint             `json:"-"`
}

func (r VisibilityResult) Visible() bool {
	return r.Status == VisibilityVisible
}

type VisibilityService struct {
	Repos *repository.Repos
}

func NewVisibilityService(repos *repository.Repos) *VisibilityService {
	return &VisibilityService{Repos: repos}
}

// CheckVisibility decides whether the agent may submit the form at instant
// now. The cycle log for the current tracking month is created lazily on
// first access, snapshotting the form's cycle/freeze settings so later admin
// edits cannot change a month already in progress. The returned CycleLogID
// must be reused by the submission path; recomputing it would reopen the
// race this method just closed.
func (s *VisibilityService) CheckVisibility(formID, agentID uint, now time.Time) (VisibilityResult, error) {
	f, err := s.Repos.Form.FindByID(formID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return VisibilityResult{Status: VisibilityNotFound}, nil
		}
		return VisibilityResult{}, err
	}
	if !f.Active {
		return VisibilityResult{Status: VisibilityNotFound}, nil
	}

	if f.AttachToSpecificAgents {
		result, done, err := s.checkAttachment(f, agentID)
		if err != nil || done {
			return result, err
		}
	}

	log, err := s.currentCycleLog(f, agentID, now)
	if err != nil {
		return VisibilityResult{}, err
	}

	if log.IsFrozen && log.FreezeExpiresAt != nil {
		if log.FreezeExpiresAt.After(now) {
			return VisibilityResult{
				Status:          VisibilityFrozen,
				CurrentCycle:    log.CurrentCycle,
				MaxCycles:       log.MaxCyclesAllowed,
				FrozenForSecond: int64(log.FreezeExpiresAt.Sub(now) / time.Second),
				CycleLogID:      log.ID,
			}, nil
		}
		// Expired freeze is lifted lazily here; there is no background
		// sweep.
		if err := s.Repos.CycleLog.ClearExpiredFreeze(log.ID, now); err != nil {
			return VisibilityResult{}, err
		}
	}

	if log.CurrentCycle >= log.MaxCyclesAllowed {
		return VisibilityResult{
			Status:       VisibilityMaxCyclesReached,
			CurrentCycle: log.CurrentCycle,
			MaxCycles:    log.MaxCyclesAllowed,
			CycleLogID:   log.ID,
		}, nil
	}

	return VisibilityResult{
		Status:       VisibilityVisible,
		CurrentCycle: log.CurrentCycle,
		MaxCycles:    log.MaxCyclesAllowed,
		Remaining:    log.MaxCyclesAllowed - log.CurrentCycle,
		CycleLogID:   log.ID,
	}, nil
}

// checkAttachment reports (result, done): done is false only when the agent
// passed the attachment gate and evaluation should continue.
func (s *VisibilityService) checkAttachment(f *form.Form, agentID uint) (VisibilityResult, bool, error) {
	att, err := s.Repos.Attachment.Find(f.ID, agentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return VisibilityResult{Status: VisibilityNotAttached}, true, nil
		}
		return VisibilityResult{}, true, err
	}
	if !att.Active {
		return VisibilityResult{Status: VisibilityNotAttached}, true, nil
	}

	var rules []criteria.Rule
	if len(att.Criteria) > 0 {
		if err := json.Unmarshal(att.Criteria, &rules); err != nil {
			return VisibilityResult{Status: VisibilityInvalidCriteria}, true, nil
		}
	}

	ag, err := s.Repos.Agent.FindByID(agentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return VisibilityResult{Status: VisibilityNotAttached}, true, nil
		}
		return VisibilityResult{}, true, err
	}

	ok, err := criteria.Evaluate(rules, ag.Profile())
	if err != nil {
		// Misconfigured attachment, not a failed rule. The caller must
		// be able to tell the two apart.
		if errors.Is(err, criteria.ErrInvalidCriteria) {
			return VisibilityResult{Status: VisibilityInvalidCriteria}, true, nil
		}
		return VisibilityResult{}, true, err
	}
	if !ok {
		return VisibilityResult{Status: VisibilityCriteriaNotMet}, true, nil
	}

	return VisibilityResult{}, false, nil
}

// currentCycleLog finds or lazily creates the log for the month containing
// now. Creation snapshots the form's current settings; concurrent first
// touches are resolved by the store's uniqueness constraint.
func (s *VisibilityService) currentCycleLog(f *form.Form, agentID uint, now time.Time) (*cyclelog.CycleLog, error) {
	month := cyclelog.MonthOf(now)

	log, err := s.Repos.CycleLog.Find(f.ID, agentID, month)
	if err == nil {
		return log, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fresh := &cyclelog.CycleLog{
		FormID:                 f.ID,
		AgentID:                agentID,
		TrackingMonth:          month,
		CurrentCycle:           0,
		MaxCyclesAllowed:       f.CyclesPerMonth,
		SnapshotCyclesPerMonth: f.CyclesPerMonth,
		SnapshotFreezeEnabled:  f.FreezeEnabled,
		SnapshotFreezeSeconds:  f.FreezeDurationSeconds,
	}
	return s.Repos.CycleLog.GetOrCreate(fresh)
}
