package application

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/fieldopskit/fieldops-go/internal/domain/submission"
	"github.com/fieldopskit/fieldops-go/internal/events"
	"github.com/fieldopskit/fieldops-go/internal/repository"
	"github.com/fieldopskit/fieldops-go/pkg/clock"
	"github.com/fieldopskit/fieldops-go/pkg/utils"
)

// NotVisibleError carries the visibility outcome that blocked a submission:
// a legitimate business state, not an internal failure.
type NotVisibleError struct {
	Result VisibilityResult
}

func (e *NotVisibleError) Error() string {
	return fmt.Sprintf("form not visible: %s", e.Result.Status)
}

type SubmitResult struct {
	Submission      *submission.Submission `json:"submission"`
	CycleNumber     int                    `json:"cycle_number"`
	FreezeExpiresAt *time.Time             `json:"freeze_expires_at,omitempty"`
}

type SubmissionService struct {
	Repos      *repository.Repos
	visibility *VisibilityService
	clock      clock.Clock
	hub        *events.Hub
}

func NewSubmissionService(repos *repository.Repos, visibility *VisibilityService, clk clock.Clock, hub *events.Hub) *SubmissionService {
	return &SubmissionService{
		Repos:      repos,
		visibility: visibility,
		clock:      clk,
		hub:        hub,
	}
}

// Submit validates visibility, consumes one cycle and persists the
// submission, all against the cycle log row the visibility check returned.
// The cycle consumption is a conditional update on the observed cycle
// pre-image; when a concurrent submission wins that race the whole flow is
// retried once against fresh state before giving up.
func (s *SubmissionService) Submit(formID, submitterID uint, input submission.CreateSubmissionDTO) (*SubmitResult, error) {
	for attempt := 0; ; attempt++ {
		now := s.clock.Now()

		vis, err := s.visibility.CheckVisibility(formID, input.AgentID, now)
		if err != nil {
			return nil, err
		}
		if !vis.Visible() {
			return nil, &NotVisibleError{Result: vis}
		}

		result, err := s.consume(formID, submitterID, input, vis, now)
		if err == nil {
			s.afterSubmit(submitterID, result)
			return result, nil
		}
		if !errors.Is(err, repository.ErrCycleConflict) {
			return nil, err
		}
		if attempt >= 1 {
			// Two losses in a row; report the current state instead of
			// spinning.
			return nil, s.conflictError(formID, input.AgentID)
		}
	}
}

func (s *SubmissionService) consume(formID, submitterID uint, input submission.CreateSubmissionDTO, vis VisibilityResult, now time.Time) (*SubmitResult, error) {
	log, err := s.Repos.CycleLog.FindByID(vis.CycleLogID)
	if err != nil {
		return nil, err
	}

	var freezeUntil *time.Time
	if d := log.FreezeDuration(); d > 0 {
		t := now.Add(d)
		freezeUntil = &t
	}

	sub := &submission.Submission{
		Reference:   uuid.NewString(),
		FormID:      formID,
		AgentID:     input.AgentID,
		CycleLogID:  log.ID,
		CycleNumber: vis.CurrentCycle + 1,
		Payload:     input.Payload,
		SubmittedBy: submitterID,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Status:      submission.StatusPending,
	}

	err = s.Repos.ExecTx(func(tx *repository.Repos) error {
		if err := tx.CycleLog.ConsumeCycle(log.ID, vis.CurrentCycle, now, freezeUntil); err != nil {
			return err
		}
		return tx.Submission.Create(sub)
	})
	if err != nil {
		return nil, err
	}

	return &SubmitResult{
		Submission:      sub,
		CycleNumber:     sub.CycleNumber,
		FreezeExpiresAt: freezeUntil,
	}, nil
}

// conflictError re-reads visibility so the caller gets the real reason (in
// practice max_cycles_reached) rather than a bare conflict.
func (s *SubmissionService) conflictError(formID, agentID uint) error {
	vis, err := s.visibility.CheckVisibility(formID, agentID, s.clock.Now())
	if err != nil {
		return err
	}
	if vis.Visible() {
		vis.Status = VisibilityMaxCyclesReached
	}
	return &NotVisibleError{Result: vis}
}

func (s *SubmissionService) afterSubmit(submitterID uint, result *SubmitResult) {
	sub := result.Submission

	go func() {
		if err := utils.LogAudit(submitterID, "", "", "submission.create", "submission",
			sub.Reference, nil, sub, "form submission accepted", s.Repos.Audit); err != nil {
			fmt.Printf("[LogAudit] error: %v\n", err)
		}
	}()

	s.hub.Publish(events.SubmissionEvent{
		Type:         events.EventSubmitted,
		SubmissionID: sub.ID,
		Reference:    sub.Reference,
		FormID:       sub.FormID,
		AgentID:      sub.AgentID,
		CycleNumber:  sub.CycleNumber,
		At:           sub.CreatedAt,
	})
}

func (s *SubmissionService) GetSubmission(id uint) (*submission.Submission, error) {
	return s.Repos.Submission.FindByID(id)
}

func (s *SubmissionService) ListSubmissions(params repository.SubmissionQueryParams) ([]submission.Submission, error) {
	return s.Repos.Submission.List(params)
}
