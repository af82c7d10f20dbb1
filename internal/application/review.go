package application

import (
	"errors"
	"fmt"

	"github.com/fieldopskit/fieldops-go/internal/domain/submission"
	"github.com/fieldopskit/fieldops-go/internal/events"
	"github.com/fieldopskit/fieldops-go/internal/repository"
	"github.com/fieldopskit/fieldops-go/pkg/clock"
	"github.com/fieldopskit/fieldops-go/pkg/utils"
	"gorm.io/gorm"
)

var (
	ErrSubmissionNotFound  = errors.New("submission not found")
	ErrSelfReviewForbidden = errors.New("submitter cannot review their own submission")
	ErrAlreadyReviewed     = errors.New("submission already reviewed")
	ErrReasonRequired      = errors.New("rejection reason is required")
)

// ReviewService enforces the four-eye rule and the one-shot
// pending -> approved|rejected transition. The guards are not only checked
// up front; the terminal transition itself is a conditional update that
// re-encodes them, so a concurrent second reviewer (or a double-click)
// loses at the store even after passing the precheck.
type ReviewService struct {
	Repos *repository.Repos
	clock clock.Clock
	hub   *events.Hub
}

func NewReviewService(repos *repository.Repos, clk clock.Clock, hub *events.Hub) *ReviewService {
	return &ReviewService{Repos: repos, clock: clk, hub: hub}
}

func (s *ReviewService) Approve(submissionID, reviewerID uint, notes string) (*submission.Submission, error) {
	sub, err := s.precheck(submissionID, reviewerID)
	if err != nil {
		return nil, err
	}

	rows, err := s.Repos.Submission.MarkApproved(submissionID, reviewerID, notes, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, s.classifyGuardFailure(submissionID, reviewerID)
	}

	s.afterReview(sub, reviewerID, events.EventApproved, "submission approved")
	return s.Repos.Submission.FindByID(submissionID)
}

func (s *ReviewService) Reject(submissionID, reviewerID uint, reason string) (*submission.Submission, error) {
	if reason == "" {
		return nil, ErrReasonRequired
	}

	sub, err := s.precheck(submissionID, reviewerID)
	if err != nil {
		return nil, err
	}

	rows, err := s.Repos.Submission.MarkRejected(submissionID, reviewerID, reason, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, s.classifyGuardFailure(submissionID, reviewerID)
	}

	s.afterReview(sub, reviewerID, events.EventRejected, "submission rejected")
	return s.Repos.Submission.FindByID(submissionID)
}

func (s *ReviewService) precheck(submissionID, reviewerID uint) (*submission.Submission, error) {
	sub, err := s.Repos.Submission.FindByID(submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	if sub.SubmittedBy == reviewerID {
		return nil, ErrSelfReviewForbidden
	}
	if sub.Status != submission.StatusPending || sub.ApprovedBy != nil || sub.RejectedBy != nil {
		return nil, ErrAlreadyReviewed
	}
	return sub, nil
}

// classifyGuardFailure re-reads the row after a zero-row conditional update
// to report which guard lost the race.
func (s *ReviewService) classifyGuardFailure(submissionID, reviewerID uint) error {
	sub, err := s.Repos.Submission.FindByID(submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubmissionNotFound
		}
		return err
	}
	if sub.SubmittedBy == reviewerID {
		return ErrSelfReviewForbidden
	}
	return ErrAlreadyReviewed
}

func (s *ReviewService) afterReview(sub *submission.Submission, reviewerID uint, eventType, msg string) {
	go func() {
		if err := utils.LogAudit(reviewerID, "", "", "submission."+eventType, "submission",
			sub.Reference, sub, nil, msg, s.Repos.Audit); err != nil {
			fmt.Printf("[LogAudit] error: %v\n", err)
		}
	}()

	s.hub.Publish(events.SubmissionEvent{
		Type:         eventType,
		SubmissionID: sub.ID,
		Reference:    sub.Reference,
		FormID:       sub.FormID,
		AgentID:      sub.AgentID,
		ReviewerID:   reviewerID,
		At:           s.clock.Now(),
	})
}
