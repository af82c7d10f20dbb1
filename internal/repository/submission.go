package repository

import (
	"time"

	"github.com/fieldopskit/fieldops-go/internal/domain/submission"
	"gorm.io/gorm"
)

type SubmissionQueryParams struct {
	FormID  *uint
	AgentID *uint
	Status  *submission.SubmissionStatus
	Limit   int
	Offset  int
}

type SubmissionRepo interface {
	Create(s *submission.Submission) error
	FindByID(id uint) (*submission.Submission, error)
	List(params SubmissionQueryParams) ([]submission.Submission, error)
	// MarkApproved and MarkRejected perform the one-shot terminal
	// transition as a single conditional update. The guard encodes the
	// four-eye rule and the pending pre-state, so no caller can bypass
	// either; zero rows affected means the guard failed.
	MarkApproved(id, reviewerID uint, notes string, now time.Time) (int64, error)
	MarkRejected(id, reviewerID uint, reason string, now time.Time) (int64, error)
	WithTx(tx *gorm.DB) SubmissionRepo
}

type DBSubmissionRepo struct {
	db *gorm.DB
}

func NewSubmissionRepo(db *gorm.DB) *DBSubmissionRepo {
	return &DBSubmissionRepo{db: db}
}

func (r *DBSubmissionRepo) Create(s *submission.Submission) error {
	return r.db.Create(s).Error
}

func (r *DBSubmissionRepo) FindByID(id uint) (*submission.Submission, error) {
	var s submission.Submission
	if err := r.db.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *DBSubmissionRepo) List(params SubmissionQueryParams) ([]submission.Submission, error) {
	var subs []submission.Submission
	query := r.db.Model(&submission.Submission{})

	if params.FormID != nil {
		query = query.Where("form_id = ?", *params.FormID)
	}
	if params.AgentID != nil {
		query = query.Where("agent_id = ?", *params.AgentID)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	query = query.Order("created_at DESC")
	if params.Limit > 0 {
		query = query.Limit(params.Limit)
	}
	if params.Offset > 0 {
		query = query.Offset(params.Offset)
	}

	err := query.Find(&subs).Error
	return subs, err
}

func (r *DBSubmissionRepo) MarkApproved(id, reviewerID uint, notes string, now time.Time) (int64, error) {
	res := r.db.Model(&submission.Submission{}).
		Where("id = ? AND status = ? AND approved_by IS NULL AND rejected_by IS NULL AND submitted_by <> ?",
			id, submission.StatusPending, reviewerID).
		Updates(map[string]interface{}{
			"status":       submission.StatusApproved,
			"approved_by":  reviewerID,
			"reviewed_at":  now,
			"review_notes": notes,
			"updated_at":   now,
		})
	return res.RowsAffected, res.Error
}

func (r *DBSubmissionRepo) MarkRejected(id, reviewerID uint, reason string, now time.Time) (int64, error) {
	res := r.db.Model(&submission.Submission{}).
		Where("id = ? AND status = ? AND approved_by IS NULL AND rejected_by IS NULL AND submitted_by <> ?",
			id, submission.StatusPending, reviewerID).
		Updates(map[string]interface{}{
			"status":           submission.StatusRejected,
			"rejected_by":      reviewerID,
			"reviewed_at":      now,
			"rejection_reason": reason,
			"updated_at":       now,
		})
	return res.RowsAffected, res.Error
}

func (r *DBSubmissionRepo) WithTx(tx *gorm.DB) SubmissionRepo {
	if tx == nil {
		return r
	}
	return &DBSubmissionRepo{db: tx}
}
