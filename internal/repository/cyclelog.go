package repository

import (
	"errors"
	"time"

	"github.com/fieldopskit/fieldops-go/internal/domain/cyclelog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrCycleConflict is returned when the conditional cycle update matched no
// row: either another submission consumed the expected cycle first or the
// quota is exhausted. Callers re-check visibility rather than guessing.
var ErrCycleConflict = errors.New("cycle log conflict")

type CycleLogRepo interface {
	// GetOrCreate inserts the log unless one already exists for its
	// (form, agent, month) key and returns the stored row either way.
	// Safe under concurrent first-touches: the unique index turns the
	// losing insert into a fetch of the winner.
	GetOrCreate(log *cyclelog.CycleLog) (*cyclelog.CycleLog, error)
	FindByID(id uint) (*cyclelog.CycleLog, error)
	Find(formID, agentID uint, month time.Time) (*cyclelog.CycleLog, error)
	// ConsumeCycle advances the counter as a single conditional update
	// guarded on the observed cycle pre-image, so two concurrent
	// submissions can never both consume the same cycle.
	ConsumeCycle(id uint, expectedCycle int, now time.Time, freezeUntil *time.Time) error
	// ClearExpiredFreeze lifts the freeze flag only when the expiry has
	// actually passed. This lazy write-back is the sole unfreeze path.
	ClearExpiredFreeze(id uint, now time.Time) error
	CountByMonth(month time.Time) (int64, error)
	CreateRolloverEvent(ev *cyclelog.RolloverEvent) error
	WithTx(tx *gorm.DB) CycleLogRepo
}

type DBCycleLogRepo struct {
	db *gorm.DB
}

func NewCycleLogRepo(db *gorm.DB) *DBCycleLogRepo {
	return &DBCycleLogRepo{db: db}
}

func (r *DBCycleLogRepo) GetOrCreate(log *cyclelog.CycleLog) (*cyclelog.CycleLog, error) {
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "form_id"}, {Name: "agent_id"}, {Name: "tracking_month"}},
		DoNothing: true,
	}).Create(log)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 1 {
		return log, nil
	}
	// Lost the insert race; the winner's row is authoritative.
	return r.Find(log.FormID, log.AgentID, log.TrackingMonth)
}

func (r *DBCycleLogRepo) FindByID(id uint) (*cyclelog.CycleLog, error) {
	var l cyclelog.CycleLog
	if err := r.db.First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *DBCycleLogRepo) Find(formID, agentID uint, month time.Time) (*cyclelog.CycleLog, error) {
	var l cyclelog.CycleLog
	err := r.db.Where("form_id = ? AND agent_id = ? AND tracking_month = ?", formID, agentID, month).
		First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *DBCycleLogRepo) ConsumeCycle(id uint, expectedCycle int, now time.Time, freezeUntil *time.Time) error {
	updates := map[string]interface{}{
		"current_cycle":      expectedCycle + 1,
		"submissions_count":  gorm.Expr("submissions_count + 1"),
		"last_submission_at": now,
		"updated_at":         now,
	}
	if freezeUntil != nil {
		updates["is_frozen"] = true
		updates["freeze_expires_at"] = *freezeUntil
	}

	res := r.db.Model(&cyclelog.CycleLog{}).
		Where("id = ? AND current_cycle = ? AND current_cycle < max_cycles_allowed", id, expectedCycle).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCycleConflict
	}
	return nil
}

func (r *DBCycleLogRepo) ClearExpiredFreeze(id uint, now time.Time) error {
	return r.db.Model(&cyclelog.CycleLog{}).
		Where("id = ? AND is_frozen = ? AND freeze_expires_at <= ?", id, true, now).
		Updates(map[string]interface{}{"is_frozen": false, "freeze_expires_at": nil}).Error
}

func (r *DBCycleLogRepo) CountByMonth(month time.Time) (int64, error) {
	var n int64
	err := r.db.Model(&cyclelog.CycleLog{}).Where("tracking_month = ?", month).Count(&n).Error
	return n, err
}

func (r *DBCycleLogRepo) CreateRolloverEvent(ev *cyclelog.RolloverEvent) error {
	return r.db.Create(ev).Error
}

func (r *DBCycleLogRepo) WithTx(tx *gorm.DB) CycleLogRepo {
	if tx == nil {
		return r
	}
	return &DBCycleLogRepo{db: tx}
}
