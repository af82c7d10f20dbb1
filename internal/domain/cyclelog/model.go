package cyclelog

import "time"

// CycleLog is the month-scoped submission counter for one (form, agent)
// pair. Exactly one row exists per (form, agent, tracking month); the
// composite unique index makes concurrent first-touch creation safe. The
// snapshot columns copy the form's cycle/freeze settings at creation so
// admin edits never change a month already in progress.
type CycleLog struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	FormID           uint      `json:"form_id" gorm:"not null;uniqueIndex:idx_cycle_logs_form_agent_month"`
	AgentID          uint      `json:"agent_id" gorm:"not null;uniqueIndex:idx_cycle_logs_form_agent_month"`
	TrackingMonth    time.Time `json:"tracking_month" gorm:"not null;uniqueIndex:idx_cycle_logs_form_agent_month"`
	CurrentCycle     int       `json:"current_cycle"`
	MaxCyclesAllowed int       `json:"max_cycles_allowed"`
	SubmissionsCount int       `json:"submissions_count"`
	IsFrozen         bool      `json:"is_frozen"`
	FreezeExpiresAt  *time.Time `json:"freeze_expires_at"`
	LastSubmissionAt *time.Time `json:"last_submission_at"`

	SnapshotCyclesPerMonth int    `json:"snapshot_cycles_per_month"`
	SnapshotFreezeEnabled  bool   `json:"snapshot_freeze_enabled"`
	SnapshotFreezeSeconds  *int64 `json:"snapshot_freeze_seconds"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FreezeDuration returns the snapshotted cooldown window, zero when the form
// had freezing disabled at month start.
func (l *CycleLog) FreezeDuration() time.Duration {
	if !l.SnapshotFreezeEnabled || l.SnapshotFreezeSeconds == nil {
		return 0
	}
	return time.Duration(*l.SnapshotFreezeSeconds) * time.Second
}

// MonthOf derives the tracking month key: first day of the month containing
// t, at midnight UTC.
func MonthOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// RolloverEvent is a purely observational record written when an operator
// triggers a rollover sweep. Correctness never depends on it: a new month
// starts implicitly when its cycle log is first touched.
type RolloverEvent struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Reference     string    `json:"reference" gorm:"size:36;uniqueIndex"`
	Month         time.Time `json:"month"`
	TriggeredBy   uint      `json:"triggered_by"`
	LogsLastMonth int64     `json:"logs_last_month"`
	CreatedAt     time.Time `json:"created_at"`
}
