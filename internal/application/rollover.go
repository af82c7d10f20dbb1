package application

import (
	"github.com/google/uuid"
	"github.com/fieldopskit/fieldops-go/internal/domain/cyclelog"
	"github.com/fieldopskit/fieldops-go/internal/repository"
	"github.com/fieldopskit/fieldops-go/pkg/clock"
)

// RolloverService records observability events for month rollovers. There is
// no reset to perform: a new month has no cycle logs until they are first
// touched, which is what actually rolls the counters over.
type RolloverService struct {
	Repos *repository.Repos
	clock clock.Clock
}

func NewRolloverService(repos *repository.Repos, clk clock.Clock) *RolloverService {
	return &RolloverService{Repos: repos, clock: clk}
}

// RecordSweep writes a report-only event noting how many cycle logs the
// previous month accumulated.
func (s *RolloverService) RecordSweep(operatorID uint) (*cyclelog.RolloverEvent, error) {
	now := s.clock.Now()
	month := cyclelog.MonthOf(now)
	lastMonth := cyclelog.MonthOf(month.AddDate(0, -1, 0))

	count, err := s.Repos.CycleLog.CountByMonth(lastMonth)
	if err != nil {
		return nil, err
	}

	ev := &cyclelog.RolloverEvent{
		Reference:     uuid.NewString(),
		Month:         month,
		TriggeredBy:   operatorID,
		LogsLastMonth: count,
	}
	return ev, s.Repos.CycleLog.CreateRolloverEvent(ev)
}
