package application

import (
	"github.com/fieldopskit/fieldops-go/internal/events"
	"github.com/fieldopskit/fieldops-go/internal/repository"
	"github.com/fieldopskit/fieldops-go/pkg/clock"
)

type Services struct {
	Agent      *AgentService
	Form       *FormService
	Visibility *VisibilityService
	Submission *SubmissionService
	Review     *ReviewService
	Rollover   *RolloverService
	User       *UserService
	Audit      *AuditService
	Events     *events.Hub
	Clock      clock.Clock
}

func New(repos *repository.Repos) *Services {
	return NewWithClock(repos, clock.Real{})
}

func NewWithClock(repos *repository.Repos, clk clock.Clock) *Services {
	hub := events.NewHub()
	visibility := NewVisibilityService(repos)

	return &Services{
		Agent:      NewAgentService(repos),
		Form:       NewFormService(repos),
		Visibility: visibility,
		Submission: NewSubmissionService(repos, visibility, clk, hub),
		Review:     NewReviewService(repos, clk, hub),
		Rollover:   NewRolloverService(repos, clk),
		User:       NewUserService(repos),
		Audit:      NewAuditService(repos),
		Events:     hub,
		Clock:      clk,
	}
}
