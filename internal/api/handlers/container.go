package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/fieldopskit/fieldops-go/internal/application"
	"github.com/fieldopskit/fieldops-go/internal/repository"
)

type Handlers struct {
	Agent      *AgentHandler
	Form       *FormHandler
	Submission *SubmissionHandler
	User       *UserHandler
	Audit      *AuditHandler
	Rollover   *RolloverHandler
	Stream     *StreamHandler
	Router     *gin.Engine
}

func New(svc *application.Services, repos *repository.Repos, router *gin.Engine) *Handlers {
	return &Handlers{
		Agent:      NewAgentHandler(svc.Agent, repos),
		Form:       NewFormHandler(svc.Form, svc.Visibility, svc.Clock, repos),
		Submission: NewSubmissionHandler(svc.Submission, svc.Review, repos),
		User:       NewUserHandler(svc.User),
		Audit:      NewAuditHandler(svc.Audit),
		Rollover:   NewRolloverHandler(svc.Rollover),
		Stream:     NewStreamHandler(svc.Events),
		Router:     router,
	}
}
