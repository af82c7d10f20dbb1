package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/fieldopskit/fieldops-go/internal/application"
	"github.com/fieldopskit/fieldops-go/internal/domain/form"
	"github.com/fieldopskit/fieldops-go/internal/repository"
	"github.com/fieldopskit/fieldops-go/pkg/clock"
	"github.com/fieldopskit/fieldops-go/pkg/criteria"
	"github.com/fieldopskit/fieldops-go/pkg/response"
	"github.com/fieldopskit/fieldops-go/pkg/utils"
	"gorm.io/gorm"
)

type FormHandler struct {
	svc        *application.FormService
	visibility *application.VisibilityService
	clock      clock.Clock
	repos      *repository.Repos
}

func NewFormHandler(svc *application.FormService, visibility *application.VisibilityService, clk clock.Clock, repos *repository.Repos) *FormHandler {
	return &FormHandler{svc: svc, visibility: visibility, clock: clk, repos: repos}
}

func configErrorStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, application.ErrInvalidCyclesPerMonth),
		errors.Is(err, application.ErrFreezeDurationRequired),
		errors.Is(err, application.ErrFreezeDurationSet),
		errors.Is(err, criteria.ErrInvalidCriteria):
		return http.StatusUnprocessableEntity, true
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, true
	}
	return 0, false
}

func (h *FormHandler) CreateForm(c *gin.Context) {
	var input form.CreateFormDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	f, err := h.svc.CreateForm(input)
	if err != nil {
		if status, ok := configErrorStatus(err); ok {
			c.JSON(status, response.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}

	utils.LogAuditWithConsole(c, "form.create", "form", f.Title, nil, f, "form created", h.repos.Audit)
	c.JSON(http.StatusCreated, f)
}

func (h *FormHandler) UpdateForm(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	var input form.UpdateFormDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	before, _ := h.svc.GetForm(id)

	f, err := h.svc.UpdateForm(id, input)
	if err != nil {
		if status, ok := configErrorStatus(err); ok {
			c.JSON(status, response.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}

	utils.LogAuditWithConsole(c, "form.update", "form", f.Title, before, f, "form updated", h.repos.Audit)
	c.JSON(http.StatusOK, f)
}

func (h *FormHandler) GetForm(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	f, err := h.svc.GetForm(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: "form not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, f)
}

func (h *FormHandler) ListForms(c *gin.Context) {
	forms, err := h.svc.ListForms()
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, forms)
}

func (h *FormHandler) AttachAgent(c *gin.Context) {
	formID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	var input form.AttachAgentDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	att, err := h.svc.AttachAgent(formID, input)
	if err != nil {
		if status, ok := configErrorStatus(err); ok {
			c.JSON(status, response.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, att)
}

func (h *FormHandler) DetachAgent(c *gin.Context) {
	formID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	agentID, err := utils.ParseIDParam(c, "agent_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.svc.DetachAgent(formID, agentID); err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.MessageResponse{Message: "Agent detached"})
}

func (h *FormHandler) ListAttachments(c *gin.Context) {
	formID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	atts, err := h.svc.ListAttachments(formID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, atts)
}

// CheckVisibility reports whether the given agent may submit this form right
// now, with the reason when they may not.
func (h *FormHandler) CheckVisibility(c *gin.Context) {
	formID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	agentID, err := utils.ParseIDParam(c, "agent_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.visibility.CheckVisibility(formID, agentID, h.clock.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
