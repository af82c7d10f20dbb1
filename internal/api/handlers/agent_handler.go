package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/fieldopskit/fieldops-go/internal/application"
	"github.com/fieldopskit/fieldops-go/internal/domain/agent"
	"github.com/fieldopskit/fieldops-go/internal/repository"
	"github.com/fieldopskit/fieldops-go/pkg/response"
	"github.com/fieldopskit/fieldops-go/pkg/utils"
	"gorm.io/gorm"
)

type AgentHandler struct {
	svc   *application.AgentService
	repos *repository.Repos
}

func NewAgentHandler(svc *application.AgentService, repos *repository.Repos) *AgentHandler {
	return &AgentHandler{svc: svc, repos: repos}
}

func (h *AgentHandler) CreateAgent(c *gin.Context) {
	var input agent.CreateAgentDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	a, err := h.svc.CreateAgent(input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}

	utils.LogAuditWithConsole(c, "agent.create", "agent", a.Name, nil, a, "agent created", h.repos.Audit)
	c.JSON(http.StatusCreated, a)
}

func (h *AgentHandler) UpdateAgent(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	var input agent.UpdateAgentDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	a, err := h.svc.UpdateAgent(id, input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: "agent not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, a)
}

func (h *AgentHandler) GetAgent(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	a, err := h.svc.GetAgent(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: "agent not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, a)
}

func (h *AgentHandler) ListAgents(c *gin.Context) {
	agents, err := h.svc.ListAgents()
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, agents)
}

func (h *AgentHandler) DeleteAgent(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.svc.DeleteAgent(id); err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.MessageResponse{Message: "Agent deleted"})
}
