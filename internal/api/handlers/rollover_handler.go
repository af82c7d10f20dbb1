package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/fieldopskit/fieldops-go/internal/application"
	"github.com/fieldopskit/fieldops-go/pkg/response"
	"github.com/fieldopskit/fieldops-go/pkg/utils"
)

type RolloverHandler struct {
	svc *application.RolloverService
}

func NewRolloverHandler(svc *application.RolloverService) *RolloverHandler {
	return &RolloverHandler{svc: svc}
}

// RecordSweep writes a rollover marker for the current month. Cycle state
// rolls over by itself at the month boundary; this endpoint only records
// that an operator took stock of it.
func (h *RolloverHandler) RecordSweep(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
		return
	}

	ev, err := h.svc.RecordSweep(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, ev)
}
