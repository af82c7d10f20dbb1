package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/fieldopskit/fieldops-go/internal/application"
	"github.com/fieldopskit/fieldops-go/internal/domain/submission"
	"github.com/fieldopskit/fieldops-go/internal/repository"
	"github.com/fieldopskit/fieldops-go/pkg/response"
	"github.com/fieldopskit/fieldops-go/pkg/utils"
	"gorm.io/gorm"
)

type SubmissionHandler struct {
	svc    *application.SubmissionService
	review *application.ReviewService
	repos  *repository.Repos
}

func NewSubmissionHandler(svc *application.SubmissionService, review *application.ReviewService, repos *repository.Repos) *SubmissionHandler {
	return &SubmissionHandler{svc: svc, review: review, repos: repos}
}

// Submit accepts a filled form for an agent. A blocked submission returns
// 409 with the visibility result so the client can show the agent why.
func (h *SubmissionHandler) Submit(c *gin.Context) {
	formID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
		return
	}

	var input submission.CreateSubmissionDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.svc.Submit(formID, userID, input)
	if err != nil {
		var notVisible *application.NotVisibleError
		if errors.As(err, &notVisible) {
			c.JSON(http.StatusConflict, gin.H{
				"error":      notVisible.Error(),
				"visibility": notVisible.Result,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	sub, err := h.svc.GetSubmission(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: "submission not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, sub)
}

func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	params := repository.SubmissionQueryParams{Limit: 50}

	if v := c.Query("form_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid form_id parameter"})
			return
		}
		formID := uint(id)
		params.FormID = &formID
	}
	if v := c.Query("agent_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid agent_id parameter"})
			return
		}
		agentID := uint(id)
		params.AgentID = &agentID
	}
	if v := c.Query("status"); v != "" {
		status := submission.SubmissionStatus(v)
		params.Status = &status
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			params.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			params.Offset = n
		}
	}

	subs, err := h.svc.ListSubmissions(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, subs)
}

func reviewErrorStatus(err error) int {
	switch {
	case errors.Is(err, application.ErrSubmissionNotFound):
		return http.StatusNotFound
	case errors.Is(err, application.ErrSelfReviewForbidden):
		return http.StatusForbidden
	case errors.Is(err, application.ErrAlreadyReviewed):
		return http.StatusConflict
	case errors.Is(err, application.ErrReasonRequired):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *SubmissionHandler) Approve(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
		return
	}

	var input submission.ApproveSubmissionDTO
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	sub, err := h.review.Approve(id, userID, input.Notes)
	if err != nil {
		c.JSON(reviewErrorStatus(err), response.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, sub)
}

func (h *SubmissionHandler) Reject(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: err.Error()})
		return
	}

	var input submission.RejectSubmissionDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	sub, err := h.review.Reject(id, userID, input.Reason)
	if err != nil {
		c.JSON(reviewErrorStatus(err), response.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, sub)
}
