package handler

import (
	"net/http"

	"github.com/ameliazsabrina/journalshe-sub000/internal/dto"
	"github.com/ameliazsabrina/journalshe-sub000/internal/service"
	"github.com/ameliazsabrina/journalshe-sub000/pkg/response"
	"github.com/ameliazsabrina/journalshe-sub000/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SubmissionHandler struct {
	service service.SubmissionService
}

func NewSubmissionHandler(service service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{service: service}
}

// Submit accepts the submission and returns it in pending state; grading
// happens asynchronously.
func (h *SubmissionHandler) Submit(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	assignmentID, err := uuid.Parse(c.Param("assignment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assignment id"})
		return
	}

	var input dto.SubmitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	submission, err := h.service.Submit(c.Request.Context(), identity, assignmentID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"data": submission})
}

func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("submission_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid submission id"})
		return
	}

	submission, err := h.service.GetSubmission(c.Request.Context(), identity, id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": submission})
}

func (h *SubmissionHandler) ListByAssignment(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	assignmentID, err := uuid.Parse(c.Param("assignment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assignment id"})
		return
	}

	submissions, err := h.service.ListByAssignment(c.Request.Context(), identity, assignmentID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": submissions})
}

func (h *SubmissionHandler) ListMine(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	submissions, err := h.service.ListMine(c.Request.Context(), identity)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": submissions})
}
