package handler

import (
	"net/http"
	"strconv"

	"github.com/ameliazsabrina/journalshe-sub000/internal/dto"
	"github.com/ameliazsabrina/journalshe-sub000/internal/service"
	"github.com/ameliazsabrina/journalshe-sub000/pkg/response"
	"github.com/ameliazsabrina/journalshe-sub000/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AssignmentHandler struct {
	service service.AssignmentService
}

func NewAssignmentHandler(service service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{service: service}
}

func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.CreateAssignmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	assignment, err := h.service.Create(c.Request.Context(), identity, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": assignment})
}

func (h *AssignmentHandler) UpdateAssignment(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("assignment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assignment id"})
		return
	}

	var input dto.UpdateAssignmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	assignment, err := h.service.Update(c.Request.Context(), identity, id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": assignment})
}

func (h *AssignmentHandler) DeleteAssignment(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("assignment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assignment id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), identity, id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "assignment deleted"})
}

func (h *AssignmentHandler) ListByClass(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	classID, err := uuid.Parse(c.Param("class_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid class id"})
		return
	}

	assignments, err := h.service.ListByClass(c.Request.Context(), identity, classID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": assignments})
}

func (h *AssignmentHandler) SearchAssignments(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	query := c.Query("q")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}

	hits, err := h.service.Search(c.Request.Context(), identity, query, limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": hits})
}
