package handler

import (
	"net/http"

	"github.com/ameliazsabrina/journalshe-sub000/internal/service"
	"github.com/ameliazsabrina/journalshe-sub000/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LeaderboardHandler struct {
	service service.LeaderboardService
}

func NewLeaderboardHandler(service service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

func (h *LeaderboardHandler) GetClassLeaderboard(c *gin.Context) {
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

	period := c.DefaultQuery("period", service.PeriodAll)

	rows, err := h.service.GetClassLeaderboard(c.Request.Context(), classID, period, identity)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rows})
}

func (h *LeaderboardHandler) GetCombinedLeaderboard(c *gin.Context) {
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

	period := c.DefaultQuery("period", service.PeriodAll)

	rows, err := h.service.GetCombinedLeaderboard(c.Request.Context(), classID, period, identity)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rows})
}

func (h *LeaderboardHandler) GetMyRanking(c *gin.Context) {
	identity, err := currentIdentity(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	period := c.DefaultQuery("period", service.PeriodAll)

	result, err := h.service.GetMyRanking(c.Request.Context(), identity, period)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	// "N/A" is the documented sentinel for no activity in the period.
	var rank any = "N/A"
	if result.Rank != nil {
		rank = *result.Rank
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"rank":           rank,
		"points":         result.Points,
		"total_students": result.TotalStudents,
		"updated":        result.Updated,
	}})
}
