package handler

import (
	"log"
	"net/http"

	"github.com/ameliazsabrina/journalshe-sub000/internal/dto"
	"github.com/ameliazsabrina/journalshe-sub000/internal/service"
	"github.com/ameliazsabrina/journalshe-sub000/pkg/response"
	"github.com/ameliazsabrina/journalshe-sub000/pkg/validator"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService   service.AuthService
	streakService service.StreakService
}

func NewAuthHandler(authService service.AuthService, streakService service.StreakService) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		streakService: streakService,
	}
}

// Login authenticates and records the daily login. Streak recording is
// idempotent, so client retries never double-grant bonus points.
func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	auth, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{"data": auth}

	if auth.Role == service.RoleStudent {
		streak, err := h.streakService.RecordLogin(c.Request.Context(), auth.UserID)
		if err != nil {
			// Token issuance already succeeded; report it without the streak.
			log.Printf("failed to record login streak for user %s: %v", auth.UserID, err)
		} else {
			resp["streak"] = dto.StreakResponse{
				CurrentStreak: streak.CurrentStreak,
				IsConsecutive: streak.IsConsecutive,
				BonusPoints:   streak.BonusPoints,
				LoginDate:     streak.LoginDate,
			}
		}
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input dto.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	auth, err := h.authService.Register(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": auth})
}
