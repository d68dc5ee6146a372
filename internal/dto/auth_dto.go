package dto

import (
	"time"

	"github.com/google/uuid"
)

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterInput struct {
	Username string    `json:"username" binding:"required,min=3,max=50"`
	Email    string    `json:"email" binding:"required,email"`
	Password string    `json:"password" binding:"required,min=8"`
	FullName string    `json:"full_name" binding:"required"`
	ClassID  uuid.UUID `json:"class_id" binding:"required"`
}

type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
}

// StreakResponse is the login-recording result returned alongside the token.
type StreakResponse struct {
	CurrentStreak int       `json:"current_streak"`
	IsConsecutive bool      `json:"is_consecutive"`
	BonusPoints   int       `json:"bonus_points"`
	LoginDate     time.Time `json:"login_date"`
}
