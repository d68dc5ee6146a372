package dto

import (
	"time"

	"github.com/google/uuid"
)

// LeaderboardRow is computed fresh from ledger entries on every query;
// nothing here is persisted.
type LeaderboardRow struct {
	StudentID   uuid.UUID `json:"student_id"`
	DisplayUser string    `json:"display_user"`
	Points      int       `json:"points"`
	Rank        int       `json:"rank"`
	LastUpdated time.Time `json:"last_updated"`
}

// CombinedLeaderboardRow merges period points with the live streak counter.
type CombinedLeaderboardRow struct {
	StudentID   uuid.UUID  `json:"student_id"`
	DisplayUser string     `json:"display_user"`
	Points      int        `json:"points"`
	StreakDays  int        `json:"streak_days"`
	TotalScore  int        `json:"total_score"`
	Rank        int        `json:"rank"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
}

// RankingResult answers "where do I rank". Rank is nil when the student has
// no ledger activity in the period; the HTTP layer renders that as "N/A".
type RankingResult struct {
	Rank          *int       `json:"rank"`
	Points        int        `json:"points"`
	TotalStudents int        `json:"total_students"`
	Updated       *time.Time `json:"updated,omitempty"`
}
