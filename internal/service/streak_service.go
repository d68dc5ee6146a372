package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ameliazsabrina/journalshe-sub000/internal/model"
	"github.com/ameliazsabrina/journalshe-sub000/internal/repository"
	"github.com/ameliazsabrina/journalshe-sub000/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bonus tiers for daily logins, first match wins.
const (
	BonusLongStreak  = 50 // streak of 7 days or more
	BonusShortStreak = 20 // streak of 3 days or more
	BonusConsecutive = 10 // any consecutive day below that

	LongStreakDays  = 7
	ShortStreakDays = 3

	ReasonStreakBonus = "streak_bonus"
)

// StreakResult reports the outcome of recording one login.
type StreakResult struct {
	CurrentStreak int
	IsConsecutive bool
	BonusPoints   int
	LoginDate     time.Time
}

type StreakService interface {
	// RecordLogin registers today's login for the user. Calling it twice on
	// the same calendar day is a no-op that reports the current streak and
	// zero bonus points.
	RecordLogin(ctx context.Context, userID uuid.UUID) (*StreakResult, error)
}

type streakService struct {
	students repository.StudentRepository
	streaks  repository.StreakRepository
	ledger   repository.LedgerRepository
	now      func() time.Time
}

func NewStreakService(students repository.StudentRepository, streaks repository.StreakRepository, ledger repository.LedgerRepository) StreakService {
	return &streakService{
		students: students,
		streaks:  streaks,
		ledger:   ledger,
		now:      time.Now,
	}
}

func (s *streakService) RecordLogin(ctx context.Context, userID uuid.UUID) (*StreakResult, error) {
	student, err := s.students.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperror.ErrStoreUnavailable, err)
	}

	now := s.now()
	today := truncateToDay(now)
	yesterday := today.AddDate(0, 0, -1)

	// Idempotence check is authoritative: an existing row for today means
	// this login was already recorded and no points are re-granted.
	existing, err := s.streaks.FindByUserAndDate(ctx, userID, today)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrStoreUnavailable, err)
	}
	if existing != nil {
		return &StreakResult{
			CurrentStreak: student.StreakDays,
			IsConsecutive: existing.Consecutive,
			BonusPoints:   0,
			LoginDate:     today,
		}, nil
	}

	consecutive := false
	streakDays := 1
	if student.LastLogin != nil {
		lastDate := truncateToDay(*student.LastLogin)
		switch {
		case lastDate.Equal(yesterday):
			consecutive = true
			streakDays = student.StreakDays + 1
		case lastDate.Equal(today):
			// Counter already shows a login today even though no streak row
			// was found; treat it like the idempotent branch.
			return &StreakResult{
				CurrentStreak: student.StreakDays,
				LoginDate:     today,
			}, nil
		}
	}

	created, err := s.streaks.CreateEntry(ctx, &model.LoginStreak{
		UserID:      userID,
		LoginDate:   today,
		Consecutive: consecutive,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrStoreUnavailable, err)
	}
	if !created {
		// Lost a same-day race: the winning call owns the streak update and
		// the bonus grant.
		return &StreakResult{
			CurrentStreak: student.StreakDays,
			IsConsecutive: consecutive,
			LoginDate:     today,
		}, nil
	}

	if err := s.students.UpdateStreak(ctx, student.ID, streakDays, now); err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrStoreUnavailable, err)
	}

	// The streak state is durable at this point. A failed grant must not
	// fail the login recording, so it is logged and swallowed.
	bonus := bonusPoints(streakDays, consecutive)
	if bonus > 0 {
		entry := &model.PointLedgerEntry{
			StudentID: student.ID,
			ClassID:   student.ClassID,
			Points:    bonus,
			Reason:    ReasonStreakBonus,
			Updated:   now,
		}
		if err := s.ledger.Create(ctx, entry); err != nil {
			log.Printf("failed to grant streak bonus for student %s: %v", student.ID, err)
		}
	}

	return &StreakResult{
		CurrentStreak: streakDays,
		IsConsecutive: consecutive,
		BonusPoints:   bonus,
		LoginDate:     today,
	}, nil
}

func bonusPoints(streakDays int, consecutive bool) int {
	switch {
	case streakDays >= LongStreakDays:
		return BonusLongStreak
	case streakDays >= ShortStreakDays:
		return BonusShortStreak
	case consecutive:
		return BonusConsecutive
	}
	return 0
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
