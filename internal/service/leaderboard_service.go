package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ameliazsabrina/journalshe-sub000/internal/dto"
	"github.com/ameliazsabrina/journalshe-sub000/internal/repository"
	"github.com/ameliazsabrina/journalshe-sub000/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StreakScoreWeight converts streak days into combined-leaderboard points:
// total = points + streakDays * StreakScoreWeight.
const StreakScoreWeight = 5

type LeaderboardService interface {
	GetClassLeaderboard(ctx context.Context, classID uuid.UUID, period string, identity Identity) ([]dto.LeaderboardRow, error)
	GetCombinedLeaderboard(ctx context.Context, classID uuid.UUID, period string, identity Identity) ([]dto.CombinedLeaderboardRow, error)
	GetMyRanking(ctx context.Context, identity Identity, period string) (*dto.RankingResult, error)
}

type leaderboardService struct {
	ledger   repository.LedgerRepository
	students repository.StudentRepository
	now      func() time.Time
}

func NewLeaderboardService(ledger repository.LedgerRepository, students repository.StudentRepository) LeaderboardService {
	return &leaderboardService{
		ledger:   ledger,
		students: students,
		now:      time.Now,
	}
}

// studentTotal accumulates one student's grants within the period.
type studentTotal struct {
	points      int
	lastUpdated time.Time
}

func (s *leaderboardService) GetClassLeaderboard(ctx context.Context, classID uuid.UUID, period string, identity Identity) ([]dto.LeaderboardRow, error) {
	if err := s.authorize(ctx, classID, identity); err != nil {
		return nil, err
	}
	return s.classLeaderboard(ctx, classID, period)
}

// classLeaderboard is the points-only aggregation: only students with
// ledger activity in the period appear. Students with no grants are absent
// rather than ranked last with zero.
func (s *leaderboardService) classLeaderboard(ctx context.Context, classID uuid.UUID, period string) ([]dto.LeaderboardRow, error) {
	since := periodStart(period, s.now())

	entries, err := s.ledger.ListByClassSince(ctx, classID, since)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrStoreUnavailable, err)
	}

	totals := make(map[uuid.UUID]*studentTotal)
	for _, e := range entries {
		t, ok := totals[e.StudentID]
		if !ok {
			t = &studentTotal{}
			totals[e.StudentID] = t
		}
		t.points += e.Points
		if e.Updated.After(t.lastUpdated) {
			t.lastUpdated = e.Updated
		}
	}

	names, err := s.displayNames(ctx, classID)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.LeaderboardRow, 0, len(totals))
	for id, t := range totals {
		rows = append(rows, dto.LeaderboardRow{
			StudentID:   id,
			DisplayUser: names[id],
			Points:      t.points,
			LastUpdated: t.lastUpdated,
		})
	}

	// Points descending; equal totals break by student ID ascending so the
	// ordering is deterministic across stores.
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		return strings.Compare(rows[i].StudentID.String(), rows[j].StudentID.String()) < 0
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}

	return rows, nil
}

// GetCombinedLeaderboard ranks the whole class roster: zero-point students
// are included, unlike the points-only view. This membership asymmetry is
// long-standing observable behavior and is kept.
func (s *leaderboardService) GetCombinedLeaderboard(ctx context.Context, classID uuid.UUID, period string, identity Identity) ([]dto.CombinedLeaderboardRow, error) {
	if err := s.authorize(ctx, classID, identity); err != nil {
		return nil, err
	}

	since := periodStart(period, s.now())

	roster, err := s.students.ListByClass(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrStoreUnavailable, err)
	}

	entries, err := s.ledger.ListByClassSince(ctx, classID, since)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrStoreUnavailable, err)
	}

	points := make(map[uuid.UUID]int)
	for _, e := range entries {
		points[e.StudentID] += e.Points
	}

	rows := make([]dto.CombinedLeaderboardRow, 0, len(roster))
	for _, st := range roster {
		p := points[st.ID]
		rows = append(rows, dto.CombinedLeaderboardRow{
			StudentID:   st.ID,
			DisplayUser: st.User.Username,
			Points:      p,
			StreakDays:  st.StreakDays,
			TotalScore:  p + st.StreakDays*StreakScoreWeight,
			LastLogin:   st.LastLogin,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalScore != rows[j].TotalScore {
			return rows[i].TotalScore > rows[j].TotalScore
		}
		return strings.Compare(rows[i].StudentID.String(), rows[j].StudentID.String()) < 0
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}

	return rows, nil
}

func (s *leaderboardService) GetMyRanking(ctx context.Context, identity Identity, period string) (*dto.RankingResult, error) {
	student, err := s.students.FindByUserID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperror.ErrStoreUnavailable, err)
	}

	rows, err := s.classLeaderboard(ctx, student.ClassID, period)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		if row.StudentID == student.ID {
			rank := row.Rank
			updated := row.LastUpdated
			return &dto.RankingResult{
				Rank:          &rank,
				Points:        row.Points,
				TotalStudents: len(rows),
				Updated:       &updated,
			}, nil
		}
	}

	// No ledger activity in the period: a distinct case, not an error. The
	// nil rank renders as "N/A" at the transport layer.
	return &dto.RankingResult{
		Rank:          nil,
		Points:        0,
		TotalStudents: len(rows),
	}, nil
}

// authorize admits teachers and admins to any class, students only to
// their own.
func (s *leaderboardService) authorize(ctx context.Context, classID uuid.UUID, identity Identity) error {
	switch identity.Role {
	case RoleTeacher, RoleAdmin:
		return nil
	case RoleStudent:
		student, err := s.students.FindByUserID(ctx, identity.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.ErrForbidden
			}
			return fmt.Errorf("%w: %v", apperror.ErrStoreUnavailable, err)
		}
		if student.ClassID != classID {
			return apperror.ErrForbidden
		}
		return nil
	}
	return apperror.ErrForbidden
}

// displayNames maps student IDs to usernames for the class roster.
func (s *leaderboardService) displayNames(ctx context.Context, classID uuid.UUID) (map[uuid.UUID]string, error) {
	roster, err := s.students.ListByClass(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrStoreUnavailable, err)
	}
	names := make(map[uuid.UUID]string, len(roster))
	for _, st := range roster {
		names[st.ID] = st.User.Username
	}
	return names, nil
}
