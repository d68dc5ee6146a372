package service

import (
	"context"
	"testing"
	"time"

	"github.com/ameliazsabrina/journalshe-sub000/internal/model"
	"github.com/ameliazsabrina/journalshe-sub000/internal/repository"
	"github.com/ameliazsabrina/journalshe-sub000/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type leaderboardFixture struct {
	db      *gorm.DB
	service *leaderboardService
	classID uuid.UUID
	now     time.Time
}

func newLeaderboardFixture(t *testing.T) *leaderboardFixture {
	t.Helper()

	db := setupTestDB(t)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	svc := &leaderboardService{
		ledger:   repository.NewLedgerRepository(db),
		students: repository.NewStudentRepository(db),
		now:      func() time.Time { return now },
	}

	return &leaderboardFixture{
		db:      db,
		service: svc,
		classID: uuid.New(),
		now:     now,
	}
}

func (f *leaderboardFixture) grant(t *testing.T, studentID uuid.UUID, points int, at time.Time) {
	t.Helper()
	require.NoError(t, f.db.Create(&model.PointLedgerEntry{
		StudentID: studentID,
		ClassID:   f.classID,
		Points:    points,
		Reason:    ReasonAssignment,
		Updated:   at,
	}).Error)
}

func (f *leaderboardFixture) teacher() Identity {
	return Identity{UserID: uuid.New(), Role: RoleTeacher}
}

func TestGetClassLeaderboardAggregatesGrants(t *testing.T) {
	f := newLeaderboardFixture(t)
	alice := createTestStudent(t, f.db, f.classID, "alice")
	bob := createTestStudent(t, f.db, f.classID, "bob")

	f.grant(t, alice.ID, 10, f.now.Add(-3*time.Hour))
	f.grant(t, bob.ID, 5, f.now.Add(-2*time.Hour))
	f.grant(t, alice.ID, 15, f.now.Add(-1*time.Hour))

	rows, err := f.service.GetClassLeaderboard(context.Background(), f.classID, PeriodAll, f.teacher())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, alice.ID, rows[0].StudentID)
	assert.Equal(t, 25, rows[0].Points)
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, "alice", rows[0].DisplayUser)
	assert.WithinDuration(t, f.now.Add(-1*time.Hour), rows[0].LastUpdated, time.Second)

	assert.Equal(t, bob.ID, rows[1].StudentID)
	assert.Equal(t, 5, rows[1].Points)
	assert.Equal(t, 2, rows[1].Rank)
}

func TestGetClassLeaderboardExcludesInactiveStudents(t *testing.T) {
	f := newLeaderboardFixture(t)
	alice := createTestStudent(t, f.db, f.classID, "alice")
	createTestStudent(t, f.db, f.classID, "idle")

	f.grant(t, alice.ID, 10, f.now)

	rows, err := f.service.GetClassLeaderboard(context.Background(), f.classID, PeriodAll, f.teacher())
	require.NoError(t, err)

	// Students without grants in the period do not appear at all.
	require.Len(t, rows, 1)
	assert.Equal(t, alice.ID, rows[0].StudentID)
}

func TestGetClassLeaderboardTiebreakByStudentID(t *testing.T) {
	f := newLeaderboardFixture(t)
	alice := createTestStudent(t, f.db, f.classID, "alice")
	bob := createTestStudent(t, f.db, f.classID, "bob")

	f.grant(t, alice.ID, 10, f.now)
	f.grant(t, bob.ID, 10, f.now)

	rows, err := f.service.GetClassLeaderboard(context.Background(), f.classID, PeriodAll, f.teacher())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first, second := rows[0].StudentID.String(), rows[1].StudentID.String()
	assert.Less(t, first, second)
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, 2, rows[1].Rank)
}

func TestGetClassLeaderboardPeriodFiltering(t *testing.T) {
	f := newLeaderboardFixture(t)
	alice := createTestStudent(t, f.db, f.classID, "alice")

	f.grant(t, alice.ID, 10, f.now.AddDate(0, 0, -30)) // outside the week
	f.grant(t, alice.ID, 7, f.now.AddDate(0, 0, -2))   // inside the week

	rows, err := f.service.GetClassLeaderboard(context.Background(), f.classID, PeriodWeek, f.teacher())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 7, rows[0].Points)

	rows, err = f.service.GetClassLeaderboard(context.Background(), f.classID, PeriodAll, f.teacher())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 17, rows[0].Points)
}

func TestGetCombinedLeaderboardIncludesWholeRoster(t *testing.T) {
	f := newLeaderboardFixture(t)
	alice := createTestStudent(t, f.db, f.classID, "alice")
	idle := createTestStudent(t, f.db, f.classID, "idle")

	require.NoError(t, f.db.Model(&model.Student{}).
		Where("id = ?", alice.ID).
		Update("streak_days", 4).Error)

	f.grant(t, alice.ID, 25, f.now)

	rows, err := f.service.GetCombinedLeaderboard(context.Background(), f.classID, PeriodAll, f.teacher())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, alice.ID, rows[0].StudentID)
	assert.Equal(t, 25, rows[0].Points)
	assert.Equal(t, 4, rows[0].StreakDays)
	assert.Equal(t, 25+4*StreakScoreWeight, rows[0].TotalScore)
	assert.Equal(t, 1, rows[0].Rank)

	// The zero-point student still holds a slot here.
	assert.Equal(t, idle.ID, rows[1].StudentID)
	assert.Equal(t, 0, rows[1].TotalScore)
	assert.Equal(t, 2, rows[1].Rank)
}

func TestGetCombinedLeaderboardStreakCanOutrankPoints(t *testing.T) {
	f := newLeaderboardFixture(t)
	grinder := createTestStudent(t, f.db, f.classID, "grinder")
	scorer := createTestStudent(t, f.db, f.classID, "scorer")

	require.NoError(t, f.db.Model(&model.Student{}).
		Where("id = ?", grinder.ID).
		Update("streak_days", 10).Error)

	f.grant(t, scorer.ID, 40, f.now)

	rows, err := f.service.GetCombinedLeaderboard(context.Background(), f.classID, PeriodAll, f.teacher())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// 10 streak days * 5 = 50 beats 40 raw points.
	assert.Equal(t, grinder.ID, rows[0].StudentID)
	assert.Equal(t, 50, rows[0].TotalScore)
	assert.Equal(t, scorer.ID, rows[1].StudentID)
}

func TestGetCombinedLeaderboardTiebreakByStudentID(t *testing.T) {
	f := newLeaderboardFixture(t)
	alice := createTestStudent(t, f.db, f.classID, "alice")
	bob := createTestStudent(t, f.db, f.classID, "bob")

	// Equal totals reached differently: 20 raw points vs 4 streak days * 5.
	f.grant(t, alice.ID, 20, f.now)
	require.NoError(t, f.db.Model(&model.Student{}).
		Where("id = ?", bob.ID).
		Update("streak_days", 4).Error)

	rows, err := f.service.GetCombinedLeaderboard(context.Background(), f.classID, PeriodAll, f.teacher())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 20, rows[0].TotalScore)
	assert.Equal(t, 20, rows[1].TotalScore)
	assert.Less(t, rows[0].StudentID.String(), rows[1].StudentID.String())
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, 2, rows[1].Rank)
}

func TestLeaderboardAuthorization(t *testing.T) {
	f := newLeaderboardFixture(t)
	alice := createTestStudent(t, f.db, f.classID, "alice")
	outsider := createTestStudent(t, f.db, uuid.New(), "outsider")

	ctx := context.Background()

	_, err := f.service.GetClassLeaderboard(ctx, f.classID, PeriodAll, Identity{UserID: alice.UserID, Role: RoleStudent})
	assert.NoError(t, err)

	_, err = f.service.GetClassLeaderboard(ctx, f.classID, PeriodAll, Identity{UserID: outsider.UserID, Role: RoleStudent})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = f.service.GetCombinedLeaderboard(ctx, f.classID, PeriodAll, Identity{UserID: outsider.UserID, Role: RoleStudent})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = f.service.GetClassLeaderboard(ctx, f.classID, PeriodAll, Identity{UserID: uuid.New(), Role: RoleAdmin})
	assert.NoError(t, err)
}

func TestGetMyRankingWithActivity(t *testing.T) {
	f := newLeaderboardFixture(t)
	alice := createTestStudent(t, f.db, f.classID, "alice")
	bob := createTestStudent(t, f.db, f.classID, "bob")

	f.grant(t, alice.ID, 10, f.now)
	f.grant(t, bob.ID, 30, f.now)

	result, err := f.service.GetMyRanking(context.Background(), Identity{UserID: alice.UserID, Role: RoleStudent}, PeriodAll)
	require.NoError(t, err)

	require.NotNil(t, result.Rank)
	assert.Equal(t, 2, *result.Rank)
	assert.Equal(t, 10, result.Points)
	assert.Equal(t, 2, result.TotalStudents)
	require.NotNil(t, result.Updated)
}

func TestGetMyRankingWithoutActivity(t *testing.T) {
	f := newLeaderboardFixture(t)
	alice := createTestStudent(t, f.db, f.classID, "alice")
	bob := createTestStudent(t, f.db, f.classID, "bob")

	f.grant(t, bob.ID, 30, f.now)

	result, err := f.service.GetMyRanking(context.Background(), Identity{UserID: alice.UserID, Role: RoleStudent}, PeriodAll)
	require.NoError(t, err)

	// No grants in the period: rank is absent, not zero or last.
	assert.Nil(t, result.Rank)
	assert.Equal(t, 0, result.Points)
	assert.Equal(t, 1, result.TotalStudents)
	assert.Nil(t, result.Updated)
}

func TestGetMyRankingUnknownStudent(t *testing.T) {
	f := newLeaderboardFixture(t)

	_, err := f.service.GetMyRanking(context.Background(), Identity{UserID: uuid.New(), Role: RoleStudent}, PeriodAll)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
