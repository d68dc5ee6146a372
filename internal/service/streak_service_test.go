package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ameliazsabrina/journalshe-sub000/internal/model"
	"github.com/ameliazsabrina/journalshe-sub000/internal/repository"
	"github.com/ameliazsabrina/journalshe-sub000/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.School{},
		&model.Class{},
		&model.Student{},
		&model.LoginStreak{},
		&model.PointLedgerEntry{},
	))

	return db
}

func createTestStudent(t *testing.T, db *gorm.DB, classID uuid.UUID, username string) *model.Student {
	t.Helper()

	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		FullName:     username,
	}
	require.NoError(t, db.Create(user).Error)

	student := &model.Student{
		UserID:  user.ID,
		ClassID: classID,
	}
	require.NoError(t, db.Create(student).Error)

	return student
}

type streakFixture struct {
	db      *gorm.DB
	service *streakService
	student *model.Student
}

func newStreakFixture(t *testing.T, now time.Time) *streakFixture {
	t.Helper()

	db := setupTestDB(t)
	student := createTestStudent(t, db, uuid.New(), "alice")

	svc := &streakService{
		students: repository.NewStudentRepository(db),
		streaks:  repository.NewStreakRepository(db),
		ledger:   repository.NewLedgerRepository(db),
		now:      func() time.Time { return now },
	}

	return &streakFixture{db: db, service: svc, student: student}
}

func (f *streakFixture) setLastLogin(t *testing.T, lastLogin time.Time, streakDays int) {
	t.Helper()
	require.NoError(t, f.db.Model(&model.Student{}).
		Where("id = ?", f.student.ID).
		Updates(map[string]interface{}{"streak_days": streakDays, "last_login": lastLogin}).Error)
}

func (f *streakFixture) ledgerEntries(t *testing.T) []model.PointLedgerEntry {
	t.Helper()
	var entries []model.PointLedgerEntry
	require.NoError(t, f.db.Find(&entries).Error)
	return entries
}

func TestRecordLoginFirstEver(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	f := newStreakFixture(t, now)

	result, err := f.service.RecordLogin(context.Background(), f.student.UserID)
	require.NoError(t, err)

	assert.Equal(t, 1, result.CurrentStreak)
	assert.False(t, result.IsConsecutive)
	assert.Equal(t, 0, result.BonusPoints)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), result.LoginDate)

	var student model.Student
	require.NoError(t, f.db.First(&student, "id = ?", f.student.ID).Error)
	assert.Equal(t, 1, student.StreakDays)
	require.NotNil(t, student.LastLogin)

	assert.Empty(t, f.ledgerEntries(t))
}

func TestRecordLoginSameDayIsIdempotent(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	f := newStreakFixture(t, now)

	first, err := f.service.RecordLogin(context.Background(), f.student.UserID)
	require.NoError(t, err)
	require.Equal(t, 1, first.CurrentStreak)

	second, err := f.service.RecordLogin(context.Background(), f.student.UserID)
	require.NoError(t, err)
	assert.Equal(t, 1, second.CurrentStreak)
	assert.Equal(t, 0, second.BonusPoints)

	var count int64
	require.NoError(t, f.db.Model(&model.LoginStreak{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRecordLoginConsecutiveDay(t *testing.T) {
	now := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	f := newStreakFixture(t, now)
	f.setLastLogin(t, now.AddDate(0, 0, -1), 1)

	result, err := f.service.RecordLogin(context.Background(), f.student.UserID)
	require.NoError(t, err)

	assert.Equal(t, 2, result.CurrentStreak)
	assert.True(t, result.IsConsecutive)
	assert.Equal(t, BonusConsecutive, result.BonusPoints)

	entries := f.ledgerEntries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, BonusConsecutive, entries[0].Points)
	assert.Equal(t, ReasonStreakBonus, entries[0].Reason)
	assert.Equal(t, f.student.ID, entries[0].StudentID)
}

func TestRecordLoginGapResetsStreak(t *testing.T) {
	now := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	f := newStreakFixture(t, now)
	f.setLastLogin(t, now.AddDate(0, 0, -3), 5)

	result, err := f.service.RecordLogin(context.Background(), f.student.UserID)
	require.NoError(t, err)

	assert.Equal(t, 1, result.CurrentStreak)
	assert.False(t, result.IsConsecutive)
	assert.Equal(t, 0, result.BonusPoints)

	var student model.Student
	require.NoError(t, f.db.First(&student, "id = ?", f.student.ID).Error)
	assert.Equal(t, 1, student.StreakDays)

	assert.Empty(t, f.ledgerEntries(t))
}

func TestRecordLoginBonusTiers(t *testing.T) {
	now := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		priorStreak  int
		expectStreak int
		expectBonus  int
	}{
		{"reaches short tier", 2, 3, BonusShortStreak},
		{"inside short tier", 5, 6, BonusShortStreak},
		{"reaches long tier", 6, 7, BonusLongStreak},
		{"beyond long tier", 20, 21, BonusLongStreak},
		{"below short tier", 1, 2, BonusConsecutive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newStreakFixture(t, now)
			f.setLastLogin(t, now.AddDate(0, 0, -1), tt.priorStreak)

			result, err := f.service.RecordLogin(context.Background(), f.student.UserID)
			require.NoError(t, err)

			assert.Equal(t, tt.expectStreak, result.CurrentStreak)
			assert.Equal(t, tt.expectBonus, result.BonusPoints)
		})
	}
}

func TestRecordLoginUnknownUser(t *testing.T) {
	f := newStreakFixture(t, time.Now())

	_, err := f.service.RecordLogin(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

type failingLedger struct{}

func (failingLedger) Create(ctx context.Context, entry *model.PointLedgerEntry) error {
	return errors.New("ledger down")
}

func (failingLedger) ListByClassSince(ctx context.Context, classID uuid.UUID, since time.Time) ([]model.PointLedgerEntry, error) {
	return nil, errors.New("ledger down")
}

func TestRecordLoginBonusGrantFailureIsSwallowed(t *testing.T) {
	now := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	f := newStreakFixture(t, now)
	f.setLastLogin(t, now.AddDate(0, 0, -1), 2)
	f.service.ledger = failingLedger{}

	result, err := f.service.RecordLogin(context.Background(), f.student.UserID)
	require.NoError(t, err)

	// The streak update is durable even though the grant failed.
	assert.Equal(t, 3, result.CurrentStreak)

	var student model.Student
	require.NoError(t, f.db.First(&student, "id = ?", f.student.ID).Error)
	assert.Equal(t, 3, student.StreakDays)
}

func TestTruncateToDay(t *testing.T) {
	in := time.Date(2026, 3, 15, 23, 59, 59, 123, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), truncateToDay(in))
}
