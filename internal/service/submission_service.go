package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ameliazsabrina/journalshe-sub000/internal/dto"
	"github.com/ameliazsabrina/journalshe-sub000/internal/model"
	"github.com/ameliazsabrina/journalshe-sub000/internal/repository"
	"github.com/ameliazsabrina/journalshe-sub000/internal/scoring"
	"github.com/ameliazsabrina/journalshe-sub000/pkg/apperror"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	ActionSubmit     = "submit_assignment"
	ReasonAssignment = "assignment"
)

type SubmissionService interface {
	// Submit accepts the submission immediately with status pending; the
	// grading worker fills in score and feedback later.
	Submit(ctx context.Context, identity Identity, assignmentID uuid.UUID, input dto.SubmitInput) (*model.Submission, error)
	GetSubmission(ctx context.Context, identity Identity, id uuid.UUID) (*model.Submission, error)
	ListByAssignment(ctx context.Context, identity Identity, assignmentID uuid.UUID) ([]model.Submission, error)
	ListMine(ctx context.Context, identity Identity) ([]model.Submission, error)
	// StartGradingWorker consumes the grading queue until ctx is cancelled.
	StartGradingWorker(ctx context.Context)
}

type gradingJob struct {
	submissionID uuid.UUID
}

type submissionService struct {
	assignments   repository.AssignmentRepository
	students      repository.StudentRepository
	ledger        repository.LedgerRepository
	notifications NotificationService
	scorer        scoring.Scorer
	redisClient   *redis.Client
	sanitizer     *bluemonday.Policy
	rateLimit     time.Duration
	queue         chan gradingJob
}

func NewSubmissionService(
	assignments repository.AssignmentRepository,
	students repository.StudentRepository,
	ledger repository.LedgerRepository,
	notifications NotificationService,
	scorer scoring.Scorer,
	redisClient *redis.Client,
	rateLimit time.Duration,
	queueSize int,
) SubmissionService {
	return &submissionService{
		assignments:   assignments,
		students:      students,
		ledger:        ledger,
		notifications: notifications,
		scorer:        scorer,
		redisClient:   redisClient,
		sanitizer:     bluemonday.UGCPolicy(),
		rateLimit:     rateLimit,
		queue:         make(chan gradingJob, queueSize),
	}
}

func (s *submissionService) Submit(ctx context.Context, identity Identity, assignmentID uuid.UUID, input dto.SubmitInput) (*model.Submission, error) {
	student, err := s.students.FindByUserID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	assignment, err := s.assignments.FindByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	if assignment.ClassID != student.ClassID {
		return nil, apperror.ErrForbidden
	}

	allowed, err := CheckAndSetRateLimit(ctx, s.redisClient, identity.UserID, ActionSubmit, s.rateLimit)
	if err != nil {
		log.Printf("rate limit check failed for user %s: %v", identity.UserID, err)
	} else if !allowed {
		return nil, apperror.ErrRateLimitExceeded
	}

	submission := &model.Submission{
		AssignmentID: assignmentID,
		StudentID:    student.ID,
		Content:      s.sanitizer.Sanitize(input.Content),
		Status:       model.SubmissionPending,
	}
	if err := s.assignments.CreateSubmission(ctx, submission); err != nil {
		// Nothing was stored, so release the lock instead of making the
		// student wait out the window.
		if clearErr := ClearRateLimit(ctx, s.redisClient, identity.UserID, ActionSubmit); clearErr != nil {
			log.Printf("failed to clear rate limit for user %s: %v", identity.UserID, clearErr)
		}
		return nil, err
	}

	select {
	case s.queue <- gradingJob{submissionID: submission.ID}:
	default:
		// The submission is durable either way; a stalled queue only delays
		// grading.
		log.Printf("grading queue full, submission %s left pending", submission.ID)
	}

	return submission, nil
}

func (s *submissionService) GetSubmission(ctx context.Context, identity Identity, id uuid.UUID) (*model.Submission, error) {
	submission, err := s.assignments.FindSubmissionByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	switch identity.Role {
	case RoleTeacher, RoleAdmin:
		return submission, nil
	case RoleStudent:
		student, err := s.students.FindByUserID(ctx, identity.UserID)
		if err != nil {
			return nil, apperror.ErrForbidden
		}
		if student.ID != submission.StudentID {
			return nil, apperror.ErrForbidden
		}
		return submission, nil
	}
	return nil, apperror.ErrForbidden
}

func (s *submissionService) ListByAssignment(ctx context.Context, identity Identity, assignmentID uuid.UUID) ([]model.Submission, error) {
	if identity.Role != RoleTeacher && identity.Role != RoleAdmin {
		return nil, apperror.ErrForbidden
	}
	return s.assignments.ListSubmissionsByAssignment(ctx, assignmentID)
}

func (s *submissionService) ListMine(ctx context.Context, identity Identity) ([]model.Submission, error) {
	student, err := s.students.FindByUserID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return s.assignments.ListSubmissionsByStudent(ctx, student.ID)
}

func (s *submissionService) StartGradingWorker(ctx context.Context) {
	log.Println("grading worker started")
	for {
		select {
		case <-ctx.Done():
			log.Println("grading worker stopped")
			return
		case job := <-s.queue:
			s.grade(ctx, job.submissionID)
		}
	}
}

func (s *submissionService) grade(ctx context.Context, submissionID uuid.UUID) {
	submission, err := s.assignments.FindSubmissionByID(ctx, submissionID)
	if err != nil {
		log.Printf("grading: failed to load submission %s: %v", submissionID, err)
		return
	}
	if submission.Status != model.SubmissionPending {
		return
	}

	assignment, err := s.assignments.FindByID(ctx, submission.AssignmentID)
	if err != nil {
		log.Printf("grading: failed to load assignment for submission %s: %v", submissionID, err)
		return
	}

	if s.scorer == nil {
		log.Printf("grading: no scorer configured, marking submission %s failed", submissionID)
		if err := s.assignments.UpdateSubmissionResult(ctx, submissionID, model.SubmissionFailed, nil, nil, nil); err != nil {
			log.Printf("grading: failed to mark submission %s failed: %v", submissionID, err)
		}
		return
	}

	result, err := s.scorer.Score(ctx, assignment.Title, assignment.Description, submission.Content, assignment.PointsPossible)
	if err != nil {
		log.Printf("grading: scorer failed for submission %s: %v", submissionID, err)
		if err := s.assignments.UpdateSubmissionResult(ctx, submissionID, model.SubmissionFailed, nil, nil, nil); err != nil {
			log.Printf("grading: failed to mark submission %s failed: %v", submissionID, err)
		}
		return
	}

	now := time.Now()
	if err := s.assignments.UpdateSubmissionResult(ctx, submissionID, model.SubmissionGraded, &result.Score, &result.Feedback, &now); err != nil {
		log.Printf("grading: failed to store result for submission %s: %v", submissionID, err)
		return
	}

	// The grade is durable; a failed grant never un-grades the submission.
	entry := &model.PointLedgerEntry{
		StudentID: submission.StudentID,
		ClassID:   assignment.ClassID,
		Points:    result.Score,
		Reason:    ReasonAssignment,
		Updated:   now,
	}
	if err := s.ledger.Create(ctx, entry); err != nil {
		log.Printf("grading: failed to grant points for submission %s: %v", submissionID, err)
	}

	s.notifyGraded(ctx, submission, assignment, result.Score)
}

func (s *submissionService) notifyGraded(ctx context.Context, submission *model.Submission, assignment *model.Assignment, score int) {
	if s.notifications == nil {
		return
	}

	student, err := s.students.FindByID(ctx, submission.StudentID)
	if err != nil {
		log.Printf("grading: failed to resolve student for notification: %v", err)
		return
	}

	notification := &model.Notification{
		UserID:     student.UserID,
		EntityID:   submission.ID,
		EntityType: "submission",
		Type:       "submission_graded",
		Message:    fmt.Sprintf("Your submission for %q was graded: %d/%d points", assignment.Title, score, assignment.PointsPossible),
	}
	if err := s.notifications.CreateNotification(ctx, notification); err != nil {
		log.Printf("grading: failed to notify student %s: %v", student.UserID, err)
	}
}
