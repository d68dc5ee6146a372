package server

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/ameliazsabrina/journalshe-sub000/internal/config"
	"github.com/ameliazsabrina/journalshe-sub000/internal/handler"
	"github.com/ameliazsabrina/journalshe-sub000/internal/middleware"
	"github.com/ameliazsabrina/journalshe-sub000/internal/repository"
	"github.com/ameliazsabrina/journalshe-sub000/internal/scoring"
	"github.com/ameliazsabrina/journalshe-sub000/internal/service"
	"github.com/ameliazsabrina/journalshe-sub000/pkg/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, scorer scoring.Scorer) *Server {
	userRepo := repository.NewUserRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	classRepo := repository.NewClassRepository(db)
	streakRepo := repository.NewStreakRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	imageStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		log.Fatalf("failed to initialize cloudinary storage: %v", err)
	}

	meiliClient := meilisearch.New(cfg.MeiliSearchHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	searchSvc := service.NewSearchService(meiliClient)

	authSvc := service.NewAuthService(userRepo, studentRepo, classRepo, cfg.JWTSecret, cfg.JWTTTL)
	streakSvc := service.NewStreakService(studentRepo, streakRepo, ledgerRepo)
	authHandler := handler.NewAuthHandler(authSvc, streakSvc)

	adminSvc := service.NewAdminService(userRepo, classRepo)
	adminHandler := handler.NewAdminHandler(adminSvc)

	leaderboardSvc := service.NewLeaderboardService(ledgerRepo, studentRepo)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardSvc)

	assignmentSvc := service.NewAssignmentService(assignmentRepo, classRepo, studentRepo, searchSvc)
	assignmentHandler := handler.NewAssignmentHandler(assignmentSvc)

	notificationSvc := service.NewNotificationService(notificationRepo, redisClient)
	notificationHandler := handler.NewNotificationHandler(notificationSvc, redisClient)

	submissionSvc := service.NewSubmissionService(
		assignmentRepo,
		studentRepo,
		ledgerRepo,
		notificationSvc,
		scorer,
		redisClient,
		cfg.RateLimitSubmission,
		cfg.GradingQueueSize,
	)
	submissionHandler := handler.NewSubmissionHandler(submissionSvc)

	go submissionSvc.StartGradingWorker(context.Background())

	profileSvc := service.NewProfileService(userRepo, imageStorage)
	profileHandler := handler.NewProfileHandler(profileSvc)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(userRepo, cfg.JWTSecret)

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/register", authHandler.Register)
	}

	// Protected routes (apply auth middleware explicitly)
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		// Admin routes
		adminGroup := protected.Group("/admin")
		adminGroup.Use(authMiddleware.RequireAdmin())
		{
			adminGroup.POST("/schools", adminHandler.CreateSchool)
			adminGroup.GET("/schools", adminHandler.ListSchools)
			adminGroup.POST("/classes", adminHandler.CreateClass)
			adminGroup.GET("/schools/:school_id/classes", adminHandler.ListClasses)
			adminGroup.POST("/teachers", adminHandler.CreateTeacher)
			adminGroup.GET("/users", adminHandler.ListUsers)
		}

		// Assignment routes
		protected.POST("/assignments", assignmentHandler.CreateAssignment)
		protected.GET("/assignments/search", assignmentHandler.SearchAssignments)
		protected.PUT("/assignments/:assignment_id", assignmentHandler.UpdateAssignment)
		protected.DELETE("/assignments/:assignment_id", assignmentHandler.DeleteAssignment)
		protected.GET("/classes/:class_id/assignments", assignmentHandler.ListByClass)

		// Submission routes
		protected.POST("/assignments/:assignment_id/submissions", submissionHandler.Submit)
		protected.GET("/assignments/:assignment_id/submissions", submissionHandler.ListByAssignment)
		protected.GET("/submissions/me", submissionHandler.ListMine)
		protected.GET("/submissions/:submission_id", submissionHandler.GetSubmission)

		// Leaderboard routes
		protected.GET("/classes/:class_id/leaderboard", leaderboardHandler.GetClassLeaderboard)
		protected.GET("/classes/:class_id/leaderboard/combined", leaderboardHandler.GetCombinedLeaderboard)
		protected.GET("/me/ranking", leaderboardHandler.GetMyRanking)

		// Notification routes
		protected.GET("/notifications", notificationHandler.GetNotifications)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
		protected.GET("/notifications/ws", notificationHandler.HandleWebSocket)

		// Profile routes
		protected.GET("/profile/me", profileHandler.GetProfile)
		protected.POST("/profile/avatar", profileHandler.UploadAvatar)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
