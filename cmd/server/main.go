package main

import (
	"context"
	"log"

	"github.com/ameliazsabrina/journalshe-sub000/internal/config"
	"github.com/ameliazsabrina/journalshe-sub000/internal/model"
	"github.com/ameliazsabrina/journalshe-sub000/internal/scoring"
	"github.com/ameliazsabrina/journalshe-sub000/internal/server"
	"github.com/ameliazsabrina/journalshe-sub000/internal/service"
	"github.com/ameliazsabrina/journalshe-sub000/pkg/database"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := seedRoles(db); err != nil {
		log.Fatalf("failed to seed roles: %v", err)
	}

	if cfg.AppEnv == "development" {
		if err := seedAdminUser(db); err != nil {
			log.Fatalf("failed to seed admin user: %v", err)
		}
	}

	redisClient := connectRedis(cfg.RedisURL)

	var scorer scoring.Scorer
	geminiScorer, err := scoring.NewGeminiScorer(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Printf("gemini scorer unavailable, submissions will not be graded: %v", err)
	} else {
		scorer = geminiScorer
		defer geminiScorer.Close()
	}

	srv := server.NewServer(cfg, db, redisClient, scorer)

	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func connectRedis(url string) *redis.Client {
	if url == "" {
		log.Println("REDIS_URL not set, rate limiting and live notifications disabled")
		return nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("invalid REDIS_URL, continuing without redis: %v", err)
		return nil
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis unreachable, continuing without redis: %v", err)
		return nil
	}

	return client
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.School{},
		&model.Class{},
		&model.Teacher{},
		&model.Student{},
		&model.LoginStreak{},
		&model.PointLedgerEntry{},
		&model.Assignment{},
		&model.Submission{},
		&model.Notification{},
	)
}

func seedRoles(db *gorm.DB) error {
	defaultRoles := []model.Role{
		{Name: service.RoleAdmin, Description: "Platform administrator"},
		{Name: service.RoleTeacher, Description: "Class teacher"},
		{Name: service.RoleStudent, Description: "Student"},
	}

	for _, role := range defaultRoles {
		var count int64
		if err := db.Model(&model.Role{}).
			Where("name = ?", role.Name).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&role).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func seedAdminUser(db *gorm.DB) error {
	var adminRole model.Role
	if err := db.Where("name = ?", service.RoleAdmin).First(&adminRole).Error; err != nil {
		return err
	}

	var count int64
	if err := db.Model(&model.User{}).
		Where("email = ?", "admin@journalshe.local").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	adminUser := model.User{
		Username:     "admin",
		Email:        "admin@journalshe.local",
		PasswordHash: string(hashedPasswordBytes),
		FullName:     "Administrator",
		RoleID:       &adminRole.ID,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	log.Println("Admin user seeded: admin@journalshe.local / admin123")

	return nil
}
