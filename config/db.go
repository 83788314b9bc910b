package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sadeeshasathsara/nexa-sub000/domain"
	"github.com/sadeeshasathsara/nexa-sub000/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func GetDatabaseURL() string {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_SSLMODE"),
	)
	return dsn
}

func BootDB() (*gorm.DB, *string, error) {
	address := GetDatabaseURL()

	// Show SQL in development, stay quiet in production.
	var gormLogger logger.Interface
	if os.Getenv("APP_ENV") == "development" {
		gormLogger = logger.Default.LogMode(logger.Info)
	} else {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(postgres.Open(address), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		log.Fatal("❌ Failed to connect to ", utils.ColorText("Database: ", utils.Red), err)
		return nil, nil, err
	}

	// Setup connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(30 * time.Minute)

	err = db.AutoMigrate(
		&domain.User{},
		&domain.TutorProfile{},
		&domain.InstitutionProfile{},
		&domain.Course{},
		&domain.Lesson{},
		&domain.Quiz{},
		&domain.QuizQuestion{},
		&domain.Enrollment{},
		&domain.LessonProgress{},
		&domain.QuizAttempt{},
		&domain.Donation{},
	)
	if err != nil {
		log.Fatal("❌ Failed to ", utils.ColorText("auto-migrate database schemas", utils.Red), " error: ", err)
		return nil, nil, err
	}

	// Seed initial admin user
	var count int64
	db.Model(&domain.User{}).Where("role = ?", domain.RoleAdmin).Count(&count)
	if count == 0 {
		adminEmail := os.Getenv("ADMIN_EMAIL")
		adminPass := os.Getenv("ADMIN_PASSWORD")
		adminName := os.Getenv("ADMIN_NAME")

		if adminEmail != "" && adminPass != "" {
			hashed, _ := bcrypt.GenerateFromPassword([]byte(adminPass), bcrypt.DefaultCost)
			adminUser := domain.User{
				Name:     adminName,
				Email:    utils.NormalizeEmail(adminEmail),
				Password: string(hashed),
				Role:     domain.RoleAdmin,
				Status:   domain.StatusActive,
			}

			if err := db.Create(&adminUser).Error; err != nil {
				log.Fatalf("❌ Failed to seed admin user: %v", err)
			} else {
				log.Printf("✅ Seeded admin user: %s", adminEmail)
			}
		} else {
			log.Print("⚠️ Skipping admin seeding, missing ADMIN_EMAIL or ADMIN_PASSWORD in env")
		}
	}

	log.Print("✅ Connected to ", utils.ColorText("Database", utils.Green), " successfully")
	return db, &address, nil
}
