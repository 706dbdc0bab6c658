package config

import (
	"errors"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yoockh/jobmate/internal/models"
)

var PostgresDB *gorm.DB

func InitPostgres(uri string) error {
	if uri == "" {
		return errors.New("POSTGRES_URI is not set")
	}
	db, err := gorm.Open(postgres.Open(uri), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	PostgresDB = db
	return nil
}

// AutoMigrate creates the relational tables and their unique constraints.
func AutoMigrate(db *gorm.DB) error {
	if db == nil {
		return errors.New("PostgresDB is nil; call InitPostgres() first")
	}
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return err
	}
	return db.AutoMigrate(
		&models.Profile{},
		&models.Job{},
		&models.SavedJob{},
		&models.SavedCV{},
		&models.GeneratedCV{},
		&models.CVFile{},
		&models.OCRResult{},
		&models.CoverLetter{},
		&models.LearningResource{},
		&models.WhatsAppAlertPreference{},
		&models.Notification{},
	)
}
