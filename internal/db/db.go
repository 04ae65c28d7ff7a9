package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/perfectlysalon/admin-api/internal/config"
	"github.com/perfectlysalon/admin-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Account{},
		&models.ServiceCategory{},
		&models.Service{},
		&models.ServiceAddon{},
		&models.InventoryItem{},
		&models.Appointment{},
		&models.ProductUsage{},
		&models.Notification{},
		&models.VerificationCode{},
		&models.Announcement{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}
