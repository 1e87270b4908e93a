package database

import (
	"fmt"
	"time"

	"poolservice_backend/internal/config"
	"poolservice_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormConfig is shared by the postgres connection and the sqlite test database.
func GormConfig(env string) *gorm.Config {
	level := gormlogger.Warn
	switch env {
	case "production":
		level = gormlogger.Error
	case "test":
		level = gormlogger.Silent
	}

	return &gorm.Config{
		Logger:         gormlogger.Default.LogMode(level),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Connect opens the postgres pool described by cfg and pings it.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), GormConfig(cfg.Server.Env))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get *sql.DB from GORM: %w", err)
	}
	if cfg.Database.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	}
	if cfg.Database.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database unavailable: %w", err)
	}
	return db, nil
}

// Models lists every persisted model in dependency order.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.ClientCategory{},
		&models.Client{},
		&models.ServiceRequest{},
		&models.Task{},
		&models.AssignedTask{},
		&models.JobApplicant{},
		&models.Message{},
		&models.Visitor{},
		&models.EmailBlast{},
		&models.About{},
		&models.CompanyInfo{},
		&models.SocialNetwork{},
		&models.Gallery{},
		&models.Popup{},
	}
}

// AutoMigrate creates the schema for local development and tests.
// Production schema changes are managed outside this service.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
