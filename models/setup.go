package models

import (
	"log/slog"

	slogGorm "github.com/orandin/slog-gorm"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/resumecraft/backend/config"
)

type Database struct {
	GormDB *gorm.DB
}

var DB *Database

func ConnectDatabase(cfg config.DatabaseConfig) error {
	gormLogger := slogGorm.New(
		slogGorm.WithHandler(slog.Default().Handler()),
		slogGorm.SetLogLevel(slogGorm.DefaultLogType, slog.LevelDebug),
	)

	database, err := gorm.Open(postgres.Open(cfg.URL), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		return err
	}

	if err := Migrate(database); err != nil {
		slog.Error("Failed to migrate database", "error", err)
		return err
	}

	DB = &Database{GormDB: database}
	return nil
}

// Migrate creates or updates the tables this service owns. The users table
// is shared with the identity provider's view of the world: one row per
// external identity, enforced by the unique index AutoMigrate creates.
func Migrate(database *gorm.DB) error {
	return database.AutoMigrate(&User{}, &Resume{}, &WorkExperience{}, &Education{})
}
