package db

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"ffc/aircraft-tracker/internal/config"
	gormModels "ffc/aircraft-tracker/internal/models/gorm"
)

// DB serves the raw sqlx read queries; ORM owns migrations and writes.
// Both handles point at the same database.
var (
	DB  *sqlx.DB
	ORM *gorm.DB
)

// Init opens the configured database with both sqlx and GORM and runs the
// schema migration.
func Init(cfg *config.Config) error {
	var (
		sqlxDriver string
		dsn        string
		dialector  gorm.Dialector
	)

	switch cfg.DBDriver {
	case "postgres":
		sqlxDriver = "postgres"
		dsn = cfg.PostgresDSN
		dialector = postgres.Open(dsn)
	case "sqlite":
		sqlxDriver = "sqlite3"
		dsn = cfg.SQLitePath
		dialector = sqlite.Open(dsn)
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	var err error
	for i := 0; i < 10; i++ {
		DB, err = sqlx.Connect(sqlxDriver, dsn)
		if err == nil {
			break
		}
		time.Sleep(500 * time.Millisecond)
	}
	if err != nil {
		return fmt.Errorf("failed to connect with sqlx: %w", err)
	}

	ORM, err = gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect with GORM: %w", err)
	}

	return Migrate(ORM)
}

// Migrate creates the schema if absent. Safe to call on every startup.
func Migrate(orm *gorm.DB) error {
	return orm.AutoMigrate(
		&gormModels.Aircraft{},
		&gormModels.FlightSession{},
		&gormModels.StatusHistory{},
	)
}

// Close releases both database handles
func Close() {
	if DB != nil {
		_ = DB.Close()
	}
	if ORM != nil {
		if sqlDB, err := ORM.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
