package database

import (
	"log"
	"os"
	"path/filepath"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/qzlaw/office-backend/pkg/config"
)

// Init opens the database. DATABASE_URL selects Postgres; without it the
// server runs on an embedded SQLite file (WAL mode for concurrent reads).
func Init(cfg *config.Config) *gorm.DB {
	logLevel := logger.Warn
	if cfg.Environment != "production" {
		logLevel = logger.Info
	}
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	if cfg.DatabaseURL != "" {
		db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), gormCfg)
		if err != nil {
			log.Fatal("failed to connect database:", err)
		}
		log.Println("Database connection established (Postgres)")
		return db
	}

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatal("failed to create database directory:", err)
		}
	}
	db, err := gorm.Open(sqlite.Open(cfg.DBPath+"?_journal_mode=WAL"), gormCfg)
	if err != nil {
		log.Fatal("failed to connect database:", err)
	}
	log.Println("Database connection established (SQLite, WAL mode)")
	return db
}
