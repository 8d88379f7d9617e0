package database

import (
	"fmt"
	"os"

	"github.com/telewave/vpnbot/app/models"
	"github.com/telewave/vpnbot/internal/pkg/env"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// SetupDatabase opens the bot database and migrates the tables owned by
// this process. The promocodes table is shared with the activation flow,
// so its shape must stay backward compatible.
func SetupDatabase() {
	path := env.GetEnv("BOT_DB_PATH", "app/data/bot_database.sqlite3")

	var err error
	DB, err = OpenSQLite(path)
	if err != nil {
		panic(err)
	}

	DB.AutoMigrate(
		&models.Transaction{},
		&models.Promocode{},
		&models.Subscription{},
	)
}

func GetDB() *gorm.DB {
	return DB
}

// OpenSQLite opens an existing SQLite database file. The file must already
// exist: both stores this repo touches are created by other processes, and
// silently creating an empty one would hide a misconfigured path.
func OpenSQLite(path string) (*gorm.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("database file not found: %s", path)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %s: %w", path, err)
	}
	return db, nil
}
