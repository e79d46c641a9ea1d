package dbtest

import (
	"testing"

	"salesboard/src/config"
	"salesboard/src/database"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// New opens a private in-memory SQLite database with every migration applied.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	cfg := config.SQLConfig{
		Driver:   config.DriverSQLite,
		Database: "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}
	db, err := database.SetupDB(cfg, logger)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := database.Migrate(db, cfg.Driver, logger); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
