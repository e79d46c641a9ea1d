package database_test

import (
	"os"
	"path/filepath"
	"testing"

	"salesboard/src/config"
	"salesboard/src/database"
	"salesboard/src/database/dbtest"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	t.Run("connection string wins", func(t *testing.T) {
		dsn := database.DSN(config.SQLConfig{Driver: config.DriverPostgres, ConnectionString: "postgres://x"})
		assert.Equal(t, "postgres://x", dsn)
	})

	t.Run("postgres", func(t *testing.T) {
		dsn := database.DSN(config.SQLConfig{
			Driver: config.DriverPostgres, Host: "db", Port: "5432",
			Username: "sales", Password: "pw", Database: "salesboard",
		})
		assert.Equal(t, "host=db user=sales password=pw dbname=salesboard port=5432 sslmode=disable", dsn)
	})

	t.Run("mysql", func(t *testing.T) {
		dsn := database.DSN(config.SQLConfig{
			Driver: config.DriverMySQL, Host: "db", Port: "3306",
			Username: "sales", Password: "pw", Database: "salesboard",
		})
		assert.Equal(t, "sales:pw@tcp(db:3306)/salesboard?charset=utf8mb4&parseTime=True&loc=UTC", dsn)
	})

	t.Run("sqlite uses the database path", func(t *testing.T) {
		assert.Equal(t, "./data/x.db", database.DSN(config.SQLConfig{Driver: config.DriverSQLite, Database: "./data/x.db"}))
	})
}

func TestSetupDBRejectsUnknownDriver(t *testing.T) {
	_, err := database.SetupDB(config.SQLConfig{Driver: "oracle"}, logrus.New())
	assert.ErrorContains(t, err, "unsupported sql driver")
}

func TestMigrateCreatesTables(t *testing.T) {
	db := dbtest.New(t)

	assert.True(t, db.Migrator().HasTable("product_transactions"))
	assert.True(t, db.Migrator().HasTable("seed_runs"))

	// A second run has nothing left to apply.
	require.NoError(t, database.Migrate(db, config.DriverSQLite, logrus.New()))
}

func TestSetupDBCreatesSQLiteDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "salesboard.db")
	cfg := config.SQLConfig{Driver: config.DriverSQLite, Database: path}

	db, err := database.SetupDB(cfg, logrus.New())
	require.NoError(t, err)
	defer database.Close(db)

	require.NoError(t, database.Migrate(db, cfg.Driver, logrus.New()))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}
