package main

import (
	"flag"
	"os"

	"salesboard/src/config"
	"salesboard/src/database"
	"salesboard/src/utils"
	aws_handler "salesboard/src/utils/aws"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Applies the embedded migrations of the configured SQL driver.
func main() {
	settings := flag.String("settings", "./settings", "directory holding appsettings.yaml")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*settings, os.Getenv("ENV"))
	if err != nil {
		logrus.WithError(err).Fatal("Error loading config")
	}
	logger := utils.NewLogger(utils.ParseLevel(cfg.Logging.Level), false, "")

	if cfg.Databases.SQL.PasswordSecretID != "" {
		awsHandler, err := aws_handler.NewAWSHandler(cfg.AWS.Region)
		if err != nil {
			logger.WithError(err).Fatal("Couldn't create AWS session")
		}
		if err := cfg.ApplySecrets(awsHandler.SecretManager); err != nil {
			logger.WithError(err).Fatal("Couldn't resolve secrets")
		}
	}

	db, err := database.SetupDB(cfg.Databases.SQL, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer database.Close(db)

	if err := database.Migrate(db, cfg.Databases.SQL.Driver, logger); err != nil {
		logger.WithError(err).Error("Failed to apply migrations")
		return
	}

	logger.Info("Database migration completed successfully")
}
