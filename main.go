package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salesboard/src/api"
	"salesboard/src/config"
	"salesboard/src/database"
	"salesboard/src/utils"
	aws_handler "salesboard/src/utils/aws"
	"salesboard/src/worker"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("./settings", os.Getenv("ENV"))
	if err != nil {
		logrus.WithError(err).Fatal("Error while loading config")
	}

	logger := utils.NewLogger(utils.ParseLevel(cfg.Logging.Level), cfg.Logging.ToFile, cfg.Logging.FilePath)

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
		logger.WithError(err).Fatal("Couldn't connect to database")
	}
	defer database.Close(db)

	if cfg.Databases.SQL.AutoMigrate {
		if err := database.Migrate(db, cfg.Databases.SQL.Driver, logger); err != nil {
			logger.WithError(err).Fatal("Couldn't apply migrations")
		}
	}

	if err := run(cfg, db, logger); err != nil {
		logger.WithError(err).Error("Error while running")
	}
}

func run(cfg *config.Config, db *gorm.DB, logger *logrus.Logger) error {
	var (
		httpServer *http.Server
		closer     io.Closer
	)
	if cfg.Service.Type == config.API {
		server, err := api.NewServer(cfg, db, logger)
		if err != nil {
			return err
		}
		httpServer, closer = api.NewHTTPServer(cfg, server), server
	} else {
		server, err := worker.NewServer(cfg, db, logger)
		if err != nil {
			return err
		}
		httpServer, closer = worker.NewHTTPServer(cfg, server), server
	}
	defer closer.Close()

	errC := make(chan error, 1)
	go func() {
		logger.WithFields(logrus.Fields{"port": cfg.Service.Port, "type": cfg.Service.Type}).Info("Starting server")

		// ListenAndServe always returns a non-nil error; ErrServerClosed after Shutdown.
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
		close(errC)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errC:
		return err
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
