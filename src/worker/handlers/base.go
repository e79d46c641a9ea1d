package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"salesboard/src/clients/seed"
	"salesboard/src/config"
	"salesboard/src/repositories"
	"salesboard/src/services"
	"salesboard/src/utils"
	redis_utils "salesboard/src/utils/redis"
	"salesboard/src/worker/controllers"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Handler struct {
	Controller     *controllers.Controller
	Logger         *logrus.Logger
	RequestTimeout time.Duration
	redisHandler   *redis_utils.RedisHandler
}

// NewHandler wires the worker. The API's Redis cache is invalidated after a
// reseed when Redis is enabled; an in-process cache lives in the API process
// and expires on its own TTL.
func NewHandler(cfg *config.Config, db *gorm.DB, logger *logrus.Logger) (*Handler, error) {
	seedService := services.NewSeedService(
		repositories.NewTransactionRepository(db),
		repositories.NewSeedRunRepository(db),
		seed.NewClient(cfg),
	)

	var (
		cache        utils.ResponseCache
		redisHandler *redis_utils.RedisHandler
	)
	if cfg.Databases.Redis.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		var err error
		redisHandler, err = redis_utils.NewRedisHandler(ctx, cfg)
		if err != nil {
			return nil, err
		}
		cache = redisHandler
	}

	controller := controllers.NewController(seedService, cache, logger)
	if cfg.Scheduler.ReseedCron != "" {
		if err := controller.ScheduleReseed(cfg.Scheduler.ReseedCron); err != nil {
			return nil, err
		}
		logger.WithField("cron", cfg.Scheduler.ReseedCron).Info("reseed scheduled")
	}

	return &Handler{
		Controller:     controller,
		Logger:         logger,
		RequestTimeout: cfg.SeedRequestTimeout(),
		redisHandler:   redisHandler,
	}, nil
}

// Close stops the scheduled tasks and releases the cache connection.
func (h *Handler) Close() error {
	h.Controller.StopSchedulers()
	if h.redisHandler == nil {
		return nil
	}
	return h.redisHandler.Close()
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	var httpErr *utils.HTTPError
	if errors.Is(err, context.DeadlineExceeded) {
		h.respond(w, nil, map[string]string{"error": "Request timed out"}, http.StatusGatewayTimeout)
	} else if errors.As(err, &httpErr) {
		h.respond(w, nil, map[string]string{"error": httpErr.Message}, httpErr.Code)
	} else if err != nil {
		h.Logger.WithError(err).Error("request failed")
		h.respond(w, nil, map[string]string{"error": err.Error()}, http.StatusInternalServerError)
	} else {
		h.respond(w, nil, map[string]string{"error": "Unhandled error"}, http.StatusInternalServerError)
	}
}
