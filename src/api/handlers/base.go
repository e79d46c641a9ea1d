package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"salesboard/src/api/controllers"
	"salesboard/src/clients/salesapi"
	"salesboard/src/clients/seed"
	"salesboard/src/config"
	"salesboard/src/repositories"
	"salesboard/src/services"
	"salesboard/src/utils"
	redis_utils "salesboard/src/utils/redis"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Handler struct {
	TransactionsController controllers.TransactionsControllerI
	ReportsController      controllers.ReportsControllerI
	Logger                 *logrus.Logger
	RequestTimeout         time.Duration
	SeedTimeout            time.Duration
	redisHandler           *redis_utils.RedisHandler
}

func NewHandler(cfg *config.Config, db *gorm.DB, logger *logrus.Logger) (*Handler, error) {
	transactionRepo := repositories.NewTransactionRepository(db)
	seedRunRepo := repositories.NewSeedRunRepository(db)

	seedClient := seed.NewClient(cfg)
	salesClient := salesapi.NewClient(cfg.Service.SelfURL, cfg.Service.RequestTimeout)

	transactionService := services.NewTransactionService(transactionRepo)
	seedService := services.NewSeedService(transactionRepo, seedRunRepo, seedClient)
	reportService := services.NewReportService()

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
	} else {
		cache = utils.NewMemoryCache()
	}

	controller := controllers.NewController(transactionService, seedService, reportService, salesClient, cache, cfg.Cache.TTL)
	return &Handler{
		TransactionsController: controller,
		ReportsController:      controller,
		Logger:                 logger,
		RequestTimeout:         cfg.Service.RequestTimeout,
		SeedTimeout:            cfg.SeedRequestTimeout(),
		redisHandler:           redisHandler,
	}, nil
}

// Close releases the cache connection, if any.
func (h *Handler) Close() error {
	if h.redisHandler == nil {
		return nil
	}
	return h.redisHandler.Close()
}

func (h *Handler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return h.requestContextWithTimeout(r, h.RequestTimeout)
}

func (h *Handler) requestContextWithTimeout(r *http.Request, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	return utils.WithLogger(ctx, h.Logger), cancel
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

func Healthcheck(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		fmt.Fprintf(w, "Im alive!")
		return
	}
	w.WriteHeader(http.StatusMethodNotAllowed)
	fmt.Fprintf(w, "Method not available: %s", r.Method)
}
