package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salesboard/src/clients/seed"
	"salesboard/src/models"
	"salesboard/src/repositories"
	"salesboard/src/schemas"
	"salesboard/src/utils"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

const (
	InitializedMessage = "Database initialized with seed data."
	ReseededMessage    = "Database reloaded with seed data."
	FetchFailedMessage = "Failed to fetch data from the third-party API."
)

type SeedServiceI interface {
	Initialize(ctx context.Context) (*schemas.MessageResponse, error)
	Reseed(ctx context.Context) (*schemas.MessageResponse, error)
	ListRuns(ctx context.Context, limit int) ([]schemas.SeedRun, error)
}

type SeedService struct {
	transactionRepository repositories.TransactionRepository
	seedRunRepository     repositories.SeedRunRepository
	seedClient            seed.SeedServiceClientI
	now                   func() time.Time
}

func NewSeedService(transactionRepository repositories.TransactionRepository, seedRunRepository repositories.SeedRunRepository, seedClient seed.SeedServiceClientI) *SeedService {
	return &SeedService{
		transactionRepository: transactionRepository,
		seedRunRepository:     seedRunRepository,
		seedClient:            seedClient,
		now:                   time.Now,
	}
}

// Initialize appends the seed dataset to the store. Calling it twice stores
// every record twice.
func (s *SeedService) Initialize(ctx context.Context) (*schemas.MessageResponse, error) {
	records, err := s.load(ctx, models.SeedModeAppend, s.transactionRepository.CreateBatch)
	if err != nil {
		return nil, err
	}
	return &schemas.MessageResponse{Message: InitializedMessage, Records: records}, nil
}

// Reseed replaces the stored transactions with a fresh copy of the dataset.
func (s *SeedService) Reseed(ctx context.Context) (*schemas.MessageResponse, error) {
	records, err := s.load(ctx, models.SeedModeReplace, s.transactionRepository.ReplaceAll)
	if err != nil {
		return nil, err
	}
	return &schemas.MessageResponse{Message: ReseededMessage, Records: records}, nil
}

func (s *SeedService) load(ctx context.Context, mode models.SeedMode, store func(context.Context, []models.ProductTransaction) error) (int, error) {
	logger := utils.LoggerFromContext(ctx)
	run := &models.SeedRun{
		RunID:     uuid.NewString(),
		Mode:      mode,
		StartedAt: s.now().UTC(),
	}

	records, err := s.fetchAndStore(ctx, store)
	run.FinishedAt = s.now().UTC()
	run.Records = records
	if err != nil {
		run.Status = models.SeedStatusFailed
		run.Error = err.Error()
	} else {
		run.Status = models.SeedStatusSucceeded
	}

	// The run is recorded even when the request context is already done.
	if recordErr := s.seedRunRepository.Create(context.WithoutCancel(ctx), run); recordErr != nil {
		logger.WithError(recordErr).WithField("run_id", run.RunID).Warn("could not record seed run")
	}

	entry := logger.WithFields(logrus.Fields{
		"run_id":  run.RunID,
		"mode":    run.Mode,
		"records": records,
	})
	if err != nil {
		entry.WithError(err).Error("seeding failed")
		if errors.Is(err, seed.ErrFetchFailed) {
			return 0, utils.InternalServerError(FetchFailedMessage)
		}
		return 0, err
	}
	entry.Info("seeding completed")
	return records, nil
}

func (s *SeedService) fetchAndStore(ctx context.Context, store func(context.Context, []models.ProductTransaction) error) (int, error) {
	items, err := s.seedClient.FetchTransactions(ctx)
	if err != nil {
		return 0, err
	}

	transactions := lo.Map(items, func(item schemas.SeedTransaction, _ int) models.ProductTransaction {
		return models.ProductTransaction{
			DateOfSale: item.DateOfSale,
			Price:      item.Price.Round(models.PriceScale),
			Category:   item.Category,
			Sold:       item.Sold,
		}
	})

	if err := store(ctx, transactions); err != nil {
		return 0, fmt.Errorf("store seed transactions: %w", err)
	}
	return len(transactions), nil
}

func (s *SeedService) ListRuns(ctx context.Context, limit int) ([]schemas.SeedRun, error) {
	runs, err := s.seedRunRepository.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return lo.Map(runs, func(run models.SeedRun, _ int) schemas.SeedRun {
		return schemas.SeedRun{
			RunID:      run.RunID,
			Mode:       string(run.Mode),
			Status:     string(run.Status),
			Records:    run.Records,
			Error:      run.Error,
			StartedAt:  run.StartedAt,
			FinishedAt: run.FinishedAt,
		}
	}), nil
}
