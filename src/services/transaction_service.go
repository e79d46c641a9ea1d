package services

import (
	"context"
	"fmt"

	"salesboard/src/repositories"
	"salesboard/src/schemas"
)

type TransactionServiceI interface {
	GetStatistics(ctx context.Context, month string) (*schemas.StatisticsResponse, error)
	GetBarChart(ctx context.Context, month string) (schemas.BarChartResponse, error)
	GetPieChart(ctx context.Context, month string) (schemas.PieChartResponse, error)
	GetCombined(ctx context.Context, month string) (*schemas.FinalResponse, error)
}

type TransactionService struct {
	transactionRepository repositories.TransactionRepository
}

func NewTransactionService(transactionRepository repositories.TransactionRepository) *TransactionService {
	return &TransactionService{transactionRepository: transactionRepository}
}

func (s *TransactionService) GetStatistics(ctx context.Context, month string) (*schemas.StatisticsResponse, error) {
	transactions, err := s.transactionRepository.FindByMonth(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("load transactions for %q: %w", month, err)
	}
	statistics := ComputeStatistics(transactions)
	return &statistics, nil
}

func (s *TransactionService) GetBarChart(ctx context.Context, month string) (schemas.BarChartResponse, error) {
	transactions, err := s.transactionRepository.FindByMonth(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("load transactions for %q: %w", month, err)
	}
	return ComputeBarChart(transactions), nil
}

func (s *TransactionService) GetPieChart(ctx context.Context, month string) (schemas.PieChartResponse, error) {
	transactions, err := s.transactionRepository.FindByMonth(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("load transactions for %q: %w", month, err)
	}
	return ComputePieChart(transactions), nil
}

// GetCombined computes the three aggregates from a single read.
func (s *TransactionService) GetCombined(ctx context.Context, month string) (*schemas.FinalResponse, error) {
	transactions, err := s.transactionRepository.FindByMonth(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("load transactions for %q: %w", month, err)
	}
	return &schemas.FinalResponse{
		Statistics: ComputeStatistics(transactions),
		BarChart:   ComputeBarChart(transactions),
		PieChart:   ComputePieChart(transactions),
	}, nil
}
