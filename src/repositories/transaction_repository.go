package repositories

import (
	"context"

	"salesboard/src/models"
	"salesboard/src/utils"

	"gorm.io/gorm"
)

const insertBatchSize = 200

type TransactionRepository interface {
	CreateBatch(ctx context.Context, transactions []models.ProductTransaction) error
	ReplaceAll(ctx context.Context, transactions []models.ProductTransaction) error
	FindByMonth(ctx context.Context, month string) ([]models.ProductTransaction, error)
	CountByMonth(ctx context.Context, month string) (int64, error)
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db: db}
}

// byMonth keeps rows whose date_of_sale starts with month, ignoring case.
// An empty month keeps every row.
func byMonth(month string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if month == "" {
			return db
		}
		return db.Where("LOWER(date_of_sale) LIKE ? ESCAPE '"+utils.LikeEscapeChar+"'", utils.LikePrefix(month))
	}
}

// CreateBatch inserts every transaction in a single database transaction.
func (r *transactionRepo) CreateBatch(ctx context.Context, transactions []models.ProductTransaction) error {
	if len(transactions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(transactions, insertBatchSize).Error
	})
}

// ReplaceAll swaps the whole table content for transactions atomically.
func (r *transactionRepo) ReplaceAll(ctx context.Context, transactions []models.ProductTransaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.ProductTransaction{}).Error; err != nil {
			return err
		}
		if len(transactions) == 0 {
			return nil
		}
		return tx.CreateInBatches(transactions, insertBatchSize).Error
	})
}

func (r *transactionRepo) FindByMonth(ctx context.Context, month string) ([]models.ProductTransaction, error) {
	var transactions []models.ProductTransaction
	err := r.db.WithContext(ctx).
		Scopes(byMonth(month)).
		Order("id").
		Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) CountByMonth(ctx context.Context, month string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ProductTransaction{}).
		Scopes(byMonth(month)).
		Count(&count).Error
	return count, err
}
