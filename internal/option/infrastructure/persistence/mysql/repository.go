package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/wyfcoding/optionsdesk/internal/option/domain"
)

type ContractRepo struct {
	db *gorm.DB
}

func NewContractRepo(db *gorm.DB) *ContractRepo {
	return &ContractRepo{db: db}
}

func (r *ContractRepo) Save(ctx context.Context, c *domain.OptionContract) error {
	// Upsert by contract_id, preserving gorm ID/CreatedAt
	var exist domain.OptionContract
	if err := r.db.WithContext(ctx).Where("contract_id = ?", c.ContractID).First(&exist).Error; err == nil {
		c.ID = exist.ID
		c.CreatedAt = exist.CreatedAt
	}
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ContractRepo) Get(ctx context.Context, contractID string) (*domain.OptionContract, error) {
	var c domain.OptionContract
	if err := r.db.WithContext(ctx).Where("contract_id = ?", contractID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOptionNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *ContractRepo) List(ctx context.Context, underlying string, activeOnly bool) ([]*domain.OptionContract, error) {
	var contracts []*domain.OptionContract
	query := r.db.WithContext(ctx)

	if underlying != "" {
		query = query.Where("underlying = ?", underlying)
	}
	if activeOnly {
		query = query.Where("status = ?", domain.StatusActive)
	}

	err := query.Find(&contracts).Error
	return contracts, err
}

type ExerciseRecordRepo struct {
	db *gorm.DB
}

func NewExerciseRecordRepo(db *gorm.DB) *ExerciseRecordRepo {
	return &ExerciseRecordRepo{db: db}
}

func (r *ExerciseRecordRepo) Save(ctx context.Context, rec *domain.ExerciseRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *ExerciseRecordRepo) ListByContract(ctx context.Context, contractID string) ([]*domain.ExerciseRecord, error) {
	var records []*domain.ExerciseRecord
	err := r.db.WithContext(ctx).Where("contract_id = ?", contractID).Order("exercised_at").Find(&records).Error
	return records, err
}
