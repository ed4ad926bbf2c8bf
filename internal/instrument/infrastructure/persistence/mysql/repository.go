package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/wyfcoding/optionsdesk/internal/instrument/domain"
)

type InstrumentRepo struct {
	db *gorm.DB
}

func NewInstrumentRepo(db *gorm.DB) *InstrumentRepo {
	return &InstrumentRepo{db: db}
}

func (r *InstrumentRepo) Save(ctx context.Context, inst *domain.Instrument) error {
	// Upsert by symbol, preserving gorm ID/CreatedAt
	var exist domain.Instrument
	if err := r.db.WithContext(ctx).Where("symbol = ?", inst.Symbol).First(&exist).Error; err == nil {
		inst.ID = exist.ID
		inst.CreatedAt = exist.CreatedAt
	}
	return r.db.WithContext(ctx).Save(inst).Error
}

func (r *InstrumentRepo) Get(ctx context.Context, symbol string) (*domain.Instrument, error) {
	var inst domain.Instrument
	if err := r.db.WithContext(ctx).Where("symbol = ?", symbol).First(&inst).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInstrumentNotFound
		}
		return nil, err
	}
	return &inst, nil
}

func (r *InstrumentRepo) List(ctx context.Context) ([]*domain.Instrument, error) {
	var instruments []*domain.Instrument
	err := r.db.WithContext(ctx).Order("symbol").Find(&instruments).Error
	return instruments, err
}
