// Package application 行情服务的应用层：校验输入、编排仓储/缓存/事件发布
package application

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/optionsdesk/internal/instrument/domain"
	"github.com/wyfcoding/optionsdesk/pkg/metrics"
)

// InstrumentRepo 标的仓储
type InstrumentRepo interface {
	Save(ctx context.Context, inst *domain.Instrument) error
	Get(ctx context.Context, symbol string) (*domain.Instrument, error)
	List(ctx context.Context) ([]*domain.Instrument, error)
}

// QuoteCache 最新行情读模型
type QuoteCache interface {
	SetLatest(ctx context.Context, q domain.Quote) error
	GetLatest(ctx context.Context, symbol string) (*domain.Quote, error)
}

// EventPublisher 领域事件发布
type EventPublisher interface {
	PublishQuoteUpdated(ctx context.Context, event domain.QuoteUpdatedEvent) error
	PublishInstrumentCreated(ctx context.Context, event domain.InstrumentCreatedEvent) error
}

// QuoteInput 行情输入（外部边界使用 float64，进入领域前转为 decimal）
type QuoteInput struct {
	Symbol     string
	CloseValue float64
	Ask        float64
	Bid        float64
	Variance   float64
	Timestamp  int64
}

// InstrumentAppService 行情应用服务
type InstrumentAppService struct {
	repo      InstrumentRepo
	cache     QuoteCache
	publisher EventPublisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// NewInstrumentAppService 创建行情应用服务
func NewInstrumentAppService(repo InstrumentRepo, cache QuoteCache, publisher EventPublisher, m *metrics.Metrics, logger *slog.Logger) *InstrumentAppService {
	return &InstrumentAppService{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
	}
}

// CreateInstrument 创建标的并记录首份行情
func (s *InstrumentAppService) CreateInstrument(ctx context.Context, in QuoteInput) (*domain.Instrument, error) {
	q, err := toQuote(in)
	if err != nil {
		return nil, err
	}

	inst := domain.NewInstrument(q)
	if err := s.repo.Save(ctx, inst); err != nil {
		return nil, fmt.Errorf("failed to save instrument: %w", err)
	}

	if err := s.cache.SetLatest(ctx, q); err != nil {
		s.logger.WarnContext(ctx, "failed to cache quote", "symbol", q.Symbol, "error", err)
	}
	if err := s.publisher.PublishInstrumentCreated(ctx, domain.InstrumentCreatedEvent{Symbol: q.Symbol, Timestamp: q.Timestamp}); err != nil {
		s.logger.WarnContext(ctx, "failed to publish instrument created", "symbol", q.Symbol, "error", err)
	}

	s.metrics.InstrumentsActive.Inc()
	s.logger.InfoContext(ctx, "instrument created", "symbol", q.Symbol)
	return inst, nil
}

// UpdateQuote 用新行情整体替换标的的快照
func (s *InstrumentAppService) UpdateQuote(ctx context.Context, in QuoteInput) (*domain.Instrument, error) {
	q, err := toQuote(in)
	if err != nil {
		return nil, err
	}

	inst, err := s.repo.Get(ctx, q.Symbol)
	if err != nil {
		return nil, err
	}

	inst.ApplyQuote(q)
	if err := s.repo.Save(ctx, inst); err != nil {
		return nil, fmt.Errorf("failed to save instrument: %w", err)
	}

	if err := s.cache.SetLatest(ctx, q); err != nil {
		s.logger.WarnContext(ctx, "failed to cache quote", "symbol", q.Symbol, "error", err)
	}
	if err := s.publisher.PublishQuoteUpdated(ctx, domain.NewQuoteUpdatedEvent(q)); err != nil {
		s.logger.WarnContext(ctx, "failed to publish quote updated", "symbol", q.Symbol, "error", err)
	}

	s.metrics.QuoteUpdatesTotal.Inc()
	s.logger.InfoContext(ctx, "quote updated", "symbol", q.Symbol, "timestamp", q.Timestamp)
	return inst, nil
}

// GetInstrument 查询标的
func (s *InstrumentAppService) GetInstrument(ctx context.Context, symbol string) (*domain.Instrument, error) {
	return s.repo.Get(ctx, symbol)
}

// GetLatestQuote 查询最新行情，优先缓存，未命中回源仓储
func (s *InstrumentAppService) GetLatestQuote(ctx context.Context, symbol string) (domain.Quote, error) {
	if q, err := s.cache.GetLatest(ctx, symbol); err == nil && q != nil {
		return *q, nil
	}

	inst, err := s.repo.Get(ctx, symbol)
	if err != nil {
		return domain.Quote{}, err
	}
	return inst.Quote(), nil
}

// GetSpread 查询买卖价差
func (s *InstrumentAppService) GetSpread(ctx context.Context, symbol string) (decimal.Decimal, error) {
	q, err := s.GetLatestQuote(ctx, symbol)
	if err != nil {
		return decimal.Zero, err
	}
	return q.Spread(), nil
}

// ListInstruments 列出全部标的
func (s *InstrumentAppService) ListInstruments(ctx context.Context) ([]*domain.Instrument, error) {
	return s.repo.List(ctx)
}

// toQuote 校验 float64 输入并转为领域值对象，非有限值拒绝
func toQuote(in QuoteInput) (domain.Quote, error) {
	if in.Symbol == "" {
		return domain.Quote{}, fmt.Errorf("%w: empty symbol", domain.ErrInvalidQuote)
	}
	for name, v := range map[string]float64{
		"close_value": in.CloseValue,
		"ask":         in.Ask,
		"bid":         in.Bid,
		"variance":    in.Variance,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return domain.Quote{}, fmt.Errorf("%w: non-finite %s", domain.ErrInvalidQuote, name)
		}
	}

	return domain.NewQuote(
		in.Symbol,
		decimal.NewFromFloat(in.CloseValue),
		decimal.NewFromFloat(in.Ask),
		decimal.NewFromFloat(in.Bid),
		decimal.NewFromFloat(in.Variance),
		in.Timestamp,
	), nil
}
