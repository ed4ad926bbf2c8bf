// Package application 期权服务的应用层：合约管理、评估与行权编排
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	instrument "github.com/wyfcoding/optionsdesk/internal/instrument/domain"
	"github.com/wyfcoding/optionsdesk/internal/option/domain"
	"github.com/wyfcoding/optionsdesk/pkg/metrics"
)

// ContractRepo 合约仓储
type ContractRepo interface {
	Save(ctx context.Context, c *domain.OptionContract) error
	Get(ctx context.Context, contractID string) (*domain.OptionContract, error)
	List(ctx context.Context, underlying string, activeOnly bool) ([]*domain.OptionContract, error)
}

// ExerciseRecordRepo 行权记录仓储
type ExerciseRecordRepo interface {
	Save(ctx context.Context, r *domain.ExerciseRecord) error
	ListByContract(ctx context.Context, contractID string) ([]*domain.ExerciseRecord, error)
}

// UnderlyingProvider 提供标的当前状态（由 instrument 上下文实现）
type UnderlyingProvider interface {
	GetInstrument(ctx context.Context, symbol string) (*instrument.Instrument, error)
}

// EventPublisher 领域事件发布
type EventPublisher interface {
	PublishOptionCreated(ctx context.Context, event domain.OptionCreatedEvent) error
	PublishOptionEvaluated(ctx context.Context, event domain.OptionEvaluatedEvent) error
	PublishOptionExercised(ctx context.Context, event domain.OptionExercisedEvent) error
}

// CreateOptionInput 建仓输入
type CreateOptionInput struct {
	Underlying string
	Type       string
	Style      string
	Strike     float64
	Maturity   int64
	Schedule   []int64
}

// OptionAppService 期权应用服务
type OptionAppService struct {
	contracts  ContractRepo
	records    ExerciseRecordRepo
	underlying UnderlyingProvider
	publisher  EventPublisher
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NewOptionAppService 创建期权应用服务
func NewOptionAppService(contracts ContractRepo, records ExerciseRecordRepo, underlying UnderlyingProvider, publisher EventPublisher, m *metrics.Metrics, logger *slog.Logger) *OptionAppService {
	return &OptionAppService{
		contracts:  contracts,
		records:    records,
		underlying: underlying,
		publisher:  publisher,
		metrics:    m,
		logger:     logger,
	}
}

// CreateOption 创建期权合约，类型与行权风格由领域工厂校验
func (s *OptionAppService) CreateOption(ctx context.Context, in CreateOptionInput) (*domain.OptionContract, error) {
	contractID := fmt.Sprintf("OPT-%s-%d", in.Underlying, time.Now().UnixNano())

	contract, err := domain.NewOptionContract(
		contractID,
		in.Underlying,
		domain.OptionType(in.Type),
		domain.ExerciseStyle(in.Style),
		decimal.NewFromFloat(in.Strike),
		in.Maturity,
		in.Schedule,
	)
	if err != nil {
		return nil, err
	}

	// 标的必须已存在；非持有关系，仅校验引用有效
	if _, err := s.underlying.GetInstrument(ctx, in.Underlying); err != nil {
		if errors.Is(err, instrument.ErrInstrumentNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrDanglingUnderlying, in.Underlying)
		}
		return nil, err
	}

	if err := s.contracts.Save(ctx, contract); err != nil {
		return nil, fmt.Errorf("failed to save contract: %w", err)
	}

	event := domain.OptionCreatedEvent{
		ContractID: contractID,
		Underlying: in.Underlying,
		Type:       in.Type,
		Style:      in.Style,
		Strike:     contract.Strike.String(),
		Maturity:   in.Maturity,
	}
	if err := s.publisher.PublishOptionCreated(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish option created", "contract_id", contractID, "error", err)
	}

	s.logger.InfoContext(ctx, "option contract created", "contract_id", contractID, "underlying", in.Underlying)
	return contract, nil
}

// GetOption 查询合约
func (s *OptionAppService) GetOption(ctx context.Context, contractID string) (*domain.OptionContract, error) {
	return s.contracts.Get(ctx, contractID)
}

// ListOptions 按标的列出合约
func (s *OptionAppService) ListOptions(ctx context.Context, underlying string, activeOnly bool) ([]*domain.OptionContract, error) {
	return s.contracts.List(ctx, underlying, activeOnly)
}

// EvaluateOption 对合约做一次完整评估（货币性、内在价值、可行权性）
func (s *OptionAppService) EvaluateOption(ctx context.Context, contractID string, currentTime int64) (*domain.Evaluation, error) {
	option, _, err := s.compose(ctx, contractID)
	if err != nil {
		return nil, err
	}

	eval, err := option.Evaluate(currentTime)
	if err != nil {
		return nil, err
	}

	s.metrics.OptionEvaluationsTotal.WithLabelValues(string(eval.Moneyness)).Inc()
	if err := s.publisher.PublishOptionEvaluated(ctx, domain.NewOptionEvaluatedEvent(eval)); err != nil {
		s.logger.WarnContext(ctx, "failed to publish option evaluated", "contract_id", contractID, "error", err)
	}

	return eval, nil
}

// ExerciseOption 行权：校验可行权性，生成结算记录并更新合约状态
func (s *OptionAppService) ExerciseOption(ctx context.Context, contractID string, quantity float64, currentTime int64) (*domain.ExerciseRecord, error) {
	option, contract, err := s.compose(ctx, contractID)
	if err != nil {
		return nil, err
	}

	if !option.CanExercise(currentTime) {
		return nil, fmt.Errorf("%w: contract %s at %d", domain.ErrExerciseNotAllowed, contractID, currentTime)
	}

	eval, err := option.Evaluate(currentTime)
	if err != nil {
		return nil, err
	}

	if err := contract.MarkExercised(); err != nil {
		return nil, err
	}

	record := domain.NewExerciseRecord(contractID, decimal.NewFromFloat(quantity), eval)
	if err := s.records.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save exercise record: %w", err)
	}
	if err := s.contracts.Save(ctx, contract); err != nil {
		return nil, fmt.Errorf("failed to save contract: %w", err)
	}

	s.metrics.OptionExercisesTotal.Inc()
	event := domain.OptionExercisedEvent{
		ContractID:    contractID,
		Quantity:      record.Quantity.String(),
		SettlementAmt: record.SettlementAmt.String(),
		ExercisedAt:   currentTime,
	}
	if err := s.publisher.PublishOptionExercised(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish option exercised", "contract_id", contractID, "error", err)
	}

	s.logger.InfoContext(ctx, "option exercised",
		"contract_id", contractID,
		"settlement_amt", record.SettlementAmt.String(),
	)
	return record, nil
}

// ListExercises 查询合约的行权记录
func (s *OptionAppService) ListExercises(ctx context.Context, contractID string) ([]*domain.ExerciseRecord, error) {
	return s.records.ListByContract(ctx, contractID)
}

// ReevaluateUnderlying 标的行情变化后重评其全部活跃合约（由行情事件消费侧调用）
func (s *OptionAppService) ReevaluateUnderlying(ctx context.Context, underlying string, currentTime int64) error {
	contracts, err := s.contracts.List(ctx, underlying, true)
	if err != nil {
		return err
	}

	inst, err := s.underlying.GetInstrument(ctx, underlying)
	if err != nil {
		return err
	}

	for _, contract := range contracts {
		option, err := contract.Compose(inst)
		if err != nil {
			s.logger.WarnContext(ctx, "failed to compose option", "contract_id", contract.ContractID, "error", err)
			continue
		}
		eval, err := option.Evaluate(currentTime)
		if err != nil {
			s.logger.WarnContext(ctx, "failed to evaluate option", "contract_id", contract.ContractID, "error", err)
			continue
		}

		s.metrics.OptionEvaluationsTotal.WithLabelValues(string(eval.Moneyness)).Inc()
		if err := s.publisher.PublishOptionEvaluated(ctx, domain.NewOptionEvaluatedEvent(eval)); err != nil {
			s.logger.WarnContext(ctx, "failed to publish option evaluated", "contract_id", contract.ContractID, "error", err)
		}

		s.logger.InfoContext(ctx, "option reevaluated",
			"contract_id", contract.ContractID,
			"moneyness", string(eval.Moneyness),
			"intrinsic_value", eval.IntrinsicValue.String(),
		)
	}
	return nil
}

// ExpireDueContracts 将已过全部可行权时刻的活跃合约标记为过期
func (s *OptionAppService) ExpireDueContracts(ctx context.Context, now time.Time) (int, error) {
	contracts, err := s.contracts.List(ctx, "", true)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, contract := range contracts {
		if !contract.ExpireDue(now) {
			continue
		}
		contract.MarkExpired()
		if err := s.contracts.Save(ctx, contract); err != nil {
			s.logger.WarnContext(ctx, "failed to expire contract", "contract_id", contract.ContractID, "error", err)
			continue
		}
		expired++
	}

	if expired > 0 {
		s.logger.InfoContext(ctx, "contracts expired", "count", expired)
	}
	return expired, nil
}

// compose 加载合约与标的并组装运行期 Option
func (s *OptionAppService) compose(ctx context.Context, contractID string) (*domain.Option, *domain.OptionContract, error) {
	contract, err := s.contracts.Get(ctx, contractID)
	if err != nil {
		return nil, nil, err
	}

	inst, err := s.underlying.GetInstrument(ctx, contract.Underlying)
	if err != nil {
		if errors.Is(err, instrument.ErrInstrumentNotFound) {
			return nil, nil, fmt.Errorf("%w: %s", domain.ErrDanglingUnderlying, contract.Underlying)
		}
		return nil, nil, err
	}

	option, err := contract.Compose(inst)
	if err != nil {
		return nil, nil, err
	}
	return option, contract, nil
}
