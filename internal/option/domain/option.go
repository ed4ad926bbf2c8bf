package domain

import (
	"github.com/shopspring/decimal"

	instrument "github.com/wyfcoding/optionsdesk/internal/instrument/domain"
)

// Moneyness 货币性分类
type Moneyness string

const (
	MoneynessITM Moneyness = "ITM"
	MoneynessATM Moneyness = "ATM"
	MoneynessOTM Moneyness = "OTM"
)

// ClassifyMoneyness 按原始收益分类：>0 价内，==0 平价，<0 价外。
// decimal 比较是精确的，三种分类互斥且必居其一。
func ClassifyMoneyness(rawPayoff decimal.Decimal) Moneyness {
	switch {
	case rawPayoff.IsPositive():
		return MoneynessITM
	case rawPayoff.IsZero():
		return MoneynessATM
	default:
		return MoneynessOTM
	}
}

// Option 期权：一个标的引用加一组可替换的行权/收益策略。
// 标的为共享引用，期权不管理其生命周期；两个策略为期权独占。
// 读操作与标的行情的并发更新之间不做同步，需要一致视图时
// 应使用 Evaluate 在单次行情读取上完成全部判定。
type Option struct {
	Symbol     string
	Strike     decimal.Decimal
	underlying *instrument.Instrument
	exercise   ExercisePolicy
	payoff     PayoffPolicy
}

// NewOption 组装期权，两个策略都缺一不可
func NewOption(symbol string, strike decimal.Decimal, underlying *instrument.Instrument, exercise ExercisePolicy, payoff PayoffPolicy) (*Option, error) {
	if exercise == nil || payoff == nil {
		return nil, ErrMissingPolicy
	}
	return &Option{
		Symbol:     symbol,
		Strike:     strike,
		underlying: underlying,
		exercise:   exercise,
		payoff:     payoff,
	}, nil
}

// Underlying 获取标的引用
func (o *Option) Underlying() *instrument.Instrument {
	return o.underlying
}

// rawPayoff 用当前标的卖价计算一次原始收益
func (o *Option) rawPayoff() (decimal.Decimal, error) {
	if o.underlying == nil {
		return decimal.Zero, ErrDanglingUnderlying
	}
	return o.payoff.Payoff(o.underlying.Quote().Ask, o.Strike), nil
}

// IntrinsicValue 内在价值：立即行权可实现的收益，价外时归零
func (o *Option) IntrinsicValue() (decimal.Decimal, error) {
	raw, err := o.rawPayoff()
	if err != nil {
		return decimal.Zero, err
	}
	if raw.IsNegative() {
		return decimal.Zero, nil
	}
	return raw, nil
}

// Moneyness 货币性分类
func (o *Option) Moneyness() (Moneyness, error) {
	raw, err := o.rawPayoff()
	if err != nil {
		return "", err
	}
	return ClassifyMoneyness(raw), nil
}

// IsITM 是否价内
func (o *Option) IsITM() (bool, error) {
	m, err := o.Moneyness()
	return m == MoneynessITM, err
}

// IsATM 是否平价
func (o *Option) IsATM() (bool, error) {
	m, err := o.Moneyness()
	return m == MoneynessATM, err
}

// IsOTM 是否价外
func (o *Option) IsOTM() (bool, error) {
	m, err := o.Moneyness()
	return m == MoneynessOTM, err
}

// CanExercise 是否可行权，仅委托行权策略
func (o *Option) CanExercise(currentTime int64) bool {
	return o.exercise.CanExercise(currentTime)
}

// Evaluation 单次评估结果：货币性、内在价值与可行权性
// 来自同一份行情读取，互斥性不受并发行情更新影响
type Evaluation struct {
	Symbol         string
	UnderlyingAsk  decimal.Decimal
	Strike         decimal.Decimal
	IntrinsicValue decimal.Decimal
	Moneyness      Moneyness
	CanExercise    bool
	EvaluatedAt    int64
}

// Evaluate 在单份行情快照上完成一次完整评估
func (o *Option) Evaluate(currentTime int64) (*Evaluation, error) {
	if o.underlying == nil {
		return nil, ErrDanglingUnderlying
	}

	ask := o.underlying.Quote().Ask
	raw := o.payoff.Payoff(ask, o.Strike)

	intrinsic := raw
	if intrinsic.IsNegative() {
		intrinsic = decimal.Zero
	}

	return &Evaluation{
		Symbol:         o.Symbol,
		UnderlyingAsk:  ask,
		Strike:         o.Strike,
		IntrinsicValue: intrinsic,
		Moneyness:      ClassifyMoneyness(raw),
		CanExercise:    o.exercise.CanExercise(currentTime),
		EvaluatedAt:    currentTime,
	}, nil
}
