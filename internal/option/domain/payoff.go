package domain

import "github.com/shopspring/decimal"

// OptionType 期权类型
type OptionType string

const (
	TypeCall OptionType = "CALL"
	TypePut  OptionType = "PUT"
)

// PayoffPolicy 收益策略：给定标的卖价与执行价，计算未截断的原始收益。
// 负值表示价外；归零截断由 Option.IntrinsicValue 统一处理，
// 以便货币性分类能区分 ATM 与 OTM。
type PayoffPolicy interface {
	Payoff(underlyingAsk, strike decimal.Decimal) decimal.Decimal
}

// CallPayoff 看涨收益：ask - strike
type CallPayoff struct{}

func (CallPayoff) Payoff(underlyingAsk, strike decimal.Decimal) decimal.Decimal {
	return underlyingAsk.Sub(strike)
}

// PutPayoff 看跌收益：strike - ask
type PutPayoff struct{}

func (PutPayoff) Payoff(underlyingAsk, strike decimal.Decimal) decimal.Decimal {
	return strike.Sub(underlyingAsk)
}

// NewPayoffPolicy 按期权类型创建收益策略
func NewPayoffPolicy(optionType OptionType) (PayoffPolicy, error) {
	switch optionType {
	case TypeCall:
		return CallPayoff{}, nil
	case TypePut:
		return PutPayoff{}, nil
	default:
		return nil, ErrInvalidOptionType
	}
}
