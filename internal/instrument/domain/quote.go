// Package domain 行情与合约标的的领域模型：报价快照、可交易标的、领域事件
package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInstrumentNotFound = errors.New("instrument not found")
	ErrInvalidQuote       = errors.New("invalid quote")
)

// Quote 行情快照（不可变值对象）
type Quote struct {
	// Symbol 标的符号
	Symbol string `json:"symbol"`
	// CloseValue 收盘价
	CloseValue decimal.Decimal `json:"close_value"`
	// Ask 卖价
	Ask decimal.Decimal `json:"ask"`
	// Bid 买价
	Bid decimal.Decimal `json:"bid"`
	// Variance 方差
	Variance decimal.Decimal `json:"variance"`
	// Timestamp 时间戳（毫秒）
	Timestamp int64 `json:"timestamp"`
}

// NewQuote 创建行情快照
func NewQuote(symbol string, closeValue, ask, bid, variance decimal.Decimal, timestamp int64) Quote {
	return Quote{
		Symbol:     symbol,
		CloseValue: closeValue,
		Ask:        ask,
		Bid:        bid,
		Variance:   variance,
		Timestamp:  timestamp,
	}
}

// Spread 获取买卖价差 (bid - ask)
func (q Quote) Spread() decimal.Decimal {
	return q.Bid.Sub(q.Ask)
}

// MidPrice 获取中间价
func (q Quote) MidPrice() decimal.Decimal {
	return q.Bid.Add(q.Ask).Div(decimal.NewFromInt(2))
}
