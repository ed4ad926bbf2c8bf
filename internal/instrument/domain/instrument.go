package domain

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Instrument 可交易标的，持有最新一份行情快照
type Instrument struct {
	gorm.Model
	// Symbol 标的符号（如 AAPL）
	Symbol string `gorm:"column:symbol;type:varchar(32);uniqueIndex;not null"`
	// CloseValue 收盘价
	CloseValue decimal.Decimal `gorm:"column:close_value;type:decimal(32,18);not null"`
	// Ask 卖价
	Ask decimal.Decimal `gorm:"column:ask;type:decimal(32,18);not null"`
	// Bid 买价
	Bid decimal.Decimal `gorm:"column:bid;type:decimal(32,18);not null"`
	// Variance 方差
	Variance decimal.Decimal `gorm:"column:variance;type:decimal(32,18);not null"`
	// Timestamp 最新行情时间戳（毫秒）
	Timestamp int64 `gorm:"column:timestamp;type:bigint;not null"`
}

func (Instrument) TableName() string { return "instruments" }

// NewInstrument 从行情快照创建标的
func NewInstrument(q Quote) *Instrument {
	i := &Instrument{Symbol: q.Symbol}
	i.ApplyQuote(q)
	return i
}

// Quote 获取当前行情快照
func (i *Instrument) Quote() Quote {
	return Quote{
		Symbol:     i.Symbol,
		CloseValue: i.CloseValue,
		Ask:        i.Ask,
		Bid:        i.Bid,
		Variance:   i.Variance,
		Timestamp:  i.Timestamp,
	}
}

// ApplyQuote 整体替换行情快照（不提供逐字段 setter）
func (i *Instrument) ApplyQuote(q Quote) {
	i.CloseValue = q.CloseValue
	i.Ask = q.Ask
	i.Bid = q.Bid
	i.Variance = q.Variance
	i.Timestamp = q.Timestamp
}

// Spread 获取买卖价差 (bid - ask)
func (i *Instrument) Spread() decimal.Decimal {
	return i.Bid.Sub(i.Ask)
}

// MidPrice 获取中间价
func (i *Instrument) MidPrice() decimal.Decimal {
	return i.Bid.Add(i.Ask).Div(decimal.NewFromInt(2))
}
