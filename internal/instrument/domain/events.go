package domain

const (
	QuoteUpdatedEventType      = "instrument.quote.updated"
	InstrumentCreatedEventType = "instrument.created"
)

// QuoteUpdatedEvent 报价更新事件
type QuoteUpdatedEvent struct {
	Symbol     string `json:"symbol"`
	CloseValue string `json:"close_value"`
	Ask        string `json:"ask"`
	Bid        string `json:"bid"`
	Variance   string `json:"variance"`
	Timestamp  int64  `json:"timestamp"`
}

// InstrumentCreatedEvent 标的创建事件
type InstrumentCreatedEvent struct {
	Symbol    string `json:"symbol"`
	Timestamp int64  `json:"timestamp"`
}

// NewQuoteUpdatedEvent 从行情快照构建事件
func NewQuoteUpdatedEvent(q Quote) QuoteUpdatedEvent {
	return QuoteUpdatedEvent{
		Symbol:     q.Symbol,
		CloseValue: q.CloseValue.String(),
		Ask:        q.Ask.String(),
		Bid:        q.Bid.String(),
		Variance:   q.Variance.String(),
		Timestamp:  q.Timestamp,
	}
}
