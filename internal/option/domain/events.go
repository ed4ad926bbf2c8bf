package domain

const (
	OptionCreatedEventType   = "option.contract.created"
	OptionEvaluatedEventType = "option.contract.evaluated"
	OptionExercisedEventType = "option.contract.exercised"
)

// OptionCreatedEvent 合约创建事件
type OptionCreatedEvent struct {
	ContractID string `json:"contract_id"`
	Underlying string `json:"underlying"`
	Type       string `json:"type"`
	Style      string `json:"style"`
	Strike     string `json:"strike"`
	Maturity   int64  `json:"maturity"`
}

// OptionEvaluatedEvent 合约评估事件
type OptionEvaluatedEvent struct {
	ContractID     string `json:"contract_id"`
	Moneyness      string `json:"moneyness"`
	IntrinsicValue string `json:"intrinsic_value"`
	CanExercise    bool   `json:"can_exercise"`
	EvaluatedAt    int64  `json:"evaluated_at"`
}

// OptionExercisedEvent 合约行权事件
type OptionExercisedEvent struct {
	ContractID    string `json:"contract_id"`
	Quantity      string `json:"quantity"`
	SettlementAmt string `json:"settlement_amt"`
	ExercisedAt   int64  `json:"exercised_at"`
}

// NewOptionEvaluatedEvent 从评估结果构建事件
func NewOptionEvaluatedEvent(eval *Evaluation) OptionEvaluatedEvent {
	return OptionEvaluatedEvent{
		ContractID:     eval.Symbol,
		Moneyness:      string(eval.Moneyness),
		IntrinsicValue: eval.IntrinsicValue.String(),
		CanExercise:    eval.CanExercise,
		EvaluatedAt:    eval.EvaluatedAt,
	}
}
