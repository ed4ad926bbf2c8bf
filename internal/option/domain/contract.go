package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	instrument "github.com/wyfcoding/optionsdesk/internal/instrument/domain"
)

// OptionStatus 合约状态
type OptionStatus int8

const (
	StatusActive    OptionStatus = 1
	StatusExercised OptionStatus = 2
	StatusExpired   OptionStatus = 3
)

func (s OptionStatus) String() string {
	switch s {
	case StatusActive:
		return "ACTIVE"
	case StatusExercised:
		return "EXERCISED"
	case StatusExpired:
		return "EXPIRED"
	}
	return "UNKNOWN"
}

// OptionContract 期权合约的持久化描述，运行期 Option 由它与标的组装而来
type OptionContract struct {
	gorm.Model
	// ContractID 合约业务 ID
	ContractID string `gorm:"column:contract_id;type:varchar(64);uniqueIndex;not null"`
	// Underlying 标的符号
	Underlying string `gorm:"column:underlying;type:varchar(32);index;not null"`
	// Type 期权类型 CALL/PUT
	Type OptionType `gorm:"column:type;type:varchar(10);not null"`
	// Style 行权风格 AMERICAN/EUROPEAN/BERMUDA
	Style ExerciseStyle `gorm:"column:style;type:varchar(10);not null"`
	// Strike 执行价
	Strike decimal.Decimal `gorm:"column:strike;type:decimal(32,18);not null"`
	// Maturity 到期时刻（毫秒），美式/欧式使用
	Maturity int64 `gorm:"column:maturity;type:bigint;not null"`
	// ScheduleJSON 百慕大行权时刻表（JSON 数组）
	ScheduleJSON string `gorm:"column:bermuda_schedule;type:text"`
	// Status 合约状态
	Status OptionStatus `gorm:"column:status;type:tinyint;not null;default:1"`
}

func (OptionContract) TableName() string { return "option_contracts" }

// NewOptionContract 创建合约，类型与风格在此校验
func NewOptionContract(contractID, underlying string, optionType OptionType, style ExerciseStyle, strike decimal.Decimal, maturity int64, schedule []int64) (*OptionContract, error) {
	if _, err := NewPayoffPolicy(optionType); err != nil {
		return nil, err
	}
	if _, err := NewExercisePolicy(style, maturity, schedule); err != nil {
		return nil, err
	}

	c := &OptionContract{
		ContractID: contractID,
		Underlying: underlying,
		Type:       optionType,
		Style:      style,
		Strike:     strike,
		Maturity:   maturity,
		Status:     StatusActive,
	}
	if err := c.SetSchedule(schedule); err != nil {
		return nil, err
	}
	return c, nil
}

// SetSchedule 写入百慕大行权时刻表
func (c *OptionContract) SetSchedule(schedule []int64) error {
	if len(schedule) == 0 {
		c.ScheduleJSON = ""
		return nil
	}
	data, err := json.Marshal(schedule)
	if err != nil {
		return err
	}
	c.ScheduleJSON = string(data)
	return nil
}

// Schedule 读取百慕大行权时刻表
func (c *OptionContract) Schedule() ([]int64, error) {
	if c.ScheduleJSON == "" {
		return nil, nil
	}
	var schedule []int64
	if err := json.Unmarshal([]byte(c.ScheduleJSON), &schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

// Compose 与标的组装出运行期 Option
func (c *OptionContract) Compose(underlying *instrument.Instrument) (*Option, error) {
	payoff, err := NewPayoffPolicy(c.Type)
	if err != nil {
		return nil, err
	}
	schedule, err := c.Schedule()
	if err != nil {
		return nil, err
	}
	exercise, err := NewExercisePolicy(c.Style, c.Maturity, schedule)
	if err != nil {
		return nil, err
	}
	return NewOption(c.ContractID, c.Strike, underlying, exercise, payoff)
}

// MarkExercised 标记已行权
func (c *OptionContract) MarkExercised() error {
	if c.Status != StatusActive {
		return ErrExerciseNotAllowed
	}
	c.Status = StatusExercised
	return nil
}

// MarkExpired 标记已到期
func (c *OptionContract) MarkExpired() {
	if c.Status == StatusActive {
		c.Status = StatusExpired
	}
}

// ExerciseRecord 行权记录
type ExerciseRecord struct {
	gorm.Model
	// ContractID 合约业务 ID
	ContractID string `gorm:"column:contract_id;type:varchar(64);index;not null"`
	// Quantity 行权数量
	Quantity decimal.Decimal `gorm:"column:quantity;type:decimal(32,18);not null"`
	// UnderlyingAsk 行权时标的卖价
	UnderlyingAsk decimal.Decimal `gorm:"column:underlying_ask;type:decimal(32,18);not null"`
	// Strike 执行价
	Strike decimal.Decimal `gorm:"column:strike;type:decimal(32,18);not null"`
	// SettlementAmt 现金结算金额（每单位内在价值 × 数量，不为负）
	SettlementAmt decimal.Decimal `gorm:"column:settlement_amt;type:decimal(32,18);not null"`
	// ExercisedAt 行权时刻（毫秒）
	ExercisedAt int64 `gorm:"column:exercised_at;type:bigint;not null"`
}

func (ExerciseRecord) TableName() string { return "exercise_records" }

// NewExerciseRecord 根据单次评估结果生成行权记录
func NewExerciseRecord(contractID string, quantity decimal.Decimal, eval *Evaluation) *ExerciseRecord {
	return &ExerciseRecord{
		ContractID:    contractID,
		Quantity:      quantity,
		UnderlyingAsk: eval.UnderlyingAsk,
		Strike:        eval.Strike,
		SettlementAmt: eval.IntrinsicValue.Mul(quantity),
		ExercisedAt:   eval.EvaluatedAt,
	}
}

// ExpireDue 是否已过全部可行权时刻（供后台过期任务判断）
func (c *OptionContract) ExpireDue(now time.Time) bool {
	nowMs := now.UnixMilli()
	if c.Style == StyleBermuda {
		schedule, err := c.Schedule()
		if err != nil || len(schedule) == 0 {
			return true
		}
		last := schedule[0]
		for _, ts := range schedule[1:] {
			if ts > last {
				last = ts
			}
		}
		return nowMs > last
	}
	return nowMs > c.Maturity
}
