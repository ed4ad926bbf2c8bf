// Package domain 期权领域模型：行权策略、收益策略、期权组合与货币性分类
package domain

import (
	"errors"
	"slices"
)

var (
	ErrOptionNotFound       = errors.New("option not found")
	ErrInvalidOptionType    = errors.New("invalid option type")
	ErrInvalidExerciseStyle = errors.New("invalid exercise style")
	ErrMissingPolicy        = errors.New("option requires both an exercise policy and a payoff policy")
	ErrDanglingUnderlying   = errors.New("option underlying instrument no longer exists")
	ErrExerciseNotAllowed   = errors.New("exercise not allowed")
)

// ExerciseStyle 行权风格
type ExerciseStyle string

const (
	StyleAmerican ExerciseStyle = "AMERICAN"
	StyleEuropean ExerciseStyle = "EUROPEAN"
	StyleBermuda  ExerciseStyle = "BERMUDA"
)

// ExercisePolicy 行权策略：判断给定时刻是否可以行权。
// 实现均为无状态纯谓词，时间为毫秒时间戳。
type ExercisePolicy interface {
	CanExercise(currentTime int64) bool
}

// AmericanExercise 美式行权：到期前任意时刻可行权，到期时刻本身不可（边界开区间）
type AmericanExercise struct {
	Maturity int64
}

func (p AmericanExercise) CanExercise(currentTime int64) bool {
	return currentTime < p.Maturity
}

// EuropeanExercise 欧式行权：仅在到期时刻可行权，无容差窗口
type EuropeanExercise struct {
	Maturity int64
}

func (p EuropeanExercise) CanExercise(currentTime int64) bool {
	return currentTime == p.Maturity
}

// BermudaExercise 百慕大行权：仅在既定时刻集合中可行权
type BermudaExercise struct {
	Maturities []int64
}

func (p BermudaExercise) CanExercise(currentTime int64) bool {
	return slices.Contains(p.Maturities, currentTime)
}

// NewExercisePolicy 按风格创建行权策略，百慕大风格使用 schedule，其余使用 maturity
func NewExercisePolicy(style ExerciseStyle, maturity int64, schedule []int64) (ExercisePolicy, error) {
	switch style {
	case StyleAmerican:
		return AmericanExercise{Maturity: maturity}, nil
	case StyleEuropean:
		return EuropeanExercise{Maturity: maturity}, nil
	case StyleBermuda:
		return BermudaExercise{Maturities: slices.Clone(schedule)}, nil
	default:
		return nil, ErrInvalidExerciseStyle
	}
}
