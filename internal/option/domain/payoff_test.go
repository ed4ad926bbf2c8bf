package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCallPayoff(t *testing.T) {
	tests := []struct {
		name   string
		ask    string
		strike string
		want   string
	}{
		{"in the money", "110", "100", "10"},
		{"at the money", "100", "100", "0"},
		{"out of the money", "90", "100", "-10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CallPayoff{}.Payoff(dec(tt.ask), dec(tt.strike))
			if !got.Equal(dec(tt.want)) {
				t.Errorf("CallPayoff(%s, %s) = %s, want %s", tt.ask, tt.strike, got, tt.want)
			}
		})
	}
}

func TestPutPayoff(t *testing.T) {
	tests := []struct {
		name   string
		ask    string
		strike string
		want   string
	}{
		{"in the money", "90", "100", "10"},
		{"at the money", "100", "100", "0"},
		{"out of the money", "110", "100", "-10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PutPayoff{}.Payoff(dec(tt.ask), dec(tt.strike))
			if !got.Equal(dec(tt.want)) {
				t.Errorf("PutPayoff(%s, %s) = %s, want %s", tt.ask, tt.strike, got, tt.want)
			}
		})
	}
}

func TestNewPayoffPolicy(t *testing.T) {
	if _, err := NewPayoffPolicy(TypeCall); err != nil {
		t.Errorf("NewPayoffPolicy(CALL) error = %v", err)
	}
	if _, err := NewPayoffPolicy(TypePut); err != nil {
		t.Errorf("NewPayoffPolicy(PUT) error = %v", err)
	}
	if _, err := NewPayoffPolicy(OptionType("FUTURE")); !errors.Is(err, ErrInvalidOptionType) {
		t.Errorf("NewPayoffPolicy(FUTURE) error = %v, want ErrInvalidOptionType", err)
	}
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
