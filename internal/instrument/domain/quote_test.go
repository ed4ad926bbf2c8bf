package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestQuoteSpread(t *testing.T) {
	tests := []struct {
		name string
		bid  string
		ask  string
		want string
	}{
		{"bid above ask", "101.5", "100", "1.5"},
		{"ask above bid", "99", "100", "-1"},
		{"equal", "100", "100", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQuote("AAPL", dec("100"), dec(tt.ask), dec(tt.bid), dec("0.2"), 1000)
			if got := q.Spread(); !got.Equal(dec(tt.want)) {
				t.Errorf("Spread() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestQuoteMidPrice(t *testing.T) {
	q := NewQuote("AAPL", dec("100"), dec("100"), dec("102"), dec("0.2"), 1000)
	if got := q.MidPrice(); !got.Equal(dec("101")) {
		t.Errorf("MidPrice() = %s, want 101", got)
	}
}

func TestInstrumentAppliesQuote(t *testing.T) {
	first := NewQuote("AAPL", dec("100"), dec("100.5"), dec("99.5"), dec("0.2"), 1000)
	inst := NewInstrument(first)

	if inst.Symbol != "AAPL" {
		t.Fatalf("Symbol = %s, want AAPL", inst.Symbol)
	}
	if got := inst.Quote(); !got.Ask.Equal(first.Ask) || got.Timestamp != 1000 {
		t.Errorf("Quote() = %+v, want %+v", got, first)
	}

	second := NewQuote("AAPL", dec("110"), dec("110.5"), dec("109.5"), dec("0.3"), 2000)
	inst.ApplyQuote(second)

	got := inst.Quote()
	if !got.CloseValue.Equal(dec("110")) || got.Timestamp != 2000 {
		t.Errorf("after ApplyQuote, Quote() = %+v, want %+v", got, second)
	}
	if want := dec("-1"); !inst.Spread().Equal(want) {
		t.Errorf("Spread() = %s, want %s", inst.Spread(), want)
	}
}
