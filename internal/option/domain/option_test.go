package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	instrument "github.com/wyfcoding/optionsdesk/internal/instrument/domain"
)

func newUnderlying(ask string) *instrument.Instrument {
	return instrument.NewInstrument(instrument.NewQuote(
		"AAPL", dec(ask), dec(ask), dec(ask), decimal.Zero, 1000,
	))
}

func mustOption(t *testing.T, strike string, underlying *instrument.Instrument, exercise ExercisePolicy, payoff PayoffPolicy) *Option {
	t.Helper()
	o, err := NewOption("OPT-AAPL-1", dec(strike), underlying, exercise, payoff)
	if err != nil {
		t.Fatalf("NewOption: %v", err)
	}
	return o
}

func TestNewOptionRequiresBothPolicies(t *testing.T) {
	u := newUnderlying("100")

	if _, err := NewOption("x", dec("100"), u, nil, CallPayoff{}); !errors.Is(err, ErrMissingPolicy) {
		t.Errorf("missing exercise policy: error = %v, want ErrMissingPolicy", err)
	}
	if _, err := NewOption("x", dec("100"), u, AmericanExercise{Maturity: 100}, nil); !errors.Is(err, ErrMissingPolicy) {
		t.Errorf("missing payoff policy: error = %v, want ErrMissingPolicy", err)
	}
}

func TestDanglingUnderlying(t *testing.T) {
	o := mustOption(t, "100", nil, AmericanExercise{Maturity: 100}, CallPayoff{})

	if _, err := o.IntrinsicValue(); !errors.Is(err, ErrDanglingUnderlying) {
		t.Errorf("IntrinsicValue error = %v, want ErrDanglingUnderlying", err)
	}
	if _, err := o.Moneyness(); !errors.Is(err, ErrDanglingUnderlying) {
		t.Errorf("Moneyness error = %v, want ErrDanglingUnderlying", err)
	}
	if _, err := o.Evaluate(50); !errors.Is(err, ErrDanglingUnderlying) {
		t.Errorf("Evaluate error = %v, want ErrDanglingUnderlying", err)
	}
}

func TestCallIntrinsicValueAndMoneyness(t *testing.T) {
	o := mustOption(t, "100", newUnderlying("110"), AmericanExercise{Maturity: 100}, CallPayoff{})

	iv, err := o.IntrinsicValue()
	if err != nil {
		t.Fatal(err)
	}
	if !iv.Equal(dec("10")) {
		t.Errorf("IntrinsicValue = %s, want 10", iv)
	}
	if itm, _ := o.IsITM(); !itm {
		t.Error("IsITM = false, want true")
	}
}

func TestPutIntrinsicValueAndMoneyness(t *testing.T) {
	o := mustOption(t, "100", newUnderlying("90"), AmericanExercise{Maturity: 100}, PutPayoff{})

	iv, err := o.IntrinsicValue()
	if err != nil {
		t.Fatal(err)
	}
	if !iv.Equal(dec("10")) {
		t.Errorf("IntrinsicValue = %s, want 10", iv)
	}
	if itm, _ := o.IsITM(); !itm {
		t.Error("IsITM = false, want true")
	}
}

func TestAtTheMoney(t *testing.T) {
	for _, payoff := range []PayoffPolicy{CallPayoff{}, PutPayoff{}} {
		o := mustOption(t, "100", newUnderlying("100"), AmericanExercise{Maturity: 100}, payoff)

		iv, err := o.IntrinsicValue()
		if err != nil {
			t.Fatal(err)
		}
		if !iv.IsZero() {
			t.Errorf("%T: IntrinsicValue = %s, want 0", payoff, iv)
		}
		if atm, _ := o.IsATM(); !atm {
			t.Errorf("%T: IsATM = false, want true", payoff)
		}
	}
}

func TestIntrinsicValueClampsOutOfTheMoney(t *testing.T) {
	o := mustOption(t, "100", newUnderlying("90"), AmericanExercise{Maturity: 100}, CallPayoff{})

	iv, err := o.IntrinsicValue()
	if err != nil {
		t.Fatal(err)
	}
	if !iv.IsZero() {
		t.Errorf("IntrinsicValue = %s, want 0 (clamped)", iv)
	}
	// Classification still sees the negative raw payoff
	if otm, _ := o.IsOTM(); !otm {
		t.Error("IsOTM = false, want true")
	}
	if atm, _ := o.IsATM(); atm {
		t.Error("IsATM = true, want false")
	}
}

func TestMoneynessMutualExclusivity(t *testing.T) {
	asks := []string{"0", "50", "99.999", "100", "100.001", "150", "1000000"}
	for _, payoff := range []PayoffPolicy{CallPayoff{}, PutPayoff{}} {
		for _, ask := range asks {
			o := mustOption(t, "100", newUnderlying(ask), EuropeanExercise{Maturity: 100}, payoff)

			itm, err := o.IsITM()
			if err != nil {
				t.Fatal(err)
			}
			atm, _ := o.IsATM()
			otm, _ := o.IsOTM()

			count := 0
			for _, b := range []bool{itm, atm, otm} {
				if b {
					count++
				}
			}
			if count != 1 {
				t.Errorf("%T ask=%s: exactly one of ITM/ATM/OTM must hold, got itm=%v atm=%v otm=%v",
					payoff, ask, itm, atm, otm)
			}
		}
	}
}

// Swapping one policy must leave the other concern's behavior untouched.
func TestPolicySwapIsolation(t *testing.T) {
	u := newUnderlying("110")
	exercise := AmericanExercise{Maturity: 100}

	call := mustOption(t, "100", u, exercise, CallPayoff{})
	put := mustOption(t, "100", u, exercise, PutPayoff{})

	for _, ts := range []int64{0, 99, 100, 101} {
		if call.CanExercise(ts) != put.CanExercise(ts) {
			t.Errorf("payoff swap changed CanExercise(%d)", ts)
		}
	}

	american := mustOption(t, "100", u, AmericanExercise{Maturity: 100}, CallPayoff{})
	european := mustOption(t, "100", u, EuropeanExercise{Maturity: 100}, CallPayoff{})

	ivA, _ := american.IntrinsicValue()
	ivE, _ := european.IntrinsicValue()
	if !ivA.Equal(ivE) {
		t.Errorf("exercise swap changed IntrinsicValue: %s vs %s", ivA, ivE)
	}
	mA, _ := american.Moneyness()
	mE, _ := european.Moneyness()
	if mA != mE {
		t.Errorf("exercise swap changed Moneyness: %s vs %s", mA, mE)
	}
}

func TestEvaluateSingleSnapshot(t *testing.T) {
	u := newUnderlying("110")
	o := mustOption(t, "100", u, AmericanExercise{Maturity: 200}, CallPayoff{})

	eval, err := o.Evaluate(150)
	if err != nil {
		t.Fatal(err)
	}
	if eval.Moneyness != MoneynessITM {
		t.Errorf("Moneyness = %s, want ITM", eval.Moneyness)
	}
	if !eval.IntrinsicValue.Equal(dec("10")) {
		t.Errorf("IntrinsicValue = %s, want 10", eval.IntrinsicValue)
	}
	if !eval.CanExercise {
		t.Error("CanExercise = false, want true")
	}
	if !eval.UnderlyingAsk.Equal(dec("110")) {
		t.Errorf("UnderlyingAsk = %s, want 110", eval.UnderlyingAsk)
	}

	// Mutating the underlying after evaluation must not affect the result.
	u.ApplyQuote(instrument.NewQuote("AAPL", dec("50"), dec("50"), dec("50"), decimal.Zero, 2000))
	if !eval.UnderlyingAsk.Equal(dec("110")) {
		t.Error("Evaluation must hold a snapshot, not a live reference")
	}
}
