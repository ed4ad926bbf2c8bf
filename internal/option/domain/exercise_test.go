package domain

import "testing"

func TestAmericanExercise(t *testing.T) {
	p := AmericanExercise{Maturity: 100}

	tests := []struct {
		currentTime int64
		want        bool
	}{
		{99, true},
		{100, false}, // boundary is exclusive
		{101, false},
		{0, true},
	}
	for _, tt := range tests {
		if got := p.CanExercise(tt.currentTime); got != tt.want {
			t.Errorf("American(100).CanExercise(%d) = %v, want %v", tt.currentTime, got, tt.want)
		}
	}
}

func TestEuropeanExercise(t *testing.T) {
	p := EuropeanExercise{Maturity: 100}

	tests := []struct {
		currentTime int64
		want        bool
	}{
		{99, false},
		{100, true},
		{101, false},
	}
	for _, tt := range tests {
		if got := p.CanExercise(tt.currentTime); got != tt.want {
			t.Errorf("European(100).CanExercise(%d) = %v, want %v", tt.currentTime, got, tt.want)
		}
	}
}

func TestBermudaExercise(t *testing.T) {
	p := BermudaExercise{Maturities: []int64{50, 100, 150}}

	tests := []struct {
		currentTime int64
		want        bool
	}{
		{100, true},
		{75, false},
		{50, true},
		{150, true},
		{151, false},
	}
	for _, tt := range tests {
		if got := p.CanExercise(tt.currentTime); got != tt.want {
			t.Errorf("Bermuda{50,100,150}.CanExercise(%d) = %v, want %v", tt.currentTime, got, tt.want)
		}
	}
}

func TestBermudaExerciseEmptySchedule(t *testing.T) {
	p := BermudaExercise{}
	if p.CanExercise(100) {
		t.Error("empty schedule must never be exercisable")
	}
}

func TestNewExercisePolicy(t *testing.T) {
	tests := []struct {
		style   ExerciseStyle
		wantErr bool
	}{
		{StyleAmerican, false},
		{StyleEuropean, false},
		{StyleBermuda, false},
		{ExerciseStyle("ASIAN"), true},
		{ExerciseStyle(""), true},
	}
	for _, tt := range tests {
		_, err := NewExercisePolicy(tt.style, 100, []int64{100})
		if (err != nil) != tt.wantErr {
			t.Errorf("NewExercisePolicy(%q) error = %v, wantErr %v", tt.style, err, tt.wantErr)
		}
	}
}
