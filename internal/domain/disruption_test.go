package domain

import (
	"errors"
	"testing"
)

func TestNewDisruption_ClampsSeverity(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{-0.5, 0.0},
		{0.0, 0.0},
		{0.65, 0.65},
		{1.0, 1.0},
		{2.3, 1.0},
	}
	for _, tc := range cases {
		d, err := NewDisruption(KindPortClosure, tc.in, 5, 0)
		if err != nil {
			t.Fatalf("NewDisruption(%f) failed: %v", tc.in, err)
		}
		if d.Severity != tc.want {
			t.Errorf("severity %f clamped to %f, want %f", tc.in, d.Severity, tc.want)
		}
	}
}

func TestNewDisruption_RejectsBadDuration(t *testing.T) {
	for _, days := range []int{0, -3} {
		_, err := NewDisruption(KindCyberattack, 0.5, days, 0)
		if !errors.Is(err, ErrInvalidDuration) {
			t.Errorf("duration %d: expected ErrInvalidDuration, got %v", days, err)
		}
	}
}

func TestNewDisruption_RejectsNegativeStartDay(t *testing.T) {
	_, err := NewDisruption(KindDemandSpike, 0.5, 5, -1)
	if !errors.Is(err, ErrInvalidStartDay) {
		t.Errorf("expected ErrInvalidStartDay, got %v", err)
	}
}

func TestNewPolicy_ClampsSafetyStock(t *testing.T) {
	p := NewPolicy(1.5, true, false, true, false)
	if p.SafetyStock != 1.0 {
		t.Errorf("SafetyStock = %f, want 1.0", p.SafetyStock)
	}
	p = NewPolicy(-0.2, false, false, false, false)
	if p.SafetyStock != 0.0 {
		t.Errorf("SafetyStock = %f, want 0.0", p.SafetyStock)
	}
}

func TestParseCurveShape(t *testing.T) {
	for _, name := range []string{"linear", "exponential", "logistic", "delayed_rebound"} {
		if _, err := ParseCurveShape(name); err != nil {
			t.Errorf("ParseCurveShape(%q) failed: %v", name, err)
		}
	}
	if _, err := ParseCurveShape("parabolic"); !errors.Is(err, ErrUnknownShape) {
		t.Errorf("expected ErrUnknownShape, got %v", err)
	}
}
