package utils

import (
	"math"
	"testing"
)

func TestSafeDiv(t *testing.T) {
	if got := SafeDiv(10, 4); got != 2.5 {
		t.Errorf("SafeDiv(10,4) = %f", got)
	}
	if got := SafeDiv(10, 0); got != 0 {
		t.Errorf("SafeDiv(10,0) = %f, want 0", got)
	}
}

func TestPercentChange(t *testing.T) {
	if got := PercentChange(150, 100); got != 50 {
		t.Errorf("PercentChange(150,100) = %f", got)
	}
	if got := PercentChange(0, 0); got != 0 {
		t.Errorf("PercentChange(0,0) = %f", got)
	}
	if got := PercentChange(5, 0); got != 100 {
		t.Errorf("PercentChange(5,0) = %f, want 100", got)
	}
}

func TestFinite(t *testing.T) {
	if !Finite(1.5) {
		t.Error("1.5 must be finite")
	}
	if Finite(math.NaN()) || Finite(math.Inf(1)) {
		t.Error("NaN/Inf must not be finite")
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(3.14159); got != 3.14 {
		t.Errorf("Round2 = %f", got)
	}
	if got := Round2(3.456); got != 3.46 {
		t.Errorf("Round2(3.456) = %f", got)
	}
}
