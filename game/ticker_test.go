package game

import (
	"testing"
	"time"
)

func TestTickerWholePeriods(t *testing.T) {
	tk := NewTicker(50 * time.Millisecond)

	steps := []struct {
		elapsed time.Duration
		want    int
	}{
		{20 * time.Millisecond, 0},
		{20 * time.Millisecond, 0},
		{20 * time.Millisecond, 1}, // 60ms accumulated
		{90 * time.Millisecond, 2}, // 10 + 90
		{0, 0},
		{-time.Second, 0},
	}

	for i, s := range steps {
		if got := tk.Advance(s.elapsed); got != s.want {
			t.Errorf("step %d: Advance(%v) = %d, want %d", i, s.elapsed, got, s.want)
		}
	}
}

func TestTickerCatchUpLimit(t *testing.T) {
	tk := NewTicker(10 * time.Millisecond)
	if got := tk.Advance(time.Second); got != maxCatchUp {
		t.Errorf("Advance after stall = %d, want %d", got, maxCatchUp)
	}
	if got := tk.Advance(5 * time.Millisecond); got != 0 {
		t.Errorf("stall backlog should be dropped, got %d ticks", got)
	}
}

func TestTickerResetAndPeriod(t *testing.T) {
	tk := NewTicker(0)
	if tk.Period() != time.Millisecond {
		t.Errorf("period = %v, want 1ms minimum", tk.Period())
	}

	tk.SetPeriod(100 * time.Millisecond)
	tk.Advance(90 * time.Millisecond)
	tk.Reset()
	if got := tk.Advance(20 * time.Millisecond); got != 0 {
		t.Errorf("Advance after Reset = %d, want 0", got)
	}
}
