package som

import (
	"math"
	"testing"
)

func TestConstantScheduleNeverDecays(t *testing.T) {
	s := ConstantSchedule{}
	for step := 0; step < 5; step++ {
		if got := s.Value(2.5, step); got != 2.5 {
			t.Errorf("step %d: got %v, want 2.5", step, got)
		}
	}
}

func TestLinearScheduleDecaysToZero(t *testing.T) {
	s := LinearSchedule{End: 10}
	if got := s.Value(1.0, 0); got != 1.0 {
		t.Errorf("step 0: got %v, want 1.0", got)
	}
	if got := s.Value(1.0, 5); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("step 5: got %v, want 0.5", got)
	}
	if got := s.Value(1.0, 10); got != 0 {
		t.Errorf("step 10: got %v, want 0", got)
	}
	if got := s.Value(1.0, 20); got != 0 {
		t.Errorf("step 20 (past End): got %v, want 0", got)
	}
}

func TestExponentialScheduleDecaysMonotonically(t *testing.T) {
	s := ExponentialSchedule{Rate: 0.1}
	prev := s.Value(1.0, 0)
	for step := 1; step < 10; step++ {
		cur := s.Value(1.0, step)
		if cur >= prev {
			t.Fatalf("step %d: value %v did not decrease from %v", step, cur, prev)
		}
		prev = cur
	}
}
