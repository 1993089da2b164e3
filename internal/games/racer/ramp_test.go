package racer

import (
	"math"
	"testing"
)

func TestRampLinear(t *testing.T) {
	r := NewRamp(5, 0.0005)

	if r.Speed() != 5 {
		t.Fatalf("initial Speed() = %f, expected 5", r.Speed())
	}
	r.Advance(1000)
	if math.Abs(r.Speed()-5.5) > 1e-9 {
		t.Errorf("Speed() after 1000ms = %f, expected 5.5", r.Speed())
	}
	r.Advance(-500)
	if math.Abs(r.Speed()-5.5) > 1e-9 {
		t.Errorf("negative delta should not change speed, got %f", r.Speed())
	}
	r.Reset()
	if r.Speed() != 5 {
		t.Errorf("Speed() after Reset = %f, expected 5", r.Speed())
	}
}

func TestRampFrameRateIndependent(t *testing.T) {
	slow := NewRamp(5, 0.0005)
	fast := NewRamp(5, 0.0005)

	// 30 fps vs 240 fps over the same 12 seconds
	for i := 0; i < 360; i++ {
		slow.Advance(1000.0 / 30)
	}
	for i := 0; i < 2880; i++ {
		fast.Advance(1000.0 / 240)
	}

	if math.Abs(slow.Speed()-fast.Speed()) > 1e-6 {
		t.Errorf("speed depends on frame rate: 30fps=%f, 240fps=%f", slow.Speed(), fast.Speed())
	}
	if math.Abs(slow.Speed()-11) > 1e-6 {
		t.Errorf("Speed() after 12s = %f, expected 11", slow.Speed())
	}
}
