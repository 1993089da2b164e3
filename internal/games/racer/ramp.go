package racer

// Ramp raises the fall speed linearly with elapsed time. Integrating the
// frame delta (not the frame count) keeps speed(t) = initial + rate*t on any
// refresh rate.
type Ramp struct {
	initial float64
	rate    float64 // speed per millisecond
	speed   float64
}

// NewRamp creates a ramp starting at initial speed.
func NewRamp(initial, rate float64) Ramp {
	return Ramp{initial: initial, rate: rate, speed: initial}
}

// Reset returns to the initial speed.
func (r *Ramp) Reset() {
	r.speed = r.initial
}

// Advance adds rate*dtMs and returns the new speed. Negative deltas are ignored.
func (r *Ramp) Advance(dtMs float64) float64 {
	if dtMs > 0 {
		r.speed += r.rate * dtMs
	}
	return r.speed
}

// Speed returns the current speed.
func (r Ramp) Speed() float64 {
	return r.speed
}
