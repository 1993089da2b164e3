package racer

// Autopilot steers away from obstacles approaching the player's lane.
// Headless runs use it to produce long, realistic games.
type Autopilot struct {
	field     Field
	lookahead float64 // How far above the player an obstacle counts as a threat
}

// NewAutopilot creates an autopilot for the given field.
func NewAutopilot(f Field) Autopilot {
	return Autopilot{field: f, lookahead: 3 * f.ObjectSize}
}

// Steer picks the input for the next tick.
func (a Autopilot) Steer(snap Snapshot) Input {
	if snap.Phase != PhaseRunning || !a.threatened(snap, snap.Lane) {
		return Input{}
	}
	for _, d := range [...]int{-1, 1} {
		lane := snap.Lane + d
		if lane < 0 || lane >= a.field.Lanes || a.threatened(snap, lane) {
			continue
		}
		if d < 0 {
			return Input{Left: true}
		}
		return Input{Right: true}
	}
	return Input{}
}

func (a Autopilot) threatened(snap Snapshot, lane int) bool {
	top := a.field.PlayerTop - a.lookahead
	bottom := a.field.PlayerTop + a.field.ObjectSize
	for _, e := range snap.Entities {
		if e.Kind != KindObstacle || e.Lane != lane {
			continue
		}
		if e.Y+a.field.ObjectSize >= top && e.Y <= bottom {
			return true
		}
	}
	return false
}
