// Package racer implements a lane-based arcade runner: the car holds one of
// a few lanes at the bottom of the field while rewards and obstacles fall
// towards it, faster and faster, until an obstacle hits.
package racer

import (
	"github.com/vovakirdan/lanerush/internal/config"
	"github.com/vovakirdan/lanerush/internal/core"
)

// Kind distinguishes falling entities.
type Kind uint8

const (
	KindReward Kind = iota
	KindObstacle
)

func (k Kind) String() string {
	switch k {
	case KindReward:
		return "reward"
	case KindObstacle:
		return "obstacle"
	default:
		return "unknown"
	}
}

// Phase is the lifecycle stage of a match.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Entity is a falling reward or obstacle. Y is the top edge in field units
// and only grows while the entity is alive.
type Entity struct {
	ID   uint64
	Lane int
	Y    float64
	Kind Kind
}

// Input is the lane-shift state sampled for one tick.
type Input struct {
	Left  bool
	Right bool
}

const (
	inputLeftBit  uint8 = 1 << 0
	inputRightBit uint8 = 1 << 1
)

// Bits packs the input for compact storage.
func (in Input) Bits() uint8 {
	var b uint8
	if in.Left {
		b |= inputLeftBit
	}
	if in.Right {
		b |= inputRightBit
	}
	return b
}

// InputFromBits is the inverse of Input.Bits.
func InputFromBits(b uint8) Input {
	return Input{Left: b&inputLeftBit != 0, Right: b&inputRightBit != 0}
}

// Field is the fixed play area, split into equal-width lanes.
type Field struct {
	Width      float64
	Height     float64
	Lanes      int
	ObjectSize float64
	Inset      float64 // Horizontal hitbox margin inside a lane
	PlayerTop  float64 // Top edge of the player's hitbox
}

// NewField derives the field geometry from config.
func NewField(f config.RacerField) Field {
	return Field{
		Width:      f.Width,
		Height:     f.Height,
		Lanes:      f.Lanes,
		ObjectSize: f.ObjectSize,
		Inset:      f.HitboxInset,
		PlayerTop:  f.Height - f.PlayerOffset,
	}
}

// LaneWidth returns the width of a single lane.
func (f Field) LaneWidth() float64 {
	return f.Width / float64(f.Lanes)
}

// CenterLane is where the player starts.
func (f Field) CenterLane() int {
	return f.Lanes / 2
}

// ClampLane restricts a lane index to the field.
func (f Field) ClampLane(lane int) int {
	return core.Clamp(lane, 0, f.Lanes-1)
}

// Hitbox returns the collision box of an object in the given lane whose top
// edge is at y.
func (f Field) Hitbox(lane int, y float64) core.RectF {
	w := f.LaneWidth()
	return core.RectF{
		Left:   float64(lane)*w + f.Inset,
		Right:  float64(lane+1)*w - f.Inset,
		Top:    y,
		Bottom: y + f.ObjectSize,
	}
}

// PlayerHitbox returns the player's collision box for the given lane.
func (f Field) PlayerHitbox(lane int) core.RectF {
	return f.Hitbox(lane, f.PlayerTop)
}
