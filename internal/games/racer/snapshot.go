package racer

import "time"

// Snapshot is a read-only copy of the match state, enough to render a frame
// or to compare two runs.
type Snapshot struct {
	Tick     uint64
	Phase    Phase
	Score    int
	Lane     int
	Speed    float64
	Elapsed  time.Duration
	NextID   uint64
	Entities []Entity
}

// Snapshot returns the current state. The entity slice is a copy.
func (m *Match) Snapshot() Snapshot {
	entities := make([]Entity, len(m.entities))
	copy(entities, m.entities)

	return Snapshot{
		Tick:     m.ticks,
		Phase:    m.phase,
		Score:    m.score,
		Lane:     m.lane,
		Speed:    m.ramp.Speed(),
		Elapsed:  m.elapsed,
		NextID:   m.nextID,
		Entities: entities,
	}
}

// Entity returns the live entity with the given ID.
func (s Snapshot) Entity(id uint64) (Entity, bool) {
	for _, e := range s.Entities {
		if e.ID == id {
			return e, true
		}
	}
	return Entity{}, false
}
