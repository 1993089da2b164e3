package racer

// collisionResult summarizes one collision pass.
type collisionResult struct {
	remaining []Entity
	crashed   bool
	crashedID uint64
	consumed  int // rewards removed this pass
}

// resolveCollisions tests the player's hitbox against every entity.
// Overlapping rewards are consumed. Overlapping obstacles end the run and
// stay in the list so the final frame shows what was hit. The whole list is
// always scanned, so an obstacle wins regardless of entity order.
func resolveCollisions(f Field, lane int, entities []Entity) collisionResult {
	player := f.PlayerHitbox(lane)
	res := collisionResult{}

	kept := entities[:0]
	for _, e := range entities {
		if !player.Overlaps(f.Hitbox(e.Lane, e.Y)) {
			kept = append(kept, e)
			continue
		}
		switch e.Kind {
		case KindObstacle:
			if !res.crashed {
				res.crashedID = e.ID
			}
			res.crashed = true
			kept = append(kept, e)
		case KindReward:
			res.consumed++
		}
	}
	res.remaining = kept
	return res
}
