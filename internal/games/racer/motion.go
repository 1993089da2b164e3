package racer

// advanceEntities moves every entity down by dy and drops those that left
// the field. The slice is filtered in place. Returns the survivors and how
// many were dropped.
func advanceEntities(entities []Entity, dy, height float64) ([]Entity, int) {
	kept := entities[:0]
	dropped := 0
	for _, e := range entities {
		e.Y += dy
		if e.Y >= height {
			dropped++
			continue
		}
		kept = append(kept, e)
	}
	return kept, dropped
}
