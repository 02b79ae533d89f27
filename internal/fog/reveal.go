package fog

import (
	"log"
	"math"
)

// DefaultRevealRadius is the brush radius in whole cells around the
// visited cell. Two cells reaches roughly 100 m out from a 50 m cell.
const DefaultRevealRadius = 2

// RevealCells returns the brush around a position: the cell containing
// it plus every cell at grid offset (dx, dy) with dx²+dy² ≤ radius²+1.
// The +1 over-fills the rim compared to a strict disk; it is a tuned
// constant, not circle math, and changing it changes the product look.
// Duplicate keys from band edges are filtered; order is row-major.
func RevealCells(lat, lng float64, radius int) []CellID {
	if radius < 0 {
		radius = 0
	}
	south := math.Floor(clampLat(lat)/latStep) * latStep
	step := lngStepAt(south)
	west := math.Floor(lng/step) * step
	centerLat := south + latStep/2
	centerLng := west + step/2

	limit := radius*radius + 1
	side := 2*radius + 1
	out := make([]CellID, 0, side*side)
	seen := make(map[CellID]struct{}, side*side)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > limit {
				continue
			}
			id := CellKeyAt(centerLat+float64(dy)*latStep, centerLng+float64(dx)*step)
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

// Engine turns position samples into explored cells and keeps the
// persisted copy in step with the in-memory set.
type Engine struct {
	store  *Store
	radius int
}

// NewEngine builds a reveal engine. store may be nil for purely
// in-memory sessions; radius <= 0 selects DefaultRevealRadius.
func NewEngine(store *Store, radius int) *Engine {
	if radius <= 0 {
		radius = DefaultRevealRadius
	}
	return &Engine{store: store, radius: radius}
}

// RevealAt marks every brush cell around the position as explored and
// reports whether the set grew. Only a grown set is persisted, and the
// write happens synchronously before returning. A failed write is
// logged and dropped: fog memory is best-effort and must never reach
// the caller as an error or corrupt the in-memory state.
func (e *Engine) RevealAt(lat, lng float64, set *ExploredSet) bool {
	changed := false
	for _, id := range RevealCells(lat, lng, e.radius) {
		if set.Has(id) {
			continue
		}
		set.add(id)
		changed = true
	}
	if changed && e.store != nil {
		if err := e.store.Save(set); err != nil {
			log.Printf("fog: persist explored set: %v", err)
		}
	}
	return changed
}
