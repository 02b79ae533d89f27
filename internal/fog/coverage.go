package fog

import (
	"math"

	"github.com/paulmach/orb"
)

// Coverage estimates how much of the area around a point has been
// explored, as an integer percent in [0, 100]. The region is the
// axis-aligned box radiusMeters out from the center; the denominator is
// the number of cells that would tile that box. Explored cells are
// counted by their stored southwest corner, so grid-versus-circle
// boundary slop is accepted; the clamp keeps overfull boxes at 100.
func Coverage(set *ExploredSet, centerLat, centerLng, radiusMeters float64) int {
	if set == nil || radiusMeters <= 0 {
		return 0
	}
	bound := coverageBound(centerLat, centerLng, radiusMeters)
	// Spans derive from the radius, not from the bound corners: the
	// corner subtraction reintroduces float noise that pushes exact
	// multiples of the step over the next ceil.
	latSpan := 2 * radiusMeters / metersPerDegLat
	lngSpan := latSpan / math.Cos(clampLat(centerLat)*math.Pi/180.0)
	total := math.Ceil(latSpan/latStep) * math.Ceil(lngSpan/lngStepAt(centerLat))
	if total <= 0 {
		return 0
	}
	explored := 0
	set.Each(func(id CellID) {
		south, west, err := parseCellID(id)
		if err != nil {
			return
		}
		if bound.Contains(orb.Point{west, south}) {
			explored++
		}
	})
	pct := int(math.Round(100 * float64(explored) / total))
	if pct > 100 {
		pct = 100
	}
	return pct
}

// coverageBound is the box radiusMeters out from the center. The
// longitude half-span widens with latitude the same way the cell grid
// does.
func coverageBound(centerLat, centerLng, radiusMeters float64) orb.Bound {
	lat := clampLat(centerLat)
	halfLat := radiusMeters / metersPerDegLat
	halfLng := halfLat / math.Cos(lat*math.Pi/180.0)
	return orb.Bound{
		Min: orb.Point{centerLng - halfLng, lat - halfLat},
		Max: orb.Point{centerLng + halfLng, lat + halfLat},
	}
}
