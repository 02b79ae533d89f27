package fog

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

const (
	// cellSizeMeters is the nominal edge of one grid cell. Latitude
	// degrees per meter are treated as a fixed constant; longitude
	// degrees widen toward the poles.
	cellSizeMeters  = 50.0
	metersPerDegLat = 111320.0

	// latStep is the cell height in degrees, identical at every latitude.
	latStep = cellSizeMeters / metersPerDegLat

	// maxGridLat keeps the grid away from the poles, where the longitude
	// step degenerates (cos → 0).
	maxGridLat = 85.0

	// keyDecimals fixes the key text precision. Six decimals is well
	// below the cell size, so float noise at the call site can never
	// produce two different keys for the same location.
	keyDecimals = 6
)

// CellID identifies one grid cell: the southwest corner as "lat,lng",
// both fixed to six decimal places.
type CellID string

func clampLat(lat float64) float64 {
	if lat > maxGridLat {
		return maxGridLat
	}
	if lat < -maxGridLat {
		return -maxGridLat
	}
	return lat
}

// lngStepAt is the cell width in degrees for the latitude band that
// contains lat.
func lngStepAt(lat float64) float64 {
	return latStep / math.Cos(clampLat(lat)*math.Pi/180.0)
}

// CellKeyAt quantizes a position to the cell containing it. Latitude
// floors to a fixed step; longitude floors to the step of the quantized
// latitude band, so every point inside a cell keys identically.
func CellKeyAt(lat, lng float64) CellID {
	south := math.Floor(clampLat(lat)/latStep) * latStep
	step := lngStepAt(south)
	west := math.Floor(lng/step) * step
	return CellID(formatCoord(south) + "," + formatCoord(west))
}

// CellBoundsOf is the exact inverse of CellKeyAt's quantization: it
// parses the southwest corner back out of the key, snaps it onto the
// grid, and extends it by one step per axis. orb points are lng-first.
func CellBoundsOf(id CellID) (orb.Bound, error) {
	south, west, err := parseCellID(id)
	if err != nil {
		return orb.Bound{}, err
	}
	return orb.Bound{
		Min: orb.Point{west, south},
		Max: orb.Point{west + lngStepAt(south), south + latStep},
	}, nil
}

func parseCellID(id CellID) (south, west float64, err error) {
	latPart, lngPart, ok := strings.Cut(string(id), ",")
	if !ok {
		return 0, 0, fmt.Errorf("fog: malformed cell id %q", id)
	}
	south, err = strconv.ParseFloat(latPart, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("fog: bad latitude in cell id %q: %w", id, err)
	}
	west, err = strconv.ParseFloat(lngPart, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("fog: bad longitude in cell id %q: %w", id, err)
	}
	if math.Abs(south) > maxGridLat || math.Abs(west) > 360 {
		return 0, 0, fmt.Errorf("fog: cell id %q out of range", id)
	}
	// The key text carries six decimals, so the parsed corner sits up to
	// 5e-7 degrees off the grid. That is far under half a step, so
	// snapping to the nearest multiple recovers the corner CellKeyAt
	// floored to, bit for bit.
	south = math.Round(south/latStep) * latStep
	step := lngStepAt(south)
	west = math.Round(west/step) * step
	return south, west, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', keyDecimals, 64)
}
