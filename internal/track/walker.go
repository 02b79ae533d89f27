package track

import (
	"math"
	"math/rand"
)

const (
	metersPerDegLat = 111320.0

	defaultSpeedMPS = 1.5
	defaultRoamM    = 400.0

	// arriveEpsilonM is how close counts as reaching a waypoint.
	arriveEpsilonM = 1.5
)

// Walker is a deterministic random-waypoint wanderer standing in for a
// GPS feed: pick a point inside the roam disk around home, walk there
// at a fixed speed, pick the next.
type Walker struct {
	rng *rand.Rand

	lat, lng         float64
	homeLat, homeLng float64

	speedMPS float64
	roamM    float64

	targetLat float64
	targetLng float64
	hasTarget bool
}

type WalkerOption func(*Walker)

func WithSeed(seed int64) WalkerOption {
	return func(w *Walker) { w.rng = rand.New(rand.NewSource(seed)) }
}

func WithSpeedMPS(v float64) WalkerOption {
	return func(w *Walker) {
		if v > 0 {
			w.speedMPS = v
		}
	}
}

func WithRoamRadiusM(v float64) WalkerOption {
	return func(w *Walker) {
		if v > 0 {
			w.roamM = v
		}
	}
}

func NewWalker(lat, lng float64, opts ...WalkerOption) *Walker {
	w := &Walker{
		lat:      lat,
		lng:      lng,
		homeLat:  lat,
		homeLng:  lng,
		speedMPS: defaultSpeedMPS,
		roamM:    defaultRoamM,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.rng == nil {
		w.rng = rand.New(rand.NewSource(1))
	}
	return w
}

func (w *Walker) Position() (lat, lng float64) { return w.lat, w.lng }

// Teleport drops the walker at a new position and re-anchors the roam
// disk there.
func (w *Walker) Teleport(lat, lng float64) {
	w.lat, w.lng = lat, lng
	w.homeLat, w.homeLng = lat, lng
	w.hasTarget = false
}

// Step advances the walk by dt seconds and returns the new position.
// Waypoints are consumed mid-step when the travel budget crosses them.
func (w *Walker) Step(dt float64) (lat, lng float64) {
	if dt <= 0 {
		return w.lat, w.lng
	}
	remainM := w.speedMPS * dt
	for hops := 0; hops < 8 && remainM > 0; hops++ {
		if !w.hasTarget {
			w.pickWaypoint()
		}
		northM := (w.targetLat - w.lat) * metersPerDegLat
		eastM := (w.targetLng - w.lng) * metersPerDegLat * math.Cos(w.lat*math.Pi/180)
		distM := math.Hypot(eastM, northM)
		if distM <= remainM {
			w.lat, w.lng = w.targetLat, w.targetLng
			w.hasTarget = false
			remainM -= distM
			continue
		}
		f := remainM / distM
		w.lat += (w.targetLat - w.lat) * f
		w.lng += (w.targetLng - w.lng) * f
		remainM = 0
		if distM*(1-f) < arriveEpsilonM {
			w.hasTarget = false
		}
	}
	return w.lat, w.lng
}

// pickWaypoint draws a target uniformly from the roam disk around home.
func (w *Walker) pickWaypoint() {
	r := w.roamM * math.Sqrt(w.rng.Float64())
	theta := 2 * math.Pi * w.rng.Float64()
	northM := r * math.Sin(theta)
	eastM := r * math.Cos(theta)
	w.targetLat = w.homeLat + northM/metersPerDegLat
	w.targetLng = w.homeLng + eastM/(metersPerDegLat*math.Cos(w.homeLat*math.Pi/180))
	w.hasTarget = true
}
