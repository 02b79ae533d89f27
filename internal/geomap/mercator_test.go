package geomap

import (
	"math"
	"testing"
)

func TestProjectWorld_OriginAtZoomZero(t *testing.T) {
	x, y := projectWorld(0, 0, 0)
	if x != 128 || y != 128 {
		t.Fatalf("equator/meridian at zoom 0 should sit at plane center, got (%v, %v)", x, y)
	}
}

func TestProjectWorld_RoundTrip(t *testing.T) {
	points := []struct {
		name     string
		lat, lng float64
	}{
		{"sofia", 42.6977, 23.3219},
		{"sydney", -33.8688, 151.2093},
		{"reykjavik", 64.1466, -21.9426},
		{"quito", -0.1807, -78.4678},
		{"null island", 0, 0},
	}
	for _, z := range []float64{3, 10, 16, 19} {
		for _, p := range points {
			x, y := projectWorld(p.lat, p.lng, z)
			lat, lng := unprojectWorld(x, y, z)
			if math.Abs(lat-p.lat) > 1e-9 || math.Abs(lng-p.lng) > 1e-9 {
				t.Fatalf("%s at zoom %v: round trip drifted to (%v, %v)", p.name, z, lat, lng)
			}
		}
	}
}

func TestProjectWorld_ClampsPolarLatitudes(t *testing.T) {
	s := worldSize(4)
	_, yN := projectWorld(89, 0, 4)
	_, yS := projectWorld(-89, 0, 4)
	if math.IsNaN(yN) || math.IsNaN(yS) {
		t.Fatalf("polar projection produced NaN")
	}
	// Float residue can land a hair past the plane edge.
	if yN < -1e-6 || yN > 1 {
		t.Fatalf("north clamp should project to the top edge, got y=%v", yN)
	}
	if yS < s-1 || yS > s+1e-6 {
		t.Fatalf("south clamp should project to the bottom edge, got y=%v (plane %v)", yS, s)
	}
}

func TestTileRange_KnownSofiaTiles(t *testing.T) {
	x, y := projectWorld(42.6977, 23.3219, 1)
	tx, ty, _, _ := tileRange(x, y, x, y, 1)
	if tx != 1 || ty != 0 {
		t.Fatalf("Sofia at zoom 1 should be in tile (1,0), got (%d,%d)", tx, ty)
	}

	x, y = projectWorld(42.6977, 23.3219, 16)
	tx, ty, _, _ = tileRange(x, y, x, y, 16)
	if tx != 37013 || ty != 24156 {
		t.Fatalf("Sofia at zoom 16 should be in tile (37013,24156), got (%d,%d)", tx, ty)
	}
}

func TestTileRange_CoversWholePyramidRow(t *testing.T) {
	s := worldSize(1)
	tx0, ty0, tx1, ty1 := tileRange(0, 0, s-0.5, s-0.5, 1)
	if tx0 != 0 || ty0 != 0 || tx1 != 1 || ty1 != 1 {
		t.Fatalf("full plane at zoom 1 should span tiles (0,0)..(1,1), got (%d,%d)..(%d,%d)", tx0, ty0, tx1, ty1)
	}
}

func TestTileRange_ClampsOutsidePlane(t *testing.T) {
	s := worldSize(2)
	tx0, ty0, tx1, ty1 := tileRange(-500, -500, s+500, s+500, 2)
	if tx0 != 0 || ty0 != 0 {
		t.Fatalf("range start should clamp to tile 0, got (%d,%d)", tx0, ty0)
	}
	if tx1 != 3 || ty1 != 3 {
		t.Fatalf("range end should clamp to tile 3 at zoom 2, got (%d,%d)", tx1, ty1)
	}
}

func TestClampZoom_Range(t *testing.T) {
	if got := clampZoom(25); got != MaxZoom {
		t.Fatalf("zoom above ceiling should clamp to %v, got %v", MaxZoom, got)
	}
	if got := clampZoom(0); got != MinZoom {
		t.Fatalf("zoom below floor should clamp to %v, got %v", MinZoom, got)
	}
	if got := clampZoom(12.5); got != 12.5 {
		t.Fatalf("in-range zoom should pass through, got %v", got)
	}
}
