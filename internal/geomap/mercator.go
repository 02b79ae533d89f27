package geomap

import "math"

const (
	// TileSize is the pixel edge of one slippy-map tile.
	TileSize = 256

	// MinZoom and MaxZoom clamp the camera to the zoom range raster
	// tile servers actually carry.
	MinZoom = 3.0
	MaxZoom = 19.0

	// maxMercatorLat is where the Web Mercator projection cuts off.
	maxMercatorLat = 85.05112878
)

func clampMercatorLat(lat float64) float64 {
	if lat > maxMercatorLat {
		return maxMercatorLat
	}
	if lat < -maxMercatorLat {
		return -maxMercatorLat
	}
	return lat
}

func clampLng(lng float64) float64 {
	if lng > 180 {
		return 180
	}
	if lng < -180 {
		return -180
	}
	return lng
}

func clampZoom(z float64) float64 {
	if z > MaxZoom {
		return MaxZoom
	}
	if z < MinZoom {
		return MinZoom
	}
	return z
}

// worldSize is the pixel edge of the square world plane at a zoom.
// Fractional zooms give fractional planes; tiles scale to match.
func worldSize(zoom float64) float64 {
	return TileSize * math.Exp2(zoom)
}

// projectWorld maps a geographic position to world-plane pixels, origin
// at the northwest corner of the projection.
func projectWorld(lat, lng, zoom float64) (x, y float64) {
	s := worldSize(zoom)
	rad := clampMercatorLat(lat) * math.Pi / 180
	x = (lng + 180) / 360 * s
	y = (1 - math.Log(math.Tan(rad)+1/math.Cos(rad))/math.Pi) / 2 * s
	return x, y
}

// unprojectWorld inverts projectWorld.
func unprojectWorld(x, y, zoom float64) (lat, lng float64) {
	s := worldSize(zoom)
	lng = x/s*360 - 180
	n := math.Pi - 2*math.Pi*y/s
	lat = 180 / math.Pi * math.Atan(math.Sinh(n))
	return lat, lng
}

// TileKey addresses one raster tile in the pyramid.
type TileKey struct {
	Z, X, Y int
}

// tileRange is the inclusive tile rectangle covering the world-plane
// rect [x0,x1]×[y0,y1] at integer zoom z, clamped to the pyramid.
func tileRange(x0, y0, x1, y1 float64, z int) (tx0, ty0, tx1, ty1 int) {
	n := 1 << uint(z)
	tx0 = clampTileIndex(int(math.Floor(x0/TileSize)), n)
	ty0 = clampTileIndex(int(math.Floor(y0/TileSize)), n)
	tx1 = clampTileIndex(int(math.Floor(x1/TileSize)), n)
	ty1 = clampTileIndex(int(math.Floor(y1/TileSize)), n)
	return tx0, ty0, tx1, ty1
}

func clampTileIndex(v, n int) int {
	if v < 0 {
		return 0
	}
	if v > n-1 {
		return n - 1
	}
	return v
}
