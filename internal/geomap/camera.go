package geomap

import "github.com/paulmach/orb"

// Camera is the viewport over the world map: a geographic center, a
// fractional zoom, and a view size in logical pixels. Everything that
// draws in screen space projects through it, and anything that caches
// screen-space state subscribes to hear when the viewport moves.
type Camera struct {
	lat, lng float64
	zoom     float64
	viewW    int
	viewH    int
	scale    float64

	nextSub int
	subs    map[int]func()
}

func NewCamera(lat, lng, zoom float64) *Camera {
	return &Camera{
		lat:   clampMercatorLat(lat),
		lng:   clampLng(lng),
		zoom:  clampZoom(zoom),
		scale: 1,
		subs:  make(map[int]func()),
	}
}

func (c *Camera) Center() (lat, lng float64) { return c.lat, c.lng }
func (c *Camera) Zoom() float64              { return c.zoom }

// ViewSize reports the viewport in logical pixels.
func (c *Camera) ViewSize() (w, h int) { return c.viewW, c.viewH }

// DeviceScale reports the device pixel ratio of the backing surface.
func (c *Camera) DeviceScale() float64 { return c.scale }

func (c *Camera) SetViewSize(w, h int) {
	if w == c.viewW && h == c.viewH {
		return
	}
	c.viewW, c.viewH = w, h
	c.notify()
}

func (c *Camera) SetDeviceScale(s float64) {
	if s <= 0 || s == c.scale {
		return
	}
	c.scale = s
	c.notify()
}

func (c *Camera) CenterOn(lat, lng float64) {
	lat, lng = clampMercatorLat(lat), clampLng(lng)
	if lat == c.lat && lng == c.lng {
		return
	}
	c.lat, c.lng = lat, lng
	c.notify()
}

func (c *Camera) SetZoom(z float64) {
	z = clampZoom(z)
	if z == c.zoom {
		return
	}
	c.zoom = z
	c.notify()
}

// PanPixels shifts the center by a logical-pixel delta. Positive dx
// moves the view east, positive dy moves it south.
func (c *Camera) PanPixels(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	cx, cy := projectWorld(c.lat, c.lng, c.zoom)
	lat, lng := unprojectWorld(cx+dx, cy+dy, c.zoom)
	c.lat, c.lng = clampMercatorLat(lat), clampLng(lng)
	c.notify()
}

// ZoomAround changes zoom by dz while keeping the geography under the
// given screen point fixed, so wheel zoom anchors at the cursor.
func (c *Camera) ZoomAround(x, y, dz float64) {
	z := clampZoom(c.zoom + dz)
	if z == c.zoom {
		return
	}
	anchorLat, anchorLng := c.Unproject(x, y)
	c.zoom = z
	ax, ay := projectWorld(anchorLat, anchorLng, c.zoom)
	cx := ax - (x - float64(c.viewW)/2)
	cy := ay - (y - float64(c.viewH)/2)
	lat, lng := unprojectWorld(cx, cy, c.zoom)
	c.lat, c.lng = clampMercatorLat(lat), clampLng(lng)
	c.notify()
}

// Project maps a geographic position to logical screen pixels.
func (c *Camera) Project(lat, lng float64) (x, y float64) {
	wx, wy := projectWorld(lat, lng, c.zoom)
	cx, cy := projectWorld(c.lat, c.lng, c.zoom)
	return wx - cx + float64(c.viewW)/2, wy - cy + float64(c.viewH)/2
}

// Unproject maps logical screen pixels back to a geographic position.
func (c *Camera) Unproject(x, y float64) (lat, lng float64) {
	cx, cy := projectWorld(c.lat, c.lng, c.zoom)
	return unprojectWorld(cx+x-float64(c.viewW)/2, cy+y-float64(c.viewH)/2, c.zoom)
}

// GeoBounds is the geographic rectangle currently in view.
func (c *Camera) GeoBounds() orb.Bound {
	north, west := c.Unproject(0, 0)
	south, east := c.Unproject(float64(c.viewW), float64(c.viewH))
	return orb.Bound{Min: orb.Point{west, south}, Max: orb.Point{east, north}}
}

// Subscribe registers a viewport-change callback and returns a release
// func. Releasing twice is harmless. Callbacks run synchronously on
// the mutating call, in no particular order.
func (c *Camera) Subscribe(fn func()) (cancel func()) {
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() { delete(c.subs, id) }
}

func (c *Camera) notify() {
	for _, fn := range c.subs {
		fn()
	}
}

// worldTopLeft is the world-plane position of the screen origin.
func (c *Camera) worldTopLeft() (x, y float64) {
	cx, cy := projectWorld(c.lat, c.lng, c.zoom)
	return cx - float64(c.viewW)/2, cy - float64(c.viewH)/2
}
