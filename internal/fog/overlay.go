package fog

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/paulmach/orb"
)

// MapSurface is the overlay's view of the host map: current viewport
// geometry plus change notifications. geomap.Camera satisfies it.
type MapSurface interface {
	// ViewSize is the viewport in logical pixels.
	ViewSize() (w, h int)
	// DeviceScale is the device-to-logical pixel ratio.
	DeviceScale() float64
	// Project maps a geographic position to logical screen pixels.
	Project(lat, lng float64) (x, y float64)
	// GeoBounds is the geographic rectangle currently on screen.
	GeoBounds() orb.Bound
	// Subscribe registers a viewport-change callback and returns its
	// release func.
	Subscribe(fn func()) (cancel func())
}

// fogColor is the uniform mask everything unexplored sits under. The
// fog look is product identity, not a theme setting.
var fogColor = color.RGBA{R: 16, G: 20, B: 28, A: 237}

// cullMarginCells pads the viewport bounds before culling so torches of
// cells just off screen still bleed in instead of popping.
const cullMarginCells = 2

// Overlay is the fog layer: a retained raster sized to the device-pixel
// viewport, repainted on every viewport or explored-set change, and
// blitted over the map each frame. It sits above the base tiles and
// below markers.
type Overlay struct {
	surface  MapSurface
	cancel   func()
	explored *ExploredSet
	raster   *ebiten.Image
	torch    *ebiten.Image
}

func NewOverlay() *Overlay {
	return &Overlay{}
}

// Attach starts tracking the surface and paints the first fog frame.
// An already-attached overlay detaches first.
func (o *Overlay) Attach(s MapSurface) {
	o.Detach()
	o.surface = s
	o.cancel = s.Subscribe(o.repaint)
	o.repaint()
}

// Detach releases the viewport subscription and drops the raster. Safe
// to call repeatedly or before any Attach.
func (o *Overlay) Detach() {
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	o.surface = nil
	o.raster = nil
}

// SetExplored swaps in the set the fog is cut from and repaints
// immediately. The overlay only ever reads the set.
func (o *Overlay) SetExplored(set *ExploredSet) {
	o.explored = set
	o.repaint()
}

// Draw blits the retained raster at the map's screen origin. The erase
// blending used during repaint never leaks here, so layers drawn after
// the fog are unaffected.
func (o *Overlay) Draw(dst *ebiten.Image) {
	if o.raster == nil {
		return
	}
	dst.DrawImage(o.raster, nil)
}

// repaint rebuilds the raster from scratch: size it to the device-pixel
// viewport, flood it with fog, then erase one soft torch per visible
// explored cell. Runs synchronously inside the event that triggered it
// and is a no-op while unattached.
func (o *Overlay) repaint() {
	if o.surface == nil {
		return
	}
	w, h := o.surface.ViewSize()
	scale := o.surface.DeviceScale()
	if scale <= 0 {
		scale = 1
	}
	pw := int(math.Round(float64(w) * scale))
	ph := int(math.Round(float64(h) * scale))
	if pw <= 0 || ph <= 0 {
		o.raster = nil
		return
	}
	if o.raster == nil || o.raster.Bounds().Dx() != pw || o.raster.Bounds().Dy() != ph {
		o.raster = ebiten.NewImage(pw, ph)
	}
	o.raster.Fill(fogColor)
	if o.explored == nil || o.explored.Size() == 0 {
		return
	}
	if o.torch == nil {
		o.torch = ebiten.NewImageFromImage(newTorchMask(torchMaskSize))
	}
	for _, id := range visibleCells(o.explored, o.surface.GeoBounds(), cullMarginCells) {
		bounds, err := CellBoundsOf(id)
		if err != nil {
			continue
		}
		cx, cy, radius := torchRect(bounds, o.surface.Project)
		if radius <= 0 {
			continue
		}
		op := &ebiten.DrawImageOptions{
			Blend:  ebiten.BlendDestinationOut,
			Filter: ebiten.FilterLinear,
		}
		side := 2 * radius
		op.GeoM.Scale(side/torchMaskSize, side/torchMaskSize)
		op.GeoM.Translate(cx-radius, cy-radius)
		op.GeoM.Scale(scale, scale)
		o.raster.DrawImage(o.torch, op)
	}
}

// visibleCells filters the set down to cells whose bounds touch the
// view padded by marginCells steps; the repaint erases exactly these.
// Keeping the cull separate from the draw keeps per-event cost
// proportional to visible cells, not total explored cells.
func visibleCells(set *ExploredSet, view orb.Bound, marginCells int) []CellID {
	padded := expandBound(view, marginCells)
	var out []CellID
	set.Each(func(id CellID) {
		b, err := CellBoundsOf(id)
		if err != nil {
			return
		}
		if b.Intersects(padded) {
			out = append(out, id)
		}
	})
	return out
}

// expandBound pads a geographic bound by n cell steps per axis. The
// longitude pad follows the bound's mid latitude so the margin stays
// roughly square on screen.
func expandBound(b orb.Bound, cells int) orb.Bound {
	n := float64(cells)
	dLat := n * latStep
	dLng := n * lngStepAt(b.Center()[1])
	return orb.Bound{
		Min: orb.Point{b.Min[0] - dLng, b.Min[1] - dLat},
		Max: orb.Point{b.Max[0] + dLng, b.Max[1] + dLat},
	}
}

// torchRect projects a cell's bounds to screen space and derives its
// erase circle: the rectangle's center plus a radius of
// torchRadiusFactor × the larger projected edge. The 2r quad the mask
// is drawn into therefore always contains both the gradient and the
// cell's own footprint.
func torchRect(b orb.Bound, project func(lat, lng float64) (x, y float64)) (cx, cy, radius float64) {
	x0, y0 := project(b.Max[1], b.Min[0]) // northwest corner: top-left on screen
	x1, y1 := project(b.Min[1], b.Max[0]) // southeast corner: bottom-right
	w := x1 - x0
	h := y1 - y0
	cx = x0 + w/2
	cy = y0 + h/2
	radius = torchRadiusFactor * math.Max(w, h)
	return cx, cy, radius
}
