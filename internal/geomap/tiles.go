package geomap

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	_ "image/jpeg"
	_ "image/png"
)

const (
	tileCacheCap     = 512
	maxTileFetches   = 8
	tileFetchTimeout = 10 * time.Second
	tileUserAgent    = "fogwalk/1.0 (+https://github.com/fogwalk/fogwalk)"
)

// tileSlot tracks one tile through its life: queued, fetching, decoded
// on a worker goroutine, then converted to a GPU image on the draw path.
type tileSlot struct {
	decoded  image.Image
	img      *ebiten.Image
	fetching bool
	failed   bool
}

// TileLayer draws slippy-map raster tiles through a Camera. Fetches run
// on background goroutines; until a tile arrives (or when it fails, or
// offline) a procedural placeholder keeps the plane covered.
type TileLayer struct {
	urlTemplate string
	offline     bool
	client      *http.Client

	mu       sync.Mutex
	tiles    map[TileKey]*tileSlot
	order    []TileKey
	inFlight int

	fallback *ebiten.Image
}

func NewTileLayer(urlTemplate string, offline bool) *TileLayer {
	return &TileLayer{
		urlTemplate: urlTemplate,
		offline:     offline,
		client:      &http.Client{Timeout: tileFetchTimeout},
		tiles:       make(map[TileKey]*tileSlot),
	}
}

// Pending reports how many tile fetches are in flight.
func (l *TileLayer) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inFlight
}

// Draw paints every tile overlapping the camera view onto dst. Tiles
// come from the nearest integer zoom and scale to the camera's
// fractional zoom.
func (l *TileLayer) Draw(dst *ebiten.Image, cam *Camera) {
	vw, vh := cam.ViewSize()
	if vw <= 0 || vh <= 0 {
		return
	}
	scale := cam.DeviceScale()

	z := int(math.Round(cam.Zoom()))
	k := worldSize(cam.Zoom()) / worldSize(float64(z))
	wx0, wy0 := cam.worldTopLeft()

	tx0, ty0, tx1, ty1 := tileRange(wx0/k, wy0/k, (wx0+float64(vw))/k, (wy0+float64(vh))/k, z)
	for ty := ty0; ty <= ty1; ty++ {
		for tx := tx0; tx <= tx1; tx++ {
			img := l.tileImage(TileKey{Z: z, X: tx, Y: ty})
			sx := float64(tx*TileSize)*k - wx0
			sy := float64(ty*TileSize)*k - wy0

			op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
			op.GeoM.Scale(k, k)
			op.GeoM.Translate(sx, sy)
			op.GeoM.Scale(scale, scale)
			dst.DrawImage(img, op)
		}
	}
}

// tileImage returns the GPU image for a tile, scheduling a fetch the
// first time the tile is requested. The placeholder fills in until the
// real tile lands.
func (l *TileLayer) tileImage(k TileKey) *ebiten.Image {
	l.mu.Lock()
	defer l.mu.Unlock()

	slot, ok := l.tiles[k]
	if !ok {
		slot = &tileSlot{failed: l.offline}
		l.tiles[k] = slot
		l.order = append(l.order, k)
		l.evictLocked()
	}
	if slot.img != nil {
		return slot.img
	}
	if slot.decoded != nil {
		slot.img = ebiten.NewImageFromImage(slot.decoded)
		slot.decoded = nil
		return slot.img
	}
	if !slot.failed && !slot.fetching && l.inFlight < maxTileFetches {
		slot.fetching = true
		l.inFlight++
		go l.fetch(k)
	}
	return l.fallbackTile()
}

func (l *TileLayer) fetch(k TileKey) {
	img, err := l.download(k)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.inFlight--
	slot := l.tiles[k]
	if slot == nil {
		return
	}
	slot.fetching = false
	if err != nil {
		slot.failed = true
		return
	}
	slot.decoded = img
}

func (l *TileLayer) download(k TileKey) (image.Image, error) {
	req, err := http.NewRequest(http.MethodGet, tileURL(l.urlTemplate, k), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", tileUserAgent)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tile %d/%d/%d: %s", k.Z, k.X, k.Y, resp.Status)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("tile %d/%d/%d: decode: %w", k.Z, k.X, k.Y, err)
	}
	return img, nil
}

// evictLocked drops the oldest idle tiles once the cache passes its
// cap. Tiles still in flight recycle to the back of the queue; their
// fetch result is discarded if they get evicted first.
func (l *TileLayer) evictLocked() {
	for len(l.tiles) > tileCacheCap && len(l.order) > 0 {
		k := l.order[0]
		l.order = l.order[1:]
		slot := l.tiles[k]
		if slot == nil {
			continue
		}
		if slot.fetching {
			l.order = append(l.order, k)
			continue
		}
		delete(l.tiles, k)
	}
}

// fallbackTile is the shared placeholder: a dark slate with a faint
// grid, so unfetched or offline areas still read as a map plane.
func (l *TileLayer) fallbackTile() *ebiten.Image {
	if l.fallback != nil {
		return l.fallback
	}
	img := ebiten.NewImage(TileSize, TileSize)
	img.Fill(color.RGBA{24, 28, 34, 255})
	line := color.RGBA{36, 42, 50, 255}
	for p := 0; p <= TileSize; p += 64 {
		vector.StrokeLine(img, float32(p), 0, float32(p), TileSize, 1, line, false)
		vector.StrokeLine(img, 0, float32(p), TileSize, float32(p), 1, line, false)
	}
	vector.StrokeRect(img, 0.5, 0.5, TileSize-1, TileSize-1, 1, color.RGBA{46, 53, 62, 255}, false)
	l.fallback = img
	return l.fallback
}

func tileURL(template string, k TileKey) string {
	r := strings.NewReplacer(
		"{z}", strconv.Itoa(k.Z),
		"{x}", strconv.Itoa(k.X),
		"{y}", strconv.Itoa(k.Y),
	)
	return r.Replace(template)
}
