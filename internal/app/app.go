package app

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"fogwalk/internal/fog"
	"fogwalk/internal/geomap"
	"fogwalk/internal/track"
)

const (
	startZoom = 16.0

	// walkDt matches the 60 TPS tick so the walker covers real seconds.
	walkDt = 1.0 / 60.0

	revealEveryTicks   = 15
	trailEveryTicks    = 6
	coverageEveryTicks = 30

	trailCap      = 900
	trailMaxSegPx = 300.0
)

var (
	trailColor      = color.RGBA{90, 200, 255, 140}
	walkerColor     = color.RGBA{80, 220, 120, 255}
	walkerRimColor  = color.RGBA{235, 240, 245, 255}
	noteColor       = color.RGBA{255, 170, 60, 255}
	noteRimColor    = color.RGBA{40, 30, 12, 255}
	noteLabelOffset = 8.0
)

// App wires the subsystems into the ebiten game loop: camera and tiles
// under a fog overlay, a simulated walker feeding the reveal engine,
// notes and HUD on top.
type App struct {
	cfg      Config
	cam      *geomap.Camera
	tiles    *geomap.TileLayer
	explored *fog.ExploredSet
	engine   *fog.Engine
	overlay  *fog.Overlay
	walker   *track.Walker
	trail    *track.Trail
	notes    *Notes
	hud      *HUD

	tick        int
	autoWalk    bool
	coveragePct int
	drag        dragState
}

func New(cfg Config) (*App, error) {
	hud, err := newHUD()
	if err != nil {
		return nil, err
	}

	store := fog.NewStore(cfg.ExploredPath())
	explored := store.Load()
	cam := geomap.NewCamera(cfg.StartLat, cfg.StartLng, startZoom)

	a := &App{
		cfg:      cfg,
		cam:      cam,
		tiles:    geomap.NewTileLayer(cfg.TileURL, cfg.Offline),
		explored: explored,
		engine:   fog.NewEngine(store, fog.DefaultRevealRadius),
		overlay:  fog.NewOverlay(),
		walker:   track.NewWalker(cfg.StartLat, cfg.StartLng, track.WithSeed(time.Now().UnixNano())),
		trail:    track.NewTrail(trailCap),
		notes:    LoadNotes(cfg.NotesPath()),
		hud:      hud,
	}
	a.overlay.SetExplored(explored)
	a.overlay.Attach(cam)
	a.refreshCoverage()
	return a, nil
}

func (a *App) Update() error {
	a.tick++
	a.handleInput()

	if a.autoWalk {
		lat, lng := a.walker.Step(walkDt)
		if a.tick%trailEveryTicks == 0 {
			a.trail.Push(lat, lng)
		}
		if a.tick%revealEveryTicks == 0 {
			if a.engine.RevealAt(lat, lng, a.explored) {
				a.overlay.SetExplored(a.explored)
			}
		}
	}
	if a.tick%coverageEveryTicks == 0 {
		a.refreshCoverage()
	}
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	a.tiles.Draw(screen, a.cam)
	a.overlay.Draw(screen)
	a.drawTrail(screen)
	a.drawNotes(screen)
	a.drawWalker(screen)

	a.hud.Draw(screen, a.cam.DeviceScale(), a.tick, hudInfo{
		CoveragePct: a.coveragePct,
		Cells:       a.explored.Size(),
		Notes:       a.notes.Len(),
		Zoom:        a.cam.Zoom(),
		AutoWalk:    a.autoWalk,
		Pending:     a.tiles.Pending(),
	})
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("TPS %.0f  zoom %.1f", ebiten.ActualTPS(), a.cam.Zoom()),
		4, screen.Bounds().Dy()-16)
}

// Layout feeds the window geometry into the camera and renders at full
// device resolution.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := ebiten.Monitor().DeviceScaleFactor()
	a.cam.SetDeviceScale(scale)
	a.cam.SetViewSize(outsideWidth, outsideHeight)
	return int(float64(outsideWidth) * scale), int(float64(outsideHeight) * scale)
}

func (a *App) refreshCoverage() {
	lat, lng := a.walker.Position()
	a.coveragePct = fog.Coverage(a.explored, lat, lng, hudCoverageRadiusM)
}

func (a *App) drawTrail(screen *ebiten.Image) {
	pts := a.trail.Points()
	if len(pts) < 2 {
		return
	}
	s := a.cam.DeviceScale()
	px, py := a.cam.Project(pts[0].Lat, pts[0].Lng)
	for _, p := range pts[1:] {
		x, y := a.cam.Project(p.Lat, p.Lng)
		// A teleport leaves a screen-length jump; don't draw it.
		if math.Hypot(x-px, y-py) <= trailMaxSegPx {
			vector.StrokeLine(screen,
				float32(px*s), float32(py*s), float32(x*s), float32(y*s),
				float32(2*s), trailColor, true)
		}
		px, py = x, y
	}
}

func (a *App) drawNotes(screen *ebiten.Image) {
	s := a.cam.DeviceScale()
	for _, note := range a.notes.Items() {
		x, y := a.cam.Project(note.Lat, note.Lng)
		vector.FillCircle(screen, float32(x*s), float32(y*s), float32(5*s), noteColor, true)
		vector.StrokeCircle(screen, float32(x*s), float32(y*s), float32(5*s), float32(s), noteRimColor, true)
		a.hud.DrawLabel(screen, note.Label, (x+noteLabelOffset)*s, (y-noteLabelOffset)*s, s)
	}
}

func (a *App) drawWalker(screen *ebiten.Image) {
	s := a.cam.DeviceScale()
	lat, lng := a.walker.Position()
	x, y := a.cam.Project(lat, lng)
	vector.FillCircle(screen, float32(x*s), float32(y*s), float32(6*s), walkerColor, true)
	vector.StrokeCircle(screen, float32(x*s), float32(y*s), float32(6*s), float32(1.5*s), walkerRimColor, true)
}
