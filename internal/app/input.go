package app

import (
	"fmt"
	"math"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	panPixelsPerTick  = 8.0
	wheelZoomStep     = 0.25
	dragThresholdPx   = 4.0
	noteDeleteRangePx = 24.0
)

// dragState separates drag-pans from click-reveals: a press only counts
// as a click if the cursor never left the drag threshold.
type dragState struct {
	active bool
	moved  bool
	startX float64
	startY float64
	lastX  float64
	lastY  float64
}

func (a *App) handleInput() {
	a.handleKeys()
	a.handleWheel()
	a.handleMouse()
}

func (a *App) handleKeys() {
	var dx, dy float64
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dy -= panPixelsPerTick
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dy += panPixelsPerTick
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dx -= panPixelsPerTick
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dx += panPixelsPerTick
	}
	if dx != 0 || dy != 0 {
		a.cam.PanPixels(dx, dy)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		a.autoWalk = !a.autoWalk
		if a.autoWalk {
			a.hud.SetStatus(a.tick, "auto-walk on")
		} else {
			a.hud.SetStatus(a.tick, "auto-walk off")
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		lat, lng := a.walker.Position()
		a.cam.CenterOn(lat, lng)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		a.dropNoteAtCursor()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		a.deleteNoteNearCursor()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		a.copyCursorCoords()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		a.hud.Toggle()
	}
}

func (a *App) handleWheel() {
	_, wy := ebiten.Wheel()
	if wy == 0 {
		return
	}
	x, y := a.cursorLogical()
	a.cam.ZoomAround(x, y, wy*wheelZoomStep)
}

func (a *App) handleMouse() {
	x, y := a.cursorLogical()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		a.drag = dragState{active: true, startX: x, startY: y, lastX: x, lastY: y}
		return
	}
	if !a.drag.active {
		return
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if !a.drag.moved && math.Hypot(x-a.drag.startX, y-a.drag.startY) > dragThresholdPx {
			a.drag.moved = true
		}
		if a.drag.moved {
			a.cam.PanPixels(a.drag.lastX-x, a.drag.lastY-y)
		}
		a.drag.lastX, a.drag.lastY = x, y
		return
	}
	// Released this tick.
	if !a.drag.moved {
		lat, lng := a.cam.Unproject(x, y)
		if a.engine.RevealAt(lat, lng, a.explored) {
			a.overlay.SetExplored(a.explored)
			a.refreshCoverage()
		}
	}
	a.drag = dragState{}
}

func (a *App) dropNoteAtCursor() {
	x, y := a.cursorLogical()
	lat, lng := a.cam.Unproject(x, y)
	label := fmt.Sprintf("note %d", a.notes.Len()+1)
	a.notes.Add(lat, lng, label)
	a.hud.SetStatus(a.tick, "dropped "+label)
}

func (a *App) deleteNoteNearCursor() {
	x, y := a.cursorLogical()
	bestID := ""
	bestLabel := ""
	bestDist := math.Inf(1)
	for _, note := range a.notes.Items() {
		nx, ny := a.cam.Project(note.Lat, note.Lng)
		if d := math.Hypot(nx-x, ny-y); d < bestDist {
			bestID, bestLabel, bestDist = note.ID, note.Label, d
		}
	}
	if bestID == "" || bestDist > noteDeleteRangePx {
		a.hud.SetStatus(a.tick, "no note nearby")
		return
	}
	a.notes.Remove(bestID)
	a.hud.SetStatus(a.tick, "removed "+bestLabel)
}

func (a *App) copyCursorCoords() {
	x, y := a.cursorLogical()
	lat, lng := a.cam.Unproject(x, y)
	s := fmt.Sprintf("%.6f, %.6f", lat, lng)
	if err := clipboard.WriteAll(s); err != nil {
		a.hud.SetStatus(a.tick, "clipboard unavailable")
		return
	}
	a.hud.SetStatus(a.tick, "copied "+s)
}

// cursorLogical reports the cursor in the camera's logical pixel space.
func (a *App) cursorLogical() (x, y float64) {
	cx, cy := ebiten.CursorPosition()
	s := a.cam.DeviceScale()
	if s <= 0 {
		s = 1
	}
	return float64(cx) / s, float64(cy) / s
}
