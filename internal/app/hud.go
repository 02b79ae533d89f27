package app

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	hudCoverageRadiusM = 500.0
	hudFontSize        = 14.0
	hudPad             = 10.0

	// statusTicks is how long a one-shot status line stays up.
	statusTicks = 180
)

var (
	hudPanelColor  = color.RGBA{10, 14, 20, 200}
	hudBorderColor = color.RGBA{70, 80, 96, 255}
	hudTextColor   = color.RGBA{220, 226, 235, 255}
	hudDimColor    = color.RGBA{140, 150, 164, 255}
	hudStatusColor = color.RGBA{255, 210, 120, 255}
)

// hudInfo is the per-frame snapshot the panel renders.
type hudInfo struct {
	CoveragePct int
	Cells       int
	Notes       int
	Zoom        float64
	AutoWalk    bool
	Pending     int
}

// HUD draws the status panel and a transient status line. Hidden state
// only suppresses drawing; status messages keep aging either way.
type HUD struct {
	src     *text.GoTextFaceSource
	visible bool

	status      string
	statusUntil int
}

func newHUD() (*HUD, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("hud: load font: %w", err)
	}
	return &HUD{src: src, visible: true}, nil
}

func (h *HUD) Toggle() { h.visible = !h.visible }

func (h *HUD) Visible() bool { return h.visible }

// SetStatus shows msg in the panel until it expires.
func (h *HUD) SetStatus(tick int, msg string) {
	h.status = msg
	h.statusUntil = tick + statusTicks
}

func (h *HUD) Draw(dst *ebiten.Image, scale float64, tick int, info hudInfo) {
	if !h.visible {
		return
	}

	walk := "off"
	if info.AutoWalk {
		walk = "on"
	}
	lines := []string{
		fmt.Sprintf("explored %d%% within %.0f m", info.CoveragePct, hudCoverageRadiusM),
		fmt.Sprintf("cells %d   notes %d", info.Cells, info.Notes),
		fmt.Sprintf("zoom %.1f   walk %s", info.Zoom, walk),
	}
	if info.Pending > 0 {
		lines = append(lines, fmt.Sprintf("loading %d tiles", info.Pending))
	}
	legend := "[T]walk  [Space]center  [N]note  [X]del  [C]copy  [H]hud"
	statusLive := h.status != "" && tick < h.statusUntil

	face := &text.GoTextFace{Source: h.src, Size: hudFontSize * scale}
	lineH := face.Size * 1.5
	pad := hudPad * scale

	rows := len(lines) + 1
	if statusLive {
		rows++
	}
	panelW := 0.0
	all := append(append([]string{}, lines...), legend)
	if statusLive {
		all = append(all, h.status)
	}
	for _, s := range all {
		if w, _ := text.Measure(s, face, lineH); w > panelW {
			panelW = w
		}
	}
	panelW += 2 * pad
	panelH := float64(rows)*lineH + 2*pad

	x0 := 12 * scale
	y0 := 12 * scale
	vector.FillRect(dst, float32(x0), float32(y0), float32(panelW), float32(panelH), hudPanelColor, false)
	vector.StrokeRect(dst, float32(x0), float32(y0), float32(panelW), float32(panelH), float32(scale), hudBorderColor, false)

	y := y0 + pad
	for _, s := range lines {
		h.drawLine(dst, face, s, x0+pad, y, hudTextColor)
		y += lineH
	}
	if statusLive {
		h.drawLine(dst, face, h.status, x0+pad, y, hudStatusColor)
		y += lineH
	}
	h.drawLine(dst, face, legend, x0+pad, y, hudDimColor)
}

// DrawLabel renders a small marker label outside the panel layout,
// regardless of panel visibility.
func (h *HUD) DrawLabel(dst *ebiten.Image, s string, x, y, scale float64) {
	face := &text.GoTextFace{Source: h.src, Size: 12 * scale}
	h.drawLine(dst, face, s, x, y, hudTextColor)
}

func (h *HUD) drawLine(dst *ebiten.Image, face *text.GoTextFace, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, face, op)
}
