package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"fogwalk/internal/app"
)

func main() {
	cfg := app.LoadConfig()
	a, err := app.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	ebiten.SetWindowTitle("fogwalk")
	ebiten.SetWindowSize(1280, 800)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(a); err != nil {
		log.Fatal(err)
	}
}
