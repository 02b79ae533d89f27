package app

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultTileURL  = "https://tile.openstreetmap.org/{z}/{x}/{y}.png"
	defaultDataDir  = "data"
	defaultStartLat = 42.6977
	defaultStartLng = 23.3219
)

// Config carries everything the app reads from the environment.
type Config struct {
	TileURL  string
	DataDir  string
	StartLat float64
	StartLng float64
	Offline  bool
}

// LoadConfig reads a .env file if one exists, then the process
// environment, falling back to defaults for anything unset or invalid.
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: .env: %v", err)
	}

	cfg := Config{
		TileURL:  defaultTileURL,
		DataDir:  defaultDataDir,
		StartLat: defaultStartLat,
		StartLng: defaultStartLng,
	}
	if v := os.Getenv("FOGWALK_TILE_URL"); v != "" {
		cfg.TileURL = v
	}
	if v := os.Getenv("FOGWALK_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	cfg.StartLat = envFloat("FOGWALK_START_LAT", cfg.StartLat)
	cfg.StartLng = envFloat("FOGWALK_START_LNG", cfg.StartLng)
	cfg.Offline = envBool("FOGWALK_OFFLINE")
	return cfg
}

// ExploredPath is where the reveal grid persists.
func (c Config) ExploredPath() string {
	return filepath.Join(c.DataDir, "explored.json")
}

// NotesPath is where map pins persist.
func (c Config) NotesPath() string {
	return filepath.Join(c.DataDir, "notes.json")
}

func envFloat(name string, fallback float64) float64 {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("config: %s=%q is not a number, using %v", name, v, fallback)
		return fallback
	}
	return f
}

func envBool(name string) bool {
	switch strings.ToLower(os.Getenv(name)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
