package geomap

import "testing"

func TestTileURL_SubstitutesAllPlaceholders(t *testing.T) {
	got := tileURL("https://tile.example.org/{z}/{x}/{y}.png", TileKey{Z: 16, X: 37013, Y: 24156})
	want := "https://tile.example.org/16/37013/24156.png"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestTileURL_TemplateWithoutPlaceholders(t *testing.T) {
	got := tileURL("https://tile.example.org/static.png", TileKey{Z: 3, X: 1, Y: 2})
	if got != "https://tile.example.org/static.png" {
		t.Fatalf("template without placeholders should pass through, got %q", got)
	}
}

func TestTileLayer_EvictsOldestBeyondCap(t *testing.T) {
	l := NewTileLayer("unused", true)

	l.mu.Lock()
	extra := 10
	for i := 0; i < tileCacheCap+extra; i++ {
		k := TileKey{Z: 10, X: i, Y: 0}
		l.tiles[k] = &tileSlot{}
		l.order = append(l.order, k)
	}
	l.evictLocked()
	n := len(l.tiles)
	_, oldestAlive := l.tiles[TileKey{Z: 10, X: extra - 1, Y: 0}]
	_, survivorAlive := l.tiles[TileKey{Z: 10, X: extra, Y: 0}]
	_, newestAlive := l.tiles[TileKey{Z: 10, X: tileCacheCap + extra - 1, Y: 0}]
	l.mu.Unlock()

	if n != tileCacheCap {
		t.Fatalf("cache should shrink to %d, has %d", tileCacheCap, n)
	}
	if oldestAlive {
		t.Fatalf("oldest tiles should be evicted first")
	}
	if !survivorAlive || !newestAlive {
		t.Fatalf("tiles inside the cap should survive eviction")
	}
}

func TestTileLayer_EvictionSparesInFlightTiles(t *testing.T) {
	l := NewTileLayer("unused", true)

	l.mu.Lock()
	busy := TileKey{Z: 5, X: 0, Y: 0}
	l.tiles[busy] = &tileSlot{fetching: true}
	l.order = append(l.order, busy)
	for i := 1; i <= tileCacheCap+5; i++ {
		k := TileKey{Z: 5, X: i, Y: 0}
		l.tiles[k] = &tileSlot{}
		l.order = append(l.order, k)
	}
	l.evictLocked()
	_, busyAlive := l.tiles[busy]
	l.mu.Unlock()

	if !busyAlive {
		t.Fatalf("a tile with a fetch in flight must not be evicted")
	}
}

func TestTileLayer_PendingStartsAtZero(t *testing.T) {
	l := NewTileLayer("https://tile.example.org/{z}/{x}/{y}.png", false)
	if got := l.Pending(); got != 0 {
		t.Fatalf("fresh layer should have no fetches in flight, got %d", got)
	}
}
