package fog

import (
	"bytes"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRevealCells_BrushCountMatchesCensus_RadiusTwo(t *testing.T) {
	expected := 0
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			if dx*dx+dy*dy <= 2*2+1 {
				expected++
			}
		}
	}
	if expected != 21 {
		t.Fatalf("census for R=2 should be 21, got %d", expected)
	}
	cells := RevealCells(42.6977, 23.3219, 2)
	if len(cells) != expected {
		t.Fatalf("brush returned %d cells, want %d", len(cells), expected)
	}
}

func TestRevealCells_IncludesFocalCell(t *testing.T) {
	focal := CellKeyAt(42.6977, 23.3219)
	for _, id := range RevealCells(42.6977, 23.3219, 2) {
		if id == focal {
			return
		}
	}
	t.Fatalf("brush misses its own focal cell %q", focal)
}

func TestRevealCells_RadiusZero_FocalOnly(t *testing.T) {
	cells := RevealCells(42.6977, 23.3219, 0)
	if len(cells) != 1 || cells[0] != CellKeyAt(42.6977, 23.3219) {
		t.Fatalf("radius 0 brush = %v, want just the focal cell", cells)
	}
}

func TestRevealCells_NoDuplicates(t *testing.T) {
	for _, r := range []int{1, 2, 3} {
		cells := RevealCells(64.15, -21.95, r)
		seen := make(map[CellID]struct{}, len(cells))
		for _, id := range cells {
			if _, dup := seen[id]; dup {
				t.Fatalf("radius %d brush repeats %q", r, id)
			}
			seen[id] = struct{}{}
		}
	}
}

func TestRevealAt_Idempotent(t *testing.T) {
	set := NewExploredSet()
	eng := NewEngine(nil, 2)
	if !eng.RevealAt(42.6977, 23.3219, set) {
		t.Fatal("first reveal reported no change")
	}
	size := set.Size()
	if eng.RevealAt(42.6977, 23.3219, set) {
		t.Fatal("repeat reveal reported change")
	}
	if set.Size() != size {
		t.Fatalf("repeat reveal resized set: %d -> %d", size, set.Size())
	}
}

func TestRevealAt_MonotonicGrowth(t *testing.T) {
	set := NewExploredSet()
	eng := NewEngine(nil, 2)
	rng := rand.New(rand.NewSource(7))
	lat, lng := 42.6977, 23.3219
	prev := 0
	for i := 0; i < 200; i++ {
		lat += (rng.Float64() - 0.5) * 4 * latStep
		lng += (rng.Float64() - 0.5) * 4 * lngStepAt(lat)
		eng.RevealAt(lat, lng, set)
		if set.Size() < prev {
			t.Fatalf("explored set shrank at step %d: %d -> %d", i, prev, set.Size())
		}
		prev = set.Size()
	}
	if prev < 21 {
		t.Fatalf("drifting walk revealed only %d cells", prev)
	}
}

func TestRevealAt_PersistsOnlyOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "explored.json")
	store := NewStore(path)
	eng := NewEngine(store, 2)
	set := NewExploredSet()

	if !eng.RevealAt(42.6977, 23.3219, set) {
		t.Fatal("first reveal reported no change")
	}
	if got := store.Load().Size(); got != set.Size() {
		t.Fatalf("persisted %d cells, in-memory has %d", got, set.Size())
	}

	// A reveal that changes nothing must not touch the store.
	if err := os.Remove(path); err != nil {
		t.Fatalf("removing store file: %v", err)
	}
	if eng.RevealAt(42.6977, 23.3219, set) {
		t.Fatal("repeat reveal reported change")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("no-change reveal rewrote the store")
	}

	// The next real change writes the full set again.
	if !eng.RevealAt(42.7077, 23.3219, set) {
		t.Fatal("reveal 1 km north reported no change")
	}
	if got := store.Load().Size(); got != set.Size() {
		t.Fatalf("re-persisted %d cells, in-memory has %d", got, set.Size())
	}
}

func TestRevealAt_SaveFailureIsNonFatal(t *testing.T) {
	// Rooting the store under a regular file makes every save fail with
	// not-a-directory, on any platform.
	blocker := filepath.Join(t.TempDir(), "state")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("writing blocker file: %v", err)
	}
	eng := NewEngine(NewStore(filepath.Join(blocker, "explored.json")), 2)
	set := NewExploredSet()

	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	if !eng.RevealAt(42.6977, 23.3219, set) {
		t.Fatal("reveal with a broken store reported no change")
	}
	if set.Size() != 21 {
		t.Fatalf("broken store corrupted the in-memory set: %d cells", set.Size())
	}
	if !strings.Contains(buf.String(), "persist explored set") {
		t.Fatalf("failed save left no trace in the log, got %q", buf.String())
	}
}

func TestNewEngine_DefaultsRadius(t *testing.T) {
	for _, r := range []int{0, -3} {
		if eng := NewEngine(nil, r); eng.radius != DefaultRevealRadius {
			t.Fatalf("NewEngine(nil, %d) radius = %d, want %d", r, eng.radius, DefaultRevealRadius)
		}
	}
	if eng := NewEngine(nil, 4); eng.radius != 4 {
		t.Fatalf("explicit radius ignored: got %d", eng.radius)
	}
}
