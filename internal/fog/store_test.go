package fog

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestStore_LoadMissingFile_EmptySet(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "explored.json"))
	if got := store.Load().Size(); got != 0 {
		t.Fatalf("missing file loaded %d cells", got)
	}
}

func TestStore_SaveLoad_RoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "explored.json"))
	set := NewExploredSet()
	for _, id := range RevealCells(42.6977, 23.3219, 2) {
		set.add(id)
	}
	if err := store.Save(set); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded := store.Load()
	if loaded.Size() != set.Size() {
		t.Fatalf("loaded %d cells, saved %d", loaded.Size(), set.Size())
	}
	set.Each(func(id CellID) {
		if !loaded.Has(id) {
			t.Fatalf("loaded set is missing %q", id)
		}
	})
}

func TestStore_LoadCorruptJSON_EmptySet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "explored.json")
	if err := os.WriteFile(path, []byte("{definitely not json"), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if got := NewStore(path).Load().Size(); got != 0 {
		t.Fatalf("corrupt file loaded %d cells", got)
	}
}

func TestStore_LoadWrongShape_EmptySet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "explored.json")
	if err := os.WriteFile(path, []byte(`{"cells":[]}`), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if got := NewStore(path).Load().Size(); got != 0 {
		t.Fatalf("object-shaped file loaded %d cells", got)
	}
}

func TestStore_LoadDropsInvalidEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "explored.json")
	body := `["42.697628,23.321855","91.000000,0.000000","garbage"]`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	set := NewStore(path).Load()
	if set.Size() != 1 {
		t.Fatalf("loaded %d cells, want the 1 valid entry", set.Size())
	}
	if !set.Has("42.697628,23.321855") {
		t.Fatal("the valid entry was dropped")
	}
}

func TestStore_SaveCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "fog", "explored.json")
	store := NewStore(path)
	set := NewExploredSet()
	set.add(CellKeyAt(42.6977, 23.3219))
	if err := store.Save(set); err != nil {
		t.Fatalf("Save into missing dir: %v", err)
	}
	if got := store.Load().Size(); got != 1 {
		t.Fatalf("round trip through nested dir loaded %d cells", got)
	}
}

func TestExploredSet_KeysSorted(t *testing.T) {
	set := NewExploredSet()
	for _, id := range RevealCells(42.6977, 23.3219, 2) {
		set.add(id)
	}
	keys := set.Keys()
	if len(keys) != set.Size() {
		t.Fatalf("Keys returned %d entries for a %d-cell set", len(keys), set.Size())
	}
	if !sort.SliceIsSorted(keys, func(i, j int) bool { return keys[i] < keys[j] }) {
		t.Fatalf("Keys not sorted: %v", keys)
	}
}
