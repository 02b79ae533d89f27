package fog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// ExploredSet holds every cell revealed so far. It only grows: fog,
// once cleared, stays cleared. Mutation goes through the reveal engine
// (and Store.Load when restoring a session); everything else reads.
type ExploredSet struct {
	cells mapset.Set[CellID]
}

func NewExploredSet() *ExploredSet {
	return &ExploredSet{cells: mapset.New[CellID]()}
}

func (s *ExploredSet) add(id CellID) {
	s.cells.Put(id)
}

func (s *ExploredSet) Has(id CellID) bool {
	return s.cells.Has(id)
}

func (s *ExploredSet) Size() int {
	return s.cells.Size()
}

// Each visits every explored cell in unspecified order.
func (s *ExploredSet) Each(fn func(CellID)) {
	s.cells.Each(fn)
}

// Keys returns the explored cells sorted, so serialized output is
// stable across sessions.
func (s *ExploredSet) Keys() []CellID {
	out := make([]CellID, 0, s.cells.Size())
	s.cells.Each(func(id CellID) {
		out = append(out, id)
	})
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Store persists the explored set as a flat JSON array of cell ids,
// order-insensitive and duplicate-free.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted set. Any failure degrades to whatever could
// be read, down to an empty set: missing files, bad JSON, and junk
// entries must never block startup.
func (st *Store) Load() *ExploredSet {
	set := NewExploredSet()
	data, err := os.ReadFile(st.path)
	if err != nil {
		return set
	}
	var keys []string
	if err := json.Unmarshal(data, &keys); err != nil {
		return set
	}
	for _, k := range keys {
		id := CellID(k)
		if _, _, err := parseCellID(id); err != nil {
			continue
		}
		set.add(id)
	}
	return set
}

// Save writes the full set back. The reveal engine logs a failed
// write and moves on rather than surfacing it.
func (st *Store) Save(set *ExploredSet) error {
	data, err := json.Marshal(set.Keys())
	if err != nil {
		return err
	}
	if dir := filepath.Dir(st.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(st.path, data, 0644)
}
