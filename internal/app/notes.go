package app

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Note is a user pin on the map.
type Note struct {
	ID        string    `json:"id"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
}

// Notes persists map pins as a JSON array in the data dir. A missing
// or unreadable file starts an empty list; saves are best effort so a
// full disk never takes the session down.
type Notes struct {
	path  string
	items []Note
}

func LoadNotes(path string) *Notes {
	n := &Notes{path: path}
	raw, err := os.ReadFile(path)
	if err != nil {
		return n
	}
	var items []Note
	if err := json.Unmarshal(raw, &items); err != nil {
		return n
	}
	n.items = items
	return n
}

func (n *Notes) Items() []Note { return n.items }

func (n *Notes) Len() int { return len(n.items) }

func (n *Notes) Add(lat, lng float64, label string) Note {
	note := Note{
		ID:        uuid.New().String(),
		Lat:       lat,
		Lng:       lng,
		Label:     label,
		CreatedAt: time.Now(),
	}
	n.items = append(n.items, note)
	n.save()
	return note
}

func (n *Notes) Remove(id string) bool {
	for i, note := range n.items {
		if note.ID == id {
			n.items = append(n.items[:i], n.items[i+1:]...)
			n.save()
			return true
		}
	}
	return false
}

func (n *Notes) save() {
	raw, err := json.MarshalIndent(n.items, "", "  ")
	if err != nil {
		return
	}
	if dir := filepath.Dir(n.path); dir != "." {
		_ = os.MkdirAll(dir, 0755)
	}
	if err := os.WriteFile(n.path, raw, 0644); err != nil {
		log.Printf("notes: persist pins: %v", err)
	}
}
