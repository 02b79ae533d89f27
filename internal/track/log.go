package track

import (
	"fmt"
	"strings"
)

// Entry is one recorded event during a walk session or headless run.
type Entry struct {
	Step  int
	Event string // move, reveal, coverage
	Key   string // specific event name within the group
	Value string // human-readable detail
}

// String formats the entry as a fixed-width log line.
//
//	[S=042] reveal    new_cells        3
func (e Entry) String() string {
	return fmt.Sprintf("[S=%03d] %-9s %-16s %s", e.Step, e.Event, e.Key, e.Value)
}

// Log collects structured exploration events. Unbounded and
// machine-readable, unlike the transient HUD status line.
type Log struct {
	entries []Entry
}

func NewLog() *Log { return &Log{} }

func (l *Log) Add(step int, event, key, value string) {
	l.entries = append(l.entries, Entry{Step: step, Event: event, Key: key, Value: value})
}

// Entries returns all recorded entries.
func (l *Log) Entries() []Entry {
	return l.entries
}

// Filter returns entries matching the given event and/or key. Pass
// empty string to match any value for that field.
func (l *Log) Filter(event, key string) []Entry {
	var out []Entry
	for _, e := range l.entries {
		if event != "" && e.Event != event {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Count returns how many entries match the given event and key.
func (l *Log) Count(event, key string) int {
	return len(l.Filter(event, key))
}

// LastOf returns the most recent entry matching event+key, or false if
// none.
func (l *Log) LastOf(event, key string) (Entry, bool) {
	entries := l.Filter(event, key)
	if len(entries) == 0 {
		return Entry{}, false
	}
	return entries[len(entries)-1], true
}

// Format returns the full log as a single string for t.Log output.
func (l *Log) Format() string {
	var sb strings.Builder
	for _, e := range l.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
