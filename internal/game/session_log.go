package game

import (
	"fmt"
	"strings"
)

// Session log categories and keys.
const (
	LogSession    = "session"
	LogCheckpoint = "checkpoint"
	LogState      = "state"
	LogMark       = "mark"
	LogTorch      = "torch"
	LogCamera     = "camera"

	KeyStart     = "start"
	KeyCollected = "collected"
	KeyWin       = "win"
	KeyPlaced    = "placed"
	KeyRefused   = "refused"
	KeyOut       = "out"
	KeyToggle    = "toggle"
)

// SessionLogEntry is one recorded event of a play session.
type SessionLogEntry struct {
	Tick     int
	Category string  // session, checkpoint, state, mark, torch, camera
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=0420] checkpoint collected       key 2 at (5,7)
func (e SessionLogEntry) String() string {
	return fmt.Sprintf("[T=%04d] %-10s %-10s %s", e.Tick, e.Category, e.Key, e.Value)
}

// SessionLog collects structured events during a session. Unlike EventFeed
// (HUD ring buffer) it is unbounded and machine-readable.
type SessionLog struct {
	entries []SessionLogEntry
	// listeners see every entry as it is added.
	listeners []func(SessionLogEntry)
}

// NewSessionLog creates an empty log.
func NewSessionLog() *SessionLog {
	return &SessionLog{}
}

// Subscribe registers fn to be called for each new entry.
func (sl *SessionLog) Subscribe(fn func(SessionLogEntry)) {
	sl.listeners = append(sl.listeners, fn)
}

// Add records a new entry.
func (sl *SessionLog) Add(tick int, category, key, value string, numVal float64) {
	e := SessionLogEntry{
		Tick:     tick,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	}
	sl.entries = append(sl.entries, e)
	for _, fn := range sl.listeners {
		fn(e)
	}
}

// Entries returns all recorded entries.
func (sl *SessionLog) Entries() []SessionLogEntry {
	return sl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SessionLog) Filter(category, key string) []SessionLogEntry {
	var out []SessionLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SessionLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SessionLog) LastOf(category, key string) (SessionLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SessionLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SessionLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (sl *SessionLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
