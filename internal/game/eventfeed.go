package game

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

const feedMaxEntries = 6

// FeedEntry is a single line in the on-screen event feed.
type FeedEntry struct {
	Tick    int
	Message string
}

// EventFeed is a ring buffer of recent session events shown in the HUD.
type EventFeed struct {
	entries []FeedEntry
	head    int
	count   int
}

// NewEventFeed creates a feed with a fixed capacity.
func NewEventFeed() *EventFeed {
	return &EventFeed{
		entries: make([]FeedEntry, feedMaxEntries),
	}
}

// Add appends an entry to the feed, dropping the oldest when full.
func (f *EventFeed) Add(tick int, msg string) {
	f.entries[f.head] = FeedEntry{Tick: tick, Message: msg}
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// Recent returns entries in chronological order (oldest first).
func (f *EventFeed) Recent() []FeedEntry {
	result := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = f.entries[idx]
	}
	return result
}

// Observe turns a session log entry into a feed line. Entries with no
// player-facing wording are skipped.
func (f *EventFeed) Observe(e SessionLogEntry) {
	if msg := describeEvent(e); msg != "" {
		f.Add(e.Tick, msg)
	}
}

func describeEvent(e SessionLogEntry) string {
	switch e.Category + "/" + e.Key {
	case LogSession + "/" + KeyStart:
		if e.NumVal == 0 {
			return "Find the exit"
		}
		return fmt.Sprintf("Find %s and the exit", pluralKeys(int(e.NumVal)))
	case LogCheckpoint + "/" + KeyCollected:
		return fmt.Sprintf("Picked up the %s key", humanize.Ordinal(int(e.NumVal)+1))
	case LogMark + "/" + KeyPlaced:
		return fmt.Sprintf("Mark placed, %d left", int(e.NumVal))
	case LogMark + "/" + KeyRefused:
		return "No marks left"
	case LogTorch + "/" + KeyOut:
		return "The torch has gone out"
	case LogCamera + "/" + KeyToggle:
		return "Camera: " + e.Value
	case LogState + "/" + KeyWin:
		return "You found the exit!"
	}
	return ""
}

func pluralKeys(n int) string {
	if n == 1 {
		return "the key"
	}
	return fmt.Sprintf("all %d keys", n)
}
