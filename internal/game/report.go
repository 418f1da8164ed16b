package game

import (
	"fmt"
	"strings"
)

// ReportInfo is the context a session report is headed with.
type ReportInfo struct {
	Difficulty string
	Seed       int64
}

// SessionReport summarises a session for sharing: outcome, key pickups,
// mark usage and the torch, followed by the full event log.
func SessionReport(info ReportInfo, s *Session) string {
	var b strings.Builder
	log := s.Log()
	tps := float64(s.TPS())
	at := func(tick int) string {
		return FormatDuration(seconds(float64(tick) / tps))
	}

	fmt.Fprintf(&b, "--- Labyrinth session report ---\n")
	fmt.Fprintf(&b, "difficulty=%s seed=%d maze=%dx%d ticks=%d tps=%d\n",
		info.Difficulty, info.Seed, s.Maze().Width(), s.Maze().Height(), s.Ticks(), s.TPS())

	if win, ok := log.LastOf(LogState, KeyWin); ok {
		fmt.Fprintf(&b, "outcome: won after %s (tick %d)\n", at(win.Tick), win.Tick)
	} else {
		fmt.Fprintf(&b, "outcome: %s after %s\n", s.State(), at(s.Ticks()))
	}

	pickups := log.Filter(LogCheckpoint, KeyCollected)
	fmt.Fprintf(&b, "keys: %d/%d\n", len(pickups), len(s.Maze().Checkpoints()))
	for _, e := range pickups {
		fmt.Fprintf(&b, "  - %s after %s\n", e.Value, at(e.Tick))
	}

	fmt.Fprintf(&b, "marks used: %d/%d (refused %d)\n",
		MaxMarks-s.MarksLeft(), MaxMarks, log.CountCategory(LogMark, KeyRefused))

	if out, ok := log.LastOf(LogTorch, KeyOut); ok {
		fmt.Fprintf(&b, "torch: burnt out after %s\n", at(out.Tick))
	} else {
		fmt.Fprintf(&b, "torch: %.1f%% (%s left)\n", s.Torch(), FormatDuration(seconds(TorchLifetime*s.Torch()/TorchMax)))
	}

	b.WriteString("\nevents:\n")
	b.WriteString(log.Format())
	return b.String()
}
