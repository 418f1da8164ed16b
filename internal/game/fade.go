package game

// FadeLength is the win fade duration in ticks.
const FadeLength = 42

// FadePhase is the state of the win fade.
type FadePhase uint8

const (
	FadeNotStarted FadePhase = iota
	FadeStarted
)

// WinFade darkens the screen after a win and then reveals the label. It
// starts on the first frame that observes the win and never restarts.
type WinFade struct {
	phase     FadePhase
	startTick int
}

// Phase reports whether the fade has started.
func (f *WinFade) Phase() FadePhase { return f.phase }

// StartTick is the tick the fade started on; only meaningful once started.
func (f *WinFade) StartTick() int { return f.startTick }

// Observe records tick as the start tick if the fade has not started yet.
// It reports whether this call started the fade.
func (f *WinFade) Observe(tick int) bool {
	if f.phase == FadeStarted {
		return false
	}
	f.phase = FadeStarted
	f.startTick = tick
	return true
}

func (f *WinFade) elapsed(tick int) int {
	if f.phase != FadeStarted {
		return 0
	}
	return max(tick-f.startTick, 0)
}

// Alpha is the overlay opacity at tick, in [0,1].
func (f *WinFade) Alpha(tick int) float64 {
	return float64(min(f.elapsed(tick), FadeLength)) / FadeLength
}

// LabelVisible reports whether the win label is drawn at tick.
func (f *WinFade) LabelVisible(tick int) bool {
	return f.phase == FadeStarted && f.elapsed(tick) >= FadeLength
}
