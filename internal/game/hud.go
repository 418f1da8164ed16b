package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hako/durafmt"

	"github.com/Garsondee/Labyrinth/internal/render"
)

const (
	hudMargin     = 12.0
	hudLineHeight = 20.0
)

var (
	hudColor     = color.RGBA{R: 230, G: 220, B: 200, A: 255}
	hudFeedColor = color.RGBA{R: 170, G: 160, B: 140, A: 255}
)

const shortUnitsSpec = "y:yrs,wk:wks,d:d,h:h,m:m,s:s,ms:ms,us:us"

var shortUnits durafmt.Units

func init() {
	units, err := durafmt.DefaultUnitsCoder.Decode(shortUnitsSpec)
	if err != nil {
		panic(fmt.Sprintf("hud duration units: %v", err))
	}
	shortUnits = units
}

// FormatDuration renders d using its two largest units.
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "0 s"
	}
	return durafmt.Parse(d.Truncate(time.Second)).LimitFirstN(2).Format(shortUnits)
}

// seconds converts simulated seconds to a duration.
func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// HUDLines returns the status lines shown in the top-left corner.
func HUDLines(snap Snapshot) []string {
	torch := "out"
	if snap.Torch > 0 {
		torch = FormatDuration(seconds(snap.TorchRemaining()))
	}
	return []string{
		fmt.Sprintf("Keys %d/%d", snap.CollectedCount(), len(snap.Checkpoints)),
		fmt.Sprintf("Marks %d", snap.MarksLeft),
		"Torch " + torch,
	}
}

func (r *FrameRenderer) drawHUD(s render.Surface, snap Snapshot) {
	y := hudMargin
	for _, line := range HUDLines(snap) {
		s.DrawText(line, r.hudFont, hudMargin, y, hudColor)
		y += hudLineHeight
	}
	if r.feed == nil {
		return
	}
	y += hudLineHeight / 2
	for _, e := range r.feed.Recent() {
		s.DrawText(e.Message, r.hudFont, hudMargin, y, hudFeedColor)
		y += hudLineHeight
	}
}
