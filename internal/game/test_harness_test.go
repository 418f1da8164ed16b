package game

import (
	"strings"
	"testing"

	"github.com/Garsondee/Labyrinth/internal/config"
)

func TestAutopilot_WinsHandMaze(t *testing.T) {
	hs, err := NewHeadlessSim(WithMazeRows(0, winMaze...), WithAutopilot())
	if err != nil {
		t.Fatal(err)
	}
	tick := hs.RunUntil(Won, 60*120)
	if tick < 0 {
		t.Logf("log:\n%s", hs.Log.Format())
		t.Fatalf("autopilot did not win; player at %v", hs.Session.Player().Position)
	}
	if hs.Log.CountCategory(LogCheckpoint, KeyCollected) != 2 {
		t.Fatalf("expected 2 pickups before the win:\n%s", hs.Log.Format())
	}
}

func TestAutopilot_WinsGeneratedEasyMazes(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		hs, err := NewHeadlessSim(WithSeed(seed), WithDifficulty(config.DifficultyEasy), WithAutopilot())
		if err != nil {
			t.Fatal(err)
		}
		if tick := hs.RunUntil(Won, 60*600); tick < 0 {
			t.Fatalf("seed %d: no win, player at %v\n%s", seed, hs.Session.Player().Position, hs.Log.Format())
		}
	}
}

func TestHeadlessSim_DeterministicPerSeed(t *testing.T) {
	run := func() string {
		hs, err := NewHeadlessSim(WithSeed(42), WithDifficulty(config.DifficultyEasy), WithAutopilot())
		if err != nil {
			t.Fatal(err)
		}
		hs.RunUntil(Won, 60*600)
		return hs.Log.Format()
	}
	if a, b := run(), run(); a != b {
		t.Fatalf("same seed produced different logs:\n%s\n---\n%s", a, b)
	}
}

func TestSessionReport_AfterWin(t *testing.T) {
	hs, err := NewHeadlessSim(WithMazeRows(0, winMaze...), WithAutopilot())
	if err != nil {
		t.Fatal(err)
	}
	hs.RunUntil(Won, 60*120)
	rep := SessionReport(ReportInfo{Difficulty: "custom", Seed: 1}, hs.Session)
	for _, want := range []string{"outcome: won after", "keys: 2/2", "key 1 at (1,1)", "key 2 at (3,3)", "torch:"} {
		if !strings.Contains(rep, want) {
			t.Fatalf("report missing %q:\n%s", want, rep)
		}
	}
}
