package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Garsondee/Labyrinth/internal/config"
	"github.com/Garsondee/Labyrinth/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64
	tps      int

	won         bool
	winTick     int
	ticks       int
	pickupTicks []int
	torchOut    int
	torchAtEnd  float64
	routeLength int
	ghosts      int
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	var runs int
	var maxTicks int
	var seedBase int64
	var seedStep int64
	var difficulty string

	flag.IntVar(&runs, "runs", 5, "number of headless runs")
	flag.IntVar(&maxTicks, "max-ticks", 60*600, "tick limit per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&difficulty, "difficulty", cfg.Difficulty.String(), "maze preset: easy, normal or hard")
	flag.IntVar(&cfg.TPS, "tps", cfg.TPS, "simulation ticks per second")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if maxTicks <= 0 {
		fmt.Println("error: -max-ticks must be > 0")
		return
	}
	d, err := config.ParseDifficulty(difficulty)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	if cfg.TPS <= 0 {
		fmt.Println("error: -tps must be > 0")
		return
	}

	fmt.Printf("=== Headless Labyrinth Report ===\n")
	fmt.Printf("difficulty=%s runs=%d max_ticks=%d tps=%d seed_base=%d seed_step=%d\n\n",
		d, runs, maxTicks, cfg.TPS, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats, err := runAutopilot(i+1, seed, d, cfg.TPS, maxTicks)
		if err != nil {
			fmt.Printf("error: run %d: %v\n", i+1, err)
			return
		}
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

func runAutopilot(runIndex int, seed int64, d config.Difficulty, tps, maxTicks int) (runStats, error) {
	hs, err := game.NewHeadlessSim(
		game.WithSeed(seed),
		game.WithDifficulty(d),
		game.WithTPS(tps),
		game.WithAutopilot(),
	)
	if err != nil {
		return runStats{}, err
	}
	route := len(game.NewAutopilot(hs.Session.Maze()).Route())
	hs.RunUntil(game.Won, maxTicks)

	entries := hs.Log.Entries()
	var pickups []int
	for _, e := range entries {
		if e.Category == game.LogCheckpoint && e.Key == game.KeyCollected {
			pickups = append(pickups, e.Tick)
		}
	}
	return runStats{
		runIndex:    runIndex,
		seed:        seed,
		tps:         tps,
		won:         hs.Session.State() == game.StateWin,
		winTick:     firstTick(entries, game.LogState, game.KeyWin, ""),
		ticks:       hs.Session.Ticks(),
		pickupTicks: pickups,
		torchOut:    firstTick(entries, game.LogTorch, game.KeyOut, ""),
		torchAtEnd:  hs.Session.Torch(),
		routeLength: route,
		ghosts:      len(hs.Session.Ghosts()),
	}, nil
}

func firstTick(entries []game.SessionLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

func tickTime(tick, tps int) string {
	if tick < 0 {
		return "n/a"
	}
	return game.FormatDuration(time.Duration(float64(tick) / float64(tps) * float64(time.Second)))
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	outcome := "timeout"
	if rs.won {
		outcome = "win"
	}
	fmt.Printf("outcome=%s ticks=%d win_tick=%d (%s) route_cells=%d ghosts=%d\n",
		outcome, rs.ticks, rs.winTick, tickTime(rs.winTick, rs.tps), rs.routeLength, rs.ghosts)
	for i, tick := range rs.pickupTicks {
		fmt.Printf("  %s key at tick %d (%s)\n", humanize.Ordinal(i+1), tick, tickTime(tick, rs.tps))
	}
	fmt.Printf("torch_at_end=%.1f torch_out_tick=%d\n\n", rs.torchAtEnd, rs.torchOut)
}

func printAggregate(all []runStats) {
	wins := 0
	var winTicks []int
	var torchLeft []float64
	for _, rs := range all {
		if !rs.won {
			continue
		}
		wins++
		winTicks = append(winTicks, rs.winTick)
		torchLeft = append(torchLeft, rs.torchAtEnd)
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d wins=%d win_rate=%.0f%%\n", len(all), wins, avg(wins*100, len(all)))
	fmt.Printf("avg_win_tick=%s avg_torch_at_win=%s\n", avgTickString(winTicks), avgFloatString(torchLeft))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func avgFloatString(vals []float64) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", sum/float64(len(vals)))
}
