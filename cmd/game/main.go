package main

import (
	"flag"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/Garsondee/Labyrinth/internal/config"
	"github.com/Garsondee/Labyrinth/internal/game"
	rebiten "github.com/Garsondee/Labyrinth/internal/render/ebiten"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	difficulty := cfg.Difficulty.String()
	flag.StringVar(&difficulty, "difficulty", difficulty, "maze preset: easy, normal or hard")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "RNG seed (0 = time based)")
	flag.IntVar(&cfg.TPS, "tps", cfg.TPS, "simulation ticks per second")
	flag.StringVar(&cfg.AssetDir, "assets", cfg.AssetDir, "asset directory")
	flag.StringVar(&cfg.MazeFile, "maze", cfg.MazeFile, "text maze file overriding generation")
	flag.Parse()

	if cfg.Difficulty, err = config.ParseDifficulty(difficulty); err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	rng, renderRNG := game.RandStreams(cfg.Seed)

	session, err := newSession(cfg, rng)
	if err != nil {
		log.Fatal(err)
	}

	renderer, err := game.NewFrameRenderer(rebiten.NewAssetLoader(), cfg.AssetDir, renderRNG)
	if err != nil {
		log.Fatal(err)
	}

	g := game.New(game.Options{
		Session:  session,
		Renderer: renderer,
		Input:    rebiten.NewInput(),
		Info:     game.ReportInfo{Difficulty: cfg.Difficulty.String(), Seed: cfg.Seed},
	})

	log.Printf("labyrinth: difficulty=%s seed=%d maze=%dx%d", cfg.Difficulty, cfg.Seed,
		session.Maze().Width(), session.Maze().Height())

	engine := rebiten.NewEngine()
	engine.SetWindowTitle("Labyrinth")
	engine.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	engine.SetWindowResizable(true)
	engine.SetTPS(cfg.TPS)
	if err := engine.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

func newSession(cfg config.Config, rng *rand.Rand) (*game.Session, error) {
	if cfg.MazeFile == "" {
		return game.NewSessionForDifficulty(cfg.Difficulty, cfg.TPS, rng, nil)
	}
	f, err := os.Open(cfg.MazeFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := game.ParseMaze(f)
	if err != nil {
		return nil, err
	}
	return game.NewSession(game.SessionParams{
		Maze:   m,
		Ghosts: game.PresetFor(cfg.Difficulty).Ghosts,
		TPS:    cfg.TPS,
		Rand:   rng,
	})
}
