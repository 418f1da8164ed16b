package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Garsondee/Labyrinth/internal/config"
	"github.com/Garsondee/Labyrinth/internal/placeholders"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	flag.StringVar(&cfg.AssetDir, "assets", cfg.AssetDir, "asset directory; textures go to <assets>/textures")
	flag.Parse()

	fmt.Println("Labyrinth placeholder texture generator")

	paths, err := placeholders.GenerateAndSave(filepath.Join(cfg.AssetDir, "textures"))
	for _, p := range paths {
		fmt.Printf("  wrote %s\n", p)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Done.")
}
