package main

import (
	"flag"
	"log"

	"github.com/Garsondee/Beast-Arena/internal/arena"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to a JSON session config")
	flag.Parse()

	cfg := arena.DefaultConfig()
	if configPath != "" {
		loaded, err := arena.LoadConfig(configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}

	ebiten.SetWindowTitle("Beast Arena")
	ebiten.SetWindowSize(1280, 800)
	if err := ebiten.RunGame(arena.NewGame(cfg)); err != nil {
		log.Fatal(err)
	}
}
