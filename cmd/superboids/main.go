package main

import (
	"context"
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-superboids/pkg/render"
	"github.com/lao-tseu-is-alive/go-superboids/pkg/simulation"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
)

func main() {
	configFile := flag.String("config", "", "path to a JSON or TOML configuration file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := golog.InfoLevel
	if *debug {
		level = golog.DebugLevel
	}
	logger := golog.New(level, os.Stdout)

	cfg := simulation.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = simulation.LoadConfig(*configFile); err != nil {
			logger.Fatalf("💥 cannot load config %s: %v", *configFile, err)
		}
		logger.Infof("Config loaded from %s", *configFile)
	}

	ctx := context.Background()
	system, err := actor.NewActorSystem("SuperBoids",
		actor.WithLogger(logger),
		actor.WithActorInitMaxRetries(3))
	if err != nil {
		logger.Fatalf("💥 cannot create actor system: %v", err)
	}
	if err := system.Start(ctx); err != nil {
		logger.Fatalf("💥 cannot start actor system: %v", err)
	}
	defer func() { _ = system.Stop(ctx) }()

	game, err := render.NewGame(ctx, cfg, system)
	if err != nil {
		logger.Fatalf("💥 %v", err)
	}

	ebiten.SetWindowSize(int(cfg.WorldWidth), int(cfg.WorldHeight))
	ebiten.SetWindowTitle("Super Boids")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(game); err != nil {
		logger.Errorf("game stopped: %v", err)
	}
}
