// Command headless runs the flock without a window, feeding the world a fixed
// number of ticks and logging its stats.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/lao-tseu-is-alive/go-superboids/pkg/simulation"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/types/known/structpb"
)

func main() {
	configFile := flag.String("config", "", "path to a JSON or TOML configuration file")
	ticks := flag.Int("ticks", 1000, "number of flock ticks to run")
	every := flag.Int("every", 100, "log stats every n ticks")
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
	}

	ctx := context.Background()
	system, err := actor.NewActorSystem("SuperBoidsHeadless", actor.WithLogger(logger))
	if err != nil {
		logger.Fatalf("💥 cannot create actor system: %v", err)
	}
	if err := system.Start(ctx); err != nil {
		logger.Fatalf("💥 cannot start actor system: %v", err)
	}
	defer func() { _ = system.Stop(ctx) }()

	world, err := system.Spawn(ctx, "world", simulation.NewWorldActor(nil, cfg))
	if err != nil {
		logger.Fatalf("💥 cannot spawn world: %v", err)
	}

	start := time.Now()
	step := simulation.Advance(cfg.TickStep())
	for i := 1; i <= *ticks; i++ {
		if err := actor.Tell(ctx, world, step); err != nil {
			logger.Fatalf("💥 tick %d: %v", i, err)
		}
		if *every > 0 && i%*every == 0 {
			logStats(ctx, logger, world)
		}
	}
	logStats(ctx, logger, world)
	logger.Infof("✅ %d ticks in %v", *ticks, time.Since(start))
}

// logStats asks the world for its summary. The Ask is queued behind every
// pending tick, so it also acts as a barrier.
func logStats(ctx context.Context, logger golog.Logger, world *actor.PID) {
	reply, err := actor.Ask(ctx, world, simulation.StatsRequest(), 30*time.Second)
	if err != nil {
		logger.Warnf("stats request failed: %v", err)
		return
	}
	if s, ok := reply.(*structpb.Struct); ok {
		logger.Info(simulation.ParseStats(s).String())
	}
}
