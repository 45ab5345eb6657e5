package simulation

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/lao-tseu-is-alive/go-superboids/pkg/flock"
	"github.com/lao-tseu-is-alive/go-superboids/pkg/geometry"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// WorldSnapshot is what the UI gets after every change. It owns its Boids slice.
type WorldSnapshot struct {
	Boids    []flock.Boid
	Settings flock.Settings
	Bounds   flock.Bounds
	Ticks    uint64
	Stats    flock.Stats
}

// WorldActor owns the live flock. Everything else talks to it with messages,
// so the population is only ever touched from its mailbox goroutine.
type WorldActor struct {
	boids    []flock.Boid
	settings flock.Settings
	bounds   flock.Bounds
	limits   flock.Limits
	clock    *flock.Clock
	rng      *rand.Rand
	cfg      *Config
	ticks    uint64
	// Communication with UI
	snapshotCh chan<- *WorldSnapshot
	// --- Benchmark Stats ---
	tickCount    int
	msgRecvCount int
	lastLogTime  time.Time
}

var _ actor.Actor = (*WorldActor)(nil)

// NewWorldActor creates the world logic unit. A nil snapshotCh disables UI pushes.
func NewWorldActor(snapshotCh chan<- *WorldSnapshot, cfg *Config) *WorldActor {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &WorldActor{
		settings:    cfg.Settings(),
		bounds:      cfg.Bounds(),
		limits:      cfg.Limits(),
		clock:       flock.NewClock(cfg.TickStep(), cfg.MaxCatchUpTicks),
		rng:         rand.New(rand.NewPCG(seed, seed>>1|1)),
		cfg:         cfg,
		snapshotCh:  snapshotCh,
		lastLogTime: time.Now(),
	}
}

func (w *WorldActor) PreStart(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("World is starting with %d boids in %gx%g",
		w.cfg.NumBoids, w.bounds.Width(), w.bounds.Height())
	return nil
}

func (w *WorldActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {

	case *goaktpb.PostStart:
		ctx.Logger().Info("World Started. Spawning Flock...")
		w.spawnFlock(w.cfg.NumBoids)
		w.pushSnapshot()

	// The Main Simulation Step (Driven by Game Loop)
	case *durationpb.Duration:
		w.msgRecvCount++
		n, err := w.advance(msg.AsDuration())
		if err != nil {
			ctx.Logger().Errorf("tick failed: %v", err)
			return
		}
		w.logBenchmarks(ctx)
		if n > 0 {
			w.pushSnapshot()
		}

	case *structpb.Struct:
		w.msgRecvCount++
		if err := w.handleCommand(msg); err != nil {
			ctx.Logger().Warnf("ignoring command: %v", err)
			return
		}
		w.pushSnapshot()

	case *emptypb.Empty:
		ctx.Response(w.stats().Proto())

	default:
		ctx.Unhandled()
	}
}

func (w *WorldActor) PostStop(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("World is shutdown after %d ticks", w.ticks)
	return nil
}

// advance feeds elapsed real time to the clock and runs the ticks it releases.
func (w *WorldActor) advance(elapsed time.Duration) (int, error) {
	n := w.clock.Advance(elapsed)
	for i := 0; i < n; i++ {
		next, err := flock.Tick(w.boids, w.settings, w.bounds)
		if err != nil {
			return i, err
		}
		w.boids = next
		w.ticks++
		w.tickCount++
	}
	return n, nil
}

func (w *WorldActor) handleCommand(msg *structpb.Struct) error {
	name, err := stringField(msg, "command")
	if err != nil {
		return err
	}
	switch name {
	case CmdSpawn:
		_, hasX := msg.GetFields()["x"]
		_, hasY := msg.GetFields()["y"]
		if !hasX && !hasY {
			w.spawnFlock(1)
			return nil
		}
		x, err := numberField(msg, "x")
		if err != nil {
			return err
		}
		y, err := numberField(msg, "y")
		if err != nil {
			return err
		}
		w.spawnAt(geometry.Vector2D{X: x, Y: y})
		return nil

	case CmdAdjust:
		ws, err := stringField(msg, "weight")
		if err != nil {
			return err
		}
		weight, err := flock.ParseWeight(ws)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBadCommand, err)
		}
		delta, err := numberField(msg, "delta")
		if err != nil {
			return err
		}
		return w.settings.AdjustWeight(weight, delta)

	case CmdResize:
		var b flock.Bounds
		for key, dst := range map[string]*float64{"left": &b.Left, "right": &b.Right, "bottom": &b.Bottom, "top": &b.Top} {
			if *dst, err = numberField(msg, key); err != nil {
				return err
			}
		}
		if err := b.Validate(); err != nil {
			return err
		}
		w.bounds = b
		return nil

	case CmdBoundary:
		ps, err := stringField(msg, "policy")
		if err != nil {
			return err
		}
		policy, err := flock.ParseBoundary(ps)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBadCommand, err)
		}
		w.settings.Boundary = policy
		return nil
	}
	return fmt.Errorf("%w: unknown command %q", ErrBadCommand, name)
}

// spawnFlock adds n boids at random positions inside the current bounds.
func (w *WorldActor) spawnFlock(n int) {
	w.boids = slices.Grow(w.boids, n)
	for i := 0; i < n; i++ {
		w.boids = append(w.boids, flock.Spawn(w.rng, w.bounds, w.limits, flock.RandomAppearance(w.rng, w.cfg.BoidSize)))
	}
}

func (w *WorldActor) spawnAt(pos geometry.Vector2D) {
	w.boids = append(w.boids, flock.SpawnAt(w.rng, pos, w.limits, flock.RandomAppearance(w.rng, w.cfg.BoidSize)))
}

func (w *WorldActor) stats() Stats {
	sum := flock.Summarize(w.boids)
	return Stats{
		Boids:        sum.Count,
		Ticks:        w.ticks,
		SkippedTicks: w.clock.Skipped(),
		Alignment:    w.settings.Alignment,
		Cohesion:     w.settings.Cohesion,
		Separation:   w.settings.Separation,
		Boundary:     w.settings.Boundary.String(),
		Bounds:       w.bounds,
		MeanSpeed:    sum.MeanSpeed,
		Polarization: sum.Polarization,
	}
}

func (w *WorldActor) logBenchmarks(ctx *actor.ReceiveContext) {
	if time.Since(w.lastLogTime) >= time.Second {
		ctx.Logger().Infof("📊 TICK RATE: %d/sec (Msgs: %d, Skipped total: %d) | Boids: %d",
			w.tickCount, w.msgRecvCount, w.clock.Skipped(), len(w.boids))
		w.tickCount = 0
		w.msgRecvCount = 0
		w.lastLogTime = time.Now()
	}
}

func (w *WorldActor) pushSnapshot() {
	if w.snapshotCh == nil {
		return
	}
	select {
	case w.snapshotCh <- w.buildSnapshot():
	default:
		// UI busy, skip frame
	}
}

func (w *WorldActor) buildSnapshot() *WorldSnapshot {
	return &WorldSnapshot{
		Boids:    slices.Clone(w.boids),
		Settings: w.settings,
		Bounds:   w.bounds,
		Ticks:    w.ticks,
		Stats:    flock.Summarize(w.boids),
	}
}
