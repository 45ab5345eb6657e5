// Package render draws the flock with ebiten and turns keyboard and mouse
// input into world actor messages.
package render

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lao-tseu-is-alive/go-superboids/pkg/flock"
	"github.com/lao-tseu-is-alive/go-superboids/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-superboids/pkg/simulation"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/proto"
)

var (
	whiteImage = ebiten.NewImage(3, 3)
	background = color.RGBA{R: 40, G: 40, B: 40, A: 255}
)

// weightKeys maps each key to the steering weight it nudges and the direction.
var weightKeys = []struct {
	key    ebiten.Key
	weight flock.Weight
	sign   float64
}{
	{ebiten.KeyQ, flock.WeightAlignment, +1},
	{ebiten.KeyA, flock.WeightAlignment, -1},
	{ebiten.KeyW, flock.WeightCohesion, +1},
	{ebiten.KeyS, flock.WeightCohesion, -1},
	{ebiten.KeyE, flock.WeightSeparation, +1},
	{ebiten.KeyD, flock.WeightSeparation, -1},
}

type Game struct {
	ctx        context.Context
	worldPID   *actor.PID
	snapshotCh chan *simulation.WorldSnapshot
	lastState  *simulation.WorldSnapshot
	logger     golog.Logger
	cfg        *simulation.Config

	lastFrame     time.Time
	paused        bool
	width, height int

	// reused between frames
	vertices []ebiten.Vertex
	indices  []uint16

	// Timing instrumentation
	updateAvg float64 // Rolling average in ms
	drawAvg   float64 // Rolling average in ms
}

// NewGame spawns the world actor in system and returns the ebiten game bound to it.
func NewGame(ctx context.Context, cfg *simulation.Config, system actor.ActorSystem) (*Game, error) {
	// Buffer to avoid blocking the world
	snapshotCh := make(chan *simulation.WorldSnapshot, 10)

	worldPID, err := system.Spawn(ctx, "world", simulation.NewWorldActor(snapshotCh, cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to spawn world: %w", err)
	}

	return &Game{
		ctx:        ctx,
		worldPID:   worldPID,
		snapshotCh: snapshotCh,
		lastState: &simulation.WorldSnapshot{ // Avoid nil pointer
			Settings: cfg.Settings(),
			Bounds:   cfg.Bounds(),
		},
		logger:    system.Logger(),
		cfg:       cfg,
		lastFrame: time.Now(),
		width:     int(cfg.WorldWidth),
		height:    int(cfg.WorldHeight),
	}, nil
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.updateAvg = g.updateAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	// 1. Retrieve Latest State (Non-blocking)
	for drained := false; !drained; {
		select {
		case snap := <-g.snapshotCh:
			g.lastState = snap
		default:
			drained = true
		}
	}

	// 2. Input
	g.handleInput()

	// 3. Real time since last frame drives the fixed step clock
	now := time.Now()
	elapsed := now.Sub(g.lastFrame)
	g.lastFrame = now
	if !g.paused {
		g.tell(simulation.Advance(elapsed))
	}
	return nil
}

func (g *Game) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		next := flock.SoftTurn
		if g.lastState.Settings.Boundary == flock.SoftTurn {
			next = flock.Wrap
		}
		g.tell(simulation.SetBoundary(next))
	}
	for _, wk := range weightKeys {
		if inpututil.IsKeyJustPressed(wk.key) {
			g.tell(simulation.AdjustWeight(wk.weight, wk.sign*g.cfg.WeightStep))
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		pos := toWorld(mx, my, g.lastState.Bounds)
		g.tell(simulation.SpawnAt(pos.X, pos.Y))
	}
}

func (g *Game) tell(msg proto.Message) {
	if err := actor.Tell(g.ctx, g.worldPID, msg); err != nil {
		g.logger.Warnf("failed to send %T to world: %v", msg, err)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.drawAvg = g.drawAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	screen.Fill(background)
	g.drawFlock(screen)
	g.drawHUD(screen)
	g.drawPolarizationBar(screen)
}

// drawFlock batches every boid into as few DrawTriangles calls as uint16 indices allow.
func (g *Game) drawFlock(screen *ebiten.Image) {
	const maxBoidsPerBatch = math.MaxUint16 / 3
	g.vertices = g.vertices[:0]
	g.indices = g.indices[:0]
	op := &ebiten.DrawTrianglesOptions{}

	for i := range g.lastState.Boids {
		g.appendBoid(&g.lastState.Boids[i], g.lastState.Bounds)
		if len(g.vertices)/3 == maxBoidsPerBatch {
			screen.DrawTriangles(g.vertices, g.indices, whiteImage, op)
			g.vertices = g.vertices[:0]
			g.indices = g.indices[:0]
		}
	}
	if len(g.vertices) > 0 {
		screen.DrawTriangles(g.vertices, g.indices, whiteImage, op)
	}
}

// appendBoid adds one triangle pointing along the velocity.
func (g *Game) appendBoid(b *flock.Boid, bounds flock.Bounds) {
	cx, cy := toScreen(b.Pos, bounds)
	// screen y grows downward
	heading := math.Atan2(-b.Vel.Y, b.Vel.X)
	size := b.Appearance.Width
	if size <= 0 {
		size = 5
	}

	tip := geometry.NewVectorPolar(size*1.2, heading)
	right := geometry.NewVectorPolar(size, heading+2.5)
	left := geometry.NewVectorPolar(size, heading-2.5)

	c := b.Appearance.Color
	r, gr, bl, a := float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255
	base := uint16(len(g.vertices))
	for _, p := range []geometry.Vector2D{tip, right, left} {
		g.vertices = append(g.vertices, ebiten.Vertex{
			DstX: float32(cx + p.X), DstY: float32(cy + p.Y),
			SrcX: 1, SrcY: 1,
			ColorR: r, ColorG: gr, ColorB: bl, ColorA: a,
		})
	}
	g.indices = append(g.indices, base, base+1, base+2)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	s := g.lastState.Settings
	st := g.lastState.Stats
	state := ""
	if g.paused {
		state = "  [PAUSED]"
	}
	msg := fmt.Sprintf("Alignment [Q/A]: %.2f\nCohesion [W/S]: %.2f\nSeparation [E/D]: %.2f\nBoundary [B]: %s\n\nBoids: %d  (click to add)\nTicks: %d%s\nMean speed: %.2f\nPolarization: %.2f",
		s.Alignment, s.Cohesion, s.Separation, s.Boundary,
		st.Count, g.lastState.Ticks, state, st.MeanSpeed, st.Polarization)
	vector.FillRect(screen, 5, 5, 215, 150, color.RGBA{R: 20, G: 20, B: 25, A: 180}, false)
	ebitenutil.DebugPrintAt(screen, msg, 10, 10)

	perf := fmt.Sprintf("FPS: %.2f\nTPS: %.2f\n\nUpdate: %.2fms\nDraw:   %.2fms",
		ebiten.ActualFPS(), ebiten.ActualTPS(), g.updateAvg, g.drawAvg)
	ebitenutil.DebugPrintAt(screen, perf, g.width-150, 10)
}

// drawPolarizationBar shows how aligned the flock is: full when every boid
// heads the same way.
func (g *Game) drawPolarizationBar(screen *ebiten.Image) {
	if g.lastState.Stats.Count == 0 {
		return
	}
	const (
		barWidth    = float32(200)
		barHeight   = float32(12)
		marginRight = float32(10)
	)
	x := float32(screen.Bounds().Dx()) - barWidth - marginRight
	y := float32(screen.Bounds().Dy()) - barHeight - 30
	filled := barWidth * float32(g.lastState.Stats.Polarization)

	vector.FillRect(screen, x, y, barWidth, barHeight, color.RGBA{R: 70, G: 70, B: 80, A: 255}, true)
	vector.FillRect(screen, x, y, filled, barHeight, color.RGBA{R: 125, G: 174, B: 163, A: 255}, true)
	vector.StrokeRect(screen, x, y, barWidth, barHeight, 1, color.RGBA{R: 200, G: 200, B: 200, A: 255}, true)
	ebitenutil.DebugPrintAt(screen, "polarization", int(x), int(y+barHeight+3))
}

// Layout follows the window: the world is resized to the outside size,
// centered on the origin.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 && (outsideWidth != g.width || outsideHeight != g.height) {
		g.width, g.height = outsideWidth, outsideHeight
		g.tell(simulation.Resize(flock.CenteredBounds(float64(outsideWidth), float64(outsideHeight))))
	}
	return g.width, g.height
}

func toScreen(p geometry.Vector2D, b flock.Bounds) (float64, float64) {
	return p.X - b.Left, b.Top - p.Y
}

func toWorld(x, y int, b flock.Bounds) geometry.Vector2D {
	return geometry.Vector2D{X: float64(x) + b.Left, Y: b.Top - float64(y)}
}

func init() {
	whiteImage.Fill(color.White)
}
