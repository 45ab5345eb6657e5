package simulation

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/lao-tseu-is-alive/go-superboids/pkg/flock"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// The world actor understands three kinds of messages:
//
//	*durationpb.Duration  real time elapsed since the previous one, drives the clock
//	*structpb.Struct      a command, named by its "command" field
//	*emptypb.Empty        a stats request, answered with a *structpb.Struct
const (
	CmdSpawn    = "spawn"
	CmdAdjust   = "adjust"
	CmdResize   = "resize"
	CmdBoundary = "boundary"
)

var ErrBadCommand = errors.New("bad command")

// Advance reports elapsed real time to the world.
func Advance(elapsed time.Duration) *durationpb.Duration {
	return durationpb.New(elapsed)
}

// SpawnAt asks for one new boid at a world position.
func SpawnAt(x, y float64) *structpb.Struct {
	return command(CmdSpawn, map[string]*structpb.Value{
		"x": structpb.NewNumberValue(x),
		"y": structpb.NewNumberValue(y),
	})
}

// SpawnRandom asks for one new boid anywhere in the world.
func SpawnRandom() *structpb.Struct {
	return command(CmdSpawn, nil)
}

// AdjustWeight asks for delta to be added to one steering weight.
func AdjustWeight(w flock.Weight, delta float64) *structpb.Struct {
	return command(CmdAdjust, map[string]*structpb.Value{
		"weight": structpb.NewStringValue(w.String()),
		"delta":  structpb.NewNumberValue(delta),
	})
}

// Resize replaces the world bounds, typically after a window resize.
func Resize(b flock.Bounds) *structpb.Struct {
	return command(CmdResize, map[string]*structpb.Value{
		"left":   structpb.NewNumberValue(b.Left),
		"right":  structpb.NewNumberValue(b.Right),
		"bottom": structpb.NewNumberValue(b.Bottom),
		"top":    structpb.NewNumberValue(b.Top),
	})
}

// SetBoundary switches the containment policy.
func SetBoundary(policy flock.Boundary) *structpb.Struct {
	return command(CmdBoundary, map[string]*structpb.Value{
		"policy": structpb.NewStringValue(policy.String()),
	})
}

// StatsRequest is the message to Ask the world with.
func StatsRequest() *emptypb.Empty {
	return &emptypb.Empty{}
}

func command(name string, args map[string]*structpb.Value) *structpb.Struct {
	fields := map[string]*structpb.Value{"command": structpb.NewStringValue(name)}
	for k, v := range args {
		fields[k] = v
	}
	return &structpb.Struct{Fields: fields}
}

func stringField(s *structpb.Struct, key string) (string, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return "", fmt.Errorf("%w: missing %q", ErrBadCommand, key)
	}
	str, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("%w: %q is not a string", ErrBadCommand, key)
	}
	return str.StringValue, nil
}

func numberField(s *structpb.Struct, key string) (float64, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return 0, fmt.Errorf("%w: missing %q", ErrBadCommand, key)
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%w: %q is not a number", ErrBadCommand, key)
	}
	if math.IsNaN(n.NumberValue) || math.IsInf(n.NumberValue, 0) {
		return 0, fmt.Errorf("%w: %q is not finite", ErrBadCommand, key)
	}
	return n.NumberValue, nil
}

// Stats is the world summary returned for a StatsRequest.
type Stats struct {
	Boids        int
	Ticks        uint64
	SkippedTicks uint64
	Alignment    float64
	Cohesion     float64
	Separation   float64
	Boundary     string
	Bounds       flock.Bounds
	MeanSpeed    float64
	Polarization float64
}

func (s Stats) String() string {
	return fmt.Sprintf("boids: %d | ticks: %d (skipped %d) | weights a=%.2f c=%.2f s=%.2f | %s | speed %.2f | polarization %.2f",
		s.Boids, s.Ticks, s.SkippedTicks, s.Alignment, s.Cohesion, s.Separation, s.Boundary, s.MeanSpeed, s.Polarization)
}

// Proto encodes the stats for an actor reply.
func (s Stats) Proto() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"boids":        structpb.NewNumberValue(float64(s.Boids)),
		"ticks":        structpb.NewNumberValue(float64(s.Ticks)),
		"skippedTicks": structpb.NewNumberValue(float64(s.SkippedTicks)),
		"alignment":    structpb.NewNumberValue(s.Alignment),
		"cohesion":     structpb.NewNumberValue(s.Cohesion),
		"separation":   structpb.NewNumberValue(s.Separation),
		"boundary":     structpb.NewStringValue(s.Boundary),
		"left":         structpb.NewNumberValue(s.Bounds.Left),
		"right":        structpb.NewNumberValue(s.Bounds.Right),
		"bottom":       structpb.NewNumberValue(s.Bounds.Bottom),
		"top":          structpb.NewNumberValue(s.Bounds.Top),
		"meanSpeed":    structpb.NewNumberValue(s.MeanSpeed),
		"polarization": structpb.NewNumberValue(s.Polarization),
	}}
}

// ParseStats decodes a stats reply; missing fields stay zero.
func ParseStats(p *structpb.Struct) Stats {
	f := p.GetFields()
	return Stats{
		Boids:        int(f["boids"].GetNumberValue()),
		Ticks:        uint64(f["ticks"].GetNumberValue()),
		SkippedTicks: uint64(f["skippedTicks"].GetNumberValue()),
		Alignment:    f["alignment"].GetNumberValue(),
		Cohesion:     f["cohesion"].GetNumberValue(),
		Separation:   f["separation"].GetNumberValue(),
		Boundary:     f["boundary"].GetStringValue(),
		Bounds: flock.Bounds{
			Left:   f["left"].GetNumberValue(),
			Right:  f["right"].GetNumberValue(),
			Bottom: f["bottom"].GetNumberValue(),
			Top:    f["top"].GetNumberValue(),
		},
		MeanSpeed:    f["meanSpeed"].GetNumberValue(),
		Polarization: f["polarization"].GetNumberValue(),
	}
}
