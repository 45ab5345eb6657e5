package simulation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lao-tseu-is-alive/go-superboids/pkg/flock"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed config.schema.json
var configSchema string

// ErrInvalidConfig wraps every semantic configuration error.
var ErrInvalidConfig = errors.New("invalid configuration")

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString("config.schema.json", configSchema)
})

type Config struct {
	// World Dimensions, used until the window reports its real size
	WorldWidth  float64 `json:"worldWidth"`
	WorldHeight float64 `json:"worldHeight"`

	// Population
	NumBoids int     `json:"numBoids"`
	Seed     uint64  `json:"seed"` // 0 picks a time based seed
	BoidSize float64 `json:"boidSize"`

	// Fixed-step scheduling
	TickSeconds     float64 `json:"tickSeconds"`
	MaxCatchUpTicks int     `json:"maxCatchUpTicks"`

	// Flocking
	PerceptionRadius float64 `json:"perceptionRadius"`
	AlignmentWeight  float64 `json:"alignmentWeight"`
	CohesionWeight   float64 `json:"cohesionWeight"`
	SeparationWeight float64 `json:"separationWeight"`
	WeightStep       float64 `json:"weightStep"` // change per key press

	// Per-boid kinematic limits given at spawn
	MaxForce    float64 `json:"maxForce"`
	MinVelocity float64 `json:"minVelocity"`
	MaxVelocity float64 `json:"maxVelocity"`

	// Containment: "wrap" or "soft-turn"
	Boundary         string  `json:"boundary"`
	BorderMargin     float64 `json:"borderMargin"`
	BorderTurnFactor float64 `json:"borderTurnFactor"`

	// Execution
	SpatialGrid bool `json:"spatialGrid"`
	Workers     int  `json:"workers"` // 0 means GOMAXPROCS
}

func DefaultConfig() *Config {
	s := flock.DefaultSettings()
	l := flock.DefaultLimits()
	return &Config{
		WorldWidth:       1280,
		WorldHeight:      720,
		NumBoids:         100,
		BoidSize:         5,
		TickSeconds:      flock.DefaultStep.Seconds(),
		MaxCatchUpTicks:  1,
		PerceptionRadius: s.PerceptionRadius,
		AlignmentWeight:  s.Alignment,
		CohesionWeight:   s.Cohesion,
		SeparationWeight: s.Separation,
		WeightStep:       0.05,
		MaxForce:         l.MaxForce,
		MinVelocity:      l.MinVelocity,
		MaxVelocity:      l.MaxVelocity,
		Boundary:         s.Boundary.String(),
		BorderMargin:     s.BorderMargin,
		BorderTurnFactor: s.BorderTurnFactor,
	}
}

// LoadConfig loads configuration from a JSON or TOML file (picked by extension),
// validates it against the embedded schema and overlays it on DefaultConfig.
func LoadConfig(configFile string) (*Config, error) {
	// 1. Read Config File
	raw, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// 2. TOML is converted to its JSON equivalent so one schema covers both
	if strings.EqualFold(filepath.Ext(configFile), ".toml") {
		var doc map[string]interface{}
		if _, err := toml.Decode(string(raw), &doc); err != nil {
			return nil, fmt.Errorf("failed to decode config toml: %w", err)
		}
		if raw, err = json.Marshal(doc); err != nil {
			return nil, fmt.Errorf("failed to convert config toml: %w", err)
		}
	}

	// 3. Validate
	sch, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// 4. Unmarshal on top of the defaults
	cfg := DefaultConfig()
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the constraints the schema cannot express.
func (c *Config) Validate() error {
	if c.WorldWidth <= 0 || c.WorldHeight <= 0 {
		return fmt.Errorf("%w: world must have a positive size, got %gx%g", ErrInvalidConfig, c.WorldWidth, c.WorldHeight)
	}
	if c.MinVelocity > c.MaxVelocity {
		return fmt.Errorf("%w: minVelocity %g above maxVelocity %g", ErrInvalidConfig, c.MinVelocity, c.MaxVelocity)
	}
	if c.NumBoids < 0 {
		return fmt.Errorf("%w: numBoids %d is negative", ErrInvalidConfig, c.NumBoids)
	}
	if c.PerceptionRadius < 0 {
		return fmt.Errorf("%w: perceptionRadius %g is negative", ErrInvalidConfig, c.PerceptionRadius)
	}
	if c.TickSeconds <= 0 {
		return fmt.Errorf("%w: tickSeconds must be positive", ErrInvalidConfig)
	}
	if _, err := flock.ParseBoundary(c.Boundary); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Settings converts the flocking part of the configuration.
func (c *Config) Settings() flock.Settings {
	boundary, err := flock.ParseBoundary(c.Boundary)
	if err != nil {
		boundary = flock.Wrap
	}
	return flock.Settings{
		Alignment:        c.AlignmentWeight,
		Cohesion:         c.CohesionWeight,
		Separation:       c.SeparationWeight,
		PerceptionRadius: c.PerceptionRadius,
		Boundary:         boundary,
		BorderMargin:     c.BorderMargin,
		BorderTurnFactor: c.BorderTurnFactor,
		SpatialIndex:     c.SpatialGrid,
		Workers:          c.Workers,
	}
}

// Limits are the kinematic limits handed to every spawned boid.
func (c *Config) Limits() flock.Limits {
	return flock.Limits{
		MaxForce:    c.MaxForce,
		MinVelocity: c.MinVelocity,
		MaxVelocity: c.MaxVelocity,
	}
}

// Bounds is the initial world, centered on the origin.
func (c *Config) Bounds() flock.Bounds {
	return flock.CenteredBounds(c.WorldWidth, c.WorldHeight)
}

// TickStep is the simulated time covered by one flock tick.
func (c *Config) TickStep() time.Duration {
	return time.Duration(c.TickSeconds * float64(time.Second))
}
