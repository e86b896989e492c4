package engine

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mrdk/planekit/parameter"
)

// Mode selects the detection discipline
type Mode string

const (
	// ModeManual places planes only on explicit DetectPlaneAtHit calls
	ModeManual Mode = "manual"
	// ModeAutomatic runs the dwell-gated state machine every tick
	ModeAutomatic Mode = "automatic"
)

// Config is the full configuration surface of a detection session
type Config struct {
	Mode Mode `yaml:"mode"`

	// AutoDetectFloor retries floor detection each tick until the first
	// success
	AutoDetectFloor bool `yaml:"auto_detect_floor"`

	// Physics enables colliders on committed planes
	Physics bool `yaml:"physics"`

	// VisiblePrimary / VisibleSecondary toggle the two display targets
	// independently (main view vs. debug view)
	VisiblePrimary   bool `yaml:"visible_primary"`
	VisibleSecondary bool `yaml:"visible_secondary"`

	// OverrideMaterial tags committed planes with a material name; empty
	// keeps the renderer default
	OverrideMaterial string `yaml:"override_material"`

	// DwellTime and SpatialTolerance tune the automatic state machine
	DwellTime        time.Duration `yaml:"dwell_time"`
	SpatialTolerance float32       `yaml:"spatial_tolerance"`

	// AvoidCollisions and BlockUnknown are the optional commit gates
	AvoidCollisions bool `yaml:"avoid_collisions"`
	BlockUnknown    bool `yaml:"block_unknown"`

	// ReferenceX, ReferenceY is the normalized screen point for automatic
	// detection
	ReferenceX float32 `yaml:"reference_x"`
	ReferenceY float32 `yaml:"reference_y"`

	// StartPaused creates the session with detection paused
	StartPaused bool `yaml:"start_paused"`
}

// DefaultConfig returns the tuning from the parameter package with
// automatic detection and floor finding enabled
func DefaultConfig() Config {
	return Config{
		Mode:             ModeAutomatic,
		AutoDetectFloor:  true,
		VisiblePrimary:   true,
		DwellTime:        parameter.DefaultDwellTime,
		SpatialTolerance: parameter.DefaultSpatialTolerance,
		ReferenceX:       parameter.ReferencePointX,
		ReferenceY:       parameter.ReferencePointY,
	}
}

// Validate rejects configurations the state machine cannot run with
func (c Config) Validate() error {
	switch c.Mode {
	case ModeManual, ModeAutomatic:
	default:
		return fmt.Errorf("config: unknown mode %q", c.Mode)
	}
	if c.DwellTime <= 0 {
		return fmt.Errorf("config: dwell_time must be positive, got %v", c.DwellTime)
	}
	if c.SpatialTolerance <= 0 {
		return fmt.Errorf("config: spatial_tolerance must be positive, got %v", c.SpatialTolerance)
	}
	if c.ReferenceX < 0 || c.ReferenceX > 1 || c.ReferenceY < 0 || c.ReferenceY > 1 {
		return fmt.Errorf("config: reference point (%v, %v) outside normalized screen",
			c.ReferenceX, c.ReferenceY)
	}
	return nil
}

// LoadConfig reads a YAML file over the defaults
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
