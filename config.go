package yuletide

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable of a scene. Fields absent from a YAML file keep
// their defaults; see DefaultConfig.
type Config struct {
	Tree        TreeConfig        `yaml:"tree"`
	Garland     GarlandConfig     `yaml:"garland"`
	Transitions TransitionsConfig `yaml:"transitions"`
	Tracker     TrackerConfig     `yaml:"tracker"`
}

// TreeConfig shapes the primary group.
type TreeConfig struct {
	Count        int          `yaml:"count"`
	Height       float64      `yaml:"height"`
	Radius       float64      `yaml:"radius"`
	NebulaRadius float64      `yaml:"nebula_radius"`
	NebulaTube   float64      `yaml:"nebula_tube"`
	Motion       MotionConfig `yaml:"motion"`
}

// GarlandConfig shapes the secondary group.
type GarlandConfig struct {
	Count      int          `yaml:"count"`
	Height     float64      `yaml:"height"`
	Radius     float64      `yaml:"radius"`
	Turns      float64      `yaml:"turns"`
	Spread     float64      `yaml:"spread"`
	RingRadius float64      `yaml:"ring_radius"`
	RingTube   float64      `yaml:"ring_tube"`
	Motion     MotionConfig `yaml:"motion"`
}

// MotionConfig overrides the per-group animation constants.
type MotionConfig struct {
	RepulsionRadius   float64 `yaml:"repulsion_radius"`
	RepulsionStrength float64 `yaml:"repulsion_strength"`
	RotationRate      float64 `yaml:"rotation_rate"`
	ContainerRate     float64 `yaml:"container_rate"`
}

// TransitionsConfig configures both phase transitions.
type TransitionsConfig struct {
	Forward  TransitionConfig `yaml:"forward"`
	Backward TransitionConfig `yaml:"backward"`
}

// TransitionConfig names a duration in seconds and an easing curve (see
// EaseByName).
type TransitionConfig struct {
	Duration float64 `yaml:"duration"`
	Ease     string  `yaml:"ease"`
}

// TrackerConfig configures the gesture classification loop.
type TrackerConfig struct {
	// FPS is the rate at which camera frames are classified.
	FPS float64 `yaml:"fps"`
}

// DefaultConfig returns the stock scene: a 5000-particle tree with a
// 2000-particle garland.
func DefaultConfig() Config {
	primary, secondary := PrimaryParams(), SecondaryParams()
	return Config{
		Tree: TreeConfig{
			Count:        5000,
			Height:       10,
			Radius:       3.5,
			NebulaRadius: 8,
			NebulaTube:   2,
			Motion:       motionOf(primary),
		},
		Garland: GarlandConfig{
			Count:      2000,
			Height:     10,
			Radius:     3.7,
			Turns:      6,
			Spread:     0.25,
			RingRadius: 12,
			RingTube:   0.5,
			Motion:     motionOf(secondary),
		},
		Transitions: TransitionsConfig{
			Forward:  TransitionConfig{Duration: 2.5, Ease: "elastic-out"},
			Backward: TransitionConfig{Duration: 2, Ease: "quart-in-out"},
		},
		Tracker: TrackerConfig{FPS: 30},
	}
}

// ParseConfig decodes YAML over DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses the YAML file at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.Tree.Count < 0:
		return fmt.Errorf("config: tree.count must be >= 0, got %d", c.Tree.Count)
	case c.Garland.Count < 0:
		return fmt.Errorf("config: garland.count must be >= 0, got %d", c.Garland.Count)
	case c.Tree.Height <= 0 || c.Tree.Radius <= 0:
		return fmt.Errorf("config: tree height and radius must be > 0")
	case c.Tree.NebulaRadius <= 0 || c.Tree.NebulaTube < 0:
		return fmt.Errorf("config: tree nebula_radius must be > 0 and nebula_tube >= 0")
	case c.Garland.Height <= 0 || c.Garland.Radius <= 0 || c.Garland.RingRadius <= 0:
		return fmt.Errorf("config: garland height, radius and ring_radius must be > 0")
	case c.Garland.Spread < 0 || c.Garland.RingTube < 0:
		return fmt.Errorf("config: garland spread and ring_tube must be >= 0")
	case c.Tracker.FPS <= 0:
		return fmt.Errorf("config: tracker.fps must be > 0, got %v", c.Tracker.FPS)
	}
	if err := c.Tree.Motion.validate("tree"); err != nil {
		return err
	}
	if err := c.Garland.Motion.validate("garland"); err != nil {
		return err
	}
	if _, err := c.Transitions.Forward.Params(); err != nil {
		return fmt.Errorf("config: transitions.forward: %w", err)
	}
	if _, err := c.Transitions.Backward.Params(); err != nil {
		return fmt.Errorf("config: transitions.backward: %w", err)
	}
	return nil
}

// Params converts the transition into controller parameters.
func (t TransitionConfig) Params() (TransitionParams, error) {
	if t.Duration <= 0 {
		return TransitionParams{}, fmt.Errorf("duration must be > 0, got %v", t.Duration)
	}
	fn, ok := EaseByName(t.Ease)
	if !ok {
		return TransitionParams{}, fmt.Errorf("unknown ease %q", t.Ease)
	}
	return TransitionParams{Duration: float32(t.Duration), Ease: fn}, nil
}

func (m MotionConfig) validate(group string) error {
	if m.RepulsionRadius < 0 || m.RepulsionStrength < 0 {
		return fmt.Errorf("config: %s.motion repulsion values must be >= 0", group)
	}
	return nil
}

// apply copies the configured constants over params, keeping its sway flag
// and scale law.
func (m MotionConfig) apply(params GroupParams) GroupParams {
	params.RepulsionRadius = m.RepulsionRadius
	params.RepulsionStrength = m.RepulsionStrength
	params.RotationRate = m.RotationRate
	params.ContainerRate = m.ContainerRate
	return params
}

func motionOf(p GroupParams) MotionConfig {
	return MotionConfig{
		RepulsionRadius:   p.RepulsionRadius,
		RepulsionStrength: p.RepulsionStrength,
		RotationRate:      p.RotationRate,
		ContainerRate:     p.ContainerRate,
	}
}
