package renderer

import (
	"errors"
	"fmt"
	"math"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every RenderConfig validation failure
var ErrInvalidConfig = errors.New("invalid render config")

// RenderConfig contains the settings applied before a render starts
type RenderConfig struct {
	Height   int    `yaml:"height"`         // Image height in pixels; width follows the camera aspect
	Samples  int    `yaml:"samples"`        // Rays per pixel
	MaxDepth int    `yaml:"max_depth"`      // Maximum ray bounce depth
	Gamma    bool   `yaml:"gamma"`          // Apply gamma 2 (square root) before quantizing
	Workers  int    `yaml:"workers"`        // Parallel workers (0 = auto-detect)
	Parallel bool   `yaml:"parallel"`       // False renders on a single worker
	Seed     *int64 `yaml:"seed,omitempty"` // Fixed seed for reproducible output
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Height:   108,
		Samples:  50,
		MaxDepth: 8,
		Gamma:    true,
		Workers:  0,
		Parallel: true,
	}
}

// Validate reports the first setting that cannot be rendered
func (c RenderConfig) Validate() error {
	switch {
	case c.Height <= 0:
		return fmt.Errorf("%w: height %d must be positive", ErrInvalidConfig, c.Height)
	case c.Samples <= 0:
		return fmt.Errorf("%w: samples %d must be positive", ErrInvalidConfig, c.Samples)
	case c.MaxDepth < 0:
		return fmt.Errorf("%w: max depth %d must not be negative", ErrInvalidConfig, c.MaxDepth)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers %d must not be negative", ErrInvalidConfig, c.Workers)
	}
	return nil
}

// Width derives the image width from the height and the camera aspect ratio
func (c RenderConfig) Width(aspectRatio float64) int {
	return max(1, int(math.Round(float64(c.Height)*aspectRatio)))
}

// ResolveWorkers returns the number of workers to start. Sequential mode
// always uses one; zero asks the machine for its logical core count.
func (c RenderConfig) ResolveWorkers() int {
	if !c.Parallel {
		return 1
	}
	if c.Workers > 0 {
		return c.Workers
	}
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// WithSeed returns a copy of the config with a fixed seed
func (c RenderConfig) WithSeed(seed int64) RenderConfig {
	c.Seed = &seed
	return c
}

// LoadRenderConfig reads a YAML file on top of base. Keys missing from the file
// keep the values from base.
func LoadRenderConfig(path string, base RenderConfig) (RenderConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read render config %s: %w", path, err)
	}
	return ParseRenderConfig(data, base)
}

// ParseRenderConfig decodes YAML on top of base and validates the result
func ParseRenderConfig(data []byte, base RenderConfig) (RenderConfig, error) {
	config := base
	if err := yaml.Unmarshal(data, &config); err != nil {
		return base, fmt.Errorf("failed to parse render config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return base, err
	}
	return config, nil
}
