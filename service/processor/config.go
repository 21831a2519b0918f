package processor

import "fmt"

// Config represents processor configuration
type Config struct {
	// MaxSteps caps the steps of a single run.
	MaxSteps int `yaml:"maxSteps" json:"maxSteps"`
	// Diff logs a unified diff between successive snapshots at debug level.
	Diff bool `yaml:"diff" json:"diff"`
}

// DefaultConfig returns the default processor configuration
func DefaultConfig() Config {
	return Config{MaxSteps: 1000}
}

// Validate checks the configuration
func (c Config) Validate() error {
	if c.MaxSteps <= 0 {
		return fmt.Errorf("maxSteps must be positive, got %d", c.MaxSteps)
	}
	return nil
}
