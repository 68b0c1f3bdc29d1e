package config

import (
	"fmt"

	"github.com/arthur-debert/sortfiles/pkg/sortfiles"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0 (0 means unbounded), got %d", c.Workers)
	}
	if _, err := sortfiles.LogLevelFromString(c.LogLevel); err != nil {
		return fmt.Errorf("log_level %q: %w", c.LogLevel, err)
	}
	return nil
}
