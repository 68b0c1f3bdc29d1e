package config

import (
	"strings"
)

func (c *Config) normalize() error {
	c.Output = strings.TrimSpace(c.Output)
	if c.Output == "" {
		c.Output = defaultOutput
	}
	if strings.HasPrefix(c.Output, "~") {
		expanded, err := expandPath(c.Output)
		if err != nil {
			return err
		}
		c.Output = expanded
	}
	c.LockDir = strings.TrimSpace(c.LockDir)
	if c.LockDir != "" {
		expanded, err := expandPath(c.LockDir)
		if err != nil {
			return err
		}
		c.LockDir = expanded
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	return nil
}
