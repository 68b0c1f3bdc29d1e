// Package config loads, normalizes, and validates sortfiles configuration.
//
// Settings come from an optional TOML file; command-line flags that were set
// explicitly take precedence and are applied by the CLI on top of the loaded
// Config.
package config
