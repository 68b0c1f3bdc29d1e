package config

const (
	// DefaultFileName is looked up in the working directory when no path is given.
	DefaultFileName = "sortfiles.toml"

	defaultOutput     = "dist"
	defaultWorkers    = 16
	defaultLogLevel   = "info"
	defaultLockOutput = true
)
