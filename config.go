package hlc

import "time"

type Config struct {
	// Origin is the timestamp the clock starts from, typically the zero value
	// or the last value persisted before a restart.
	Origin Timestamp
	// TimeSource supplies wall readings in the caller-chosen unit. The clock
	// samples it once per operation and never reads a system clock directly.
	TimeSource TimeSource
	// MaxDrift is the furthest a remote wall reading may run ahead of a fresh
	// local reading before Witness rejects it, in the same unit as Wall.
	// Zero disables the check.
	MaxDrift uint64
	// Logger receives drift rejections and overflow reports, NullLogger if nil.
	Logger Logger
}

// DefaultConfig returns a config sampling wall milliseconds with drift
// checking disabled.
func DefaultConfig() *Config {
	return &Config{
		TimeSource: WallMillis,
		Logger:     NewNullLogger(),
	}
}

// MergeDefault merges the default config with the given config to ensure all
// fields are set
func (c *Config) MergeDefault() *Config {
	defaultConfig := DefaultConfig()
	if c.TimeSource == nil {
		c.TimeSource = defaultConfig.TimeSource
	}
	if c.Logger == nil {
		c.Logger = defaultConfig.Logger
	}
	return c
}

// TimeSource supplies the current wall reading. Implementations choose the
// unit; all timestamps fed to one clock must use the same unit.
type TimeSource func() uint64

// WallMillis is the default TimeSource, returning wall milliseconds since the
// Unix epoch.
func WallMillis() uint64 {
	return uint64(time.Now().UnixMilli())
}
