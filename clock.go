package hlc

import (
	"errors"
	"sync"
)

// ErrDriftExceeded is returned by Witness when a remote timestamp's wall
// reading runs further ahead of the local reading than the configured
// MaxDrift allows. Accepting it would pin the clock to the remote's future
// reading until local time catches up.
var ErrDriftExceeded = errors.New("hlc: remote timestamp exceeds drift bound")

// Clock holds the current timestamp for one actor and serializes updates to
// it. The value operations on Timestamp are pure; Clock is the single mutable
// cell an embedding system needs, made explicit. Callers that manage their
// own cell can ignore Clock entirely.
type Clock struct {
	mu       sync.Mutex
	current  Timestamp
	source   TimeSource
	maxDrift uint64
	logger   Logger
}

// NewClock creates a clock from the given config, which may be nil for
// defaults.
func NewClock(config *Config) *Clock {
	if config == nil {
		config = DefaultConfig()
	} else {
		config.MergeDefault()
	}

	return &Clock{
		current:  config.Origin,
		source:   config.TimeSource,
		maxDrift: config.MaxDrift,
		logger:   config.Logger,
	}
}

// Now advances the clock for a local event and returns the new timestamp.
// Each returned value is strictly greater than the last, even if the time
// source stalls or jumps backward.
func (c *Clock) Now() (Timestamp, error) {
	now := c.source()

	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := c.current.Advance(now)
	if err != nil {
		c.logger.Err(err).Field("current", c.current.String()).Errorf("clock cannot advance")
		return Timestamp{}, err
	}
	c.current = next
	return next, nil
}

// Witness merges a timestamp received from another actor and returns the new
// local timestamp, which is strictly greater than both the previous local
// value and the remote one.
func (c *Clock) Witness(remote Timestamp) (Timestamp, error) {
	now := c.source()

	if c.maxDrift > 0 && remote.Wall > now && remote.Wall-now > c.maxDrift {
		c.logger.Field("remote", remote.String()).Field("now", now).Warnf("rejecting remote timestamp beyond drift bound")
		return Timestamp{}, ErrDriftExceeded
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := c.current.Merge(now, remote)
	if err != nil {
		c.logger.Err(err).Field("current", c.current.String()).Field("remote", remote.String()).Errorf("clock cannot merge")
		return Timestamp{}, err
	}
	c.current = next
	return next, nil
}

// Current returns the clock's value without advancing it.
func (c *Clock) Current() Timestamp {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}
