// Package hlc implements a Hybrid Logical Clock (HLC): a compact timestamp
// that pairs a caller-supplied wall-clock reading with a logical counter so
// that events produced by independent actors can be ordered without
// synchronized clocks. The Timestamp value is immutable; Advance produces the
// next value for a local event and Merge folds in a timestamp carried on an
// inbound message. The package never reads a system clock itself - every
// operation takes the current wall reading as an argument, which keeps the
// core portable and deterministic under test. The Clock type layers a
// thread-safe current-value cell on top for callers that want one.
package hlc

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	// ErrLogicalOverflow is returned when the logical counter is saturated
	// and the operation would have to wrap it. Wrapping would silently break
	// monotonicity, so the condition is surfaced to the caller instead.
	ErrLogicalOverflow = errors.New("hlc: logical counter overflow")

	// ErrInvalidTimestamp is returned when parsing or decoding fails.
	ErrInvalidTimestamp = errors.New("hlc: invalid timestamp")
)

// Timestamp is a hybrid logical clock value. Wall is the physical component
// in a caller-chosen fixed unit (typically milliseconds since epoch); Logical
// breaks ties between events that share a wall reading. Timestamps compare
// lexicographically, Wall first.
type Timestamp struct {
	Wall    uint64 `msgpack:"w" json:"w"`
	Logical uint32 `msgpack:"l" json:"l"`
}

// New returns a timestamp with the given wall reading and a zero logical
// counter.
func New(wall uint64) Timestamp {
	return Timestamp{Wall: wall}
}

// NewWithLogical returns a timestamp with both components set explicitly.
// Used to reconstruct a value received from another actor or restored from
// storage; the fields are trusted as-is.
func NewWithLogical(wall uint64, logical uint32) Timestamp {
	return Timestamp{Wall: wall, Logical: logical}
}

// Advance returns the next timestamp for a local event given a fresh wall
// reading. If the reading moved past the current wall the logical counter
// resets; if it stalled or went backward the counter increments so the result
// is still strictly greater than the receiver.
func (ts Timestamp) Advance(now uint64) (Timestamp, error) {
	if now > ts.Wall {
		return Timestamp{Wall: now}, nil
	}
	if ts.Logical == math.MaxUint32 {
		return Timestamp{}, ErrLogicalOverflow
	}
	return Timestamp{Wall: ts.Wall, Logical: ts.Logical + 1}, nil
}

// Merge returns the next timestamp after receiving remote on a message, given
// a fresh wall reading. The result is strictly greater than both the receiver
// and remote: the wall component is the maximum of the three readings, and
// the logical counter advances past whichever side supplied that maximum,
// resetting to zero when the fresh local reading dominates both.
func (ts Timestamp) Merge(now uint64, remote Timestamp) (Timestamp, error) {
	wall := max(ts.Wall, remote.Wall, now)

	var logical uint32
	switch {
	case wall == ts.Wall && wall == remote.Wall:
		logical = max(ts.Logical, remote.Logical)
	case wall == ts.Wall:
		logical = ts.Logical
	case wall == remote.Wall:
		logical = remote.Logical
	default:
		return Timestamp{Wall: wall}, nil
	}

	if logical == math.MaxUint32 {
		return Timestamp{}, ErrLogicalOverflow
	}
	return Timestamp{Wall: wall, Logical: logical + 1}, nil
}

// Compare orders two timestamps lexicographically, returning -1, 0 or 1.
// This is a total order over timestamp values, not causal order: a value can
// compare lower than another produced by an actor that never saw it.
func (ts Timestamp) Compare(other Timestamp) int {
	switch {
	case ts.Wall < other.Wall:
		return -1
	case ts.Wall > other.Wall:
		return 1
	case ts.Logical < other.Logical:
		return -1
	case ts.Logical > other.Logical:
		return 1
	default:
		return 0
	}
}

// Before returns true if ts orders before other. A causal predecessor always
// orders before its successors; the converse does not hold.
func (ts Timestamp) Before(other Timestamp) bool {
	return ts.Compare(other) < 0
}

// After returns true if ts orders after other.
func (ts Timestamp) After(other Timestamp) bool {
	return ts.Compare(other) > 0
}

// Equal returns true if both components match.
func (ts Timestamp) Equal(other Timestamp) bool {
	return ts == other
}

// Concurrent reports whether two values look like they were produced without
// knowledge of each other. A timestamp is never concurrent with itself or an
// identical copy; values sharing a wall reading but not a counter are treated
// as concurrent. The two numeric fields cannot prove causality on their own,
// so this is a best-effort predicate; Tracker answers the same question from
// recorded per-actor history.
func (ts Timestamp) Concurrent(other Timestamp) bool {
	return ts.Wall == other.Wall && ts.Logical != other.Logical
}

// String renders the timestamp in a fixed-width form that sorts
// lexicographically in the same order as Compare.
func (ts Timestamp) String() string {
	return fmt.Sprintf("%020d-%010d", ts.Wall, ts.Logical)
}

// ParseTimestamp parses the String form back into a Timestamp.
func ParseTimestamp(s string) (Timestamp, error) {
	if len(s) != 31 || s[20] != '-' {
		return Timestamp{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
	}

	wall, err := strconv.ParseUint(s[:20], 10, 64)
	if err != nil {
		return Timestamp{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
	}
	logical, err := strconv.ParseUint(s[21:], 10, 32)
	if err != nil {
		return Timestamp{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
	}
	return Timestamp{Wall: wall, Logical: uint32(logical)}, nil
}
