package hlc

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/zamderax/hybrid-logical-clock/codec"
	"github.com/zamderax/hybrid-logical-clock/compression"
)

// ActorID identifies the actor that issued an event.
type ActorID uuid.UUID

// NewActorID generates a random actor ID.
func NewActorID() ActorID {
	return ActorID(uuid.New())
}

// ParseActorID parses the string form of an actor ID.
func ParseActorID(s string) (ActorID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ActorID{}, err
	}
	return ActorID(id), nil
}

func (a ActorID) String() string {
	return uuid.UUID(a).String()
}

// Event is a timestamp stamped with the actor that issued it. Two numeric
// fields alone cannot prove causality between actors; the actor ID is the
// extra bit of history that makes Tracker.Concurrent answerable.
type Event struct {
	Actor     ActorID   `msgpack:"a" json:"a"`
	Timestamp Timestamp `msgpack:"ts" json:"ts"`
}

// Tracker pairs a clock with an actor identity and records the highest
// timestamp witnessed from every other actor. Tick issues local events,
// Receive folds in remote ones, and Concurrent answers causality queries over
// the recorded history - from this tracker's perspective, which is as much as
// the bookkeeping can support.
type Tracker struct {
	actor ActorID
	clock *Clock

	mu        sync.RWMutex
	witnessed map[ActorID]Timestamp
}

// NewTracker creates a tracker for the given actor on top of clock.
func NewTracker(actor ActorID, clock *Clock) *Tracker {
	return &Tracker{
		actor:     actor,
		clock:     clock,
		witnessed: make(map[ActorID]Timestamp),
	}
}

// Actor returns the identity this tracker issues events under.
func (t *Tracker) Actor() ActorID {
	return t.actor
}

// Tick issues a timestamp for a local event.
func (t *Tracker) Tick() (Event, error) {
	ts, err := t.clock.Now()
	if err != nil {
		return Event{}, err
	}
	return Event{Actor: t.actor, Timestamp: ts}, nil
}

// Receive merges an inbound event into the clock, records it in the
// witnessed table and returns the local event marking the receipt. The
// returned event causally succeeds both the previous local value and ev.
func (t *Tracker) Receive(ev Event) (Event, error) {
	ts, err := t.clock.Witness(ev.Timestamp)
	if err != nil {
		return Event{}, err
	}

	t.mu.Lock()
	if prev, ok := t.witnessed[ev.Actor]; !ok || prev.Before(ev.Timestamp) {
		t.witnessed[ev.Actor] = ev.Timestamp
	}
	t.mu.Unlock()

	return Event{Actor: t.actor, Timestamp: ts}, nil
}

// Witnessed returns the highest timestamp received from the given actor.
func (t *Tracker) Witnessed(actor ActorID) (Timestamp, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ts, ok := t.witnessed[actor]
	return ts, ok
}

// Concurrent reports whether two events are causally unrelated as far as this
// tracker can tell. Events from the same actor are never concurrent, they are
// totally ordered by timestamp. Across actors, an event issued here after its
// counterpart was witnessed is a causal successor; any pair not linked that
// way is reported concurrent.
func (t *Tracker) Concurrent(a, b Event) bool {
	if a.Actor == b.Actor {
		return false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	return !t.follows(a, b) && !t.follows(b, a)
}

// follows reports whether later, issued by this tracker's actor, was issued
// after earlier had been witnessed here. Caller holds t.mu.
func (t *Tracker) follows(later, earlier Event) bool {
	if later.Actor != t.actor {
		return false
	}
	seen, ok := t.witnessed[earlier.Actor]
	if !ok {
		return false
	}
	return !earlier.Timestamp.After(seen) && earlier.Timestamp.Before(later.Timestamp)
}

// trackerState is the wire form of a snapshot. Actor IDs travel as strings so
// every codec backend renders the map the same way.
type trackerState struct {
	Actor     string               `msgpack:"a" json:"a"`
	Current   Timestamp            `msgpack:"c" json:"c"`
	Witnessed map[string]Timestamp `msgpack:"w" json:"w"`
}

// Snapshot serializes the tracker state (current timestamp plus witnessed
// table) with the given codec, compressing the result when comp is non-nil.
// The embedding system decides where the bytes go.
func (t *Tracker) Snapshot(s codec.Serializer, comp compression.Compressor) ([]byte, error) {
	t.mu.RLock()
	state := trackerState{
		Actor:     t.actor.String(),
		Current:   t.clock.Current(),
		Witnessed: make(map[string]Timestamp, len(t.witnessed)),
	}
	for actor, ts := range t.witnessed {
		state.Witnessed[actor.String()] = ts
	}
	t.mu.RUnlock()

	data, err := s.Marshal(&state)
	if err != nil {
		return nil, fmt.Errorf("hlc: snapshot encode: %w", err)
	}
	if comp != nil {
		if data, err = comp.Compress(data); err != nil {
			return nil, fmt.Errorf("hlc: snapshot compress: %w", err)
		}
	}
	return data, nil
}

// Restore loads a snapshot produced by Snapshot. The snapshot's current
// timestamp is witnessed rather than assigned, so the clock never moves
// backward even when restoring stale state over a live tracker.
func (t *Tracker) Restore(data []byte, s codec.Serializer, comp compression.Compressor) error {
	var err error
	if comp != nil {
		if data, err = comp.Decompress(data); err != nil {
			return fmt.Errorf("hlc: snapshot decompress: %w", err)
		}
	}

	var state trackerState
	if err := s.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("hlc: snapshot decode: %w", err)
	}

	if _, err := t.clock.Witness(state.Current); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for key, ts := range state.Witnessed {
		actor, err := ParseActorID(key)
		if err != nil {
			return fmt.Errorf("hlc: snapshot actor id: %w", err)
		}
		if prev, ok := t.witnessed[actor]; !ok || prev.Before(ts) {
			t.witnessed[actor] = ts
		}
	}
	return nil
}
