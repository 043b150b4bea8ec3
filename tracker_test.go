package hlc

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zamderax/hybrid-logical-clock/codec"
	"github.com/zamderax/hybrid-logical-clock/compression"
)

var (
	actorA = ActorID(uuid.MustParse("01960f9b-72ca-7a51-9efa-47c12f42a138"))
	actorB = ActorID(uuid.MustParse("4b1c5c5e-0d0a-4f8e-9d36-0b4c8f6a2d11"))
	actorC = ActorID(uuid.MustParse("7f3a2b10-9c44-4f0b-8a77-5e2d61c90b02"))
)

func newTestTracker(actor ActorID, readings ...uint64) *Tracker {
	return NewTracker(actor, NewClock(&Config{TimeSource: steppingSource(readings...)}))
}

func TestTrackerTick(t *testing.T) {
	tracker := newTestTracker(actorA, 100, 100)

	first, err := tracker.Tick()
	require.NoError(t, err)
	second, err := tracker.Tick()
	require.NoError(t, err)

	assert.Equal(t, actorA, first.Actor)
	assert.True(t, first.Timestamp.Before(second.Timestamp))
}

func TestTrackerReceive(t *testing.T) {
	tracker := newTestTracker(actorA, 100)
	remote := Event{Actor: actorB, Timestamp: NewWithLogical(150, 10)}

	local, err := tracker.Receive(remote)
	require.NoError(t, err)

	assert.Equal(t, actorA, local.Actor)
	assert.True(t, local.Timestamp.After(remote.Timestamp))

	seen, ok := tracker.Witnessed(actorB)
	require.True(t, ok)
	assert.Equal(t, remote.Timestamp, seen)

	_, ok = tracker.Witnessed(actorC)
	assert.False(t, ok)
}

func TestTrackerWitnessedKeepsHighest(t *testing.T) {
	tracker := newTestTracker(actorA, 100, 100, 100)

	_, err := tracker.Receive(Event{Actor: actorB, Timestamp: NewWithLogical(150, 10)})
	require.NoError(t, err)
	// A stale delivery must not move the watermark backward
	_, err = tracker.Receive(Event{Actor: actorB, Timestamp: NewWithLogical(140, 2)})
	require.NoError(t, err)

	seen, ok := tracker.Witnessed(actorB)
	require.True(t, ok)
	assert.Equal(t, NewWithLogical(150, 10), seen)
}

func TestTrackerConcurrent(t *testing.T) {
	tracker := newTestTracker(actorA, 100, 100, 100)

	remote := Event{Actor: actorB, Timestamp: NewWithLogical(150, 10)}
	local, err := tracker.Receive(remote)
	require.NoError(t, err)

	// The receipt event causally succeeds the remote event
	assert.False(t, tracker.Concurrent(local, remote))
	assert.False(t, tracker.Concurrent(remote, local))

	// Same actor is never concurrent
	other, err := tracker.Tick()
	require.NoError(t, err)
	assert.False(t, tracker.Concurrent(local, other))

	// An event from an actor never witnessed here is concurrent with
	// everything foreign to it
	stray := Event{Actor: actorC, Timestamp: New(300)}
	assert.True(t, tracker.Concurrent(stray, remote))
	assert.True(t, tracker.Concurrent(stray, local))

	// Equal timestamps from different actors are concurrent
	twinA := Event{Actor: actorB, Timestamp: New(500)}
	twinB := Event{Actor: actorC, Timestamp: New(500)}
	assert.True(t, tracker.Concurrent(twinA, twinB))
}

func TestTrackerLocalEventBeforeWitnessIsConcurrent(t *testing.T) {
	tracker := newTestTracker(actorA, 100, 100)

	early, err := tracker.Tick()
	require.NoError(t, err)

	remote := Event{Actor: actorB, Timestamp: NewWithLogical(150, 10)}
	_, err = tracker.Receive(remote)
	require.NoError(t, err)

	// early was issued before the remote event was witnessed, so the table
	// cannot link them
	assert.True(t, tracker.Concurrent(early, remote))
}

func TestTrackerSnapshotRestore(t *testing.T) {
	serializers := []codec.Serializer{
		codec.NewJsonCodec(),
		codec.NewShamatonMsgpackCodec(),
		codec.NewVmihailencoMsgpackCodec(),
		codec.NewHashicorpMsgpackCodec(),
	}

	for _, s := range serializers {
		t.Run(s.Name(), func(t *testing.T) {
			tracker := newTestTracker(actorA, 100, 100)
			_, err := tracker.Receive(Event{Actor: actorB, Timestamp: NewWithLogical(150, 10)})
			require.NoError(t, err)
			_, err = tracker.Receive(Event{Actor: actorC, Timestamp: New(120)})
			require.NoError(t, err)

			data, err := tracker.Snapshot(s, compression.NewSnappyCompressor())
			require.NoError(t, err)

			restored := newTestTracker(actorA, 100)
			require.NoError(t, restored.Restore(data, s, compression.NewSnappyCompressor()))

			seen, ok := restored.Witnessed(actorB)
			require.True(t, ok)
			assert.Equal(t, NewWithLogical(150, 10), seen)
			seen, ok = restored.Witnessed(actorC)
			require.True(t, ok)
			assert.Equal(t, New(120), seen)

			// The restored clock dominates the snapshot's current value
			assert.True(t, restored.clock.Current().After(tracker.clock.Current()))
		})
	}
}

func TestTrackerSnapshotWithoutCompression(t *testing.T) {
	tracker := newTestTracker(actorA, 100)
	_, err := tracker.Receive(Event{Actor: actorB, Timestamp: New(150)})
	require.NoError(t, err)

	data, err := tracker.Snapshot(codec.NewJsonCodec(), nil)
	require.NoError(t, err)

	restored := newTestTracker(actorB, 100)
	require.NoError(t, restored.Restore(data, codec.NewJsonCodec(), nil))

	seen, ok := restored.Witnessed(actorB)
	require.True(t, ok)
	assert.Equal(t, New(150), seen)
}

func TestTrackerRestoreNeverMovesClockBackward(t *testing.T) {
	tracker := newTestTracker(actorA, 100)
	data, err := tracker.Snapshot(codec.NewJsonCodec(), nil)
	require.NoError(t, err)

	live := newTestTracker(actorA, 500, 500)
	_, err = live.Tick()
	require.NoError(t, err)
	before := live.clock.Current()

	require.NoError(t, live.Restore(data, codec.NewJsonCodec(), nil))
	assert.False(t, live.clock.Current().Before(before))
}

func TestActorIDRoundTrip(t *testing.T) {
	id := NewActorID()
	parsed, err := ParseActorID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseActorID("not-a-uuid")
	assert.Error(t, err)
}
