package board

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioLabels is the literal 3x3 board used throughout the spec's
// end-to-end examples: a "perfect" board with three matching pairs and one
// unpaired extra ("x").
var scenarioLabels = []string{
	"u", "u", "a",
	"b", "b", "c",
	"c", "a", "x",
}

func newScenarioBoard(t *testing.T) *Board {
	return newTestBoard(t, 3, 3, scenarioLabels, WaitAsync)
}

// TestScenario_S1_BasicMatch follows the spec's S1: a matched pair is
// removed only on the matching player's next flipFirst, not immediately.
func TestScenario_S1_BasicMatch(t *testing.T) {
	b := newScenarioBoard(t)
	ctx := context.Background()

	require.NoError(t, b.FlipFirst(ctx, "alice", Position{0, 0}))
	assert.Contains(t, b.Snapshot("alice"), "my u")

	require.NoError(t, b.FlipSecond("alice", Position{0, 1}))
	snap := b.Snapshot("alice")
	assert.Contains(t, snap, "my u")

	require.NoError(t, b.FlipFirst(ctx, "alice", Position{2, 2}))
	snap = b.Snapshot("alice")
	assert.Equal(t, "none", cellToken(b.cells[b.index(Position{0, 0})], "alice"))
	assert.Equal(t, "none", cellToken(b.cells[b.index(Position{0, 1})], "alice"))
	assert.Contains(t, snap, "my x")
}

// TestScenario_S2_MismatchFlipsDown follows the spec's S2.
func TestScenario_S2_MismatchFlipsDown(t *testing.T) {
	b := newScenarioBoard(t)
	ctx := context.Background()

	require.NoError(t, b.FlipFirst(ctx, "alice", Position{0, 0}))
	err := b.FlipSecond("alice", Position{0, 2})
	require.NoError(t, err)
	assert.Equal(t, "up", cellToken(b.cells[b.index(Position{0, 0})], "bob")[:2])

	require.NoError(t, b.FlipFirst(ctx, "alice", Position{1, 0}))
	assert.Equal(t, "down", cellToken(b.cells[b.index(Position{0, 0})], "alice"))
	assert.Equal(t, "down", cellToken(b.cells[b.index(Position{0, 2})], "alice"))
}

// TestScenario_S3_FIFOWaiting follows the spec's S3: two suspended waiters
// on the same cell resume in exactly the order they queued.
func TestScenario_S3_FIFOWaiting(t *testing.T) {
	b := newScenarioBoard(t)
	ctx := context.Background()
	pos := Position{0, 0}

	require.NoError(t, b.FlipFirst(ctx, "alice", pos))

	bobDone := make(chan error, 1)
	go func() { bobDone <- b.FlipFirst(ctx, "bob", pos) }()
	time.Sleep(20 * time.Millisecond)

	charlieDone := make(chan error, 1)
	go func() { charlieDone <- b.FlipFirst(ctx, "charlie", pos) }()
	time.Sleep(20 * time.Millisecond)

	// Alice's second flip mismatches (u at (0,0) vs c at (1,2)), releasing
	// (0,0) and waking exactly one waiter: Bob.
	require.NoError(t, b.FlipSecond("alice", Position{1, 2}))

	select {
	case err := <-bobDone:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("bob was not woken first")
	}
	select {
	case <-charlieDone:
		t.Fatal("charlie must not be woken before bob releases (0,0) again")
	case <-time.After(30 * time.Millisecond):
	}
	assert.True(t, b.HasFirstSelection("bob"))
	assert.Equal(t, "bob", b.cells[b.index(pos)].controller)

	// Alice's next first flip settles the mismatch (3-B); it flips (1,2)
	// back down but leaves (0,0) face up, since Bob now controls it.
	require.NoError(t, b.FlipFirst(ctx, "alice", Position{2, 2}))
	assert.Equal(t, "bob", b.cells[b.index(pos)].controller)

	// Bob's second flip mismatches again, releasing (0,0) to Charlie.
	require.NoError(t, b.FlipSecond("bob", Position{1, 2}))

	select {
	case err := <-charlieDone:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("charlie was not woken after bob released (0,0)")
	}
	assert.Equal(t, "charlie", b.cells[b.index(pos)].controller)
}

// TestScenario_S4_SecondNeverWaits follows the spec's S4.
func TestScenario_S4_SecondNeverWaits(t *testing.T) {
	b := newScenarioBoard(t)
	ctx := context.Background()

	require.NoError(t, b.FlipFirst(ctx, "alice", Position{0, 0}))
	require.NoError(t, b.FlipFirst(ctx, "bob", Position{1, 1}))

	done := make(chan error, 1)
	go func() { done <- b.FlipSecond("bob", Position{0, 0}) }()

	select {
	case err := <-done:
		require.ErrorIs(t, err, ErrSecondContested)
	case <-time.After(250 * time.Millisecond):
		t.Fatal("flipSecond against a contested cell must never wait")
	}

	assert.False(t, b.HasFirstSelection("bob"))
	assert.Equal(t, "up", cellToken(b.cells[b.index(Position{1, 1})], "nobody")[:2])
}

// TestScenario_S5_RemovalWakesWaiterWithEmptySpace follows the spec's S5.
func TestScenario_S5_RemovalWakesWaiterWithEmptySpace(t *testing.T) {
	b := newScenarioBoard(t)
	ctx := context.Background()
	pos := Position{0, 0}

	require.NoError(t, b.FlipFirst(ctx, "alice", pos))
	require.NoError(t, b.FlipSecond("alice", Position{0, 1}))

	bobDone := make(chan error, 1)
	go func() { bobDone <- b.FlipFirst(ctx, "bob", pos) }()
	time.Sleep(20 * time.Millisecond)

	// Alice's next first flip settles the match (3-A), removing (0,0) and
	// (0,1) and waking every waiter on them with EmptySpace.
	require.NoError(t, b.FlipFirst(ctx, "alice", Position{2, 2}))

	select {
	case err := <-bobDone:
		require.ErrorIs(t, err, ErrEmptySpace)
	case <-time.After(time.Second):
		t.Fatal("bob was not woken by the 3-A removal")
	}
}

// TestScenario_S6_MapPreservesPairs follows the spec's S6.
func TestScenario_S6_MapPreservesPairs(t *testing.T) {
	b := newScenarioBoard(t)
	ctx := context.Background()

	require.NoError(t, b.FlipFirst(ctx, "alice", Position{0, 0}))
	require.NoError(t, b.FlipSecond("alice", Position{0, 1}))

	var mapErr error
	mapDone := make(chan struct{})
	go func() {
		mapErr = b.Map(ctx, func(label string) string { return "T_" + label })
		close(mapDone)
	}()
	<-mapDone
	require.NoError(t, mapErr)

	idx0 := b.index(Position{0, 0})
	idx1 := b.index(Position{0, 1})
	assert.Equal(t, "T_u", b.cells[idx0].label)
	assert.Equal(t, "T_u", b.cells[idx1].label)
	assert.Equal(t, "alice", b.cells[idx0].controller)
	assert.Equal(t, "alice", b.cells[idx1].controller)
}

// TestScenario_S7_Watch follows the spec's S7.
func TestScenario_S7_Watch(t *testing.T) {
	b := newScenarioBoard(t)
	ctx := context.Background()

	watchDone := make(chan string, 1)
	go func() {
		snap, err := b.Watch(ctx, "bob")
		require.NoError(t, err)
		watchDone <- snap
	}()
	time.Sleep(20 * time.Millisecond)

	select {
	case <-watchDone:
		t.Fatal("watch resolved with no change")
	default:
	}

	require.NoError(t, b.FlipFirst(ctx, "alice", Position{0, 0}))
	select {
	case snap := <-watchDone:
		assert.Contains(t, snap, "up u")
	case <-time.After(time.Second):
		t.Fatal("watch did not resolve after 1-B")
	}

	// A second watch should not resolve on a pure 1-C control transfer of a
	// different face-up, uncontrolled cell.
	idx := b.index(Position{2, 2})
	b.cells[idx].face = Up

	watchDone2 := make(chan struct{}, 1)
	go func() {
		_, _ = b.Watch(ctx, "bob")
		watchDone2 <- struct{}{}
	}()
	time.Sleep(20 * time.Millisecond)

	require.NoError(t, b.FlipFirst(ctx, "bob", Position{2, 2})) // 1-C: already up, uncontrolled
	select {
	case <-watchDone2:
		t.Fatal("1-C control transfer must not resolve watch")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, b.FlipFirst(ctx, "alice", Position{1, 0}))
	select {
	case <-watchDone2:
	case <-time.After(time.Second):
		t.Fatal("watch did not resolve after the later 1-B change")
	}
}
