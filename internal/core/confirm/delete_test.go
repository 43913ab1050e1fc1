package confirm

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	timeout = time.Second
	tick    = time.Millisecond
)

func TestConfirmSuccessRunsCallbackAndCloses(t *testing.T) {
	var calls, successes int
	f := NewDeleteFlow(func(context.Context) error {
		calls++
		return nil
	}, func() { successes++ })

	require.NoError(t, f.Confirm(context.Background()))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, successes)
	assert.Equal(t, Closed, f.State())
	assert.ErrorIs(t, f.Confirm(context.Background()), ErrClosed)
	assert.Equal(t, 1, calls)
}

func TestConfirmFailureStaysOpenForRetry(t *testing.T) {
	boom := errors.New("boom")
	var calls int
	f := NewDeleteFlow(func(context.Context) error {
		calls++
		if calls == 1 {
			return boom
		}
		return nil
	}, nil)

	err := f.Confirm(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, Failed, f.State())
	assert.ErrorIs(t, f.Err(), boom)
	assert.False(t, f.Busy())

	require.NoError(t, f.Confirm(context.Background()))
	assert.Equal(t, 2, calls)
	assert.NoError(t, f.Err())
	assert.Equal(t, Closed, f.State())
}

func TestConfirmWhilePendingIssuesNoSecondRequest(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	f := NewDeleteFlow(func(context.Context) error {
		calls.Add(1)
		close(started)
		<-release
		return nil
	}, nil)

	done := make(chan error, 1)
	go func() { done <- f.Confirm(context.Background()) }()
	<-started

	assert.True(t, f.Busy())
	assert.ErrorIs(t, f.Confirm(context.Background()), ErrPending)
	assert.False(t, f.Cancel())

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCancelClosesIdleFlow(t *testing.T) {
	f := NewDeleteFlow(func(context.Context) error { return nil }, nil)
	assert.True(t, f.Cancel())
	assert.Equal(t, Closed, f.State())
}

func TestRegistrySharesInFlightFlagPerEntity(t *testing.T) {
	reg := NewRegistry()
	release := make(chan struct{})
	var calls atomic.Int32
	del := func(context.Context) error {
		calls.Add(1)
		<-release
		return nil
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = reg.Confirm(context.Background(), "agency", "7", del, nil)
	}()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, timeout, tick)
	assert.Equal(t, Pending, reg.State("agency", "7"))
	assert.False(t, reg.Cancel("agency", "7"))

	running, err := reg.Confirm(context.Background(), "agency", "7", del, nil)
	assert.ErrorIs(t, err, ErrPending)
	assert.True(t, running.Busy())

	other, err := reg.Confirm(context.Background(), "agency", "8", func(context.Context) error { return nil }, nil)
	require.NoError(t, err)
	assert.Equal(t, Closed, other.State())

	close(release)
	wg.Wait()
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, Idle, reg.State("agency", "7"))
}

func TestRegistryDropsFinishedAttempts(t *testing.T) {
	reg := NewRegistry()
	boom := errors.New("upstream down")
	var calls int
	del := func(context.Context) error {
		calls++
		if calls == 1 {
			return boom
		}
		return nil
	}

	f, err := reg.Confirm(context.Background(), "user", "3", del, nil)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, Failed, f.State())
	assert.ErrorIs(t, f.Err(), boom)

	// The failure belongs to the submitter; the entity is free again.
	_, ok := reg.Lookup("user", "3")
	assert.False(t, ok)
	assert.Equal(t, Idle, reg.State("user", "3"))
	assert.True(t, reg.Cancel("user", "3"))

	again, err := reg.Confirm(context.Background(), "user", "3", del, nil)
	require.NoError(t, err)
	assert.NotSame(t, f, again)
	assert.Equal(t, Closed, again.State())
	assert.Equal(t, 2, calls)
}

func TestRegistryRetainsNothingWhenIdle(t *testing.T) {
	reg := NewRegistry()
	for i := 0; i < 1000; i++ {
		id := strconv.Itoa(i)
		assert.Equal(t, Idle, reg.State("ads", id))
		assert.True(t, reg.Cancel("ads", id))
		_, _ = reg.Confirm(context.Background(), "ads", id, func(context.Context) error { return errors.New("boom") }, nil)
	}
	assert.Zero(t, reg.Len())
}
