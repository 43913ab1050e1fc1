package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesa-console/internal/core/confirm"
	"mesa-console/internal/metrics"
)

func TestDeletionsConfirm(t *testing.T) {
	m := metrics.New()
	d := NewDeletions(m, discardLogger())
	var calls atomic.Int32
	del := func(context.Context) error {
		if calls.Add(1) == 1 {
			return errors.New("conflict")
		}
		return nil
	}

	flow, err := d.Confirm(context.Background(), "agencies", "1", del)
	require.Error(t, err)
	assert.Equal(t, confirm.Failed, flow.State())

	flow, err = d.Confirm(context.Background(), "agencies", "1", del)
	require.NoError(t, err)
	assert.Equal(t, confirm.Closed, flow.State())

	n, err := testutil.GatherAndCount(m.Registry(), "mesa_console_delete_confirmations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestDeletionsConcurrentSubmitIssuesOneRequest(t *testing.T) {
	d := NewDeletions(nil, discardLogger())
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
		_, _ = d.Confirm(context.Background(), "ads", "3", del)
	}()

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	_, err := d.Confirm(context.Background(), "ads", "3", del)
	assert.ErrorIs(t, err, confirm.ErrPending)
	assert.False(t, d.Cancel("ads", "3"))

	close(release)
	wg.Wait()
	assert.Equal(t, int32(1), calls.Load())
}

func TestDeletionsDialogIsReadOnly(t *testing.T) {
	d := NewDeletions(nil, discardLogger())
	assert.Equal(t, confirm.Idle, d.Dialog("users", "2"))
	assert.True(t, d.Cancel("users", "2"))
	assert.Zero(t, d.registry.Len())

	flow, err := d.Confirm(context.Background(), "users", "2", func(context.Context) error { return errors.New("boom") })
	require.Error(t, err)
	assert.Equal(t, confirm.Failed, flow.State())
	assert.Equal(t, confirm.Idle, d.Dialog("users", "2"))
	assert.Zero(t, d.registry.Len())
}
