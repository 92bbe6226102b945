package db

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryPolicyBackoff(t *testing.T) {
	p := RetryPolicy{MaxAttempts: 5, BaseDelay: 10 * time.Millisecond, MaxDelay: 250 * time.Millisecond}

	cases := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 10 * time.Millisecond},
		{1, 20 * time.Millisecond},
		{2, 40 * time.Millisecond},
		{4, 160 * time.Millisecond},
		{5, 250 * time.Millisecond},
		{30, 250 * time.Millisecond},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, p.Backoff(tc.attempt), "attempt %d", tc.attempt)
	}
}

func TestRetryPolicyWaitInjectedSleep(t *testing.T) {
	var slept []time.Duration
	p := RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   10 * time.Millisecond,
		MaxDelay:    100 * time.Millisecond,
		Sleep:       func(d time.Duration) { slept = append(slept, d) },
	}

	require.NoError(t, p.Wait(context.Background(), 0))
	require.NoError(t, p.Wait(context.Background(), 1))
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}, slept)
}

func TestRetryPolicyWaitCanceled(t *testing.T) {
	p := DefaultRetryPolicy()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, p.Wait(ctx, 0))
}

func TestIsBusy(t *testing.T) {
	busy := sqlite3.Error{Code: sqlite3.ErrBusy}
	locked := sqlite3.Error{Code: sqlite3.ErrLocked}

	assert.True(t, IsBusy(busy))
	assert.True(t, IsBusy(locked))
	assert.True(t, IsBusy(fmt.Errorf("commit: %w", busy)))
	assert.False(t, IsBusy(sqlite3.Error{Code: sqlite3.ErrConstraint}))
	assert.False(t, IsBusy(errors.New("boom")))
	assert.False(t, IsBusy(nil))
}

func TestIsCorrupt(t *testing.T) {
	assert.True(t, IsCorrupt(sqlite3.Error{Code: sqlite3.ErrCorrupt}))
	assert.True(t, IsCorrupt(sqlite3.Error{Code: sqlite3.ErrNotADB}))
	assert.False(t, IsCorrupt(sqlite3.Error{Code: sqlite3.ErrBusy}))
	assert.False(t, IsCorrupt(errors.New("boom")))
}
