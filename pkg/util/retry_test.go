package util

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetry(t *testing.T) {
	tests := []struct {
		name       string
		failures   int
		attempts   int
		wantCalls  int
		wantDelays []time.Duration
		wantErr    bool
	}{
		{
			name:       "succeeds first try without sleeping",
			failures:   0,
			attempts:   3,
			wantCalls:  1,
			wantDelays: nil,
		},
		{
			name:       "fails twice then succeeds with doubling delays",
			failures:   2,
			attempts:   3,
			wantCalls:  3,
			wantDelays: []time.Duration{time.Second, 2 * time.Second},
		},
		{
			name:       "exhausts attempts and returns last error",
			failures:   3,
			attempts:   3,
			wantCalls:  3,
			wantDelays: []time.Duration{time.Second, 2 * time.Second},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var delays []time.Duration
			origSleep := Sleep
			Sleep = func(ctx context.Context, d time.Duration) error {
				delays = append(delays, d)
				return nil
			}
			defer func() { Sleep = origSleep }()

			calls := 0
			result, err := Retry(context.Background(), tt.attempts, time.Second, func() (string, error) {
				calls++
				if calls <= tt.failures {
					return "", errors.New("upstream unavailable")
				}
				return "ok", nil
			})

			assert.Equal(t, tt.wantCalls, calls)
			assert.Equal(t, tt.wantDelays, delays)
			if tt.wantErr {
				require.Error(t, err)
				assert.EqualError(t, err, "upstream unavailable")
			} else {
				require.NoError(t, err)
				assert.Equal(t, "ok", result)
			}
		})
	}
}

func TestRetryContextCancelled(t *testing.T) {
	origSleep := Sleep
	defer func() { Sleep = origSleep }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := Retry(ctx, 3, time.Millisecond, func() (int, error) {
		calls++
		return 0, errors.New("boom")
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", Preview("short", 10))
	assert.Equal(t, "abc...", Preview("abcdef", 3))
	// rune-aware, not byte-aware
	assert.Equal(t, "금리와...", Preview("금리와 환율", 3))
}

func TestSplitKeywords(t *testing.T) {
	assert.Equal(t, []string{"금리", "주식", "부동산"}, SplitKeywords("금리, 주식 , 부동산"))
	assert.Empty(t, SplitKeywords(""))
	assert.Equal(t, []string{"etf"}, SplitKeywords(`"etf", `))
}
