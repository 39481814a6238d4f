package dbretry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wildsight/wildsight/internal/database/dbretry"
)

var (
	errPermanent = errors.New("constraint violation")
	errTransient = errors.New("read tcp: connection reset by peer")
)

func TestIsRetryableError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{
			name:      "nil error",
			err:       nil,
			retryable: false,
		},
		{
			name:      "plain application error",
			err:       errPermanent,
			retryable: false,
		},
		{
			name:      "connection reset",
			err:       errTransient,
			retryable: true,
		},
		{
			name:      "broken pipe",
			err:       errors.New("write: broken pipe"),
			retryable: true,
		},
		{
			name:      "io timeout",
			err:       errors.New("dial tcp: i/o timeout"),
			retryable: true,
		},
		{
			name:      "context deadline",
			err:       context.DeadlineExceeded,
			retryable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.retryable, dbretry.IsRetryableError(tt.err))
		})
	}
}

func TestOperationStopsOnPermanentError(t *testing.T) {
	t.Parallel()

	calls := 0
	_, err := dbretry.Operation(t.Context(), func(context.Context) (int, error) {
		calls++
		return 0, errPermanent
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, errPermanent)
	assert.Equal(t, 1, calls)
}

func TestOperationRetriesTransientError(t *testing.T) {
	t.Parallel()

	calls := 0
	result, err := dbretry.Operation(t.Context(), func(context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, errTransient
		}
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, result)
	assert.Equal(t, 3, calls)
}

func TestNoResultRetriesTransientError(t *testing.T) {
	t.Parallel()

	calls := 0
	err := dbretry.NoResult(t.Context(), func(context.Context) error {
		calls++
		if calls < 2 {
			return errTransient
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
