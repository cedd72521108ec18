package pkg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusOK, "ok"},
		{StatusInvalidParameter, "invalid-parameter"},
		{StatusTimeout, "timeout"},
		{StatusNoMemory, "no-memory"},
		{StatusError, "error"},
		{Status(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.String())
		})
	}
}

func TestStatus_Err(t *testing.T) {
	tests := []struct {
		status  Status
		wantErr error
	}{
		{StatusOK, nil},
		{StatusInvalidParameter, ErrInvalidParameter},
		{StatusTimeout, ErrTimeout},
		{StatusNoMemory, ErrNoMemory},
		{StatusError, ErrGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			err := tt.status.Err()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestStatusFromErr(t *testing.T) {
	tests := []struct {
		err  error
		want Status
	}{
		{nil, StatusOK},
		{ErrInvalidParameter, StatusInvalidParameter},
		{ErrTimeout, StatusTimeout},
		{ErrNoMemory, StatusNoMemory},
		{ErrBusy, StatusError},
		{errors.New("unrecognized"), StatusError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFromErr(tt.err))
	}
}

func TestSentinelErrors_Distinct(t *testing.T) {
	errs := []error{
		ErrInvalidParameter,
		ErrTimeout,
		ErrNoMemory,
		ErrGeneric,
		ErrAlreadyRunning,
		ErrNotRunning,
		ErrBusy,
		ErrNotSupported,
		ErrNotPresent,
		ErrNotConnected,
		ErrMessageSize,
		ErrNotPermitted,
		ErrTooLate,
		ErrNoBufferSpace,
		ErrDestroyed,
	}

	for i, err1 := range errs {
		for j, err2 := range errs {
			if i != j {
				assert.Falsef(t, errors.Is(err1, err2), "error %d and %d are equal", i, j)
			}
		}
	}
}
