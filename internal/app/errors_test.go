package app

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsInvalidRequestError(t *testing.T) {
	stdErr := errors.New("simple error")
	assert.False(t, IsInvalidRequestError(stdErr))

	irErr := InvalidRequestError("invalid request")
	assert.True(t, IsInvalidRequestError(irErr))

	wrapperErr := fmt.Errorf("wrapping message: %w", irErr)
	assert.True(t, IsInvalidRequestError(wrapperErr))
}

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name              string
		err               error
		wantInvalid       bool
		wantNotFound      bool
		wantScheduled     bool
		wantTooManyReqest bool
	}{
		{
			name: "nil",
			err:  nil,
		},
		{
			name: "plain",
			err:  errors.New("plain"),
		},
		{
			name:         "not found",
			err:          fmt.Errorf("fetching: %w", NotFoundError("no such repo")),
			wantNotFound: true,
		},
		{
			name:          "scheduled",
			err:           fmt.Errorf("fetching: %w", ScheduledForLaterError("scheduled")),
			wantScheduled: true,
		},
		{
			name:              "too many requests",
			err:               fmt.Errorf("fetching: %w", TooManyRequestsError("rate limit exceeded")),
			wantTooManyReqest: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantInvalid, IsInvalidRequestError(tt.err))
			assert.Equal(t, tt.wantNotFound, IsNotFoundError(tt.err))
			assert.Equal(t, tt.wantScheduled, IsScheduledForLaterError(tt.err))
			assert.Equal(t, tt.wantTooManyReqest, IsTooManyRequestsError(tt.err))
		})
	}
}
