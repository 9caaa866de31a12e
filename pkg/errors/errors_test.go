package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKitErrorError(t *testing.T) {
	t.Run("message only", func(t *testing.T) {
		err := &KitError{Code: "TEST", Message: "something broke"}
		assert.Equal(t, "something broke", err.Error())
	})

	t.Run("includes sorted details", func(t *testing.T) {
		err := &KitError{
			Code:    "TEST",
			Message: "something broke",
			Details: map[string]string{"b": "2", "a": "1"},
		}
		assert.Equal(t, "something broke (a: 1) (b: 2)", err.Error())
	})

	t.Run("includes cause", func(t *testing.T) {
		err := &KitError{
			Code:    "TEST",
			Message: "request failed",
			Cause:   errors.New("connection refused"),
		}
		assert.Equal(t, "request failed: connection refused", err.Error())
	})
}

func TestKitErrorIs(t *testing.T) {
	t.Run("matches by code", func(t *testing.T) {
		wrapped := Wrap(ErrNetworkError, "fetching balance")
		assert.True(t, errors.Is(wrapped, ErrNetworkError))
	})

	t.Run("does not match different code", func(t *testing.T) {
		assert.False(t, errors.Is(ErrNetworkError, ErrInvalidAddress))
	})

	t.Run("matches through fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", ErrTimeout)
		assert.True(t, errors.Is(err, ErrTimeout))
	})
}

func TestWrap(t *testing.T) {
	t.Run("nil returns nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, "context"))
	})

	t.Run("preserves code and exit code", func(t *testing.T) {
		err := Wrap(ErrInvalidResponse, "parsing tx status")

		var ke *KitError
		require.ErrorAs(t, err, &ke)
		assert.Equal(t, "INVALID_RESPONSE", ke.Code)
		assert.Equal(t, ExitNetwork, ke.ExitCode)
		assert.Contains(t, err.Error(), "parsing tx status")
	})

	t.Run("wraps plain errors as general", func(t *testing.T) {
		err := Wrap(errors.New("boom"), "doing work")

		var ke *KitError
		require.ErrorAs(t, err, &ke)
		assert.Equal(t, "GENERAL_ERROR", ke.Code)
	})
}

func TestWithDetails(t *testing.T) {
	err := WithDetails(ErrInvalidAddress, map[string]string{"address": "SPXX"})

	var ke *KitError
	require.ErrorAs(t, err, &ke)
	assert.Equal(t, "SPXX", ke.Details["address"])
	assert.True(t, errors.Is(err, ErrInvalidAddress))
}

func TestWithSuggestion(t *testing.T) {
	err := WithSuggestion(ErrConfigNotFound, "run stackskit config init")

	var ke *KitError
	require.ErrorAs(t, err, &ke)
	assert.Equal(t, "run stackskit config init", ke.Suggestion)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"kit error", ErrWalletUnavailable, ExitWallet},
		{"wrapped kit error", Wrap(ErrNotFound, "tx lookup"), ExitNotFound},
		{"plain error", errors.New("boom"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestCode(t *testing.T) {
	assert.Equal(t, "TIMEOUT", Code(ErrTimeout))
	assert.Equal(t, "GENERAL_ERROR", Code(errors.New("boom")))
}
