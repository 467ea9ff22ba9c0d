package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMapErrorToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", ErrNotFound, http.StatusNotFound},
		{"reward not found", ErrRewardNotFound, http.StatusNotFound},
		{"wrapped user points not found", fmt.Errorf("redeem: %w", ErrUserPointsNotFound), http.StatusNotFound},
		{"insufficient points", ErrInsufficientPoints, http.StatusUnprocessableEntity},
		{"inactive reward", ErrRewardInactive, http.StatusConflict},
		{"invalid input", fmt.Errorf("%w: amount must be positive", ErrInvalidInput), http.StatusBadRequest},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"rate limited", ErrRateLimitExceeded, http.StatusTooManyRequests},
		{"app error code wins", New(http.StatusServiceUnavailable, "search disabled", ErrNotFound), http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapErrorToStatus(tt.err); got != tt.want {
				t.Errorf("MapErrorToStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestNotFoundFamilyMatchesGenericSentinel(t *testing.T) {
	if !errors.Is(ErrRewardNotFound, ErrNotFound) {
		t.Error("ErrRewardNotFound should match ErrNotFound")
	}
	if !errors.Is(ErrUserPointsNotFound, ErrNotFound) {
		t.Error("ErrUserPointsNotFound should match ErrNotFound")
	}
	if errors.Is(ErrInsufficientPoints, ErrNotFound) {
		t.Error("ErrInsufficientPoints should not match ErrNotFound")
	}
}
