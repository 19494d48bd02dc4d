package genius

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestIsRetriable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"deadline", context.DeadlineExceeded, true},
		{"rate limited", &StatusError{Code: http.StatusTooManyRequests}, true},
		{"bad gateway", fmt.Errorf("wrap: %w", &StatusError{Code: http.StatusBadGateway}), true},
		{"not found", &StatusError{Code: http.StatusNotFound}, false},
		{"connection reset", errors.New("read: connection reset by peer"), true},
		{"other", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetriable(tt.err); got != tt.want {
				t.Fatalf("IsRetriable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestBackoffFor(t *testing.T) {
	if got := backoffFor(2*time.Second, 1, nil); got != 2*time.Second {
		t.Fatalf("attempt 1: got %v", got)
	}
	if got := backoffFor(2*time.Second, 3, nil); got != 8*time.Second {
		t.Fatalf("attempt 3: got %v", got)
	}
	if got := backoffFor(2*time.Second, 10, nil); got != MaxBackoff {
		t.Fatalf("expected cap at %v, got %v", MaxBackoff, got)
	}
	hinted := &StatusError{Code: http.StatusTooManyRequests, RetryAfter: 5 * time.Second}
	if got := backoffFor(2*time.Second, 1, hinted); got != 5*time.Second {
		t.Fatalf("expected Retry-After to win, got %v", got)
	}
}

func TestParseRetryAfter(t *testing.T) {
	if got := parseRetryAfter("3"); got != 3*time.Second {
		t.Fatalf("seconds form: got %v", got)
	}
	if got := parseRetryAfter(""); got != 0 {
		t.Fatalf("empty: got %v", got)
	}
	future := time.Now().Add(time.Minute).UTC().Format(http.TimeFormat)
	if got := parseRetryAfter(future); got <= 0 || got > time.Minute {
		t.Fatalf("date form: got %v", got)
	}
}

func TestSleepWithContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := SleepWithContext(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
