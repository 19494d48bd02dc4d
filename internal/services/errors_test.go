package services_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"lyricfeat/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalService, "fetch", "search", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalService) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"fetch", "search", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarkerAndDetail(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestExitCodeMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"configuration", services.Wrap(services.ErrConfiguration, "config", "load", "bad", nil), services.ExitUsage},
		{"validation", services.Wrap(services.ErrValidation, "cache", "read", "malformed", nil), services.ExitDataProblem},
		{"external", fmt.Errorf("outer: %w", services.Wrap(services.ErrExternalService, "fetch", "search", "", nil)), services.ExitUnavailable},
		{"timeout", services.Wrap(services.ErrTimeout, "fetch", "lyrics", "", nil), services.ExitUnavailable},
		{"plain", errors.New("io"), services.ExitFailure},
	}
	for _, tt := range tests {
		if got := services.ExitCode(tt.err); got != tt.want {
			t.Fatalf("%s: expected exit code %d, got %d", tt.name, tt.want, got)
		}
	}
}
