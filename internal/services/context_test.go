package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"lyricfeat/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRunID(ctx, "run-1")
	ctx = services.WithStage(ctx, "fetch")
	ctx = services.WithTrackURI(ctx, "spotify:track:abc")

	if id, ok := services.RunIDFromContext(ctx); !ok || id != "run-1" {
		t.Fatalf("unexpected run id: %v %v", id, ok)
	}
	if stage, ok := services.StageFromContext(ctx); !ok || stage != "fetch" {
		t.Fatalf("unexpected stage: %v %v", stage, ok)
	}
	if uri, ok := services.TrackURIFromContext(ctx); !ok || uri != "spotify:track:abc" {
		t.Fatalf("unexpected track uri: %v %v", uri, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithStage(ctx, "")
	ctx = services.WithRunID(ctx, "")
	ctx = services.WithTrackURI(ctx, "")
	if _, ok := services.StageFromContext(ctx); ok {
		t.Fatal("expected no stage value")
	}
	if _, ok := services.RunIDFromContext(ctx); ok {
		t.Fatal("expected no run id")
	}
	if _, ok := services.TrackURIFromContext(ctx); ok {
		t.Fatal("expected no track uri")
	}
}

func TestNewRunIDIsUUID(t *testing.T) {
	id := services.NewRunID()
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected uuid, got %q: %v", id, err)
	}
	if id == services.NewRunID() {
		t.Fatal("expected distinct run ids")
	}
}
