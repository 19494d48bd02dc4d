package testsupport

import (
	"context"
	"testing"

	"lyricfeat/internal/featurestore"
)

// MustOpenStore opens a featurestore.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, path string) *featurestore.Store {
	t.Helper()

	store, err := featurestore.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("featurestore.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
