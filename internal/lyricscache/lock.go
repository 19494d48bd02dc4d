package lyricscache

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/flock"
)

const lockRetryDelay = 50 * time.Millisecond

// LockPath returns the advisory lock file guarding the cache at path.
func LockPath(path string) string {
	return path + ".lock"
}

func lockShared(ctx context.Context, path string) (func(), error) {
	lock := flock.New(LockPath(path))
	ok, err := lock.TryRLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("acquire shared cache lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("acquire shared cache lock: %s busy", LockPath(path))
	}
	return func() { _ = lock.Unlock() }, nil
}

func lockExclusive(ctx context.Context, path string) (func(), error) {
	lock := flock.New(LockPath(path))
	ok, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("acquire cache lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("acquire cache lock: %s busy", LockPath(path))
	}
	return func() { _ = lock.Unlock() }, nil
}
