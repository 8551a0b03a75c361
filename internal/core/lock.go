package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const lockRetryDelay = 250 * time.Millisecond

// acquireInstallLock takes the advisory lock serializing installs of one
// tool version across processes. It blocks until the lock is free or ctx
// is done.
func acquireInstallLock(ctx context.Context, path string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating lock directory: %w", err)
	}
	fl := flock.New(path)
	locked, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("acquiring install lock %s: %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("acquiring install lock %s: lock not acquired", path)
	}
	return func() { _ = fl.Unlock() }, nil
}
