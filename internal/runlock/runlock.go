// Package runlock enforces at-most-one collector run system-wide via a
// non-blocking flock on a fixed path. A busy lock is a skip, never a wait:
// the scheduler that invokes the collector will simply try again later.
package runlock

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Lock is a held single-instance lock. Release it on every exit path.
type Lock struct {
	f *os.File
}

// Acquire tries to take the exclusive lock at path without blocking.
// ok is false when another process already holds it; that is not an error.
func Acquire(path string) (lock *Lock, ok bool, err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, false, fmt.Errorf("failed to open lock file: %w", err)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		if err == unix.EWOULDBLOCK {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to acquire lock: %w", err)
	}
	return &Lock{f: f}, true, nil
}

// Release drops the lock. Safe to call exactly once; the flock is dropped
// with the descriptor even if the unlock itself fails.
func (l *Lock) Release() {
	unix.Flock(int(l.f.Fd()), unix.LOCK_UN)
	l.f.Close()
}
