// Package lock provides an exclusive advisory file lock with a bounded wait.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/halcyonnouveau/sopmod/internal/messages"
)

var errWouldBlock = errors.New("lock held by another process")

var (
	tryLockFn = tryLock
	unlockFn  = unlock
	lockSleep = time.Sleep
)

var (
	waitTimeout = 60 * time.Second
	pollEvery   = 100 * time.Millisecond
)

// Lock is a held file lock.
type Lock struct {
	file *os.File
}

// With acquires the lock at path, runs fn, and releases the lock.
func With(path string, fn func() error) error {
	l, err := Acquire(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = l.Release()
	}()
	return fn()
}

// Acquire opens or creates path and takes an exclusive lock, polling until
// the wait timeout elapses.
func Acquire(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf(messages.LockOpenFmt, path, err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf(messages.LockOpenFmt, path, err)
	}
	deadline := time.Now().Add(waitTimeout)
	for {
		err := tryLockFn(file)
		if err == nil {
			return &Lock{file: file}, nil
		}
		if !errors.Is(err, errWouldBlock) {
			_ = file.Close()
			return nil, fmt.Errorf(messages.LockAcquireFmt, path, err)
		}
		if time.Now().After(deadline) {
			_ = file.Close()
			return nil, fmt.Errorf(messages.LockTimeoutFmt, path, waitTimeout)
		}
		lockSleep(pollEvery)
	}
}

// Release unlocks and closes the lock file.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	if err := unlockFn(l.file); err != nil {
		_ = l.file.Close()
		return err
	}
	return l.file.Close()
}
