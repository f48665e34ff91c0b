package runlock_test

import (
	"errors"
	"path/filepath"
	"testing"

	"starsort/internal/runlock"
)

func TestAcquireCreatesOutputDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "organized")
	lock, err := runlock.Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer lock.Release()

	if lock.Path() != filepath.Join(dir, ".starsort.lock") {
		t.Fatalf("unexpected lock path %q", lock.Path())
	}
}

func TestSecondAcquireFails(t *testing.T) {
	dir := t.TempDir()
	first, err := runlock.Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer first.Release()

	if _, err := runlock.Acquire(dir); !errors.Is(err, runlock.ErrHeld) {
		t.Fatalf("second acquire should report ErrHeld, got %v", err)
	}
}

func TestReleaseAllowsReacquire(t *testing.T) {
	dir := t.TempDir()
	lock, err := runlock.Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}

	again, err := runlock.Acquire(dir)
	if err != nil {
		t.Fatalf("reacquire after release: %v", err)
	}
	defer again.Release()
}

func TestNilLockReleaseIsSafe(t *testing.T) {
	var lock *runlock.Lock
	if err := lock.Release(); err != nil {
		t.Fatalf("nil Release: %v", err)
	}
}
