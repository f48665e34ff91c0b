// Package preflight verifies the environment before the organizer mutates
// anything: the input tree must be readable, the output tree writable, and
// the output filesystem must hold enough free space for the frames about to
// be copied.
package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Err returns an error describing the failed check, or nil if it passed.
func (r Result) Err() error {
	if r.Passed {
		return nil
	}
	return fmt.Errorf("%s: %s", r.Name, r.Detail)
}

// CheckInputDir verifies the input directory exists and is traversable.
func CheckInputDir(path string) Result {
	const name = "Input directory"
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s does not exist", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s is not a directory", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read ok)", path)}
}

// CheckOutputDir verifies the output directory is writable, creating it if
// it does not exist yet.
func CheckOutputDir(path string) Result {
	const name = "Output directory"
	if err := os.MkdirAll(path, 0o755); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (create: %v)", path, err)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckDiskSpace verifies the filesystem holding dir has at least
// requiredBytes available to an unprivileged writer.
func CheckDiskSpace(dir string, requiredBytes uint64) Result {
	const name = "Disk space"
	var stat unix.Statfs_t
	if err := unix.Statfs(dir, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (statfs: %v)", dir, err)}
	}
	available := stat.Bavail * uint64(stat.Bsize)
	if available < requiredBytes {
		return Result{Name: name, Detail: fmt.Sprintf("%s has %d MiB free, need %d MiB", dir, available>>20, requiredBytes>>20)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d MiB free)", dir, available>>20)}
}
