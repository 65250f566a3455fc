// Package filex has small filesystem helpers for upload handling.
package filex

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// EnsureDir creates dir (relative paths resolve against the working
// directory) and returns its absolute path.
func EnsureDir(dir string) (string, error) {
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		dir = filepath.Join(cwd, dir)
	}

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// SpoolTemp copies r into a new temp file in dir and returns the file
// rewound to the start. The caller must call cleanup, which closes and
// removes the file; cleanup is safe to call more than once.
func SpoolTemp(dir, pattern string, r io.Reader) (f *os.File, cleanup func(), err error) {
	f, err = os.CreateTemp(dir, pattern)
	if err != nil {
		return nil, func() {}, fmt.Errorf("create temp: %w", err)
	}

	done := false
	cleanup = func() {
		if done {
			return
		}
		done = true
		_ = f.Close()
		_ = os.Remove(f.Name())
	}

	if _, err := io.Copy(f, r); err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("write temp: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("rewind temp: %w", err)
	}

	return f, cleanup, nil
}
