// Package storage reads and writes command files on disk. Parsing never
// fails on content, so the only error this layer surfaces is the file
// being unavailable (missing, unreadable, unwritable).
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrFileUnavailable wraps any filesystem failure when loading or saving a
// command file, so callers can distinguish "file problem" from everything
// else without inspecting os error types.
var ErrFileUnavailable = errors.New("file unavailable")

// ReadCommandFile returns the full text of a command file.
func ReadCommandFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFileUnavailable, err)
	}
	return string(data), nil
}

// WriteCommandFile writes text atomically: it writes a temporary file in
// the destination directory and renames it into place, so a crash mid-save
// never leaves a truncated map file behind.
func WriteCommandFile(path, text string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFileUnavailable, err)
	}
	tmpName := tmp.Name()

	if _, err = tmp.WriteString(text); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrFileUnavailable, err)
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrFileUnavailable, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrFileUnavailable, err)
	}
	return nil
}

// AppendCommandFile appends text to an existing command file, creating it
// when missing. The editor uses this for "add points from clipboard",
// which appends lines without rewriting the whole file.
func AppendCommandFile(path, text string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFileUnavailable, err)
	}
	defer f.Close()
	if _, err = f.WriteString(text); err != nil {
		return fmt.Errorf("%w: %v", ErrFileUnavailable, err)
	}
	return nil
}
