// Package storage reads and writes whole text files under a home-relative folder.
package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/verte-zerg/tomato/internal/config"
)

var (
	// ErrNotFound is returned by Read when the file does not exist.
	ErrNotFound = errors.New("storage file not found")
	// ErrShortWrite is returned when fewer bytes than requested reach the file.
	ErrShortWrite = errors.New("storage short write")
)

// Storage binds a file name to <home>/<folder>/<file>. It holds no other
// state; every call goes to the filesystem.
type Storage struct {
	home   config.HomeFunc
	folder string
	file   string
}

// New returns a handle for file inside folder under the directory resolved by home.
// A nil home falls back to config.UserHome and an empty folder to config.DefaultFolder.
func New(home config.HomeFunc, folder, file string) *Storage {
	if home == nil {
		home = config.UserHome
	}
	if folder == "" {
		folder = config.DefaultFolder
	}
	return &Storage{home: home, folder: folder, file: file}
}

// Dir returns the folder the file lives in.
func (s *Storage) Dir() (string, error) {
	dir, err := config.DataDir(s.home, s.folder)
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return dir, nil
}

// Path returns the full path of the file.
func (s *Storage) Path() (string, error) {
	dir, err := s.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, s.file), nil
}

// Exists reports whether the file is present.
func (s *Storage) Exists() bool {
	path, err := s.Path()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Read returns the file contents verbatim.
func (s *Storage) Read() (string, error) {
	path, err := s.Path()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// Write creates the folder when missing and replaces the file with text.
func (s *Storage) Write(text string) (err error) {
	dir, err := s.Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create folder %s: %w", dir, err)
	}
	path := filepath.Join(dir, s.file)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	if err := writeAll(f, text); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// writeAll writes text to w and reports a short write as ErrShortWrite.
func writeAll(w io.Writer, text string) error {
	n, err := io.WriteString(w, text)
	if err != nil {
		return err
	}
	if n != len(text) {
		return fmt.Errorf("%w: wrote %d of %d bytes", ErrShortWrite, n, len(text))
	}
	return nil
}
