// Package score persists the best score as a single decimal integer in
// a plain text file.
package score

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultPath is where the best score is kept when nothing else is set.
const DefaultPath = "bestscore.txt"

var ErrMalformed = errors.New("malformed best score")

type File struct {
	Path string
}

func NewFile(path string) *File {
	if path == "" {
		path = DefaultPath
	}
	return &File{Path: path}
}

// Load reads the best score. A missing file, or one that doesn't hold a
// non-negative integer, returns an error and 0.
func (f *File) Load() (int, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return 0, fmt.Errorf("failed to read best score: %w", err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, data)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: negative value %d", ErrMalformed, n)
	}
	return n, nil
}

// Save overwrites the file with n.
func (f *File) Save(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: negative value %d", ErrMalformed, n)
	}
	if err := os.WriteFile(f.Path, []byte(strconv.Itoa(n)), 0o644); err != nil {
		return fmt.Errorf("failed to write best score: %w", err)
	}
	return nil
}
