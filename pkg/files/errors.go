package files

import (
	"errors"
	"fmt"
)

// Read operations reported by ReadError
const (
	OpOpen = "open"
	OpRead = "read"
)

var (
	// ErrWorkerFailed is returned when a read worker exits without delivering an outcome
	ErrWorkerFailed = errors.New("file read worker terminated without a result")
)

// ReadError describes a failed open or read of a file on disk
type ReadError struct {
	Op   string // OpOpen or OpRead
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap exposes the underlying filesystem error, so errors.Is(err, fs.ErrNotExist) works
func (e *ReadError) Unwrap() error {
	return e.Err
}
