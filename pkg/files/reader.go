package files

import (
	"context"
	"fmt"
	"io"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/niels/tiny-file-server/pkg/logging"
	"github.com/rs/zerolog"
)

// Outcome is the result of a single file read. Exactly one of Data or Err is meaningful.
type Outcome struct {
	Data []byte
	Err  error
}

// OK reports whether the read succeeded
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Opener is the part of a billy filesystem the reader needs
type Opener interface {
	Open(filename string) (billy.File, error)
}

// Reader reads whole files on worker goroutines and hands each result back over a one-shot channel
type Reader struct {
	fs       Opener
	resolver *Resolver
	logger   zerolog.Logger
}

// NewReader creates a reader over fs. A nil fs means the host filesystem.
func NewReader(fs Opener, resolver *Resolver) *Reader {
	if fs == nil {
		fs = osfs.Default
	}
	return &Reader{
		fs:       fs,
		resolver: resolver,
		logger:   logging.WithComponent("files"),
	}
}

// Read starts a worker that loads diskPath into memory and returns the
// channel its outcome will arrive on. The channel has room for the single
// value, so the worker never blocks on a caller that stopped waiting. If the
// worker dies before sending, the channel is closed empty.
func (r *Reader) Read(diskPath string) <-chan Outcome {
	ch := make(chan Outcome, 1)

	go func() {
		defer close(ch)
		defer func() {
			if rec := recover(); rec != nil {
				r.logger.Error().
					Str("path", diskPath).
					Str("panic", fmt.Sprint(rec)).
					Msg("File read worker panicked")
			}
		}()

		ch <- r.readFile(diskPath)
	}()

	return ch
}

// Await blocks the calling goroutine until the worker delivers, the worker
// fails, or ctx is done. The worker itself is never cancelled.
func (r *Reader) Await(ctx context.Context, ch <-chan Outcome) Outcome {
	select {
	case outcome, ok := <-ch:
		if !ok {
			return Outcome{Err: ErrWorkerFailed}
		}
		return outcome
	case <-ctx.Done():
		return Outcome{Err: ctx.Err()}
	}
}

// Fetch resolves logicalPath, reads it on a worker and waits for the result
func (r *Reader) Fetch(ctx context.Context, logicalPath string) Outcome {
	diskPath, err := r.resolver.Resolve(logicalPath)
	if err != nil {
		return Outcome{Err: err}
	}

	r.logger.Debug().
		Str("logical_path", logicalPath).
		Str("disk_path", diskPath).
		Msg("Reading file")

	return r.Await(ctx, r.Read(diskPath))
}

func (r *Reader) readFile(diskPath string) Outcome {
	file, err := r.fs.Open(diskPath)
	if err != nil {
		return Outcome{Err: &ReadError{Op: OpOpen, Path: diskPath, Err: err}}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return Outcome{Err: &ReadError{Op: OpRead, Path: diskPath, Err: err}}
	}

	return Outcome{Data: data}
}
