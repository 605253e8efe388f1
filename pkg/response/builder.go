package response

import (
	"context"
	"net/http"
	"strconv"

	"github.com/niels/tiny-file-server/pkg/files"
	"github.com/niels/tiny-file-server/pkg/logging"
	"github.com/rs/zerolog"
)

// Response is a fully built reply. It is written once and not modified afterwards.
type Response struct {
	Status  int
	Body    []byte
	HasBody bool
}

// WithStatus returns a copy of the response carrying status
func (r *Response) WithStatus(status int) *Response {
	return &Response{Status: status, Body: r.Body, HasBody: r.HasBody}
}

// WriteTo writes the response. Only Content-Length is sent, and only when there is a body.
func (r *Response) WriteTo(w http.ResponseWriter) error {
	header := w.Header()
	// A nil entry stops net/http from adding the header itself
	header["Content-Type"] = nil
	header["Date"] = nil

	if r.HasBody {
		header.Set("Content-Length", strconv.Itoa(len(r.Body)))
	}

	w.WriteHeader(r.Status)

	if r.HasBody && len(r.Body) > 0 {
		if _, err := w.Write(r.Body); err != nil {
			return err
		}
	}
	return nil
}

// Fetcher loads a document by its request path
type Fetcher interface {
	Fetch(ctx context.Context, logicalPath string) files.Outcome
}

// Builder turns file reads into responses, falling back to a not-found document
type Builder struct {
	fetcher           Fetcher
	notFoundFile      string
	invalidMethodFile string
	logger            zerolog.Logger
}

// NewBuilder creates a builder. notFoundFile and invalidMethodFile are request
// paths handed to the fetcher like any other.
func NewBuilder(fetcher Fetcher, notFoundFile, invalidMethodFile string) *Builder {
	return &Builder{
		fetcher:           fetcher,
		notFoundFile:      notFoundFile,
		invalidMethodFile: invalidMethodFile,
		logger:            logging.WithComponent("response"),
	}
}

// SendFileOr404 serves logicalPath with 200, or the not-found document with 404.
// Every failure on the primary read ends up here; the kind of failure is only logged.
func (b *Builder) SendFileOr404(ctx context.Context, logicalPath string) *Response {
	outcome := b.fetcher.Fetch(ctx, logicalPath)
	if outcome.OK() {
		return &Response{Status: http.StatusOK, Body: outcome.Data, HasBody: true}
	}

	b.logger.Debug().
		Err(outcome.Err).
		Str("path", logicalPath).
		Msg("Primary read failed, serving not found document")

	return b.notFound(ctx)
}

// InvalidMethod serves the invalid method document, always with 405
func (b *Builder) InvalidMethod(ctx context.Context) *Response {
	return b.SendFileOr404(ctx, b.invalidMethodFile).WithStatus(http.StatusMethodNotAllowed)
}

func (b *Builder) notFound(ctx context.Context) *Response {
	if b.notFoundFile == "" {
		return &Response{Status: http.StatusNotFound}
	}

	outcome := b.fetcher.Fetch(ctx, b.notFoundFile)
	if !outcome.OK() {
		b.logger.Warn().
			Err(outcome.Err).
			Str("path", b.notFoundFile).
			Msg("Not found document unavailable, sending empty 404")
		return &Response{Status: http.StatusNotFound}
	}

	return &Response{Status: http.StatusNotFound, Body: outcome.Data, HasBody: true}
}
