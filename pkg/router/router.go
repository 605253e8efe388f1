package router

import (
	"context"
	"net/http"
	"strings"

	"github.com/niels/tiny-file-server/pkg/logging"
	"github.com/niels/tiny-file-server/pkg/response"
)

// Handler produces the response for one routed request
type Handler func(ctx context.Context) *response.Response

// Builder is the part of the response builder the router dispatches to
type Builder interface {
	SendFileOr404(ctx context.Context, logicalPath string) *response.Response
	InvalidMethod(ctx context.Context) *response.Response
}

// Router dispatches on (method, path) with a fixed table:
//
//	GET /      -> index document
//	GET <path> -> <path>
//	other      -> invalid method document, 405
type Router struct {
	builder   Builder
	indexFile string
}

// NewRouter creates a router serving indexFile for "/"
func NewRouter(builder Builder, indexFile string) *Router {
	return &Router{builder: builder, indexFile: indexFile}
}

// Route selects the handler for method and path
func (rt *Router) Route(method, path string) Handler {
	switch {
	case method == http.MethodGet && path == "/":
		return rt.handleRoot
	case method == http.MethodGet:
		return func(ctx context.Context) *response.Response {
			return rt.handleGetFile(ctx, path)
		}
	default:
		return rt.handleInvalidMethod
	}
}

// ServeHTTP implements http.Handler
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := RequestPath(r)
	resp := rt.Route(r.Method, path)(r.Context())

	if err := resp.WriteTo(w); err != nil {
		logging.WarnWith("Failed to write response", map[string]interface{}{
			"path":  path,
			"error": err,
		})
	}
}

// RequestPath returns the request target as sent on the wire, up to the
// first '?'. Percent escapes are not decoded, so "/a%20b.html" is looked up
// as a file literally named "a%20b.html".
func RequestPath(r *http.Request) string {
	if strings.HasPrefix(r.RequestURI, "/") {
		path, _, _ := strings.Cut(r.RequestURI, "?")
		return path
	}
	// absolute-form or "*" targets, and requests built without RequestURI
	return r.URL.EscapedPath()
}

func (rt *Router) handleRoot(ctx context.Context) *response.Response {
	return rt.builder.SendFileOr404(ctx, rt.indexFile)
}

func (rt *Router) handleGetFile(ctx context.Context, path string) *response.Response {
	return rt.builder.SendFileOr404(ctx, path)
}

func (rt *Router) handleInvalidMethod(ctx context.Context) *response.Response {
	return rt.builder.InvalidMethod(ctx)
}
