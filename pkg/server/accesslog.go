package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/niels/tiny-file-server/pkg/logging"
	"github.com/niels/tiny-file-server/pkg/router"
)

// statusRecorder captures the status code and byte count written by the wrapped handler
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(p)
	r.bytes += n
	return n, err
}

// AccessLog logs one line per request, tagged with a fresh request ID
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}

		next.ServeHTTP(rec, r)

		logger := logging.WithComponent("access")
		logger.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", router.RequestPath(r)).
			Str("remote_addr", r.RemoteAddr).
			Int("status", rec.status).
			Int("bytes", rec.bytes).
			Dur("duration", time.Since(start)).
			Msg("Request served")
	})
}
