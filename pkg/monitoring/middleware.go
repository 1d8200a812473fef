package monitoring

import (
	"net/http"
	"time"

	"github.com/medicore/hms-console/pkg/logger"
)

// Middleware records metrics and an access log line for every served
// page request
func Middleware(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			duration := time.Since(start)
			recordPageRequest(r.Method, r.URL.Path, recorder.status, duration)
			log.HTTPRequest(r.Method, r.URL.Path, r.RemoteAddr, recorder.status, duration.Milliseconds())
		})
	}
}

// statusRecorder captures the status code written by the handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
