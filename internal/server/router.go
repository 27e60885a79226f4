// Package server wires the MCP handler and health probe into one HTTP router.
package server

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jamesprial/confcms-mcp/internal/auth"
)

// MCPPath is the route the streamable MCP handler is mounted on.
const MCPPath = "/mcp"

// NewRouter mounts mcpHandler on MCPPath behind bearer token auth and an
// unauthenticated GET /healthz probe. Every request is logged through logger;
// a nil logger uses the standard logger.
func NewRouter(mcpHandler http.Handler, authToken string, logger *log.Logger) *mux.Router {
	if logger == nil {
		logger = log.Default()
	}

	r := mux.NewRouter()
	r.Use(requestLogger(logger))
	r.Path("/healthz").Methods(http.MethodGet).HandlerFunc(healthz)

	r.Path(MCPPath).Handler(auth.NewAuthMiddleware(authToken)(mcpHandler))

	return r
}

func healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Flush keeps streaming responses working through the recorder.
func (s *statusRecorder) Flush() {
	if f, ok := s.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func requestLogger(logger *log.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			logger.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Millisecond))
		})
	}
}
