package worker

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/angeloszaimis/edge-worker/internal/background"
	"github.com/angeloszaimis/edge-worker/internal/env"
	"github.com/angeloszaimis/edge-worker/internal/metrics"
)

const (
	RouteMessage  = "/message"
	RouteRandom   = "/random"
	RouteNotFound = "not_found"
)

// ExecutionContext lets a handler schedule work that outlives the response.
type ExecutionContext interface {
	WaitUntil(task background.Task)
}

// HandlerFunc serves one route. The environment and execution context are
// passed on every call rather than captured.
type HandlerFunc func(w http.ResponseWriter, r *http.Request, vars env.Env, ec ExecutionContext)

type Worker struct {
	logger           *slog.Logger
	vars             env.Env
	exec             ExecutionContext
	metricsCollector *metrics.Collector
	newID            func() string
	routes           map[string]HandlerFunc
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

// New wires a worker. exec and collector may be nil: without an execution
// context background tasks are not scheduled, without a collector no
// metrics are emitted.
func New(logger *slog.Logger, vars env.Env, exec ExecutionContext, collector *metrics.Collector) *Worker {
	wk := &Worker{
		logger:           logger,
		vars:             vars,
		exec:             exec,
		metricsCollector: collector,
		newID:            uuid.NewString,
	}

	wk.routes = map[string]HandlerFunc{
		RouteMessage: wk.handleMessage,
		RouteRandom:  wk.handleRandom,
	}

	return wk
}

// ServeHTTP dispatches on the exact URL path as sent, percent escapes
// included. Anything that is not a registered path, including case,
// trailing slash and escaped variants, is served by the not-found handler.
func (wk *Worker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	route, handle := wk.match(requestPath(r))

	wk.logger.Debug("Received request",
		slog.String("method", r.Method),
		slog.String("path", requestPath(r)),
		slog.String("route", route),
		slog.String("proto", r.Proto))

	wk.emitEvent(metrics.MetricEvent{
		Type:      metrics.EventRequestReceived,
		Timestamp: time.Now(),
		Route:     route,
	})

	start := time.Now()
	wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
	handle(wrapped, r, wk.vars, wk.exec)

	wk.emitEvent(metrics.MetricEvent{
		Type:       metrics.EventResponseCompleted,
		Timestamp:  time.Now(),
		Route:      route,
		Duration:   time.Since(start),
		StatusCode: wrapped.statusCode,
	})
}

// requestPath is the escaped form of the URL path; r.URL.Path has already
// been percent-decoded.
func requestPath(r *http.Request) string {
	return r.URL.EscapedPath()
}

func (wk *Worker) match(path string) (string, HandlerFunc) {
	if handle, ok := wk.routes[path]; ok {
		return path, handle
	}
	return RouteNotFound, wk.handleNotFound
}

func (wk *Worker) emitEvent(event metrics.MetricEvent) {
	if wk.metricsCollector == nil {
		return
	}
	wk.metricsCollector.Emit(event)
}

func (r *statusRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}
