package webserver

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/yndnr/microspring-go/internal/core/route"
	"github.com/yndnr/microspring-go/internal/core/static"
	"github.com/yndnr/microspring-go/internal/telemetry/logger"
)

// Request kinds reported to an Observer.
const (
	KindRoute   = "route"
	KindStatic  = "static"
	KindInvalid = "invalid"
)

// Observer receives one observation per answered request.
type Observer interface {
	ObserveRequest(kind string, status int, elapsed time.Duration)
}

// Dispatcher turns one request into one response.
type Dispatcher struct {
	routes       *route.Table
	files        *static.Resolver
	observer     Observer
	maxLineBytes int
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithObserver registers a request observer.
func WithObserver(o Observer) DispatcherOption {
	return func(d *Dispatcher) {
		d.observer = o
	}
}

// WithMaxLineBytes sets the request/header line length limit.
func WithMaxLineBytes(n int) DispatcherOption {
	return func(d *Dispatcher) {
		if n > 0 {
			d.maxLineBytes = n
		}
	}
}

// NewDispatcher creates a dispatcher over a route table and a file resolver.
func NewDispatcher(routes *route.Table, files *static.Resolver, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		routes:       routes,
		files:        files,
		maxLineBytes: DefaultMaxLineBytes,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ServeConn reads one request from br, writes one response to bw and flushes.
//
// A client that sends nothing gets no response and no error. The returned
// error is a socket-level failure; protocol errors are answered with 400.
func (d *Dispatcher) ServeConn(ctx context.Context, br *bufio.Reader, bw *bufio.Writer) error {
	log := logger.FromContext(ctx)
	start := time.Now()

	var (
		resp *Response
		kind string
	)

	req, err := ReadRequest(br, d.maxLineBytes)
	switch {
	case errors.Is(err, ErrNoRequest):
		log.Debug("empty request, closing connection")
		return nil
	case errors.Is(err, ErrMalformedRequest), errors.Is(err, ErrLineTooLong):
		log.Warn("bad request", "error", err)
		resp = ErrorResponse(StatusBadRequest, "Bad Request")
		kind = KindInvalid
	case err != nil:
		return fmt.Errorf("read request: %w", err)
	default:
		log.Info("request", "method", req.Method, "target", req.Target)
		resp, kind = d.Dispatch(ctx, req)
	}

	if err := WriteResponse(bw, resp); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush response: %w", err)
	}

	if d.observer != nil {
		d.observer.ObserveRequest(kind, resp.Status, time.Since(start))
	}
	return nil
}

// Dispatch decides between a registered GET route and the static fallback.
// It returns the response and the request kind.
func (d *Dispatcher) Dispatch(ctx context.Context, req *Request) (*Response, string) {
	if req.Method == string(route.MethodGet) {
		if r, ok := d.routes.Lookup(route.MethodGet, req.Path); ok {
			return d.invoke(ctx, r, req), KindRoute
		}
	}
	return d.serveFile(ctx, req.Path), KindStatic
}

func (d *Dispatcher) invoke(ctx context.Context, r *route.Route, req *Request) *Response {
	log := logger.FromContext(ctx)
	if len(req.Query) > 0 {
		log.Debug("query parameters", queryGroup(req.Query))
	}

	body, err := route.Invoke(r, req.Query)
	if err != nil {
		log.Error("route invocation failed", "path", r.Path, "error", err)
		return ErrorResponse(StatusInternalServerError, "Internal Server Error")
	}

	contentType := ContentTypeText
	if strings.HasPrefix(req.Path, "/api/") {
		contentType = ContentTypeJSON
	}
	return &Response{
		Status:      StatusOK,
		ContentType: contentType,
		Body:        []byte(body),
	}
}

func (d *Dispatcher) serveFile(ctx context.Context, path string) *Response {
	log := logger.FromContext(ctx)
	if path == "" || path == "/" {
		path = "/index.html"
	}

	f, err := d.files.Resolve(path)
	switch {
	case errors.Is(err, static.ErrNotFound):
		log.Info("file not found", "path", path)
		return ErrorResponse(StatusNotFound, "File Not Found")
	case err != nil:
		log.Error("error reading file", "path", path, "error", err)
		return ErrorResponse(StatusInternalServerError, "Internal Server Error")
	}

	log.Info("served file", "resource", f.ResourcePath, "bytes", len(f.Data), "cached", f.FromCache)
	return &Response{
		Status:      StatusOK,
		ContentType: f.MIMEType,
		Body:        f.Data,
	}
}

// queryGroup renders query parameters as a log group so key-based
// redaction applies to each parameter.
func queryGroup(q map[string]string) slog.Attr {
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]any, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, slog.String(k, q[k]))
	}
	return slog.Group("query", attrs...)
}
