package webserver

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/microspring-go/internal/telemetry/logger"
)

// Config holds the web server configuration.
type Config struct {
	// Addr is the listen address (host:port).
	Addr string
	// ReadTimeout bounds reading one request head. Zero means no deadline:
	// a silent client then blocks every connection queued behind it.
	ReadTimeout time.Duration
	// WriteTimeout bounds writing one response. Zero means no deadline.
	WriteTimeout time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Addr: "0.0.0.0:35000",
	}
}

// Server accepts connections one at a time and hands each to a Dispatcher.
type Server struct {
	cfg        *Config
	dispatcher *Dispatcher
	logger     logger.Logger

	mu      sync.Mutex
	ln      net.Listener
	done    chan struct{}
	running atomic.Bool
}

// New creates a server. A nil cfg selects DefaultConfig, a nil log the
// default logger.
func New(cfg *Config, d *Dispatcher, log logger.Logger) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if log == nil {
		log = logger.Default()
	}
	return &Server{
		cfg:        cfg,
		dispatcher: d,
		logger:     log,
	}
}

// Listen binds the listening socket.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// ListenAndServe binds the socket and runs the accept loop until ctx is
// cancelled or Shutdown is called. A bind failure is returned before the
// loop is entered.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve(ctx)
}

// Serve runs the accept loop on the listener bound by Listen.
//
// Each accepted connection is read, dispatched and closed before the next
// Accept. Per-connection I/O errors are logged and do not stop the loop.
func (s *Server) Serve(ctx context.Context) error {
	s.mu.Lock()
	ln := s.ln
	if ln == nil {
		s.mu.Unlock()
		return errors.New("webserver: Serve called before Listen")
	}
	done := make(chan struct{})
	s.done = done
	s.mu.Unlock()
	defer close(done)

	s.running.Store(true)
	s.logger.Info("web server started", "address", ln.Addr().String())

	go func() {
		select {
		case <-ctx.Done():
			s.stop()
		case <-done:
		}
	}()

	var backoff time.Duration
	for s.running.Load() {
		conn, err := ln.Accept()
		if err != nil {
			if !s.running.Load() || errors.Is(err, net.ErrClosed) {
				break
			}
			backoff = nextBackoff(backoff)
			s.logger.Error("accept failed", "error", err, "retry_in", backoff)
			time.Sleep(backoff)
			continue
		}
		backoff = 0
		s.serveConn(ctx, conn)
	}

	s.logger.Info("web server stopped")
	return nil
}

func nextBackoff(d time.Duration) time.Duration {
	if d == 0 {
		return 5 * time.Millisecond
	}
	d *= 2
	if d > time.Second {
		d = time.Second
	}
	return d
}

func (s *Server) serveConn(ctx context.Context, c net.Conn) {
	defer c.Close()

	id := ulid.Make().String()
	log := s.logger.With("request_id", id, "remote", c.RemoteAddr().String())
	ctx = logger.WithRequestID(logger.WithLogger(ctx, log), id)

	if s.cfg.ReadTimeout > 0 {
		if err := c.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout)); err != nil {
			log.Warn("set read deadline", "error", err)
			return
		}
	}

	var w net.Conn = c
	if s.cfg.WriteTimeout > 0 {
		w = &writeDeadlineConn{Conn: c, timeout: s.cfg.WriteTimeout}
	}

	if err := s.dispatcher.ServeConn(ctx, bufio.NewReader(c), bufio.NewWriter(w)); err != nil {
		log.Error("error handling connection", "error", err)
	}
}

// writeDeadlineConn arms the write deadline on the first Write, so the
// write timeout does not include the time spent reading the request.
type writeDeadlineConn struct {
	net.Conn
	timeout time.Duration
	armed   bool
}

func (c *writeDeadlineConn) Write(p []byte) (int, error) {
	if !c.armed {
		c.armed = true
		if err := c.Conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
			return 0, err
		}
	}
	return c.Conn.Write(p)
}

// stop clears the running flag and closes the listener to unblock Accept.
func (s *Server) stop() error {
	s.running.Store(false)

	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()
	if ln == nil {
		return nil
	}
	if err := ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for the in-flight
// connection, if any, to finish.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.stop()

	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done == nil {
		return err
	}

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return err
}
