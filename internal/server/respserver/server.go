package respserver

import (
	"context"
	"crypto/rand"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/kevadb/keva-go/internal/store"
	"github.com/kevadb/keva-go/internal/telemetry/metric"
	"github.com/kevadb/keva-go/pkg/cmap"
	"github.com/kevadb/keva-go/pkg/resp"
)

// Config holds the RESP server configuration.
type Config struct {
	// Addr is the address of the plaintext listener.
	Addr string
	// TLSEnabled enables the TLS listener.
	TLSEnabled bool
	// TLSAddr is the address of the TLS listener.
	TLSAddr string
	// TLSConfig is the TLS configuration (required if TLSEnabled is true).
	TLSConfig *tls.Config
	// RateLimit is the maximum number of commands per second per IP.
	// Set to 0 to disable rate limiting (default: 0).
	RateLimit int
	// ReadBufferSize is the per-connection read buffer size in bytes (default: 4096).
	ReadBufferSize int
	// Limits bounds decoded requests. Zero fields fall back to the
	// defaults of the resp package.
	Limits resp.Limits
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Addr:           "127.0.0.1:6142",
		TLSEnabled:     false,
		TLSAddr:        "127.0.0.1:6143",
		RateLimit:      0,
		ReadBufferSize: 4096,
	}
}

// Server is the RESP protocol server.
type Server struct {
	cfg     *Config
	handler *CommandHandler
	logger  *slog.Logger
	metrics *metric.Registry
	plainLn net.Listener
	tlsLn   net.Listener
	running atomic.Bool
	wg      sync.WaitGroup
	conns   *cmap.Map[string, *Conn]

	connsActive atomic.Int64
	connsTotal  atomic.Int64
}

// Conn is a single client connection.
//
// Each connection owns one decoder, so request state never leaks
// between clients. The id is a ULID used to correlate log lines.
type Conn struct {
	netConn net.Conn
	dec     *resp.Decoder
	id      string
	closed  atomic.Bool
}

func newConn(c net.Conn, limits resp.Limits) *Conn {
	return &Conn{
		netConn: c,
		dec:     resp.NewDecoder(limits),
		id:      newConnID(),
	}
}

func newConnID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "unknown"
	}
	return id.String()
}

// Close closes the underlying connection once.
func (c *Conn) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.netConn.Close()
}

// RemoteAddr returns the peer address.
func (c *Conn) RemoteAddr() net.Addr {
	return c.netConn.RemoteAddr()
}

// New creates a RESP server executing commands against st.
func New(cfg *Config, st *store.Store, metrics *metric.Registry, logger *slog.Logger) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if metrics == nil {
		metrics = metric.New()
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
		conns:   cmap.New[string, *Conn](),
	}
	s.handler = NewCommandHandler(st, s, logger)

	return s
}

// Start binds the configured listeners and begins accepting clients.
//
// Listeners are bound synchronously so bind failures surface to the
// caller; accept loops run in the background until Shutdown.
func (s *Server) Start(ctx context.Context) error {
	s.running.Store(true)

	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("resp listen: %w", err)
	}
	s.plainLn = ln
	s.logger.Info("resp server listening", "address", ln.Addr().String())

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.acceptLoop(ctx, ln)
	}()

	if s.cfg.TLSEnabled {
		if s.cfg.TLSConfig == nil {
			_ = ln.Close()
			return errors.New("respserver: TLS enabled without a TLS config")
		}
		tln, err := tls.Listen("tcp", s.cfg.TLSAddr, s.cfg.TLSConfig)
		if err != nil {
			_ = ln.Close()
			return fmt.Errorf("resp tls listen: %w", err)
		}
		s.tlsLn = tln
		s.logger.Info("resp server listening", "address", tln.Addr().String(), "tls", true)

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.acceptLoop(ctx, tln)
		}()
	}

	return nil
}

// Addr returns the bound address of the plaintext listener, or nil
// before Start.
func (s *Server) Addr() net.Addr {
	if s.plainLn == nil {
		return nil
	}
	return s.plainLn.Addr()
}

// TLSAddr returns the bound address of the TLS listener, or nil when
// TLS is disabled or the server has not started.
func (s *Server) TLSAddr() net.Addr {
	if s.tlsLn == nil {
		return nil
	}
	return s.tlsLn.Addr()
}

// ConnsActive reports the number of currently open client connections.
func (s *Server) ConnsActive() int64 {
	return s.connsActive.Load()
}

// ConnsTotal reports the number of client connections accepted since Start.
func (s *Server) ConnsTotal() int64 {
	return s.connsTotal.Load()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.running.Store(false)

	var firstErr error

	// Close listeners to break accept loops.
	if s.plainLn != nil {
		if err := s.plainLn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if s.tlsLn != nil {
		if err := s.tlsLn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	// Close open connections so their read loops unblock. No deadlines
	// are armed, so an idle client would otherwise hold Shutdown until
	// the context expires.
	s.conns.Range(func(_ string, c *Conn) bool {
		_ = c.Close()
		return true
	})

	// Wait for connection goroutines to finish.
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	return firstErr
}

func (s *Server) acceptLoop(ctx context.Context, ln net.Listener) {
	for {
		c, err := ln.Accept()
		if err != nil {
			if !s.running.Load() {
				return
			}
			if errors.Is(err, net.ErrClosed) {
				return
			}
			select {
			case <-ctx.Done():
				return
			default:
			}
			s.logger.Error("accept failed", "error", err)
			return
		}

		s.metrics.ConnectionsTotal.Inc()
		s.metrics.ConnectionsActive.Inc()
		s.connsTotal.Add(1)
		s.connsActive.Add(1)

		conn := newConn(c, s.cfg.Limits)
		s.conns.Set(conn.id, conn)

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.conns.Delete(conn.id)
			s.serveConn(conn)
		}()
	}
}

// serveConn runs the read, decode, execute, reply loop for one client.
//
// All replies produced by a single read are encoded into one buffer
// and written together, so a pipelined batch costs one write. No
// deadlines are armed: an idle connection holds its resources until
// the client goes away.
func (s *Server) serveConn(c *Conn) {
	defer c.Close()
	defer s.metrics.ConnectionsActive.Dec()
	defer s.connsActive.Add(-1)

	log := s.logger.With("conn_id", c.id, "remote", c.RemoteAddr().String())
	log.Debug("connection opened")

	readBuf := make([]byte, s.readBufferSize())
	var out []byte

	for {
		n, err := c.netConn.Read(readBuf)
		if n > 0 {
			s.metrics.BytesRead.Add(float64(n))
			c.dec.Feed(readBuf[:n])

			out = out[:0]
			for {
				req, derr := c.dec.Next()
				if derr != nil {
					if errors.Is(derr, resp.ErrIncomplete) {
						break
					}
					s.metrics.DecodeErrors.Inc()
					log.Warn("closing connection on protocol error", "error", derr)
					// Requests decoded before the error still get replies.
					s.writeOut(c, out, log)
					return
				}
				out = s.handler.Handle(c, req, out)
			}

			if !s.writeOut(c, out, log) {
				return
			}
		}

		if err != nil {
			switch {
			case errors.Is(err, io.EOF):
				if c.dec.Idle() {
					log.Debug("connection closed")
				} else {
					log.Debug("connection closed mid-request", "buffered", c.dec.Buffered())
				}
			case errors.Is(err, net.ErrClosed):
			default:
				log.Debug("connection read error", "error", err)
			}
			return
		}
	}
}

// writeOut writes a batch of encoded replies in a single call.
func (s *Server) writeOut(c *Conn, out []byte, log *slog.Logger) bool {
	if len(out) == 0 {
		return true
	}
	n, err := c.netConn.Write(out)
	s.metrics.BytesWritten.Add(float64(n))
	if err != nil {
		log.Debug("connection write error", "error", err)
		return false
	}
	return true
}

func (s *Server) readBufferSize() int {
	if s.cfg.ReadBufferSize > 0 {
		return s.cfg.ReadBufferSize
	}
	return 4096
}
