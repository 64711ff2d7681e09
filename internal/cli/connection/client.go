// Package connection provides the RESP client used by keva-cli.
package connection

import (
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"

	"github.com/kevadb/keva-go/internal/infra/tlsroots"
	"github.com/kevadb/keva-go/pkg/resp"
)

// DefaultTimeout bounds dialing and each request round trip when
// Config.Timeout is zero.
const DefaultTimeout = 5 * time.Second

// Config describes how to reach a Keva server.
type Config struct {
	// Addr is the host:port of the RESP listener.
	Addr string

	// TLS dials the TLS listener instead of plain TCP.
	TLS bool

	// CAFile optionally adds a PEM bundle to the trusted roots.
	CAFile string

	// Insecure skips server certificate verification.
	Insecure bool

	// Timeout bounds dialing and each request round trip.
	// Zero means DefaultTimeout.
	Timeout time.Duration

	// Trace, when non-nil, receives one quoted line per frame sent
	// and received.
	Trace io.Writer
}

// Client is a RESP client over a single connection.
//
// A Client is not safe for concurrent use; the CLI issues one request
// at a time. After Do returns a transport or protocol error the
// connection state is unknown and the Client must be closed.
type Client struct {
	conn    net.Conn
	dec     *resp.Decoder
	buf     []byte
	timeout time.Duration
	trace   io.Writer
}

// Dial connects to the server described by cfg.
func Dial(cfg Config) (*Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	var (
		conn net.Conn
		err  error
	)
	if cfg.TLS {
		tlsConf, cerr := clientTLSConfig(cfg)
		if cerr != nil {
			return nil, cerr
		}
		dialer := &net.Dialer{Timeout: timeout}
		conn, err = tls.DialWithDialer(dialer, "tcp", cfg.Addr, tlsConf)
	} else {
		conn, err = net.DialTimeout("tcp", cfg.Addr, timeout)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.Addr, err)
	}

	return &Client{
		conn:    conn,
		dec:     resp.NewReplyDecoder(resp.Limits{}),
		buf:     make([]byte, 4096),
		timeout: timeout,
		trace:   cfg.Trace,
	}, nil
}

// clientTLSConfig builds the TLS settings for cfg. The trust pool
// starts from the system roots and grows by CAFile when given.
func clientTLSConfig(cfg Config) (*tls.Config, error) {
	if cfg.Insecure {
		return &tls.Config{InsecureSkipVerify: true}, nil //nolint:gosec
	}

	pool, err := tlsroots.NewPool()
	if err != nil {
		return nil, fmt.Errorf("load system roots: %w", err)
	}
	if cfg.CAFile != "" {
		if err := pool.AddCertFile(cfg.CAFile); err != nil {
			return nil, fmt.Errorf("load CA file: %w", err)
		}
	}
	return pool.TLSConfig(), nil
}

// Do sends one command and returns the server reply. args holds the
// command name and its arguments as binary-safe strings. A server
// error reply is returned as a Value, not as an error.
func (c *Client) Do(args ...[]byte) (resp.Value, error) {
	if len(args) == 0 {
		return resp.Value{}, errors.New("empty command")
	}

	elems := make([]resp.Value, len(args))
	for i, a := range args {
		elems[i] = resp.Bulk(a)
	}
	req := resp.Encode(resp.Array(elems...))

	if err := c.conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
		return resp.Value{}, fmt.Errorf("set deadline: %w", err)
	}

	c.traceFrame(">", req)
	if _, err := c.conn.Write(req); err != nil {
		return resp.Value{}, fmt.Errorf("write command: %w", err)
	}

	for {
		v, err := c.dec.Next()
		if err == nil {
			c.traceFrame("<", resp.Encode(v))
			return v, nil
		}
		if !errors.Is(err, resp.ErrIncomplete) {
			return resp.Value{}, fmt.Errorf("decode reply: %w", err)
		}

		n, rerr := c.conn.Read(c.buf)
		if n > 0 {
			c.dec.Feed(c.buf[:n])
		}
		if rerr != nil {
			return resp.Value{}, fmt.Errorf("read reply: %w", rerr)
		}
	}
}

// DoStrings is Do with string arguments.
func (c *Client) DoStrings(args ...string) (resp.Value, error) {
	bs := make([][]byte, len(args))
	for i, a := range args {
		bs[i] = []byte(a)
	}
	return c.Do(bs...)
}

// Addr returns the remote address of the connection.
func (c *Client) Addr() string {
	return c.conn.RemoteAddr().String()
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// traceFrame writes one wire frame to the trace writer, quoted so
// control bytes stay visible.
func (c *Client) traceFrame(dir string, frame []byte) {
	if c.trace == nil {
		return
	}
	fmt.Fprintf(c.trace, "%s %s\n", dir, strconv.Quote(string(frame)))
}
