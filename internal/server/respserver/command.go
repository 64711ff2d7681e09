// Package respserver provides the RESP wire protocol server for Keva.
package respserver

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/kevadb/keva-go/internal/store"
	"github.com/kevadb/keva-go/internal/telemetry/metric"
	"github.com/kevadb/keva-go/pkg/cmap"
	"github.com/kevadb/keva-go/pkg/resp"
)

// Reply codes for requests that never reach the store.
const (
	CodeInvalidCommand = "INVALID_COMMAND"
	CodeNotImplemented = "NOT_IMPLEMENTED"
	CodeRateLimited    = "RATE_LIMITED"
)

// CommandError describes a request that was rejected before execution.
// Code is the token sent on the wire; Detail stays server-side for logs.
type CommandError struct {
	Code   string
	Detail string
}

func (e *CommandError) Error() string {
	if e.Detail == "" {
		return e.Code
	}
	return e.Code + ": " + e.Detail
}

func invalidf(format string, args ...any) *CommandError {
	return &CommandError{Code: CodeInvalidCommand, Detail: fmt.Sprintf(format, args...)}
}

func arityError(name string) *CommandError {
	return invalidf("wrong number of arguments for '%s' command", name)
}

// Command is a single decoded client request.
//
// The implementation set is closed: Interpret is the only constructor,
// and execution switches over the concrete types.
type Command interface {
	// name reports the canonical command word, used as a metric label.
	name() string
}

// Ping checks liveness. With a message attached, the server echoes the
// message back as a bulk string instead of answering +PONG.
type Ping struct {
	Message    []byte
	HasMessage bool
}

// Get fetches the value stored under Key.
type Get struct{ Key []byte }

// Set stores Value under Key, replacing any previous value.
type Set struct{ Key, Value []byte }

// Del removes each named key and reports how many were present.
type Del struct{ Keys [][]byte }

// Append extends the value under Key, creating it when absent.
type Append struct{ Key, Value []byte }

// Keys lists all stored keys. The pattern argument is accepted for
// client compatibility but not applied.
type Keys struct{ Pattern []byte }

// Exists reports whether Key is present.
type Exists struct{ Key []byte }

// FlushAll removes every key.
type FlushAll struct{}

// CommandList is the COMMAND introspection request. It is answered
// with NOT_IMPLEMENTED so that probing clients fail cleanly instead of
// being treated as unknown.
type CommandList struct{}

func (Ping) name() string        { return "PING" }
func (Get) name() string         { return "GET" }
func (Set) name() string         { return "SET" }
func (Del) name() string         { return "DEL" }
func (Append) name() string      { return "APPEND" }
func (Keys) name() string        { return "KEYS" }
func (Exists) name() string      { return "EXISTS" }
func (FlushAll) name() string    { return "FLUSHALL" }
func (CommandList) name() string { return "COMMAND" }

// Interpret maps one decoded request value onto a Command.
//
// The request must be an array whose elements are all bulk strings;
// the first element is the case-insensitive command word. Errors are
// *CommandError values and are never fatal to the connection.
func Interpret(v resp.Value) (Command, error) {
	if v.Kind != resp.KindArray {
		return nil, invalidf("request is not an array, found %s", v.Kind)
	}
	if len(v.Elems) == 0 {
		return nil, invalidf("no command specified")
	}

	args := make([][]byte, len(v.Elems))
	for i, e := range v.Elems {
		if e.Kind != resp.KindBulk {
			return nil, invalidf("argument %d is not a bulk string, found %s", i, e.Kind)
		}
		args[i] = e.Bulk
	}

	name := normalizeCommandName(args[0])
	rest := args[1:]

	switch name {
	case "PING":
		switch len(rest) {
		case 0:
			return Ping{}, nil
		case 1:
			return Ping{Message: rest[0], HasMessage: true}, nil
		default:
			return nil, arityError("PING")
		}
	case "GET":
		if len(rest) != 1 {
			return nil, arityError("GET")
		}
		return Get{Key: rest[0]}, nil
	case "SET":
		if len(rest) != 2 {
			return nil, arityError("SET")
		}
		return Set{Key: rest[0], Value: rest[1]}, nil
	case "DEL":
		if len(rest) == 0 {
			return nil, arityError("DEL")
		}
		return Del{Keys: rest}, nil
	case "APPEND":
		if len(rest) != 2 {
			return nil, arityError("APPEND")
		}
		return Append{Key: rest[0], Value: rest[1]}, nil
	case "KEYS":
		if len(rest) != 1 {
			return nil, arityError("KEYS")
		}
		return Keys{Pattern: rest[0]}, nil
	case "EXISTS":
		if len(rest) != 1 {
			return nil, arityError("EXISTS")
		}
		return Exists{Key: rest[0]}, nil
	case "FLUSHALL":
		if len(rest) != 0 {
			return nil, arityError("FLUSHALL")
		}
		return FlushAll{}, nil
	case "COMMAND":
		// redis-cli probes with COMMAND DOCS on connect; any arity is
		// accepted so the probe gets a clean NOT_IMPLEMENTED.
		return CommandList{}, nil
	default:
		return nil, invalidf("unknown command '%s'", name)
	}
}

func normalizeCommandName(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	// Uppercase ASCII without allocating for already uppercased tokens.
	if bytes.ContainsAny(b, "abcdefghijklmnopqrstuvwxyz") {
		return strings.ToUpper(string(b))
	}
	return string(b)
}

// ipLimiter tracks one token bucket per client IP. The table is a
// sharded map since every command on every connection consults it.
type ipLimiter struct {
	limiters *cmap.Map[string, *rate.Limiter]
	perSec   int
}

func newIPLimiter(perSecond int) *ipLimiter {
	return &ipLimiter{
		limiters: cmap.New[string, *rate.Limiter](),
		perSec:   perSecond,
	}
}

func (l *ipLimiter) allow(ip string) bool {
	lim, ok := l.limiters.Get(ip)
	if !ok {
		lim, _ = l.limiters.GetOrSet(ip, rate.NewLimiter(rate.Limit(l.perSec), l.perSec))
	}
	return lim.Allow()
}

func clientIP(addr net.Addr) string {
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}

// CommandHandler interprets requests and executes them against the store.
type CommandHandler struct {
	store   *store.Store
	logger  *slog.Logger
	metrics *metric.Registry
	limiter *ipLimiter
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(st *store.Store, srv *Server, logger *slog.Logger) *CommandHandler {
	if logger == nil {
		logger = slog.Default()
	}

	var rl *ipLimiter
	if srv != nil && srv.cfg != nil && srv.cfg.RateLimit > 0 {
		rl = newIPLimiter(srv.cfg.RateLimit)
	}

	return &CommandHandler{
		store:   st,
		logger:  logger,
		metrics: srv.metrics,
		limiter: rl,
	}
}

// Handle executes one request and appends the encoded reply to out.
//
// Exactly one reply is appended per call, keeping responses aligned
// with pipelined requests. Rejected requests answer with an error
// value; they never close the connection.
func (h *CommandHandler) Handle(c *Conn, req resp.Value, out []byte) []byte {
	cmd, err := Interpret(req)
	if err != nil {
		h.metrics.CommandsTotal.WithLabelValues("invalid").Inc()

		var ce *CommandError
		if errors.As(err, &ce) {
			h.logger.Debug("rejected command", "conn_id", c.id, "reason", ce.Detail)
			return resp.Append(out, resp.Error(ce.Code))
		}
		return resp.Append(out, resp.Error(CodeInvalidCommand))
	}

	// Rate limiting check (per-IP). PING stays exempt so health checks
	// keep working under pressure.
	if h.limiter != nil {
		if _, isPing := cmd.(Ping); !isPing && !h.limiter.allow(clientIP(c.RemoteAddr())) {
			h.logger.Debug("rate limited", "conn_id", c.id, "command", cmd.name())
			return resp.Append(out, resp.Error(CodeRateLimited))
		}
	}

	start := time.Now()
	reply := h.execute(cmd)
	h.metrics.CommandsTotal.WithLabelValues(cmd.name()).Inc()
	h.metrics.CommandDuration.WithLabelValues(cmd.name()).Observe(time.Since(start).Seconds())

	return resp.Append(out, reply)
}

func (h *CommandHandler) execute(cmd Command) resp.Value {
	switch cmd := cmd.(type) {
	case Ping:
		if cmd.HasMessage {
			return resp.Bulk(cmd.Message)
		}
		return resp.Status("PONG")

	case Get:
		v, ok := h.store.Get(cmd.Key)
		h.logger.Debug("get", "key", resp.DisplayBytes(cmd.Key), "hit", ok)
		if !ok {
			return resp.Null
		}
		return resp.Bulk(v)

	case Set:
		existed := h.store.Set(cmd.Key, cmd.Value)
		h.logger.Debug("set", "key", resp.DisplayBytes(cmd.Key), "bytes", len(cmd.Value), "replaced", existed)
		return resp.Status("OK")

	case Del:
		n := h.store.Delete(cmd.Keys...)
		h.logger.Debug("del", "keys", len(cmd.Keys), "removed", n)
		return resp.Integer(int64(n))

	case Append:
		total := h.store.Append(cmd.Key, cmd.Value)
		h.logger.Debug("append", "key", resp.DisplayBytes(cmd.Key), "bytes", len(cmd.Value), "total", total)
		return resp.Integer(int64(total))

	case Keys:
		keys := h.store.Keys(cmd.Pattern)
		elems := make([]resp.Value, len(keys))
		for i, k := range keys {
			elems[i] = resp.Bulk(k)
		}
		return resp.Array(elems...)

	case Exists:
		if h.store.Exists(cmd.Key) {
			return resp.Integer(1)
		}
		return resp.Integer(0)

	case FlushAll:
		h.store.Clear()
		h.logger.Debug("flushall")
		return resp.Status("OK")

	case CommandList:
		return resp.Error(CodeNotImplemented)

	default:
		return resp.Errorf(CodeInvalidCommand, "unhandled command '%s'", cmd.name())
	}
}
