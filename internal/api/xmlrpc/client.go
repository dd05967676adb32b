package xmlrpc

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/kolo/xmlrpc"

	"github.com/getpatchwork/pwclient/internal/api"
)

// caller is the slice of the XML-RPC client the backend uses. Tests
// substitute a fake to exercise resolution and normalization without a
// server.
type caller interface {
	Call(serviceMethod string, args any, reply any) error
}

// Client is the XML-RPC implementation of api.API.
type Client struct {
	server string
	rpc    caller
	logger *slog.Logger
	stderr io.Writer
}

var _ api.API = (*Client)(nil)

// Option configures the Client during construction.
type Option func(*Client)

// WithLogger configures structured logging.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithStderr redirects diagnostic output, which otherwise goes to
// os.Stderr.
func WithStderr(w io.Writer) Option {
	return func(c *Client) { c.stderr = w }
}

// WithCaller replaces the underlying XML-RPC transport. Used by tests.
func WithCaller(rpc caller) Option {
	return func(c *Client) { c.rpc = rpc }
}

// New creates an XML-RPC client for the given server URL. Credentials
// ride on every call as HTTP Basic auth; proxies are honored via the
// standard proxy environment variables, with the scheme taken from the
// proxy URL. The legacy API has no token support.
func New(server string, creds api.Credentials, opts ...Option) (*Client, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	if creds.HasToken() {
		return nil, &api.ConfigError{
			Reason: "the XML-RPC API does not support API tokens",
		}
	}

	c := &Client{
		server: server,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.rpc == nil {
		if _, err := url.Parse(server); err != nil {
			return nil, &api.APIError{
				Operation: "connect",
				Message:   "unable to connect to " + server,
				Err:       err,
			}
		}

		var transport http.RoundTripper = &http.Transport{
			Proxy: http.ProxyFromEnvironment,
		}
		if creds.HasBasic() {
			transport = &basicAuthTransport{
				base:     transport,
				username: creds.Username,
				password: creds.Password,
			}
		}
		transport = &binaryTextTransport{base: transport}

		rpc, err := xmlrpc.NewClient(server, transport)
		if err != nil {
			return nil, &api.APIError{
				Operation: "connect",
				Message:   "unable to connect to " + server,
				Err:       err,
			}
		}
		c.rpc = rpc
	}

	return c, nil
}

// basicAuthTransport injects the configured credentials into every
// request the XML-RPC client makes.
type basicAuthTransport struct {
	base     http.RoundTripper
	username string
	password string
}

func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.SetBasicAuth(t.username, t.password)
	return t.base.RoundTrip(clone)
}

// call performs one RPC, translating faults into the unified error
// taxonomy. The fault cause stays wrapped so callers that need to
// distinguish fault kinds (the hash-lookup fallback) still can.
func (c *Client) call(ctx context.Context, method string, args []any, reply any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.logger.InfoContext(ctx, "RPC call", "method", method)

	err := c.rpc.Call(method, args, reply)
	if err == nil {
		return nil
	}

	var fault xmlrpc.FaultError
	if errors.As(err, &fault) {
		return &api.APIError{Operation: method, Message: fault.String, Err: fault}
	}
	return &api.APIError{Operation: method, Err: err}
}

// isUnknownMethodFault reports whether err is a server fault complaining
// about a method the server does not implement. Older Patchwork servers
// predate some lookup methods, and callers fall back to an equivalent
// call instead of failing.
func isUnknownMethodFault(err error) bool {
	var fault xmlrpc.FaultError
	if !errors.As(err, &fault) {
		return false
	}
	msg := strings.ToLower(fault.String)
	return strings.Contains(msg, "unknown method") ||
		strings.Contains(msg, "unsupported method") ||
		strings.Contains(msg, "method not supported") ||
		strings.Contains(msg, "is not supported")
}
