package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/getpatchwork/pwclient/internal/api"
)

// legacyPath is the XML-RPC endpoint path that old configurations carry.
// URLs ending in it are rewritten to the REST API path.
const legacyPath = "/xmlrpc"

// errNotFound marks a 404 response to a GET. It never escapes the
// package: callers translate it into the soft "no such record" result.
var errNotFound = errors.New("not found")

// Client is the REST implementation of api.API.
type Client struct {
	server     string // normalized base URL, no trailing slash
	creds      api.Credentials
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
	stderr     io.Writer
}

var _ api.API = (*Client)(nil)

// Option configures the Client during construction.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithLogger configures structured logging.
func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) { cl.logger = l }
}

// WithVersion sets the client version reported in the User-Agent header.
func WithVersion(v string) Option {
	return func(cl *Client) { cl.userAgent = "pwclient (" + v + ")" }
}

// WithStderr redirects diagnostic output, which otherwise goes to
// os.Stderr.
func WithStderr(w io.Writer) Option {
	return func(cl *Client) { cl.stderr = w }
}

// New creates a REST client for the given server URL. A URL whose path is
// the legacy XML-RPC endpoint is rewritten to the REST API path, with a
// note on stderr. Credentials are validated before anything else; both a
// username/password pair and a token are accepted, but not together.
func New(server string, creds api.Credentials, opts ...Option) (*Client, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		creds:      creds,
		userAgent:  "pwclient (dev)",
		httpClient: &http.Client{},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		stderr:     os.Stderr,
	}
	for _, opt := range opts {
		opt(c)
	}

	parsed, err := url.Parse(server)
	if err != nil {
		return nil, &api.APIError{Operation: "parse server URL", Err: err}
	}
	scheme := parsed.Scheme
	if scheme == "" {
		scheme = "http"
	}
	path := strings.TrimRight(parsed.Path, "/")
	if path == legacyPath {
		path = "/api"
		fmt.Fprintf(c.stderr, "Note: %s is an XML-RPC endpoint; using the REST API at %s instead\n",
			server, path)
	}
	c.server = scheme + "://" + parsed.Host + path

	return c, nil
}

// listURL builds a collection URL with an optional query string.
func (c *Client) listURL(resource string, params url.Values) string {
	u := c.server + "/" + resource + "/"
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

// detailURL builds a single-resource URL.
func (c *Client) detailURL(resource string, id int) string {
	return fmt.Sprintf("%s/%s/%d/", c.server, resource, id)
}

// subURL builds a sub-resource URL, e.g. patches/42/checks/.
func (c *Client) subURL(resource string, id int, subresource string) string {
	return fmt.Sprintf("%s/%s/%d/%s/", c.server, resource, id, subresource)
}

// doRaw performs one HTTP exchange and returns the raw body and response
// headers. A 404 on GET maps to errNotFound, mirroring the XML-RPC API's
// empty-record behavior for unknown identifiers. Any other non-2xx status
// is an API error carrying the response body.
func (c *Client) doRaw(ctx context.Context, method, rawURL, operation string, body any) ([]byte, http.Header, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: encode request: %w", operation, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: create request: %w", operation, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if c.creds.HasToken() {
		req.Header.Set("Authorization", "Token "+c.creds.Token)
	} else if c.creds.HasBasic() {
		req.SetBasicAuth(c.creds.Username, c.creds.Password)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.InfoContext(ctx, "API request", "operation", operation, "method", method, "url", rawURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, &api.APIError{Operation: operation, Err: err}
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "API response", "operation", operation, "status", resp.StatusCode)

	if method == http.MethodGet && resp.StatusCode == http.StatusNotFound {
		return nil, nil, fmt.Errorf("%s: %w", operation, errNotFound)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: read response: %w", operation, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(data))
		if msg == "" {
			msg = resp.Status
		}
		return nil, nil, &api.APIError{Operation: operation, Message: msg}
	}

	return data, resp.Header, nil
}

// doJSON performs one HTTP exchange and decodes the JSON response into
// dst. dst may be nil when the response body is irrelevant.
func (c *Client) doJSON(ctx context.Context, method, rawURL, operation string, body, dst any) error {
	data, _, err := c.doRaw(ctx, method, rawURL, operation, body)
	if err != nil {
		return err
	}
	if dst != nil {
		if err := json.Unmarshal(data, dst); err != nil {
			return &api.APIError{Operation: operation, Message: "malformed response body", Err: err}
		}
	}
	return nil
}

// slugify lowercases a display string and hyphenates spaces, producing
// the value the REST API expects for state filters.
func slugify(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "-")
}
