// Package gpodder is a client for the gpodder.net web service API.
//
// Every method maps to exactly one HTTP round trip. Nothing is cached or
// retried, the server owns all state. Failures are returned as *Error with a
// Kind, so callers can tell rejected credentials from a broken network or a
// misbehaving server.
package gpodder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/mxpv/mygpo/pkg/model"
)

const (
	defaultUserAgent = "mygpo/dev"
	maxErrorBody     = 512
)

// Config holds the client settings. Credentials are kept in memory only.
type Config struct {
	// BaseURL of the service, https://gpodder.net by default.
	BaseURL  string
	Username string
	Password string
	// Token switches from basic auth to a bearer token.
	Token     string
	Timeout   time.Duration
	UserAgent string
	// HTTPClient is used as the underlying transport when set.
	HTTPClient *http.Client
}

// Client talks to the gpodder.net API. It is safe for concurrent use.
type Client struct {
	base      string
	username  string
	password  string
	bearer    bool
	http      *http.Client
	userAgent string
}

// New creates a client from cfg.
func New(cfg Config) (*Client, error) {
	base, err := parseBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = model.DefaultTimeout
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	httpClient := &http.Client{}
	if cfg.HTTPClient != nil {
		copied := *cfg.HTTPClient
		httpClient = &copied
	}

	if cfg.Token != "" {
		base := httpClient
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		httpClient = oauth2.NewClient(ctx, ts)

		// NewClient only keeps the transport
		httpClient.Timeout = base.Timeout
		httpClient.CheckRedirect = base.CheckRedirect
		httpClient.Jar = base.Jar
	}

	if httpClient.Timeout == 0 {
		httpClient.Timeout = timeout
	}

	return &Client{
		base:      base,
		username:  cfg.Username,
		password:  cfg.Password,
		bearer:    cfg.Token != "",
		http:      httpClient,
		userAgent: userAgent,
	}, nil
}

// Username returns the account the client acts on.
func (c *Client) Username() string {
	return c.username
}

func (c *Client) requireUser(op string) error {
	if c.username == "" {
		return invalid(op, "username is required")
	}
	return nil
}

// endpoint formats path with escaped args and appends the query.
func (c *Client) endpoint(query url.Values, path string, args ...string) string {
	escaped := make([]interface{}, len(args))
	for i, arg := range args {
		escaped[i] = url.PathEscape(arg)
	}

	out := c.base + fmt.Sprintf(path, escaped...)
	if len(query) > 0 {
		out += "?" + query.Encode()
	}
	return out
}

type request struct {
	op     string
	method string
	url    string
	auth   bool
	body   interface{}
	dest   interface{}
}

func (c *Client) do(ctx context.Context, r request) error {
	var body io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return invalid(r.op, "failed to encode request: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, r.url, body)
	if err != nil {
		return invalid(r.op, "failed to create request: %v", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.auth && !c.bearer {
		req.SetBasicAuth(c.username, c.password)
	}

	logger := log.WithFields(log.Fields{
		"op":     r.op,
		"method": r.method,
		"path":   req.URL.Path,
	})

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.WithError(err).Debug("request failed")
		return classifyTransport(r.op, err)
	}
	defer resp.Body.Close()

	logger.WithFields(log.Fields{
		"status":  resp.StatusCode,
		"elapsed": time.Since(started),
	}).Debug("request completed")

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &Error{Kind: KindAuth, Op: r.op, StatusCode: resp.StatusCode, Err: errors.New(readSnippet(resp.Body))}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &Error{Kind: KindServer, Op: r.op, StatusCode: resp.StatusCode, Err: errors.New(readSnippet(resp.Body))}
	}

	if r.dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := decode(resp.Body, r.dest); err != nil {
		if isTimeout(err) {
			return &Error{Kind: KindTimeout, Op: r.op, Err: err}
		}
		return &Error{Kind: KindProtocol, Op: r.op, StatusCode: resp.StatusCode, Err: errors.Wrap(err, "failed to decode response")}
	}

	return nil
}

// decode expects exactly one non-null JSON value in the body.
func decode(body io.Reader, dest interface{}) error {
	dec := json.NewDecoder(body)

	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	if bytes.Equal(raw, []byte("null")) {
		return errors.New("unexpected null payload")
	}

	if _, err := dec.Token(); err != io.EOF {
		if err != nil && isTimeout(err) {
			return err
		}
		return errors.New("unexpected data after payload")
	}

	return json.Unmarshal(raw, dest)
}

func classifyTransport(op string, err error) error {
	if errors.Is(err, context.Canceled) {
		return &Error{Kind: KindCanceled, Op: op, Err: err}
	}
	if isTimeout(err) {
		return &Error{Kind: KindTimeout, Op: op, Err: err}
	}
	return &Error{Kind: KindTransport, Op: op, Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func readSnippet(r io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "empty response"
	}
	return text
}

func parseBaseURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = model.DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse base URL %q", raw)
	}
	if u.Host == "" {
		return "", errors.Errorf("base URL %q has no host", raw)
	}

	u.RawQuery = ""
	u.Fragment = ""
	return strings.TrimSuffix(u.String(), "/"), nil
}
