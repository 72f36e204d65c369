// Package flashblade provides a minimal client for the FlashBlade REST 2.x
// management API.
package flashblade

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultUserAgent is sent on every request unless WithUserAgent is used.
	DefaultUserAgent = "MCP/0.1.0"

	defaultTimeout  = 30 * time.Second
	maxResponseBody = 32 << 20

	headerAPIToken  = "api-token"
	headerAuthToken = "x-auth-token"
)

// Client is a logged-in session against one array. Build it with New.
type Client struct {
	baseURL    string
	apiVersion string
	authToken  string
	userAgent  string
	http       *http.Client
}

type options struct {
	httpClient *http.Client
	verifyTLS  bool
	timeout    time.Duration
	userAgent  string
}

// Option configures New.
type Option func(*options)

// WithHTTPClient replaces the HTTP client. TLS and timeout options are then
// ignored.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithVerifyTLS turns certificate verification on or off. Arrays commonly
// ship self-signed certificates, so it is off by default.
func WithVerifyTLS(verify bool) Option {
	return func(o *options) { o.verifyTLS = verify }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		if ua != "" {
			o.userAgent = ua
		}
	}
}

// LoginError reports that a session could not be established.
type LoginError struct {
	Target     string
	StatusCode int
	Err        error
}

func (e *LoginError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("flashblade: login to %s failed with status %d: %v", e.Target, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("flashblade: login to %s failed: %v", e.Target, e.Err)
}

func (e *LoginError) Unwrap() error { return e.Err }

// New logs in to target with apiToken and negotiates the REST version.
// target is a host, host:port or https URL.
func New(ctx context.Context, target, apiToken string, opts ...Option) (*Client, error) {
	o := options{timeout: defaultTimeout, userAgent: DefaultUserAgent}
	for _, opt := range opts {
		opt(&o)
	}
	base, err := baseURL(target)
	if err != nil {
		return nil, &LoginError{Target: target, Err: err}
	}
	if apiToken == "" {
		return nil, &LoginError{Target: target, Err: errors.New("api token is empty")}
	}

	hc := o.httpClient
	if hc == nil {
		tr := http.DefaultTransport.(*http.Transport).Clone()
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: !o.verifyTLS} //nolint:gosec // arrays use self-signed certs
		hc = &http.Client{Timeout: o.timeout, Transport: tr}
	}

	c := &Client{baseURL: base, userAgent: o.userAgent, http: hc}
	if err := c.login(ctx, apiToken); err != nil {
		return nil, err
	}
	if err := c.negotiateVersion(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// APIVersion returns the negotiated REST version, e.g. "2.14".
func (c *Client) APIVersion() string { return c.apiVersion }

// BaseURL returns the normalized management endpoint.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) login(ctx context.Context, apiToken string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/login", nil)
	if err != nil {
		return &LoginError{Target: c.baseURL, Err: err}
	}
	req.Header.Set(headerAPIToken, apiToken)
	c.decorate(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return &LoginError{Target: c.baseURL, Err: err}
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &LoginError{Target: c.baseURL, StatusCode: resp.StatusCode, Err: decodeError(resp.StatusCode, body)}
	}
	token := resp.Header.Get(headerAuthToken)
	if token == "" {
		return &LoginError{Target: c.baseURL, StatusCode: resp.StatusCode, Err: errors.New("no session token in login response")}
	}
	c.authToken = token
	return nil
}

func (c *Client) negotiateVersion(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/api_version", nil)
	if err != nil {
		return &LoginError{Target: c.baseURL, Err: err}
	}
	c.decorate(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return &LoginError{Target: c.baseURL, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &LoginError{Target: c.baseURL, StatusCode: resp.StatusCode, Err: errors.New("api_version request rejected")}
	}

	var body struct {
		Versions []string `json:"versions"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(&body); err != nil {
		return &LoginError{Target: c.baseURL, Err: fmt.Errorf("decode api_version: %w", err)}
	}
	v, ok := latestV2(body.Versions)
	if !ok {
		return &LoginError{Target: c.baseURL, Err: fmt.Errorf("no REST 2.x version offered (got %v)", body.Versions)}
	}
	c.apiVersion = v
	return nil
}

// get fetches one page from a REST 2.x collection.
func get[T any](ctx context.Context, c *Client, path string, q url.Values) (Response, error) {
	u := c.baseURL + "/api/" + c.apiVersion + "/" + strings.TrimLeft(path, "/")
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(headerAuthToken, c.authToken)
	c.decorate(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("flashblade: GET %s: %w", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("flashblade: read %s: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, body), nil
	}
	valid, err := decodeValid[T](resp.StatusCode, body)
	if err != nil {
		return nil, fmt.Errorf("flashblade: %s: %w", path, err)
	}
	return valid, nil
}

func (c *Client) decorate(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
}

// baseURL normalizes a target into scheme://host[:port].
func baseURL(target string) (string, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return "", errors.New("target is empty")
	}
	if !strings.Contains(target, "://") {
		target = "https://" + target
	}
	u, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("invalid target: %w", err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid target %q", target)
	}
	return u.Scheme + "://" + u.Host, nil
}

// latestV2 picks the highest 2.x entry from an api_version listing.
func latestV2(versions []string) (string, bool) {
	best, bestMinor := "", -1
	for _, v := range versions {
		major, minor, ok := strings.Cut(v, ".")
		if !ok || major != "2" {
			continue
		}
		n, err := strconv.Atoi(minor)
		if err != nil {
			continue
		}
		if n > bestMinor {
			best, bestMinor = v, n
		}
	}
	return best, bestMinor >= 0
}
