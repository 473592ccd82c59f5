// Package client is a typed Go client for the portfolio REST API, plus the
// editing helpers an admin tool builds on: the Screen state machine, the
// SequenceEditor and fail-soft section fetching.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"
)

const defaultUserAgent = "portfolio-client/1.0"

// Client talks to one portfolio server. Browser-style sessions are kept in
// a cookie jar; a bearer token, when set, is sent on every request.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	userAgent  string

	mu    sync.RWMutex
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. A client without a
// cookie jar cannot hold a login session.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken authenticates every request with a bearer token.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", baseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Jar: jar, Timeout: 30 * time.Second},
		userAgent:  defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SetToken switches the client to bearer authentication. An empty token
// falls back to the session cookie.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// do sends one request and decodes a successful JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		var eb errorBody
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &eb)
		}
		if eb.Error == "" {
			eb.Error = http.StatusText(resp.StatusCode)
		}
		return statusError(resp.StatusCode, eb)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Health reports server and database status.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.do(ctx, http.MethodGet, "/_health", nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login opens a session. The session cookie is kept for later requests.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var resp struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", credentials{email, password}, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Logout closes the current session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

// Session returns the signed-in user.
func (c *Client) Session(ctx context.Context) (*User, error) {
	var resp struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/session", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// IssueToken exchanges credentials for a bearer token. The client does not
// start using it until SetToken is called.
func (c *Client) IssueToken(ctx context.Context, email, password string) (*Token, error) {
	var t Token
	if err := c.do(ctx, http.MethodPost, "/api/auth/token", credentials{email, password}, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Profile returns the site profile, or nil when none was saved yet.
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	var p *Profile
	if err := c.do(ctx, http.MethodGet, "/api/profile", nil, &p); err != nil {
		return nil, err
	}
	return p, nil
}

// SaveProfile creates or replaces the profile.
func (c *Client) SaveProfile(ctx context.Context, p Profile) (*Profile, error) {
	var saved Profile
	if err := c.do(ctx, http.MethodPut, "/api/profile", p, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// HomeStats returns the hero counters. The server creates defaults on first read.
func (c *Client) HomeStats(ctx context.Context) (*HomeStats, error) {
	var s HomeStats
	if err := c.do(ctx, http.MethodGet, "/api/home-stats", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) SaveHomeStats(ctx context.Context, s HomeStats) (*HomeStats, error) {
	var saved HomeStats
	if err := c.do(ctx, http.MethodPut, "/api/home-stats", s, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// AdminStats returns the dashboard counters.
func (c *Client) AdminStats(ctx context.Context) (*DashboardStats, error) {
	var s DashboardStats
	if err := c.do(ctx, http.MethodGet, "/api/admin/stats", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SendMessage submits the public contact form and returns the new message id.
func (c *Client) SendMessage(ctx context.Context, in MessageInput) (string, error) {
	var resp struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/contact", in, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// Messages lists contact submissions, newest first.
func (c *Client) Messages(ctx context.Context) ([]Message, error) {
	var rows []Message
	if err := c.do(ctx, http.MethodGet, "/api/contact", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) Message(ctx context.Context, id string) (*Message, error) {
	var m Message
	if err := c.do(ctx, http.MethodGet, "/api/contact/"+url.PathEscape(id), nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// MarkRead sets the read flag of a message.
func (c *Client) MarkRead(ctx context.Context, id string, read bool) (*Message, error) {
	var m Message
	body := struct {
		Read bool `json:"read"`
	}{read}
	if err := c.do(ctx, http.MethodPut, "/api/contact/"+url.PathEscape(id), body, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *Client) DeleteMessage(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/contact/"+url.PathEscape(id), nil, nil)
}

// Projects returns the project collection endpoint.
func (c *Client) Projects() *Resource[Project] { return newResource[Project](c, "projects") }

// Skills returns the skill collection endpoint.
func (c *Client) Skills() *Resource[Skill] { return newResource[Skill](c, "skills") }

// Experiences returns the experience collection endpoint.
func (c *Client) Experiences() *Resource[Experience] {
	return newResource[Experience](c, "experiences")
}

// Education returns the education collection endpoint.
func (c *Client) Education() *Resource[Education] { return newResource[Education](c, "education") }
