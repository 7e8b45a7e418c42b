// Package client implements the HTTP adapter for the remote LearnHub API.
//
// Two cross-cutting behaviours apply to every call: a bearer header is
// attached whenever a token is present in session storage, and a 401 from the
// remote unconditionally clears the persisted session and fires the
// authorization-expired hook, regardless of which call triggered it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/learnhub/learnhub-client/internal/core/domain"
	"github.com/learnhub/learnhub-client/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Config captures the settings for constructing a Client. A default timeout
// is applied when none is provided.
type Config struct {
	// BaseURL is the remote API root, e.g. "http://localhost:3000/api".
	BaseURL string
	// Timeout bounds every call end-to-end. A timed-out call resolves to a
	// failure envelope, never a hang.
	Timeout time.Duration
	// Storage supplies the bearer token and is cleared on a 401.
	Storage ports.SessionStorage
	// OnAuthExpired runs after a 401 has cleared the persisted session. The
	// gateway uses it to redirect to the login entry point.
	OnAuthExpired func()
	Logger        zerolog.Logger
}

// Client dispatches requests to the remote API. It satisfies ports.APIClient.
type Client struct {
	http          *http.Client
	baseURL       string
	storage       ports.SessionStorage
	onAuthExpired func()
	log           zerolog.Logger
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http:          &http.Client{Timeout: timeout},
		baseURL:       cfg.BaseURL,
		storage:       cfg.Storage,
		onAuthExpired: cfg.OnAuthExpired,
		log:           cfg.Logger,
	}
}

func (c *Client) Login(ctx context.Context, creds domain.Credentials) (domain.Envelope[domain.LoginResult], error) {
	return do[domain.LoginResult](c, ctx, http.MethodPost, "/auth/login", nil, creds)
}

func (c *Client) Register(ctx context.Context, data domain.RegisterData) (domain.Envelope[domain.User], error) {
	return do[domain.User](c, ctx, http.MethodPost, "/auth/register", nil, data)
}

func (c *Client) Logout(ctx context.Context) (domain.Envelope[domain.Empty], error) {
	return do[domain.Empty](c, ctx, http.MethodPost, "/auth/logout", nil, nil)
}

func (c *Client) GetCurrentUser(ctx context.Context) (domain.Envelope[domain.User], error) {
	return do[domain.User](c, ctx, http.MethodGet, "/auth/me", nil, nil)
}

func (c *Client) GetCourses(ctx context.Context, filter domain.CourseFilter) (domain.Envelope[domain.CourseList], error) {
	q := url.Values{}
	if filter.Category > 0 {
		q.Set("category", strconv.Itoa(filter.Category))
	}
	if filter.Difficulty != "" {
		q.Set("difficulty", filter.Difficulty)
	}
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	if filter.Page > 0 {
		q.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.Limit > 0 {
		q.Set("limit", strconv.Itoa(filter.Limit))
	}
	return do[domain.CourseList](c, ctx, http.MethodGet, "/courses", q, nil)
}

func (c *Client) GetCourse(ctx context.Context, id int) (domain.Envelope[domain.Course], error) {
	return do[domain.Course](c, ctx, http.MethodGet, fmt.Sprintf("/courses/%d", id), nil, nil)
}

// Ping reports whether the remote API is reachable. Any HTTP response counts;
// only transport-level failure is an error.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("remote api unreachable: %w", err)
	}
	_ = resp.Body.Close()
	return nil
}

// do executes one request and normalizes the outcome:
//   - transport failure or non-2xx (except 401) → failure envelope, nil error
//   - 401 → persisted session cleared, expiry hook fired, ErrAuthorizationExpired
//   - 2xx with a payload that does not validate as an envelope → ErrMalformedResponse
func do[T any](c *Client, ctx context.Context, method, path string, query url.Values, body any) (domain.Envelope[T], error) {
	var zero domain.Envelope[T]

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return zero, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return zero, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.attachBearer(ctx, req)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("remote call failed")
		return domain.Fail[T](fmt.Sprintf("remote api unreachable: %v", err)), nil
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Fail[T](fmt.Sprintf("read response: %v", err)), nil
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.expireSession(ctx)
		return zero, domain.ErrAuthorizationExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.Fail[T](failureMessage(raw, resp.StatusCode)), nil
	}

	return decodeEnvelope[T](raw)
}

func (c *Client) attachBearer(ctx context.Context, req *http.Request) {
	token, err := c.storage.Read(ctx, domain.StorageKeyToken)
	if err != nil || token == "" {
		return
	}
	req.Header.Set("Authorization", "Bearer "+token)
}

// expireSession clears both persisted keys and fires the expiry hook. This is
// a side-effecting interceptor, not a per-call decision.
func (c *Client) expireSession(ctx context.Context) {
	if err := c.storage.Delete(ctx, domain.StorageKeyToken); err != nil {
		c.log.Warn().Err(err).Msg("clear persisted token")
	}
	if err := c.storage.Delete(ctx, domain.StorageKeyUser); err != nil {
		c.log.Warn().Err(err).Msg("clear persisted identity")
	}
	if c.onAuthExpired != nil {
		c.onAuthExpired()
	}
}

// decodeEnvelope validates the payload strictly against the envelope shape.
// Anything else fails loudly rather than being silently wrapped.
func decodeEnvelope[T any](raw []byte) (domain.Envelope[T], error) {
	var zero domain.Envelope[T]
	var probe struct {
		Success *bool  `json:"success"`
		Data    *T     `json:"data"`
		Message string `json:"message"`
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&probe); err != nil {
		return zero, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	if probe.Success == nil {
		return zero, fmt.Errorf("%w: missing success field", domain.ErrMalformedResponse)
	}

	return domain.Envelope[T]{Success: *probe.Success, Data: probe.Data, Message: probe.Message}, nil
}

// failureMessage extracts a best-effort reason from a non-2xx body.
func failureMessage(raw []byte, status int) string {
	var probe struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &probe); err == nil {
		if probe.Message != "" {
			return probe.Message
		}
		if probe.Error != "" {
			return probe.Error
		}
	}
	return http.StatusText(status)
}
