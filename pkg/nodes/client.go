package nodes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dbnav/object-browser/internal/models"
	srvErrors "github.com/dbnav/object-browser/pkg/errors"
)

const requestIDHeader = "X-Request-Id"

// envelope is the body returned by every children endpoint.
type envelope struct {
	Data []models.RawRow `json:"data"`
}

// Client reads node children from the remote node API.
type Client struct {
	baseURL    *url.URL
	jwt        string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithJWTFile reads a bearer token from path. An empty path disables auth.
func WithJWTFile(path string) Option {
	return func(cl *Client) {
		if path == "" {
			return
		}
		data, err := os.ReadFile(path)
		if err != nil {
			zap.S().Named("nodes_client").Warnw("failed to read jwt file", "path", path, "error", err)
			return
		}
		cl.jwt = strings.TrimSpace(string(data))
	}
}

func WithJWT(token string) Option {
	return func(cl *Client) {
		cl.jwt = token
	}
}

func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse node api url: %w", err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.jwt != "" {
		warnIfExpired(c.jwt)
	}

	return c, nil
}

// FetchChildren issues GET <base>/<rel> and returns the rows of the data envelope.
func (c *Client) FetchChildren(ctx context.Context, rel string) ([]models.RawRow, error) {
	target := c.baseURL.JoinPath(rel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, srvErrors.NewLoadFailureError(rel, 0, err)
	}
	reqID := uuid.NewString()
	req.Header.Set(requestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if c.jwt != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.jwt))
	}

	zap.S().Named("nodes_client").Debugw("fetch node children", "url", target.String(), "request_id", reqID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, srvErrors.NewLoadFailureError(rel, 0, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, srvErrors.NewLoadFailureError(rel, resp.StatusCode, srvErrors.NewUnauthorizedError())
	default:
		return nil, srvErrors.NewLoadFailureError(rel, resp.StatusCode, fmt.Errorf("unexpected status: %s", resp.Status))
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()

	var body envelope
	if err := dec.Decode(&body); err != nil {
		return nil, srvErrors.NewLoadFailureError(rel, 0, fmt.Errorf("failed to decode node children: %w", err))
	}

	return body.Data, nil
}

// WaitReady polls the root listing until the node API answers or maxWait elapses.
func (c *Client) WaitReady(ctx context.Context, maxWait time.Duration) error {
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		_, err := c.FetchChildren(ctx, "nodes/")
		if srvErrors.IsUnauthorizedError(err) {
			return struct{}{}, backoff.Permanent(err)
		}
		if err != nil {
			zap.S().Named("nodes_client").Debugw("node api not ready", "error", err)
		}
		return struct{}{}, err
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(maxWait),
	)
	return err
}

func warnIfExpired(token string) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		zap.S().Named("nodes_client").Warnw("bearer token is not a valid jwt", "error", err)
		return
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return
	}
	if exp.Before(time.Now()) {
		zap.S().Named("nodes_client").Warnw("bearer token is expired", "expired_at", exp.Time)
	}
}
