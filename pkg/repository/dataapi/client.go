package dataapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/marketplace-labs/briefdesk/pkg/domain/interfaces"
	"github.com/marketplace-labs/briefdesk/pkg/utils/logging"
	"github.com/marketplace-labs/briefdesk/pkg/utils/safe"
)

// ErrUnavailable means the data API could not be reached or failed
var ErrUnavailable = goerr.New("data API unavailable")

// Client is a repository backed by the marketplace data API
type Client struct {
	baseURL    *url.URL
	token      string
	httpClient *http.Client
	userAgent  string
}

var (
	_ interfaces.Repository = &Client{}
	_ interfaces.Pinger     = &Client{}
)

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

func WithUserAgent(ua string) Option {
	return func(cl *Client) {
		cl.userAgent = ua
	}
}

func New(baseURL, token string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, goerr.Wrap(err, "invalid data API URL", goerr.V("url", baseURL))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, goerr.New("data API URL must be http or https", goerr.V("url", baseURL))
	}

	c := &Client{
		baseURL:    u,
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		userAgent:  "briefdesk",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) Framework() interfaces.FrameworkRepository {
	return &frameworkClient{c}
}

func (c *Client) Brief() interfaces.BriefRepository {
	return &briefClient{c}
}

func (c *Client) BriefResponse() interfaces.BriefResponseRepository {
	return &briefResponseClient{c}
}

func (c *Client) DirectAwardProject() interfaces.DirectAwardProjectRepository {
	return &projectClient{c}
}

func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// Ping checks the API status endpoint
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/_status", nil, nil, nil)
}

// do sends body as JSON and decodes the reply into out. Both may be nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return goerr.Wrap(err, "failed to marshal request body", goerr.V("path", path))
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return goerr.Wrap(err, "failed to build request", goerr.V("path", path))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(ErrUnavailable, "data API request failed",
			goerr.V("method", method),
			goerr.V("path", path),
			goerr.V("error", err.Error()))
	}
	defer safe.Close(ctx, resp.Body)

	logging.From(ctx).Debug("data API call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return goerr.Wrap(interfaces.ErrNotFound, "data API record not found",
			goerr.V("method", method),
			goerr.V("path", path))
	case resp.StatusCode >= 500:
		return goerr.Wrap(ErrUnavailable, "data API server error",
			goerr.V("method", method),
			goerr.V("path", path),
			goerr.V("status", resp.StatusCode))
	case resp.StatusCode >= 400:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return goerr.New("data API rejected request",
			goerr.V("method", method),
			goerr.V("path", path),
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(msg)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return goerr.Wrap(err, "failed to decode data API response",
			goerr.V("method", method),
			goerr.V("path", path))
	}
	return nil
}
