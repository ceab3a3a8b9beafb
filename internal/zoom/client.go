package zoom

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the root of the Zoom REST API.
const DefaultBaseURL = "https://api.zoom.us/v2"

// defaultHTTPTimeout bounds a single request attempt; the retry layer owns
// everything beyond that.
const defaultHTTPTimeout = 30 * time.Second

// Client wraps the provider's REST API with token handling and the retry
// layer. All outbound calls go through the Executor.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     *TokenManager
	exec       *Executor
	logger     *slog.Logger
}

// NewClient creates a Client. baseURL defaults to DefaultBaseURL when empty.
func NewClient(baseURL string, tokens *TokenManager, exec *Executor, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		exec:       exec,
		logger:     logger,
	}
}

// getJSON issues an authenticated GET against an API path and decodes the
// response into out. The whole call, token fetch included, runs inside one
// retry attempt so a refreshed token is picked up on retry.
func (c *Client) getJSON(ctx context.Context, op, apiPath string, query url.Values, out any) error {
	return c.exec.Do(ctx, op, func(ctx context.Context) error {
		u := c.baseURL + apiPath
		if len(query) > 0 {
			u += "?" + query.Encode()
		}
		body, err := c.get(ctx, op, u)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("%s: decoding response: %w", op, err)
		}
		return nil
	})
}

// get performs one authenticated GET attempt and returns the raw body.
func (c *Client) get(ctx context.Context, op, rawURL string) ([]byte, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: building request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, classifyResponse(op, resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	return body, nil
}
