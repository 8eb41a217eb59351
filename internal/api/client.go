package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/m-mizutani/goerr/v2"
	"go.uber.org/zap"

	"tcm/internal/config"
)

// Resource paths exposed by the backend
const (
	PathTestCases  = "/testCases"
	PathTestSuites = "/testSuites"
	PathUsers      = "/users"
)

// ErrTransport is wrapped by every error caused by a failed request:
// network failure, non-2xx status or an undecodable body.
var ErrTransport = errors.New("transport error")

// Client talks to the test management REST backend. It does not retry;
// failures are returned to the caller immediately.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a Client for the configured backend
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    cfg.GetAPIURL(),
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		logger:     logger.Named("api"),
	}
}

// BaseURL returns the backend base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

func resourcePath(collection, id string) string {
	return collection + "/" + url.PathEscape(id)
}

// do sends a request with an optional JSON body and decodes the JSON
// response into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	target := c.baseURL + path

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return goerr.Wrap(err, "failed to encode request body", goerr.V("method", method), goerr.V("url", target))
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return goerr.Wrap(err, "failed to build request", goerr.V("method", method), goerr.V("url", target))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("request failed", zap.String("method", method), zap.String("url", target), zap.Error(err))
		return goerr.Wrap(fmt.Errorf("%w: %w", ErrTransport, err), "request failed",
			goerr.V("method", method), goerr.V("url", target))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Error("unexpected status",
			zap.String("method", method),
			zap.String("url", target),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", snippet),
		)
		return goerr.Wrap(fmt.Errorf("%w: unexpected status %d", ErrTransport, resp.StatusCode), "request failed",
			goerr.V("method", method), goerr.V("url", target), goerr.V("status", resp.StatusCode))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return goerr.Wrap(fmt.Errorf("%w: %w", ErrTransport, err), "failed to decode response",
			goerr.V("method", method), goerr.V("url", target), goerr.V("status", resp.StatusCode))
	}

	c.logger.Debug("request done", zap.String("method", method), zap.String("url", target), zap.Int("status", resp.StatusCode))
	return nil
}

func getAll[T any](ctx context.Context, c *Client, collection string) ([]T, error) {
	var items []T
	if err := c.do(ctx, http.MethodGet, collection, nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func create[T any](ctx context.Context, c *Client, collection string, item T) (T, error) {
	var created T
	if err := c.do(ctx, http.MethodPost, collection, item, &created); err != nil {
		return created, err
	}
	return created, nil
}

func update[T any](ctx context.Context, c *Client, collection, id string, item T) (T, error) {
	var updated T
	if err := c.do(ctx, http.MethodPut, resourcePath(collection, id), item, &updated); err != nil {
		return updated, err
	}
	return updated, nil
}

func remove(ctx context.Context, c *Client, collection, id string) error {
	return c.do(ctx, http.MethodDelete, resourcePath(collection, id), nil, nil)
}
