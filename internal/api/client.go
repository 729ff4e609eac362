package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Default client settings.
const (
	DefaultBaseURL = "https://api.nasa.gov"
	DefaultTimeout = 30 * time.Second
)

// Client is the HTTP API client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	retry      *RetryConfig

	limits rateLimitTracker
}

// Option configures the API client.
type Option func(*Client)

// WithBaseURL sets the base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithRetries sets the maximum number of retry attempts.
func WithRetries(retries int) Option {
	return func(c *Client) {
		c.retry.MaxRetries = retries
	}
}

// WithRetryOn sets the HTTP status codes that trigger a retry.
func WithRetryOn(statusCodes []int) Option {
	return func(c *Client) {
		retryable := make(map[int]struct{}, len(statusCodes))
		for _, code := range statusCodes {
			retryable[code] = struct{}{}
		}
		c.retry.RetryableOn = func(statusCode int) bool {
			_, ok := retryable[statusCode]
			return ok
		}
	}
}

// New creates a new API client.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		retry: DefaultRetryConfig(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// SetHTTPClient sets a custom HTTP client.
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// RateLimit returns the most recently observed rate limit snapshot.
func (c *Client) RateLimit() RateLimit {
	return c.limits.snapshot()
}

// Do issues a request against the API. The api_key parameter is appended
// to the supplied query values. A non-nil result is decoded from the JSON
// response body.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, result interface{}) error {
	q := url.Values{}
	for key, vals := range query {
		q[key] = vals
	}
	q.Set("api_key", c.apiKey)
	reqURL := c.baseURL + path + "?" + q.Encode()

	var resp *http.Response
	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err = c.httpClient.Do(req)
		if err != nil {
			if !c.retry.ShouldRetryError(attempt) {
				return &NetworkError{Err: err, URL: path, Attempt: attempt + 1}
			}
			if werr := c.retry.Wait(ctx, attempt); werr != nil {
				return &NetworkError{Err: errors.Join(err, werr), URL: path, Attempt: attempt + 1}
			}
			continue
		}

		c.limits.update(resp.Header)

		if c.retry.ShouldRetry(attempt, resp.StatusCode) {
			resp.Body.Close()
			if werr := c.retry.Wait(ctx, attempt); werr != nil {
				return werr
			}
			continue
		}
		break
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return parseErrorResponse(resp)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}

// errorBodyLimit caps how much of a non-JSON error body is carried into
// the error message.
const errorBodyLimit = 1024

// parseErrorResponse converts a non-2xx response into an *APIError.
// NASA returns two error body shapes: {"error": {"code", "message"}} for
// key and authorization failures, and {"code", "msg", "service_version"}
// for endpoint-level failures.
func parseErrorResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))

	var keyErr struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &keyErr); err == nil && keyErr.Error.Message != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       keyErr.Error.Code,
			Message:    keyErr.Error.Message,
		}
	}

	var endpointErr struct {
		Code           int    `json:"code"`
		Msg            string `json:"msg"`
		ServiceVersion string `json:"service_version"`
	}
	if err := json.Unmarshal(body, &endpointErr); err == nil && endpointErr.Msg != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    endpointErr.Msg,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    string(body),
	}
}
