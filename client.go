package stellaria

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/stellaria/client-go/internal/api"
)

// DemoKey is NASA's shared public API key. It works without registration
// but is throttled to a small hourly quota.
const DemoKey = "DEMO_KEY"

// EnvAPIKey is the environment variable read by NewFromEnv.
const EnvAPIKey = "NASA_API_KEY"

// RateLimit is a snapshot of the hourly quota reported by the API.
type RateLimit = api.RateLimit

// Client is the main client for NASA's Web APIs.
type Client struct {
	apiClient *api.Client
	apod      *APOD
}

// buildAPIClient creates and configures an API client from the given config.
func buildAPIClient(apiKey string, cfg *clientConfig) (*api.Client, error) {
	apiOpts := []api.Option{
		api.WithBaseURL(cfg.baseURL),
	}
	if cfg.timeout > 0 {
		apiOpts = append(apiOpts, api.WithTimeout(cfg.timeout))
	}
	if cfg.retries > 0 {
		apiOpts = append(apiOpts, api.WithRetries(cfg.retries))
	}
	if len(cfg.retryOn) > 0 {
		apiOpts = append(apiOpts, api.WithRetryOn(cfg.retryOn))
	}

	apiClient, err := api.New(apiKey, apiOpts...)
	if err != nil {
		return nil, err
	}

	if cfg.httpClient != nil {
		apiClient.SetHTTPClient(cfg.httpClient)
	}

	return apiClient, nil
}

// New creates a new client with the given API key.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	cfg := &clientConfig{
		baseURL: defaultBaseURL,
		timeout: defaultTimeout,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	apiClient, err := buildAPIClient(apiKey, cfg)
	if err != nil {
		return nil, err
	}

	c := &Client{apiClient: apiClient}
	c.apod = &APOD{api: apiClient}

	return c, nil
}

// NewFromEnv creates a client using the NASA_API_KEY environment variable.
// A .env file in the working directory is loaded first if present.
func NewFromEnv(opts ...Option) (*Client, error) {
	_ = godotenv.Load()

	key := os.Getenv(EnvAPIKey)
	if key == "" {
		return nil, ErrMissingAPIKey
	}
	return New(key, opts...)
}

// APOD returns the Astronomy Picture of the Day service.
func (c *Client) APOD() *APOD {
	return c.apod
}

// RateLimit returns the rate limit snapshot from the most recent response.
// The zero value is returned before any request has completed; check
// RateLimit.Known.
func (c *Client) RateLimit() RateLimit {
	return c.apiClient.RateLimit()
}
