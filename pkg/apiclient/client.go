package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/matzehuels/stackscope/pkg/analyzer"
	"github.com/matzehuels/stackscope/pkg/buildinfo"
	apperrors "github.com/matzehuels/stackscope/pkg/errors"
	"github.com/matzehuels/stackscope/pkg/httputil"
	"github.com/matzehuels/stackscope/pkg/integrations"
)

const (
	defaultAttempts   = 3
	defaultRetryDelay = 500 * time.Millisecond
	// apiTimeout bounds one API call, including the server's owner fan-out.
	apiTimeout = 60 * time.Second
)

// Client calls a remote stackscope API.
type Client struct {
	*integrations.Client
	baseURL  string
	attempts int
	delay    time.Duration
}

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	http     *http.Client
	attempts int
	delay    time.Duration
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *clientConfig) { cfg.http = c }
}

// WithRetry sets how often transient failures are attempted and the initial
// backoff delay.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(cfg *clientConfig) {
		cfg.attempts = attempts
		cfg.delay = delay
	}
}

// New creates a client for the API at baseURL, e.g. http://localhost:5000.
func New(baseURL string, opts ...Option) *Client {
	cfg := clientConfig{
		http:     &http.Client{Timeout: apiTimeout},
		attempts: defaultAttempts,
		delay:    defaultRetryDelay,
	}
	for _, o := range opts {
		o(&cfg)
	}
	headers := map[string]string{
		"Accept":     "application/json",
		"User-Agent": buildinfo.UserAgent(),
	}
	return &Client{
		Client:   integrations.NewClient(cfg.http, headers),
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		attempts: cfg.attempts,
		delay:    cfg.delay,
	}
}

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) Info(ctx context.Context, rawURL string) (*analyzer.RepoInfoResult, error) {
	var res analyzer.RepoInfoResult
	if err := c.fetch(ctx, analyzer.KindInfo, rawURL, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Languages(ctx context.Context, rawURL string) (analyzer.LanguagesResult, error) {
	res := analyzer.LanguagesResult{}
	if err := c.fetch(ctx, analyzer.KindLanguages, rawURL, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) Technologies(ctx context.Context, rawURL string) (*analyzer.TechnologiesResult, error) {
	res := analyzer.EmptyTechnologies()
	if err := c.fetch(ctx, analyzer.KindTechnologies, rawURL, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) Schema(ctx context.Context, rawURL string) (*analyzer.SchemaResult, error) {
	var res analyzer.SchemaResult
	if err := c.fetch(ctx, analyzer.KindSchema, rawURL, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Ping checks that the API answers on its root route.
func (c *Client) Ping(ctx context.Context) error {
	var body struct {
		Message string `json:"message"`
	}
	if err := c.Get(ctx, c.baseURL+"/", &body); err != nil {
		return translate(err)
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, endpoint, rawURL string, v any) error {
	u := c.baseURL + "/api/repo/" + endpoint + "?url=" + url.QueryEscape(rawURL)
	err := httputil.Retry(ctx, c.attempts, c.delay, func() error {
		err := c.Get(ctx, u, v)
		if err != nil && transient(err) {
			return httputil.Retryable(err)
		}
		return err
	})
	if err != nil {
		return translate(err)
	}
	return nil
}

// transient reports whether a failed call is worth repeating: the API was
// unreachable or a gateway in front of it failed.
func transient(err error) bool {
	switch integrations.StatusCode(err) {
	case 0:
		return errors.Is(err, integrations.ErrNetwork)
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// translate turns transport and status errors into *apperrors.Error values.
func translate(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var se *integrations.StatusError
	if !errors.As(err, &se) {
		if errors.Is(err, integrations.ErrNetwork) {
			return apperrors.Wrap(apperrors.ErrCodeNetwork, err, "Could not reach the stackscope API")
		}
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "Unexpected response from the stackscope API")
	}

	var body apperrors.Body
	if json.Unmarshal(se.Body, &body) != nil || (body.Error == "" && body.Message == "") {
		body = apperrors.Body{Message: se.Message}
	}
	e := body.Err(se.StatusCode)
	e.Cause = err
	return e
}
