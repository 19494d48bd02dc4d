package genius

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"lyricfeat/internal/logging"
	"lyricfeat/internal/services"
)

const (
	defaultBaseURL     = "https://api.genius.com"
	defaultUserAgent   = "lyricfeat/dev"
	defaultHTTPTimeout = 8 * time.Second
)

// Config describes the Genius client configuration.
type Config struct {
	AccessToken string
	BaseURL     string
	UserAgent   string
	Timeout     time.Duration
	// Retries is the number of extra attempts after a retriable failure.
	Retries int
	// MinInterval spaces consecutive requests.
	MinInterval time.Duration
	// Backoff is the first retry delay; it doubles per attempt up to MaxBackoff.
	Backoff              time.Duration
	RemoveSectionHeaders bool
	SkipNonSongs         bool
	// MatchThreshold is the minimum title similarity for a non-exact hit.
	MatchThreshold float64
	HTTPClient     *http.Client
	Logger         *slog.Logger
}

// Client wraps the Genius search API and lyric pages.
type Client struct {
	token     string
	userAgent string
	baseURL   *url.URL
	http      *http.Client
	logger    *slog.Logger

	retries              int
	minInterval          time.Duration
	backoff              time.Duration
	removeSectionHeaders bool
	skipNonSongs         bool
	matchThreshold       float64

	mu          sync.Mutex
	lastRequest time.Time
}

// New creates a Client from the supplied configuration.
func New(cfg Config) (*Client, error) {
	token := strings.TrimSpace(cfg.AccessToken)
	if token == "" {
		return nil, services.Wrap(services.ErrConfiguration, "genius", "new client", "access token is required", nil)
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = defaultBaseURL
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("genius: parse base url: %w", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = InitialBackoff
	}
	minInterval := cfg.MinInterval
	if minInterval < 0 {
		minInterval = 0
	}
	retries := cfg.Retries
	if retries < 0 {
		retries = 0
	}
	return &Client{
		token:                token,
		userAgent:            userAgent,
		baseURL:              baseURL,
		http:                 client,
		logger:               logging.NewComponentLogger(cfg.Logger, "genius"),
		retries:              retries,
		minInterval:          minInterval,
		backoff:              backoff,
		removeSectionHeaders: cfg.RemoveSectionHeaders,
		skipNonSongs:         cfg.SkipNonSongs,
		matchThreshold:       cfg.MatchThreshold,
	}, nil
}

// throttle waits until MinInterval has passed since the previous request.
func (c *Client) throttle(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.lastRequest.IsZero() {
		if wait := c.minInterval - time.Since(c.lastRequest); wait > 0 {
			if err := SleepWithContext(ctx, wait); err != nil {
				return err
			}
		}
	}
	c.lastRequest = time.Now()
	return nil
}

// get performs a paced GET with retries and returns the response body.
func (c *Client) get(ctx context.Context, endpoint string, authorized bool) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			delay := backoffFor(c.backoff, attempt, lastErr)
			c.logger.Debug("retrying genius request",
				logging.Int("attempt", attempt),
				logging.Duration("delay", delay),
				logging.Error(lastErr))
			if err := SleepWithContext(ctx, delay); err != nil {
				return nil, err
			}
		}
		body, err := c.getOnce(ctx, endpoint, authorized)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !IsRetriable(err) || ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}

func (c *Client) getOnce(ctx context.Context, endpoint string, authorized bool) ([]byte, error) {
	if err := c.throttle(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("genius: build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if authorized {
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Accept", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("genius: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{
			Code:       resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(body)),
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("genius: read response: %w", err)
	}
	return body, nil
}

// classify tags err with the services marker matching its cause.
func classify(operation string, err error) error {
	var statusErr *StatusError
	switch {
	case errors.As(err, &statusErr) && (statusErr.Code == http.StatusUnauthorized || statusErr.Code == http.StatusForbidden):
		return services.Wrap(services.ErrConfiguration, "genius", operation, "access token rejected", err)
	case errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound:
		return services.Wrap(services.ErrNotFound, "genius", operation, "", err)
	case errors.Is(err, context.Canceled):
		return err
	case IsRetriable(err) && !errors.As(err, &statusErr):
		return services.Wrap(services.ErrTimeout, "genius", operation, "", err)
	default:
		return services.Wrap(services.ErrExternalService, "genius", operation, "", err)
	}
}
