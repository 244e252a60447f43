package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"report-agent/internal/application/port/output"
	"report-agent/internal/domain/entity"

	"github.com/cenkalti/backoff/v4"
)

var _ output.FetcherPort = (*Client)(nil)

const (
	DefaultTimeout     = 10 * time.Second
	DefaultMaxAttempts = 3
	DefaultBackoff     = 2 * time.Second

	maxBodyBytes = 10 << 20

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	searchBaseURL = "https://html.duckduckgo.com/html/?q="
)

// fetchState tracks where one fetch round is in its retry lifecycle.
type fetchState string

const (
	stateIdle       fetchState = "idle"
	stateAttempting fetchState = "attempting"
	stateRetrying   fetchState = "retrying"
	stateSucceeded  fetchState = "succeeded"
	stateFailed     fetchState = "failed"
)

// Client performs GETs with a timeout, bounded retries on transient
// failures and an optional per-host alternative URL consulted after the
// primary target is exhausted.
type Client struct {
	http         *http.Client
	maxAttempts  int
	wait         time.Duration
	alternatives map[string]string
	logger       output.LoggerPort
}

type Config struct {
	Timeout     time.Duration
	MaxAttempts int
	Backoff     time.Duration
	// Alternatives maps a host substring to a replacement URL tried once,
	// with its own retry round, after the primary URL fails.
	Alternatives map[string]string
	Logger       output.LoggerPort
}

func DefaultConfig() Config {
	return Config{
		Timeout:     DefaultTimeout,
		MaxAttempts: DefaultMaxAttempts,
		Backoff:     DefaultBackoff,
	}
}

func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = DefaultBackoff
	}
	if cfg.Logger == nil {
		cfg.Logger = noopLogger{}
	}
	return &Client{
		http:         &http.Client{Timeout: cfg.Timeout},
		maxAttempts:  cfg.MaxAttempts,
		wait:         cfg.Backoff,
		alternatives: cfg.Alternatives,
		logger:       cfg.Logger,
	}
}

func (c *Client) Fetch(ctx context.Context, target string) entity.FetchResult {
	pageURL := TargetURL(target)

	res := c.fetchURL(ctx, pageURL)
	if res.OK() {
		return res
	}

	if alt := c.alternativeFor(pageURL); alt != "" {
		c.logger.Info("Primary target failed, trying alternative URL",
			"primary", pageURL, "alternative", alt)
		altRes := c.fetchURL(ctx, alt)
		altRes.Attempts += res.Attempts
		return altRes
	}

	return res
}

func (c *Client) fetchURL(ctx context.Context, pageURL string) entity.FetchResult {
	state := stateIdle
	attempts := 0
	var body string
	var lastErr *entity.FetchError

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.wait), uint64(c.maxAttempts-1)),
		ctx,
	)

	operation := func() error {
		state = stateAttempting
		attempts++

		b, ferr := c.attempt(ctx, pageURL)
		if ferr == nil {
			state = stateSucceeded
			body = b
			return nil
		}

		lastErr = ferr
		if !ferr.Transient() {
			state = stateFailed
			return backoff.Permanent(ferr)
		}

		state = stateRetrying
		c.logger.Warn("Fetch attempt failed",
			"url", pageURL, "attempt", attempts, "state", string(state), "error", ferr.Error())
		return ferr
	}

	if err := backoff.Retry(operation, policy); err != nil {
		state = stateFailed
		c.logger.Error("Fetch failed",
			"url", pageURL, "attempts", attempts, "state", string(state), "error", err.Error())
		return entity.FetchResult{URL: pageURL, Attempts: attempts, Err: lastErr}
	}

	c.logger.Info("Fetch succeeded",
		"url", pageURL, "attempts", attempts, "state", string(state), "bytes", len(body))
	return entity.FetchResult{URL: pageURL, Body: body, Attempts: attempts}
}

func (c *Client) attempt(ctx context.Context, pageURL string) (string, *entity.FetchError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", &entity.FetchError{Kind: entity.FetchErrNetwork, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &entity.FetchError{Kind: entity.FetchErrHTTPStatus, StatusCode: resp.StatusCode}
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", &entity.FetchError{Kind: entity.FetchErrNetwork, Err: fmt.Errorf("read body: %w", err)}
	}

	return string(b), nil
}

func classifyTransportError(err error) *entity.FetchError {
	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return &entity.FetchError{Kind: entity.FetchErrTimeout, Err: err}
	}
	return &entity.FetchError{Kind: entity.FetchErrNetwork, Err: err}
}

func (c *Client) alternativeFor(pageURL string) string {
	for host, alt := range c.alternatives {
		if strings.Contains(pageURL, host) {
			return alt
		}
	}
	return ""
}

// noopLogger keeps a Client built without a logger safe to use.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any)                      {}
func (noopLogger) Info(string, ...any)                       {}
func (noopLogger) Warn(string, ...any)                       {}
func (noopLogger) Error(string, ...any)                      {}
func (l noopLogger) WithField(string, any) output.LoggerPort { return l }
func (noopLogger) Close() error                              { return nil }

// TargetURL passes URLs through and turns anything else into an HTML
// search-engine query for it.
func TargetURL(target string) string {
	target = strings.TrimSpace(target)
	u, err := url.Parse(target)
	if err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		return target
	}
	return searchBaseURL + url.QueryEscape(target)
}
