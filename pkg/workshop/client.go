package workshop

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/arthur-debert/a3update/pkg/config"
	"github.com/arthur-debert/a3update/pkg/errors"
	"github.com/arthur-debert/a3update/pkg/logging"
	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// DefaultChangelogURL is the base of the public changelog pages
const DefaultChangelogURL = "https://steamcommunity.com/sharedfiles/filedetails/changelog"

// maxPageSize bounds how much of a changelog page is read
const maxPageSize = 8 << 20

// ClientOptions configures a Client
type ClientOptions struct {
	BaseURL    string
	Timeout    time.Duration
	Retries    int
	RetryDelay time.Duration
	// HTTPClient replaces the default client; Timeout is ignored when set
	HTTPClient *http.Client
}

// Client fetches changelog pages
type Client struct {
	baseURL    string
	httpClient *http.Client
	retries    int
	retryDelay time.Duration
	logger     zerolog.Logger
}

// NewClient creates a Client
func NewClient(opts ClientOptions) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultChangelogURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: httpClient,
		retries:    opts.Retries,
		retryDelay: opts.RetryDelay,
		logger:     logging.GetLogger("workshop.client"),
	}
}

// NewClientFromConfig creates a Client from the [workshop] settings
func NewClientFromConfig(cfg config.Workshop) *Client {
	return NewClient(ClientOptions{
		BaseURL:    cfg.ChangelogURL,
		Timeout:    cfg.HTTPTimeout,
		Retries:    cfg.Retries,
		RetryDelay: cfg.RetryDelay,
	})
}

// PageURL returns the changelog page of a mod
func (c *Client) PageURL(id string) string {
	return c.baseURL + "/" + id
}

// Changelog returns the raw changelog page of a mod. Transport errors and
// 5xx responses are retried; any other status fails immediately.
func (c *Client) Changelog(ctx context.Context, id string) (string, error) {
	url := c.PageURL(id)

	var page string
	attempt := 0
	operation := func() error {
		attempt++
		body, err := c.fetch(ctx, url)
		if err != nil {
			return err
		}
		page = body
		return nil
	}
	notify := func(err error, wait time.Duration) {
		c.logger.Warn().Err(err).Str("id", id).Int("attempt", attempt).Dur("retry_in", wait).Msg("Changelog fetch failed, retrying")
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.retryDelay), uint64(c.retries)),
		ctx,
	)
	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		return "", errors.Wrapf(err, errors.ErrChangelogFetch, "failed to fetch changelog of %s", id).
			WithDetail("id", id).
			WithDetail("url", url).
			WithDetail("attempts", attempt)
	}

	c.logger.Debug().Str("id", id).Int("bytes", len(page)).Msg("Changelog fetched")
	return page, nil
}

// fetch performs one GET; errors that must not be retried are marked permanent
func (c *Client) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", backoff.Permanent(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", backoff.Permanent(err)
		}
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxPageSize))
		statusErr := fmt.Errorf("unexpected status %d", resp.StatusCode)
		if resp.StatusCode >= 500 {
			return "", statusErr
		}
		return "", backoff.Permanent(statusErr)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return "", err
	}
	return string(body), nil
}
