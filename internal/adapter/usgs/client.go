package usgs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/quake-map-service/internal/domain"
)

// maxFeedBytes caps the body read; the all_month feed is roughly 10 MB.
const maxFeedBytes = 64 << 20

// Client fetches a USGS GeoJSON summary feed.
// It implements pipeline.FeedFetcher.
type Client struct {
	feedURL    string
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
}

// NewClient creates a feed client for the given summary feed URL.
func NewClient(feedURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		feedURL: feedURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: "quake-map-service/1.0 (github.com/couchcryptid/quake-map-service)",
		logger:    logger,
	}
}

// Fetch downloads and decodes the feed.
func (c *Client) Fetch(ctx context.Context) (domain.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return domain.Feed{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/geo+json, application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Feed{}, fmt.Errorf("feed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snip, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return domain.Feed{}, fmt.Errorf("usgs feed error: status %d: %s", resp.StatusCode, snip)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return domain.Feed{}, fmt.Errorf("read feed body: %w", err)
	}

	feed, err := ParseFeed(body)
	if err != nil {
		return domain.Feed{}, err
	}

	c.logger.Debug("feed fetched",
		"url", c.feedURL,
		"bytes", len(body),
		"quakes", len(feed.Quakes),
		"skipped", feed.Skipped,
	)
	return feed, nil
}
