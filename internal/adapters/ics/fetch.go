// Package ics turns iCalendar feeds into event records.
// Recurring VEVENTs are expanded into one record per occurrence.
package ics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout bounds a single feed download.
const DefaultTimeout = 15 * time.Second

// MaxBodyBytes caps how much of a feed is read.
const MaxBodyBytes = 8 << 20

// ErrEmptyURL is returned by Fetch for an empty feed URL.
var ErrEmptyURL = errors.New("feed URL is empty")

// Source is one subscribed feed.
type Source struct {
	ID  string
	URL string
}

// NewClient returns an http.Client with DefaultTimeout.
func NewClient() *http.Client {
	return &http.Client{Timeout: DefaultTimeout}
}

// Fetch downloads a feed body.
// PRE: client is non-nil
// POST: non-2xx responses are errors; the body is read up to MaxBodyBytes
func Fetch(ctx context.Context, client *http.Client, feedURL string) ([]byte, error) {
	if feedURL == "" {
		return nil, ErrEmptyURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/calendar")

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", redactURL(feedURL), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", redactURL(feedURL), resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", redactURL(feedURL), err)
	}
	slog.Debug("ics_fetched",
		"url", redactURL(feedURL),
		"bytes", len(body),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return body, nil
}

// redactURL keeps scheme and host only; feed paths often embed private tokens.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "(redacted)"
	}
	return u.Scheme + "://" + u.Host + "/..."
}
