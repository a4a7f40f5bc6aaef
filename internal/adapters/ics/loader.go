package ics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"volunteerhub/internal/application/viewengine"
)

// Expansion window defaults, in months around now.
const (
	DefaultPastMonths   = 3
	DefaultFutureMonths = 12
)

// Loader fetches one feed and expands it around the current time.
type Loader struct {
	Source       Source
	Client       *http.Client
	Location     *time.Location
	PastMonths   int
	FutureMonths int
	Now          func() time.Time
}

// NewLoader creates a Loader with the default window and client.
func NewLoader(src Source, loc *time.Location) *Loader {
	return &Loader{
		Source:       src,
		Client:       NewClient(),
		Location:     loc,
		PastMonths:   DefaultPastMonths,
		FutureMonths: DefaultFutureMonths,
		Now:          time.Now,
	}
}

// Name identifies the feed in logs.
func (l *Loader) Name() string {
	return l.Source.ID
}

// Load fetches, parses and expands the feed.
// PRE: ctx is valid
// POST: returns records for occurrences inside [now-PastMonths, now+FutureMonths]
func (l *Loader) Load(ctx context.Context) ([]viewengine.Record, error) {
	client := l.Client
	if client == nil {
		client = NewClient()
	}
	now := time.Now()
	if l.Now != nil {
		now = l.Now()
	}

	body, err := Fetch(ctx, client, l.Source.URL)
	if err != nil {
		return nil, err
	}
	events, err := Parse(body, l.Source.ID)
	if err != nil {
		return nil, fmt.Errorf("feed %s: %w", l.Source.ID, err)
	}
	from := now.AddDate(0, -l.PastMonths, 0)
	to := now.AddDate(0, l.FutureMonths, 0)
	return Expand(events, from, to, l.Location), nil
}
