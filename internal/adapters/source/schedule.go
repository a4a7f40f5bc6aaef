package source

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// RefreshTimeout bounds one scheduled refresh.
const RefreshTimeout = time.Minute

// Schedule runs Refresh on every source whenever spec fires.
// spec is a standard five-field cron expression or a descriptor such as "@every 15m".
// PRE: loc is non-nil
// POST: the returned cron is started; the caller must Stop it
func Schedule(ctx context.Context, spec string, loc *time.Location, sources ...*Refreshing) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(loc))
	_, err := c.AddFunc(spec, func() {
		for _, s := range sources {
			rctx, cancel := context.WithTimeout(ctx, RefreshTimeout)
			if err := s.Refresh(rctx); err != nil {
				slog.Warn("scheduled_refresh_failed", "error", err)
			}
			cancel()
		}
	})
	if err != nil {
		return nil, fmt.Errorf("refresh schedule %q: %w", spec, err)
	}
	c.Start()
	return c, nil
}
