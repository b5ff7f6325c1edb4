package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/spacesedan/goalpulse/internal/clients"
)

const HEALTHCHECK_TIMER = 15

// MonitorCacheHealth pings the analysis cache on a fixed interval and
// records the outcome in healthy. Handlers skip the cache while the flag
// is false so a dead Valkey only costs the caching, never a request.
func MonitorCacheHealth(ctx context.Context, cache *clients.ValkeyClient, healthy *atomic.Bool) {
	ticker := time.NewTicker(time.Second * HEALTHCHECK_TIMER)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, time.Second*3)
			err := cache.Ping(pingCtx)
			cancel()

			isHealthy := err == nil
			wasHealthy := healthy.Swap(isHealthy)
			if !isHealthy {
				slog.Warn("[HealthCheck] Analysis cache is unhealthy",
					slog.String("error", err.Error()))
			} else if !wasHealthy {
				slog.Info("[HealthCheck] Analysis cache recovered")
			}
		}
	}
}
