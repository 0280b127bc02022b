package aiclient

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// HealthPing checks that the completion endpoint is reachable. Any HTTP
// response counts as reachable; auth or quota problems surface on the
// actual completion calls, not here.
func (c *Client) HealthPing(ctx context.Context) error {
	resp, err := c.http.R().SetContext(ctx).Get("/v1/models")
	if err != nil {
		return err
	}
	// 401 without a key is still a live endpoint.
	_ = resp.StatusCode()
	return nil
}

// EndpointHealthChecker monitors completion-endpoint reachability.
type EndpointHealthChecker struct {
	client       *Client
	healthy      atomic.Int32
	log          zerolog.Logger
	probeTimeout time.Duration
}

func NewEndpointHealthChecker(client *Client, log zerolog.Logger, probeTimeout time.Duration) *EndpointHealthChecker {
	hc := &EndpointHealthChecker{client: client, log: log, probeTimeout: probeTimeout}
	hc.healthy.Store(0) // start unhealthy until first successful probe
	return hc
}

func (hc *EndpointHealthChecker) Name() string { return "completion-endpoint" }

func (hc *EndpointHealthChecker) IsHealthy() bool { return hc.healthy.Load() == 1 }

func (hc *EndpointHealthChecker) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	check := func() {
		to := hc.probeTimeout
		if to <= 0 {
			to = 2 * time.Second
		}
		checkCtx, cancel := context.WithTimeout(ctx, to)
		defer cancel()

		if err := hc.client.HealthPing(checkCtx); err != nil {
			hc.log.Error().Stack().
				Str("checker", hc.Name()).
				Err(err).
				Msg("completion endpoint health check failed")
			hc.healthy.Store(0)
			return
		}
		hc.healthy.Store(1)
	}

	check()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}
