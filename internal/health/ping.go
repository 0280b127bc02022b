package health

import "context"

// HealthPinger is the probe contract a dependency exposes. HealthPing
// returns nil while the dependency can serve requests; the store pings
// its database handle, the completion client pings the model endpoint.
type HealthPinger interface {
	HealthPing(ctx context.Context) error
}
