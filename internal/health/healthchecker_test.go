package health

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// probe is a settable component checker standing in for the store and
// endpoint checkers.
type probe struct {
	name string
	up   atomic.Bool
}

func (p *probe) Name() string                               { return p.name }
func (p *probe) IsHealthy() bool                            { return p.up.Load() }
func (p *probe) Start(ctx context.Context, _ time.Duration) {}

func waitFor(t *testing.T, pred func() bool) {
	t.Helper()
	deadline := time.Now().Add(500 * time.Millisecond)
	for time.Now().Before(deadline) {
		if pred() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("condition not met before timeout")
}

func TestServiceHealthChecker_FollowsDependencies(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st := &probe{name: "sqlite-store"}
	ep := &probe{name: "completion-endpoint"}
	st.up.Store(true)
	ep.up.Store(true)

	svc := NewServiceHealthChecker(zerolog.Nop(), st, ep)
	go svc.Start(ctx, 10*time.Millisecond)

	waitFor(t, svc.IsHealthy)

	// One dependency down takes the whole service down.
	ep.up.Store(false)
	waitFor(t, func() bool { return !svc.IsHealthy() })

	ep.up.Store(true)
	waitFor(t, svc.IsHealthy)
}

func TestServiceHealthChecker_StartsDown(t *testing.T) {
	st := &probe{name: "sqlite-store"}
	svc := NewServiceHealthChecker(zerolog.Nop(), st)
	if svc.IsHealthy() {
		t.Fatalf("service must report DOWN before the first evaluation")
	}
}
