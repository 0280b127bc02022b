package aiclient

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// CredentialSource supplies the bearer credential for the completion
// endpoint. Distribution of the key itself is out of scope; sources only
// surface whatever the deployment provides.
type CredentialSource interface {
	APIKey(ctx context.Context) (string, error)
}

// StaticCredential returns a fixed key, typically read from the
// environment by the config layer.
type StaticCredential string

func (s StaticCredential) APIKey(context.Context) (string, error) {
	if s == "" {
		return "", fmt.Errorf("%w: no key configured", ErrCredentialNotReady)
	}
	return string(s), nil
}

// ResolveWithRetry resolves the client credential under a bounded
// exponential backoff. Individual completion calls never retry; only this
// startup step does.
func ResolveWithRetry(ctx context.Context, c *Client, maxElapsed time.Duration) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = maxElapsed

	return backoff.Retry(func() error {
		return c.Resolve(ctx)
	}, backoff.WithContext(bo, ctx))
}
