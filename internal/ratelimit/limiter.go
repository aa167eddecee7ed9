// Package ratelimit provides a fixed-window request limiter behind a
// store-agnostic interface. Window and capacity are configuration, not
// constants baked into call sites.
package ratelimit

import "context"

// Limiter reports whether the caller identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
