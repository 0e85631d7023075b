package application

import (
	"context"
	"expvar"
	"time"
)

const (
	metricRegistrations       = "registrations"
	metricRegistrationsFailed = "registrations_failed"
	metricLogins              = "logins"
	metricLoginsFailed        = "logins_failed"
	metricCacheHits           = "recipe_cache_hits"
	metricCacheMisses         = "recipe_cache_misses"
	metricCacheStaleFills     = "recipe_cache_stale_fills"
)

// Counters holds the service counters. A nil *Counters drops every update.
type Counters struct {
	vars *expvar.Map
}

// NewCounters returns counters that are not exported on /debug/vars.
func NewCounters() *Counters {
	return &Counters{vars: new(expvar.Map).Init()}
}

// PublishCounters exports the counters on /debug/vars under name.
// expvar panics on a duplicate name, so call it once per process.
func PublishCounters(name string) *Counters {
	return &Counters{vars: expvar.NewMap(name)}
}

func (c *Counters) Add(key string, delta int64) {
	if c == nil {
		return
	}
	c.vars.Add(key, delta)
}

func (c *Counters) Value(key string) int64 {
	if c == nil {
		return 0
	}
	if v, ok := c.vars.Get(key).(*expvar.Int); ok {
		return v.Value()
	}
	return 0
}

// withTimeout bounds a store round-trip; d <= 0 means no extra deadline.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
