// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package throttle keeps one token bucket per client key (usually the
// client IP) and forgets buckets that stay idle.
package throttle

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// DefaultIdleTTL is how long an unused bucket is kept.
const DefaultIdleTTL = 10 * time.Minute

type entry struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

// Registry hands out a rate.Limiter per key. Buckets idle for longer than
// the idle TTL are dropped on a later call, so a returning client starts
// with a full bucket.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry

	limit   rate.Limit
	burst   int
	idleTTL time.Duration

	lastSweep time.Time
	now       func() time.Time
}

// NewRegistry allows perSecond requests per key with the given burst.
// A non-positive idleTTL falls back to DefaultIdleTTL.
func NewRegistry(perSecond float64, burst int, idleTTL time.Duration) *Registry {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	if burst < 1 {
		burst = 1
	}

	return &Registry{
		entries: make(map[string]*entry),
		limit:   rate.Limit(perSecond),
		burst:   burst,
		idleTTL: idleTTL,
		now:     time.Now,
	}
}

// Allow takes one token from key's bucket. When the bucket is empty it
// reports false and how long the client should wait before retrying.
func (r *Registry) Allow(key string) (bool, time.Duration) {
	now := r.now()
	r.sweep(now)

	e := r.getOrCreate(key, now)
	e.lastSeen.Store(now.UnixNano())

	if e.limiter.AllowN(now, 1) {
		return true, 0
	}

	reservation := e.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return false, time.Duration(math.MaxInt64)
	}
	delay := reservation.DelayFrom(now)
	reservation.CancelAt(now)

	return false, delay
}

// Len reports how many buckets are currently tracked.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *Registry) getOrCreate(key string, now time.Time) *entry {
	r.mu.RLock()
	e, exists := r.entries[key]
	r.mu.RUnlock()

	if exists {
		return e
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// double-check after acquiring the write lock
	if e, exists = r.entries[key]; exists {
		return e
	}

	e = &entry{limiter: rate.NewLimiter(r.limit, r.burst)}
	e.lastSeen.Store(now.UnixNano())
	r.entries[key] = e

	return e
}

// sweep drops idle buckets at most once per idle TTL.
func (r *Registry) sweep(now time.Time) {
	r.mu.RLock()
	due := now.Sub(r.lastSweep) >= r.idleTTL
	r.mu.RUnlock()
	if !due {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if now.Sub(r.lastSweep) < r.idleTTL {
		return
	}
	r.lastSweep = now

	cutoff := now.Add(-r.idleTTL).UnixNano()
	for key, e := range r.entries {
		if e.lastSeen.Load() < cutoff {
			delete(r.entries, key)
		}
	}
}
