// Copyright CredKit Contributors. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"). You may not
// use this file except in compliance with the License. A copy of the
// License is located at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// or in the "license" file accompanying this file. This file is distributed
// on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
// either express or implied. See the License for the specific language governing
// permissions and limitations under the License.

// Package credentialrefresher caches the credentials of one provider
// and coordinates their refresh: proactive expiry with a refresh
// buffer, single-flight fetches under concurrent load, and stale-serve
// degradation while a refresh is failing.
package credentialrefresher

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/credkit/credkit/credentials"
	"github.com/credkit/credkit/log"
)

// DefaultRefreshBuffer is subtracted from the credential expiration to
// trigger refresh before hard expiry.
const DefaultRefreshBuffer = 5 * time.Minute

// refreshKey is the single singleflight key; one provider, one flight.
const refreshKey = "refresh"

type cacheEntry struct {
	creds       credentials.Credentials
	retrievedAt time.Time
}

// CachingProvider wraps one credentials.Provider with a time-based
// cache. It is itself a credentials.Provider.
type CachingProvider struct {
	log      log.T
	provider credentials.Provider
	buffer   time.Duration

	// mu guards entry and isRunning. It is held only across cache
	// reads and the atomic entry swap, never across a network fetch.
	mu    sync.Mutex
	entry *cacheEntry

	group singleflight.Group

	// test seams: injectable clock
	getCurrentTimeFunc func() time.Time
	timeAfterFunc      func(time.Duration) <-chan time.Time

	stopChan  chan struct{}
	isRunning bool
}

// NewCachingProvider wraps provider with a cache using the given
// refresh buffer. A non-positive buffer selects the default of five
// minutes.
func NewCachingProvider(logger log.T, provider credentials.Provider, buffer time.Duration) *CachingProvider {
	if buffer <= 0 {
		buffer = DefaultRefreshBuffer
	}
	return &CachingProvider{
		log:                logger.WithContext("[CachingProvider]"),
		provider:           provider,
		buffer:             buffer,
		getCurrentTimeFunc: time.Now,
		timeAfterFunc:      time.After,
		stopChan:           make(chan struct{}),
	}
}

// Retrieve returns the cached credentials while they are fresh, and
// otherwise joins the single in-flight refresh. Concurrent callers on a
// cold or expiring cache share exactly one underlying fetch. A caller
// whose context ends while waiting abandons the flight; the cache is
// never left in a partial state.
func (c *CachingProvider) Retrieve(ctx context.Context) (credentials.Credentials, error) {
	if creds, ok := c.cached(c.buffer); ok {
		return creds, nil
	}

	resultChan := c.group.DoChan(refreshKey, func() (interface{}, error) {
		return c.refresh(ctx)
	})

	result, ok := awaitFlight(ctx, resultChan)
	if !ok {
		return credentials.Credentials{}, credentials.NewTimeoutError("credential refresh abandoned", ctx.Err())
	}
	if result.Err != nil {
		// Degrade gracefully: a still hard-valid entry beats a
		// refresh failure. The failure is surfaced as a diagnostic only.
		if creds, ok := c.cached(0); ok {
			c.log.Warnf("credential refresh failed, serving cached credentials until hard expiry: %v", result.Err)
			return creds, nil
		}
		return credentials.Credentials{}, result.Err
	}
	return result.Val.(credentials.Credentials), nil
}

// awaitFlight waits for the shared fetch to land, honoring ctx. A
// result that is already available wins over a context that ended in
// the same instant, so a finished fetch is never reported as abandoned.
func awaitFlight(ctx context.Context, resultChan <-chan singleflight.Result) (singleflight.Result, bool) {
	select {
	case result := <-resultChan:
		return result, true
	case <-ctx.Done():
		select {
		case result := <-resultChan:
			return result, true
		default:
			return singleflight.Result{}, false
		}
	}
}

// refresh runs inside the singleflight. It re-checks the cache first so
// callers queued behind a completed refresh do not trigger another one.
func (c *CachingProvider) refresh(ctx context.Context) (interface{}, error) {
	if creds, ok := c.cached(c.buffer); ok {
		return creds, nil
	}

	creds, err := c.provider.Retrieve(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entry = &cacheEntry{creds: creds, retrievedAt: c.getCurrentTimeFunc()}
	c.mu.Unlock()

	return creds, nil
}

// cached returns the cached credentials if the entry is valid once
// buffer is subtracted from its expiration. A zero buffer checks hard
// validity. Entries without expiration are treated as always fresh.
func (c *CachingProvider) cached(buffer time.Duration) (credentials.Credentials, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entry == nil {
		return credentials.Credentials{}, false
	}
	expiration, ok := c.entry.creds.ExpiresAt()
	if !ok {
		return c.entry.creds, true
	}
	if c.getCurrentTimeFunc().Before(expiration.Add(-buffer)) {
		return c.entry.creds, true
	}
	return credentials.Credentials{}, false
}

// Invalidate drops the cached entry so the next Retrieve fetches.
func (c *CachingProvider) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = nil
}
