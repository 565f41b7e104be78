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

package credentialrefresher

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/credkit/credkit/backoffconfig"
	"github.com/credkit/credkit/credentials"
)

// Assigning function to variable to be able to mock out during tests
var backoffRetry = backoff.Retry

const (
	// staticRecheckInterval re-arms the loop when the cached entry
	// carries no expiration and there is nothing to rotate.
	staticRecheckInterval = time.Hour

	// failedCycleInterval spaces out refresh cycles after the retry
	// budget of one cycle is exhausted.
	failedCycleInterval = 30 * time.Second

	// minRefreshInterval is the floor between successful refresh
	// cycles. Without it a credential lifetime shorter than the
	// refresh buffer keeps the buffer instant permanently in the past
	// and the loop fetches back-to-back.
	minRefreshInterval = time.Second
)

// StartAutoRefresh launches a background goroutine that refreshes the
// cached credentials shortly before they leave the refresh buffer, so
// foreground callers keep hitting a warm cache. Refresh failures are
// retried with exponential backoff.
func (c *CachingProvider) StartAutoRefresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.isRunning {
		return
	}
	c.isRunning = true
	go c.autoRefreshRoutine()
	c.log.Info("credential auto refresh started")
}

// Stop terminates the background refresh goroutine, if running. The
// handshake send can block until the goroutine finishes its current
// retry cycle, so the lock is released before it.
func (c *CachingProvider) Stop() {
	c.mu.Lock()
	if !c.isRunning {
		c.mu.Unlock()
		return
	}
	c.isRunning = false
	c.mu.Unlock()

	c.stopChan <- struct{}{}
}

// durationUntilRefresh computes how long the refresh loop should sleep
// before the cached entry enters the refresh buffer. When the entry's
// whole lifetime fits inside the buffer the loop rotates at half the
// remaining lifetime instead, floored at minRefreshInterval.
func (c *CachingProvider) durationUntilRefresh() time.Duration {
	c.mu.Lock()
	entry := c.entry
	c.mu.Unlock()

	if entry == nil {
		return 0
	}
	expiration, ok := entry.creds.ExpiresAt()
	if !ok {
		return staticRecheckInterval
	}

	now := c.getCurrentTimeFunc()
	sleepFor := expiration.Add(-c.buffer).Sub(now)
	if sleepFor > 0 {
		return sleepFor
	}
	if half := expiration.Sub(now) / 2; half > minRefreshInterval {
		return half
	}
	return minRefreshInterval
}

func (c *CachingProvider) autoRefreshRoutine() {
	defer func() {
		if r := recover(); r != nil {
			c.log.Errorf("credential auto refresh panic: %v", r)
			c.log.Errorf("Stacktrace:\n%s", debug.Stack())
			go c.autoRefreshRoutine()
		}
	}()

	for {
		select {
		case <-c.stopChan:
			c.log.Info("stopping credential auto refresh")
			return
		case <-c.timeAfterFunc(c.durationUntilRefresh()):
			if err := c.refreshWithRetry(); err != nil {
				c.log.Errorf("credential auto refresh failed: %v", err)
				select {
				case <-c.stopChan:
					c.log.Info("stopping credential auto refresh")
					return
				case <-c.timeAfterFunc(failedCycleInterval):
				}
			}
		}
	}
}

// refreshWithRetry drives one refresh cycle through the shared
// singleflight so it never duplicates a foreground fetch.
func (c *CachingProvider) refreshWithRetry() error {
	exponentialBackoff, err := backoffconfig.GetDefaultExponentialBackoff()
	if err != nil {
		return err
	}

	return backoffRetry(func() error {
		_, refreshErr, _ := c.group.Do(refreshKey, func() (interface{}, error) {
			return c.refresh(context.Background())
		})
		return refreshErr
	}, exponentialBackoff)
}

// ensure the wrapper stays a provider
var _ credentials.Provider = (*CachingProvider)(nil)
