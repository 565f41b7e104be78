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

// Package backoffconfig builds the exponential backoff policies used
// when retrying credential refreshes.
package backoffconfig

import (
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	defaultMultiplier      = 2.0
	defaultMaxInterval     = 30 * time.Second
	defaultJitterFactor    = 0.2
	defaultInitialInterval = 200 * time.Millisecond
	defaultMaxRetries      = 5
)

// GetDefaultExponentialBackoff returns the backoff policy used for
// background credential refresh retries.
func GetDefaultExponentialBackoff() (*backoff.ExponentialBackOff, error) {
	return GetExponentialBackoff(defaultInitialInterval, defaultMaxRetries)
}

// GetExponentialBackoff returns an exponential backoff policy starting
// at initialInterval and giving up after maxRetries failed attempts.
// The policy caps per-attempt waits at a fixed maximum interval and
// bounds the total elapsed time so a retry loop always terminates.
func GetExponentialBackoff(initialInterval time.Duration, maxRetries int) (*backoff.ExponentialBackOff, error) {
	if initialInterval <= 0 {
		initialInterval = backoff.DefaultInitialInterval
	}
	if maxRetries < 1 || maxRetries > 100 {
		return nil, fmt.Errorf("maxRetries (%d) is out of range [1, 100]", maxRetries)
	}

	result := backoff.NewExponentialBackOff()
	result.InitialInterval = initialInterval
	result.MaxInterval = defaultMaxInterval
	result.Multiplier = defaultMultiplier
	result.RandomizationFactor = defaultJitterFactor
	result.MaxElapsedTime = maxElapsedTime(maxRetries, initialInterval, result.MaxInterval)
	result.Reset()
	return result, nil
}

// maxElapsedTime computes the worst-case wall time consumed by
// maxRetries attempts so the policy stops retrying afterwards.
func maxElapsedTime(maxRetries int, initialInterval, maxInterval time.Duration) time.Duration {
	interval := initialInterval
	elapsed := initialInterval
	for retry := 1; retry < maxRetries; retry++ {
		interval = time.Duration(float64(interval) * defaultMultiplier)
		if interval > maxInterval {
			interval = maxInterval
		}
		elapsed += interval
	}
	return time.Duration(float64(elapsed) * (1.0 + defaultJitterFactor))
}
