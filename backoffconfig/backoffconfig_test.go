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

package backoffconfig

import (
	"errors"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
)

func TestGetDefaultExponentialBackoff(t *testing.T) {
	policy, err := GetDefaultExponentialBackoff()

	assert.Nil(t, err)
	assert.Equal(t, defaultInitialInterval, policy.InitialInterval)
	assert.Equal(t, defaultMaxInterval, policy.MaxInterval)
	assert.True(t, policy.MaxElapsedTime > 0)
}

func TestGetExponentialBackoff_RejectsBadRetryCount(t *testing.T) {
	_, err := GetExponentialBackoff(time.Second, 0)
	assert.NotNil(t, err)

	_, err = GetExponentialBackoff(time.Second, 101)
	assert.NotNil(t, err)
}

func TestGetExponentialBackoff_BoundsRetryLoop(t *testing.T) {
	policy, err := GetExponentialBackoff(10*time.Millisecond, 3)
	assert.Nil(t, err)

	attempts := 0
	start := time.Now()
	retryErr := backoff.Retry(func() error {
		attempts++
		return errors.New("always failing")
	}, policy)

	assert.NotNil(t, retryErr)
	assert.True(t, attempts > 1)
	assert.True(t, time.Since(start) < 5*time.Second)
}
