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

package credentials

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorUnwrapExposesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewNetworkError("request failed", cause)

	assert.True(t, errors.Is(err, cause))
	assert.True(t, IsKind(err, KindNetwork))
}

func TestHTTPStatusErrorCarriesCodeAndSnippet(t *testing.T) {
	err := NewHTTPStatusError("unexpected status", 404, "role not found")

	assert.Equal(t, 404, err.StatusCode)
	assert.Equal(t, "role not found", err.BodySnippet)
	assert.Contains(t, err.Error(), "status 404")
}

func TestNoCredentialsErrorPreservesSourceOrder(t *testing.T) {
	sources := []SourceError{
		{Name: "Environment", Err: errors.New("env not set")},
		{Name: "InstanceMetadata", Err: errors.New("endpoint unreachable")},
	}

	err := NewNoCredentialsError(sources)

	assert.True(t, IsKind(err, KindNoCredentials))
	assert.Equal(t, "Environment", err.Sources[0].Name)
	assert.Equal(t, "InstanceMetadata", err.Sources[1].Name)
	assert.Contains(t, err.Error(), "env not set")
	assert.Contains(t, err.Error(), "endpoint unreachable")
}

func TestIsKindRejectsForeignErrors(t *testing.T) {
	assert.False(t, IsKind(errors.New("plain"), KindNetwork))
	assert.False(t, IsKind(nil, KindNetwork))
}
