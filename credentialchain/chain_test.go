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

package credentialchain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/credkit/credkit/credentials"
	"github.com/credkit/credkit/log"
)

// stubProvider returns fixed results and counts calls.
type stubProvider struct {
	creds credentials.Credentials
	err   error
	calls int
}

func (s *stubProvider) Retrieve(_ context.Context) (credentials.Credentials, error) {
	s.calls++
	return s.creds, s.err
}

func succeeding(accessKeyID string) *stubProvider {
	return &stubProvider{creds: credentials.Credentials{
		AccessKeyID:     accessKeyID,
		SecretAccessKey: "secret",
	}}
}

func failing(message string) *stubProvider {
	return &stubProvider{err: credentials.NewConfigurationError(message)}
}

func TestRetrieve_FirstSuccessShortCircuits(t *testing.T) {
	first := succeeding("FirstKeyId")
	second := succeeding("SecondKeyId")

	chain := New(log.NewMockLog(),
		Entry{Name: "First", Provider: first},
		Entry{Name: "Second", Provider: second},
	)

	creds, err := chain.Retrieve(context.Background())

	assert.Nil(t, err)
	assert.Equal(t, "FirstKeyId", creds.AccessKeyID)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls)
}

func TestRetrieve_FallsThroughFailedSources(t *testing.T) {
	first := failing("env not set")
	second := succeeding("SecondKeyId")

	chain := New(log.NewMockLog(),
		Entry{Name: "Environment", Provider: first},
		Entry{Name: "InstanceMetadata", Provider: second},
	)

	creds, err := chain.Retrieve(context.Background())

	assert.Nil(t, err)
	assert.Equal(t, "SecondKeyId", creds.AccessKeyID)
}

func TestRetrieve_ExhaustionAggregatesErrorsInOrder(t *testing.T) {
	chain := New(log.NewMockLog(),
		Entry{Name: "Environment", Provider: failing("env not set")},
		Entry{Name: "ProfileFile", Provider: failing("file missing")},
		Entry{Name: "InstanceMetadata", Provider: failing("endpoint unreachable")},
	)

	_, err := chain.Retrieve(context.Background())

	assert.True(t, credentials.IsKind(err, credentials.KindNoCredentials))
	credErr := err.(*credentials.Error)
	assert.Equal(t, []string{"Environment", "ProfileFile", "InstanceMetadata"},
		[]string{credErr.Sources[0].Name, credErr.Sources[1].Name, credErr.Sources[2].Name})
}

func TestRetrieve_FailureDoesNotDisableSource(t *testing.T) {
	provider := failing("transient")
	chain := New(log.NewMockLog(), Entry{Name: "Only", Provider: provider})

	chain.Retrieve(context.Background())
	chain.Retrieve(context.Background())

	// each resolution re-tries the chain from the top
	assert.Equal(t, 2, provider.calls)
}

func TestRetrieve_CancelledContextStopsIteration(t *testing.T) {
	provider := succeeding("KeyId")
	chain := New(log.NewMockLog(), Entry{Name: "Only", Provider: provider})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := chain.Retrieve(ctx)

	assert.NotNil(t, err)
	assert.Equal(t, 0, provider.calls)
}

func TestNew_ChainIsFixedAtConstruction(t *testing.T) {
	entries := []Entry{{Name: "Only", Provider: succeeding("KeyId")}}
	chain := New(log.NewMockLog(), entries...)

	// mutating the caller's slice must not affect the chain
	entries[0] = Entry{Name: "Changed", Provider: failing("broken")}

	creds, err := chain.Retrieve(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, "KeyId", creds.AccessKeyID)
}
