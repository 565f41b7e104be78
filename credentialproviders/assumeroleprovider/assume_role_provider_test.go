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

package assumeroleprovider

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/sts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/credkit/credkit/appconfig"
	"github.com/credkit/credkit/credentials"
	"github.com/credkit/credkit/log"
)

const testRoleARN = "arn:aws:iam::123456789012:role/test-role"

type mockSTSClient struct {
	mock.Mock
}

func (m *mockSTSClient) AssumeRoleWithContext(ctx aws.Context, input *sts.AssumeRoleInput, opts ...request.Option) (*sts.AssumeRoleOutput, error) {
	args := m.Called(ctx, input)
	output, _ := args.Get(0).(*sts.AssumeRoleOutput)
	return output, args.Error(1)
}

func testConfig() appconfig.CredkitConfig {
	config := appconfig.DefaultConfig()
	config.AssumeRole.RoleARN = testRoleARN
	config.AssumeRole.SessionName = "test-session"
	return config
}

func TestRetrieve_ReturnsCredentials(t *testing.T) {
	expiration := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	stsClient := &mockSTSClient{}
	stsClient.On("AssumeRoleWithContext", mock.Anything, mock.MatchedBy(func(input *sts.AssumeRoleInput) bool {
		return *input.RoleArn == testRoleARN &&
			*input.RoleSessionName == "test-session" &&
			*input.DurationSeconds == int64(appconfig.DefaultAssumeRoleDurationSeconds)
	})).Return(&sts.AssumeRoleOutput{
		Credentials: &sts.Credentials{
			AccessKeyId:     aws.String("SomeAccessKeyId"),
			SecretAccessKey: aws.String("SomeSecretAccessKey"),
			SessionToken:    aws.String("SomeSessionToken"),
			Expiration:      aws.Time(expiration),
		},
	}, nil)

	config := testConfig()
	provider := NewCredentialsProvider(log.NewMockLog(), stsClient, &config)
	creds, err := provider.Retrieve(context.Background())

	assert.Nil(t, err)
	assert.Equal(t, "SomeAccessKeyId", creds.AccessKeyID)
	assert.Equal(t, "SomeSecretAccessKey", creds.SecretAccessKey)
	assert.Equal(t, "SomeSessionToken", creds.SessionToken)
	assert.Equal(t, expiration, creds.Expiration)
	assert.Equal(t, ProviderName, creds.ProviderName)
	stsClient.AssertExpectations(t)
}

func TestRetrieve_STSFailure(t *testing.T) {
	stsClient := &mockSTSClient{}
	stsClient.On("AssumeRoleWithContext", mock.Anything, mock.Anything).
		Return(nil, errors.New("AccessDenied"))

	config := testConfig()
	provider := NewCredentialsProvider(log.NewMockLog(), stsClient, &config)
	_, err := provider.Retrieve(context.Background())

	assert.True(t, credentials.IsKind(err, credentials.KindNetwork))
}

func TestRetrieve_IncompleteResponse(t *testing.T) {
	stsClient := &mockSTSClient{}
	stsClient.On("AssumeRoleWithContext", mock.Anything, mock.Anything).
		Return(&sts.AssumeRoleOutput{Credentials: &sts.Credentials{
			AccessKeyId: aws.String("SomeAccessKeyId"),
		}}, nil)

	config := testConfig()
	provider := NewCredentialsProvider(log.NewMockLog(), stsClient, &config)
	_, err := provider.Retrieve(context.Background())

	assert.True(t, credentials.IsKind(err, credentials.KindParse))
}

func TestRetrieve_MissingRoleARN(t *testing.T) {
	config := appconfig.DefaultConfig()
	provider := NewCredentialsProvider(log.NewMockLog(), &mockSTSClient{}, &config)

	_, err := provider.Retrieve(context.Background())

	assert.True(t, credentials.IsKind(err, credentials.KindConfiguration))
}

func TestRetrieve_GeneratesSessionNameWhenUnset(t *testing.T) {
	var capturedSessionName string
	stsClient := &mockSTSClient{}
	stsClient.On("AssumeRoleWithContext", mock.Anything, mock.MatchedBy(func(input *sts.AssumeRoleInput) bool {
		capturedSessionName = *input.RoleSessionName
		return true
	})).Return(nil, errors.New("short-circuit"))

	config := testConfig()
	config.AssumeRole.SessionName = ""
	provider := NewCredentialsProvider(log.NewMockLog(), stsClient, &config)
	provider.getCurrentTimeFunc = func() time.Time { return time.Unix(0, 42) }

	provider.Retrieve(context.Background())

	assert.Equal(t, "credkit-42", capturedSessionName)
}
