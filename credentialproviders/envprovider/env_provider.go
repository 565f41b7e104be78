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

// Package envprovider reads credentials from the standard AWS
// environment variables.
package envprovider

import (
	"context"
	"os"

	"github.com/credkit/credkit/credentials"
)

// ProviderName is the provider name returned with credentials
const ProviderName = "EnvironmentProvider"

const (
	envAccessKeyID     = "AWS_ACCESS_KEY_ID"
	envSecretAccessKey = "AWS_SECRET_ACCESS_KEY"
	envSessionToken    = "AWS_SESSION_TOKEN"
	// legacy name still honored when AWS_SESSION_TOKEN is unset
	envSecurityToken = "AWS_SECURITY_TOKEN"
)

type envProvider struct {
	// getenv is swapped out in tests
	getenv func(string) string
}

// NewCredentialsProvider returns a provider reading the process
// environment on every Retrieve.
func NewCredentialsProvider() credentials.Provider {
	return &envProvider{getenv: os.Getenv}
}

// Retrieve reads the environment variables. A missing access key or
// secret yields a configuration error so the chain can fall through to
// the next source.
func (p *envProvider) Retrieve(_ context.Context) (credentials.Credentials, error) {
	accessKeyID := p.getenv(envAccessKeyID)
	if accessKeyID == "" {
		return credentials.Credentials{}, credentials.NewConfigurationError(envAccessKeyID + " is not set")
	}

	secretAccessKey := p.getenv(envSecretAccessKey)
	if secretAccessKey == "" {
		return credentials.Credentials{}, credentials.NewConfigurationError(envSecretAccessKey + " is not set")
	}

	sessionToken := p.getenv(envSessionToken)
	if sessionToken == "" {
		sessionToken = p.getenv(envSecurityToken)
	}

	return credentials.Credentials{
		AccessKeyID:     accessKeyID,
		SecretAccessKey: secretAccessKey,
		SessionToken:    sessionToken,
		ProviderName:    ProviderName,
	}, nil
}
