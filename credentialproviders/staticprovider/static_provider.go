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

// Package staticprovider serves credentials handed to it at
// construction. Static credentials never expire.
package staticprovider

import (
	"context"

	"github.com/credkit/credkit/credentials"
)

// ProviderName is the provider name returned with credentials
const ProviderName = "StaticProvider"

type staticProvider struct {
	creds credentials.Credentials
}

// NewCredentialsProvider returns a provider serving the given keys.
func NewCredentialsProvider(accessKeyID, secretAccessKey, sessionToken string) credentials.Provider {
	return &staticProvider{
		creds: credentials.Credentials{
			AccessKeyID:     accessKeyID,
			SecretAccessKey: secretAccessKey,
			SessionToken:    sessionToken,
			ProviderName:    ProviderName,
		},
	}
}

// Retrieve returns the static credentials, or a configuration error if
// either key is empty.
func (p *staticProvider) Retrieve(_ context.Context) (credentials.Credentials, error) {
	if !p.creds.HasKeys() {
		return credentials.Credentials{}, credentials.NewConfigurationError("static credentials are empty")
	}
	return p.creds, nil
}
