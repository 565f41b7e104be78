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

// Package credentials defines the credential value type, the provider
// capability and the error taxonomy shared by every credential source.
package credentials

import (
	"context"
	"time"
)

// Credentials holds one complete set of AWS access credentials. A zero
// Expiration marks static credentials that never expire. Values are
// replaced wholesale on refresh, never mutated field by field.
type Credentials struct {
	// AccessKeyID is the AWS access key id
	AccessKeyID string

	// SecretAccessKey is the AWS secret access key
	SecretAccessKey string

	// SessionToken is the session token attached to temporary credentials
	SessionToken string

	// Expiration is the instant at which these credentials stop being
	// valid. Zero for static credentials.
	Expiration time.Time

	// ProviderName is the name of the provider that produced the value
	ProviderName string
}

// HasKeys reports whether both the access key id and the secret access
// key are populated.
func (c Credentials) HasKeys() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// ExpiresAt returns the expiration instant and whether one is set.
func (c Credentials) ExpiresAt() (time.Time, bool) {
	return c.Expiration, !c.Expiration.IsZero()
}

// Provider is the capability implemented by every credential source.
// Retrieve must be safe for repeated and concurrent use and must report
// every failure as a typed *Error.
type Provider interface {
	Retrieve(ctx context.Context) (Credentials, error)
}
