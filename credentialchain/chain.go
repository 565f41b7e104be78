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

// Package credentialchain resolves credentials through an ordered list
// of sources, returning the first success and aggregating every
// failure when the list is exhausted.
package credentialchain

import (
	"context"

	"github.com/credkit/credkit/credentials"
	"github.com/credkit/credkit/log"
)

// Entry pairs a source name with its provider. The name is carried
// into aggregated errors so failed resolutions stay diagnosable.
type Entry struct {
	Name     string
	Provider credentials.Provider
}

// Chain is an ordered, immutable list of credential sources. Order
// encodes priority and is fixed at construction; refresh state lives
// inside the individual providers, never in the chain.
type Chain struct {
	log     log.T
	entries []Entry
}

// New builds a chain over the given entries, highest priority first.
func New(logger log.T, entries ...Entry) *Chain {
	chain := &Chain{
		log:     logger.WithContext("[CredentialChain]"),
		entries: make([]Entry, len(entries)),
	}
	copy(chain.entries, entries)
	return chain
}

// Retrieve tries each entry in priority order and short-circuits on the
// first success. When every entry fails the per-source errors are
// aggregated, in order, into one error. A failure never disables an
// entry for later resolutions.
func (c *Chain) Retrieve(ctx context.Context) (credentials.Credentials, error) {
	sourceErrors := make([]credentials.SourceError, 0, len(c.entries))

	for _, entry := range c.entries {
		if ctx.Err() != nil {
			return credentials.Credentials{}, credentials.NewTimeoutError("chain resolution abandoned", ctx.Err())
		}

		creds, err := entry.Provider.Retrieve(ctx)
		if err == nil {
			c.log.Debugf("resolved credentials from source %s", entry.Name)
			return creds, nil
		}
		c.log.Debugf("source %s failed: %v", entry.Name, err)
		sourceErrors = append(sourceErrors, credentials.SourceError{Name: entry.Name, Err: err})
	}

	return credentials.Credentials{}, credentials.NewNoCredentialsError(sourceErrors)
}

var _ credentials.Provider = (*Chain)(nil)
