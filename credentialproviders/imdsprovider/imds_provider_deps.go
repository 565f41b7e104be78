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

package imdsprovider

import (
	"context"
)

const (
	// ProviderName is the provider name returned with credentials
	ProviderName = "InstanceMetadataProvider"

	// credentialsBasePath is the metadata path listing role names and,
	// one level deeper, serving per-role credential documents.
	credentialsBasePath = "latest/meta-data/iam/security-credentials"
)

// IHTTPFetcher defines the functions the provider depends on from the
// http fetch engine.
type IHTTPFetcher interface {
	Fetch(ctx context.Context, rawurl string) ([]byte, error)
}

// fetchState tracks progress through the two-step metadata protocol.
// Transitions are one-directional; a failed step aborts the fetch.
type fetchState int

const (
	stateStart fetchState = iota
	stateAwaitRoleName
	stateAwaitCredentials
	stateDone
)
