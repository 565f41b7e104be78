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
	"time"

	"github.com/credkit/credkit/appconfig"
	"github.com/credkit/credkit/credentialproviders/assumeroleprovider"
	"github.com/credkit/credkit/credentialproviders/containerprovider"
	"github.com/credkit/credkit/credentialproviders/envprovider"
	"github.com/credkit/credkit/credentialproviders/imdsprovider"
	"github.com/credkit/credkit/credentialproviders/profileprovider"
	"github.com/credkit/credkit/credentialproviders/staticprovider"
	"github.com/credkit/credkit/credentialrefresher"
	"github.com/credkit/credkit/log"
)

// Source names used by the default chain.
const (
	SourceStatic           = "Static"
	SourceEnvironment      = "Environment"
	SourceProfileFile      = "ProfileFile"
	SourceContainer        = "Container"
	SourceInstanceMetadata = "InstanceMetadata"
	SourceAssumeRole       = "AssumeRole"
)

// NewDefault assembles the standard resolution order: explicit static
// credentials, environment, shared credentials file, container
// endpoint, instance metadata, and finally assume-role when an STS
// client is supplied and a role is configured. Expiring sources are
// wrapped in a caching refresher; static and environment sources stay
// raw because reading them is cheap and they never expire.
func NewDefault(logger log.T, config *appconfig.CredkitConfig, stsClient assumeroleprovider.ISTSClient) *Chain {
	buffer := time.Duration(config.Refresher.BufferSeconds) * time.Second

	entries := make([]Entry, 0, 6)

	if config.Static.AccessKeyID != "" || config.Static.SecretAccessKey != "" {
		entries = append(entries, Entry{
			Name:     SourceStatic,
			Provider: staticprovider.NewCredentialsProvider(config.Static.AccessKeyID, config.Static.SecretAccessKey, config.Static.SessionToken),
		})
	}

	entries = append(entries,
		Entry{
			Name:     SourceEnvironment,
			Provider: envprovider.NewCredentialsProvider(),
		},
		Entry{
			Name:     SourceProfileFile,
			Provider: credentialrefresher.NewCachingProvider(logger, profileprovider.NewCredentialsProvider(logger, config.Profile.Path, config.Profile.Name), buffer),
		},
		Entry{
			Name:     SourceContainer,
			Provider: credentialrefresher.NewCachingProvider(logger, containerprovider.NewCredentialsProvider(logger, config), buffer),
		},
		Entry{
			Name:     SourceInstanceMetadata,
			Provider: credentialrefresher.NewCachingProvider(logger, imdsprovider.NewCredentialsProvider(logger, config), buffer),
		},
	)

	if stsClient != nil && config.AssumeRole.RoleARN != "" {
		entries = append(entries, Entry{
			Name:     SourceAssumeRole,
			Provider: credentialrefresher.NewCachingProvider(logger, assumeroleprovider.NewCredentialsProvider(logger, stsClient, config), buffer),
		})
	}

	return New(logger, entries...)
}
