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

// Package profileprovider reads credentials from a shared credentials
// file profile and can watch the file for out-of-band rewrites.
package profileprovider

import (
	"context"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"

	"github.com/credkit/credkit/credentials"
	"github.com/credkit/credkit/log"
)

// ProviderName is the provider name returned with credentials
const ProviderName = "ProfileFileProvider"

const (
	envSharedCredentialsFile = "AWS_SHARED_CREDENTIALS_FILE"
	envProfile               = "AWS_PROFILE"
	defaultProfile           = "default"

	keyAccessKeyID     = "aws_access_key_id"
	keySecretAccessKey = "aws_secret_access_key"
	keySessionToken    = "aws_session_token"
)

// ProfileProvider reads one profile of a shared credentials file on
// every Retrieve. Freshness caching belongs to the wrapping refresher.
type ProfileProvider struct {
	log     log.T
	path    string
	profile string
}

// NewCredentialsProvider returns a provider for the given file path and
// profile name. An empty path falls back to AWS_SHARED_CREDENTIALS_FILE
// and then ~/.aws/credentials; an empty profile falls back to
// AWS_PROFILE and then "default".
func NewCredentialsProvider(logger log.T, path, profile string) *ProfileProvider {
	if path == "" {
		path = os.Getenv(envSharedCredentialsFile)
	}
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".aws", "credentials")
		}
	}
	if profile == "" {
		profile = os.Getenv(envProfile)
	}
	if profile == "" {
		profile = defaultProfile
	}
	return &ProfileProvider{
		log:     logger.WithContext("[ProfileFileProvider]"),
		path:    path,
		profile: profile,
	}
}

// Path returns the resolved credentials file path.
func (p *ProfileProvider) Path() string {
	return p.path
}

// Retrieve loads the profile from disk.
func (p *ProfileProvider) Retrieve(_ context.Context) (credentials.Credentials, error) {
	if p.path == "" {
		return credentials.Credentials{}, credentials.NewConfigurationError("shared credentials file location could not be determined")
	}
	if _, err := os.Stat(p.path); err != nil {
		return credentials.Credentials{}, credentials.NewConfigurationError("shared credentials file " + p.path + " does not exist")
	}

	cfg, err := ini.Load(p.path)
	if err != nil {
		return credentials.Credentials{}, credentials.NewParseError("unable to parse shared credentials file "+p.path, err)
	}

	section, err := cfg.GetSection(p.profile)
	if err != nil {
		return credentials.Credentials{}, credentials.NewConfigurationError("profile " + p.profile + " not found in " + p.path)
	}

	accessKeyID := section.Key(keyAccessKeyID).String()
	secretAccessKey := section.Key(keySecretAccessKey).String()
	if accessKeyID == "" || secretAccessKey == "" {
		return credentials.Credentials{}, credentials.NewConfigurationError("profile " + p.profile + " is missing access key id or secret access key")
	}

	return credentials.Credentials{
		AccessKeyID:     accessKeyID,
		SecretAccessKey: secretAccessKey,
		SessionToken:    section.Key(keySessionToken).String(),
		ProviderName:    ProviderName,
	}, nil
}
