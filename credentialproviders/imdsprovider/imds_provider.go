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

// Package imdsprovider fetches role credentials from the instance
// metadata endpoint using its two-step protocol: role discovery
// followed by credential retrieval.
package imdsprovider

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/credkit/credkit/appconfig"
	"github.com/credkit/credkit/credentials"
	"github.com/credkit/credkit/httpfetcher"
	"github.com/credkit/credkit/log"
)

// ImdsProvider gets role credentials from the instance metadata service.
type ImdsProvider struct {
	log      log.T
	fetcher  IHTTPFetcher
	endpoint string
}

// NewCredentialsProvider builds a provider against the metadata
// endpoint configured in config. Each protocol step is bounded by the
// configured timeout independently; timeouts do not accumulate.
func NewCredentialsProvider(logger log.T, config *appconfig.CredkitConfig) *ImdsProvider {
	logger = logger.WithContext("[InstanceMetadataProvider]")
	timeout := time.Duration(config.Imds.TimeoutSeconds) * time.Second
	endpoint := config.Imds.Host
	if config.Imds.Port != "" {
		endpoint = net.JoinHostPort(config.Imds.Host, config.Imds.Port)
	}
	return &ImdsProvider{
		log:      logger,
		fetcher:  httpfetcher.New(logger, timeout),
		endpoint: endpoint,
	}
}

// SetEndpoint overrides the metadata endpoint, for testing or proxies.
// An empty port leaves the host bare.
func (p *ImdsProvider) SetEndpoint(host, port string) {
	if port == "" {
		p.endpoint = host
		return
	}
	p.endpoint = net.JoinHostPort(host, port)
}

// Retrieve runs the two-step protocol to completion. The state machine
// advances only forward; the first failed step aborts the fetch and the
// credential request for a role is never issued without a discovered
// role name.
func (p *ImdsProvider) Retrieve(ctx context.Context) (credentials.Credentials, error) {
	var roleName string
	var creds credentials.Credentials
	var err error

	for state := stateStart; state != stateDone; {
		switch state {
		case stateStart:
			state = stateAwaitRoleName
		case stateAwaitRoleName:
			if roleName, err = p.fetchRoleName(ctx); err != nil {
				return credentials.Credentials{}, err
			}
			state = stateAwaitCredentials
		case stateAwaitCredentials:
			if creds, err = p.fetchRoleCredentials(ctx, roleName); err != nil {
				return credentials.Credentials{}, err
			}
			state = stateDone
		}
	}

	return creds, nil
}

// fetchRoleName performs role discovery. The response body is treated
// as newline-separated role names; the first non-empty line wins.
func (p *ImdsProvider) fetchRoleName(ctx context.Context) (string, error) {
	listURL := fmt.Sprintf("http://%s/%s/", p.endpoint, credentialsBasePath)
	body, err := p.fetcher.Fetch(ctx, listURL)
	if err != nil {
		p.log.Debugf("role discovery against %s failed: %v", p.endpoint, err)
		return "", err
	}

	for _, line := range strings.Split(string(body), "\n") {
		if roleName := strings.TrimSpace(line); roleName != "" {
			return roleName, nil
		}
	}
	return "", credentials.NewParseError("metadata endpoint listed no IAM role", nil)
}

// fetchRoleCredentials retrieves and decodes the credential document
// for the discovered role.
func (p *ImdsProvider) fetchRoleCredentials(ctx context.Context, roleName string) (credentials.Credentials, error) {
	credsURL := fmt.Sprintf("http://%s/%s/%s", p.endpoint, credentialsBasePath, roleName)
	body, err := p.fetcher.Fetch(ctx, credsURL)
	if err != nil {
		p.log.Debugf("credential retrieval for role %s failed: %v", roleName, err)
		return credentials.Credentials{}, err
	}
	return credentials.ParseSecurityCredentials(body, ProviderName)
}
