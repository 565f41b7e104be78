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

// Package containerprovider fetches credentials from the container
// credential endpoint advertised through the standard environment
// variables.
package containerprovider

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/credkit/credkit/appconfig"
	"github.com/credkit/credkit/credentials"
	"github.com/credkit/credkit/httpfetcher"
	"github.com/credkit/credkit/log"
)

// ProviderName is the provider name returned with credentials
const ProviderName = "ContainerProvider"

const (
	envRelativeURI = "AWS_CONTAINER_CREDENTIALS_RELATIVE_URI"
	envFullURI     = "AWS_CONTAINER_CREDENTIALS_FULL_URI"
)

// IHTTPFetcher defines the functions the provider depends on from the
// http fetch engine.
type IHTTPFetcher interface {
	Fetch(ctx context.Context, rawurl string) ([]byte, error)
}

type containerProvider struct {
	log     log.T
	fetcher IHTTPFetcher
	host    string
	getenv  func(string) string
}

// NewCredentialsProvider builds a provider resolving the credential URI
// from the environment on every Retrieve.
func NewCredentialsProvider(logger log.T, config *appconfig.CredkitConfig) credentials.Provider {
	logger = logger.WithContext("[ContainerProvider]")
	timeout := time.Duration(config.Container.TimeoutSeconds) * time.Second
	return &containerProvider{
		log:     logger,
		fetcher: httpfetcher.New(logger, timeout),
		host:    config.Container.Host,
		getenv:  os.Getenv,
	}
}

// Retrieve issues one GET against the advertised endpoint and decodes
// the credential document. Neither environment variable being set is a
// configuration error so the chain can fall through.
func (p *containerProvider) Retrieve(ctx context.Context) (credentials.Credentials, error) {
	credsURL, err := p.credentialsURL()
	if err != nil {
		return credentials.Credentials{}, err
	}

	body, err := p.fetcher.Fetch(ctx, credsURL)
	if err != nil {
		p.log.Debugf("container credential retrieval failed: %v", err)
		return credentials.Credentials{}, err
	}
	return credentials.ParseSecurityCredentials(body, ProviderName)
}

func (p *containerProvider) credentialsURL() (string, error) {
	if relativeURI := p.getenv(envRelativeURI); relativeURI != "" {
		if !strings.HasPrefix(relativeURI, "/") {
			relativeURI = "/" + relativeURI
		}
		return "http://" + p.host + relativeURI, nil
	}
	if fullURI := p.getenv(envFullURI); fullURI != "" {
		return fullURI, nil
	}
	return "", credentials.NewConfigurationError(envRelativeURI + " and " + envFullURI + " are not set")
}
