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

// Package httpfetcher implements the minimal bounded-timeout GET
// primitive the credential sources are built on.
package httpfetcher

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/credkit/credkit/credentials"
	"github.com/credkit/credkit/log"
)

const (
	// DefaultTimeout bounds a whole request, connect and body read included.
	DefaultTimeout = 30 * time.Second

	// bodySnippetLimit caps the response body kept on status errors.
	bodySnippetLimit = 512
)

// Fetcher issues single GET requests with a whole-request timeout.
// Redirects are not followed.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
	log     log.T
}

// New creates a Fetcher with the given per-request timeout. A
// non-positive timeout selects the default of 30 seconds.
func New(logger log.T, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		client: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		timeout: timeout,
		log:     logger.WithContext("[HttpFetcher]"),
	}
}

// Timeout returns the configured per-request timeout.
func (f *Fetcher) Timeout() time.Duration {
	return f.timeout
}

// Fetch issues one GET against rawurl and returns the response body.
// The timeout covers the entire request. Non-2xx responses yield a
// status error carrying the code and a truncated body; a fired timeout
// yields a timeout error; transport failures yield a network error.
func (f *Fetcher) Fetch(ctx context.Context, rawurl string) ([]byte, error) {
	if _, err := url.ParseRequestURI(rawurl); err != nil {
		return nil, credentials.NewConfigurationError("invalid request url " + rawurl)
	}

	reqCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawurl, nil)
	if err != nil {
		return nil, credentials.NewConfigurationError("unable to build request for " + rawurl)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, f.classify(rawurl, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, f.classify(rawurl, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.log.Debugf("GET %s returned status %d", rawurl, resp.StatusCode)
		return nil, credentials.NewHTTPStatusError(
			"unexpected status fetching "+rawurl, resp.StatusCode, snippet(body))
	}

	return body, nil
}

// classify maps a transport failure to the timeout or network error kind.
func (f *Fetcher) classify(rawurl string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return credentials.NewTimeoutError("request to "+rawurl+" timed out", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return credentials.NewTimeoutError("request to "+rawurl+" timed out", err)
	}
	return credentials.NewNetworkError("request to "+rawurl+" failed", err)
}

func snippet(body []byte) string {
	if len(body) > bodySnippetLimit {
		body = body[:bodySnippetLimit]
	}
	return string(body)
}
