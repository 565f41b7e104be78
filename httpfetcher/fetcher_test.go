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

package httpfetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/credkit/credkit/credentials"
	"github.com/credkit/credkit/log"
)

func TestFetch_ReturnsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hello"))
	}))
	defer server.Close()

	fetcher := New(log.NewMockLog(), time.Second)
	body, err := fetcher.Fetch(context.Background(), server.URL)

	assert.Nil(t, err)
	assert.Equal(t, "hello", string(body))
}

func TestFetch_NonSuccessStatusCarriesCodeAndSnippet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(strings.Repeat("x", 1024)))
	}))
	defer server.Close()

	fetcher := New(log.NewMockLog(), time.Second)
	_, err := fetcher.Fetch(context.Background(), server.URL)

	assert.True(t, credentials.IsKind(err, credentials.KindHTTPStatus))
	credErr := err.(*credentials.Error)
	assert.Equal(t, http.StatusNotFound, credErr.StatusCode)
	assert.Len(t, credErr.BodySnippet, 512)
}

func TestFetch_TimeoutYieldsTimeoutKind(t *testing.T) {
	requestDone := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-requestDone
	}))
	defer server.Close()
	defer close(requestDone)

	fetcher := New(log.NewMockLog(), 50*time.Millisecond)
	_, err := fetcher.Fetch(context.Background(), server.URL)

	assert.True(t, credentials.IsKind(err, credentials.KindTimeout))
}

func TestFetch_ConnectFailureYieldsNetworkKind(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := server.URL
	server.Close()

	fetcher := New(log.NewMockLog(), time.Second)
	_, err := fetcher.Fetch(context.Background(), serverURL)

	assert.True(t, credentials.IsKind(err, credentials.KindNetwork))
}

func TestFetch_DoesNotFollowRedirects(t *testing.T) {
	var targetHits int
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		targetHits++
	}))
	defer target.Close()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target.URL, http.StatusFound)
	}))
	defer server.Close()

	fetcher := New(log.NewMockLog(), time.Second)
	_, err := fetcher.Fetch(context.Background(), server.URL)

	assert.True(t, credentials.IsKind(err, credentials.KindHTTPStatus))
	assert.Equal(t, http.StatusFound, err.(*credentials.Error).StatusCode)
	assert.Equal(t, 0, targetHits)
}

func TestFetch_InvalidURL(t *testing.T) {
	fetcher := New(log.NewMockLog(), time.Second)
	_, err := fetcher.Fetch(context.Background(), "not a url")

	assert.True(t, credentials.IsKind(err, credentials.KindConfiguration))
}
