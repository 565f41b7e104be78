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

package credentials

import (
	"fmt"
	"strings"
)

// ErrKind classifies credential retrieval failures.
type ErrKind int

const (
	// KindNetwork marks connect or IO failures while talking to a
	// credential backend.
	KindNetwork ErrKind = iota

	// KindTimeout marks a request that did not complete within its
	// configured timeout.
	KindTimeout

	// KindHTTPStatus marks a non-2xx response from a credential backend.
	KindHTTPStatus

	// KindParse marks a response body that could not be decoded into a
	// complete set of credentials.
	KindParse

	// KindNoCredentials marks chain exhaustion, every configured source
	// having failed.
	KindNoCredentials

	// KindConfiguration marks invalid or missing local configuration,
	// such as an unparseable endpoint or absent environment variables.
	KindConfiguration
)

func (k ErrKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindHTTPStatus:
		return "http status"
	case KindParse:
		return "parse"
	case KindNoCredentials:
		return "no credentials"
	case KindConfiguration:
		return "configuration"
	default:
		return "unknown"
	}
}

// Error is the failure type returned by every credential source. It
// never carries partial credentials.
type Error struct {
	// Kind classifies the failure
	Kind ErrKind

	// Message is the human readable description of the failure
	Message string

	// StatusCode is the HTTP status code, set only for KindHTTPStatus
	StatusCode int

	// BodySnippet is a truncated response body kept for diagnostics,
	// set only for KindHTTPStatus
	BodySnippet string

	// Sources lists per-source failures in priority order, set only for
	// KindNoCredentials
	Sources []SourceError

	cause error
}

// SourceError pairs a chain entry name with the error it produced.
type SourceError struct {
	Name string
	Err  error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s error: %s", e.Kind, e.Message)
	if e.Kind == KindHTTPStatus {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.cause != nil {
		fmt.Fprintf(&b, ": %v", e.cause)
	}
	for _, src := range e.Sources {
		fmt.Fprintf(&b, "\n\t%s: %v", src.Name, src.Err)
	}
	return b.String()
}

// Unwrap exposes the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// NewNetworkError wraps a transport failure.
func NewNetworkError(message string, cause error) *Error {
	return &Error{Kind: KindNetwork, Message: message, cause: cause}
}

// NewTimeoutError wraps a fired request timeout.
func NewTimeoutError(message string, cause error) *Error {
	return &Error{Kind: KindTimeout, Message: message, cause: cause}
}

// NewHTTPStatusError records a non-2xx response together with a
// truncated body for diagnostics.
func NewHTTPStatusError(message string, statusCode int, bodySnippet string) *Error {
	return &Error{Kind: KindHTTPStatus, Message: message, StatusCode: statusCode, BodySnippet: bodySnippet}
}

// NewParseError wraps a malformed or incomplete response body.
func NewParseError(message string, cause error) *Error {
	return &Error{Kind: KindParse, Message: message, cause: cause}
}

// NewConfigurationError reports invalid or missing local configuration.
func NewConfigurationError(message string) *Error {
	return &Error{Kind: KindConfiguration, Message: message}
}

// NewNoCredentialsError aggregates the failures of every attempted
// source, preserving chain order.
func NewNoCredentialsError(sources []SourceError) *Error {
	return &Error{
		Kind:    KindNoCredentials,
		Message: fmt.Sprintf("no credential source succeeded, %d attempted", len(sources)),
		Sources: sources,
	}
}

// IsKind reports whether err is a credentials *Error of the given kind.
func IsKind(err error, kind ErrKind) bool {
	credErr, ok := err.(*Error)
	return ok && credErr.Kind == kind
}
