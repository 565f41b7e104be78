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

// Package log wraps seelog behind the T interface so components can be
// handed a logger without depending on the logging backend.
package log

import (
	"strings"

	"github.com/cihub/seelog"
)

// DefaultConfig returns a seelog configuration that writes formatted
// messages at info level and above to the console.
func DefaultConfig() []byte {
	return []byte(`
<seelog type="adaptive" mininterval="2000000" maxinterval="100000000" critmsgcount="500" minlevel="info">
    <outputs formatid="fmtconsole">
        <console formatid="fmtconsole"/>
    </outputs>
    <formats>
        <format id="fmtconsole" format="%Date %Time %LEVEL %Msg%n"/>
    </formats>
</seelog>
`)
}

// NewLogger creates a logger from the default seelog configuration.
func NewLogger() T {
	logger, _ := seelog.LoggerFromConfigAsBytes(DefaultConfig())
	return &delegateLogger{delegate: logger}
}

// NewLoggerFromConfig creates a logger from the provided seelog xml
// configuration, falling back to the default configuration if the
// provided one does not parse.
func NewLoggerFromConfig(seelogConfig []byte) (T, error) {
	logger, err := seelog.LoggerFromConfigAsBytes(seelogConfig)
	if err != nil {
		logger, _ = seelog.LoggerFromConfigAsBytes(DefaultConfig())
	}
	return &delegateLogger{delegate: logger}, err
}

// delegateLogger delegates to a seelog logger, prepending any context
// set via WithContext to each message.
type delegateLogger struct {
	delegate seelog.LoggerInterface
	context  string
}

// WithContext returns a logger that prefixes each message with the
// provided context strings.
func (l *delegateLogger) WithContext(context ...string) T {
	prefix := strings.Join(context, " ")
	if l.context != "" {
		prefix = l.context + " " + prefix
	}
	return &delegateLogger{delegate: l.delegate, context: prefix}
}

func (l *delegateLogger) prefixed(format string) string {
	if l.context == "" {
		return format
	}
	return l.context + " " + format
}

func (l *delegateLogger) withContext(v []interface{}) []interface{} {
	if l.context == "" {
		return v
	}
	return append([]interface{}{l.context + " "}, v...)
}

func (l *delegateLogger) Tracef(format string, params ...interface{}) {
	l.delegate.Tracef(l.prefixed(format), params...)
}

func (l *delegateLogger) Debugf(format string, params ...interface{}) {
	l.delegate.Debugf(l.prefixed(format), params...)
}

func (l *delegateLogger) Infof(format string, params ...interface{}) {
	l.delegate.Infof(l.prefixed(format), params...)
}

func (l *delegateLogger) Warnf(format string, params ...interface{}) error {
	return l.delegate.Warnf(l.prefixed(format), params...)
}

func (l *delegateLogger) Errorf(format string, params ...interface{}) error {
	return l.delegate.Errorf(l.prefixed(format), params...)
}

func (l *delegateLogger) Trace(v ...interface{}) {
	l.delegate.Trace(l.withContext(v)...)
}

func (l *delegateLogger) Debug(v ...interface{}) {
	l.delegate.Debug(l.withContext(v)...)
}

func (l *delegateLogger) Info(v ...interface{}) {
	l.delegate.Info(l.withContext(v)...)
}

func (l *delegateLogger) Warn(v ...interface{}) error {
	return l.delegate.Warn(l.withContext(v)...)
}

func (l *delegateLogger) Error(v ...interface{}) error {
	return l.delegate.Error(l.withContext(v)...)
}

func (l *delegateLogger) Flush() {
	l.delegate.Flush()
}

func (l *delegateLogger) Close() {
	l.delegate.Close()
}
