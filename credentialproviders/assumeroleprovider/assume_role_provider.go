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

// Package assumeroleprovider obtains temporary credentials for a role
// through an externally constructed STS client.
package assumeroleprovider

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sts"

	"github.com/credkit/credkit/appconfig"
	"github.com/credkit/credkit/credentials"
	"github.com/credkit/credkit/log"
)

// AssumeRoleProvider exchanges the caller's STS client credentials for
// temporary role credentials.
type AssumeRoleProvider struct {
	log         log.T
	client      ISTSClient
	roleARN     string
	sessionName string
	externalID  string
	duration    time.Duration

	// getCurrentTimeFunc is swapped out in tests
	getCurrentTimeFunc func() time.Time
}

// NewCredentialsProvider wraps the given STS client with the
// assume-role settings from config.
func NewCredentialsProvider(logger log.T, client ISTSClient, config *appconfig.CredkitConfig) *AssumeRoleProvider {
	return &AssumeRoleProvider{
		log:                logger.WithContext("[AssumeRoleProvider]"),
		client:             client,
		roleARN:            config.AssumeRole.RoleARN,
		sessionName:        config.AssumeRole.SessionName,
		externalID:         config.AssumeRole.ExternalID,
		duration:           time.Duration(config.AssumeRole.DurationSeconds) * time.Second,
		getCurrentTimeFunc: time.Now,
	}
}

// Retrieve calls sts:AssumeRole and converts the response. The
// expiration is taken from the STS response verbatim.
func (p *AssumeRoleProvider) Retrieve(ctx context.Context) (credentials.Credentials, error) {
	if p.roleARN == "" {
		return credentials.Credentials{}, credentials.NewConfigurationError("assume role ARN is not configured")
	}

	sessionName := p.sessionName
	if sessionName == "" {
		sessionName = fmt.Sprintf("credkit-%d", p.getCurrentTimeFunc().UnixNano())
	}

	input := &sts.AssumeRoleInput{
		RoleArn:         aws.String(p.roleARN),
		RoleSessionName: aws.String(sessionName),
		DurationSeconds: aws.Int64(int64(p.duration / time.Second)),
	}
	if p.externalID != "" {
		input.ExternalId = aws.String(p.externalID)
	}

	output, err := p.client.AssumeRoleWithContext(ctx, input)
	if err != nil {
		p.log.Debugf("sts assume role for %s failed: %v", p.roleARN, err)
		return credentials.Credentials{}, credentials.NewNetworkError("sts assume role for "+p.roleARN+" failed", err)
	}

	stsCreds := output.Credentials
	if stsCreds == nil || stsCreds.AccessKeyId == nil || stsCreds.SecretAccessKey == nil ||
		stsCreds.SessionToken == nil || stsCreds.Expiration == nil {
		return credentials.Credentials{}, credentials.NewParseError("sts assume role response is missing credential fields", nil)
	}

	return credentials.Credentials{
		AccessKeyID:     *stsCreds.AccessKeyId,
		SecretAccessKey: *stsCreds.SecretAccessKey,
		SessionToken:    *stsCreds.SessionToken,
		Expiration:      *stsCreds.Expiration,
		ProviderName:    ProviderName,
	}, nil
}
