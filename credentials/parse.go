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
	"encoding/json"
	"time"
)

// securityCredentialsDoc is the document shape served by the instance
// metadata and container credential endpoints.
type securityCredentialsDoc struct {
	Code            string
	AccessKeyId     string
	SecretAccessKey string
	Token           string
	Expiration      string
}

// ParseSecurityCredentials decodes the JSON credential document served
// by the instance metadata and container endpoints into a complete
// Credentials value. Malformed JSON, missing required fields, a bad
// expiration timestamp or a non-Success code all yield a KindParse
// error; partial credentials are never returned.
func ParseSecurityCredentials(body []byte, providerName string) (Credentials, error) {
	var doc securityCredentialsDoc
	if err := json.Unmarshal(body, &doc); err != nil {
		return Credentials{}, NewParseError("malformed security credentials document", err)
	}

	// Code is only present on the instance metadata endpoint; when set,
	// anything other than Success means the role has no usable credentials.
	if doc.Code != "" && doc.Code != "Success" {
		return Credentials{}, NewParseError("security credentials document reported code "+doc.Code, nil)
	}

	if doc.AccessKeyId == "" {
		return Credentials{}, NewParseError("security credentials document is missing AccessKeyId", nil)
	}
	if doc.SecretAccessKey == "" {
		return Credentials{}, NewParseError("security credentials document is missing SecretAccessKey", nil)
	}

	creds := Credentials{
		AccessKeyID:     doc.AccessKeyId,
		SecretAccessKey: doc.SecretAccessKey,
		SessionToken:    doc.Token,
		ProviderName:    providerName,
	}

	if doc.Expiration != "" {
		expiration, err := time.Parse(time.RFC3339, doc.Expiration)
		if err != nil {
			return Credentials{}, NewParseError("security credentials document carries an invalid expiration", err)
		}
		creds.Expiration = expiration
	}

	return creds, nil
}
