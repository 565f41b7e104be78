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

package appconfig

// StaticCfg holds explicit static credentials, the highest priority
// entry of the default chain when populated.
type StaticCfg struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// ImdsCfg configures the instance metadata credential source.
type ImdsCfg struct {
	// Host is the metadata endpoint address
	Host string
	// Port is the metadata endpoint port, empty for the default
	Port string
	// TimeoutSeconds bounds each metadata request independently
	TimeoutSeconds int
}

// ContainerCfg configures the container credential source.
type ContainerCfg struct {
	// Host serves relative credential URIs
	Host string
	// TimeoutSeconds bounds the credential request
	TimeoutSeconds int
}

// RefresherCfg configures the caching refresh layer.
type RefresherCfg struct {
	// BufferSeconds is subtracted from the credential expiration to
	// trigger proactive refresh before hard expiry
	BufferSeconds int
}

// ProfileCfg configures the shared credentials file source.
type ProfileCfg struct {
	// Path of the shared credentials file, empty for ~/.aws/credentials
	Path string
	// Name of the profile to read, empty for default
	Name string
}

// AssumeRoleCfg configures the STS assume-role source. RoleARN empty
// disables the source.
type AssumeRoleCfg struct {
	RoleARN         string
	SessionName     string
	ExternalID      string
	DurationSeconds int
}

// CredkitConfig is the full configuration surface of the library.
type CredkitConfig struct {
	Static     StaticCfg
	Imds       ImdsCfg
	Container  ContainerCfg
	Refresher  RefresherCfg
	Profile    ProfileCfg
	AssumeRole AssumeRoleCfg
}
