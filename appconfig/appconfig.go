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

// Package appconfig manages the configuration of the credential
// provisioning library.
package appconfig

import (
	"encoding/json"
	"os"
	"sync"
)

const (
	// EnvConfigPath names the environment variable pointing at an
	// optional JSON config override file.
	EnvConfigPath = "CREDKIT_APP_CONFIG"

	// DefaultImdsHost is the link-local instance metadata address.
	DefaultImdsHost = "169.254.169.254"

	// DefaultContainerHost serves relative container credential URIs.
	DefaultContainerHost = "169.254.170.2"

	// DefaultTimeoutSeconds bounds each credential HTTP request.
	DefaultTimeoutSeconds = 30

	// DefaultBufferSeconds is the refresh buffer applied before hard expiry.
	DefaultBufferSeconds = 300

	// DefaultAssumeRoleDurationSeconds is the STS minimum session duration.
	DefaultAssumeRoleDurationSeconds = 900
)

var loadedConfig *CredkitConfig
var lock sync.RWMutex

// DefaultConfig returns the configuration used when no override file is
// present.
func DefaultConfig() CredkitConfig {
	return CredkitConfig{
		Imds: ImdsCfg{
			Host:           DefaultImdsHost,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Container: ContainerCfg{
			Host:           DefaultContainerHost,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Refresher: RefresherCfg{
			BufferSeconds: DefaultBufferSeconds,
		},
		AssumeRole: AssumeRoleCfg{
			DurationSeconds: DefaultAssumeRoleDurationSeconds,
		},
	}
}

// Config loads the library configuration. If reload is true it loads
// the config afresh, otherwise it returns a previously loaded version,
// if any. A missing or unreadable override file falls back to defaults.
func Config(reload bool) (CredkitConfig, error) {
	if reload || !isLoaded() {
		config := DefaultConfig()
		path := os.Getenv(EnvConfigPath)
		if path == "" {
			cache(config)
			return getCached(), nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			cache(config)
			return getCached(), err
		}
		if err := json.Unmarshal(content, &config); err != nil {
			config = DefaultConfig()
			cache(config)
			return getCached(), err
		}
		parser(&config)
		cache(config)
	}
	return getCached(), nil
}

func isLoaded() bool {
	lock.RLock()
	defer lock.RUnlock()
	return loadedConfig != nil
}

func cache(config CredkitConfig) {
	lock.Lock()
	defer lock.Unlock()
	loadedConfig = &config
}

func getCached() CredkitConfig {
	lock.RLock()
	defer lock.RUnlock()
	return *loadedConfig
}
