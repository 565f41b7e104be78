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

const (
	minTimeoutSeconds = 1
	maxTimeoutSeconds = 300

	minBufferSeconds = 0
	maxBufferSeconds = 3600

	// STS bounds for session duration
	minAssumeRoleDurationSeconds = 900
	maxAssumeRoleDurationSeconds = 43200
)

// parser applies limits and assigns default values to config overrides.
func parser(config *CredkitConfig) {
	config.Imds.Host = getStringValue(config.Imds.Host, DefaultImdsHost)
	config.Imds.TimeoutSeconds = getNumericValue(
		config.Imds.TimeoutSeconds,
		minTimeoutSeconds,
		maxTimeoutSeconds,
		DefaultTimeoutSeconds)

	config.Container.Host = getStringValue(config.Container.Host, DefaultContainerHost)
	config.Container.TimeoutSeconds = getNumericValue(
		config.Container.TimeoutSeconds,
		minTimeoutSeconds,
		maxTimeoutSeconds,
		DefaultTimeoutSeconds)

	config.Refresher.BufferSeconds = getNumericValue(
		config.Refresher.BufferSeconds,
		minBufferSeconds,
		maxBufferSeconds,
		DefaultBufferSeconds)

	config.AssumeRole.DurationSeconds = getNumericValue(
		config.AssumeRole.DurationSeconds,
		minAssumeRoleDurationSeconds,
		maxAssumeRoleDurationSeconds,
		DefaultAssumeRoleDurationSeconds)
}

func getStringValue(configValue string, defaultValue string) string {
	if configValue == "" {
		return defaultValue
	}
	return configValue
}

func getNumericValue(configValue int, minValue int, maxValue int, defaultValue int) int {
	if configValue < minValue || configValue > maxValue {
		return defaultValue
	}
	return configValue
}
