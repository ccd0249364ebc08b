/*
 * Copyright (c) 2026, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package config

import "sync"

// TESRuntime holds the runtime configuration for the twin export service.
type TESRuntime struct {
	TESHome string `yaml:"tes_home"`
	Config  Config `yaml:"config"`
}

var (
	runtimeConfig *TESRuntime
	once          sync.Once
)

// InitializeTESRuntime initializes the TESRuntime configuration.
func InitializeTESRuntime(tesHome string, config *Config) error {

	once.Do(func() {
		runtimeConfig = &TESRuntime{
			TESHome: tesHome,
			Config:  *config,
		}
	})

	return nil
}

// GetTESRuntime returns the TESRuntime configuration.
func GetTESRuntime() *TESRuntime {

	if runtimeConfig == nil {
		panic("TESRuntime is not initialized")
	}
	return runtimeConfig
}
