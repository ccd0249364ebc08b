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

package store

import (
	"fmt"
	"os"

	"github.com/wso2/twin-export-service/internal/exportpolicy/model"
	errors2 "github.com/wso2/twin-export-service/internal/system/errors"
	"github.com/wso2/twin-export-service/internal/system/log"
	"gopkg.in/yaml.v2"
)

// PolicyStoreInterface loads the export policy document.
type PolicyStoreInterface interface {
	Load() *model.PolicyDocument
}

// PolicyStore reads the policy from a YAML file on every call so that policy
// edits are picked up at the next cycle.
type PolicyStore struct {
	filePath string
}

// NewPolicyStore creates a policy store for the given file path.
func NewPolicyStore(filePath string) PolicyStoreInterface {

	return &PolicyStore{filePath: filePath}
}

// Load returns the current policy. A missing or unreadable file degrades to an
// empty policy (export nothing); it is never fatal.
func (s *PolicyStore) Load() *model.PolicyDocument {

	logger := log.GetLogger()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn(fmt.Sprintf("Policy file %s not found, exporting nothing", s.filePath))
		} else {
			logger.Error("Failed to read policy file, exporting nothing", log.Error(err))
		}
		return &model.PolicyDocument{}
	}

	var policy model.PolicyDocument
	if err := yaml.Unmarshal(data, &policy); err != nil {
		logger.Error("Failed to parse policy file, exporting nothing",
			log.Error(errors2.NewServerError(errors2.LOAD_EXPORT_POLICY, err)))
		return &model.PolicyDocument{}
	}

	return &policy
}
