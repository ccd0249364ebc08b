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

package service

import (
	"sync"

	"github.com/wso2/twin-export-service/internal/export/model"
)

var (
	lastCycleMutex sync.RWMutex
	lastCycle      *model.CycleStatus
)

// SetLastCycleStatus records the outcome of the most recent cycle.
func SetLastCycleStatus(status model.CycleStatus) {

	lastCycleMutex.Lock()
	defer lastCycleMutex.Unlock()
	lastCycle = &status
}

// GetLastCycleStatus returns a copy of the most recent cycle outcome, or nil
// when no cycle has completed yet.
func GetLastCycleStatus() *model.CycleStatus {

	lastCycleMutex.RLock()
	defer lastCycleMutex.RUnlock()
	if lastCycle == nil {
		return nil
	}
	status := *lastCycle
	return &status
}
