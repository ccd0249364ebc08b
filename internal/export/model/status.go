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

package model

import "time"

// ReconcileStats summarizes one reconciliation pass.
type ReconcileStats struct {
	ThingsExported    int `json:"things_exported"`
	SubmodelsEnsured  int `json:"submodels_ensured"`
	ElementsUpserted  int `json:"elements_upserted"`
	SignatureFailures int `json:"signature_failures"`
	SourceErrors      int `json:"source_errors"`
}

// CleanupStats summarizes one cleanup pass.
type CleanupStats struct {
	ShellsDeleted    int `json:"shells_deleted"`
	SubmodelsDeleted int `json:"submodels_deleted"`
	ElementsDeleted  int `json:"elements_deleted"`
	OrphansDeleted   int `json:"orphans_deleted"`
	Failures         int `json:"failures"`
}

// CycleStatus is the last completed scheduler cycle, exposed on the
// management API.
type CycleStatus struct {
	TraceID    string         `json:"trace_id"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Cleanup    CleanupStats   `json:"cleanup"`
	Reconcile  ReconcileStats `json:"reconcile"`
}
