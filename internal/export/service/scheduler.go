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
	"context"
	"time"

	"github.com/wso2/twin-export-service/internal/export/model"
	"github.com/wso2/twin-export-service/internal/exportpolicy/store"
	"github.com/wso2/twin-export-service/internal/system/constants"
	syscontext "github.com/wso2/twin-export-service/internal/system/context"
	"github.com/wso2/twin-export-service/internal/system/log"
)

// Scheduler drives synchronization cycles: load policy, cleanup, reconcile,
// sleep, repeat. The policy is re-read on every cycle so edits take effect
// without a restart. Cycles never overlap.
type Scheduler struct {
	policyStore store.PolicyStoreInterface
	exporter    *ExportService
	interval    time.Duration
}

// NewScheduler creates a scheduler. A non-positive poll interval falls back to
// the default.
func NewScheduler(policyStore store.PolicyStoreInterface, exporter *ExportService, pollIntervalSeconds int) *Scheduler {

	interval := time.Duration(pollIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = constants.DefaultPollInterval
	}
	return &Scheduler{
		policyStore: policyStore,
		exporter:    exporter,
		interval:    interval,
	}
}

// Run loops until the context is cancelled. A cycle in progress runs to
// completion before the stop is honored.
func (s *Scheduler) Run(ctx context.Context) {

	log.GetLogger().Info("Starting export scheduler", log.Any("interval", s.interval))
	for {
		s.RunCycle(ctx)
		select {
		case <-ctx.Done():
			log.GetLogger().Info("Export scheduler stopped")
			return
		case <-time.After(s.interval):
		}
	}
}

// RunCycle executes one complete cycle under a fresh trace id and records the
// outcome for the management API.
func (s *Scheduler) RunCycle(ctx context.Context) model.CycleStatus {

	traceID := syscontext.GenerateTraceID()
	ctx = syscontext.WithTraceID(ctx, traceID)
	logger := cycleLogger(ctx)

	status := model.CycleStatus{TraceID: traceID, StartedAt: time.Now()}
	policy := s.policyStore.Load()

	status.Cleanup = s.exporter.RunCleanup(ctx, policy)
	status.Reconcile = s.exporter.RunReconciliation(ctx, policy)
	status.FinishedAt = time.Now()

	s.exporter.metrics.CyclesTotal.Inc()
	SetLastCycleStatus(status)

	logger.Info("Export cycle completed",
		log.Int("things_exported", status.Reconcile.ThingsExported),
		log.Int("elements_upserted", status.Reconcile.ElementsUpserted),
		log.Int("objects_deleted", status.Cleanup.ShellsDeleted+status.Cleanup.SubmodelsDeleted+
			status.Cleanup.ElementsDeleted+status.Cleanup.OrphansDeleted),
		log.Any("duration", status.FinishedAt.Sub(status.StartedAt)))
	return status
}
