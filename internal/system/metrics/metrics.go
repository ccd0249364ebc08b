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

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the export service.
type Metrics struct {
	CyclesTotal       prometheus.Counter
	ThingsExported    prometheus.Counter
	ElementsUpserted  prometheus.Counter
	ObjectsDeleted    prometheus.Counter
	SignatureFailures prometheus.Counter
	SourceErrors      prometheus.Counter
	CleanupFailures   prometheus.Counter
}

// New creates and registers all Prometheus metrics against the given
// registerer. Tests pass a fresh registry to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CyclesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "tes_sync_cycles_total",
			Help: "Total number of completed synchronization cycles",
		}),
		ThingsExported: factory.NewCounter(prometheus.CounterOpts{
			Name: "tes_things_exported_total",
			Help: "Total number of things mirrored into the target registry",
		}),
		ElementsUpserted: factory.NewCounter(prometheus.CounterOpts{
			Name: "tes_elements_upserted_total",
			Help: "Total number of submodel elements created or updated",
		}),
		ObjectsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "tes_objects_deleted_total",
			Help: "Total number of target objects removed by the cleanup pass",
		}),
		SignatureFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "tes_signature_failures_total",
			Help: "Total number of features rejected by the signature gate",
		}),
		SourceErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "tes_source_errors_total",
			Help: "Total number of source registries that failed during a cycle",
		}),
		CleanupFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "tes_cleanup_failures_total",
			Help: "Total number of failed deletions during cleanup",
		}),
	}
}
