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

package managers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wso2/twin-export-service/internal/health_check/handler"
)

type ServiceManagerInterface interface {
	RegisterServices() error
}

type ServiceManager struct {
	mux      *http.ServeMux
	registry *prometheus.Registry
}

// NewServiceManager creates a new instance of ServiceManager.
func NewServiceManager(mux *http.ServeMux, registry *prometheus.Registry) ServiceManagerInterface {

	return &ServiceManager{
		mux:      mux,
		registry: registry,
	}
}

// RegisterServices mounts the management API: liveness, readiness, the last
// cycle status and Prometheus metrics.
func (sm *ServiceManager) RegisterServices() error {

	healthHandler := handler.NewHealthHandler()
	sm.mux.HandleFunc("/health", healthHandler.HandleHealth)
	sm.mux.HandleFunc("/ready", healthHandler.HandleReadiness)
	sm.mux.HandleFunc("/status", healthHandler.HandleStatus)
	sm.mux.Handle("/metrics", promhttp.HandlerFor(sm.registry, promhttp.HandlerOpts{}))
	return nil
}
