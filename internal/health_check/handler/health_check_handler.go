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

package handler

import (
	"net/http"

	exportservice "github.com/wso2/twin-export-service/internal/export/service"
	"github.com/wso2/twin-export-service/internal/health_check/provider"
	"github.com/wso2/twin-export-service/internal/system/authn"
	"github.com/wso2/twin-export-service/internal/system/utils"
)

// HealthHandler implements health, readiness and cycle status endpoints.
type HealthHandler struct{}

// NewHealthHandler creates a new instance of HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// HandleHealth responds to /health requests.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{"status": "healthy"}
	utils.WriteJSONResponse(w, http.StatusOK, response)
}

// HandleReadiness responds to /ready requests.
func (h *HealthHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	healthCheckService := provider.NewHealthCheckProvider().GetHealthCheckService()
	if err := healthCheckService.CheckReadiness(); err != nil {
		response := map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		}
		utils.WriteJSONResponse(w, http.StatusServiceUnavailable, response)
		return
	}

	response := map[string]string{"status": "ready"}
	utils.WriteJSONResponse(w, http.StatusOK, response)
}

// HandleStatus responds to /status requests with the outcome of the last
// completed synchronization cycle. The endpoint is token-guarded when a JWT
// secret is configured.
func (h *HealthHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if err := authn.ValidateAuthentication(r); err != nil {
		utils.WriteJSONResponse(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	status := exportservice.GetLastCycleStatus()
	if status == nil {
		utils.WriteJSONResponse(w, http.StatusOK, map[string]string{"status": "no cycle completed yet"})
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, status)
}
