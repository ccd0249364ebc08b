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

package authn

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/wso2/twin-export-service/internal/system/config"
	errors2 "github.com/wso2/twin-export-service/internal/system/errors"
	"github.com/wso2/twin-export-service/internal/system/log"
)

// ValidateAuthentication validates the Authorization: Bearer token on a
// management API request. When no JWT secret is configured the check is a
// no-op so local deployments stay open.
func ValidateAuthentication(r *http.Request) error {

	secret := config.GetTESRuntime().Config.Auth.JWTSecret
	if secret == "" {
		return nil
	}

	logger := log.GetLogger()

	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		logger.Debug("Missing or malformed Authorization header on management API request.")
		return unauthorizedError()
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		logger.Debug("Bearer token validation failed.", log.Error(err))
		return unauthorizedError()
	}

	return nil
}

func unauthorizedError() error {

	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.UNAUTHORIZED_REQUEST.Code,
		Message:     errors2.UNAUTHORIZED_REQUEST.Message,
		Description: "A valid bearer token is required to access this endpoint.",
	}, http.StatusUnauthorized)
}
