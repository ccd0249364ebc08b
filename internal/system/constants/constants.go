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

package constants

import "time"

type ContextKey string

const (
	// TraceIDContextKey carries the per-cycle trace id.
	TraceIDContextKey ContextKey = "traceID"

	// DefaultPollInterval is used when the scheduler interval is not configured.
	DefaultPollInterval = 5 * time.Second

	// DefaultPublicKeyPath is used when the policy does not name a key file.
	DefaultPublicKeyPath = "public_key.pem"

	// SignatureProperty is the reserved property name carrying the bundle signature.
	SignatureProperty = "signature"

	// PublicKeyCacheTTL bounds how long a parsed public key is reused before
	// the PEM file is read again.
	PublicKeyCacheTTL = 5 * time.Minute

	// InventoryTable is the relational table for the mirrored-object inventory.
	InventoryTable = "twin_inventory"

	// InventoryCollection is the Mongo collection for the mirrored-object inventory.
	InventoryCollection = "twin_inventory"
)

// Datasource types for the inventory store.
const (
	DatasourceMemory   = "memory"
	DatasourcePostgres = "postgres"
	DatasourceMongoDB  = "mongodb"
)
