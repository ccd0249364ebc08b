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

package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/wso2/twin-export-service/internal/inventory/store"
	"github.com/wso2/twin-export-service/internal/system/config"
	"github.com/wso2/twin-export-service/internal/system/constants"
	"github.com/wso2/twin-export-service/internal/system/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InventoryProviderInterface builds the configured inventory store backend.
type InventoryProviderInterface interface {
	GetInventoryStore() (store.InventoryStoreInterface, error)
}

// InventoryProvider is the default implementation of InventoryProviderInterface.
type InventoryProvider struct{}

// NewInventoryProvider creates a new instance of InventoryProvider.
func NewInventoryProvider() InventoryProviderInterface {

	return &InventoryProvider{}
}

// GetInventoryStore returns the store selected by datasource.type. An unset or
// unknown type falls back to the in-memory store.
func (p *InventoryProvider) GetInventoryStore() (store.InventoryStoreInterface, error) {

	dataSource := config.GetTESRuntime().Config.DataSource

	switch dataSource.Type {
	case constants.DatasourcePostgres:
		return store.NewPostgresStore(), nil
	case constants.DatasourceMongoDB:
		return newMongoStore(dataSource)
	case constants.DatasourceMemory, "":
		return store.NewMemoryStore(), nil
	default:
		log.GetLogger().Warn(fmt.Sprintf("Unknown datasource type %q, using in-memory inventory", dataSource.Type))
		return store.NewMemoryStore(), nil
	}
}

func newMongoStore(dataSource config.DataSourceConfig) (store.InventoryStoreInterface, error) {

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(dataSource.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return store.NewMongoRepository(client.Database(dataSource.Name), constants.InventoryCollection), nil
}
