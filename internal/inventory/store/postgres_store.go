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

	"github.com/wso2/twin-export-service/internal/inventory/model"
	"github.com/wso2/twin-export-service/internal/system/constants"
	"github.com/wso2/twin-export-service/internal/system/database/provider"
	errors2 "github.com/wso2/twin-export-service/internal/system/errors"
	"github.com/wso2/twin-export-service/internal/system/log"
)

// PostgresStore is the relational inventory backend, suitable when the
// inventory has to survive restarts.
type PostgresStore struct{}

// NewPostgresStore creates a Postgres-backed inventory store.
func NewPostgresStore() *PostgresStore {

	return &PostgresStore{}
}

// Upsert adds or refreshes a record.
func (s *PostgresStore) Upsert(record model.Record) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return serverError(errors2.RECORD_INVENTORY, "Failed to get db client for inventory upsert", err)
	}
	defer dbClient.Close()

	query := fmt.Sprintf(`INSERT INTO %s (source_url, thing_id, feature_id, submodel_id, mirrored_at)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (source_url, thing_id, feature_id)
	          DO UPDATE SET submodel_id = EXCLUDED.submodel_id, mirrored_at = EXCLUDED.mirrored_at`,
		constants.InventoryTable)

	if err := dbClient.ExecuteStatement(query, record.SourceURL, record.ThingID, record.FeatureID,
		record.SubmodelID, record.MirroredAt); err != nil {
		return serverError(errors2.RECORD_INVENTORY,
			fmt.Sprintf("Failed to upsert inventory record for thing %s", record.ThingID), err)
	}
	return nil
}

// All returns every record in the inventory.
func (s *PostgresStore) All() ([]model.Record, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return nil, serverError(errors2.FETCH_INVENTORY, "Failed to get db client for inventory read", err)
	}
	defer dbClient.Close()

	query := fmt.Sprintf(`SELECT source_url, thing_id, feature_id, submodel_id, mirrored_at FROM %s`,
		constants.InventoryTable)

	rows, err := dbClient.ExecuteQuery(query)
	if err != nil {
		return nil, serverError(errors2.FETCH_INVENTORY, "Failed to read inventory records", err)
	}

	records := make([]model.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, model.Record{
			SourceURL:  asString(row["source_url"]),
			ThingID:    asString(row["thing_id"]),
			FeatureID:  asString(row["feature_id"]),
			SubmodelID: asString(row["submodel_id"]),
			MirroredAt: asInt64(row["mirrored_at"]),
		})
	}
	return records, nil
}

// RemoveThing drops the shell record and every submodel record of a thing.
func (s *PostgresStore) RemoveThing(sourceURL, thingID string) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return serverError(errors2.REMOVE_INVENTORY, "Failed to get db client for inventory delete", err)
	}
	defer dbClient.Close()

	query := fmt.Sprintf(`DELETE FROM %s WHERE source_url = $1 AND thing_id = $2`, constants.InventoryTable)
	if err := dbClient.ExecuteStatement(query, sourceURL, thingID); err != nil {
		return serverError(errors2.REMOVE_INVENTORY,
			fmt.Sprintf("Failed to delete inventory records for thing %s", thingID), err)
	}
	return nil
}

// RemoveSubmodel drops the record of a single feature submodel.
func (s *PostgresStore) RemoveSubmodel(sourceURL, thingID, featureID string) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return serverError(errors2.REMOVE_INVENTORY, "Failed to get db client for inventory delete", err)
	}
	defer dbClient.Close()

	query := fmt.Sprintf(`DELETE FROM %s WHERE source_url = $1 AND thing_id = $2 AND feature_id = $3`,
		constants.InventoryTable)
	if err := dbClient.ExecuteStatement(query, sourceURL, thingID, featureID); err != nil {
		return serverError(errors2.REMOVE_INVENTORY,
			fmt.Sprintf("Failed to delete inventory record for submodel %s:%s", thingID, featureID), err)
	}
	return nil
}

func serverError(msg errors2.ErrorMessage, description string, cause error) error {

	log.GetLogger().Debug(description, log.Error(cause))
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        msg.Code,
		Message:     msg.Message,
		Description: description,
	}, cause)
}

// asString tolerates the driver returning text columns as either string or
// raw bytes.
func asString(value interface{}) string {

	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", value)
	}
}

func asInt64(value interface{}) int64 {

	switch v := value.(type) {
	case int64:
		return v
	case int32:
		return int64(v)
	case int:
		return int64(v)
	default:
		return 0
	}
}
