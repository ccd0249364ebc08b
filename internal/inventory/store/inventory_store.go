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
	"sync"

	"github.com/wso2/twin-export-service/internal/inventory/model"
)

// InventoryStoreInterface persists which target objects this service has
// mirrored. All backends must be safe for concurrent use.
type InventoryStoreInterface interface {
	Upsert(record model.Record) error
	All() ([]model.Record, error)
	RemoveThing(sourceURL, thingID string) error
	RemoveSubmodel(sourceURL, thingID, featureID string) error
}

// MemoryStore is the default, in-process inventory backend. It only covers
// objects mirrored since process start; use the Postgres or Mongo backend for
// a durable inventory.
type MemoryStore struct {
	records map[string]model.Record
	mutex   sync.RWMutex
}

// NewMemoryStore creates an empty in-memory inventory.
func NewMemoryStore() *MemoryStore {

	return &MemoryStore{records: make(map[string]model.Record)}
}

func recordKey(sourceURL, thingID, featureID string) string {

	return sourceURL + "|" + thingID + "|" + featureID
}

// Upsert adds or refreshes a record.
func (s *MemoryStore) Upsert(record model.Record) error {

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.records[recordKey(record.SourceURL, record.ThingID, record.FeatureID)] = record
	return nil
}

// All returns every record in the inventory.
func (s *MemoryStore) All() ([]model.Record, error) {

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	records := make([]model.Record, 0, len(s.records))
	for _, record := range s.records {
		records = append(records, record)
	}
	return records, nil
}

// RemoveThing drops the shell record and every submodel record of a thing.
func (s *MemoryStore) RemoveThing(sourceURL, thingID string) error {

	s.mutex.Lock()
	defer s.mutex.Unlock()

	for key, record := range s.records {
		if record.SourceURL == sourceURL && record.ThingID == thingID {
			delete(s.records, key)
		}
	}
	return nil
}

// RemoveSubmodel drops the record of a single feature submodel.
func (s *MemoryStore) RemoveSubmodel(sourceURL, thingID, featureID string) error {

	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.records, recordKey(sourceURL, thingID, featureID))
	return nil
}
