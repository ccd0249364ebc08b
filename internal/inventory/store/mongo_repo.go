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
	"context"
	"time"

	"github.com/wso2/twin-export-service/internal/inventory/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository is the MongoDB inventory backend.
type MongoRepository struct {
	Collection *mongo.Collection
}

// NewMongoRepository initializes a repository over the inventory collection.
func NewMongoRepository(db *mongo.Database, collectionName string) *MongoRepository {

	return &MongoRepository{
		Collection: db.Collection(collectionName),
	}
}

// Upsert adds or refreshes a record.
func (repo *MongoRepository) Upsert(record model.Record) error {

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"source_url": record.SourceURL,
		"thing_id":   record.ThingID,
		"feature_id": record.FeatureID,
	}
	_, err := repo.Collection.ReplaceOne(ctx, filter, record, options.Replace().SetUpsert(true))
	return err
}

// All returns every record in the inventory.
func (repo *MongoRepository) All() ([]model.Record, error) {

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := repo.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []model.Record
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// RemoveThing drops the shell record and every submodel record of a thing.
func (repo *MongoRepository) RemoveThing(sourceURL, thingID string) error {

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := repo.Collection.DeleteMany(ctx, bson.M{
		"source_url": sourceURL,
		"thing_id":   thingID,
	})
	return err
}

// RemoveSubmodel drops the record of a single feature submodel.
func (repo *MongoRepository) RemoveSubmodel(sourceURL, thingID, featureID string) error {

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := repo.Collection.DeleteOne(ctx, bson.M{
		"source_url": sourceURL,
		"thing_id":   thingID,
		"feature_id": featureID,
	})
	return err
}
