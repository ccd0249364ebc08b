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

package model

// Record is one mirrored target object. The inventory lets the cleanup pass
// find objects whose source thing has disappeared entirely, which a purely
// policy-driven sweep would never visit again.
type Record struct {
	SourceURL string `bson:"source_url" json:"source_url"`
	ThingID   string `bson:"thing_id" json:"thing_id"`
	// FeatureID is empty for the shell record of a thing.
	FeatureID  string `bson:"feature_id" json:"feature_id"`
	SubmodelID string `bson:"submodel_id" json:"submodel_id"`
	MirroredAt int64  `bson:"mirrored_at" json:"mirrored_at"`
}

// IsShell reports whether the record tracks a shell rather than a submodel.
func (r Record) IsShell() bool {

	return r.FeatureID == ""
}
