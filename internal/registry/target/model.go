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

package target

// Shell mirrors one exported thing in the target registry.
type Shell struct {
	ID               string           `json:"id"`
	IDShort          string           `json:"idShort"`
	AssetInformation AssetInformation `json:"assetInformation"`
}

type AssetInformation struct {
	AssetKind     string `json:"assetKind"`
	GlobalAssetID string `json:"globalAssetId"`
}

// Submodel mirrors one exported feature, keyed thingID:featureID.
type Submodel struct {
	ID               string           `json:"id"`
	IDShort          string           `json:"idShort"`
	AssetInformation AssetInformation `json:"assetInformation"`
}

// SubmodelReference links a submodel to its shell.
type SubmodelReference struct {
	Type string         `json:"type"`
	Keys []ReferenceKey `json:"keys"`
}

type ReferenceKey struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Element mirrors a single exported property as a string-typed value.
type Element struct {
	IDShort   string `json:"idShort"`
	ModelType string `json:"modelType"`
	ValueType string `json:"valueType"`
	Value     string `json:"value"`
}
