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

package source

// Thing is a source-registry entity representing one physical or logical
// device. Only the id is consumed here; feature content is fetched separately.
type Thing struct {
	ID string `json:"thingId"`
}

// Feature is one named facet of a thing, holding its property bundle. The
// bundle may include a signature property signing the rest.
type Feature struct {
	Properties map[string]interface{} `json:"properties"`
}
