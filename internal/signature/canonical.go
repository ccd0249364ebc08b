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

package signature

import (
	"encoding/json"

	"github.com/wso2/twin-export-service/internal/system/constants"
)

// Canonicalize serializes a property bundle to the byte-stable form that is
// signed and verified: JSON with keys in sorted order, the signature property
// excluded. Producer and verifier must agree on these bytes exactly, so any
// change here breaks every signature already issued.
func Canonicalize(properties map[string]interface{}) ([]byte, error) {

	payload := make(map[string]interface{}, len(properties))
	for key, value := range properties {
		if key == constants.SignatureProperty {
			continue
		}
		payload[key] = value
	}
	// encoding/json marshals map keys in sorted order, at every nesting level.
	return json.Marshal(payload)
}
