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

package errors

const errorPrefix = "TES-"

var (
	// Server error codes

	LOAD_EXPORT_POLICY = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Error while loading the export policy document.",
	}

	LIST_SOURCE_THINGS = ErrorMessage{
		Code:    errorPrefix + "15002",
		Message: "Error while listing things from the source registry.",
	}

	LIST_SOURCE_FEATURES = ErrorMessage{
		Code:    errorPrefix + "15003",
		Message: "Error while listing features from the source registry.",
	}

	ENSURE_TARGET_SHELL = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Error while creating a shell in the target registry.",
	}

	ENSURE_TARGET_SUBMODEL = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Error while creating a submodel in the target registry.",
	}

	UPSERT_TARGET_ELEMENT = ErrorMessage{
		Code:    errorPrefix + "15006",
		Message: "Error while writing a submodel element to the target registry.",
	}

	DELETE_TARGET_OBJECT = ErrorMessage{
		Code:    errorPrefix + "15007",
		Message: "Error while deleting an object from the target registry.",
	}

	RECORD_INVENTORY = ErrorMessage{
		Code:    errorPrefix + "15008",
		Message: "Error while recording a mirrored object in the inventory.",
	}

	FETCH_INVENTORY = ErrorMessage{
		Code:    errorPrefix + "15009",
		Message: "Error while reading the mirrored-object inventory.",
	}

	REMOVE_INVENTORY = ErrorMessage{
		Code:    errorPrefix + "15010",
		Message: "Error while removing entries from the mirrored-object inventory.",
	}

	// Client error codes

	UNAUTHORIZED_REQUEST = ErrorMessage{
		Code:    errorPrefix + "11001",
		Message: "Unauthorized request.",
	}
)
