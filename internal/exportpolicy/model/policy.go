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

// Wildcard matches any thing id, feature id or property name in a rule.
const Wildcard = "*"

// PolicyDocument is the declarative export policy, re-read every cycle so
// edits take effect without a restart.
type PolicyDocument struct {
	DataToExport DataToExport   `yaml:"data_to_export"`
	Target       TargetConfig   `yaml:"target"`
	Security     SecurityConfig `yaml:"security"`
	Logging      LoggingConfig  `yaml:"logging"`
}

type DataToExport struct {
	Sources []SourceRule `yaml:"sources"`
}

// SourceRule selects one source registry and the things mirrored from it.
// Rules are evaluated in declaration order, first match wins.
type SourceRule struct {
	SourceURL  string      `yaml:"source_url"`
	SourceName string      `yaml:"source_name"`
	AuthHeader string      `yaml:"auth_header"`
	Things     []ThingRule `yaml:"things"`
}

type ThingRule struct {
	// ThingID is an exact thing id or the wildcard.
	ThingID string `yaml:"thing_id"`
	// Downtime suppresses the whole thing while now falls inside the window.
	// Absent means never in downtime.
	Downtime *DowntimeWindow `yaml:"downtime"`
	Features []FeatureRule   `yaml:"features"`
}

// DowntimeWindow bounds are ISO 8601 timestamps. Malformed bounds disable the
// window rather than failing the policy load.
type DowntimeWindow struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

type FeatureRule struct {
	// FeatureID is an exact feature id or the wildcard.
	FeatureID string `yaml:"feature_id"`
	// Properties lists exported property names; the wildcard selects every
	// property present on the source feature at sync time.
	Properties []string `yaml:"properties"`
}

type TargetConfig struct {
	URL string `yaml:"url"`
}

type SecurityConfig struct {
	VerifySignatures bool   `yaml:"verify_signatures"`
	PublicKeyPath    string `yaml:"public_key_path"`
}

type LoggingConfig struct {
	LogFilteredItems bool `yaml:"log_filtered_items"`
}

// Empty reports whether the policy exports nothing at all.
func (p *PolicyDocument) Empty() bool {

	return p == nil || len(p.DataToExport.Sources) == 0
}
