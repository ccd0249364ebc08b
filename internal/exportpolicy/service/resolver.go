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

package service

import (
	"fmt"
	"time"

	"github.com/wso2/twin-export-service/internal/exportpolicy/model"
	"github.com/wso2/twin-export-service/internal/system/log"
)

// ResolverInterface decides whether a (source, thing, feature) triple is
// exported and, if so, which properties.
type ResolverInterface interface {
	Resolve(policy *model.PolicyDocument, sourceURL, thingID, featureID string, now time.Time) ([]string, bool)
}

// Resolver is the default implementation of ResolverInterface.
type Resolver struct{}

// GetResolver returns the export policy resolver.
func GetResolver() ResolverInterface {

	return &Resolver{}
}

// Resolve walks the policy in declaration order and returns the property
// selector for the first matching rule. The second return value is false when
// the triple is unconfigured (no match anywhere, or the thing is inside its
// downtime window). Matching is first-match-wins at every level; the resolver
// never searches for a more specific rule once a rule has matched.
func (r *Resolver) Resolve(policy *model.PolicyDocument, sourceURL, thingID, featureID string, now time.Time) ([]string, bool) {

	if policy == nil {
		return nil, false
	}

	for _, source := range policy.DataToExport.Sources {
		if source.SourceURL != sourceURL {
			continue
		}
		for _, thing := range source.Things {
			if thing.ThingID != thingID && thing.ThingID != model.Wildcard {
				continue
			}
			// Downtime suppresses the whole thing for this cycle, before any
			// feature rule is consulted.
			if inDowntime(thing.Downtime, now) {
				log.GetLogger().Debug(fmt.Sprintf(
					"Skipping thing %s due to downtime from %s to %s",
					thingID, thing.Downtime.Start, thing.Downtime.End))
				return nil, false
			}
			for _, feature := range thing.Features {
				if feature.FeatureID == featureID || feature.FeatureID == model.Wildcard {
					return feature.Properties, true
				}
			}
			return nil, false
		}
		return nil, false
	}
	return nil, false
}

// IsWildcardSelector reports whether the selector exports every live property.
func IsWildcardSelector(selector []string) bool {

	for _, property := range selector {
		if property == model.Wildcard {
			return true
		}
	}
	return false
}

// inDowntime reports whether now falls inside the window. A nil window or a
// window with malformed bounds never applies.
func inDowntime(window *model.DowntimeWindow, now time.Time) bool {

	if window == nil {
		return false
	}
	start, ok := parseTimestamp(window.Start)
	if !ok {
		return false
	}
	end, ok := parseTimestamp(window.End)
	if !ok {
		return false
	}
	return !now.Before(start) && !now.After(end)
}

func parseTimestamp(value string) (time.Time, bool) {

	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if ts, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return ts, true
		}
	}
	log.GetLogger().Warn(fmt.Sprintf("Ignoring malformed downtime timestamp: %q", value))
	return time.Time{}, false
}
