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
	"context"
	"time"

	"github.com/wso2/twin-export-service/internal/export/model"
	policymodel "github.com/wso2/twin-export-service/internal/exportpolicy/model"
	policyservice "github.com/wso2/twin-export-service/internal/exportpolicy/service"
	"github.com/wso2/twin-export-service/internal/registry/source"
	"github.com/wso2/twin-export-service/internal/registry/target"
	errors2 "github.com/wso2/twin-export-service/internal/system/errors"
	"github.com/wso2/twin-export-service/internal/system/log"
)

const (
	deleteShell    = "shell"
	deleteSubmodel = "submodel"
	deleteElement  = "element"
)

// deletion is one queued removal. Deletions are collected for the whole pass
// first and executed afterwards, so a slow delete never skews the policy
// evaluation of later things.
type deletion struct {
	kind       string
	sourceURL  string
	thingID    string
	featureID  string
	submodelID string
	elementID  string
}

// RunCleanup removes target objects the current policy no longer justifies.
// It runs before reconciliation so stale data never outlives a policy change
// by more than one sleep interval. Deletion failures are logged and counted;
// they never abort the pass.
func (s *ExportService) RunCleanup(ctx context.Context, policy *policymodel.PolicyDocument) model.CleanupStats {

	logger := cycleLogger(ctx)
	stats := model.CleanupStats{}

	if policy.Target.URL == "" {
		logger.Debug("Target registry URL not configured, skipping cleanup")
		return stats
	}
	targetClient := s.newTarget(policy.Target.URL)

	var deletions []deletion
	// liveThings holds, per source successfully listed this cycle, the set of
	// thing ids the source still reports. The orphan sweep only trusts it for
	// sources that actually answered.
	liveThings := make(map[string]map[string]bool)
	now := time.Now()

	for _, rule := range policy.DataToExport.Sources {
		things, err := s.source.ListThings(ctx, rule.SourceURL, rule.AuthHeader)
		if err != nil {
			logger.Error("Failed to list things for cleanup, skipping source",
				log.String("source", rule.SourceName), log.Error(err))
			continue
		}
		live := make(map[string]bool, len(things))
		liveThings[rule.SourceURL] = live

		for _, thing := range things {
			if thing.ID == "" {
				continue
			}
			live[thing.ID] = true
			features, err := s.source.ListFeatures(ctx, rule.SourceURL, rule.AuthHeader, thing.ID)
			if err != nil {
				logger.Error("Failed to list features for cleanup, skipping thing",
					log.String("thing_id", thing.ID), log.Error(err))
				continue
			}
			deletions = append(deletions, s.planThingCleanup(logger, policy, rule.SourceURL, thing.ID, features, now)...)
		}
	}

	s.executeDeletions(ctx, logger, targetClient, deletions, &stats)
	s.sweepOrphans(ctx, logger, targetClient, liveThings, &stats)
	return stats
}

// planThingCleanup decides what to delete for one thing. A thing with no
// configured feature loses its shell and every feature submodel; otherwise
// unconfigured features lose their submodel and explicit selectors lose the
// elements of properties the selector no longer names.
func (s *ExportService) planThingCleanup(logger *log.Logger, policy *policymodel.PolicyDocument,
	sourceURL, thingID string, features map[string]source.Feature, now time.Time) []deletion {

	configured := make(map[string][]string)
	for featureID := range features {
		if selector, ok := s.resolver.Resolve(policy, sourceURL, thingID, featureID, now); ok {
			configured[featureID] = selector
		}
	}

	var deletions []deletion
	if len(configured) == 0 {
		logger.Info("Thing no longer configured, removing shell", log.String("thing_id", thingID))
		deletions = append(deletions, deletion{kind: deleteShell, sourceURL: sourceURL, thingID: thingID})
		for _, featureID := range sortedFeatureIDs(features) {
			deletions = append(deletions, deletion{
				kind:       deleteSubmodel,
				sourceURL:  sourceURL,
				thingID:    thingID,
				featureID:  featureID,
				submodelID: thingID + ":" + featureID,
			})
		}
		return deletions
	}

	for _, featureID := range sortedFeatureIDs(features) {
		submodelID := thingID + ":" + featureID
		selector, ok := configured[featureID]
		if !ok {
			logger.Info("Feature no longer configured, removing submodel", log.String("submodel_id", submodelID))
			deletions = append(deletions, deletion{
				kind:       deleteSubmodel,
				sourceURL:  sourceURL,
				thingID:    thingID,
				featureID:  featureID,
				submodelID: submodelID,
			})
			continue
		}
		if policyservice.IsWildcardSelector(selector) {
			continue
		}
		keep := make(map[string]bool, len(selector))
		for _, name := range selector {
			keep[name] = true
		}
		for _, name := range sortedPropertyNames(features[featureID].Properties) {
			if !keep[name] {
				deletions = append(deletions, deletion{
					kind:       deleteElement,
					submodelID: submodelID,
					elementID:  name,
				})
			}
		}
	}
	return deletions
}

func (s *ExportService) executeDeletions(ctx context.Context, logger *log.Logger,
	targetClient target.ClientInterface, deletions []deletion, stats *model.CleanupStats) {

	for _, d := range deletions {
		var err error
		switch d.kind {
		case deleteShell:
			err = targetClient.DeleteShell(ctx, d.thingID)
		case deleteSubmodel:
			err = targetClient.DeleteSubmodel(ctx, d.submodelID)
		case deleteElement:
			err = targetClient.DeleteElement(ctx, d.submodelID, d.elementID)
		}
		if err != nil {
			stats.Failures++
			s.metrics.CleanupFailures.Inc()
			logger.Error("Failed to delete target object", log.String("kind", d.kind),
				log.String("thing_id", d.thingID),
				log.Error(errors2.NewServerError(errors2.DELETE_TARGET_OBJECT, err)))
			continue
		}
		s.metrics.ObjectsDeleted.Inc()

		switch d.kind {
		case deleteShell:
			stats.ShellsDeleted++
			s.dropInventory(logger, s.inventory.RemoveThing(d.sourceURL, d.thingID))
		case deleteSubmodel:
			stats.SubmodelsDeleted++
			s.dropInventory(logger, s.inventory.RemoveSubmodel(d.sourceURL, d.thingID, d.featureID))
		case deleteElement:
			stats.ElementsDeleted++
		}
	}
}

// sweepOrphans deletes mirrored objects whose thing vanished from the source
// entirely. Without the inventory these would never be revisited, because the
// policy walk only enumerates things the source still reports.
func (s *ExportService) sweepOrphans(ctx context.Context, logger *log.Logger,
	targetClient target.ClientInterface, liveThings map[string]map[string]bool, stats *model.CleanupStats) {

	records, err := s.inventory.All()
	if err != nil {
		logger.Error("Failed to read inventory for orphan sweep", log.Error(err))
		return
	}

	for _, record := range records {
		live, fetched := liveThings[record.SourceURL]
		if !fetched || live[record.ThingID] {
			continue
		}

		var err error
		if record.IsShell() {
			err = targetClient.DeleteShell(ctx, record.ThingID)
		} else {
			submodelID := record.SubmodelID
			if submodelID == "" {
				submodelID = record.ThingID + ":" + record.FeatureID
			}
			err = targetClient.DeleteSubmodel(ctx, submodelID)
		}
		if err != nil {
			stats.Failures++
			s.metrics.CleanupFailures.Inc()
			logger.Error("Failed to delete orphaned target object", log.String("thing_id", record.ThingID),
				log.Error(errors2.NewServerError(errors2.DELETE_TARGET_OBJECT, err)))
			continue
		}
		stats.OrphansDeleted++
		s.metrics.ObjectsDeleted.Inc()
		logger.Info("Removed orphaned target object",
			log.String("thing_id", record.ThingID), log.String("feature_id", record.FeatureID))
		s.dropInventory(logger, s.inventory.RemoveSubmodel(record.SourceURL, record.ThingID, record.FeatureID))
	}
}

func (s *ExportService) dropInventory(logger *log.Logger, err error) {

	if err != nil {
		logger.Warn("Failed to drop inventory entry", log.Error(err))
	}
}
