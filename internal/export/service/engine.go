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

// Package service implements the export engine: the reconciliation pass that
// mirrors configured things into the target registry, the cleanup pass that
// removes objects the policy no longer justifies, and the scheduler that runs
// both on a fixed interval.
package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/wso2/twin-export-service/internal/export/model"
	policymodel "github.com/wso2/twin-export-service/internal/exportpolicy/model"
	policyservice "github.com/wso2/twin-export-service/internal/exportpolicy/service"
	invmodel "github.com/wso2/twin-export-service/internal/inventory/model"
	invstore "github.com/wso2/twin-export-service/internal/inventory/store"
	"github.com/wso2/twin-export-service/internal/registry/source"
	"github.com/wso2/twin-export-service/internal/registry/target"
	"github.com/wso2/twin-export-service/internal/signature"
	syscontext "github.com/wso2/twin-export-service/internal/system/context"
	errors2 "github.com/wso2/twin-export-service/internal/system/errors"
	"github.com/wso2/twin-export-service/internal/system/log"
	"github.com/wso2/twin-export-service/internal/system/metrics"
)

// ExportServiceInterface runs the two passes of one synchronization cycle.
type ExportServiceInterface interface {
	RunCleanup(ctx context.Context, policy *policymodel.PolicyDocument) model.CleanupStats
	RunReconciliation(ctx context.Context, policy *policymodel.PolicyDocument) model.ReconcileStats
}

// ExportService is the default implementation of ExportServiceInterface. The
// target client and verifier are built per cycle from the freshly loaded
// policy; everything else is injected at construction.
type ExportService struct {
	source    source.ClientInterface
	resolver  policyservice.ResolverInterface
	inventory invstore.InventoryStoreInterface
	metrics   *metrics.Metrics

	newTarget   func(baseURL string) target.ClientInterface
	newVerifier func(publicKeyPath string) signature.VerifierInterface
}

// NewExportService creates an export service over the given collaborators.
func NewExportService(sourceClient source.ClientInterface, inventory invstore.InventoryStoreInterface,
	serviceMetrics *metrics.Metrics) *ExportService {

	return &ExportService{
		source:      sourceClient,
		resolver:    policyservice.GetResolver(),
		inventory:   inventory,
		metrics:     serviceMetrics,
		newTarget:   target.NewClient,
		newVerifier: signature.NewVerifier,
	}
}

// RunReconciliation performs one full mirroring pass over every configured
// source. A failure while processing one source is logged and the next source
// is attempted; it never aborts the pass.
func (s *ExportService) RunReconciliation(ctx context.Context, policy *policymodel.PolicyDocument) model.ReconcileStats {

	logger := cycleLogger(ctx)
	stats := model.ReconcileStats{}

	if policy.Empty() {
		logger.Debug("Export policy is empty, nothing to reconcile")
		return stats
	}
	if policy.Target.URL == "" {
		logger.Error("Target registry URL not configured, skipping export")
		return stats
	}

	targetClient := s.newTarget(policy.Target.URL)
	var verifier signature.VerifierInterface
	if policy.Security.VerifySignatures {
		verifier = s.newVerifier(policy.Security.PublicKeyPath)
	}

	for _, rule := range policy.DataToExport.Sources {
		logger.Info("Processing source", log.String("source", rule.SourceName), log.String("url", rule.SourceURL))
		if err := s.reconcileSource(ctx, logger, policy, rule, targetClient, verifier, &stats); err != nil {
			stats.SourceErrors++
			s.metrics.SourceErrors.Inc()
			logger.Error("Failed to process source, continuing with next",
				log.String("source", rule.SourceName), log.Error(err))
		}
	}
	return stats
}

func (s *ExportService) reconcileSource(ctx context.Context, logger *log.Logger, policy *policymodel.PolicyDocument,
	rule policymodel.SourceRule, targetClient target.ClientInterface, verifier signature.VerifierInterface,
	stats *model.ReconcileStats) error {

	things, err := s.source.ListThings(ctx, rule.SourceURL, rule.AuthHeader)
	if err != nil {
		return errors2.NewServerError(errors2.LIST_SOURCE_THINGS, err)
	}

	now := time.Now()
	for _, thing := range things {
		if thing.ID == "" {
			continue
		}
		features, err := s.source.ListFeatures(ctx, rule.SourceURL, rule.AuthHeader, thing.ID)
		if err != nil {
			logger.Error("Failed to list features, skipping thing", log.String("thing_id", thing.ID),
				log.Error(errors2.NewServerError(errors2.LIST_SOURCE_FEATURES, err)))
			continue
		}
		s.reconcileThing(ctx, logger, policy, rule, targetClient, verifier, thing.ID, features, now, stats)
	}
	return nil
}

// reconcileThing mirrors one thing. The shell is created lazily on the first
// configured feature; a feature that fails the signature gate keeps its shell
// and submodel but skips its property writes.
func (s *ExportService) reconcileThing(ctx context.Context, logger *log.Logger, policy *policymodel.PolicyDocument,
	rule policymodel.SourceRule, targetClient target.ClientInterface, verifier signature.VerifierInterface,
	thingID string, features map[string]source.Feature, now time.Time, stats *model.ReconcileStats) {

	shellEnsured := false
	for _, featureID := range sortedFeatureIDs(features) {
		selector, configured := s.resolver.Resolve(policy, rule.SourceURL, thingID, featureID, now)
		if !configured {
			continue
		}

		if !shellEnsured {
			logger.Info("Processing thing", log.String("thing_id", thingID))
			if err := s.ensureShell(ctx, logger, targetClient, rule.SourceURL, thingID); err != nil {
				logger.Error("Failed to ensure shell, skipping thing",
					log.String("thing_id", thingID), log.Error(err))
				return
			}
			shellEnsured = true
			stats.ThingsExported++
			s.metrics.ThingsExported.Inc()
		}

		submodelID := thingID + ":" + featureID
		if err := s.ensureSubmodel(ctx, logger, targetClient, rule.SourceURL, thingID, featureID, submodelID); err != nil {
			logger.Error("Failed to ensure submodel, skipping feature",
				log.String("submodel_id", submodelID), log.Error(err))
			continue
		}
		stats.SubmodelsEnsured++

		properties := features[featureID].Properties
		if verifier != nil && !verifier.Verify(properties) {
			stats.SignatureFailures++
			s.metrics.SignatureFailures.Inc()
			logger.Warn("Skipping feature due to signature verification failure",
				log.String("thing_id", thingID), log.String("feature_id", featureID))
			continue
		}

		filtered := filterProperties(properties, selector)
		for _, name := range sortedPropertyNames(filtered) {
			if err := s.upsertElement(ctx, targetClient, submodelID, name, filtered[name]); err != nil {
				logger.Error("Failed to upsert element",
					log.String("submodel_id", submodelID), log.String("element_id", name), log.Error(err))
				continue
			}
			stats.ElementsUpserted++
			s.metrics.ElementsUpserted.Inc()
		}

		if policy.Logging.LogFilteredItems {
			if excluded := excludedProperties(properties, filtered); len(excluded) > 0 {
				logger.Info("Filtered out properties",
					log.String("feature_id", featureID), log.Any("properties", excluded))
			}
		}
	}
}

func (s *ExportService) ensureShell(ctx context.Context, logger *log.Logger, targetClient target.ClientInterface,
	sourceURL, thingID string) error {

	exists, err := targetClient.GetShell(ctx, thingID)
	if err != nil {
		return errors2.NewServerError(errors2.ENSURE_TARGET_SHELL, err)
	}
	if !exists {
		if err := targetClient.CreateShell(ctx, thingID); err != nil {
			return errors2.NewServerError(errors2.ENSURE_TARGET_SHELL, err)
		}
		logger.Info("Created shell", log.String("thing_id", thingID))
	}
	s.record(logger, invmodel.Record{SourceURL: sourceURL, ThingID: thingID})
	return nil
}

func (s *ExportService) ensureSubmodel(ctx context.Context, logger *log.Logger, targetClient target.ClientInterface,
	sourceURL, thingID, featureID, submodelID string) error {

	exists, err := targetClient.GetSubmodel(ctx, submodelID)
	if err != nil {
		return errors2.NewServerError(errors2.ENSURE_TARGET_SUBMODEL, err)
	}
	if !exists {
		if err := targetClient.CreateSubmodel(ctx, submodelID); err != nil {
			return errors2.NewServerError(errors2.ENSURE_TARGET_SUBMODEL, err)
		}
		if err := targetClient.AttachSubmodel(ctx, thingID, submodelID); err != nil {
			return errors2.NewServerError(errors2.ENSURE_TARGET_SUBMODEL, err)
		}
		logger.Info("Created submodel", log.String("submodel_id", submodelID))
	}
	s.record(logger, invmodel.Record{
		SourceURL:  sourceURL,
		ThingID:    thingID,
		FeatureID:  featureID,
		SubmodelID: submodelID,
	})
	return nil
}

func (s *ExportService) upsertElement(ctx context.Context, targetClient target.ClientInterface,
	submodelID, elementID string, value interface{}) error {

	rendered := fmt.Sprintf("%v", value)
	exists, err := targetClient.GetElement(ctx, submodelID, elementID)
	if err != nil {
		return errors2.NewServerError(errors2.UPSERT_TARGET_ELEMENT, err)
	}
	if !exists {
		err = targetClient.CreateElement(ctx, submodelID, elementID, rendered)
	} else {
		err = targetClient.UpdateElementValue(ctx, submodelID, elementID, rendered)
	}
	if err != nil {
		return errors2.NewServerError(errors2.UPSERT_TARGET_ELEMENT, err)
	}
	return nil
}

// record stores what was mirrored so the cleanup pass can find objects whose
// thing later vanishes from the source. Inventory failures never block the
// mirroring itself.
func (s *ExportService) record(logger *log.Logger, record invmodel.Record) {

	record.MirroredAt = time.Now().Unix()
	if err := s.inventory.Upsert(record); err != nil {
		logger.Warn("Failed to record inventory entry", log.String("thing_id", record.ThingID), log.Error(err))
	}
}

// filterProperties applies the property selector. The wildcard exports every
// property the source currently reports.
func filterProperties(properties map[string]interface{}, selector []string) map[string]interface{} {

	if policyservice.IsWildcardSelector(selector) {
		return properties
	}
	filtered := make(map[string]interface{})
	for _, name := range selector {
		if value, present := properties[name]; present {
			filtered[name] = value
		}
	}
	return filtered
}

func excludedProperties(properties, filtered map[string]interface{}) []string {

	var excluded []string
	for name := range properties {
		if _, present := filtered[name]; !present {
			excluded = append(excluded, name)
		}
	}
	sort.Strings(excluded)
	return excluded
}

func sortedFeatureIDs(features map[string]source.Feature) []string {

	ids := make([]string, 0, len(features))
	for id := range features {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func sortedPropertyNames(properties map[string]interface{}) []string {

	names := make([]string, 0, len(properties))
	for name := range properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func cycleLogger(ctx context.Context) *log.Logger {

	if traceID := syscontext.GetTraceID(ctx); traceID != "" {
		return log.GetLogger().With(log.String("trace_id", traceID))
	}
	return log.GetLogger()
}
