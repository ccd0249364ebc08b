package service

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	policymodel "github.com/wso2/twin-export-service/internal/exportpolicy/model"
	invstore "github.com/wso2/twin-export-service/internal/inventory/store"
	"github.com/wso2/twin-export-service/internal/registry/source"
	"github.com/wso2/twin-export-service/internal/registry/target"
	"github.com/wso2/twin-export-service/internal/signature"
	"github.com/wso2/twin-export-service/internal/system/metrics"
)

const (
	testSourceURL = "http://ditto:8080/api/2"
	testTargetURL = "http://basyx:8081"
	testThingID   = "factory:valve-1"
)

type fakeSource struct {
	things    map[string][]source.Thing
	features  map[string]map[string]source.Feature
	thingsErr error
}

func (f *fakeSource) ListThings(_ context.Context, sourceURL, _ string) ([]source.Thing, error) {

	if f.thingsErr != nil {
		return nil, f.thingsErr
	}
	return f.things[sourceURL], nil
}

func (f *fakeSource) ListFeatures(_ context.Context, _, _, thingID string) (map[string]source.Feature, error) {

	return f.features[thingID], nil
}

type fakeTarget struct {
	shells       map[string]bool
	submodels    map[string]bool
	submodelRefs map[string][]string
	elements     map[string]map[string]string

	shellCreates    int
	submodelCreates int
	elementCreates  int
	elementUpdates  int
}

func newFakeTarget() *fakeTarget {

	return &fakeTarget{
		shells:       make(map[string]bool),
		submodels:    make(map[string]bool),
		submodelRefs: make(map[string][]string),
		elements:     make(map[string]map[string]string),
	}
}

func (f *fakeTarget) GetShell(_ context.Context, thingID string) (bool, error) {
	return f.shells[thingID], nil
}

func (f *fakeTarget) CreateShell(_ context.Context, thingID string) error {
	f.shells[thingID] = true
	f.shellCreates++
	return nil
}

func (f *fakeTarget) DeleteShell(_ context.Context, thingID string) error {
	delete(f.shells, thingID)
	return nil
}

func (f *fakeTarget) GetSubmodel(_ context.Context, submodelID string) (bool, error) {
	return f.submodels[submodelID], nil
}

func (f *fakeTarget) CreateSubmodel(_ context.Context, submodelID string) error {
	f.submodels[submodelID] = true
	f.submodelCreates++
	return nil
}

func (f *fakeTarget) AttachSubmodel(_ context.Context, thingID, submodelID string) error {
	f.submodelRefs[thingID] = append(f.submodelRefs[thingID], submodelID)
	return nil
}

func (f *fakeTarget) DeleteSubmodel(_ context.Context, submodelID string) error {
	delete(f.submodels, submodelID)
	delete(f.elements, submodelID)
	return nil
}

func (f *fakeTarget) GetElement(_ context.Context, submodelID, elementID string) (bool, error) {
	_, ok := f.elements[submodelID][elementID]
	return ok, nil
}

func (f *fakeTarget) CreateElement(_ context.Context, submodelID, elementID, value string) error {
	if f.elements[submodelID] == nil {
		f.elements[submodelID] = make(map[string]string)
	}
	f.elements[submodelID][elementID] = value
	f.elementCreates++
	return nil
}

func (f *fakeTarget) UpdateElementValue(_ context.Context, submodelID, elementID, value string) error {
	f.elements[submodelID][elementID] = value
	f.elementUpdates++
	return nil
}

func (f *fakeTarget) DeleteElement(_ context.Context, submodelID, elementID string) error {
	delete(f.elements[submodelID], elementID)
	return nil
}

type fakeVerifier struct {
	verified bool
}

func (f fakeVerifier) Verify(map[string]interface{}) bool {
	return f.verified
}

func newTestService(src *fakeSource, tgt *fakeTarget) *ExportService {

	svc := NewExportService(src, invstore.NewMemoryStore(), metrics.New(prometheus.NewRegistry()))
	svc.newTarget = func(string) target.ClientInterface { return tgt }
	return svc
}

func testPolicy(things ...policymodel.ThingRule) *policymodel.PolicyDocument {

	return &policymodel.PolicyDocument{
		DataToExport: policymodel.DataToExport{
			Sources: []policymodel.SourceRule{{
				SourceURL:  testSourceURL,
				SourceName: "factory",
				Things:     things,
			}},
		},
		Target: policymodel.TargetConfig{URL: testTargetURL},
	}
}

func valveSource(properties map[string]interface{}) *fakeSource {

	return &fakeSource{
		things: map[string][]source.Thing{
			testSourceURL: {{ID: testThingID}},
		},
		features: map[string]map[string]source.Feature{
			testThingID: {"valve": {Properties: properties}},
		},
	}
}

func TestReconciliationMirrorsConfiguredFeature(t *testing.T) {

	src := valveSource(map[string]interface{}{"open": true, "pressure": 4.2})
	tgt := newFakeTarget()
	svc := newTestService(src, tgt)

	policy := testPolicy(policymodel.ThingRule{
		ThingID:  testThingID,
		Features: []policymodel.FeatureRule{{FeatureID: "valve", Properties: []string{"open"}}},
	})
	stats := svc.RunReconciliation(context.Background(), policy)

	assert.True(t, tgt.shells[testThingID])
	assert.True(t, tgt.submodels[testThingID+":valve"])
	assert.Equal(t, []string{testThingID + ":valve"}, tgt.submodelRefs[testThingID])
	assert.Equal(t, map[string]string{"open": "true"}, tgt.elements[testThingID+":valve"])
	assert.Equal(t, 1, stats.ThingsExported)
	assert.Equal(t, 1, stats.ElementsUpserted)
}

func TestReconciliationIsIdempotent(t *testing.T) {

	src := valveSource(map[string]interface{}{"open": true})
	tgt := newFakeTarget()
	svc := newTestService(src, tgt)

	policy := testPolicy(policymodel.ThingRule{
		ThingID:  policymodel.Wildcard,
		Features: []policymodel.FeatureRule{{FeatureID: policymodel.Wildcard, Properties: []string{policymodel.Wildcard}}},
	})
	svc.RunReconciliation(context.Background(), policy)
	svc.RunReconciliation(context.Background(), policy)

	assert.Equal(t, 1, tgt.shellCreates)
	assert.Equal(t, 1, tgt.submodelCreates)
	assert.Equal(t, 1, tgt.elementCreates)
	assert.Equal(t, 1, tgt.elementUpdates)
	assert.Equal(t, "true", tgt.elements[testThingID+":valve"]["open"])
}

func TestWildcardSelectorPicksUpNewProperties(t *testing.T) {

	src := valveSource(map[string]interface{}{"open": true})
	tgt := newFakeTarget()
	svc := newTestService(src, tgt)

	policy := testPolicy(policymodel.ThingRule{
		ThingID:  testThingID,
		Features: []policymodel.FeatureRule{{FeatureID: "valve", Properties: []string{policymodel.Wildcard}}},
	})
	svc.RunReconciliation(context.Background(), policy)

	src.features[testThingID] = map[string]source.Feature{
		"valve": {Properties: map[string]interface{}{"open": true, "pressure": 7}},
	}
	svc.RunReconciliation(context.Background(), policy)

	assert.Equal(t, map[string]string{"open": "true", "pressure": "7"}, tgt.elements[testThingID+":valve"])
}

func TestSignatureFailureSkipsPropertyWrites(t *testing.T) {

	src := valveSource(map[string]interface{}{"open": true, "signature": "bogus"})
	tgt := newFakeTarget()
	svc := newTestService(src, tgt)
	svc.newVerifier = func(string) signature.VerifierInterface { return fakeVerifier{verified: false} }

	policy := testPolicy(policymodel.ThingRule{
		ThingID:  testThingID,
		Features: []policymodel.FeatureRule{{FeatureID: "valve", Properties: []string{policymodel.Wildcard}}},
	})
	policy.Security.VerifySignatures = true
	stats := svc.RunReconciliation(context.Background(), policy)

	// Shell and submodel stay, only the property writes are skipped.
	assert.True(t, tgt.shells[testThingID])
	assert.True(t, tgt.submodels[testThingID+":valve"])
	assert.Empty(t, tgt.elements[testThingID+":valve"])
	assert.Equal(t, 1, stats.SignatureFailures)
}

func TestUnconfiguredThingLeavesNoTrace(t *testing.T) {

	src := valveSource(map[string]interface{}{"open": true})
	tgt := newFakeTarget()
	svc := newTestService(src, tgt)

	policy := testPolicy(policymodel.ThingRule{
		ThingID:  "factory:pump-7",
		Features: []policymodel.FeatureRule{{FeatureID: policymodel.Wildcard, Properties: []string{policymodel.Wildcard}}},
	})
	stats := svc.RunReconciliation(context.Background(), policy)

	assert.Empty(t, tgt.shells)
	assert.Empty(t, tgt.submodels)
	assert.Zero(t, stats.ThingsExported)
}

func TestReconciliationIsolatesSourceFailures(t *testing.T) {

	src := &fakeSource{thingsErr: errors.New("connection refused")}
	tgt := newFakeTarget()
	svc := newTestService(src, tgt)

	policy := testPolicy(policymodel.ThingRule{
		ThingID:  policymodel.Wildcard,
		Features: []policymodel.FeatureRule{{FeatureID: policymodel.Wildcard, Properties: []string{policymodel.Wildcard}}},
	})
	stats := svc.RunReconciliation(context.Background(), policy)

	assert.Equal(t, 1, stats.SourceErrors)
	assert.Empty(t, tgt.shells)
}

func TestReconciliationRecordsInventory(t *testing.T) {

	src := valveSource(map[string]interface{}{"open": true})
	tgt := newFakeTarget()
	svc := newTestService(src, tgt)

	policy := testPolicy(policymodel.ThingRule{
		ThingID:  testThingID,
		Features: []policymodel.FeatureRule{{FeatureID: "valve", Properties: []string{policymodel.Wildcard}}},
	})
	svc.RunReconciliation(context.Background(), policy)

	records, err := svc.inventory.All()
	require.NoError(t, err)
	require.Len(t, records, 2)

	shells, submodels := 0, 0
	for _, record := range records {
		assert.Equal(t, testSourceURL, record.SourceURL)
		assert.Equal(t, testThingID, record.ThingID)
		if record.IsShell() {
			shells++
		} else {
			submodels++
			assert.Equal(t, testThingID+":valve", record.SubmodelID)
		}
	}
	assert.Equal(t, 1, shells)
	assert.Equal(t, 1, submodels)
}
