package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/wso2/twin-export-service/internal/exportpolicy/model"
)

const sourceURL = "http://ditto:8080/api/2"

func policyWith(things ...model.ThingRule) *model.PolicyDocument {
	return &model.PolicyDocument{
		DataToExport: model.DataToExport{
			Sources: []model.SourceRule{
				{SourceURL: sourceURL, SourceName: "factory", Things: things},
			},
		},
	}
}

func TestResolveExactMatch(t *testing.T) {
	policy := policyWith(model.ThingRule{
		ThingID: "factory:valve-1",
		Features: []model.FeatureRule{
			{FeatureID: "valve", Properties: []string{"open", "timestamp"}},
		},
	})

	selector, ok := GetResolver().Resolve(policy, sourceURL, "factory:valve-1", "valve", time.Now())

	assert.True(t, ok)
	assert.Equal(t, []string{"open", "timestamp"}, selector)
}

func TestResolveFirstMatchWinsOverSpecificity(t *testing.T) {
	// A wildcard rule declared before an exact-id rule must win: declaration
	// order decides, not specificity.
	policy := policyWith(
		model.ThingRule{
			ThingID:  model.Wildcard,
			Features: []model.FeatureRule{{FeatureID: model.Wildcard, Properties: []string{"open"}}},
		},
		model.ThingRule{
			ThingID:  "factory:valve-1",
			Features: []model.FeatureRule{{FeatureID: model.Wildcard, Properties: []string{"open", "pressure"}}},
		},
	)

	selector, ok := GetResolver().Resolve(policy, sourceURL, "factory:valve-1", "valve", time.Now())

	assert.True(t, ok)
	assert.Equal(t, []string{"open"}, selector)
}

func TestResolveDowntimeSuppressesWholeThing(t *testing.T) {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.Local)
	policy := policyWith(model.ThingRule{
		ThingID: "factory:valve-1",
		Downtime: &model.DowntimeWindow{
			Start: "2026-08-23T00:00:00",
			End:   "2026-08-24T00:00:00",
		},
		Features: []model.FeatureRule{{FeatureID: model.Wildcard, Properties: []string{model.Wildcard}}},
	})

	_, ok := GetResolver().Resolve(policy, sourceURL, "factory:valve-1", "valve", now)
	assert.False(t, ok, "every feature of a thing in downtime must be unconfigured")

	_, ok = GetResolver().Resolve(policy, sourceURL, "factory:valve-1", "anything-else", now)
	assert.False(t, ok)
}

func TestResolveOutsideDowntimeWindow(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.Local)
	policy := policyWith(model.ThingRule{
		ThingID: "factory:valve-1",
		Downtime: &model.DowntimeWindow{
			Start: "2026-08-23T00:00:00",
			End:   "2026-08-24T00:00:00",
		},
		Features: []model.FeatureRule{{FeatureID: "valve", Properties: []string{"open"}}},
	})

	selector, ok := GetResolver().Resolve(policy, sourceURL, "factory:valve-1", "valve", now)

	assert.True(t, ok)
	assert.Equal(t, []string{"open"}, selector)
}

func TestResolveMissingDowntimeNeverSuppresses(t *testing.T) {
	policy := policyWith(model.ThingRule{
		ThingID:  "factory:valve-1",
		Features: []model.FeatureRule{{FeatureID: "valve", Properties: []string{"open"}}},
	})

	_, ok := GetResolver().Resolve(policy, sourceURL, "factory:valve-1", "valve", time.Now())
	assert.True(t, ok)
}

func TestResolveMalformedDowntimeIsIgnored(t *testing.T) {
	policy := policyWith(model.ThingRule{
		ThingID:  "factory:valve-1",
		Downtime: &model.DowntimeWindow{Start: "not-a-timestamp", End: "also bad"},
		Features: []model.FeatureRule{{FeatureID: "valve", Properties: []string{"open"}}},
	})

	_, ok := GetResolver().Resolve(policy, sourceURL, "factory:valve-1", "valve", time.Now())
	assert.True(t, ok, "malformed downtime must not suppress the thing or crash the resolver")
}

func TestResolveUnconfigured(t *testing.T) {
	policy := policyWith(model.ThingRule{
		ThingID:  "factory:valve-1",
		Features: []model.FeatureRule{{FeatureID: "valve", Properties: []string{"open"}}},
	})

	resolver := GetResolver()

	_, ok := resolver.Resolve(policy, "http://other:8080/api/2", "factory:valve-1", "valve", time.Now())
	assert.False(t, ok, "unknown source")

	_, ok = resolver.Resolve(policy, sourceURL, "factory:pump-7", "valve", time.Now())
	assert.False(t, ok, "unknown thing")

	_, ok = resolver.Resolve(policy, sourceURL, "factory:valve-1", "motor", time.Now())
	assert.False(t, ok, "unknown feature")

	_, ok = resolver.Resolve(nil, sourceURL, "factory:valve-1", "valve", time.Now())
	assert.False(t, ok, "nil policy")
}

func TestIsWildcardSelector(t *testing.T) {
	assert.True(t, IsWildcardSelector([]string{model.Wildcard}))
	assert.True(t, IsWildcardSelector([]string{"open", model.Wildcard}))
	assert.False(t, IsWildcardSelector([]string{"open"}))
	assert.False(t, IsWildcardSelector(nil))
}
