package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	policymodel "github.com/wso2/twin-export-service/internal/exportpolicy/model"
)

type fakePolicyStore struct {
	policy *policymodel.PolicyDocument
}

func (f *fakePolicyStore) Load() *policymodel.PolicyDocument {
	return f.policy
}

func TestSchedulerRunCycleRecordsStatus(t *testing.T) {

	src := valveSource(map[string]interface{}{"open": true})
	tgt := newFakeTarget()
	svc := newTestService(src, tgt)

	policy := testPolicy(policymodel.ThingRule{
		ThingID:  testThingID,
		Features: []policymodel.FeatureRule{{FeatureID: policymodel.Wildcard, Properties: []string{policymodel.Wildcard}}},
	})
	scheduler := NewScheduler(&fakePolicyStore{policy: policy}, svc, 5)

	status := scheduler.RunCycle(context.Background())

	assert.NotEmpty(t, status.TraceID)
	assert.Equal(t, 1, status.Reconcile.ThingsExported)
	assert.False(t, status.FinishedAt.Before(status.StartedAt))

	recorded := GetLastCycleStatus()
	require.NotNil(t, recorded)
	assert.Equal(t, status.TraceID, recorded.TraceID)
}

func TestSchedulerRunHonorsStopSignal(t *testing.T) {

	svc := newTestService(&fakeSource{}, newFakeTarget())
	scheduler := NewScheduler(&fakePolicyStore{policy: &policymodel.PolicyDocument{}}, svc, 60)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		scheduler.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop after context cancellation")
	}
}
