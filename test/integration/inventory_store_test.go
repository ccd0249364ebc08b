package integration

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	invmodel "github.com/wso2/twin-export-service/internal/inventory/model"
	invstore "github.com/wso2/twin-export-service/internal/inventory/store"
	"github.com/wso2/twin-export-service/internal/system/config"
	"github.com/wso2/twin-export-service/test/setup"
)

var postgres *setup.TestPostgres

func TestMain(m *testing.M) {
	if os.Getenv("TES_INTEGRATION_TESTS") == "" {
		os.Exit(0)
	}

	ctx := context.Background()
	var err error
	postgres, err = setup.SetupTestPostgres(ctx)
	if err != nil {
		panic(err)
	}

	user, password, database := postgres.Credentials()
	cfg := &config.Config{
		DataSource: config.DataSourceConfig{
			Type:     "postgres",
			Hostname: postgres.Host,
			Port:     postgres.Port,
			Name:     database,
			Username: user,
			Password: password,
			SSLMode:  "disable",
		},
	}
	if err := config.InitializeTESRuntime("", cfg); err != nil {
		panic(err)
	}

	code := m.Run()
	postgres.Teardown(ctx)
	os.Exit(code)
}

func TestPostgresInventoryLifecycle(t *testing.T) {
	store := invstore.NewPostgresStore()

	shell := invmodel.Record{
		SourceURL:  "http://ditto:8080/api/2",
		ThingID:    "factory:valve-1",
		MirroredAt: 100,
	}
	submodel := invmodel.Record{
		SourceURL:  "http://ditto:8080/api/2",
		ThingID:    "factory:valve-1",
		FeatureID:  "valve",
		SubmodelID: "factory:valve-1:valve",
		MirroredAt: 100,
	}
	require.NoError(t, store.Upsert(shell))
	require.NoError(t, store.Upsert(submodel))

	// Upserting again refreshes instead of duplicating.
	submodel.MirroredAt = 200
	require.NoError(t, store.Upsert(submodel))

	records, err := store.All()
	require.NoError(t, err)
	require.Len(t, records, 2)

	for _, record := range records {
		if !record.IsShell() {
			assert.Equal(t, int64(200), record.MirroredAt)
			assert.Equal(t, "factory:valve-1:valve", record.SubmodelID)
		}
	}

	require.NoError(t, store.RemoveSubmodel(shell.SourceURL, shell.ThingID, "valve"))
	records, err = store.All()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].IsShell())

	require.NoError(t, store.RemoveThing(shell.SourceURL, shell.ThingID))
	records, err = store.All()
	require.NoError(t, err)
	assert.Empty(t, records)
}
