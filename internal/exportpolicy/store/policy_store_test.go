package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePolicy = `
data_to_export:
  sources:
    - source_url: http://ditto:8080/api/2
      source_name: factory
      auth_header: Basic ZGl0dG86ZGl0dG8=
      things:
        - thing_id: "*"
          downtime:
            start: 2026-08-23T00:00:00
            end: 2026-08-24T00:00:00
          features:
            - feature_id: valve
              properties: ["open", "timestamp"]
target:
  url: http://basyx:8081
security:
  verify_signatures: true
  public_key_path: public_key.pem
logging:
  log_filtered_items: true
`

func TestLoadPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(samplePolicy), 0o600))

	policy := NewPolicyStore(path).Load()

	require.Len(t, policy.DataToExport.Sources, 1)
	source := policy.DataToExport.Sources[0]
	assert.Equal(t, "http://ditto:8080/api/2", source.SourceURL)
	assert.Equal(t, "Basic ZGl0dG86ZGl0dG8=", source.AuthHeader)
	require.Len(t, source.Things, 1)
	require.NotNil(t, source.Things[0].Downtime)
	assert.Equal(t, []string{"open", "timestamp"}, source.Things[0].Features[0].Properties)
	assert.Equal(t, "http://basyx:8081", policy.Target.URL)
	assert.True(t, policy.Security.VerifySignatures)
	assert.True(t, policy.Logging.LogFilteredItems)
}

func TestLoadMissingPolicyDegradesToEmpty(t *testing.T) {
	policy := NewPolicyStore(filepath.Join(t.TempDir(), "nope.yaml")).Load()

	assert.True(t, policy.Empty())
}

func TestLoadMalformedPolicyDegradesToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_to_export: [not: valid"), 0o600))

	policy := NewPolicyStore(path).Load()

	assert.True(t, policy.Empty())
}

func TestLoadPolicyWithoutDowntimeBlock(t *testing.T) {
	const minimal = `
data_to_export:
  sources:
    - source_url: http://ditto:8080/api/2
      things:
        - thing_id: factory:valve-1
          features:
            - feature_id: "*"
              properties: ["*"]
`
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimal), 0o600))

	policy := NewPolicyStore(path).Load()

	require.Len(t, policy.DataToExport.Sources, 1)
	assert.Nil(t, policy.DataToExport.Sources[0].Things[0].Downtime)
}
