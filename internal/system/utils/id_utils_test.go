package utils

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeIDIsPathSafe(t *testing.T) {
	encoded := EncodeID("factory:valve-1")

	assert.NotContains(t, encoded, ":")
	assert.NotContains(t, encoded, "/")
	assert.NotContains(t, encoded, "+")

	decoded, err := base64.URLEncoding.DecodeString(encoded)
	assert.NoError(t, err)
	assert.Equal(t, "factory:valve-1", string(decoded))
}

func TestEncodeIDIsDeterministic(t *testing.T) {
	assert.Equal(t, EncodeID("org.example:pump"), EncodeID("org.example:pump"))
	assert.Equal(t, "", EncodeID(""))
}
