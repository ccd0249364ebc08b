package target

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wso2/twin-export-service/internal/system/utils"
)

func TestGetShellExistence(t *testing.T) {
	encoded := utils.EncodeID("factory:valve-1")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/shells/"+encoded {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	exists, err := client.GetShell(context.Background(), "factory:valve-1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = client.GetShell(context.Background(), "factory:pump-7")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCreateShellPayload(t *testing.T) {
	var got Shell
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/shells", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	err := NewClient(server.URL).CreateShell(context.Background(), "factory:valve-1")

	require.NoError(t, err)
	assert.Equal(t, "factory:valve-1", got.ID)
	assert.Equal(t, "FACTORY", got.IDShort)
	assert.Equal(t, "INSTANCE", got.AssetInformation.AssetKind)
	assert.Equal(t, "factory:valve-1", got.AssetInformation.GlobalAssetID)
}

func TestCreateShellConflictIsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer server.Close()

	assert.NoError(t, NewClient(server.URL).CreateShell(context.Background(), "factory:valve-1"))
}

func TestAttachSubmodel(t *testing.T) {
	var got SubmodelReference
	encodedShell := utils.EncodeID("factory:valve-1")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/shells/"+encodedShell+"/submodel-refs", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	err := NewClient(server.URL).AttachSubmodel(context.Background(), "factory:valve-1", "factory:valve-1:valve")

	require.NoError(t, err)
	assert.Equal(t, "EXTERNAL_REFERENCE", got.Type)
	require.Len(t, got.Keys, 1)
	assert.Equal(t, "Submodel", got.Keys[0].Type)
	assert.Equal(t, "factory:valve-1:valve", got.Keys[0].Value)
}

func TestCreateSubmodelShortName(t *testing.T) {
	var got Submodel
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	err := NewClient(server.URL).CreateSubmodel(context.Background(), "factory:valve-1:valve")

	require.NoError(t, err)
	assert.Equal(t, "valve", got.IDShort)
}

func TestUpdateElementValuePatchesValueSubresource(t *testing.T) {
	encoded := utils.EncodeID("factory:valve-1:valve")
	var gotMethod, gotPath, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		var value string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&value))
		gotBody = value
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	err := NewClient(server.URL).UpdateElementValue(context.Background(), "factory:valve-1:valve", "open", "true")

	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/submodels/"+encoded+"/submodel-elements/open/$value", gotPath)
	assert.Equal(t, "true", gotBody)
}

func TestCreateElementPayload(t *testing.T) {
	var got Element
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	err := NewClient(server.URL).CreateElement(context.Background(), "factory:valve-1:valve", "open", "true")

	require.NoError(t, err)
	assert.Equal(t, Element{IDShort: "open", ModelType: "Property", ValueType: "string", Value: "true"}, got)
}

func TestDeleteTreats404AsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	assert.NoError(t, client.DeleteShell(ctx, "factory:valve-1"))
	assert.NoError(t, client.DeleteSubmodel(ctx, "factory:valve-1:valve"))
	assert.NoError(t, client.DeleteElement(ctx, "factory:valve-1:valve", "open"))
}

func TestDeleteServerErrorIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	assert.Error(t, NewClient(server.URL).DeleteShell(context.Background(), "factory:valve-1"))
}
