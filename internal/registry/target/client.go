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

package target

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/wso2/twin-export-service/internal/system/utils"
)

// ClientInterface covers every operation the export service performs against
// the target asset registry. Objects are addressed by the base64url-encoded
// form of their id.
type ClientInterface interface {
	GetShell(ctx context.Context, thingID string) (bool, error)
	CreateShell(ctx context.Context, thingID string) error
	DeleteShell(ctx context.Context, thingID string) error

	GetSubmodel(ctx context.Context, submodelID string) (bool, error)
	CreateSubmodel(ctx context.Context, submodelID string) error
	AttachSubmodel(ctx context.Context, thingID, submodelID string) error
	DeleteSubmodel(ctx context.Context, submodelID string) error

	GetElement(ctx context.Context, submodelID, elementID string) (bool, error)
	CreateElement(ctx context.Context, submodelID, elementID, value string) error
	UpdateElementValue(ctx context.Context, submodelID, elementID, value string) error
	DeleteElement(ctx context.Context, submodelID, elementID string) error
}

// Client talks to a BaSyx-style target registry over HTTP.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a target registry client for the given base URL.
func NewClient(baseURL string) ClientInterface {

	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// GetShell reports whether the shell for a thing exists.
func (c *Client) GetShell(ctx context.Context, thingID string) (bool, error) {

	return c.exists(ctx, c.BaseURL+"/shells/"+utils.EncodeID(thingID))
}

// CreateShell creates the shell for a thing. A conflict response means another
// pass created it concurrently and is treated as success.
func (c *Client) CreateShell(ctx context.Context, thingID string) error {

	payload := Shell{
		ID:      thingID,
		IDShort: shellShortName(thingID),
		AssetInformation: AssetInformation{
			AssetKind:     "INSTANCE",
			GlobalAssetID: thingID,
		},
	}
	return c.create(ctx, c.BaseURL+"/shells", payload, "shell "+thingID)
}

// DeleteShell removes the shell; already-absent counts as success.
func (c *Client) DeleteShell(ctx context.Context, thingID string) error {

	return c.delete(ctx, c.BaseURL+"/shells/"+utils.EncodeID(thingID), "shell "+thingID)
}

// GetSubmodel reports whether the submodel exists.
func (c *Client) GetSubmodel(ctx context.Context, submodelID string) (bool, error) {

	return c.exists(ctx, c.BaseURL+"/submodels/"+utils.EncodeID(submodelID))
}

// CreateSubmodel creates a submodel; pair it with AttachSubmodel to link it to
// its shell.
func (c *Client) CreateSubmodel(ctx context.Context, submodelID string) error {

	payload := Submodel{
		ID:      submodelID,
		IDShort: submodelShortName(submodelID),
		AssetInformation: AssetInformation{
			AssetKind:     "INSTANCE",
			GlobalAssetID: submodelID,
		},
	}
	return c.create(ctx, c.BaseURL+"/submodels", payload, "submodel "+submodelID)
}

// AttachSubmodel links a submodel to its shell by external reference.
func (c *Client) AttachSubmodel(ctx context.Context, thingID, submodelID string) error {

	payload := SubmodelReference{
		Type: "EXTERNAL_REFERENCE",
		Keys: []ReferenceKey{{Type: "Submodel", Value: submodelID}},
	}
	endpoint := c.BaseURL + "/shells/" + utils.EncodeID(thingID) + "/submodel-refs"
	return c.create(ctx, endpoint, payload, fmt.Sprintf("submodel-ref %s on shell %s", submodelID, thingID))
}

// DeleteSubmodel removes the submodel; already-absent counts as success.
func (c *Client) DeleteSubmodel(ctx context.Context, submodelID string) error {

	return c.delete(ctx, c.BaseURL+"/submodels/"+utils.EncodeID(submodelID), "submodel "+submodelID)
}

// GetElement reports whether the element exists in the submodel.
func (c *Client) GetElement(ctx context.Context, submodelID, elementID string) (bool, error) {

	return c.exists(ctx, c.elementURL(submodelID, elementID))
}

// CreateElement creates a string-typed property element.
func (c *Client) CreateElement(ctx context.Context, submodelID, elementID, value string) error {

	payload := Element{
		IDShort:   elementID,
		ModelType: "Property",
		ValueType: "string",
		Value:     value,
	}
	endpoint := c.BaseURL + "/submodels/" + utils.EncodeID(submodelID) + "/submodel-elements"
	return c.create(ctx, endpoint, payload, fmt.Sprintf("element %s in %s", elementID, submodelID))
}

// UpdateElementValue patches the value sub-resource of an existing element.
func (c *Client) UpdateElementValue(ctx context.Context, submodelID, elementID, value string) error {

	body, err := json.Marshal(value)
	if err != nil {
		return err
	}
	endpoint := c.elementURL(submodelID, elementID) + "/$value"
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "failed to update element %s in %s", elementID, submodelID)
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("update of element %s in %s returned %d", elementID, submodelID, resp.StatusCode)
	}
	return nil
}

// DeleteElement removes the element; already-absent counts as success.
func (c *Client) DeleteElement(ctx context.Context, submodelID, elementID string) error {

	return c.delete(ctx, c.elementURL(submodelID, elementID),
		fmt.Sprintf("element %s in %s", elementID, submodelID))
}

func (c *Client) elementURL(submodelID, elementID string) string {

	return c.BaseURL + "/submodels/" + utils.EncodeID(submodelID) + "/submodel-elements/" + elementID
}

func (c *Client) exists(ctx context.Context, endpoint string) (bool, error) {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return false, errors.Wrapf(err, "failed to query %s", endpoint)
	}
	defer drain(resp)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return true, nil
	default:
		return false, fmt.Errorf("GET %s returned %d", endpoint, resp.StatusCode)
	}
}

func (c *Client) create(ctx context.Context, endpoint string, payload interface{}, what string) error {

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", what)
	}
	defer drain(resp)

	// Conflict means a concurrent pass created the object first.
	if resp.StatusCode == http.StatusConflict {
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("create of %s returned %d", what, resp.StatusCode)
	}
	return nil
}

func (c *Client) delete(ctx context.Context, endpoint, what string) error {

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "failed to delete %s", what)
	}
	defer drain(resp)

	// Already absent is success so cleanup stays idempotent.
	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("delete of %s returned %d", what, resp.StatusCode)
	}
	return nil
}

// drain discards the body so the connection can be reused.
func drain(resp *http.Response) {

	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
}

// shellShortName derives the shell display name from a thing id such as
// "factory:valve-1": the upper-cased leading segment.
func shellShortName(thingID string) string {

	return strings.ToUpper(strings.SplitN(thingID, ":", 2)[0])
}

// submodelShortName derives the submodel display name from a submodel id such
// as "factory:valve-1:valve": the trailing segment, the feature id.
func submodelShortName(submodelID string) string {

	if idx := strings.LastIndex(submodelID, ":"); idx >= 0 && idx < len(submodelID)-1 {
		return submodelID[idx+1:]
	}
	return submodelID
}
