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

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// ClientInterface reads things and features from a source twin registry.
// Authentication is a single opaque header value per source.
type ClientInterface interface {
	ListThings(ctx context.Context, sourceURL, authHeader string) ([]Thing, error)
	ListFeatures(ctx context.Context, sourceURL, authHeader, thingID string) (map[string]Feature, error)
}

// Client talks to a Ditto-style source registry over HTTP.
type Client struct {
	HTTPClient *http.Client
}

// NewClient creates a source registry client.
func NewClient() ClientInterface {

	return &Client{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ListThings returns every thing visible on the source.
func (c *Client) ListThings(ctx context.Context, sourceURL, authHeader string) ([]Thing, error) {

	var things []Thing
	if err := c.getJSON(ctx, sourceURL+"/things", authHeader, &things); err != nil {
		return nil, errors.Wrapf(err, "failed to list things from %s", sourceURL)
	}
	return things, nil
}

// ListFeatures returns the feature map of one thing, keyed by feature id.
func (c *Client) ListFeatures(ctx context.Context, sourceURL, authHeader, thingID string) (map[string]Feature, error) {

	endpoint := fmt.Sprintf("%s/things/%s/features", sourceURL, thingID)
	var features map[string]Feature
	if err := c.getJSON(ctx, endpoint, authHeader, &features); err != nil {
		return nil, errors.Wrapf(err, "failed to list features of thing %s from %s", thingID, sourceURL)
	}
	return features, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint, authHeader string, out interface{}) error {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("GET %s returned %d: %s", endpoint, resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
