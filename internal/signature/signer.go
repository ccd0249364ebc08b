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

package signature

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
)

// Signer is the producer-side counterpart of the Verifier. Upstream data
// producers sign a property bundle before writing it to the source registry;
// the exporter itself only uses this in tests.
type Signer struct {
	privateKeyPath string
}

// NewSigner creates a signer for the given PEM private key file.
func NewSigner(privateKeyPath string) *Signer {

	return &Signer{privateKeyPath: privateKeyPath}
}

// Sign returns the base64 RSA-PSS signature over the canonical form of the
// bundle. Any signature property already present is excluded from the signed
// content, so signing is idempotent with respect to re-signing.
func (s *Signer) Sign(properties map[string]interface{}) (string, error) {

	payload, err := Canonicalize(properties)
	if err != nil {
		return "", err
	}

	privateKey, err := loadPrivateKey(s.privateKeyPath)
	if err != nil {
		return "", err
	}

	digest := sha256.Sum256(payload)
	signatureBytes, err := rsa.SignPSS(rand.Reader, privateKey, crypto.SHA256, digest[:], &rsa.PSSOptions{
		SaltLength: rsa.PSSSaltLengthAuto,
		Hash:       crypto.SHA256,
	})
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(signatureBytes), nil
}
