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
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"

	"github.com/wso2/twin-export-service/internal/system/cache"
	"github.com/wso2/twin-export-service/internal/system/constants"
	"github.com/wso2/twin-export-service/internal/system/log"
)

// VerifierInterface is the signature gate consulted before mirroring a
// feature's properties.
type VerifierInterface interface {
	Verify(properties map[string]interface{}) bool
}

// Verifier checks that a property bundle carries a valid RSA-PSS signature
// over its own canonical content. It never returns an error: every failure
// class normalizes to false with a logged cause, so a bad bundle can only ever
// skip its own property writes.
type Verifier struct {
	publicKeyPath string
	keyCache      *cache.Cache
}

// NewVerifier creates a verifier for the given PEM public key file.
func NewVerifier(publicKeyPath string) VerifierInterface {

	if publicKeyPath == "" {
		publicKeyPath = constants.DefaultPublicKeyPath
	}
	return &Verifier{
		publicKeyPath: publicKeyPath,
		keyCache:      cache.NewCache(constants.PublicKeyCacheTTL),
	}
}

// Verify reports whether the bundle's signature property matches the bundle's
// canonical content under the configured public key.
func (v *Verifier) Verify(properties map[string]interface{}) bool {

	logger := log.GetLogger()

	rawSignature, present := properties[constants.SignatureProperty]
	if !present {
		logger.Warn("No signature found in feature data")
		return false
	}
	encodedSignature, ok := rawSignature.(string)
	if !ok || encodedSignature == "" {
		logger.Warn("Empty or non-string signature in feature data")
		return false
	}

	payload, err := Canonicalize(properties)
	if err != nil {
		logger.Warn("Failed to canonicalize feature data", log.Error(err))
		return false
	}

	signatureBytes, err := base64.StdEncoding.DecodeString(encodedSignature)
	if err != nil {
		logger.Warn("Invalid signature encoding", log.Error(err))
		return false
	}

	publicKey, err := v.publicKey()
	if err != nil {
		logger.Warn("Public key unavailable for signature verification", log.Error(err))
		return false
	}

	digest := sha256.Sum256(payload)
	err = rsa.VerifyPSS(publicKey, crypto.SHA256, digest[:], signatureBytes, &rsa.PSSOptions{
		SaltLength: rsa.PSSSaltLengthAuto,
		Hash:       crypto.SHA256,
	})
	if err != nil {
		logger.Warn("Signature verification failed", log.Error(err))
		return false
	}
	return true
}

// publicKey returns the parsed key, re-reading the PEM file only after the
// cache entry expires.
func (v *Verifier) publicKey() (*rsa.PublicKey, error) {

	if cached, found := v.keyCache.Get(v.publicKeyPath); found {
		if key, ok := cached.(*rsa.PublicKey); ok {
			return key, nil
		}
	}

	key, err := loadPublicKey(v.publicKeyPath)
	if err != nil {
		return nil, err
	}
	v.keyCache.Set(v.publicKeyPath, key)
	return key, nil
}
