/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package identity

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multihash"
)

// Signature token prefixes. A token is the prefix followed by a base58btc multibase encoded sha2-256
// multihash of the signed document with its proof removed. Tokens are reproducible for the same document
// but they are not signatures.
const (
	IssuerTokenPrefix = "mock-signature-"
	HolderTokenPrefix = "mock-presentation-signature-"
)

// IssuerToken computes the issuer signature token for the credential.
func IssuerToken(c *Credential) (string, error) {
	unsigned := *c
	unsigned.Proof = nil

	return token(IssuerTokenPrefix, &unsigned)
}

// HolderToken computes the holder signature token for the presentation.
func HolderToken(p *Presentation) (string, error) {
	unsigned := *p
	unsigned.Proof = nil

	return token(HolderTokenPrefix, &unsigned)
}

// IsIssuerToken reports whether tok has the shape of a token produced by IssuerToken. The digest is not
// recomputed.
func IsIssuerToken(tok string) bool {
	return hasTokenShape(IssuerTokenPrefix, tok)
}

// IsHolderToken reports whether tok has the shape of a token produced by HolderToken.
func IsHolderToken(tok string) bool {
	return hasTokenShape(HolderTokenPrefix, tok)
}

func token(prefix string, doc interface{}) (string, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}

	mh, err := multihash.Sum(payload, multihash.SHA2_256, -1)
	if err != nil {
		return "", fmt.Errorf("digest document: %w", err)
	}

	encoded, err := multibase.Encode(multibase.Base58BTC, mh)
	if err != nil {
		return "", fmt.Errorf("encode digest: %w", err)
	}

	return prefix + encoded, nil
}

func hasTokenShape(prefix, tok string) bool {
	encoded, ok := strings.CutPrefix(tok, prefix)
	if !ok || encoded == "" {
		return false
	}

	_, raw, err := multibase.Decode(encoded)
	if err != nil {
		return false
	}

	decoded, err := multihash.Decode(raw)
	if err != nil {
		return false
	}

	return decoded.Code == multihash.SHA2_256
}
