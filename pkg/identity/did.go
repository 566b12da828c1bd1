/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package identity

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"strings"

	"github.com/multiformats/go-multibase"
)

const (
	didKeyPrefix = "did:key:"

	// multicodec ed25519-pub, varint encoded.
	ed25519PubCodec0 = 0xed
	ed25519PubCodec1 = 0x01

	// KeyFragment is the fragment of the verification method of a did:key document.
	KeyFragment = "#keys-1"
)

// KeyDID returns the did:key identifier of an ed25519 public key.
func KeyDID(pub ed25519.PublicKey) (string, error) {
	if len(pub) != ed25519.PublicKeySize {
		return "", fmt.Errorf("invalid ed25519 public key size %d", len(pub))
	}

	buf := make([]byte, 0, len(pub)+2)
	buf = append(buf, ed25519PubCodec0, ed25519PubCodec1)
	buf = append(buf, pub...)

	encoded, err := multibase.Encode(multibase.Base58BTC, buf)
	if err != nil {
		return "", fmt.Errorf("encode public key: %w", err)
	}

	return didKeyPrefix + encoded, nil
}

// PublicKeyFromDID extracts the ed25519 public key from a did:key identifier created by KeyDID.
func PublicKeyFromDID(did string) (ed25519.PublicKey, error) {
	encoded, ok := strings.CutPrefix(did, didKeyPrefix)
	if !ok {
		return nil, fmt.Errorf("not a did:key: %s", did)
	}

	_, raw, err := multibase.Decode(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode did:key: %w", err)
	}

	if len(raw) != ed25519.PublicKeySize+2 || raw[0] != ed25519PubCodec0 || raw[1] != ed25519PubCodec1 {
		return nil, errors.New("did:key is not an ed25519 key")
	}

	return raw[2:], nil
}

// VerificationMethod returns the verification method reference for did.
func VerificationMethod(did string) string {
	return did + KeyFragment
}

// IsValidReference reports whether ref can be used as an identity reference.
func IsValidReference(ref string) bool {
	return strings.TrimSpace(ref) != "" && !strings.ContainsAny(ref, " \t\r\n")
}
