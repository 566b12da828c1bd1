/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package contentstore

import (
	"context"
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"

	"github.com/trustbloc/anonid/internal/logfields"
	"github.com/trustbloc/anonid/pkg/coreerr"
	"github.com/trustbloc/anonid/pkg/identity"
	"github.com/trustbloc/anonid/pkg/storage"
	"github.com/trustbloc/anonid/pkg/storage/internal/pointer"
)

const (
	// PointerKey holds the hash of the latest saved payload.
	PointerKey = "anon-identities-ipfs-hash"

	payloadKeyPrefix = "ipfs-"
)

// Store simulates a content-addressed medium. Every save writes the payload under its CIDv0 hash and
// moves the pointer; clearing forgets the pointer but never the payload.
type Store struct {
	*pointer.Store
}

// NewStore creates Store. An empty gateway falls back to storage.DefaultGatewayURL.
func NewStore(blobs storage.BlobStore, gateway string) *Store {
	if gateway == "" {
		gateway = storage.DefaultGatewayURL
	}

	return &Store{
		Store: pointer.New(pointer.Config{
			Blobs:      blobs,
			Component:  coreerr.ContentStoreComponent,
			PointerKey: PointerKey,
			PayloadKey: PayloadKey,
			Address:    Hash,
			Info: func(hash string) map[string]interface{} {
				info := map[string]interface{}{"gateway": gateway}
				if hash != "" {
					info["hash"] = hash
				}

				return info
			},
			LogField: logfields.WithContentHash,
		}),
	}
}

// Hash returns the CIDv0 (base58 "Qm...") of data.
func Hash(data []byte) (string, error) {
	mh, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return "", fmt.Errorf("multihash: %w", err)
	}

	return cid.NewCidV0(mh).String(), nil
}

// PayloadKey is the key a payload with the given hash is stored under.
func PayloadKey(hash string) string {
	return payloadKeyPrefix + hash
}

// LoadByHash returns the payload saved under hash, even after Clear.
func (s *Store) LoadByHash(ctx context.Context, hash string) ([]*identity.Identity, error) {
	return s.Fetch(ctx, hash)
}
