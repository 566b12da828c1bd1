/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/trustbloc/anonid/internal/logfields"
	"github.com/trustbloc/anonid/internal/pkg/log"
	"github.com/trustbloc/anonid/pkg/coreerr"
	"github.com/trustbloc/anonid/pkg/identity"
	"github.com/trustbloc/anonid/pkg/storage"
)

var logger = log.New("kv-storage")

// IdentitiesKey is the fixed key the identity list is stored under.
const IdentitiesKey = "did-identities"

// Scope is the lifetime of data written by a Store.
type Scope string

const (
	// ScopeDurable keeps data until it is explicitly cleared.
	ScopeDurable Scope = "durable"
	// ScopeProcess keeps data until the process ends.
	ScopeProcess Scope = "process"
)

// Store serializes the whole identity list into one blob under IdentitiesKey.
type Store struct {
	blobs storage.BlobStore
	scope Scope
}

func NewStore(blobs storage.BlobStore, scope Scope) *Store {
	return &Store{
		blobs: blobs,
		scope: scope,
	}
}

func (s *Store) Save(ctx context.Context, identities []*identity.Identity) error {
	data, err := storage.Marshal(identities)
	if err != nil {
		return err
	}

	if err = s.blobs.Put(ctx, IdentitiesKey, data); err != nil {
		return s.backendErr("save", err)
	}

	return nil
}

// Load distinguishes a key that was never written (empty result) from one holding malformed data.
// Malformed data is an error in the durable scope and treated as empty in the process scope.
func (s *Store) Load(ctx context.Context) ([]*identity.Identity, error) {
	data, err := s.blobs.Get(ctx, IdentitiesKey)
	if err != nil {
		if errors.Is(err, coreerr.ErrDataNotFound) {
			return []*identity.Identity{}, nil
		}

		return nil, s.backendErr("load", err)
	}

	identities, err := storage.Unmarshal(data)
	if err != nil {
		if s.scope == ScopeProcess {
			logger.Warnc(ctx, "Discarding malformed identity data",
				logfields.WithStorageType(string(s.scope)), log.WithError(err))

			return []*identity.Identity{}, nil
		}

		return nil, coreerr.NewMalformedData(err).
			WithComponent(coreerr.KVStoreComponent).
			WithOperation("load")
	}

	return identities, nil
}

func (s *Store) Clear(ctx context.Context) error {
	if err := s.blobs.Delete(ctx, IdentitiesKey); err != nil {
		return s.backendErr("clear", err)
	}

	return nil
}

func (s *Store) GetStorageInfo(_ context.Context) (map[string]interface{}, error) {
	return map[string]interface{}{}, nil
}

func (s *Store) backendErr(operation string, err error) error {
	return coreerr.NewBackendFailure(fmt.Errorf("%s scope: %w", s.scope, err)).
		WithComponent(coreerr.KVStoreComponent).
		WithOperation(operation)
}
