/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination internal/storetest/storage_mocks.go -package storetest . IdentityStore,BlobStore

package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/trustbloc/anonid/pkg/identity"
)

// IdentityStore persists the holder's identity list on one physical medium.
// Load returns an empty slice (not an error) when nothing was saved yet.
type IdentityStore interface {
	Save(ctx context.Context, identities []*identity.Identity) error
	Load(ctx context.Context) ([]*identity.Identity, error)
	Clear(ctx context.Context) error
	GetStorageInfo(ctx context.Context) (map[string]interface{}, error)
}

// BlobStore is a flat key to bytes store used underneath the single-blob backends.
// Get returns coreerr.ErrDataNotFound for a key that was never written.
type BlobStore interface {
	Put(ctx context.Context, key string, value []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// Marshal serializes identities to the JSON form shared by every backend.
// Timestamps are written as ISO-8601 strings.
func Marshal(identities []*identity.Identity) ([]byte, error) {
	if identities == nil {
		identities = []*identity.Identity{}
	}

	data, err := json.Marshal(identities)
	if err != nil {
		return nil, fmt.Errorf("marshal identities: %w", err)
	}

	return data, nil
}

// Unmarshal parses the output of Marshal.
func Unmarshal(data []byte) ([]*identity.Identity, error) {
	var identities []*identity.Identity

	if err := json.Unmarshal(data, &identities); err != nil {
		return nil, fmt.Errorf("unmarshal identities: %w", err)
	}

	if identities == nil {
		identities = []*identity.Identity{}
	}

	return identities, nil
}
