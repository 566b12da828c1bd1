/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package storage

import (
	"context"
	"time"

	"github.com/trustbloc/anonid/pkg/identity"
	"github.com/trustbloc/anonid/pkg/observability/metrics"
)

// Metered reports save and load latency of an IdentityStore.
type Metered struct {
	IdentityStore

	storageType Type
	metrics     metrics.Metrics
}

// WithMetrics wraps store so that Save and Load are timed under storageType.
func WithMetrics(store IdentityStore, storageType Type, m metrics.Metrics) *Metered {
	return &Metered{
		IdentityStore: store,
		storageType:   storageType,
		metrics:       m,
	}
}

func (m *Metered) Save(ctx context.Context, identities []*identity.Identity) error {
	st := time.Now()
	defer func() { m.metrics.StorageSaveTime(string(m.storageType), time.Since(st)) }()

	return m.IdentityStore.Save(ctx, identities)
}

func (m *Metered) Load(ctx context.Context) ([]*identity.Identity, error) {
	st := time.Now()
	defer func() { m.metrics.StorageLoadTime(string(m.storageType), time.Since(st)) }()

	return m.IdentityStore.Load(ctx)
}

// Unwrap returns the wrapped store.
func (m *Metered) Unwrap() IdentityStore {
	return m.IdentityStore
}
