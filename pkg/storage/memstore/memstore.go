/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package memstore

import (
	"context"
	"sync"

	"github.com/samber/lo"

	"github.com/trustbloc/anonid/pkg/identity"
)

// Store keeps identities for the life of the instance only.
type Store struct {
	mu   sync.RWMutex
	data []*identity.Identity
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Save(_ context.Context, identities []*identity.Identity) error {
	data := cloneAll(identities)

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()

	return nil
}

func (s *Store) Load(_ context.Context) ([]*identity.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneAll(s.data), nil
}

func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	s.data = nil
	s.mu.Unlock()

	return nil
}

func (s *Store) GetStorageInfo(_ context.Context) (map[string]interface{}, error) {
	return map[string]interface{}{}, nil
}

func cloneAll(identities []*identity.Identity) []*identity.Identity {
	return lo.Map(lo.Compact(identities), func(i *identity.Identity, _ int) *identity.Identity {
		return i.Clone()
	})
}
