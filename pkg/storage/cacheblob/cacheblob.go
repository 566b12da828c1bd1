/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cacheblob

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bluele/gcache"

	"github.com/trustbloc/anonid/pkg/coreerr"
)

var (
	processStore     *Store    //nolint:gochecknoglobals
	processStoreOnce sync.Once //nolint:gochecknoglobals
)

// Store is a BlobStore held in process memory.
// The underlying gcache is thread safe, no locks needed.
type Store struct {
	cache gcache.Cache
}

// New returns a store private to the caller.
func New() *Store {
	return &Store{cache: gcache.New(0).Build()}
}

// Process returns the store shared by the whole process. Its data lives until the process exits.
func Process() *Store {
	processStoreOnce.Do(func() {
		processStore = New()
	})

	return processStore
}

func (s *Store) Put(_ context.Context, key string, value []byte) error {
	if err := s.cache.Set(key, append([]byte(nil), value...)); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}

	return nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	v, err := s.cache.Get(key)
	if err != nil {
		if errors.Is(err, gcache.KeyNotFoundError) {
			return nil, coreerr.ErrDataNotFound
		}

		return nil, fmt.Errorf("cache get %s: %w", key, err)
	}

	value, ok := v.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected value type %T under %s", v, key)
	}

	return append([]byte(nil), value...), nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.cache.Remove(key)

	return nil
}
