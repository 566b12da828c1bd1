/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package blobstore

import (
	"context"
	"errors"
	"fmt"

	redisapi "github.com/redis/go-redis/v9"

	"github.com/trustbloc/anonid/pkg/coreerr"
	"github.com/trustbloc/anonid/pkg/storage/redis"
)

const (
	keyPrefix = "blob"
)

// Store keeps blobs in redis without expiry, so data survives until deleted.
type Store struct {
	redisClient *redis.Client
}

// NewStore creates Store.
func NewStore(redisClient *redis.Client) *Store {
	return &Store{redisClient: redisClient}
}

func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	ctxWithTimeout, cancel := s.redisClient.ContextWithTimeout(ctx)
	defer cancel()

	if err := s.redisClient.API().Set(ctxWithTimeout, s.resolveRedisKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("blob set: %w", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	ctxWithTimeout, cancel := s.redisClient.ContextWithTimeout(ctx)
	defer cancel()

	b, err := s.redisClient.API().Get(ctxWithTimeout, s.resolveRedisKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redisapi.Nil) {
			return nil, coreerr.ErrDataNotFound
		}

		return nil, fmt.Errorf("blob get: %w", err)
	}

	return b, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	ctxWithTimeout, cancel := s.redisClient.ContextWithTimeout(ctx)
	defer cancel()

	if err := s.redisClient.API().Del(ctxWithTimeout, s.resolveRedisKey(key)).Err(); err != nil {
		return fmt.Errorf("blob delete: %w", err)
	}

	return nil
}

func (s *Store) resolveRedisKey(key string) string {
	return s.redisClient.Key(keyPrefix, key)
}
