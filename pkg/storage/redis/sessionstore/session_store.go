/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	redisapi "github.com/redis/go-redis/v9"
	"github.com/samber/lo"

	"github.com/trustbloc/anonid/pkg/coreerr"
	"github.com/trustbloc/anonid/pkg/service/session"
	"github.com/trustbloc/anonid/pkg/storage/redis"
)

// tableTag is a redis cluster hash tag. Session documents and the index share it, so they live in one
// slot and the MULTI in Put and the MGET in List work against a cluster.
const tableTag = "{sessions}"

// Store keeps the session table in redis. Every session id is also recorded in an index set so
// the table can be listed without scanning the keyspace.
type Store struct {
	redisClient *redis.Client
}

// NewStore creates Store.
func NewStore(redisClient *redis.Client) *Store {
	return &Store{redisClient: redisClient}
}

func (s *Store) Put(ctx context.Context, sess *session.Session) error {
	ctxWithTimeout, cancel := s.redisClient.ContextWithTimeout(ctx)
	defer cancel()

	doc, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	_, err = s.redisClient.API().TxPipelined(ctxWithTimeout, func(pipe redisapi.Pipeliner) error {
		pipe.Set(ctxWithTimeout, s.resolveRedisKey(sess.ID), doc, 0)
		pipe.SAdd(ctxWithTimeout, s.resolveIndexKey(), sess.ID)

		return nil
	})
	if err != nil {
		return fmt.Errorf("session set: %w", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*session.Session, error) {
	ctxWithTimeout, cancel := s.redisClient.ContextWithTimeout(ctx)
	defer cancel()

	b, err := s.redisClient.API().Get(ctxWithTimeout, s.resolveRedisKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redisapi.Nil) {
			return nil, coreerr.ErrDataNotFound
		}

		return nil, fmt.Errorf("session get: %w", err)
	}

	return decode(b)
}

// List returns every stored session ordered by creation time.
func (s *Store) List(ctx context.Context) ([]*session.Session, error) {
	ctxWithTimeout, cancel := s.redisClient.ContextWithTimeout(ctx)
	defer cancel()

	ids, err := s.redisClient.API().SMembers(ctxWithTimeout, s.resolveIndexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("session index: %w", err)
	}

	if len(ids) == 0 {
		return []*session.Session{}, nil
	}

	keys := lo.Map(ids, func(id string, _ int) string { return s.resolveRedisKey(id) })

	values, err := s.redisClient.API().MGet(ctxWithTimeout, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("session mget: %w", err)
	}

	sessions := make([]*session.Session, 0, len(values))

	for _, v := range values {
		doc, ok := v.(string)
		if !ok {
			continue
		}

		sess, decodeErr := decode([]byte(doc))
		if decodeErr != nil {
			return nil, decodeErr
		}

		sessions = append(sessions, sess)
	}

	session.SortByCreation(sessions)

	return sessions, nil
}

func (s *Store) resolveRedisKey(id string) string {
	return s.redisClient.Key(tableTag, id)
}

func (s *Store) resolveIndexKey() string {
	return s.redisClient.Key(tableTag)
}

func decode(b []byte) (*session.Session, error) {
	sess := &session.Session{}

	if err := json.Unmarshal(b, sess); err != nil {
		return nil, coreerr.NewMalformedData(fmt.Errorf("unmarshal session: %w", err)).
			WithComponent(coreerr.RedisComponent)
	}

	return sess, nil
}
