/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package requeststore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redisapi "github.com/redis/go-redis/v9"

	"github.com/trustbloc/anonid/pkg/coreerr"
	"github.com/trustbloc/anonid/pkg/identity"
	"github.com/trustbloc/anonid/pkg/service/verifycredential"
	"github.com/trustbloc/anonid/pkg/storage/redis"
)

const (
	keyPrefix = "presentationrequest"

	// DefaultRetention is how long a request stays readable after its expiry.
	DefaultRetention = 24 * time.Hour

	minTTL = time.Second
)

var errNotPending = errors.New("presentation request is not pending")

// Store keeps presentation requests in redis until the retention window after their expiry has passed.
type Store struct {
	redisClient *redis.Client
	retention   time.Duration
	clock       func() time.Time
}

// Opt configures Store.
type Opt func(s *Store)

// WithRetention sets how long a request stays readable, and reported as expired, after its expiry.
func WithRetention(retention time.Duration) Opt {
	return func(s *Store) {
		s.retention = retention
	}
}

// New creates Store.
func New(redisClient *redis.Client, opts ...Opt) *Store {
	s := &Store{
		redisClient: redisClient,
		retention:   DefaultRetention,
		clock:       identity.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// SetIfNotExist stores the request unless one with the same id exists and reports whether it was stored.
// The key lives until the request's expiry plus the retention window.
func (s *Store) SetIfNotExist(ctx context.Context, req *verifycredential.PresentationRequest) (bool, error) {
	ctxWithTimeout, cancel := s.redisClient.ContextWithTimeout(ctx)
	defer cancel()

	b, err := json.Marshal(req)
	if err != nil {
		return false, fmt.Errorf("marshal request: %w", err)
	}

	ttl := req.ExpiresAt.Sub(s.clock()) + s.retention
	if ttl < minTTL {
		ttl = minTTL
	}

	ok, err := s.redisClient.API().SetNX(ctxWithTimeout, s.resolveRedisKey(req.ID), b, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("request set: %w", err)
	}

	return ok, nil
}

// Get returns the request. A pending request past its expiry is reported as expired until the retention
// window ends. Requests that were never stored or whose key has lapsed yield coreerr.ErrDataNotFound.
func (s *Store) Get(ctx context.Context, id string) (*verifycredential.PresentationRequest, error) {
	ctxWithTimeout, cancel := s.redisClient.ContextWithTimeout(ctx)
	defer cancel()

	b, err := s.redisClient.API().Get(ctxWithTimeout, s.resolveRedisKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redisapi.Nil) {
			return nil, coreerr.ErrDataNotFound
		}

		return nil, fmt.Errorf("request get: %w", err)
	}

	req := &verifycredential.PresentationRequest{}
	if err = json.Unmarshal(b, req); err != nil {
		return nil, coreerr.NewMalformedData(fmt.Errorf("request decode: %w", err)).
			WithComponent(coreerr.RedisComponent)
	}

	if req.Status == verifycredential.RequestPending && req.IsExpired(s.clock()) {
		req.Status = verifycredential.RequestExpired
	}

	return req, nil
}

// Respond moves a pending request to status, keeping its remaining lifetime.
func (s *Store) Respond(ctx context.Context, id string,
	status verifycredential.RequestStatus) (*verifycredential.PresentationRequest, error) {
	req, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != verifycredential.RequestPending {
		return nil, coreerr.NewInvalidValue(errNotPending).
			WithComponent(coreerr.RedisComponent).
			WithOperation("respond-presentation-request").
			WithIncorrectValue(string(req.Status))
	}

	req.Status = status

	b, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	ctxWithTimeout, cancel := s.redisClient.ContextWithTimeout(ctx)
	defer cancel()

	if err = s.redisClient.API().SetXX(ctxWithTimeout, s.resolveRedisKey(id), b, redisapi.KeepTTL).Err(); err != nil {
		return nil, fmt.Errorf("request set: %w", err)
	}

	return req, nil
}

func (s *Store) resolveRedisKey(id string) string {
	return s.redisClient.Key(keyPrefix, id)
}
