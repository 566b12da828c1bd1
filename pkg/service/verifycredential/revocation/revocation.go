/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination revocation_mocks_test.go -package revocation_test -source=revocation.go -mock_names statusSource=MockStatusSource

package revocation

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bluele/gcache"

	"github.com/trustbloc/anonid/internal/logfields"
	"github.com/trustbloc/anonid/internal/pkg/log"
	"github.com/trustbloc/anonid/pkg/identity"
)

var logger = log.New("revocation-registry")

const (
	defaultCacheSize = 1000
	defaultCacheTTL  = 5 * time.Minute
)

// statusSource looks up the revocation status of a credential, e.g. from a remote status list.
type statusSource interface {
	IsRevoked(ctx context.Context, credentialID string) (bool, error)
}

type Config struct {
	// Source is consulted for credentials not revoked locally. When nil only local revocations apply.
	Source    statusSource
	CacheSize int
	CacheTTL  time.Duration
}

// Registry tracks revoked credentials. Statuses fetched from the source are cached.
type Registry struct {
	mutex   sync.RWMutex
	revoked map[string]string

	source   statusSource
	cache    gcache.Cache
	cacheTTL time.Duration
}

func NewRegistry(config *Config) *Registry {
	size := config.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}

	ttl := config.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	return &Registry{
		revoked:  make(map[string]string),
		source:   config.Source,
		cache:    gcache.New(size).LRU().Build(),
		cacheTTL: ttl,
	}
}

// Revoke marks the credential as revoked.
func (r *Registry) Revoke(credentialID, reason string) {
	r.mutex.Lock()
	r.revoked[credentialID] = reason
	r.mutex.Unlock()

	r.cache.Remove(credentialID)
}

// Reinstate removes a local revocation.
func (r *Registry) Reinstate(credentialID string) {
	r.mutex.Lock()
	delete(r.revoked, credentialID)
	r.mutex.Unlock()

	r.cache.Remove(credentialID)
}

// Reason returns the reason a credential was revoked locally.
func (r *Registry) Reason(credentialID string) (string, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	reason, ok := r.revoked[credentialID]

	return reason, ok
}

// CheckRevocation returns true when the credential's status could be checked and it is not revoked. A source
// failure is reported as an unchecked status rather than an error.
func (r *Registry) CheckRevocation(ctx context.Context, credential *identity.Credential) (bool, error) {
	if _, revoked := r.Reason(credential.ID); revoked {
		return false, nil
	}

	if r.source == nil {
		return true, nil
	}

	if v, err := r.cache.Get(credential.ID); err == nil {
		return !v.(bool), nil //nolint:forcetypeassert
	} else if !errors.Is(err, gcache.KeyNotFoundError) {
		return false, err
	}

	revoked, err := r.source.IsRevoked(ctx, credential.ID)
	if err != nil {
		logger.Warnc(ctx, "Revocation status unavailable", logfields.WithCredentialID(credential.ID),
			log.WithError(err))

		return false, nil
	}

	if err = r.cache.SetWithExpire(credential.ID, revoked, r.cacheTTL); err != nil {
		return false, err
	}

	return !revoked, nil
}
