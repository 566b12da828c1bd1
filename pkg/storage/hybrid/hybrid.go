/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package hybrid

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/trustbloc/anonid/internal/logfields"
	"github.com/trustbloc/anonid/internal/pkg/log"
	"github.com/trustbloc/anonid/pkg/coreerr"
	"github.com/trustbloc/anonid/pkg/identity"
	"github.com/trustbloc/anonid/pkg/storage"
)

var logger = log.New("hybrid-storage")

// Member is one backend of a hybrid store.
type Member struct {
	Name  string
	Store storage.IdentityStore
}

// Store fans writes out to every member and reads from the first member holding data.
//
// Save is not transactional: when one member fails the call fails, but members that already
// committed keep their writes.
type Store struct {
	members []Member
}

// NewStore creates Store. Members are listed in read priority order.
func NewStore(members ...Member) (*Store, error) {
	if len(members) == 0 {
		return nil, coreerr.NewMissingConfig("hybrid members").WithComponent(coreerr.HybridStoreComponent)
	}

	return &Store{members: members}, nil
}

func (s *Store) Save(ctx context.Context, identities []*identity.Identity) error {
	var eg errgroup.Group

	for _, m := range s.members {
		m := m

		eg.Go(func() error {
			if err := m.Store.Save(ctx, identities); err != nil {
				return fmt.Errorf("member %s: %w", m.Name, err)
			}

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return coreerr.NewBackendFailure(err).
			WithComponent(coreerr.HybridStoreComponent).
			WithOperation("save")
	}

	return nil
}

// Load returns the first non-empty result in priority order. Failing and empty members are skipped.
func (s *Store) Load(ctx context.Context) ([]*identity.Identity, error) {
	for _, m := range s.members {
		identities, err := m.Store.Load(ctx)
		if err != nil {
			logger.Warnc(ctx, "Skipping member that failed to load",
				logfields.WithStorageType(m.Name), log.WithError(err))

			continue
		}

		if len(identities) > 0 {
			return identities, nil
		}
	}

	return []*identity.Identity{}, nil
}

func (s *Store) Clear(ctx context.Context) error {
	var eg errgroup.Group

	for _, m := range s.members {
		m := m

		eg.Go(func() error {
			if err := m.Store.Clear(ctx); err != nil {
				return fmt.Errorf("member %s: %w", m.Name, err)
			}

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return coreerr.NewBackendFailure(err).
			WithComponent(coreerr.HybridStoreComponent).
			WithOperation("clear")
	}

	return nil
}

// GetStorageInfo merges member maps in priority order; later members overwrite keys of earlier ones.
func (s *Store) GetStorageInfo(ctx context.Context) (map[string]interface{}, error) {
	infos := make([]map[string]interface{}, len(s.members))

	eg, egCtx := errgroup.WithContext(ctx)

	for i, m := range s.members {
		i, m := i, m

		eg.Go(func() error {
			info, err := m.Store.GetStorageInfo(egCtx)
			if err != nil {
				return fmt.Errorf("member %s: %w", m.Name, err)
			}

			infos[i] = info

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, coreerr.NewBackendFailure(err).
			WithComponent(coreerr.HybridStoreComponent).
			WithOperation("storage-info")
	}

	return lo.Assign(infos...), nil
}

// Members returns the member names in priority order.
func (s *Store) Members() []string {
	return lo.Map(s.members, func(m Member, _ int) string { return m.Name })
}
