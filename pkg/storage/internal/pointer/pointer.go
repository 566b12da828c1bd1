/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package pointer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/trustbloc/anonid/internal/logfields"
	"github.com/trustbloc/anonid/internal/pkg/log"
	"github.com/trustbloc/anonid/pkg/coreerr"
	"github.com/trustbloc/anonid/pkg/identity"
	"github.com/trustbloc/anonid/pkg/storage"
)

var logger = log.New("pointer-storage")

// Config describes an append-only medium: payloads are written once under a reference derived from the
// payload, and a pointer key tracks the latest reference.
type Config struct {
	Blobs      storage.BlobStore
	Component  coreerr.Component
	PointerKey string
	// PayloadKey maps a reference to the key the payload is stored under.
	PayloadKey func(ref string) string
	// Address derives the reference of a serialized payload.
	Address func(data []byte) (string, error)
	// Info builds the diagnostic map. ref is empty until the first save or load.
	Info func(ref string) map[string]interface{}
	// LogField names the reference in log entries.
	LogField func(ref string) zap.Field
}

// Store implements storage.IdentityStore over immutable payloads and a mutable pointer.
type Store struct {
	cfg Config

	mu      sync.RWMutex
	lastRef string
}

func New(cfg Config) *Store {
	return &Store{cfg: cfg}
}

func (s *Store) Save(ctx context.Context, identities []*identity.Identity) error {
	data, err := storage.Marshal(identities)
	if err != nil {
		return err
	}

	ref, err := s.cfg.Address(data)
	if err != nil {
		return s.backendErr("save", fmt.Errorf("address payload: %w", err))
	}

	if err = s.cfg.Blobs.Put(ctx, s.cfg.PayloadKey(ref), data); err != nil {
		return s.backendErr("save", err)
	}

	if err = s.cfg.Blobs.Put(ctx, s.cfg.PointerKey, []byte(ref)); err != nil {
		return s.backendErr("save", err)
	}

	s.setLastRef(ref)

	logger.Debugc(ctx, "Payload stored", s.cfg.LogField(ref), logfields.WithIdentityCount(len(identities)))

	return nil
}

// Load follows the pointer. A missing pointer or a pointer to a missing payload yields an empty list.
func (s *Store) Load(ctx context.Context) ([]*identity.Identity, error) {
	ref, err := s.cfg.Blobs.Get(ctx, s.cfg.PointerKey)
	if err != nil {
		if errors.Is(err, coreerr.ErrDataNotFound) {
			return []*identity.Identity{}, nil
		}

		return nil, s.backendErr("load", err)
	}

	data, err := s.cfg.Blobs.Get(ctx, s.cfg.PayloadKey(string(ref)))
	if err != nil {
		if errors.Is(err, coreerr.ErrDataNotFound) {
			logger.Warnc(ctx, "Pointer references a missing payload", s.cfg.LogField(string(ref)))

			return []*identity.Identity{}, nil
		}

		return nil, s.backendErr("load", err)
	}

	identities, err := storage.Unmarshal(data)
	if err != nil {
		return nil, coreerr.NewMalformedData(err).WithComponent(s.cfg.Component).WithOperation("load")
	}

	s.setLastRef(string(ref))

	return identities, nil
}

// Clear forgets the pointer only. Payloads stay retrievable by reference.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.cfg.Blobs.Delete(ctx, s.cfg.PointerKey); err != nil {
		return s.backendErr("clear", err)
	}

	s.setLastRef("")

	return nil
}

func (s *Store) GetStorageInfo(_ context.Context) (map[string]interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cfg.Info(s.lastRef), nil
}

// Fetch returns the payload stored under ref, whether or not the pointer still references it.
func (s *Store) Fetch(ctx context.Context, ref string) ([]*identity.Identity, error) {
	data, err := s.cfg.Blobs.Get(ctx, s.cfg.PayloadKey(ref))
	if err != nil {
		if errors.Is(err, coreerr.ErrDataNotFound) {
			return nil, err
		}

		return nil, s.backendErr("fetch", err)
	}

	identities, err := storage.Unmarshal(data)
	if err != nil {
		return nil, coreerr.NewMalformedData(err).WithComponent(s.cfg.Component).WithOperation("fetch")
	}

	return identities, nil
}

func (s *Store) setLastRef(ref string) {
	s.mu.Lock()
	s.lastRef = ref
	s.mu.Unlock()
}

func (s *Store) backendErr(operation string, err error) error {
	return coreerr.NewBackendFailure(err).WithComponent(s.cfg.Component).WithOperation(operation)
}
