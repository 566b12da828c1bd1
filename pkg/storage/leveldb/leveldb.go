/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package leveldb

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/trustbloc/anonid/pkg/coreerr"
	"github.com/trustbloc/anonid/pkg/identity"
)

const keyPrefix = "identity:"

// dbEntry is one identity record. Seq keeps the saved list order since keys sort by id.
type dbEntry struct {
	Seq      int                `json:"seq"`
	Identity *identity.Identity `json:"identity"`
}

// Store keeps one LevelDB record per identity, keyed by identity id.
type Store struct {
	db *leveldb.DB
}

// Open opens (or creates) the database at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, coreerr.NewMissingConfig("leveldb path").WithComponent(coreerr.LevelDBComponent)
	}

	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open leveldb %s: %w", path, err)
	}

	return &Store{db: db}, nil
}

// Save replaces the stored records: it clears the database, then inserts every identity.
// The two steps are separate writes, so a failed insert leaves the database empty.
func (s *Store) Save(ctx context.Context, identities []*identity.Identity) error {
	if err := s.Clear(ctx); err != nil {
		return err
	}

	batch := new(leveldb.Batch)

	for i, ident := range identities {
		if ident == nil {
			continue
		}

		value, err := json.Marshal(&dbEntry{Seq: i, Identity: ident})
		if err != nil {
			return fmt.Errorf("marshal identity %s: %w", ident.ID, err)
		}

		batch.Put([]byte(keyPrefix+ident.ID), value)
	}

	if err := s.db.Write(batch, nil); err != nil {
		return backendErr("save", err)
	}

	return nil
}

func (s *Store) Load(ctx context.Context) ([]*identity.Identity, error) {
	iter := s.db.NewIterator(util.BytesPrefix([]byte(keyPrefix)), nil)
	defer iter.Release()

	var entries []*dbEntry

	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entry := &dbEntry{}

		if err := json.Unmarshal(iter.Value(), entry); err != nil {
			return nil, coreerr.NewMalformedData(fmt.Errorf("record %s: %w", iter.Key(), err)).
				WithComponent(coreerr.LevelDBComponent).
				WithOperation("load")
		}

		entries = append(entries, entry)
	}

	if err := iter.Error(); err != nil {
		return nil, backendErr("load", err)
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Seq < entries[j].Seq })

	identities := make([]*identity.Identity, 0, len(entries))
	for _, e := range entries {
		identities = append(identities, e.Identity)
	}

	return identities, nil
}

func (s *Store) Clear(_ context.Context) error {
	iter := s.db.NewIterator(util.BytesPrefix([]byte(keyPrefix)), nil)
	defer iter.Release()

	batch := new(leveldb.Batch)

	for iter.Next() {
		batch.Delete(append([]byte(nil), iter.Key()...))
	}

	if err := iter.Error(); err != nil {
		return backendErr("clear", err)
	}

	if err := s.db.Write(batch, nil); err != nil {
		return backendErr("clear", err)
	}

	return nil
}

func (s *Store) GetStorageInfo(_ context.Context) (map[string]interface{}, error) {
	return map[string]interface{}{}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func backendErr(operation string, err error) error {
	return coreerr.NewBackendFailure(err).
		WithComponent(coreerr.LevelDBComponent).
		WithOperation(operation)
}
