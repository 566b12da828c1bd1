/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package kvstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/anonid/pkg/coreerr"
	"github.com/trustbloc/anonid/pkg/storage/cacheblob"
	"github.com/trustbloc/anonid/pkg/storage/internal/storetest"
	"github.com/trustbloc/anonid/pkg/storage/kvstore"
)

func TestStore(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		for _, scope := range []kvstore.Scope{kvstore.ScopeDurable, kvstore.ScopeProcess} {
			t.Run(string(scope), func(t *testing.T) {
				storetest.RoundTrip(t, kvstore.NewStore(cacheblob.New(), scope))
			})
		}
	})

	t.Run("timestamps stored as ISO-8601", func(t *testing.T) {
		blobs := cacheblob.New()
		require.NoError(t, kvstore.NewStore(blobs, kvstore.ScopeDurable).Save(ctx, storetest.Identities()))

		raw, err := blobs.Get(ctx, kvstore.IdentitiesKey)
		require.NoError(t, err)
		require.Contains(t, string(raw), `"createdAt":"2024-03-01T10:20:30.123Z"`)
	})

	t.Run("malformed data in durable scope", func(t *testing.T) {
		blobs := cacheblob.New()
		require.NoError(t, blobs.Put(ctx, kvstore.IdentitiesKey, []byte("{not json")))

		loaded, err := kvstore.NewStore(blobs, kvstore.ScopeDurable).Load(ctx)
		require.Nil(t, loaded)
		require.Equal(t, coreerr.MalformedData, coreerr.CodeOf(err))
	})

	t.Run("malformed data in process scope", func(t *testing.T) {
		blobs := cacheblob.New()
		require.NoError(t, blobs.Put(ctx, kvstore.IdentitiesKey, []byte("{not json")))

		loaded, err := kvstore.NewStore(blobs, kvstore.ScopeProcess).Load(ctx)
		require.NoError(t, err)
		require.Empty(t, loaded)
	})

	t.Run("backend failures", func(t *testing.T) {
		blobs := storetest.NewMockBlobStore(gomock.NewController(t))
		blobs.EXPECT().Put(gomock.Any(), kvstore.IdentitiesKey, gomock.Any()).Return(errors.New("put failed"))
		blobs.EXPECT().Get(gomock.Any(), kvstore.IdentitiesKey).Return(nil, errors.New("get failed"))
		blobs.EXPECT().Delete(gomock.Any(), kvstore.IdentitiesKey).Return(errors.New("delete failed"))

		store := kvstore.NewStore(blobs, kvstore.ScopeDurable)

		err := store.Save(ctx, storetest.Identities())
		require.ErrorContains(t, err, "put failed")
		require.Equal(t, coreerr.BackendFailure, coreerr.CodeOf(err))

		_, err = store.Load(ctx)
		require.ErrorContains(t, err, "get failed")

		require.ErrorContains(t, store.Clear(ctx), "delete failed")
	})
}
