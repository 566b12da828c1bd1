/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package blobstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/anonid/pkg/coreerr"
	"github.com/trustbloc/anonid/internal/pkg/testutil/containers"
	"github.com/trustbloc/anonid/pkg/storage/redis"
	"github.com/trustbloc/anonid/pkg/storage/redis/blobstore"
)

func TestStore(t *testing.T) {
	redisAddr := containers.StartRedis(t, "6381")

	ctx := context.Background()

	client, err := redis.New(ctx, []string{redisAddr})
	require.NoError(t, err)

	defer func() {
		require.NoError(t, client.Close())
	}()

	store := blobstore.NewStore(client)

	_, err = store.Get(ctx, "missing")
	require.ErrorIs(t, err, coreerr.ErrDataNotFound)

	require.NoError(t, store.Put(ctx, "key", []byte(`[{"id":"did:key:z6Mk"}]`)))

	got, err := store.Get(ctx, "key")
	require.NoError(t, err)
	require.Equal(t, []byte(`[{"id":"did:key:z6Mk"}]`), got)

	require.NoError(t, store.Delete(ctx, "key"))
	require.NoError(t, store.Delete(ctx, "key"))

	_, err = store.Get(ctx, "key")
	require.ErrorIs(t, err, coreerr.ErrDataNotFound)

	t.Run("Context canceled", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := store.Get(canceled, "key")
		require.Error(t, err)
	})
}
