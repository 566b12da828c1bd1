/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package redis_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/trustbloc/anonid/pkg/coreerr"
	"github.com/trustbloc/anonid/internal/pkg/testutil/containers"
	"github.com/trustbloc/anonid/pkg/storage/redis"
)

func TestClient(t *testing.T) {
	t.Run("No addresses", func(t *testing.T) {
		client, err := redis.New(context.Background(), nil)
		require.Nil(t, client)
		require.Equal(t, coreerr.MissingConfig, coreerr.CodeOf(err))
	})

	redisAddr := containers.StartRedis(t, "6380")

	t.Run("OK", func(t *testing.T) {
		client, err := redis.New(context.Background(), []string{redisAddr},
			redis.WithTraceProvider(trace.NewNoopTracerProvider()),
			redis.WithNamespace("test"),
		)
		require.NoError(t, err)
		require.NotNil(t, client)

		require.Equal(t, "test:blob:k", client.Key("blob", "k"))
		require.NoError(t, client.Close())
	})

	t.Run("Timeout", func(t *testing.T) {
		client, err := redis.New(context.Background(), []string{redisAddr}, redis.WithTimeout(0))

		require.Nil(t, client)
		require.Error(t, err)
		require.Contains(t, err.Error(), "context deadline exceeded")
	})
}
