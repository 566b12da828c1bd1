/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package redis_test

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	redischeck "github.com/trustbloc/anonid/pkg/observability/health/redis"
)

type pingerFunc func(ctx context.Context) *redis.StatusCmd

func (f pingerFunc) Ping(ctx context.Context) *redis.StatusCmd {
	return f(ctx)
}

func TestSuccess(t *testing.T) {
	check := redischeck.New(pingerFunc(func(ctx context.Context) *redis.StatusCmd {
		return redis.NewStatusResult("PONG", nil)
	}))

	require.NoError(t, check(context.Background()))
}

func TestFailToPingRedis(t *testing.T) {
	check := redischeck.New(pingerFunc(func(ctx context.Context) *redis.StatusCmd {
		return redis.NewStatusResult("", errors.New("connection refused"))
	}))

	require.ErrorContains(t, check(context.Background()), "failed to ping redis: connection refused")
}

func TestFailToPingUnreachableRedis(t *testing.T) {
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:                 []string{"localhost:1"},
		ContextTimeoutEnabled: true,
	})
	t.Cleanup(func() { _ = client.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorContains(t, redischeck.New(client)(ctx), "failed to ping redis")
}
