/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package containers

import (
	"context"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	dctest "github.com/ory/dockertest/v3"
	dc "github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	dockerRedisImage = "redis"
	dockerRedisTag   = "alpine3.17"

	dockerMongoDBImage = "mongo"
	dockerMongoDBTag   = "4.0.0"
)

// StartRedis runs a Redis container published on hostPort for the duration of the test and returns its
// address. The test is skipped when no Docker daemon is reachable.
func StartRedis(t *testing.T, hostPort string) string {
	t.Helper()

	pool := newPool(t)

	resource, err := pool.RunWithOptions(&dctest.RunOptions{
		Repository: dockerRedisImage,
		Tag:        dockerRedisTag,
		PortBindings: map[dc.Port][]dc.PortBinding{
			"6379/tcp": {{HostIP: "", HostPort: hostPort}},
		},
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, pool.Purge(resource), "failed to purge Redis resource")
	})

	addr := "localhost:" + hostPort

	require.NoError(t, waitFor(func() error { return pingRedis(addr) }))

	return addr
}

// StartMongoDB runs a MongoDB container published on hostPort for the duration of the test and returns
// its connection string. The test is skipped when no Docker daemon is reachable.
func StartMongoDB(t *testing.T, hostPort string) string {
	t.Helper()

	pool := newPool(t)

	resource, err := pool.RunWithOptions(&dctest.RunOptions{
		Repository: dockerMongoDBImage,
		Tag:        dockerMongoDBTag,
		PortBindings: map[dc.Port][]dc.PortBinding{
			"27017/tcp": {{HostIP: "", HostPort: hostPort}},
		},
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, pool.Purge(resource), "failed to purge MongoDB resource")
	})

	connString := "mongodb://localhost:" + hostPort

	require.NoError(t, waitFor(func() error { return pingMongoDB(connString) }))

	return connString
}

func newPool(t *testing.T) *dctest.Pool {
	t.Helper()

	pool, err := dctest.NewPool("")
	if err != nil {
		t.Skipf("docker unavailable: %v", err)
	}

	if err = pool.Client.Ping(); err != nil {
		t.Skipf("docker unavailable: %v", err)
	}

	return pool
}

func waitFor(ping func() error) error {
	return backoff.Retry(ping, backoff.WithMaxRetries(backoff.NewConstantBackOff(time.Second), 30))
}

func pingRedis(addr string) error {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	defer rdb.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return rdb.Ping(ctx).Err()
}

func pingMongoDB(connString string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(connString))
	if err != nil {
		return err
	}

	defer mongoClient.Disconnect(ctx) //nolint:errcheck

	return mongoClient.Ping(ctx, nil)
}
