/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type pinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// New returns a health check pinging the Redis deployment behind client.
func New(client pinger) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to ping redis: %w", err)
		}

		return nil
	}
}
