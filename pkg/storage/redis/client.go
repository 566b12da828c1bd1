/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package redis

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"

	"github.com/trustbloc/anonid/pkg/coreerr"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultNamespace = "anonid"
)

type clientOpts struct {
	masterName    string
	password      string
	namespace     string
	tlsConfig     *tls.Config
	timeout       time.Duration
	traceProvider trace.TracerProvider
}

type ClientOpt func(opts *clientOpts)

func WithTraceProvider(traceProvider trace.TracerProvider) ClientOpt {
	return func(opts *clientOpts) {
		opts.traceProvider = traceProvider
	}
}

func WithMasterName(masterName string) ClientOpt {
	return func(opts *clientOpts) {
		opts.masterName = masterName
	}
}

func WithPassword(password string) ClientOpt {
	return func(opts *clientOpts) {
		opts.password = password
	}
}

func WithTLSConfig(tlsConfig *tls.Config) ClientOpt {
	return func(opts *clientOpts) {
		opts.tlsConfig = tlsConfig
	}
}

func WithTimeout(timeout time.Duration) ClientOpt {
	return func(opts *clientOpts) {
		opts.timeout = timeout
	}
}

// WithNamespace sets the prefix of every key written through the client.
func WithNamespace(namespace string) ClientOpt {
	return func(opts *clientOpts) {
		opts.namespace = namespace
	}
}

type Client struct {
	client    redis.UniversalClient
	namespace string
	timeout   time.Duration
}

// New connects to Redis. A sentinel-backed client is returned when a master name is set,
// a cluster client for two or more addresses and a single-node client otherwise.
func New(ctx context.Context, addrs []string, opts ...ClientOpt) (*Client, error) {
	if len(addrs) == 0 {
		return nil, coreerr.NewMissingConfig("redis addresses").WithComponent(coreerr.RedisComponent)
	}

	opt := &clientOpts{
		timeout:   defaultTimeout,
		namespace: defaultNamespace,
	}

	for _, f := range opts {
		f(opt)
	}

	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:                 addrs,
		ContextTimeoutEnabled: true,
		MasterName:            opt.masterName,
		Password:              opt.password,
		TLSConfig:             opt.tlsConfig,
	})

	if opt.traceProvider != nil {
		err := redisotel.InstrumentTracing(client, redisotel.WithTracerProvider(opt.traceProvider))
		if err != nil {
			return nil, fmt.Errorf("instrument with tracing: %w", err)
		}
	}

	pingCtx, cancel := context.WithTimeout(ctx, opt.timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close() //nolint:errcheck

		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{
		client:    client,
		namespace: opt.namespace,
		timeout:   opt.timeout,
	}, nil
}

// ContextWithTimeout derives a context bounded by the client timeout.
func (c *Client) ContextWithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

func (c *Client) API() redis.UniversalClient {
	return c.client
}

// Key joins parts under the client namespace.
func (c *Client) Key(parts ...string) string {
	return strings.Join(append([]string{c.namespace}, parts...), ":")
}

func (c *Client) Close() error {
	return c.client.Close()
}
