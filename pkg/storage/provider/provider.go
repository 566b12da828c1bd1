/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package provider

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/trace"

	"github.com/trustbloc/anonid/internal/logfields"
	"github.com/trustbloc/anonid/internal/pkg/log"
	"github.com/trustbloc/anonid/pkg/coreerr"
	mongocheck "github.com/trustbloc/anonid/pkg/observability/health/mongo"
	redischeck "github.com/trustbloc/anonid/pkg/observability/health/redis"
	"github.com/trustbloc/anonid/pkg/observability/metrics"
	"github.com/trustbloc/anonid/pkg/observability/metrics/noop"
	"github.com/trustbloc/anonid/pkg/storage"
	"github.com/trustbloc/anonid/pkg/storage/cacheblob"
	"github.com/trustbloc/anonid/pkg/storage/contentstore"
	"github.com/trustbloc/anonid/pkg/storage/hybrid"
	"github.com/trustbloc/anonid/pkg/storage/kvstore"
	"github.com/trustbloc/anonid/pkg/storage/ledgerstore"
	"github.com/trustbloc/anonid/pkg/storage/leveldb"
	"github.com/trustbloc/anonid/pkg/storage/memstore"
	"github.com/trustbloc/anonid/pkg/storage/mongodb"
	"github.com/trustbloc/anonid/pkg/storage/mongodb/identitystore"
	"github.com/trustbloc/anonid/pkg/storage/redis"
	redisblobstore "github.com/trustbloc/anonid/pkg/storage/redis/blobstore"
	s3blobstore "github.com/trustbloc/anonid/pkg/storage/s3/blobstore"
)

var logger = log.New("storage-provider")

type options struct {
	metrics       metrics.Metrics
	traceProvider trace.TracerProvider
}

type Opt func(o *options)

// WithMetrics times save and load of the returned store.
func WithMetrics(m metrics.Metrics) Opt {
	return func(o *options) {
		o.metrics = m
	}
}

// WithTraceProvider instruments the Redis and MongoDB clients.
func WithTraceProvider(tp trace.TracerProvider) Opt {
	return func(o *options) {
		o.traceProvider = tp
	}
}

// Store is the IdentityStore built from a storage.Config. Close releases the connections it opened.
type Store struct {
	storage.IdentityStore

	closers []func() error
	checks  map[string]func(ctx context.Context) error
}

// HealthChecks returns a ping check per remote backend the store depends on, keyed by backend name.
func (s *Store) HealthChecks() map[string]func(ctx context.Context) error {
	return s.checks
}

func (s *Store) Close() error {
	var errs []error

	for _, c := range s.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// New builds the backend selected by cfg.Type.
func New(ctx context.Context, cfg *storage.Config, opts ...Opt) (*Store, error) {
	o := &options{metrics: noop.GetMetrics()}

	for _, opt := range opts {
		opt(o)
	}

	b := &builder{opts: o, checks: map[string]func(ctx context.Context) error{}}

	store, err := b.build(ctx, cfg)
	if err != nil {
		_ = (&Store{closers: b.closers}).Close() //nolint:errcheck

		return nil, err
	}

	logger.Infoc(ctx, "Identity store created",
		logfields.WithStorageType(string(cfg.Type)), log.WithAdditionalMessage(durability(cfg.Type)))

	return &Store{
		IdentityStore: storage.WithMetrics(store, cfg.Type, o.metrics),
		closers:       b.closers,
		checks:        b.checks,
	}, nil
}

type builder struct {
	opts    *options
	closers []func() error
	checks  map[string]func(ctx context.Context) error
}

func (b *builder) addCheck(name string, check func(ctx context.Context) error) {
	key := name

	for i := 2; b.checks[key] != nil; i++ {
		key = fmt.Sprintf("%s-%d", name, i)
	}

	b.checks[key] = check
}

func (b *builder) build(ctx context.Context, cfg *storage.Config) (storage.IdentityStore, error) {
	switch cfg.Type {
	case storage.TypeMemory:
		return memstore.NewStore(), nil
	case storage.TypeLocal:
		client, err := b.redisClient(ctx, cfg)
		if err != nil {
			return nil, err
		}

		return kvstore.NewStore(redisblobstore.NewStore(client), kvstore.ScopeDurable), nil
	case storage.TypeSession:
		return kvstore.NewStore(cacheblob.Process(), kvstore.ScopeProcess), nil
	case storage.TypeDatabase:
		store, err := leveldb.Open(cfg.LevelDBPath)
		if err != nil {
			return nil, err
		}

		b.closers = append(b.closers, store.Close)

		return store, nil
	case storage.TypeMongoDB:
		mongoOpts := []mongodb.ClientOpt{}
		if cfg.Timeout > 0 {
			mongoOpts = append(mongoOpts, mongodb.WithTimeout(cfg.Timeout))
		}

		if b.opts.traceProvider != nil {
			mongoOpts = append(mongoOpts, mongodb.WithTraceProvider(b.opts.traceProvider))
		}

		client, err := mongodb.New(ctx, cfg.MongoDBConnString, cfg.MongoDBDatabase, mongoOpts...)
		if err != nil {
			return nil, err
		}

		b.closers = append(b.closers, client.Close)
		b.addCheck("mongodb", mongocheck.New(client.Database().Client()))

		return identitystore.NewStore(client), nil
	case storage.TypeIPFS:
		blobs, err := b.payloadBlobs(ctx, cfg)
		if err != nil {
			return nil, err
		}

		return contentstore.NewStore(blobs, cfg.GatewayURL), nil
	case storage.TypeBlockchain:
		if cfg.Network == "" {
			return nil, coreerr.NewMissingConfig("network").WithComponent(coreerr.StorageProviderComp)
		}

		blobs, err := b.payloadBlobs(ctx, cfg)
		if err != nil {
			return nil, err
		}

		return ledgerstore.NewStore(blobs, cfg.Network)
	case storage.TypeHybrid:
		return b.hybrid(ctx, cfg)
	default:
		return nil, coreerr.New(coreerr.UnsupportedStorageType,
			fmt.Errorf("%w: %q", coreerr.ErrUnsupportedStore, cfg.Type)).
			WithComponent(coreerr.StorageProviderComp).
			WithIncorrectValue(string(cfg.Type))
	}
}

func (b *builder) hybrid(ctx context.Context, cfg *storage.Config) (storage.IdentityStore, error) {
	members := make([]hybrid.Member, 0, len(cfg.Members))

	for i := range cfg.Members {
		memberCfg := cfg.Members[i]

		if memberCfg.Type == storage.TypeHybrid {
			return nil, coreerr.NewInvalidValue(errors.New("hybrid store cannot be a hybrid member")).
				WithComponent(coreerr.StorageProviderComp).
				WithIncorrectValue(string(memberCfg.Type))
		}

		store, err := b.build(ctx, &memberCfg)
		if err != nil {
			return nil, fmt.Errorf("hybrid member %s: %w", memberCfg.Type, err)
		}

		members = append(members, hybrid.Member{Name: string(memberCfg.Type), Store: store})
	}

	return hybrid.NewStore(members...)
}

// payloadBlobs picks where content and ledger payloads live: S3 when a bucket is configured, Redis when
// addresses are, process memory otherwise.
func (b *builder) payloadBlobs(ctx context.Context, cfg *storage.Config) (storage.BlobStore, error) {
	switch {
	case cfg.S3Bucket != "":
		client, err := s3blobstore.NewClient(ctx, cfg.S3Region, cfg.S3Endpoint)
		if err != nil {
			return nil, coreerr.NewBackendFailure(err).WithComponent(coreerr.S3BlobComponent)
		}

		return s3blobstore.NewStore(client, cfg.S3Bucket), nil
	case len(cfg.RedisAddrs) > 0:
		client, err := b.redisClient(ctx, cfg)
		if err != nil {
			return nil, err
		}

		return redisblobstore.NewStore(client), nil
	default:
		return cacheblob.Process(), nil
	}
}

func (b *builder) redisClient(ctx context.Context, cfg *storage.Config) (*redis.Client, error) {
	redisOpts := []redis.ClientOpt{
		redis.WithMasterName(cfg.RedisMasterName),
		redis.WithPassword(cfg.RedisPassword),
		redis.WithTLSConfig(cfg.RedisTLSConfig),
	}

	if cfg.Timeout > 0 {
		redisOpts = append(redisOpts, redis.WithTimeout(cfg.Timeout))
	}

	if b.opts.traceProvider != nil {
		redisOpts = append(redisOpts, redis.WithTraceProvider(b.opts.traceProvider))
	}

	client, err := redis.New(ctx, cfg.RedisAddrs, redisOpts...)
	if err != nil {
		return nil, err
	}

	b.closers = append(b.closers, client.Close)
	b.addCheck("redis", redischeck.New(client.API()))

	return client, nil
}

func durability(t storage.Type) string {
	if t.Durable() {
		return "durable"
	}

	return "volatile"
}
