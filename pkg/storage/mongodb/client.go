/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mongodb

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/mongo"
	mongooptions "go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
	"go.opentelemetry.io/otel/trace"

	"github.com/trustbloc/anonid/pkg/coreerr"
)

const (
	defaultTimeout = 15 * time.Second
)

type Client struct {
	client       *mongo.Client
	databaseName string
	timeout      time.Duration
}

// New connects to MongoDB. Embedded documents decode to bson.M so stored documents convert back to JSON
// without key/value pair wrappers.
func New(ctx context.Context, connString string, databaseName string, opts ...ClientOpt) (*Client, error) {
	if connString == "" {
		return nil, coreerr.NewMissingConfig("mongodb connection string").WithComponent(coreerr.MongoDBComponent)
	}

	if databaseName == "" {
		return nil, coreerr.NewMissingConfig("mongodb database").WithComponent(coreerr.MongoDBComponent)
	}

	op := &clientOpts{
		timeout:  defaultTimeout,
		readPref: readpref.SecondaryPreferred(),
	}

	for _, fn := range opts {
		fn(op)
	}

	registry := bson.NewRegistryBuilder().
		RegisterTypeMapEntry(bsontype.EmbeddedDocument, reflect.TypeOf(bson.M{})).
		Build()

	mongoOpts := mongooptions.Client()
	mongoOpts.ApplyURI(connString)
	mongoOpts.SetRegistry(registry)
	mongoOpts.ReadPreference = op.readPref
	mongoOpts.MaxPoolSize = lo.ToPtr(uint64(200))

	if op.traceProvider != nil {
		mongoOpts.Monitor = otelmongo.NewMonitor(otelmongo.WithTracerProvider(op.traceProvider))
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, op.timeout)
	defer cancel()

	client, err := mongo.Connect(ctxWithTimeout, mongoOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err = client.Ping(ctxWithTimeout, nil); err != nil {
		_ = client.Disconnect(context.Background()) //nolint:errcheck

		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &Client{
		client:       client,
		databaseName: databaseName,
		timeout:      op.timeout,
	}, nil
}

func (c *Client) Database() *mongo.Database {
	return c.client.Database(c.databaseName)
}

// ContextWithTimeout derives a context bounded by the client timeout.
func (c *Client) ContextWithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

func (c *Client) Close() error {
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	err := c.client.Disconnect(ctxWithTimeout)
	if err != nil {
		if err.Error() == "client is disconnected" {
			return nil
		}

		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}

	return nil
}

type clientOpts struct {
	timeout       time.Duration
	readPref      *readpref.ReadPref
	traceProvider trace.TracerProvider
}

type ClientOpt func(opts *clientOpts)

func WithTimeout(timeout time.Duration) ClientOpt {
	return func(opts *clientOpts) {
		opts.timeout = timeout
	}
}

func WithReadPref(readPref *readpref.ReadPref) ClientOpt {
	return func(opts *clientOpts) {
		opts.readPref = readPref
	}
}

func WithTraceProvider(traceProvider trace.TracerProvider) ClientOpt {
	return func(opts *clientOpts) {
		opts.traceProvider = traceProvider
	}
}
