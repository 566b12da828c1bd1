/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination blob_store_mocks_test.go -package blobstore_test -source=blob_store.go -mock_names s3Client=MockS3Client

package blobstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/trustbloc/anonid/pkg/coreerr"
)

const (
	contentType = "application/json"
	keyPrefix   = "anonid"
)

type s3Client interface {
	PutObject(
		ctx context.Context,
		input *s3.PutObjectInput,
		opts ...func(*s3.Options),
	) (*s3.PutObjectOutput, error)

	GetObject(
		ctx context.Context,
		input *s3.GetObjectInput,
		opts ...func(*s3.Options),
	) (*s3.GetObjectOutput, error)

	DeleteObject(
		ctx context.Context,
		input *s3.DeleteObjectInput,
		opts ...func(*s3.Options),
	) (*s3.DeleteObjectOutput, error)
}

// Store keeps blobs as objects in an S3 bucket.
type Store struct {
	s3Client s3Client
	bucket   string
}

// NewStore creates Store.
func NewStore(client s3Client, bucket string) *Store {
	return &Store{
		s3Client: client,
		bucket:   bucket,
	}
}

// NewClient builds an S3 client from the default AWS configuration chain. A non-empty endpoint
// switches to path-style addressing against that endpoint (e.g. a local S3-compatible server).
func NewClient(ctx context.Context, region, endpoint string) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.EndpointResolver = s3.EndpointResolverFromURL(endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Body:        bytes.NewReader(value),
		Key:         aws.String(resolveS3Key(key)),
		Bucket:      aws.String(s.bucket),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	res, err := s.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(resolveS3Key(key)),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, coreerr.ErrDataNotFound
		}

		return nil, fmt.Errorf("get object %s: %w", key, err)
	}

	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", key, err)
	}

	return b, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(resolveS3Key(key)),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}

	return nil
}

func resolveS3Key(key string) string {
	return path.Join(keyPrefix, key)
}
