/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package common

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/spf13/cobra"

	"github.com/trustbloc/anonid/internal/pkg/log"
	tlsutils "github.com/trustbloc/anonid/internal/pkg/utils/tls"
	"github.com/trustbloc/anonid/pkg/coreerr"
	"github.com/trustbloc/anonid/pkg/storage"
	"github.com/trustbloc/anonid/pkg/storage/provider"
	cmdutils "github.com/trustbloc/anonid/pkg/utils/cmd"
)

const (
	envKeyPrefix = "ANONID_"

	// StorageTypeFlagName selects the identity store backend.
	StorageTypeFlagName  = "storage-type"
	StorageTypeEnvKey    = envKeyPrefix + "STORAGE_TYPE"
	StorageTypeFlagUsage = "Identity store backend. Supported values: memory, localStorage, sessionStorage, " +
		"indexedDB, mongodb, ipfs, blockchain, hybrid. Defaults to memory." +
		" Alternatively, this can be set with the following environment variable: " + StorageTypeEnvKey

	HybridMembersFlagName  = "hybrid-members"
	HybridMembersEnvKey    = envKeyPrefix + "HYBRID_MEMBERS"
	HybridMembersFlagUsage = "Comma-separated backends of a hybrid store in priority order. Every member shares " +
		"the other storage settings." +
		" Alternatively, this can be set with the following environment variable: " + HybridMembersEnvKey

	GatewayURLFlagName  = "gateway-url"
	GatewayURLEnvKey    = envKeyPrefix + "GATEWAY_URL"
	GatewayURLFlagUsage = "Gateway reported by the content-addressed store. Defaults to " + storage.DefaultGatewayURL +
		" Alternatively, this can be set with the following environment variable: " + GatewayURLEnvKey

	NetworkFlagName  = "network"
	NetworkEnvKey    = envKeyPrefix + "NETWORK"
	NetworkFlagUsage = "Ledger network of the blockchain store. Supported values: ethereum, polygon, arbitrum." +
		" Alternatively, this can be set with the following environment variable: " + NetworkEnvKey

	RedisAddrsFlagName  = "redis-addrs"
	RedisAddrsEnvKey    = envKeyPrefix + "REDIS_ADDRS"
	RedisAddrsFlagUsage = "Comma-separated Redis addresses. Required by localStorage." +
		" Alternatively, this can be set with the following environment variable: " + RedisAddrsEnvKey

	RedisMasterNameFlagName  = "redis-master-name"
	RedisMasterNameEnvKey    = envKeyPrefix + "REDIS_MASTER_NAME"
	RedisMasterNameFlagUsage = "Redis sentinel master name." +
		" Alternatively, this can be set with the following environment variable: " + RedisMasterNameEnvKey

	RedisPasswordFlagName  = "redis-password"
	RedisPasswordEnvKey    = envKeyPrefix + "REDIS_PASSWORD"
	RedisPasswordFlagUsage = "Redis password." +
		" Alternatively, this can be set with the following environment variable: " + RedisPasswordEnvKey

	MongoDBURLFlagName  = "mongodb-url"
	MongoDBURLEnvKey    = envKeyPrefix + "MONGODB_URL"
	MongoDBURLFlagUsage = "MongoDB connection string. Required by mongodb." +
		" Alternatively, this can be set with the following environment variable: " + MongoDBURLEnvKey

	MongoDBDatabaseFlagName  = "mongodb-database"
	MongoDBDatabaseEnvKey    = envKeyPrefix + "MONGODB_DATABASE"
	MongoDBDatabaseFlagUsage = "MongoDB database name. Defaults to anonid." +
		" Alternatively, this can be set with the following environment variable: " + MongoDBDatabaseEnvKey

	LevelDBPathFlagName  = "leveldb-path"
	LevelDBPathEnvKey    = envKeyPrefix + "LEVELDB_PATH"
	LevelDBPathFlagUsage = "Directory of the local structured database. Required by indexedDB." +
		" Alternatively, this can be set with the following environment variable: " + LevelDBPathEnvKey

	S3BucketFlagName  = "s3-bucket"
	S3BucketEnvKey    = envKeyPrefix + "S3_BUCKET"
	S3BucketFlagUsage = "S3 bucket keeping content-addressed and ledger payloads." +
		" Alternatively, this can be set with the following environment variable: " + S3BucketEnvKey

	S3RegionFlagName  = "s3-region"
	S3RegionEnvKey    = envKeyPrefix + "S3_REGION"
	S3RegionFlagUsage = "S3 region." +
		" Alternatively, this can be set with the following environment variable: " + S3RegionEnvKey

	S3EndpointFlagName  = "s3-endpoint"
	S3EndpointEnvKey    = envKeyPrefix + "S3_ENDPOINT"
	S3EndpointFlagUsage = "Custom S3 endpoint, e.g. a local S3 compatible server." +
		" Alternatively, this can be set with the following environment variable: " + S3EndpointEnvKey

	StorageTimeoutFlagName  = "storage-timeout"
	StorageTimeoutEnvKey    = envKeyPrefix + "STORAGE_TIMEOUT"
	StorageTimeoutFlagUsage = "Timeout of a single Redis or MongoDB operation, e.g. 5s." +
		" Alternatively, this can be set with the following environment variable: " + StorageTimeoutEnvKey

	StorageRetriesFlagName  = "storage-retries"
	StorageRetriesEnvKey    = envKeyPrefix + "STORAGE_RETRIES"
	StorageRetriesFlagUsage = "Number of one second retries until the storage backend is available." +
		" Defaults to 0." +
		" Alternatively, this can be set with the following environment variable: " + StorageRetriesEnvKey

	TLSSystemCertPoolFlagName  = "tls-systemcertpool"
	TLSSystemCertPoolEnvKey    = envKeyPrefix + "TLS_SYSTEMCERTPOOL"
	TLSSystemCertPoolFlagUsage = "Use system certificate pool for Redis TLS. Possible values [true] [false]." +
		" Alternatively, this can be set with the following environment variable: " + TLSSystemCertPoolEnvKey

	TLSCACertsFlagName  = "tls-cacerts"
	TLSCACertsEnvKey    = envKeyPrefix + "TLS_CACERTS"
	TLSCACertsFlagUsage = "Comma-separated list of CA cert paths trusted for Redis TLS." +
		" Alternatively, this can be set with the following environment variable: " + TLSCACertsEnvKey

	defaultMongoDBDatabase = "anonid"
)

// StorageParameters holds the identity store configuration.
type StorageParameters struct {
	Config  *storage.Config
	Retries uint64
}

// Flags registers the storage flags.
func Flags(cmd *cobra.Command) {
	cmd.Flags().String(StorageTypeFlagName, string(storage.TypeMemory), StorageTypeFlagUsage)
	cmd.Flags().StringSlice(HybridMembersFlagName, nil, HybridMembersFlagUsage)
	cmd.Flags().String(GatewayURLFlagName, "", GatewayURLFlagUsage)
	cmd.Flags().String(NetworkFlagName, "", NetworkFlagUsage)
	cmd.Flags().StringSlice(RedisAddrsFlagName, nil, RedisAddrsFlagUsage)
	cmd.Flags().String(RedisMasterNameFlagName, "", RedisMasterNameFlagUsage)
	cmd.Flags().String(RedisPasswordFlagName, "", RedisPasswordFlagUsage)
	cmd.Flags().String(MongoDBURLFlagName, "", MongoDBURLFlagUsage)
	cmd.Flags().String(MongoDBDatabaseFlagName, defaultMongoDBDatabase, MongoDBDatabaseFlagUsage)
	cmd.Flags().String(LevelDBPathFlagName, "", LevelDBPathFlagUsage)
	cmd.Flags().String(S3BucketFlagName, "", S3BucketFlagUsage)
	cmd.Flags().String(S3RegionFlagName, "", S3RegionFlagUsage)
	cmd.Flags().String(S3EndpointFlagName, "", S3EndpointFlagUsage)
	cmd.Flags().String(StorageTimeoutFlagName, "", StorageTimeoutFlagUsage)
	cmd.Flags().String(StorageRetriesFlagName, "", StorageRetriesFlagUsage)
	cmd.Flags().String(TLSSystemCertPoolFlagName, "", TLSSystemCertPoolFlagUsage)
	cmd.Flags().StringSlice(TLSCACertsFlagName, nil, TLSCACertsFlagUsage)
}

// StorageParams fetches the storage parameters configured for this command.
func StorageParams(cmd *cobra.Command) (*StorageParameters, error) {
	base := &storage.Config{
		GatewayURL:        cmdutils.GetUserSetOptionalVarFromString(cmd, GatewayURLFlagName, GatewayURLEnvKey),
		Network:           cmdutils.GetUserSetOptionalVarFromString(cmd, NetworkFlagName, NetworkEnvKey),
		RedisAddrs:        cmdutils.GetUserSetOptionalCSVVar(cmd, RedisAddrsFlagName, RedisAddrsEnvKey),
		RedisMasterName:   cmdutils.GetUserSetOptionalVarFromString(cmd, RedisMasterNameFlagName, RedisMasterNameEnvKey),
		RedisPassword:     cmdutils.GetUserSetOptionalVarFromString(cmd, RedisPasswordFlagName, RedisPasswordEnvKey),
		MongoDBConnString: cmdutils.GetUserSetOptionalVarFromString(cmd, MongoDBURLFlagName, MongoDBURLEnvKey),
		MongoDBDatabase:   cmdutils.GetUserSetOptionalVarFromString(cmd, MongoDBDatabaseFlagName, MongoDBDatabaseEnvKey),
		LevelDBPath:       cmdutils.GetUserSetOptionalVarFromString(cmd, LevelDBPathFlagName, LevelDBPathEnvKey),
		S3Bucket:          cmdutils.GetUserSetOptionalVarFromString(cmd, S3BucketFlagName, S3BucketEnvKey),
		S3Region:          cmdutils.GetUserSetOptionalVarFromString(cmd, S3RegionFlagName, S3RegionEnvKey),
		S3Endpoint:        cmdutils.GetUserSetOptionalVarFromString(cmd, S3EndpointFlagName, S3EndpointEnvKey),
	}

	timeout, err := cmdutils.GetUserSetOptionalDuration(cmd, StorageTimeoutFlagName, StorageTimeoutEnvKey, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to configure storage timeout: %w", err)
	}

	base.Timeout = timeout

	useSystemCertPool, err := cmdutils.GetUserSetOptionalBool(cmd, TLSSystemCertPoolFlagName, TLSSystemCertPoolEnvKey)
	if err != nil {
		return nil, fmt.Errorf("failed to configure tls: %w", err)
	}

	base.RedisTLSConfig, err = tlsutils.GetConfig(useSystemCertPool,
		cmdutils.GetUserSetOptionalCSVVar(cmd, TLSCACertsFlagName, TLSCACertsEnvKey))
	if err != nil {
		return nil, fmt.Errorf("failed to configure tls: %w", err)
	}

	retries := uint64(0)

	if v := cmdutils.GetUserSetOptionalVarFromString(cmd, StorageRetriesFlagName, StorageRetriesEnvKey); v != "" {
		retries, err = strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse storage retries %s: %w", v, err)
		}
	}

	cfg := *base
	cfg.Type = storage.Type(cmdutils.GetUserSetOptionalVarFromString(cmd, StorageTypeFlagName, StorageTypeEnvKey))

	if cfg.Type == storage.TypeHybrid {
		for _, member := range cmdutils.GetUserSetOptionalCSVVar(cmd, HybridMembersFlagName, HybridMembersEnvKey) {
			memberCfg := *base
			memberCfg.Type = storage.Type(member)

			cfg.Members = append(cfg.Members, memberCfg)
		}
	}

	return &StorageParameters{Config: &cfg, Retries: retries}, nil
}

// InitStore builds the identity store, retrying backend failures while the backend comes up. Input errors
// are returned immediately.
func InitStore(ctx context.Context, params *StorageParameters, logger *log.Log,
	opts ...provider.Opt) (*provider.Store, error) {
	var store *provider.Store

	err := retry(
		func() error {
			var openErr error

			store, openErr = provider.New(ctx, params.Config, opts...)
			if coreerr.IsInputError(openErr) {
				return backoff.Permanent(openErr)
			}

			return openErr
		},
		params.Retries,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to init %s identity store: %w", params.Config.Type, err)
	}

	return store, nil
}

func retry(task func() error, numRetries uint64, logger *log.Log) error {
	const sleep = 1 * time.Second

	return backoff.RetryNotify(
		task,
		backoff.WithMaxRetries(backoff.NewConstantBackOff(sleep), numRetries),
		func(retryErr error, t time.Duration) {
			logger.Warn("Failed to connect to storage, will sleep before trying again.",
				log.WithDuration(t), log.WithError(retryErr))
		},
	)
}
