/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package storage

import (
	"crypto/tls"
	"time"
)

// Type is the tag a caller uses to pick a backend.
type Type string

const (
	TypeMemory     Type = "memory"
	TypeLocal      Type = "localStorage"
	TypeSession    Type = "sessionStorage"
	TypeDatabase   Type = "indexedDB"
	TypeMongoDB    Type = "mongodb"
	TypeIPFS       Type = "ipfs"
	TypeBlockchain Type = "blockchain"
	TypeHybrid     Type = "hybrid"
)

// Ledger network labels.
const (
	NetworkEthereum = "ethereum"
	NetworkPolygon  = "polygon"
	NetworkArbitrum = "arbitrum"
)

// DefaultGatewayURL is the content gateway reported when none is configured.
const DefaultGatewayURL = "https://ipfs.io/ipfs/"

// Config selects and configures a backend.
type Config struct {
	Type Type

	// GatewayURL is reported by the content-addressed store.
	GatewayURL string
	// Network labels ledger records. Required for TypeBlockchain.
	Network string

	RedisAddrs      []string
	RedisMasterName string
	RedisPassword   string
	RedisTLSConfig  *tls.Config

	MongoDBConnString string
	MongoDBDatabase   string

	LevelDBPath string

	// S3Bucket, when set, makes the content-addressed and ledger stores keep their payloads in S3.
	S3Bucket   string
	S3Region   string
	S3Endpoint string

	// Members lists the backends of a hybrid store in priority order.
	Members []Config

	Timeout time.Duration
}

// Durable reports whether data written through this type outlives the process.
func (t Type) Durable() bool {
	switch t {
	case TypeMemory, TypeSession:
		return false
	default:
		return true
	}
}
