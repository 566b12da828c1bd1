/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package coreerr

type Component string

const (
	IssuerComponent          Component = "credential-issuer"
	VerifierComponent        Component = "verification-engine"
	SessionComponent         Component = "session-manager"
	StorageProviderComp      Component = "storage-provider"
	MemoryStoreComponent     Component = "storage.memory"
	KVStoreComponent         Component = "storage.key-value"
	LevelDBComponent         Component = "storage.leveldb"
	MongoDBComponent         Component = "storage.mongodb"
	ContentStoreComponent    Component = "storage.content-addressed"
	LedgerStoreComponent     Component = "storage.ledger"
	HybridStoreComponent     Component = "storage.hybrid"
	S3BlobComponent          Component = "storage.s3"
	RedisComponent           Component = "redis-service"
	SchemaValidatorComponent Component = "attribute-schema-validator"
)
