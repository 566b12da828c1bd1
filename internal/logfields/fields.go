/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package logfields

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log Fields.
const (
	FieldIdentityID     = "identityID"
	FieldCredentialID   = "credentialID"
	FieldCredentialIDs  = "credentialIDs"
	FieldVerifierID     = "verifierID"
	FieldSessionID      = "sessionID"
	FieldProviderID     = "providerID"
	FieldStorageType    = "storageType"
	FieldContentHash    = "contentHash"
	FieldTxHash         = "txHash"
	FieldNetwork        = "network"
	FieldIdentityCount  = "identityCount"
	FieldBatchSize      = "batchSize"
	FieldValid          = "valid"
	FieldJSONSchemaID   = "JSONSchemaID"
	FieldJSONSchema     = "JSONSchema"
	FieldDisclosedAttrs = "disclosedAttributes"
	FieldUserLogLevel   = "userLogLevel"
	FieldResult         = "result"
)

// WithIdentityID sets the IdentityID field.
func WithIdentityID(id string) zap.Field {
	return zap.String(FieldIdentityID, id)
}

// WithCredentialID sets the CredentialID field.
func WithCredentialID(id string) zap.Field {
	return zap.String(FieldCredentialID, id)
}

// WithCredentialIDs sets the CredentialIDs field.
func WithCredentialIDs(ids []string) zap.Field {
	return zap.Strings(FieldCredentialIDs, ids)
}

// WithVerifierID sets the VerifierID field.
func WithVerifierID(id string) zap.Field {
	return zap.String(FieldVerifierID, id)
}

// WithSessionID sets the SessionID field.
func WithSessionID(id string) zap.Field {
	return zap.String(FieldSessionID, id)
}

// WithProviderID sets the ProviderID field.
func WithProviderID(id string) zap.Field {
	return zap.String(FieldProviderID, id)
}

// WithStorageType sets the StorageType field.
func WithStorageType(storageType string) zap.Field {
	return zap.String(FieldStorageType, storageType)
}

// WithContentHash sets the ContentHash field.
func WithContentHash(hash string) zap.Field {
	return zap.String(FieldContentHash, hash)
}

// WithTxHash sets the TxHash field.
func WithTxHash(hash string) zap.Field {
	return zap.String(FieldTxHash, hash)
}

// WithNetwork sets the Network field.
func WithNetwork(network string) zap.Field {
	return zap.String(FieldNetwork, network)
}

// WithIdentityCount sets the IdentityCount field.
func WithIdentityCount(count int) zap.Field {
	return zap.Int(FieldIdentityCount, count)
}

// WithBatchSize sets the BatchSize field.
func WithBatchSize(size int) zap.Field {
	return zap.Int(FieldBatchSize, size)
}

// WithValid sets the Valid field.
func WithValid(valid bool) zap.Field {
	return zap.Bool(FieldValid, valid)
}

// WithJSONSchemaID sets the JSONSchemaID field.
func WithJSONSchemaID(id string) zap.Field {
	return zap.String(FieldJSONSchemaID, id)
}

// WithJSONSchema sets the JSONSchema field.
func WithJSONSchema(schema string) zap.Field {
	return zap.String(FieldJSONSchema, schema)
}

// WithDisclosedAttributes sets the DisclosedAttributes field.
func WithDisclosedAttributes(names []string) zap.Field {
	return zap.Strings(FieldDisclosedAttrs, names)
}

// WithUserLogLevel sets the UserLogLevel field.
func WithUserLogLevel(logLevel string) zap.Field {
	return zap.String(FieldUserLogLevel, logLevel)
}

// WithResult sets the Result field.
func WithResult(result interface{}) zap.Field {
	return zap.Inline(NewObjectMarshaller(FieldResult, result))
}

// ObjectMarshaller uses reflection to marshal an object's fields.
type ObjectMarshaller struct {
	key string
	obj interface{}
}

// NewObjectMarshaller returns a new ObjectMarshaller.
func NewObjectMarshaller(key string, obj interface{}) *ObjectMarshaller {
	return &ObjectMarshaller{key: key, obj: obj}
}

// MarshalLogObject marshals the object's fields.
func (m *ObjectMarshaller) MarshalLogObject(e zapcore.ObjectEncoder) error {
	return e.AddReflected(m.key, m.obj)
}
