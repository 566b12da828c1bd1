/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"time"

	"github.com/trustbloc/anonid/internal/pkg/log"
)

// Logger used by different metrics provider.
var Logger = log.New("metrics-provider")

// Constants used by different metrics provider.
const (
	// Namespace Organization namespace.
	Namespace = "anonid"

	// Verifier operations.
	Verifier                   = "verifier"
	VerifyCredentialTimeMetric = "verifyCredential_seconds"
	VerifyBatchSizeMetric      = "verifyBatch_credentials"
	VerificationFailuresMetric = "verification_failures_total"

	// Storage operations.
	Storage               = "storage"
	StorageSaveTimeMetric = "save_seconds"
	StorageLoadTimeMetric = "load_seconds"
	StorageTypeLabel      = "type"

	// Session operations.
	Session              = "session"
	ActiveSessionsMetric = "active_sessions"
)

// Provider is an interface for metrics provider.
type Provider interface {
	// Create creates a metrics provider instance
	Create() error
	// Destroy destroys the metrics provider instance
	Destroy() error
	// Metrics providers metrics
	Metrics() Metrics
}

// Metrics is an interface for the metrics to be supported by the provider.
type Metrics interface {
	VerifyCredentialTime(value time.Duration)
	VerifyBatchSize(size int)
	VerificationFailed()
	StorageSaveTime(storageType string, value time.Duration)
	StorageLoadTime(storageType string, value time.Duration)
	ActiveSessions(count int)
}
