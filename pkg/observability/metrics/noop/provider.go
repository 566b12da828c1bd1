/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package noop

import (
	"time"

	"github.com/trustbloc/anonid/pkg/observability/metrics"
)

// NoMetrics provides default no operation implementation for the Metrics interface.
type NoMetrics struct{}

// GetMetrics returns metrics implementation.
func GetMetrics() metrics.Metrics {
	return &NoMetrics{}
}

func (n *NoMetrics) VerifyCredentialTime(_ time.Duration)      {}
func (n *NoMetrics) VerifyBatchSize(_ int)                     {}
func (n *NoMetrics) VerificationFailed()                       {}
func (n *NoMetrics) StorageSaveTime(_ string, _ time.Duration) {}
func (n *NoMetrics) StorageLoadTime(_ string, _ time.Duration) {}
func (n *NoMetrics) ActiveSessions(_ int)                      {}
