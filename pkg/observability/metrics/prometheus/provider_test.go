/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package prometheus

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPromProvider(t *testing.T) {
	t.Run("without server", func(t *testing.T) {
		provider := NewPrometheusProvider(nil)
		require.NotNil(t, provider)

		require.NoError(t, provider.Create())
		require.NotNil(t, provider.Metrics())
		require.NoError(t, provider.Destroy())
	})

	t.Run("with server", func(t *testing.T) {
		provider := NewPrometheusProvider(&http.Server{Addr: "127.0.0.1:0", ReadHeaderTimeout: time.Second})

		require.NoError(t, provider.Create())
		require.NoError(t, provider.Destroy())
	})
}

func TestMetrics(t *testing.T) {
	m := GetMetrics()
	require.NotNil(t, m)
	require.True(t, m == GetMetrics())

	require.NotPanics(t, func() { m.VerifyCredentialTime(time.Second) })
	require.NotPanics(t, func() { m.VerifyBatchSize(3) })
	require.NotPanics(t, func() { m.VerificationFailed() })
	require.NotPanics(t, func() { m.StorageSaveTime("memory", time.Millisecond) })
	require.NotPanics(t, func() { m.StorageLoadTime("memory", time.Millisecond) })
	require.NotPanics(t, func() { m.ActiveSessions(2) })
}

func TestPromMetrics_Values(t *testing.T) {
	pm := newPromMetrics()
	registerMetrics(prometheus.NewRegistry(), pm)

	pm.VerificationFailed()
	pm.VerificationFailed()
	pm.ActiveSessions(5)

	require.Equal(t, float64(2), testutil.ToFloat64(pm.verificationFailures))
	require.Equal(t, float64(5), testutil.ToFloat64(pm.activeSessions))
}

func TestNewGauge(t *testing.T) {
	require.NotNil(t, newGauge("session", "metric_name", "Some help", nil))
}

func TestNewCounter(t *testing.T) {
	labels := prometheus.Labels{"type": "create"}

	require.NotNil(t, newCounter("verifier", "metric_name", "Some help", labels))
}

func TestNewHistogram(t *testing.T) {
	labels := prometheus.Labels{"type": "create"}

	require.NotNil(t, newHistogram("storage", "metric_name", "Some help", labels))
}
