/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package prometheus

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/trustbloc/anonid/internal/pkg/log"
	"github.com/trustbloc/anonid/pkg/observability/metrics"
)

var logger = metrics.Logger

var (
	createOnce sync.Once       //nolint:gochecknoglobals
	instance   metrics.Metrics //nolint:gochecknoglobals
)

type promProvider struct {
	httpServer *http.Server
}

// NewPrometheusProvider creates new instance of Prometheus Metrics Provider. The metrics endpoint is served
// by httpServer when it is not nil.
func NewPrometheusProvider(httpServer *http.Server) metrics.Provider {
	return &promProvider{httpServer: httpServer}
}

// Create creates/initializes the prometheus metrics provider.
func (pp *promProvider) Create() error {
	if pp.httpServer == nil {
		return nil
	}

	if pp.httpServer.Handler == nil {
		mux := http.NewServeMux()
		mux.Handle(NewHandler().Path(), NewHandler().Handler())
		pp.httpServer.Handler = mux
	}

	go func() {
		if err := pp.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics HTTP server stopped", log.WithError(err))
		}
	}()

	return nil
}

// Metrics returns supported metrics.
func (pp *promProvider) Metrics() metrics.Metrics {
	return GetMetrics()
}

// Destroy destroys the prometheus metrics provider.
func (pp *promProvider) Destroy() error {
	if pp.httpServer != nil {
		return pp.httpServer.Shutdown(context.Background())
	}

	return nil
}

// GetMetrics returns metrics implementation.
func GetMetrics() metrics.Metrics {
	createOnce.Do(func() {
		instance = NewMetrics()
	})

	return instance
}

// PromMetrics manages the metrics for the trust engine.
type PromMetrics struct {
	verifyTime           prometheus.Histogram
	batchSize            prometheus.Histogram
	verificationFailures prometheus.Counter
	saveTime             *prometheus.HistogramVec
	loadTime             *prometheus.HistogramVec
	activeSessions       prometheus.Gauge
}

// NewMetrics creates instance of prometheus metrics.
func NewMetrics() metrics.Metrics {
	pm := newPromMetrics()

	registerMetrics(prometheus.DefaultRegisterer, pm)

	return pm
}

func newPromMetrics() *PromMetrics {
	return &PromMetrics{
		verifyTime:           newVerifyTime(),
		batchSize:            newBatchSize(),
		verificationFailures: newVerificationFailures(),
		saveTime:             newStorageTime(metrics.StorageSaveTimeMetric, "save"),
		loadTime:             newStorageTime(metrics.StorageLoadTimeMetric, "load"),
		activeSessions:       newActiveSessions(),
	}
}

// VerifyCredentialTime records the time it takes to verify one credential.
func (pm *PromMetrics) VerifyCredentialTime(value time.Duration) {
	pm.verifyTime.Observe(value.Seconds())

	logger.Debug("verify credential time", log.WithDuration(value))
}

// VerifyBatchSize records the number of credentials in a batch verification.
func (pm *PromMetrics) VerifyBatchSize(size int) {
	pm.batchSize.Observe(float64(size))
}

// VerificationFailed counts a verification that ended with an invalid result.
func (pm *PromMetrics) VerificationFailed() {
	pm.verificationFailures.Inc()
}

func (pm *PromMetrics) StorageSaveTime(storageType string, value time.Duration) {
	pm.saveTime.WithLabelValues(storageType).Observe(value.Seconds())

	logger.Debug("storage save time", log.WithName(storageType), log.WithDuration(value))
}

func (pm *PromMetrics) StorageLoadTime(storageType string, value time.Duration) {
	pm.loadTime.WithLabelValues(storageType).Observe(value.Seconds())

	logger.Debug("storage load time", log.WithName(storageType), log.WithDuration(value))
}

func (pm *PromMetrics) ActiveSessions(count int) {
	pm.activeSessions.Set(float64(count))
}

func registerMetrics(r prometheus.Registerer, pm *PromMetrics) {
	r.MustRegister(
		pm.verifyTime, pm.batchSize, pm.verificationFailures, pm.saveTime, pm.loadTime, pm.activeSessions,
	)
}

func newCounter(subsystem, name, help string, labels prometheus.Labels) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   metrics.Namespace,
		Subsystem:   subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: labels,
	})
}

func newGauge(subsystem, name, help string, labels prometheus.Labels) prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   metrics.Namespace,
		Subsystem:   subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: labels,
	})
}

func newHistogram(subsystem, name, help string, labels prometheus.Labels) prometheus.Histogram {
	return prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace:   metrics.Namespace,
		Subsystem:   subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: labels,
	})
}

func newVerifyTime() prometheus.Histogram {
	return newHistogram(
		metrics.Verifier, metrics.VerifyCredentialTimeMetric,
		"The time (in seconds) it takes to verify a credential.",
		nil,
	)
}

func newBatchSize() prometheus.Histogram {
	return prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: metrics.Namespace,
		Subsystem: metrics.Verifier,
		Name:      metrics.VerifyBatchSizeMetric,
		Help:      "The number of credentials in a batch verification.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10), //nolint:gomnd
	})
}

func newVerificationFailures() prometheus.Counter {
	return newCounter(
		metrics.Verifier, metrics.VerificationFailuresMetric,
		"The number of verifications with an invalid result.",
		nil,
	)
}

func newStorageTime(name, operation string) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metrics.Namespace,
		Subsystem: metrics.Storage,
		Name:      name,
		Help:      "The time (in seconds) it takes to " + operation + " identities.",
	}, []string{metrics.StorageTypeLabel})
}

func newActiveSessions() prometheus.Gauge {
	return newGauge(
		metrics.Session, metrics.ActiveSessionsMetric,
		"The number of sessions stored with active status.",
		nil,
	)
}
