/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package startcmd

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/alexliesenfeld/health"
	"github.com/labstack/echo/v4"

	"github.com/trustbloc/anonid/pkg/observability/health/healthutil"
)

const (
	healthCheckEndpoint = "/healthcheck"

	healthCheckTimeout = 5 * time.Second
	healthCacheTTL     = 10 * time.Second
)

type storeHealth interface {
	HealthChecks() map[string]func(ctx context.Context) error
	GetStorageInfo(ctx context.Context) (map[string]interface{}, error)
}

// healthChecks returns one check per remote backend of the identity store, sorted by name.
func healthChecks(store storeHealth) []health.Check {
	checks := store.HealthChecks()

	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}

	sort.Strings(names)

	result := make([]health.Check, 0, len(names))

	for _, name := range names {
		result = append(result, health.Check{
			Name:               name,
			Check:              checks[name],
			Timeout:            healthCheckTimeout,
			MaxTimeInError:     1,
			MaxContiguousFails: 1,
		})
	}

	return result
}

func registerHealthCheck(e *echo.Echo, store storeHealth) {
	responseTimes := healthutil.NewResponseTimes()

	opts := []health.CheckerOption{
		health.WithCacheDuration(healthCacheTTL),
		health.WithTimeout(healthCheckTimeout),
		health.WithInterceptors(responseTimes.Interceptor()),
	}

	for _, c := range healthChecks(store) {
		opts = append(opts, health.WithCheck(c))
	}

	handler := health.NewHandler(health.NewChecker(opts...),
		health.WithResultWriter(healthutil.NewJSONResultWriter(responseTimes, store.GetStorageInfo)),
		health.WithStatusCodeDown(http.StatusServiceUnavailable),
	)

	e.GET(healthCheckEndpoint, echo.WrapHandler(handler))
}
