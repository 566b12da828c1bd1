/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package startcmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"github.com/trustbloc/anonid/cmd/common"
	"github.com/trustbloc/anonid/internal/logfields"
	"github.com/trustbloc/anonid/internal/pkg/log"
	"github.com/trustbloc/anonid/pkg/identity"
	"github.com/trustbloc/anonid/pkg/observability/metrics/prometheus"
)

var logger = log.New("anonid-start")

type server interface {
	ListenAndServe(host string, router http.Handler) error
}

// HTTPServer represents an actual HTTP server implementation.
type HTTPServer struct{}

// ListenAndServe starts the server using the standard Go HTTP server implementation.
func (s *HTTPServer) ListenAndServe(host string, router http.Handler) error {
	srv := &http.Server{
		Addr:              host,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return srv.ListenAndServe()
}

// GetStartCmd returns the Cobra start command.
func GetStartCmd(srv server) *cobra.Command {
	startCmd := createStartCmd(srv)

	createFlags(startCmd)

	return startCmd
}

func createStartCmd(srv server) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start anonid",
		Long:  "Start the anonid operations server (metrics, health and readiness)",
		RunE: func(cmd *cobra.Command, args []string) error {
			parameters, err := getStartParameters(cmd)
			if err != nil {
				return err
			}

			common.SetDefaultLogLevel(logger, parameters.logLevel)

			return startService(cmd, parameters, srv)
		},
	}
}

func startService(cmd *cobra.Command, parameters *startParameters, srv server) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	services, err := common.InitServices(ctx, cmd, logger, prometheus.GetMetrics())
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := services.Close(); closeErr != nil {
			logger.Warnc(ctx, "Failed to close services", log.WithError(closeErr))
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	readinessController := newReadinessController(e)

	metricsHandler := prometheus.NewHandler()
	e.Add(metricsHandler.Method(), metricsHandler.Path(), echo.WrapHandler(metricsHandler.Handler()))

	registerHealthCheck(e, services.Store)

	if !parameters.skipStartupAudit {
		if err = auditStoredCredentials(ctx, services); err != nil {
			return err
		}
	}

	go sweepSessions(ctx, services, parameters.sessionSweepInterval)

	readinessController.Ready(true)

	logger.Infoc(ctx, "Starting anonid operations server", log.WithURL(parameters.hostURL))

	return srv.ListenAndServe(parameters.hostURL, e)
}

// auditStoredCredentials verifies every stored credential as one batch so that the verification metrics and
// history reflect the store contents before the service reports ready.
func auditStoredCredentials(ctx context.Context, services *common.Services) error {
	identities, err := services.Store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load identities: %w", err)
	}

	var credentials []*identity.Credential

	for _, i := range identities {
		credentials = append(credentials, i.Credentials...)
	}

	if len(credentials) == 0 {
		logger.Infoc(ctx, "No stored credentials to audit")

		return nil
	}

	result := services.Verifier.VerifyCredentialsBatch(ctx, credentials, auditVerifierID, auditVerifierName)

	logger.Infoc(ctx, "Stored credentials audited",
		logfields.WithIdentityCount(len(identities)),
		logfields.WithBatchSize(result.TotalCredentials),
		logfields.WithResult(string(result.OverallResult)))

	for _, r := range result.Results {
		if !r.IsValid {
			logger.Warnc(ctx, "Stored credential failed verification",
				logfields.WithCredentialID(r.CredentialID), log.WithAdditionalMessage(fmt.Sprint(r.Errors, r.Warnings)))
		}
	}

	return nil
}

func sweepSessions(ctx context.Context, services *common.Services, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			active, err := services.Sessions.GetActiveSessions(ctx)
			if err != nil {
				logger.Warnc(ctx, "Failed to count active sessions", log.WithError(err))

				continue
			}

			logger.Debugc(ctx, "Active sessions counted", log.WithAdditionalMessage(fmt.Sprint(len(active))))
		}
	}
}
