/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package startcmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/trustbloc/anonid/cmd/common"
	cmdutils "github.com/trustbloc/anonid/pkg/utils/cmd"
)

const (
	hostURLFlagName      = "host-url"
	hostURLFlagShorthand = "u"
	hostURLEnvKey        = "ANONID_HOST_URL"
	hostURLFlagUsage     = "URL to run the operations server on (metrics, health and readiness)." +
		" Format: HostName:Port. Alternatively, this can be set with the following environment variable: " +
		hostURLEnvKey

	sessionSweepIntervalFlagName  = "session-sweep-interval"
	sessionSweepIntervalEnvKey    = "ANONID_SESSION_SWEEP_INTERVAL"
	sessionSweepIntervalFlagUsage = "How often active sessions are counted for the active sessions gauge." +
		" Defaults to 1m. Alternatively, this can be set with the following environment variable: " +
		sessionSweepIntervalEnvKey

	skipStartupAuditFlagName  = "skip-startup-audit"
	skipStartupAuditEnvKey    = "ANONID_SKIP_STARTUP_AUDIT"
	skipStartupAuditFlagUsage = "Report ready without first verifying every stored credential." +
		" Alternatively, this can be set with the following environment variable: " + skipStartupAuditEnvKey

	defaultSessionSweepInterval = time.Minute

	auditVerifierID   = "anonid"
	auditVerifierName = "anonid startup audit"
)

type startParameters struct {
	hostURL              string
	logLevel             string
	sessionSweepInterval time.Duration
	skipStartupAudit     bool
}

func createFlags(startCmd *cobra.Command) {
	startCmd.Flags().StringP(hostURLFlagName, hostURLFlagShorthand, "", hostURLFlagUsage)
	startCmd.Flags().StringP(common.LogLevelFlagName, common.LogLevelFlagShorthand, "", common.LogLevelPrefixFlagUsage)
	startCmd.Flags().String(sessionSweepIntervalFlagName, "", sessionSweepIntervalFlagUsage)
	startCmd.Flags().String(skipStartupAuditFlagName, "", skipStartupAuditFlagUsage)

	common.ServiceFlags(startCmd)
}

func getStartParameters(cmd *cobra.Command) (*startParameters, error) {
	hostURL, err := cmdutils.GetUserSetVarFromString(cmd, hostURLFlagName, hostURLEnvKey, false)
	if err != nil {
		return nil, err
	}

	logLevel, err := cmdutils.GetUserSetVarFromString(cmd, common.LogLevelFlagName, common.LogLevelEnvKey, true)
	if err != nil {
		return nil, err
	}

	sweepInterval, err := cmdutils.GetUserSetOptionalDuration(cmd, sessionSweepIntervalFlagName,
		sessionSweepIntervalEnvKey, defaultSessionSweepInterval)
	if err != nil {
		return nil, err
	}

	if sweepInterval <= 0 {
		sweepInterval = defaultSessionSweepInterval
	}

	skipStartupAudit, err := cmdutils.GetUserSetOptionalBool(cmd, skipStartupAuditFlagName, skipStartupAuditEnvKey)
	if err != nil {
		return nil, err
	}

	return &startParameters{
		hostURL:              hostURL,
		logLevel:             logLevel,
		sessionSweepInterval: sweepInterval,
		skipStartupAudit:     skipStartupAudit,
	}, nil
}
