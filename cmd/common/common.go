/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package common

import (
	"github.com/trustbloc/anonid/internal/logfields"
	"github.com/trustbloc/anonid/internal/pkg/log"
)

const (
	// LogLevelFlagName is the flag name used for setting the default log level.
	LogLevelFlagName = "log-level"
	// LogLevelEnvKey is the env var name used for setting the default log level.
	LogLevelEnvKey = "LOG_LEVEL"
	// LogLevelFlagShorthand is the shorthand flag name used for setting the default log level.
	LogLevelFlagShorthand = "l"
	// LogLevelPrefixFlagUsage is the usage text for the log level flag.
	LogLevelPrefixFlagUsage = "Sets logging levels for individual modules as well as the default level. " +
		"The format of the string is as follows: module1=level1:module2=level2:defaultLevel. " +
		"Supported levels are: FATAL, PANIC, ERROR, WARNING, INFO, DEBUG. " +
		"Example: verify-credential=DEBUG:hybrid-storage=WARNING:INFO. " +
		`Defaults to info if not set. Setting to debug may adversely impact performance. Alternatively, this can be ` +
		"set with the following environment variable: " + LogLevelEnvKey
)

// SetDefaultLogLevel applies a log level spec (see log.SetSpec). An invalid spec resets every module to INFO.
func SetDefaultLogLevel(logger *log.Log, userLogLevel string) {
	if err := log.SetSpec(userLogLevel); err != nil {
		logger.Warn(`User log level is not valid. It must be a spec of the following levels: `+
			log.PANIC.String()+", "+
			log.FATAL.String()+", "+
			log.ERROR.String()+", "+
			log.WARNING.String()+", "+
			log.INFO.String()+", "+
			log.DEBUG.String()+". Defaulting to info.", logfields.WithUserLogLevel(userLogLevel))

		log.SetDefaultLevel(log.INFO)

		return
	}

	if log.GetLevel("") == log.DEBUG {
		logger.Info(`Log level set to "debug". Performance may be adversely impacted.`)
	}
}
