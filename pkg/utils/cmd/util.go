/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// GetUserSetVarFromString returns the value set via either command line flag or environment variable.
// If both are set, then the command line flag takes precedence.
func GetUserSetVarFromString(cmd *cobra.Command, flagName, envKey string, isOptional bool) (string, error) {
	if cmd.Flags().Changed(flagName) {
		value, err := cmd.Flags().GetString(flagName)
		if err != nil {
			return "", fmt.Errorf(flagName+" flag not found: %s", err)
		}

		if value == "" {
			return "", fmt.Errorf("%s value is empty", flagName)
		}

		return value, nil
	}

	value, isSet := os.LookupEnv(envKey)

	if isOptional || isSet {
		if !isOptional && value == "" {
			return "", fmt.Errorf("%s value is empty", envKey)
		}

		return value, nil
	}

	return "", notSetErr(flagName, envKey)
}

// GetUserSetOptionalVarFromString returns the value set via either command line flag or environment
// variable, or the flag default when neither is set.
func GetUserSetOptionalVarFromString(cmd *cobra.Command, flagName, envKey string) string {
	v, err := GetUserSetVarFromString(cmd, flagName, envKey, true)
	if err == nil && v != "" {
		return v
	}

	if f := cmd.Flags().Lookup(flagName); f != nil {
		return f.DefValue
	}

	return ""
}

// GetUserSetOptionalCSVVar returns the values set via either command line flag or environment variable.
// The environment variable is parsed as comma-separated values. The command line flag must be a
// StringSlice. A nil slice is returned when neither is set.
func GetUserSetOptionalCSVVar(cmd *cobra.Command, flagName, envKey string) []string {
	if cmd.Flags().Changed(flagName) {
		value, err := cmd.Flags().GetStringSlice(flagName)
		if err == nil {
			return value
		}
	}

	return splitCSV(os.Getenv(envKey))
}

// GetUserSetOptionalVarFromArrayString returns the values set via repeated command line flags
// (e.g. --flagName value1 --flagName value2) or, failing that, the comma-separated environment variable.
// The command line flag must be a StringArray.
func GetUserSetOptionalVarFromArrayString(cmd *cobra.Command, flagName, envKey string) []string {
	if cmd.Flags().Changed(flagName) {
		value, err := cmd.Flags().GetStringArray(flagName)
		if err == nil {
			return value
		}
	}

	return splitCSV(os.Getenv(envKey))
}

// GetUserSetOptionalDuration parses a Go duration (e.g. "30m") from the flag or environment variable.
// defaultValue is returned when neither is set.
func GetUserSetOptionalDuration(cmd *cobra.Command, flagName, envKey string,
	defaultValue time.Duration) (time.Duration, error) {
	v, err := GetUserSetVarFromString(cmd, flagName, envKey, true)
	if err != nil {
		return 0, err
	}

	if v == "" {
		return defaultValue, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q for %s: %w", v, flagName, err)
	}

	return d, nil
}

// GetUserSetOptionalBool parses a boolean from the flag or environment variable. False is returned when
// neither is set.
func GetUserSetOptionalBool(cmd *cobra.Command, flagName, envKey string) (bool, error) {
	v, err := GetUserSetVarFromString(cmd, flagName, envKey, true)
	if err != nil {
		return false, err
	}

	if v == "" {
		return false, nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid value %q for %s: %w", v, flagName, err)
	}

	return b, nil
}

func splitCSV(value string) []string {
	if value == "" {
		return nil
	}

	return strings.Split(value, ",")
}

func notSetErr(flagName, envKey string) error {
	return errors.New("Neither " + flagName + " (command line flag) nor " + envKey +
		" (environment variable) have been set.")
}
