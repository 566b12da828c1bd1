/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package main is the anonid command line: an operations server plus commands to issue, present and
// verify identities and to manage sessions against the configured stores.
package main

import (
	"github.com/spf13/cobra"

	"github.com/trustbloc/anonid/cmd/anonid/identitycmd"
	"github.com/trustbloc/anonid/cmd/anonid/requestcmd"
	"github.com/trustbloc/anonid/cmd/anonid/sessioncmd"
	"github.com/trustbloc/anonid/cmd/anonid/startcmd"
	"github.com/trustbloc/anonid/cmd/anonid/storagecmd"
	"github.com/trustbloc/anonid/internal/pkg/log"
)

var logger = log.New("anonid")

var Version string // will be embeded during build

func main() {
	rootCmd := &cobra.Command{
		Use:     "anonid",
		Version: Version,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}

	rootCmd.AddCommand(
		startcmd.GetStartCmd(&startcmd.HTTPServer{}),
		identitycmd.GetCmd(),
		requestcmd.GetCmd(),
		sessioncmd.GetCmd(),
		storagecmd.GetCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		logger.Fatal("Failed to run anonid", log.WithError(err))
	}
}
