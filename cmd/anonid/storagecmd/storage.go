/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package storagecmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trustbloc/anonid/cmd/common"
	"github.com/trustbloc/anonid/internal/pkg/log"
	"github.com/trustbloc/anonid/pkg/coreerr"
	"github.com/trustbloc/anonid/pkg/storage/provider"
)

var logger = log.New("anonid-storage")

const confirmFlagName = "yes"

// GetCmd returns the storage command with its subcommands.
func GetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Inspect or clear the identity store",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}

	cmd.AddCommand(infoCmd(), clearCmd())

	return cmd
}

func withStore(cmd *cobra.Command, run func(ctx context.Context, store *provider.Store) error) error {
	ctx := cmd.Context()

	params, err := common.StorageParams(cmd)
	if err != nil {
		return err
	}

	store, err := common.InitStore(ctx, params, logger)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			logger.Warnc(ctx, "Failed to close identity store", log.WithError(closeErr))
		}
	}()

	return run(ctx, store)
}

func infoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Describe the configured identity store",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, store *provider.Store) error {
				info, err := store.GetStorageInfo(ctx)
				if err != nil {
					return fmt.Errorf("storage info: %w", err)
				}

				return common.WriteJSON(cmd.OutOrStdout(), info)
			})
		},
	}

	common.Flags(cmd)

	return cmd
}

func clearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every identity from the configured identity store",
		RunE: func(cmd *cobra.Command, args []string) error {
			confirmed, _ := cmd.Flags().GetBool(confirmFlagName)
			if !confirmed {
				return coreerr.NewMissingConfig(confirmFlagName)
			}

			return withStore(cmd, func(ctx context.Context, store *provider.Store) error {
				if err := store.Clear(ctx); err != nil {
					return fmt.Errorf("clear identities: %w", err)
				}

				logger.Infoc(ctx, "Identity store cleared")

				return common.WriteJSON(cmd.OutOrStdout(), map[string]interface{}{"cleared": true})
			})
		},
	}

	cmd.Flags().Bool(confirmFlagName, false, "Confirm that every stored identity is deleted")
	common.Flags(cmd)

	return cmd
}
