/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package requestcmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/trustbloc/anonid/cmd/common"
	"github.com/trustbloc/anonid/internal/pkg/log"
	"github.com/trustbloc/anonid/pkg/coreerr"
	"github.com/trustbloc/anonid/pkg/observability/metrics/noop"
	"github.com/trustbloc/anonid/pkg/service/verifycredential"
	"github.com/trustbloc/anonid/pkg/storage/redis/requeststore"
)

var logger = log.New("anonid-request")

const (
	requestIDFlagName    = "request-id"
	verifierIDFlagName   = "verifier-id"
	verifierNameFlagName = "verifier-name"
	attributeFlagName    = "attribute"
	purposeFlagName      = "purpose"
	expiresInFlagName    = "expires-in"
	batchFlagName        = "batch"
)

// GetCmd returns the presentation request command. Requests are kept in Redis, so Redis addresses must
// be configured.
func GetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "request",
		Short: "Create and answer presentation requests",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}

	cmd.AddCommand(
		createCmd(),
		getCmd(),
		respondCmd("approve", "Approve a pending presentation request", verifycredential.RequestApproved),
		respondCmd("deny", "Deny a pending presentation request", verifycredential.RequestDenied),
	)

	return cmd
}

func withRequests(cmd *cobra.Command,
	run func(ctx context.Context, s *common.Services, requests *requeststore.Store) error) error {
	ctx := cmd.Context()

	services, err := common.InitServices(ctx, cmd, logger, noop.GetMetrics())
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := services.Close(); closeErr != nil {
			logger.Warnc(ctx, "Failed to close services", log.WithError(closeErr))
		}
	}()

	if services.Requests == nil {
		return coreerr.NewMissingConfig(common.RedisAddrsFlagName)
	}

	return run(ctx, services, services.Requests)
}

func createCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a presentation request. Unset values come from the provider config.",
		RunE: func(cmd *cobra.Command, args []string) error {
			verifierID, _ := cmd.Flags().GetString(verifierIDFlagName)
			verifierName, _ := cmd.Flags().GetString(verifierNameFlagName)
			attributes, _ := cmd.Flags().GetStringArray(attributeFlagName)
			purpose, _ := cmd.Flags().GetString(purposeFlagName)
			expiresIn, _ := cmd.Flags().GetDuration(expiresInFlagName)
			batch, _ := cmd.Flags().GetBool(batchFlagName)

			return withRequests(cmd, func(ctx context.Context, s *common.Services, requests *requeststore.Store) error {
				config := s.ProviderConfig.NewPresentationRequestConfig(purpose)

				if verifierID != "" {
					config.VerifierID = verifierID
				}

				if verifierName != "" {
					config.VerifierName = verifierName
				}

				if len(attributes) > 0 {
					config.RequestedAttributes = attributes
				}

				if batch {
					config.PresentationType = verifycredential.BatchPresentation
				}

				config.ExpiresIn = expiresIn

				req, err := s.Verifier.CreatePresentationRequest(ctx, config)
				if err != nil {
					return err
				}

				if _, err = requests.SetIfNotExist(ctx, req); err != nil {
					return err
				}

				return common.WriteJSON(cmd.OutOrStdout(), req)
			})
		},
	}

	cmd.Flags().String(verifierIDFlagName, "", "Id of the requesting verifier")
	cmd.Flags().String(verifierNameFlagName, "", "Name of the requesting verifier")
	cmd.Flags().StringArray(attributeFlagName, nil, "Requested attribute name. May be repeated.")
	cmd.Flags().String(purposeFlagName, "", "Why the attributes are requested")
	cmd.Flags().Duration(expiresInFlagName, 0, "Request lifetime. Defaults to one hour.")
	cmd.Flags().Bool(batchFlagName, false, "Ask for a batch presentation")
	common.ServiceFlags(cmd)

	return cmd
}

func getCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show a presentation request",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requestID(cmd)
			if err != nil {
				return err
			}

			return withRequests(cmd, func(ctx context.Context, _ *common.Services, requests *requeststore.Store) error {
				req, err := requests.Get(ctx, id)
				if err != nil {
					return err
				}

				return common.WriteJSON(cmd.OutOrStdout(), req)
			})
		},
	}

	cmd.Flags().String(requestIDFlagName, "", "Id of the presentation request")
	common.ServiceFlags(cmd)

	return cmd
}

func respondCmd(use, short string, status verifycredential.RequestStatus) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requestID(cmd)
			if err != nil {
				return err
			}

			return withRequests(cmd, func(ctx context.Context, _ *common.Services, requests *requeststore.Store) error {
				req, err := requests.Respond(ctx, id, status)
				if err != nil {
					return err
				}

				return common.WriteJSON(cmd.OutOrStdout(), req)
			})
		},
	}

	cmd.Flags().String(requestIDFlagName, "", "Id of the presentation request")
	common.ServiceFlags(cmd)

	return cmd
}

func requestID(cmd *cobra.Command) (string, error) {
	id, _ := cmd.Flags().GetString(requestIDFlagName)
	if id == "" {
		return "", coreerr.NewMissingConfig(requestIDFlagName)
	}

	return id, nil
}
