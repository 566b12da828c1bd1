/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sessioncmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/trustbloc/anonid/cmd/common"
	"github.com/trustbloc/anonid/internal/pkg/log"
	"github.com/trustbloc/anonid/pkg/coreerr"
	"github.com/trustbloc/anonid/pkg/observability/metrics/noop"
	"github.com/trustbloc/anonid/pkg/service/session"
)

var logger = log.New("anonid-session")

const (
	sessionIDFlagName    = "session-id"
	userIDFlagName       = "user-id"
	providerIDFlagName   = "provider-id"
	providerNameFlagName = "provider-name"
	durationFlagName     = "duration"
	permissionFlagName   = "permission"
	metadataFlagName     = "metadata"
	credentialIDFlagName = "credential-id"
)

// GetCmd returns the session command with its subcommands. Sessions only outlive a single invocation when
// Redis addresses are configured.
func GetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage sessions between holders and service providers",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}

	cmd.AddCommand(
		createCmd(),
		getCmd(),
		listCmd(),
		touchCmd(),
		terminateCmd(),
		shareCmd(),
		extendCmd(),
	)

	return cmd
}

func withManager(cmd *cobra.Command, run func(ctx context.Context, s *common.Services) error) error {
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

	if !services.SessionsDurable {
		logger.Warnc(ctx, "No Redis addresses configured, sessions will not outlive this command")
	}

	return run(ctx, services)
}

func createCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Start a session between a user and a service provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, _ := cmd.Flags().GetString(userIDFlagName)
			providerID, _ := cmd.Flags().GetString(providerIDFlagName)
			providerName, _ := cmd.Flags().GetString(providerNameFlagName)
			permissions, _ := cmd.Flags().GetStringArray(permissionFlagName)
			metadataPairs, _ := cmd.Flags().GetStringArray(metadataFlagName)

			metadata, err := common.ParseAttributes(metadataPairs)
			if err != nil {
				return err
			}

			return withManager(cmd, func(ctx context.Context, s *common.Services) error {
				if providerID == "" {
					providerID = s.ProviderConfig.ID
				}

				if providerName == "" {
					providerName = s.ProviderConfig.Name
				}

				opts := []session.CreateOpt{
					session.WithDuration(s.ProviderConfig.SessionDuration()),
					session.WithMetadata(metadata),
				}

				if cmd.Flags().Changed(durationFlagName) {
					d, _ := cmd.Flags().GetDuration(durationFlagName)
					opts = append(opts, session.WithDuration(d))
				}

				if len(permissions) > 0 {
					opts = append(opts, session.WithPermissions(permissions...))
				}

				created, err := s.Sessions.CreateSession(ctx, userID, providerID, providerName, opts...)
				if err != nil {
					return err
				}

				return common.WriteJSON(cmd.OutOrStdout(), created)
			})
		},
	}

	cmd.Flags().String(userIDFlagName, "", "Id of the holder")
	cmd.Flags().String(providerIDFlagName, "", "Id of the service provider. Defaults to the provider config id.")
	cmd.Flags().String(providerNameFlagName, "", "Name of the service provider")
	cmd.Flags().Duration(durationFlagName, 0, "Session lifetime. Defaults to the provider config session "+
		"duration, one hour when unset.")
	cmd.Flags().StringArray(permissionFlagName, nil, "Permission granted to the provider. May be repeated.")
	cmd.Flags().StringArray(metadataFlagName, nil, "Metadata in name=value form. May be repeated.")
	common.ServiceFlags(cmd)

	return cmd
}

func getCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show a session, expiring it first when its lifetime is over",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := sessionID(cmd)
			if err != nil {
				return err
			}

			return withManager(cmd, func(ctx context.Context, s *common.Services) error {
				found, err := s.Sessions.GetSession(ctx, id)
				if err != nil {
					return err
				}

				return common.WriteJSON(cmd.OutOrStdout(), found)
			})
		},
	}

	sessionIDFlag(cmd)

	return cmd
}

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the sessions stored as active",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManager(cmd, func(ctx context.Context, s *common.Services) error {
				active, err := s.Sessions.GetActiveSessions(ctx)
				if err != nil {
					return err
				}

				return common.WriteJSON(cmd.OutOrStdout(), active)
			})
		},
	}

	common.ServiceFlags(cmd)

	return cmd
}

func touchCmd() *cobra.Command {
	return mutationCmd("touch", "Record activity on an active session",
		func(ctx context.Context, m *session.Manager, id string, _ []string) (bool, error) {
			return m.UpdateSessionActivity(ctx, id)
		})
}

func terminateCmd() *cobra.Command {
	return mutationCmd("terminate", "Terminate a session",
		func(ctx context.Context, m *session.Manager, id string, _ []string) (bool, error) {
			return m.TerminateSession(ctx, id)
		})
}

func shareCmd() *cobra.Command {
	cmd := mutationCmd("share", "Share credentials with the provider of an active session",
		func(ctx context.Context, m *session.Manager, id string, credentialIDs []string) (bool, error) {
			return m.ShareCredentials(ctx, id, credentialIDs)
		})

	cmd.Flags().StringArray(credentialIDFlagName, nil, "Credential to share. May be repeated.")

	return cmd
}

func mutationCmd(use, short string,
	mutate func(ctx context.Context, m *session.Manager, id string, credentialIDs []string) (bool, error),
) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := sessionID(cmd)
			if err != nil {
				return err
			}

			credentialIDs, _ := cmd.Flags().GetStringArray(credentialIDFlagName)

			return withManager(cmd, func(ctx context.Context, s *common.Services) error {
				ok, err := mutate(ctx, s.Sessions, id, credentialIDs)
				if err != nil {
					return err
				}

				return common.WriteJSON(cmd.OutOrStdout(), map[string]interface{}{
					"sessionId": id,
					"updated":   ok,
				})
			})
		},
	}

	sessionIDFlag(cmd)

	return cmd
}

func extendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extend",
		Short: "Replace an active session with a new one of the given lifetime",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := sessionID(cmd)
			if err != nil {
				return err
			}

			duration, _ := cmd.Flags().GetDuration(durationFlagName)

			return withManager(cmd, func(ctx context.Context, s *common.Services) error {
				if !cmd.Flags().Changed(durationFlagName) {
					duration = s.ProviderConfig.SessionDuration()
				}

				extended, err := s.Sessions.ExtendSession(ctx, id, duration)
				if err != nil {
					return err
				}

				return common.WriteJSON(cmd.OutOrStdout(), extended)
			})
		},
	}

	sessionIDFlag(cmd)
	cmd.Flags().Duration(durationFlagName, 0, "Lifetime of the new session")

	return cmd
}

func sessionIDFlag(cmd *cobra.Command) {
	cmd.Flags().String(sessionIDFlagName, "", "Id of the session")
	common.ServiceFlags(cmd)
}

func sessionID(cmd *cobra.Command) (string, error) {
	id, _ := cmd.Flags().GetString(sessionIDFlagName)
	if id == "" {
		return "", coreerr.NewMissingConfig(sessionIDFlagName)
	}

	return id, nil
}
