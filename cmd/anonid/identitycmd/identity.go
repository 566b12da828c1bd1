/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package identitycmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/trustbloc/anonid/cmd/common"
	"github.com/trustbloc/anonid/internal/logfields"
	"github.com/trustbloc/anonid/internal/pkg/log"
	"github.com/trustbloc/anonid/pkg/coreerr"
	"github.com/trustbloc/anonid/pkg/identity"
	"github.com/trustbloc/anonid/pkg/observability/metrics/noop"
	"github.com/trustbloc/anonid/pkg/service/issuecredential"
	"github.com/trustbloc/anonid/pkg/service/verifycredential"
)

var logger = log.New("anonid-identity")

const (
	nameFlagName         = "name"
	attributeFlagName    = "attribute"
	identityIDFlagName   = "identity-id"
	credentialIDFlagName = "credential-id"
	discloseFlagName     = "disclose"
	verifierIDFlagName   = "verifier-id"
	verifierNameFlagName = "verifier-name"
	presentationFlagName = "presentation-file"
	transferFlagName     = "transfer-file"

	defaultVerifierID = "anonid-cli"

	attributeFlagUsage = "Attribute in name=value form. JSON values keep their type, so digits that must " +
		`stay text are quoted, e.g. postalCode='"8000"'. May be repeated.`
)

// GetCmd returns the identity command with its subcommands.
func GetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identity",
		Short: "Issue, present and verify identities",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}

	cmd.AddCommand(
		createCmd(),
		addCredentialCmd(),
		listCmd(),
		presentCmd(),
		verifyCmd(),
		exportCmd(),
		verifyTransferCmd(),
	)

	return cmd
}

func withServices(cmd *cobra.Command, run func(ctx context.Context, s *common.Services) error) error {
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

	return run(ctx, services)
}

func createCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an identity holding one credential over the given attributes",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString(nameFlagName)

			attributes, err := attributesFlag(cmd)
			if err != nil {
				return err
			}

			return withServices(cmd, func(ctx context.Context, s *common.Services) error {
				holder, _, err := s.Issuer.IssueIdentity(ctx, name, attributes)
				if err != nil {
					return err
				}

				identities, err := s.Store.Load(ctx)
				if err != nil {
					return fmt.Errorf("load identities: %w", err)
				}

				if err = common.ReplaceIdentity(ctx, s.Store, identities, holder); err != nil {
					return err
				}

				logger.Infoc(ctx, "Identity created", logfields.WithIdentityID(holder.ID))

				return common.WriteJSON(cmd.OutOrStdout(), holder)
			})
		},
	}

	cmd.Flags().String(nameFlagName, "", "Display name of the identity")
	cmd.Flags().StringArray(attributeFlagName, nil, attributeFlagUsage)
	common.ServiceFlags(cmd)

	return cmd
}

func addCredentialCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-credential",
		Short: "Issue another credential to a stored identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := cmd.Flags().GetString(identityIDFlagName)

			attributes, err := attributesFlag(cmd)
			if err != nil {
				return err
			}

			return withServices(cmd, func(ctx context.Context, s *common.Services) error {
				holder, identities, err := common.FindIdentity(ctx, s.Store, id)
				if err != nil {
					return err
				}

				updated, err := s.Issuer.AddCredential(ctx, holder, attributes)
				if err != nil {
					return err
				}

				if err = common.ReplaceIdentity(ctx, s.Store, identities, updated); err != nil {
					return err
				}

				return common.WriteJSON(cmd.OutOrStdout(), updated)
			})
		},
	}

	cmd.Flags().String(identityIDFlagName, "", "Id of the identity")
	cmd.Flags().StringArray(attributeFlagName, nil, attributeFlagUsage)
	common.ServiceFlags(cmd)

	return cmd
}

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored identities",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, func(ctx context.Context, s *common.Services) error {
				identities, err := s.Store.Load(ctx)
				if err != nil {
					return fmt.Errorf("load identities: %w", err)
				}

				return common.WriteJSON(cmd.OutOrStdout(), identities)
			})
		},
	}

	common.ServiceFlags(cmd)

	return cmd
}

func presentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "present",
		Short: "Create a presentation from a stored identity's credentials",
		Long: "Create a presentation from a stored identity's credentials. With --disclose only the named " +
			"attributes (credentialID:attribute) are revealed. Otherwise the credentials given by " +
			"--credential-id are presented whole, or every credential when none is given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := cmd.Flags().GetString(identityIDFlagName)
			credentialIDs, _ := cmd.Flags().GetStringArray(credentialIDFlagName)
			disclosures, _ := cmd.Flags().GetStringArray(discloseFlagName)

			selections, err := parseSelections(disclosures)
			if err != nil {
				return err
			}

			return withServices(cmd, func(ctx context.Context, s *common.Services) error {
				holder, _, err := common.FindIdentity(ctx, s.Store, id)
				if err != nil {
					return err
				}

				var presentation *identity.Presentation

				if len(selections) > 0 {
					presentation, err = s.Issuer.CreateSelectiveDisclosurePresentation(ctx, holder, selections)
				} else {
					if len(credentialIDs) == 0 {
						credentialIDs = nil
					}

					presentation, err = s.Issuer.CreatePresentation(ctx, holder, credentialIDs)
				}

				if err != nil {
					return err
				}

				return common.WriteJSON(cmd.OutOrStdout(), presentation)
			})
		},
	}

	cmd.Flags().String(identityIDFlagName, "", "Id of the identity")
	cmd.Flags().StringArray(credentialIDFlagName, nil, "Credential to present. May be repeated.")
	cmd.Flags().StringArray(discloseFlagName, nil, "Attribute to disclose as credentialID:attribute. "+
		"May be repeated.")
	common.ServiceFlags(cmd)

	return cmd
}

type presentationVerification struct {
	*verifycredential.VerificationResult
	MissingAttributes []string `json:"missingAttributes,omitempty"`
}

func verifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a presentation file, or the stored credentials of an identity as one batch",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := cmd.Flags().GetString(identityIDFlagName)
			verifierID, _ := cmd.Flags().GetString(verifierIDFlagName)
			verifierName, _ := cmd.Flags().GetString(verifierNameFlagName)
			presentationFile, _ := cmd.Flags().GetString(presentationFlagName)

			if id == "" && presentationFile == "" {
				return coreerr.NewMissingConfig(identityIDFlagName + " or " + presentationFlagName)
			}

			return withServices(cmd, func(ctx context.Context, s *common.Services) error {
				if presentationFile != "" {
					presentation := &identity.Presentation{}

					if err := readJSON(presentationFile, presentation); err != nil {
						return err
					}

					result := s.Verifier.VerifyPresentation(ctx, presentation, verifierID, verifierName)

					return common.WriteJSON(cmd.OutOrStdout(), &presentationVerification{
						VerificationResult: result,
						MissingAttributes:  s.ProviderConfig.MissingAttributes(presentation),
					})
				}

				holder, _, err := common.FindIdentity(ctx, s.Store, id)
				if err != nil {
					return err
				}

				result := s.Verifier.VerifyCredentialsBatch(ctx, holder.Credentials, verifierID, verifierName)

				return common.WriteJSON(cmd.OutOrStdout(), result)
			})
		},
	}

	cmd.Flags().String(identityIDFlagName, "", "Id of the identity whose credentials are verified")
	cmd.Flags().String(presentationFlagName, "", "Path to a presentation JSON document to verify")
	cmd.Flags().String(verifierIDFlagName, defaultVerifierID, "Id recorded as the verifier")
	cmd.Flags().String(verifierNameFlagName, "", "Name recorded as the verifier")
	common.ServiceFlags(cmd)

	return cmd
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a checksummed transfer envelope for a stored identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := cmd.Flags().GetString(identityIDFlagName)

			return withServices(cmd, func(ctx context.Context, s *common.Services) error {
				holder, _, err := common.FindIdentity(ctx, s.Store, id)
				if err != nil {
					return err
				}

				data, err := identity.NewTransferData(holder, identity.Now())
				if err != nil {
					return err
				}

				return common.WriteJSON(cmd.OutOrStdout(), data)
			})
		},
	}

	cmd.Flags().String(identityIDFlagName, "", "Id of the identity")
	common.ServiceFlags(cmd)

	return cmd
}

func verifyTransferCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify-transfer",
		Short: "Check the checksum of a transfer envelope",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString(transferFlagName)
			if path == "" {
				return coreerr.NewMissingConfig(transferFlagName)
			}

			data := &identity.TransferData{}

			if err := readJSON(path, data); err != nil {
				return err
			}

			valid, err := identity.VerifyTransferData(data)
			if err != nil {
				return err
			}

			return common.WriteJSON(cmd.OutOrStdout(), map[string]interface{}{
				"identityId": data.Identity.ID,
				"valid":      valid,
			})
		},
	}

	cmd.Flags().String(transferFlagName, "", "Path to a transfer envelope")

	return cmd
}

func attributesFlag(cmd *cobra.Command) (map[string]interface{}, error) {
	pairs, _ := cmd.Flags().GetStringArray(attributeFlagName)

	return common.ParseAttributes(pairs)
}

func parseSelections(disclosures []string) ([]issuecredential.Selection, error) {
	selections := make([]issuecredential.Selection, 0, len(disclosures))

	for _, d := range disclosures {
		// Credential ids are URNs, so the attribute name follows the last colon.
		i := strings.LastIndex(d, ":")
		if i <= 0 || i == len(d)-1 {
			return nil, coreerr.NewInvalidValue(
				fmt.Errorf("disclosure %q is not in credentialID:attribute form", d)).WithIncorrectValue(d)
		}

		selections = append(selections, issuecredential.Selection{CredentialID: d[:i], AttributeName: d[i+1:]})
	}

	return selections, nil
}

func readJSON(path string, v interface{}) error {
	b, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err = json.Unmarshal(b, v); err != nil {
		return coreerr.NewMalformedData(fmt.Errorf("parse %s: %w", path, err))
	}

	return nil
}
