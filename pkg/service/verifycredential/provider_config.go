/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifycredential

import (
	"time"

	"github.com/samber/lo"

	"github.com/trustbloc/anonid/pkg/identity"
	"github.com/trustbloc/anonid/pkg/service/verifycredential/trust"
)

const defaultSessionDuration = 60 * time.Minute

// ProviderConfig describes a relying party: which issuers it trusts, which attributes it needs and how long
// its sessions last.
type ProviderConfig struct {
	ID                     string   `json:"id"`
	Name                   string   `json:"name"`
	Description            string   `json:"description"`
	TrustedIssuers         []string `json:"trustedIssuers"`
	RequiredAttributes     []string `json:"requiredAttributes"`
	OptionalAttributes     []string `json:"optionalAttributes"`
	SessionDurationMinutes int      `json:"sessionDurationMinutes"`
	AllowBatchVerification bool     `json:"allowBatchVerification"`
	RequireSignedRequests  bool     `json:"requireSignedRequests"`
}

// TrustPolicy returns an allow list over the provider's trusted issuers.
func (c *ProviderConfig) TrustPolicy() *trust.AllowList {
	return trust.NewAllowList(c.TrustedIssuers...)
}

// SessionDuration returns the provider's session lifetime, one hour when unset.
func (c *ProviderConfig) SessionDuration() time.Duration {
	if c.SessionDurationMinutes <= 0 {
		return defaultSessionDuration
	}

	return time.Duration(c.SessionDurationMinutes) * time.Minute
}

// MissingAttributes returns the required attributes the presentation does not disclose.
func (c *ProviderConfig) MissingAttributes(p *identity.Presentation) []string {
	disclosed := identity.ExtractAttributes(p.Credentials)

	return lo.Filter(c.RequiredAttributes, func(name string, _ int) bool {
		_, ok := disclosed[name]

		return !ok
	})
}

// NewPresentationRequestConfig builds a request for the provider's required and optional attributes.
func (c *ProviderConfig) NewPresentationRequestConfig(purpose string) *PresentationRequestConfig {
	presentationType := SinglePresentation
	if c.AllowBatchVerification {
		presentationType = BatchPresentation
	}

	return &PresentationRequestConfig{
		PresentationType:    presentationType,
		RequestedAttributes: lo.Union(c.RequiredAttributes, c.OptionalAttributes),
		Purpose:             purpose,
		VerifierID:          c.ID,
		VerifierName:        c.Name,
	}
}
