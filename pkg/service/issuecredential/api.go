/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package issuecredential

import (
	"context"
	"crypto/ed25519"

	"github.com/trustbloc/anonid/pkg/identity"
)

type ServiceInterface interface {
	IssueIdentity(
		ctx context.Context,
		name string,
		attributes map[string]interface{},
	) (*identity.Identity, ed25519.PrivateKey, error)
	IssueCredential(
		ctx context.Context,
		subjectID string,
		attributes map[string]interface{},
	) (*identity.Credential, error)
	AddCredential(
		ctx context.Context,
		holder *identity.Identity,
		attributes map[string]interface{},
	) (*identity.Identity, error)
	CreatePresentation(
		ctx context.Context,
		holder *identity.Identity,
		credentialIDs []string,
	) (*identity.Presentation, error)
	CreateSelectiveDisclosurePresentation(
		ctx context.Context,
		holder *identity.Identity,
		selections []Selection,
	) (*identity.Presentation, error)
}
