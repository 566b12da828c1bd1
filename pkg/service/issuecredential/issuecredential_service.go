/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package issuecredential

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/trustbloc/anonid/internal/logfields"
	"github.com/trustbloc/anonid/internal/pkg/log"
	"github.com/trustbloc/anonid/pkg/coreerr"
	"github.com/trustbloc/anonid/pkg/identity"
)

var logger = log.New("issue-credential")

type Config struct {
	// IssuerDID identifies the issuer of every credential. Defaults to DefaultIssuerDID.
	IssuerDID string
	// CredentialTTL sets the expiration date of issued credentials. Zero issues credentials that never expire.
	CredentialTTL time.Duration
	// Clock returns the current time. Defaults to identity.Now.
	Clock func() time.Time
	// KeyReader is the randomness source for holder key pairs. Defaults to crypto/rand.
	KeyReader io.Reader
}

type Service struct {
	issuerDID     string
	credentialTTL time.Duration
	clock         func() time.Time
	keyReader     io.Reader
}

func New(config *Config) *Service {
	s := &Service{
		issuerDID:     config.IssuerDID,
		credentialTTL: config.CredentialTTL,
		clock:         config.Clock,
		keyReader:     config.KeyReader,
	}

	if s.issuerDID == "" {
		s.issuerDID = DefaultIssuerDID
	}

	if s.clock == nil {
		s.clock = identity.Now
	}

	if s.keyReader == nil {
		s.keyReader = rand.Reader
	}

	return s
}

// IssuerDID returns the identifier the service issues credentials under.
func (s *Service) IssuerDID() string {
	return s.issuerDID
}

// IssueIdentity creates a holder key pair, derives the holder did:key and issues the first credential over
// attributes. The private key is returned to the caller and is not retained.
func (s *Service) IssueIdentity(ctx context.Context, name string,
	attributes map[string]interface{}) (*identity.Identity, ed25519.PrivateKey, error) {
	pub, priv, err := ed25519.GenerateKey(s.keyReader)
	if err != nil {
		return nil, nil, coreerr.NewBackendFailure(fmt.Errorf("generate key pair: %w", err)).
			WithComponent(coreerr.IssuerComponent).WithOperation("issue-identity")
	}

	did, err := identity.KeyDID(pub)
	if err != nil {
		return nil, nil, coreerr.NewBackendFailure(err).
			WithComponent(coreerr.IssuerComponent).WithOperation("issue-identity")
	}

	credential, err := s.IssueCredential(ctx, did, attributes)
	if err != nil {
		return nil, nil, err
	}

	now := s.now()

	holder := &identity.Identity{
		ID:          did,
		DisplayName: name,
		KeyMaterial: pub,
		Credentials: []*identity.Credential{credential},
		CreatedAt:   now,
		LastUpdated: now,
	}

	logger.Infoc(ctx, "Identity issued", logfields.WithIdentityID(did), log.WithName(name))

	return holder, priv, nil
}

// IssueCredential issues a credential over attributes for subjectID.
func (s *Service) IssueCredential(ctx context.Context, subjectID string,
	attributes map[string]interface{}) (*identity.Credential, error) {
	if !identity.IsValidReference(subjectID) {
		return nil, coreerr.NewInvalidValue(coreerr.ErrInvalidIdentity).
			WithComponent(coreerr.IssuerComponent).
			WithOperation("issue-credential").
			WithIncorrectValue(subjectID)
	}

	attributes, err := identity.NormalizeAttributes(attributes)
	if err != nil {
		return nil, coreerr.NewInvalidValue(err).
			WithComponent(coreerr.IssuerComponent).
			WithOperation("issue-credential")
	}

	if err = identity.ValidateAttributes(attributes); err != nil {
		return nil, fmt.Errorf("issue credential: %w", err)
	}

	now := s.now()

	credential := &identity.Credential{
		Context:      []string{identity.CredentialsContextV1, identity.Ed25519SuiteContext},
		ID:           newURN(),
		Type:         []string{identity.VerifiableCredentialType, identity.IdentityCredentialType},
		Issuer:       s.issuerDID,
		IssuanceDate: now,
		Subject:      identity.NewSubject(subjectID, attributes),
	}

	if s.credentialTTL > 0 {
		credential.ExpirationDate = lo.ToPtr(now.Add(s.credentialTTL))
	}

	tok, err := identity.IssuerToken(credential)
	if err != nil {
		return nil, coreerr.NewBackendFailure(err).
			WithComponent(coreerr.IssuerComponent).WithOperation("issue-credential")
	}

	credential.Proof = &identity.Proof{
		Type:               identity.ProofTypeEd25519Signature2020,
		Created:            now,
		ProofPurpose:       identity.AssertionMethodPurpose,
		VerificationMethod: identity.VerificationMethod(s.issuerDID),
		SignatureToken:     tok,
	}

	logger.Debugc(ctx, "Credential issued", logfields.WithCredentialID(credential.ID),
		logfields.WithIdentityID(subjectID))

	return credential, nil
}

// AddCredential issues a credential for the holder and returns an updated copy of the holder with the
// credential appended. The holder passed in is left untouched.
func (s *Service) AddCredential(ctx context.Context, holder *identity.Identity,
	attributes map[string]interface{}) (*identity.Identity, error) {
	if holder == nil {
		return nil, coreerr.NewInvalidValue(coreerr.ErrInvalidIdentity).
			WithComponent(coreerr.IssuerComponent).WithOperation("add-credential")
	}

	credential, err := s.IssueCredential(ctx, holder.ID, attributes)
	if err != nil {
		return nil, err
	}

	updated := holder.Clone()
	updated.Credentials = append(updated.Credentials, credential)
	updated.LastUpdated = s.now()

	return updated, nil
}

// CreatePresentation bundles the holder's credentials into a holder-signed presentation. A nil credentialIDs
// includes every credential; otherwise only the listed credentials are included, in the listed order, and
// unknown ids are dropped.
func (s *Service) CreatePresentation(ctx context.Context, holder *identity.Identity,
	credentialIDs []string) (*identity.Presentation, error) {
	if holder == nil {
		return nil, coreerr.NewInvalidValue(coreerr.ErrInvalidIdentity).
			WithComponent(coreerr.IssuerComponent).WithOperation("create-presentation")
	}

	credentials := holder.Credentials

	if credentialIDs != nil {
		credentials = lo.FilterMap(lo.Uniq(credentialIDs), func(id string, _ int) (*identity.Credential, bool) {
			return holder.FindCredential(id)
		})
	}

	return s.present(ctx, holder.ID, credentials)
}

// CreateSelectiveDisclosurePresentation builds a presentation revealing only the selected attributes. Every
// credential with at least one selected attribute is replaced by a derived credential carrying the subject id,
// the selected attributes and the disclosure metadata. Credentials with no selected attribute are left out.
func (s *Service) CreateSelectiveDisclosurePresentation(ctx context.Context, holder *identity.Identity,
	selections []Selection) (*identity.Presentation, error) {
	if holder == nil {
		return nil, coreerr.NewInvalidValue(coreerr.ErrInvalidIdentity).
			WithComponent(coreerr.IssuerComponent).WithOperation("create-selective-disclosure")
	}

	if len(selections) == 0 {
		return nil, coreerr.New(coreerr.NothingSelected, coreerr.ErrNothingSelected).
			WithComponent(coreerr.IssuerComponent).WithOperation("create-selective-disclosure")
	}

	now := s.now()

	var derived []*identity.Credential

	for _, c := range holder.Credentials {
		names := selectedAttributes(c, selections)
		if len(names) == 0 {
			continue
		}

		disclosed := *c
		disclosed.Subject = make(identity.Subject, len(names)+1)
		disclosed.Subject[identity.SubjectIDKey] = c.SubjectID()

		for _, name := range names {
			disclosed.Subject[name] = c.Subject[name]
		}

		disclosed.DisclosureMeta = &identity.DisclosureMeta{
			OriginalCredentialID:    c.ID,
			DisclosedAttributeNames: names,
			Timestamp:               now,
		}

		derived = append(derived, &disclosed)
	}

	if len(derived) == 0 {
		return nil, coreerr.New(coreerr.NothingSelected,
			fmt.Errorf("%w: no selection matches a credential attribute", coreerr.ErrNothingSelected)).
			WithComponent(coreerr.IssuerComponent).WithOperation("create-selective-disclosure")
	}

	logger.Debugc(ctx, "Selective disclosure presentation created",
		logfields.WithIdentityID(holder.ID), logfields.WithCredentialIDs(lo.Map(derived,
			func(c *identity.Credential, _ int) string { return c.ID })))

	return s.present(ctx, holder.ID, derived)
}

func (s *Service) present(ctx context.Context, holderID string,
	credentials []*identity.Credential) (*identity.Presentation, error) {
	if credentials == nil {
		credentials = []*identity.Credential{}
	}

	presentation := &identity.Presentation{
		Context:     []string{identity.CredentialsContextV1, identity.Ed25519SuiteContext},
		ID:          newURN(),
		Type:        []string{identity.VerifiablePresentationType},
		Credentials: credentials,
		Holder:      holderID,
	}

	tok, err := identity.HolderToken(presentation)
	if err != nil {
		return nil, coreerr.NewBackendFailure(err).
			WithComponent(coreerr.IssuerComponent).WithOperation("create-presentation")
	}

	presentation.Proof = &identity.Proof{
		Type:               identity.ProofTypeEd25519Signature2020,
		Created:            s.now(),
		ProofPurpose:       identity.AuthenticationPurpose,
		VerificationMethod: identity.VerificationMethod(holderID),
		SignatureToken:     tok,
	}

	logger.Debugc(ctx, "Presentation created", logfields.WithIdentityID(holderID),
		logfields.WithCredentialIDs(lo.Map(credentials, func(c *identity.Credential, _ int) string { return c.ID })))

	return presentation, nil
}

// selectedAttributes returns the attribute names selected for c that c actually carries, in selection order.
func selectedAttributes(c *identity.Credential, selections []Selection) []string {
	var names []string

	for _, sel := range selections {
		if sel.CredentialID != c.ID || sel.AttributeName == identity.SubjectIDKey {
			continue
		}

		if _, ok := c.Subject[sel.AttributeName]; !ok || lo.Contains(names, sel.AttributeName) {
			continue
		}

		names = append(names, sel.AttributeName)
	}

	return names
}

func (s *Service) now() time.Time {
	return identity.Truncate(s.clock())
}

func newURN() string {
	return "urn:uuid:" + uuid.NewString()
}
