/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination service_mocks_test.go -self_package mocks -package verifycredential_test -source=verifycredential_service.go -mock_names issuerTrustPolicy=MockIssuerTrustPolicy,revocationPolicy=MockRevocationPolicy

package verifycredential

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/trustbloc/anonid/internal/logfields"
	"github.com/trustbloc/anonid/internal/pkg/log"
	"github.com/trustbloc/anonid/pkg/identity"
	"github.com/trustbloc/anonid/pkg/observability/metrics"
	"github.com/trustbloc/anonid/pkg/observability/metrics/noop"
)

var logger = log.New("verify-credential")

var (
	errNilCredential  = errors.New("credential is nil")
	errNegativeExpiry = errors.New("negative expiry")
)

const (
	presentationFallbackID = "presentation"
	unknownHolder          = "unknown"
)

// issuerTrustPolicy decides whether an issuer is trusted. Implementations may be slow and must honour ctx.
type issuerTrustPolicy interface {
	IsTrusted(ctx context.Context, issuer string) (bool, error)
}

// revocationPolicy reports true when the credential was checked and found not revoked.
type revocationPolicy interface {
	CheckRevocation(ctx context.Context, credential *identity.Credential) (bool, error)
}

type Config struct {
	// TrustPolicy defaults to trusting every issuer.
	TrustPolicy issuerTrustPolicy
	// RevocationPolicy defaults to treating every credential as not revoked.
	RevocationPolicy revocationPolicy
	Metrics          metrics.Metrics
	// Clock returns the current time. Defaults to identity.Now.
	Clock func() time.Time
}

type Service struct {
	trustPolicy      issuerTrustPolicy
	revocationPolicy revocationPolicy
	metrics          metrics.Metrics
	clock            func() time.Time
	history          *history
}

func New(config *Config) *Service {
	s := &Service{
		trustPolicy:      config.TrustPolicy,
		revocationPolicy: config.RevocationPolicy,
		metrics:          config.Metrics,
		clock:            config.Clock,
		history:          newHistory(),
	}

	if s.trustPolicy == nil {
		s.trustPolicy = trustAll{}
	}

	if s.revocationPolicy == nil {
		s.revocationPolicy = notRevoked{}
	}

	if s.metrics == nil {
		s.metrics = noop.GetMetrics()
	}

	if s.clock == nil {
		s.clock = identity.Now
	}

	return s
}

// VerifyCredential runs the signature, expiry, issuer trust and revocation checks on the credential and
// records the result in the verifier's history. Failures are reported in the result, never as an error.
func (s *Service) VerifyCredential(ctx context.Context, credential *identity.Credential,
	verifierID, verifierName string) *VerificationResult {
	start := time.Now()
	defer func() { s.metrics.VerifyCredentialTime(time.Since(start)) }()

	result := &VerificationResult{
		VerifierID:   verifierID,
		VerifierName: verifierName,
	}

	if credential != nil {
		result.CredentialID = credential.ID
		result.Issuer = credential.Issuer
		result.Subject = credential.SubjectID()
	}

	md, err := s.runChecks(ctx, credential)

	result.VerifiedAt = s.now()

	if err != nil {
		result.Errors = []string{fmt.Sprintf("%s: %s", ErrVerificationFailed, err.Error())}

		logger.Warnc(ctx, "Credential verification failed", logfields.WithCredentialID(result.CredentialID),
			logfields.WithVerifierID(verifierID), log.WithError(err))
	} else {
		result.Metadata = *md
		result.IsValid = md.SignatureValid && md.NotExpired && md.IssuerTrusted && md.RevocationChecked

		if !md.SignatureValid {
			result.Errors = append(result.Errors, ErrInvalidSignature)
		}

		if !md.NotExpired {
			result.Errors = append(result.Errors, ErrCredentialExpired)
		}

		if !md.IssuerTrusted {
			result.Warnings = append(result.Warnings, WarnIssuerNotTrusted)
		}

		if !md.RevocationChecked {
			result.Warnings = append(result.Warnings, WarnRevocationNotChecked)
		}
	}

	s.record(ctx, result)

	return result
}

// VerifyCredentialsBatch verifies the credentials concurrently. Results keep the input order and every
// credential gets its own history entry.
func (s *Service) VerifyCredentialsBatch(ctx context.Context, credentials []*identity.Credential,
	verifierID, verifierName string) *BatchVerificationResult {
	start := time.Now()

	s.metrics.VerifyBatchSize(len(credentials))

	results := make([]*VerificationResult, len(credentials))

	var g errgroup.Group

	for i, c := range credentials {
		i, c := i, c

		g.Go(func() error {
			results[i] = s.VerifyCredential(ctx, c, verifierID, verifierName)

			return nil
		})
	}

	_ = g.Wait() //nolint:errcheck

	valid := 0

	for _, r := range results {
		if r.IsValid {
			valid++
		}
	}

	overall := OverallPartial

	switch valid {
	case len(results):
		overall = OverallValid
	case 0:
		overall = OverallInvalid
	}

	batch := &BatchVerificationResult{
		ID:                 uuid.NewString(),
		OverallResult:      overall,
		TotalCredentials:   len(credentials),
		ValidCredentials:   valid,
		InvalidCredentials: len(results) - valid,
		Results:            results,
		ProcessedAt:        s.now(),
		ProcessingTimeMs:   time.Since(start).Milliseconds(),
	}

	logger.Debugc(ctx, "Batch verified", logfields.WithVerifierID(verifierID),
		logfields.WithBatchSize(len(credentials)), logfields.WithResult(batch.OverallResult))

	return batch
}

// VerifyPresentation checks that the presentation carries at least one credential and a well-formed holder
// proof. The result uses the presentation id as credential id and the holder as issuer and subject.
func (s *Service) VerifyPresentation(ctx context.Context, presentation *identity.Presentation,
	verifierID, verifierName string) *VerificationResult {
	result := &VerificationResult{
		VerifierID:   verifierID,
		VerifierName: verifierName,
		CredentialID: presentationFallbackID,
		Issuer:       unknownHolder,
		Subject:      unknownHolder,
	}

	valid, err := checkPresentation(presentation)

	result.VerifiedAt = s.now()

	switch {
	case err != nil:
		result.Errors = []string{fmt.Sprintf("%s: %s", ErrPresentationVerification, err.Error())}
	default:
		if presentation.ID != "" {
			result.CredentialID = presentation.ID
		}

		if presentation.Holder != "" {
			result.Issuer = presentation.Holder
			result.Subject = presentation.Holder
		}

		result.IsValid = valid
		result.Metadata = VerificationMetadata{
			SignatureValid:    valid,
			NotExpired:        true,
			IssuerTrusted:     true,
			RevocationChecked: true,
		}

		if !valid {
			result.Errors = []string{ErrPresentationVerification}
		}
	}

	s.record(ctx, result)

	return result
}

// GetVerificationHistory returns the verifier's most recent results, oldest first.
func (s *Service) GetVerificationHistory(verifierID string) []*VerificationResult {
	return s.history.get(verifierID)
}

func (s *Service) runChecks(ctx context.Context, credential *identity.Credential) (md *VerificationMetadata,
	err error) {
	defer func() {
		if r := recover(); r != nil {
			md, err = nil, fmt.Errorf("%v", r)
		}
	}()

	if credential == nil {
		return nil, errNilCredential
	}

	md = &VerificationMetadata{
		SignatureValid: credential.Proof != nil && identity.IsIssuerToken(credential.Proof.SignatureToken),
		NotExpired:     !credential.IsExpired(s.now()),
	}

	md.IssuerTrusted, err = s.trustPolicy.IsTrusted(ctx, credential.Issuer)
	if err != nil {
		return nil, fmt.Errorf("check issuer trust: %w", err)
	}

	md.RevocationChecked, err = s.revocationPolicy.CheckRevocation(ctx, credential)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}

	return md, nil
}

func checkPresentation(p *identity.Presentation) (valid bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			valid, err = false, fmt.Errorf("%v", r)
		}
	}()

	if p == nil {
		return false, errors.New("presentation is nil")
	}

	return len(p.Credentials) > 0 && p.Proof != nil && identity.IsHolderToken(p.Proof.SignatureToken), nil
}

func (s *Service) record(ctx context.Context, result *VerificationResult) {
	if !result.IsValid {
		s.metrics.VerificationFailed()
	}

	s.history.add(result.VerifierID, result)

	logger.Debugc(ctx, "Verification recorded", logfields.WithVerifierID(result.VerifierID),
		logfields.WithCredentialID(result.CredentialID), logfields.WithValid(result.IsValid))
}

func (s *Service) now() time.Time {
	return identity.Truncate(s.clock())
}

type trustAll struct{}

func (trustAll) IsTrusted(context.Context, string) (bool, error) {
	return true, nil
}

type notRevoked struct{}

func (notRevoked) CheckRevocation(context.Context, *identity.Credential) (bool, error) {
	return true, nil
}
