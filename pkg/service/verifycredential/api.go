/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifycredential

import (
	"context"
	"time"

	"github.com/trustbloc/anonid/pkg/identity"
)

// Verification messages.
const (
	ErrInvalidSignature         = "Invalid signature"
	ErrCredentialExpired        = "Credential has expired"
	WarnIssuerNotTrusted        = "Issuer not in trusted list"
	WarnRevocationNotChecked    = "Could not verify revocation status"
	ErrVerificationFailed       = "Verification failed"
	ErrPresentationVerification = "Presentation verification failed"
)

// OverallResult classifies a batch verification.
type OverallResult string

const (
	OverallValid   OverallResult = "valid"
	OverallInvalid OverallResult = "invalid"
	OverallPartial OverallResult = "partial"
)

// VerificationMetadata holds the outcome of each independent check.
type VerificationMetadata struct {
	SignatureValid    bool `json:"signatureValid"`
	NotExpired        bool `json:"notExpired"`
	IssuerTrusted     bool `json:"issuerTrusted"`
	RevocationChecked bool `json:"revocationChecked"`
}

// VerificationResult is the outcome of verifying one credential or presentation. Hard failures are listed
// in Errors and soft failures in Warnings; either makes the result invalid.
type VerificationResult struct {
	IsValid      bool                 `json:"isValid"`
	VerifiedAt   time.Time            `json:"verifiedAt"`
	VerifierID   string               `json:"verifierId"`
	VerifierName string               `json:"verifierName"`
	CredentialID string               `json:"credentialId"`
	Issuer       string               `json:"issuer"`
	Subject      string               `json:"subject"`
	Metadata     VerificationMetadata `json:"metadata"`
	Errors       []string             `json:"errors,omitempty"`
	Warnings     []string             `json:"warnings,omitempty"`
}

type BatchVerificationResult struct {
	ID                 string                `json:"id"`
	OverallResult      OverallResult         `json:"overallResult"`
	TotalCredentials   int                   `json:"totalCredentials"`
	ValidCredentials   int                   `json:"validCredentials"`
	InvalidCredentials int                   `json:"invalidCredentials"`
	Results            []*VerificationResult `json:"results"`
	ProcessedAt        time.Time             `json:"processedAt"`
	ProcessingTimeMs   int64                 `json:"processingTimeMs"`
}

type ServiceInterface interface {
	VerifyCredential(
		ctx context.Context,
		credential *identity.Credential,
		verifierID, verifierName string,
	) *VerificationResult
	VerifyCredentialsBatch(
		ctx context.Context,
		credentials []*identity.Credential,
		verifierID, verifierName string,
	) *BatchVerificationResult
	VerifyPresentation(
		ctx context.Context,
		presentation *identity.Presentation,
		verifierID, verifierName string,
	) *VerificationResult
	GetVerificationHistory(verifierID string) []*VerificationResult
	CreatePresentationRequest(ctx context.Context, config *PresentationRequestConfig) (*PresentationRequest, error)
}
