/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifycredential

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/trustbloc/anonid/internal/logfields"
	"github.com/trustbloc/anonid/pkg/coreerr"
	"github.com/trustbloc/anonid/pkg/identity"
)

// DefaultRequestExpiry is used when a presentation request config sets no expiry.
const DefaultRequestExpiry = 60 * time.Minute

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestDenied   RequestStatus = "denied"
	RequestExpired  RequestStatus = "expired"
)

// PresentationType is the kind of presentation a request asks for.
type PresentationType string

const (
	SinglePresentation PresentationType = "single"
	BatchPresentation  PresentationType = "batch"
)

type PresentationRequestConfig struct {
	PresentationType    PresentationType
	RequestedAttributes []string
	Purpose             string
	VerifierID          string
	VerifierName        string
	// ExpiresIn defaults to DefaultRequestExpiry.
	ExpiresIn time.Duration
}

type PresentationRequest struct {
	ID                  string        `json:"id"`
	RequesterID         string        `json:"requesterId"`
	RequesterName       string        `json:"requesterName"`
	RequestedAttributes []string      `json:"requestedAttributes"`
	Purpose             string        `json:"purpose"`
	ExpiresAt           time.Time     `json:"expiresAt"`
	CreatedAt           time.Time     `json:"createdAt"`
	Status              RequestStatus `json:"status"`
}

// IsExpired reports whether the request can no longer be answered at now.
func (r *PresentationRequest) IsExpired(now time.Time) bool {
	return r.Status == RequestExpired || !now.Before(r.ExpiresAt)
}

// CreatePresentationRequest builds a pending request for the attributes a verifier wants disclosed.
func (s *Service) CreatePresentationRequest(ctx context.Context,
	config *PresentationRequestConfig) (*PresentationRequest, error) {
	if config == nil || config.VerifierID == "" {
		return nil, coreerr.NewMissingConfig("verifierId").
			WithComponent(coreerr.VerifierComponent).WithOperation("create-presentation-request")
	}

	if config.ExpiresIn < 0 {
		return nil, coreerr.NewInvalidValue(errNegativeExpiry).
			WithComponent(coreerr.VerifierComponent).
			WithOperation("create-presentation-request").
			WithIncorrectValue(config.ExpiresIn.String())
	}

	expiresIn := config.ExpiresIn
	if expiresIn == 0 {
		expiresIn = DefaultRequestExpiry
	}

	now := identity.Truncate(s.clock())

	req := &PresentationRequest{
		ID:                  uuid.NewString(),
		RequesterID:         config.VerifierID,
		RequesterName:       config.VerifierName,
		RequestedAttributes: lo.Uniq(append([]string{}, config.RequestedAttributes...)),
		Purpose:             config.Purpose,
		ExpiresAt:           now.Add(expiresIn),
		CreatedAt:           now,
		Status:              RequestPending,
	}

	logger.Debugc(ctx, "Presentation request created", logfields.WithVerifierID(config.VerifierID))

	return req, nil
}
