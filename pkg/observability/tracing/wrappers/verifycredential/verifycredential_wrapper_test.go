/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifycredential

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/trustbloc/anonid/pkg/identity"
	"github.com/trustbloc/anonid/pkg/service/verifycredential"
)

const (
	verifierID   = "verifier-1"
	verifierName = "Bar"
)

func testCredential() *identity.Credential {
	return &identity.Credential{
		ID:      "urn:uuid:1",
		Type:    []string{"VerifiableCredential"},
		Issuer:  "did:anon:issuer",
		Subject: identity.NewSubject("did:anon:alice", map[string]interface{}{"givenName": "Alice"}),
	}
}

func TestWrapper_VerifyCredential(t *testing.T) {
	ctrl := gomock.NewController(t)

	cred := testCredential()

	svc := NewMockService(ctrl)
	svc.EXPECT().VerifyCredential(gomock.Any(), cred, verifierID, verifierName).Times(1).
		Return(&verifycredential.VerificationResult{IsValid: true})

	w := Wrap(svc, trace.NewNoopTracerProvider().Tracer(""))

	res := w.VerifyCredential(context.Background(), cred, verifierID, verifierName)
	require.True(t, res.IsValid)
}

func TestWrapper_VerifyCredentialsBatch(t *testing.T) {
	ctrl := gomock.NewController(t)

	creds := []*identity.Credential{testCredential()}

	svc := NewMockService(ctrl)
	svc.EXPECT().VerifyCredentialsBatch(gomock.Any(), creds, verifierID, verifierName).Times(1).
		Return(&verifycredential.BatchVerificationResult{OverallResult: verifycredential.OverallValid})

	w := Wrap(svc, trace.NewNoopTracerProvider().Tracer(""))

	res := w.VerifyCredentialsBatch(context.Background(), creds, verifierID, verifierName)
	require.Equal(t, verifycredential.OverallValid, res.OverallResult)
}

func TestWrapper_VerifyPresentation(t *testing.T) {
	ctrl := gomock.NewController(t)

	vp := &identity.Presentation{Credentials: []*identity.Credential{testCredential()}}

	svc := NewMockService(ctrl)
	svc.EXPECT().VerifyPresentation(gomock.Any(), vp, verifierID, verifierName).Times(1).
		Return(&verifycredential.VerificationResult{})

	w := Wrap(svc, trace.NewNoopTracerProvider().Tracer(""))

	res := w.VerifyPresentation(context.Background(), vp, verifierID, verifierName)
	require.False(t, res.IsValid)
}

func TestWrapper_GetVerificationHistory(t *testing.T) {
	ctrl := gomock.NewController(t)

	svc := NewMockService(ctrl)
	svc.EXPECT().GetVerificationHistory(verifierID).Times(1).
		Return([]*verifycredential.VerificationResult{{VerifierID: verifierID}})

	w := Wrap(svc, trace.NewNoopTracerProvider().Tracer(""))

	require.Len(t, w.GetVerificationHistory(verifierID), 1)
}

func TestWrapper_CreatePresentationRequest(t *testing.T) {
	ctrl := gomock.NewController(t)

	config := &verifycredential.PresentationRequestConfig{RequestedAttributes: []string{"isOver18"}}

	svc := NewMockService(ctrl)
	svc.EXPECT().CreatePresentationRequest(gomock.Any(), config).Times(1).
		Return(&verifycredential.PresentationRequest{}, nil)
	svc.EXPECT().CreatePresentationRequest(gomock.Any(), gomock.Nil()).Times(1).
		Return(nil, errors.New("create error"))

	w := Wrap(svc, trace.NewNoopTracerProvider().Tracer(""))

	req, err := w.CreatePresentationRequest(context.Background(), config)
	require.NoError(t, err)
	require.NotNil(t, req)

	_, err = w.CreatePresentationRequest(context.Background(), nil)
	require.ErrorContains(t, err, "create error")
}
