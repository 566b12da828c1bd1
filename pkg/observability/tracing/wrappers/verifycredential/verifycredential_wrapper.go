/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination gomocks_test.go -package verifycredential . Service

package verifycredential

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/trustbloc/anonid/pkg/identity"
	"github.com/trustbloc/anonid/pkg/observability/tracing/attributeutil"
	"github.com/trustbloc/anonid/pkg/service/verifycredential"
)

var _ Service = (*Wrapper)(nil) // make sure Wrapper implements verifycredential.ServiceInterface

type Service verifycredential.ServiceInterface

type Wrapper struct {
	svc    Service
	tracer trace.Tracer
}

func Wrap(svc Service, tracer trace.Tracer) *Wrapper {
	return &Wrapper{svc: svc, tracer: tracer}
}

func (w *Wrapper) VerifyCredential(ctx context.Context, credential *identity.Credential,
	verifierID, verifierName string) *verifycredential.VerificationResult {
	ctx, span := w.tracer.Start(ctx, "verifycredential.VerifyCredential")
	defer span.End()

	span.SetAttributes(attribute.String("verifier_id", verifierID))
	span.SetAttributes(attribute.String("verifier_name", verifierName))
	span.SetAttributes(attributeutil.JSON("credential", credential,
		attributeutil.WithRedactedValues("credentialSubject", identity.SubjectIDKey),
		attributeutil.WithRedacted("proof.jws")))

	res := w.svc.VerifyCredential(ctx, credential, verifierID, verifierName)

	if res != nil {
		span.SetAttributes(attribute.Bool("is_valid", res.IsValid))
		span.SetAttributes(attribute.StringSlice("errors", res.Errors))
		span.SetAttributes(attribute.StringSlice("warnings", res.Warnings))
	}

	return res
}

func (w *Wrapper) VerifyCredentialsBatch(ctx context.Context, credentials []*identity.Credential,
	verifierID, verifierName string) *verifycredential.BatchVerificationResult {
	ctx, span := w.tracer.Start(ctx, "verifycredential.VerifyCredentialsBatch")
	defer span.End()

	span.SetAttributes(attribute.String("verifier_id", verifierID))
	span.SetAttributes(attribute.String("verifier_name", verifierName))
	span.SetAttributes(attribute.Int("batch_size", len(credentials)))

	res := w.svc.VerifyCredentialsBatch(ctx, credentials, verifierID, verifierName)

	if res != nil {
		span.SetAttributes(attribute.String("overall_result", string(res.OverallResult)))
		span.SetAttributes(attribute.Int("valid_credentials", res.ValidCredentials))
	}

	return res
}

func (w *Wrapper) VerifyPresentation(ctx context.Context, presentation *identity.Presentation,
	verifierID, verifierName string) *verifycredential.VerificationResult {
	ctx, span := w.tracer.Start(ctx, "verifycredential.VerifyPresentation")
	defer span.End()

	span.SetAttributes(attribute.String("verifier_id", verifierID))
	span.SetAttributes(attribute.String("verifier_name", verifierName))
	span.SetAttributes(attributeutil.JSON("presentation", presentation,
		attributeutil.WithRedactedValues("verifiableCredential.#.credentialSubject", identity.SubjectIDKey),
		attributeutil.WithRedacted("verifiableCredential.#.proof.jws"),
		attributeutil.WithRedacted("proof.jws")))

	res := w.svc.VerifyPresentation(ctx, presentation, verifierID, verifierName)

	if res != nil {
		span.SetAttributes(attribute.Bool("is_valid", res.IsValid))
	}

	return res
}

func (w *Wrapper) GetVerificationHistory(verifierID string) []*verifycredential.VerificationResult {
	return w.svc.GetVerificationHistory(verifierID)
}

func (w *Wrapper) CreatePresentationRequest(ctx context.Context,
	config *verifycredential.PresentationRequestConfig) (*verifycredential.PresentationRequest, error) {
	ctx, span := w.tracer.Start(ctx, "verifycredential.CreatePresentationRequest")
	defer span.End()

	span.SetAttributes(attributeutil.JSON("config", config))

	req, err := w.svc.CreatePresentationRequest(ctx, config)
	if err != nil {
		return nil, err
	}

	return req, nil
}
