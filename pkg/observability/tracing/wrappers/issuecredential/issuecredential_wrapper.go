/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination gomocks_test.go -package issuecredential . Service

package issuecredential

import (
	"context"
	"crypto/ed25519"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/trustbloc/anonid/pkg/identity"
	"github.com/trustbloc/anonid/pkg/observability/tracing/attributeutil"
	"github.com/trustbloc/anonid/pkg/service/issuecredential"
)

var _ Service = (*Wrapper)(nil) // make sure Wrapper implements issuecredential.ServiceInterface

type Service issuecredential.ServiceInterface

type Wrapper struct {
	svc    Service
	tracer trace.Tracer
}

func Wrap(svc Service, tracer trace.Tracer) *Wrapper {
	return &Wrapper{svc: svc, tracer: tracer}
}

func (w *Wrapper) IssueIdentity(
	ctx context.Context,
	name string,
	attributes map[string]interface{},
) (*identity.Identity, ed25519.PrivateKey, error) {
	ctx, span := w.tracer.Start(ctx, "issuecredential.IssueIdentity")
	defer span.End()

	span.SetAttributes(attributeutil.Names("attributes", attributes))

	id, key, err := w.svc.IssueIdentity(ctx, name, attributes)
	if err != nil {
		return nil, nil, err
	}

	span.SetAttributes(attribute.String("identity_id", id.ID))

	return id, key, nil
}

func (w *Wrapper) IssueCredential(
	ctx context.Context,
	subjectID string,
	attributes map[string]interface{},
) (*identity.Credential, error) {
	ctx, span := w.tracer.Start(ctx, "issuecredential.IssueCredential")
	defer span.End()

	span.SetAttributes(attribute.String("subject_id", subjectID))
	span.SetAttributes(attributeutil.Names("attributes", attributes))

	credential, err := w.svc.IssueCredential(ctx, subjectID, attributes)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("credential_id", credential.ID))

	return credential, nil
}

func (w *Wrapper) AddCredential(
	ctx context.Context,
	holder *identity.Identity,
	attributes map[string]interface{},
) (*identity.Identity, error) {
	ctx, span := w.tracer.Start(ctx, "issuecredential.AddCredential")
	defer span.End()

	if holder != nil {
		span.SetAttributes(attribute.String("identity_id", holder.ID))
	}

	span.SetAttributes(attributeutil.Names("attributes", attributes))

	updated, err := w.svc.AddCredential(ctx, holder, attributes)
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (w *Wrapper) CreatePresentation(
	ctx context.Context,
	holder *identity.Identity,
	credentialIDs []string,
) (*identity.Presentation, error) {
	ctx, span := w.tracer.Start(ctx, "issuecredential.CreatePresentation")
	defer span.End()

	if holder != nil {
		span.SetAttributes(attribute.String("identity_id", holder.ID))
	}

	span.SetAttributes(attribute.StringSlice("credential_ids", credentialIDs))

	vp, err := w.svc.CreatePresentation(ctx, holder, credentialIDs)
	if err != nil {
		return nil, err
	}

	return vp, nil
}

func (w *Wrapper) CreateSelectiveDisclosurePresentation(
	ctx context.Context,
	holder *identity.Identity,
	selections []issuecredential.Selection,
) (*identity.Presentation, error) {
	ctx, span := w.tracer.Start(ctx, "issuecredential.CreateSelectiveDisclosurePresentation")
	defer span.End()

	if holder != nil {
		span.SetAttributes(attribute.String("identity_id", holder.ID))
	}

	span.SetAttributes(attributeutil.JSON("selections", selections))

	vp, err := w.svc.CreateSelectiveDisclosurePresentation(ctx, holder, selections)
	if err != nil {
		return nil, err
	}

	return vp, nil
}
