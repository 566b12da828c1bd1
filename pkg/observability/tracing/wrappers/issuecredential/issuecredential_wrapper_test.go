/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package issuecredential

import (
	"context"
	"crypto/ed25519"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/trustbloc/anonid/pkg/identity"
	"github.com/trustbloc/anonid/pkg/service/issuecredential"
)

var attrs = map[string]interface{}{"givenName": "Alice"}

func TestWrapper_IssueIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)

	svc := NewMockService(ctrl)
	svc.EXPECT().IssueIdentity(gomock.Any(), "Alice", attrs).Times(1).
		Return(&identity.Identity{ID: "did:anon:alice"}, ed25519.PrivateKey{}, nil)

	w := Wrap(svc, trace.NewNoopTracerProvider().Tracer(""))

	id, _, err := w.IssueIdentity(context.Background(), "Alice", attrs)
	require.NoError(t, err)
	require.Equal(t, "did:anon:alice", id.ID)
}

func TestWrapper_IssueCredential(t *testing.T) {
	ctrl := gomock.NewController(t)

	svc := NewMockService(ctrl)
	svc.EXPECT().IssueCredential(gomock.Any(), "did:anon:alice", attrs).Times(1).
		Return(&identity.Credential{ID: "urn:uuid:1"}, nil)
	svc.EXPECT().IssueCredential(gomock.Any(), "", attrs).Times(1).
		Return(nil, errors.New("issue error"))

	w := Wrap(svc, trace.NewNoopTracerProvider().Tracer(""))

	vc, err := w.IssueCredential(context.Background(), "did:anon:alice", attrs)
	require.NoError(t, err)
	require.Equal(t, "urn:uuid:1", vc.ID)

	_, err = w.IssueCredential(context.Background(), "", attrs)
	require.ErrorContains(t, err, "issue error")
}

func TestWrapper_AddCredential(t *testing.T) {
	ctrl := gomock.NewController(t)

	holder := &identity.Identity{ID: "did:anon:alice"}

	svc := NewMockService(ctrl)
	svc.EXPECT().AddCredential(gomock.Any(), holder, attrs).Times(1).Return(holder, nil)

	w := Wrap(svc, trace.NewNoopTracerProvider().Tracer(""))

	updated, err := w.AddCredential(context.Background(), holder, attrs)
	require.NoError(t, err)
	require.Equal(t, holder, updated)
}

func TestWrapper_CreatePresentation(t *testing.T) {
	ctrl := gomock.NewController(t)

	holder := &identity.Identity{ID: "did:anon:alice"}

	svc := NewMockService(ctrl)
	svc.EXPECT().CreatePresentation(gomock.Any(), holder, []string{"urn:uuid:1"}).Times(1).
		Return(&identity.Presentation{Holder: holder.ID}, nil)

	w := Wrap(svc, trace.NewNoopTracerProvider().Tracer(""))

	vp, err := w.CreatePresentation(context.Background(), holder, []string{"urn:uuid:1"})
	require.NoError(t, err)
	require.Equal(t, holder.ID, vp.Holder)
}

func TestWrapper_CreateSelectiveDisclosurePresentation(t *testing.T) {
	ctrl := gomock.NewController(t)

	holder := &identity.Identity{ID: "did:anon:alice"}
	selections := []issuecredential.Selection{{CredentialID: "urn:uuid:1", AttributeName: "isOver18"}}

	svc := NewMockService(ctrl)
	svc.EXPECT().CreateSelectiveDisclosurePresentation(gomock.Any(), holder, selections).Times(1).
		Return(nil, errors.New("nothing selected"))

	w := Wrap(svc, trace.NewNoopTracerProvider().Tracer(""))

	_, err := w.CreateSelectiveDisclosurePresentation(context.Background(), holder, selections)
	require.ErrorContains(t, err, "nothing selected")
}
