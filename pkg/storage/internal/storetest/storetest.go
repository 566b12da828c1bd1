/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/anonid/pkg/identity"
)

type identityStore interface {
	Save(ctx context.Context, identities []*identity.Identity) error
	Load(ctx context.Context) ([]*identity.Identity, error)
	Clear(ctx context.Context) error
}

// Identities returns two identities with a credential each, timestamps at millisecond precision.
func Identities() []*identity.Identity {
	created := identity.Truncate(time.Date(2024, 3, 1, 10, 20, 30, 123456789, time.UTC))
	expires := created.Add(365 * 24 * time.Hour)

	cred := func(id, subject, name string) *identity.Credential {
		return &identity.Credential{
			Context:        []string{identity.CredentialsContextV1},
			ID:             id,
			Type:           []string{identity.VerifiableCredentialType, identity.IdentityCredentialType},
			Issuer:         "did:key:mock-issuer-123456789",
			IssuanceDate:   created,
			ExpirationDate: &expires,
			Subject:        identity.NewSubject(subject, claims(name)),
			Proof: &identity.Proof{
				Type:               identity.ProofTypeEd25519Signature2020,
				Created:            created,
				ProofPurpose:       identity.AssertionMethodPurpose,
				VerificationMethod: "did:key:mock-issuer-123456789#keys-1",
				SignatureToken:     "mock-signature-zQmToken",
			},
		}
	}

	return []*identity.Identity{
		{
			ID:          "did:key:z6MkAlice",
			DisplayName: "Alice",
			KeyMaterial: []byte{0x01, 0x02, 0x03},
			Credentials: []*identity.Credential{cred("urn:uuid:1", "did:key:z6MkAlice", "Alice")},
			CreatedAt:   created,
			LastUpdated: created.Add(time.Minute),
		},
		{
			ID:          "did:key:z6MkBob",
			DisplayName: "Bob",
			KeyMaterial: []byte{0x04},
			Credentials: []*identity.Credential{cred("urn:uuid:2", "did:key:z6MkBob", "Bob")},
			CreatedAt:   created,
			LastUpdated: created,
		},
	}
}

// claims holds numeric and nested values in the form issued credentials carry them.
func claims(name string) map[string]interface{} {
	attrs, err := identity.NormalizeAttributes(map[string]interface{}{
		"givenName": name,
		"isOver18":  true,
		"age":       30,
		"address":   map[string]string{"city": "Oslo", "country": "NO"},
		"languages": []string{"en", "no"},
	})
	if err != nil {
		panic(err)
	}

	return attrs
}

// RoundTrip checks that a store returns what it was given, starts empty and clears idempotently.
func RoundTrip(t *testing.T, store identityStore) {
	t.Helper()

	ctx := context.Background()

	require.NoError(t, store.Clear(ctx))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, loaded)

	data := Identities()
	require.NoError(t, store.Save(ctx, data))

	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, data, loaded)

	require.NoError(t, store.Save(ctx, data[:1]))

	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, data[:1], loaded)

	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))

	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, loaded)
}
