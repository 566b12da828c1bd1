/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package revocation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/anonid/pkg/identity"
	"github.com/trustbloc/anonid/pkg/service/verifycredential/revocation"
)

func TestRegistry_CheckRevocation(t *testing.T) {
	ctx := context.Background()
	cred := &identity.Credential{ID: "urn:uuid:1"}

	t.Run("local revocation only", func(t *testing.T) {
		r := revocation.NewRegistry(&revocation.Config{})

		ok, err := r.CheckRevocation(ctx, cred)
		require.NoError(t, err)
		require.True(t, ok)

		r.Revoke(cred.ID, "key compromise")

		reason, revoked := r.Reason(cred.ID)
		require.True(t, revoked)
		require.Equal(t, "key compromise", reason)

		ok, err = r.CheckRevocation(ctx, cred)
		require.NoError(t, err)
		require.False(t, ok)

		r.Reinstate(cred.ID)

		ok, err = r.CheckRevocation(ctx, cred)
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("source result is cached", func(t *testing.T) {
		source := NewMockStatusSource(gomock.NewController(t))
		source.EXPECT().IsRevoked(gomock.Any(), cred.ID).Times(1).Return(true, nil)

		r := revocation.NewRegistry(&revocation.Config{Source: source})

		for i := 0; i < 3; i++ {
			ok, err := r.CheckRevocation(ctx, cred)
			require.NoError(t, err)
			require.False(t, ok)
		}
	})

	t.Run("source failure leaves status unchecked", func(t *testing.T) {
		source := NewMockStatusSource(gomock.NewController(t))
		source.EXPECT().IsRevoked(gomock.Any(), cred.ID).Times(2).Return(false, errors.New("status list unreachable"))

		r := revocation.NewRegistry(&revocation.Config{Source: source})

		ok, err := r.CheckRevocation(ctx, cred)
		require.NoError(t, err)
		require.False(t, ok)

		// failures are not cached
		ok, err = r.CheckRevocation(ctx, cred)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("local revocation wins over source", func(t *testing.T) {
		source := NewMockStatusSource(gomock.NewController(t))

		r := revocation.NewRegistry(&revocation.Config{Source: source})
		r.Revoke(cred.ID, "")

		ok, err := r.CheckRevocation(ctx, cred)
		require.NoError(t, err)
		require.False(t, ok)
	})
}
