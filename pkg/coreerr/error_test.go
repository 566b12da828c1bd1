/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package coreerr_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/anonid/pkg/coreerr"
)

func TestError(t *testing.T) {
	t.Run("description", func(t *testing.T) {
		err := coreerr.New(coreerr.NothingSelected, coreerr.ErrNothingSelected).
			WithComponent(coreerr.IssuerComponent).
			WithOperation("CreateSelectiveDisclosurePresentation").
			WithIncorrectValue("selections")

		require.EqualError(t, err, "nothing-selected[component: credential-issuer; "+
			"operation: CreateSelectiveDisclosurePresentation; incorrect value: selections]: nothing selected")
		require.ErrorIs(t, err, coreerr.ErrNothingSelected)
		require.True(t, err.IsInputError())
	})

	t.Run("wrapped chain", func(t *testing.T) {
		err := fmt.Errorf("load: %w", coreerr.NewMalformedData(errors.New("unexpected end of JSON input")))

		require.Equal(t, coreerr.MalformedData, coreerr.CodeOf(err))
		require.False(t, coreerr.IsInputError(err))
		require.Equal(t, coreerr.ErrorCode(""), coreerr.CodeOf(errors.New("plain")))
	})

	t.Run("missing config", func(t *testing.T) {
		err := coreerr.NewMissingConfig("network")

		require.ErrorIs(t, err, coreerr.ErrMissingConfig)
		require.True(t, coreerr.IsInputError(err))
		require.Equal(t, "network", err.IncorrectValue)
	})

	t.Run("backend failures are not input errors", func(t *testing.T) {
		require.False(t, coreerr.NewBackendFailure(errors.New("down")).IsInputError())
		require.True(t, coreerr.NewInvalidValue(errors.New("bad")).IsInputError())
	})

	t.Run("json", func(t *testing.T) {
		err := coreerr.NewInvalidValue(errors.New("bad subject")).WithComponent(coreerr.IssuerComponent)

		b, e := json.Marshal(err)
		require.NoError(t, e)
		require.JSONEq(t, `{"error":"invalid-value","component":"credential-issuer",`+
			`"error_description":"bad subject"}`, string(b))
	})
}
