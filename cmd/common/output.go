/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package common

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"

	"github.com/trustbloc/anonid/pkg/coreerr"
	"github.com/trustbloc/anonid/pkg/identity"
	"github.com/trustbloc/anonid/pkg/storage"
)

// WriteJSON writes v to w as indented JSON.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}

// ParseAttributes converts name=value pairs into an attribute map. Values that are valid JSON (numbers,
// booleans, objects) keep their JSON type. Anything else is taken as a string.
func ParseAttributes(pairs []string) (map[string]interface{}, error) {
	attributes := make(map[string]interface{}, len(pairs))

	for _, pair := range pairs {
		name, value, found := strings.Cut(pair, "=")
		if !found || strings.TrimSpace(name) == "" {
			return nil, coreerr.NewInvalidValue(fmt.Errorf("attribute %q is not in name=value form", pair)).
				WithIncorrectValue(pair)
		}

		if gjson.Valid(value) && !gjson.Parse(value).IsArray() {
			attributes[name] = gjson.Parse(value).Value()
		} else {
			attributes[name] = value
		}
	}

	return attributes, nil
}

// FindIdentity loads the stored identities and returns the one with the given id.
func FindIdentity(ctx context.Context, store storage.IdentityStore,
	id string) (*identity.Identity, []*identity.Identity, error) {
	identities, err := store.Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load identities: %w", err)
	}

	found, ok := lo.Find(identities, func(i *identity.Identity) bool { return i.ID == id })
	if !ok {
		return nil, nil, fmt.Errorf("identity %s: %w", id, coreerr.ErrDataNotFound)
	}

	return found, identities, nil
}

// ReplaceIdentity stores updated in place of the identity with the same id, or appends it when none exists.
func ReplaceIdentity(ctx context.Context, store storage.IdentityStore, identities []*identity.Identity,
	updated *identity.Identity) error {
	_, index, ok := lo.FindIndexOf(identities, func(i *identity.Identity) bool { return i.ID == updated.ID })
	if ok {
		identities[index] = updated
	} else {
		identities = append(identities, updated)
	}

	return store.Save(ctx, identities)
}
