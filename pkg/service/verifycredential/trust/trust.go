/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package trust

import (
	"context"
	"sync"

	"github.com/samber/lo"
)

// AllowList trusts only the issuers it was given. An AllowList that never held an issuer trusts every
// issuer; once an issuer was added the list stays restrictive, also after its last issuer is removed.
type AllowList struct {
	mutex      sync.RWMutex
	issuers    map[string]struct{}
	restricted bool
}

// NewAllowList returns an allow list over issuers.
func NewAllowList(issuers ...string) *AllowList {
	a := &AllowList{issuers: make(map[string]struct{}, len(issuers))}
	a.Add(issuers...)

	return a
}

// Add trusts more issuers.
func (a *AllowList) Add(issuers ...string) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	for _, issuer := range lo.Compact(issuers) {
		a.issuers[issuer] = struct{}{}
		a.restricted = true
	}
}

// Remove stops trusting the issuers.
func (a *AllowList) Remove(issuers ...string) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	for _, issuer := range issuers {
		delete(a.issuers, issuer)
	}
}

// Issuers returns the trusted issuers.
func (a *AllowList) Issuers() []string {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	return lo.Keys(a.issuers)
}

func (a *AllowList) IsTrusted(ctx context.Context, issuer string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	a.mutex.RLock()
	defer a.mutex.RUnlock()

	if !a.restricted {
		return true, nil
	}

	_, ok := a.issuers[issuer]

	return ok, nil
}
